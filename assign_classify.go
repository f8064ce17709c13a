package cnext

// TargetResolvedKind tags what kind of storage an assignment target
// resolves to, decided upstream (by symbol/type lookup) before the
// classifier runs (§4.6).
type TargetResolvedKind int

const (
	ResolvedPlain TargetResolvedKind = iota
	ResolvedBitmapField
	ResolvedRegisterMember
	ResolvedString
	ResolvedBitAccess
	ResolvedArrayElement
	ResolvedAtomic
	ResolvedSaturating
	ResolvedConst
	ResolvedAccessChain
)

// AssignHandlerKind is one of the eight assignment emission policies
// (§4.6).
type AssignHandlerKind int

const (
	HandlerSimple AssignHandlerKind = iota
	HandlerBitmapField
	HandlerRegisterMember
	HandlerStringAssignment
	HandlerBitAccessWrite
	HandlerArrayElement
	HandlerSpecial
	HandlerAccessPattern
)

// AssignmentContext is the extracted assignment context the spec
// names: `{targetCtx, targetBaseIdentifier, hasSingleIndexSubscript,
// operatorKind, cOp, generatedValue, targetTypeInfo?,
// targetResolvedKind}`, plus the per-kind fields each handler needs.
type AssignmentContext struct {
	TargetCtx               string
	TargetBaseIdentifier    string
	HasSingleIndexSubscript bool
	Op                      AssignOp
	COp                     string
	GeneratedValue          string
	TargetTypeInfo          *TypeInfo
	TargetResolvedKind      TargetResolvedKind

	// Bitmap field / register-member-via-bitmap RMW.
	BitmapExpr         string
	FieldOffset        int
	FieldWidth         int
	BackingBits        int
	ValueIsBoolLiteral bool
	BoolLiteralValue   bool
	PlainBitConstants  bool

	// Register member.
	RegisterExpr   string
	RegisterAccess AccessMode

	// String assignment.
	StringTarget         string
	StringCapacity       int
	ValueIsStringLiteral bool
	ValueLiteralText     string

	// Bit-access write (`X[offset]` / `X[offset, width]`).
	BitAccessExpr string

	// Special: atomic / saturating / const.
	IsAtomic     bool
	AtomicHelper string
	Overflow     OverflowMode
	SaturateMin  string
	SaturateMax  string
	IsConst      bool

	// Access pattern: the final link's own resolved kind, so the
	// handler can delegate.
	InnerKind TargetResolvedKind
}

// ClassifyAssignment maps the extracted context to the handler kind
// that should emit it (§4.6). Register/const read-only failures are
// surfaced by the handler itself (HandlerRegisterMember /
// HandlerSpecial), not by the classifier, matching the propagation
// policy in §7 (local fatal diagnostics, not a separate exception
// path).
func ClassifyAssignment(ctx *AssignmentContext) AssignHandlerKind {
	switch ctx.TargetResolvedKind {
	case ResolvedBitmapField:
		return HandlerBitmapField
	case ResolvedRegisterMember:
		return HandlerRegisterMember
	case ResolvedString:
		return HandlerStringAssignment
	case ResolvedBitAccess:
		return HandlerBitAccessWrite
	case ResolvedArrayElement:
		return HandlerArrayElement
	case ResolvedAtomic, ResolvedSaturating, ResolvedConst:
		return HandlerSpecial
	case ResolvedAccessChain:
		return HandlerAccessPattern
	default:
		return HandlerSimple
	}
}
