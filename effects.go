package cnext

// EffectKind enumerates the side effects a code-generation step can
// request from the output composer (§3.4): an extra header to
// #include, a forward declaration, a typedef the generated code
// depends on, or a small generated helper function.
type EffectKind int

const (
	EffectIncludeHeader EffectKind = iota
	EffectForwardDeclare
	EffectRequireTypedef
	EffectDefineHelper
)

// Effect is a single requested side effect. Two effects with the same
// Kind and Value are considered equal and collapse to one emission
// (§3.4 "deduplicated by equality").
type Effect struct {
	Kind  EffectKind
	Value string
}

// EffectSet collects effects in first-requested order, discarding
// duplicates as they arrive so callers never need a second dedup pass.
type EffectSet struct {
	ordered []Effect
	seen    map[Effect]bool
}

func NewEffectSet() *EffectSet {
	return &EffectSet{seen: map[Effect]bool{}}
}

// Add records e, returning true if it had not been requested before.
func (s *EffectSet) Add(e Effect) bool {
	if s.seen[e] {
		return false
	}
	s.seen[e] = true
	s.ordered = append(s.ordered, e)
	return true
}

// List returns every distinct effect requested so far, in the order
// each was first requested.
func (s *EffectSet) List() []Effect {
	return s.ordered
}

// Headers returns the Value of every EffectIncludeHeader effect, in
// request order, for the header-generator's #include block.
func (s *EffectSet) Headers() []string {
	var out []string
	for _, e := range s.ordered {
		if e.Kind == EffectIncludeHeader {
			out = append(out, e.Value)
		}
	}
	return out
}
