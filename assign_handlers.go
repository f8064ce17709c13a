package cnext

import "fmt"

// AssignHandler emits C text (plus any effects) for one assignment,
// or a diagnostic when the assignment is invalid for its kind.
type AssignHandler func(ctx *AssignmentContext, file string, at Location) (string, []Effect, *Diagnostic)

// assignHandlers is the dispatch table keyed by AssignHandlerKind
// (§4.6 "a handler registry dispatches by kind").
var assignHandlers map[AssignHandlerKind]AssignHandler

func init() {
	assignHandlers = map[AssignHandlerKind]AssignHandler{
		HandlerSimple:           handleSimpleAssignment,
		HandlerBitmapField:      handleBitmapFieldAssignment,
		HandlerRegisterMember:   handleRegisterMemberAssignment,
		HandlerStringAssignment: handleStringAssignment,
		HandlerBitAccessWrite:   handleBitAccessWrite,
		HandlerArrayElement:     handleArrayElementAssignment,
		HandlerSpecial:          handleSpecialAssignment,
		HandlerAccessPattern:    handleAccessPatternAssignment,
	}
}

// GenerateAssignment classifies ctx and runs the matching handler.
func GenerateAssignment(ctx *AssignmentContext, file string, at Location) (string, []Effect, *Diagnostic) {
	kind := ClassifyAssignment(ctx)
	handler := assignHandlers[kind]
	return handler(ctx, file, at)
}

func handleSimpleAssignment(ctx *AssignmentContext, file string, at Location) (string, []Effect, *Diagnostic) {
	return fmt.Sprintf("%s %s %s;", ctx.TargetCtx, ctx.COp, ctx.GeneratedValue), nil, nil
}

// handleBitmapFieldAssignment implements §4.6 kind 2: bitmap field
// read-modify-write, with the single-bit boolean-literal shortcut and
// 64-bit backing adjustments.
func handleBitmapFieldAssignment(ctx *AssignmentContext, file string, at Location) (string, []Effect, *Diagnostic) {
	suffix, cast := "U", ""
	if ctx.PlainBitConstants {
		suffix = ""
	}
	one, zero := "1"+suffix, "0"+suffix
	if ctx.BackingBits == 64 {
		llSuffix := "ULL"
		if ctx.PlainBitConstants {
			llSuffix = "LL"
		}
		one, zero = "1"+llSuffix, "0"+llSuffix
		cast = "(uint64_t)"
	}

	if ctx.FieldWidth == 1 && ctx.ValueIsBoolLiteral {
		v := zero
		if ctx.BoolLiteralValue {
			v = one
		}
		text := fmt.Sprintf("%s = (%s & ~(%s << %d)) | (%s << %d);",
			ctx.BitmapExpr, ctx.BitmapExpr, one, ctx.FieldOffset, v, ctx.FieldOffset)
		return text, nil, nil
	}

	mask := bitFieldMaskHex(ctx.FieldWidth)
	text := fmt.Sprintf("%s = (%s & ~(%s%s << %d)) | ((%s%s & %s) << %d);",
		ctx.BitmapExpr, ctx.BitmapExpr, cast, mask, ctx.FieldOffset, cast, ctx.GeneratedValue, mask, ctx.FieldOffset)
	return text, nil, nil
}

// handleRegisterMemberAssignment implements §4.6 kind 3. rw/ro share
// the bitmap RMW form (ro on the LHS is rejected); wo writes without a
// prior read; w1c/w1s emit a single-word write from the bit pattern.
func handleRegisterMemberAssignment(ctx *AssignmentContext, file string, at Location) (string, []Effect, *Diagnostic) {
	switch ctx.RegisterAccess {
	case AccessRO:
		d := errRegisterReadOnly(ctx.TargetCtx, file, at)
		return "", nil, &d

	case AccessRW:
		rmw := &AssignmentContext{
			BitmapExpr:         ctx.RegisterExpr,
			FieldOffset:        ctx.FieldOffset,
			FieldWidth:         ctx.FieldWidth,
			BackingBits:        ctx.BackingBits,
			GeneratedValue:     ctx.GeneratedValue,
			ValueIsBoolLiteral: ctx.ValueIsBoolLiteral,
			BoolLiteralValue:   ctx.BoolLiteralValue,
			PlainBitConstants:  ctx.PlainBitConstants,
		}
		return handleBitmapFieldAssignment(rmw, file, at)

	case AccessWO:
		mask := bitFieldMaskHex(ctx.FieldWidth)
		text := fmt.Sprintf("%s = (%s & %s) << %d;", ctx.RegisterExpr, ctx.GeneratedValue, mask, ctx.FieldOffset)
		return text, nil, nil

	case AccessW1C, AccessW1S:
		suffix := "U"
		if ctx.PlainBitConstants {
			suffix = ""
		}
		one := "1" + suffix
		if ctx.BackingBits == 64 {
			llSuffix := "ULL"
			if ctx.PlainBitConstants {
				llSuffix = "LL"
			}
			one = "1" + llSuffix
		}
		text := fmt.Sprintf("%s = %s << %d;", ctx.RegisterExpr, one, ctx.FieldOffset)
		return text, nil, nil

	default:
		d := errRegisterReadOnly(ctx.TargetCtx, file, at)
		return "", nil, &d
	}
}

// handleStringAssignment implements §4.6 kind 4.
func handleStringAssignment(ctx *AssignmentContext, file string, at Location) (string, []Effect, *Diagnostic) {
	source := ctx.GeneratedValue
	if ctx.ValueIsStringLiteral {
		source = fmt.Sprintf("%q", ctx.ValueLiteralText)
	}
	text := fmt.Sprintf("strncpy(%s, %s, %d); %s[%d] = '\\0';",
		ctx.StringTarget, source, ctx.StringCapacity, ctx.StringTarget, ctx.StringCapacity)
	effects := []Effect{{Kind: EffectIncludeHeader, Value: "string.h"}}
	return text, effects, nil
}

// handleBitAccessWrite implements §4.6 kind 5: `X[offset]` or
// `X[offset, width]` on a non-array integer is bit extraction, so the
// write is a plain bitmap-style RMW over the base integer.
func handleBitAccessWrite(ctx *AssignmentContext, file string, at Location) (string, []Effect, *Diagnostic) {
	rmw := &AssignmentContext{
		BitmapExpr:         ctx.BitAccessExpr,
		FieldOffset:        ctx.FieldOffset,
		FieldWidth:         ctx.FieldWidth,
		BackingBits:        ctx.BackingBits,
		GeneratedValue:     ctx.GeneratedValue,
		ValueIsBoolLiteral: ctx.ValueIsBoolLiteral,
		BoolLiteralValue:   ctx.BoolLiteralValue,
		PlainBitConstants:  ctx.PlainBitConstants,
	}
	return handleBitmapFieldAssignment(rmw, file, at)
}

// handleArrayElementAssignment implements §4.6 kind 6: plain
// assignment, the subscripted target text is already fully rendered.
func handleArrayElementAssignment(ctx *AssignmentContext, file string, at Location) (string, []Effect, *Diagnostic) {
	return fmt.Sprintf("%s %s %s;", ctx.TargetCtx, ctx.COp, ctx.GeneratedValue), nil, nil
}

// handleSpecialAssignment implements §4.6 kind 7: atomic helper-call
// wrapping, overflow-saturate clamping, and const-target rejection.
func handleSpecialAssignment(ctx *AssignmentContext, file string, at Location) (string, []Effect, *Diagnostic) {
	if ctx.IsConst {
		d := Diagnostic{
			Kind:     KindUnknownTypeReference,
			Severity: SeverityError,
			Message:  fmt.Sprintf("cannot assign to const target '%s'", ctx.TargetCtx),
			File:     file,
			At:       at,
		}
		return "", nil, &d
	}
	if ctx.IsAtomic {
		text := fmt.Sprintf("%s(&%s, %s);", ctx.AtomicHelper, ctx.TargetCtx, ctx.GeneratedValue)
		effects := []Effect{{Kind: EffectIncludeHeader, Value: "stdatomic.h"}}
		return text, effects, nil
	}
	if ctx.Overflow == OverflowSaturate {
		text := fmt.Sprintf("%s = %s < %s ? %s : (%s > %s ? %s : %s);",
			ctx.TargetCtx, ctx.GeneratedValue, ctx.SaturateMin, ctx.SaturateMin,
			ctx.GeneratedValue, ctx.SaturateMax, ctx.SaturateMax, ctx.GeneratedValue)
		return text, nil, nil
	}
	return handleSimpleAssignment(ctx, file, at)
}

// handleAccessPatternAssignment implements §4.6 kind 8: a chained
// `A.B.C` target where the last link is a register group or bitmap
// field dispatches to that link's own handler.
func handleAccessPatternAssignment(ctx *AssignmentContext, file string, at Location) (string, []Effect, *Diagnostic) {
	inner := *ctx
	inner.TargetResolvedKind = ctx.InnerKind
	kind := ClassifyAssignment(&inner)
	handler := assignHandlers[kind]
	return handler(&inner, file, at)
}
