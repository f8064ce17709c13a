package cnext

import "fmt"

// StructFieldLookup resolves a struct type's field by name, mirroring
// SymbolTable.StructFields[structType].Fields.Get(memberName).
type StructFieldLookup func(structType, memberName string) (*StructFieldInfo, bool)

// PropertyAccessContext carries everything the property access
// generator needs to decide what `.length`/`.capacity`/`.size` expands
// to at one point in an expression chain (§4.4).
type PropertyAccessContext struct {
	CurrentResultText  string
	PrimaryID          string
	CurrentIdentifier  string
	SubscriptDepth     int
	PreviousStructType string
	PreviousMemberName string
	TypeInfo           *TypeInfo
	MainArgsName       string
	LengthCache        map[string]string
}

// PropertyAccessResult is the emitted C text plus any effects the
// emission requires (e.g. `#include <string.h>` for strlen calls).
type PropertyAccessResult struct {
	Text    string
	Effects []Effect
}

func placeholderLength(what string) PropertyAccessResult {
	return PropertyAccessResult{Text: fmt.Sprintf("/* unknown length: %s */ 0", what)}
}

// GenerateLength implements the §4.4 `.length` policy table.
func GenerateLength(ctx PropertyAccessContext, lookup StructFieldLookup) PropertyAccessResult {
	if ctx.MainArgsName != "" && ctx.CurrentIdentifier == ctx.MainArgsName {
		return PropertyAccessResult{Text: "argc"}
	}

	if ctx.PreviousStructType != "" {
		field, ok := lookup(ctx.PreviousStructType, ctx.PreviousMemberName)
		if !ok {
			return placeholderLength(ctx.PreviousStructType + "." + ctx.PreviousMemberName)
		}
		return generateStructFieldLength(ctx, field)
	}

	return generateBareLength(ctx)
}

func generateStructFieldLength(ctx PropertyAccessContext, field *StructFieldInfo) PropertyAccessResult {
	switch {
	case field.IsString && len(field.Dimensions) > 1:
		if ctx.SubscriptDepth == 0 {
			return PropertyAccessResult{Text: fmt.Sprintf("%d", field.Dimensions[0])}
		}
		return strlenResult(ctx.CurrentResultText)

	case field.IsString:
		return strlenResult(ctx.CurrentResultText)

	case field.IsArray:
		if ctx.SubscriptDepth < len(field.Dimensions) {
			return PropertyAccessResult{Text: fmt.Sprintf("%d", field.Dimensions[ctx.SubscriptDepth])}
		}
		if width, ok := bitWidthOf(field.TypeName); ok {
			return PropertyAccessResult{Text: fmt.Sprintf("%d", width)}
		}
		return placeholderLength(field.TypeName)

	default:
		if width, ok := bitWidthOf(field.TypeName); ok {
			return PropertyAccessResult{Text: fmt.Sprintf("%d", width)}
		}
		return placeholderLength(field.TypeName)
	}
}

func generateBareLength(ctx PropertyAccessContext) PropertyAccessResult {
	ti := ctx.TypeInfo
	if ti == nil {
		return placeholderLength(ctx.CurrentIdentifier)
	}

	switch {
	case ti.IsString && !ti.IsArray:
		if ctx.LengthCache != nil {
			if cached, ok := ctx.LengthCache[ctx.CurrentIdentifier]; ok {
				return PropertyAccessResult{Text: cached}
			}
		}
		return strlenResult(ctx.CurrentIdentifier)

	case ti.IsString:
		if ctx.SubscriptDepth == 0 && len(ti.ArrayDimensions) > 0 {
			return PropertyAccessResult{Text: fmt.Sprintf("%d", ti.ArrayDimensions[0])}
		}
		return strlenResult(ctx.CurrentResultText)

	case ti.IsArray:
		if ctx.SubscriptDepth < len(ti.ArrayDimensions) {
			return PropertyAccessResult{Text: fmt.Sprintf("%d", ti.ArrayDimensions[ctx.SubscriptDepth])}
		}
		if ti.IsEnum {
			return PropertyAccessResult{Text: "32"}
		}
		if width, ok := bitWidthOf(ti.BaseType); ok {
			return PropertyAccessResult{Text: fmt.Sprintf("%d", width)}
		}
		return placeholderLength(ti.BaseType)

	case ti.IsEnum:
		return PropertyAccessResult{Text: "32"}

	default:
		if width, ok := bitWidthOf(ti.BaseType); ok {
			return PropertyAccessResult{Text: fmt.Sprintf("%d", width)}
		}
		return placeholderLength(ti.BaseType)
	}
}

func strlenResult(expr string) PropertyAccessResult {
	return PropertyAccessResult{
		Text:    fmt.Sprintf("strlen(%s)", expr),
		Effects: []Effect{{Kind: EffectIncludeHeader, Value: "string.h"}},
	}
}

// GenerateCapacity implements `.capacity` (§4.4): requires a resolved
// string type, returns its declared capacity verbatim.
func GenerateCapacity(ctx PropertyAccessContext, lookup StructFieldLookup, file string, at Location) (PropertyAccessResult, *Diagnostic) {
	capacity, ok := stringCapacityOf(ctx, lookup)
	if !ok {
		d := errCapacitySizeOnNonString("capacity", ctx.CurrentIdentifier, file, at)
		return PropertyAccessResult{}, &d
	}
	return PropertyAccessResult{Text: fmt.Sprintf("%d", capacity)}, nil
}

// GenerateSize implements `.size` (§4.4): capacity plus one byte for
// the null terminator.
func GenerateSize(ctx PropertyAccessContext, lookup StructFieldLookup, file string, at Location) (PropertyAccessResult, *Diagnostic) {
	capacity, ok := stringCapacityOf(ctx, lookup)
	if !ok {
		d := errCapacitySizeOnNonString("size", ctx.CurrentIdentifier, file, at)
		return PropertyAccessResult{}, &d
	}
	return PropertyAccessResult{Text: fmt.Sprintf("%d", capacity+1)}, nil
}

func stringCapacityOf(ctx PropertyAccessContext, lookup StructFieldLookup) (int, bool) {
	if ctx.PreviousStructType != "" {
		field, ok := lookup(ctx.PreviousStructType, ctx.PreviousMemberName)
		if !ok || !field.IsString {
			return 0, false
		}
		return field.StringCapacity, true
	}
	if ctx.TypeInfo != nil && ctx.TypeInfo.IsString {
		return ctx.TypeInfo.StringCapacity, true
	}
	return 0, false
}
