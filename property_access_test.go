package cnext

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func noFields(string, string) (*StructFieldInfo, bool) { return nil, false }

func TestGenerateLengthMainArgs(t *testing.T) {
	ctx := PropertyAccessContext{CurrentIdentifier: "argv", MainArgsName: "argv"}
	res := GenerateLength(ctx, noFields)
	require.Equal(t, "argc", res.Text)
}

func TestGenerateLengthFullySubscriptedEnumArrayReturns32(t *testing.T) {
	ctx := PropertyAccessContext{
		SubscriptDepth: 1,
		TypeInfo:       &TypeInfo{IsArray: true, IsEnum: true, ArrayDimensions: []int{4}},
	}
	res := GenerateLength(ctx, noFields)
	require.Equal(t, "32", res.Text)
}

func TestGenerateLengthFullySubscriptedStringArrayUsesStrlen(t *testing.T) {
	lookup := func(structType, member string) (*StructFieldInfo, bool) {
		return &StructFieldInfo{TypeName: "string", IsString: true, IsArray: true, Dimensions: []int{4, 17}}, true
	}
	ctx := PropertyAccessContext{
		PreviousStructType: "Config",
		PreviousMemberName: "names",
		SubscriptDepth:     1,
		CurrentResultText:  "cfg.names[0]",
	}
	res := GenerateLength(ctx, lookup)
	require.Equal(t, "strlen(cfg.names[0])", res.Text)
	require.Len(t, res.Effects, 1)
	require.Equal(t, "string.h", res.Effects[0].Value)
}

func TestGenerateSizeAndCapacityOnString64(t *testing.T) {
	ctx := PropertyAccessContext{TypeInfo: &TypeInfo{IsString: true, StringCapacity: 64}}
	size, err := GenerateSize(ctx, noFields, "f.cnx", Location{})
	require.Nil(t, err)
	require.Equal(t, "65", size.Text)

	capacity, err := GenerateCapacity(ctx, noFields, "f.cnx", Location{})
	require.Nil(t, err)
	require.Equal(t, "64", capacity.Text)
}

func TestGenerateCapacityOnNonStringFails(t *testing.T) {
	ctx := PropertyAccessContext{CurrentIdentifier: "x", TypeInfo: &TypeInfo{BaseType: "u32"}}
	_, err := GenerateCapacity(ctx, noFields, "f.cnx", Location{})
	require.NotNil(t, err)
	require.Equal(t, KindCapacitySizeOnNonString, err.Kind)
}

func TestGenerateLengthArrayPartialSubscriptReturnsDimension(t *testing.T) {
	ctx := PropertyAccessContext{
		SubscriptDepth: 0,
		TypeInfo:       &TypeInfo{IsArray: true, ArrayDimensions: []int{5}, BaseType: "u32"},
	}
	res := GenerateLength(ctx, noFields)
	require.Equal(t, "5", res.Text)
}

func TestGenerateLengthArrayFullySubscriptedReturnsBitWidth(t *testing.T) {
	ctx := PropertyAccessContext{
		SubscriptDepth: 1,
		TypeInfo:       &TypeInfo{IsArray: true, ArrayDimensions: []int{5}, BaseType: "u32"},
	}
	res := GenerateLength(ctx, noFields)
	require.Equal(t, "32", res.Text)
}
