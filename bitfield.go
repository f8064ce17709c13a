package cnext

import "fmt"

// GenerateBitFieldRead emits the C expression that reads a bitmap
// field out of its backing word (§4.5). A single-bit field reads as
// `((expr >> offset) & 1)`; a multi-bit field masks with the upper-case
// hex value of `(1<<width)-1`.
func GenerateBitFieldRead(expr string, offset, width int) string {
	if width == 1 {
		return fmt.Sprintf("((%s >> %d) & 1)", expr, offset)
	}
	mask := (uint64(1) << uint(width)) - 1
	return fmt.Sprintf("((%s >> %d) & 0x%X)", expr, offset, mask)
}

// bitFieldMaskHex renders the upper-case hex mask for a field width,
// shared by the bit-field read emitter and the RMW assignment handler.
func bitFieldMaskHex(width int) string {
	mask := (uint64(1) << uint(width)) - 1
	return fmt.Sprintf("0x%X", mask)
}
