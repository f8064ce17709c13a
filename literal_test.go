package cnext

import "testing"

func TestTryParseNumericLiteral(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantOk  bool
	}{
		{"42", 42, true},
		{"0xFF", 255, true},
		{"0b1010", 10, true},
		{"  42  ", 42, true},
		{"-7", -7, true},
		{"12.5", 0, false},
		{"0xGG", 0, false},
		{"", 0, false},
		{"0x", 0, false},
	}
	for _, c := range cases {
		got, ok := tryParseNumericLiteral(c.in)
		if ok != c.wantOk {
			t.Fatalf("tryParseNumericLiteral(%q) ok = %v, want %v", c.in, ok, c.wantOk)
		}
		if ok && got != c.want {
			t.Fatalf("tryParseNumericLiteral(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}
