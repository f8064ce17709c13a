package cnext

import "testing"

func TestFoldConstants(t *testing.T) {
	v, ok := foldConstants([]string{"1", "2", "3"}, []string{"+", "*"})
	if !ok || v != 9 {
		t.Fatalf("got %d, %v want 9, true", v, ok)
	}
}

func TestFoldConstantsDivisionTruncatesTowardZero(t *testing.T) {
	v, ok := foldConstants([]string{"-7", "2"}, []string{"/"})
	if !ok || v != -3 {
		t.Fatalf("-7/2 = %d, want -3", v)
	}
	v, ok = foldConstants([]string{"7", "2"}, []string{"/"})
	if !ok || v != 3 {
		t.Fatalf("7/2 = %d, want 3", v)
	}
}

func TestFoldConstantsDivisionByZeroNotFoldable(t *testing.T) {
	if _, ok := foldConstants([]string{"1", "0"}, []string{"/"}); ok {
		t.Fatal("division by zero should not be foldable")
	}
	if _, ok := foldConstants([]string{"1", "0"}, []string{"%"}); ok {
		t.Fatal("modulo by zero should not be foldable")
	}
}

func TestFoldConstantsRejectsNonArithmeticOperators(t *testing.T) {
	if _, ok := foldConstants([]string{"1", "2"}, []string{"<<"}); ok {
		t.Fatal("shift operators should abort folding")
	}
}
