package cnext

// foldConstants attempts left-to-right folding of an alternating
// operand/operator sequence `v0 op0 v1 op1 v2 ...` where every operand
// is a numeric literal (§4.8). Supports + - * % /; division and modulo
// truncate toward zero (Go's native int64 division already does this).
// Any operator outside {+,-,*,/,%} aborts folding, as does division or
// modulo by zero. Returns (result, true) on success.
func foldConstants(operands []string, operators []string) (int64, bool) {
	if len(operands) == 0 || len(operands) != len(operators)+1 {
		return 0, false
	}

	acc, ok := tryParseNumericLiteral(operands[0])
	if !ok {
		return 0, false
	}

	for i, op := range operators {
		rhs, ok := tryParseNumericLiteral(operands[i+1])
		if !ok {
			return 0, false
		}
		switch op {
		case "+":
			acc += rhs
		case "-":
			acc -= rhs
		case "*":
			acc *= rhs
		case "/":
			if rhs == 0 {
				return 0, false
			}
			acc /= rhs
		case "%":
			if rhs == 0 {
				return 0, false
			}
			acc %= rhs
		default:
			// bitwise, shift and comparison operators are not foldable here.
			return 0, false
		}
	}
	return acc, true
}

// foldBinaryExprChain flattens a left-associative chain of BinaryExpr
// nodes into operand/operator lists and folds them. Returns (0, false)
// if the chain isn't entirely numeric-literal leaves connected
// by foldable operators.
func foldBinaryExprChain(e Expr) (int64, bool) {
	operands, operators, ok := flattenBinaryChain(e, nil, nil)
	if !ok {
		return 0, false
	}
	return foldConstants(operands, operators)
}

func flattenBinaryChain(e Expr, operands []string, operators []string) ([]string, []string, bool) {
	switch n := e.(type) {
	case *IntLiteralExpr:
		return append(operands, n.Text), operators, true
	case *BinaryExpr:
		operands, operators, ok := flattenBinaryChain(n.Left, operands, operators)
		if !ok {
			return nil, nil, false
		}
		operators = append(operators, n.Op)
		return flattenBinaryChain(n.Right, operands, operators)
	default:
		return nil, nil, false
	}
}
