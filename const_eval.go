package cnext

// evalConstExpr evaluates a constant expression during collection
// (§4.1: enum member values, struct/variable array dimensions). It
// accepts decimal / 0x.../0b... integer literals, named constants
// resolved through `consts` (e.g. previously-collected enum members),
// and +,-,*,/,% arithmetic with unary +/-. This is distinct from
// foldConstants in constfold.go, which folds already-emitted operand
// text during code generation (§4.8); this one walks parse-tree Expr
// nodes during symbol collection (§4.1's "Constant-expression
// evaluation").
func evalConstExpr(e Expr, consts map[string]int64) (int64, bool) {
	switch n := e.(type) {
	case *IntLiteralExpr:
		return tryParseNumericLiteral(n.Text)
	case *IdentExpr:
		v, ok := consts[n.Name]
		return v, ok
	case *UnaryExpr:
		v, ok := evalConstExpr(n.Operand, consts)
		if !ok {
			return 0, false
		}
		switch n.Op {
		case "-":
			return -v, true
		case "+":
			return v, true
		default:
			return 0, false
		}
	case *BinaryExpr:
		l, ok := evalConstExpr(n.Left, consts)
		if !ok {
			return 0, false
		}
		r, ok := evalConstExpr(n.Right, consts)
		if !ok {
			return 0, false
		}
		switch n.Op {
		case "+":
			return l + r, true
		case "-":
			return l - r, true
		case "*":
			return l * r, true
		case "/":
			if r == 0 {
				return 0, false
			}
			return l / r, true
		case "%":
			if r == 0 {
				return 0, false
			}
			return l % r, true
		default:
			return 0, false
		}
	default:
		return 0, false
	}
}
