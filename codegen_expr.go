package cnext

import "fmt"

// chainResult is what resolveChain returns for one point along a
// postfix expression chain (identifier, member access, subscript): the
// emitted C text so far, plus enough type context to drive the
// property access generator or the assignment classifier at that
// point (§4.4, §4.6).
type chainResult struct {
	Text           string
	TypeInfo       *TypeInfo
	StructType     string
	MemberName     string
	SubscriptDepth int
	BaseIdent      string
}

// GenExpr lowers one expression to C text (§2 step 7). Constant
// sub-expressions are folded via foldBinaryExprChain where possible,
// matching §4.8's codegen-time folding pass.
func (cg *CodeGenerator) GenExpr(e Expr) (string, *Diagnostic) {
	if _, isBinary := e.(*BinaryExpr); isBinary {
		if v, ok := foldBinaryExprChain(e); ok {
			return fmt.Sprintf("%d", v), nil
		}
	}

	switch n := e.(type) {
	case *IdentExpr:
		return n.Name, nil

	case *IntLiteralExpr:
		return n.Text, nil

	case *FloatLiteralExpr:
		return n.Text, nil

	case *StringLiteralExpr:
		return fmt.Sprintf("%q", n.Value), nil

	case *BoolLiteralExpr:
		if n.Value {
			return "true", nil
		}
		return "false", nil

	case *UnaryExpr:
		operand, diag := cg.GenExpr(n.Operand)
		if diag != nil {
			return "", diag
		}
		return n.Op + operand, nil

	case *BinaryExpr:
		left, diag := cg.GenExpr(n.Left)
		if diag != nil {
			return "", diag
		}
		right, diag := cg.GenExpr(n.Right)
		if diag != nil {
			return "", diag
		}
		return fmt.Sprintf("%s %s %s", left, n.Op, right), nil

	case *CallExpr:
		args := make([]string, 0, len(n.Args))
		for _, a := range n.Args {
			text, diag := cg.GenExpr(a)
			if diag != nil {
				return "", diag
			}
			args = append(args, text)
		}
		return n.Callee + "(" + joinParams(args) + ")", nil

	case *ArrayInitExpr:
		elems := make([]string, 0, len(n.Elements))
		for _, el := range n.Elements {
			text, diag := cg.GenExpr(el)
			if diag != nil {
				return "", diag
			}
			elems = append(elems, text)
		}
		if len(elems) == 0 {
			return "{0}", nil
		}
		out := "{"
		for i, el := range elems {
			if i > 0 {
				out += ", "
			}
			out += el
		}
		out += "}"
		return out, nil

	case *MemberAccessExpr:
		if n.Name == "length" || n.Name == "capacity" || n.Name == "size" {
			return cg.genPropertyAccess(n)
		}
		result, diag := cg.resolveChain(n)
		if diag != nil {
			return "", diag
		}
		return result.Text, nil

	case *IndexExpr:
		result, diag := cg.resolveChain(n)
		if diag != nil {
			return "", diag
		}
		return result.Text, nil
	}

	return "", nil
}

func (cg *CodeGenerator) genPropertyAccess(n *MemberAccessExpr) (string, *Diagnostic) {
	recv, diag := cg.resolveChain(n.Receiver)
	if diag != nil {
		return "", diag
	}

	ctx := PropertyAccessContext{
		CurrentResultText:  recv.Text,
		PrimaryID:          recv.BaseIdent,
		CurrentIdentifier:  recv.BaseIdent,
		SubscriptDepth:     recv.SubscriptDepth,
		PreviousStructType: recv.StructType,
		PreviousMemberName: recv.MemberName,
		TypeInfo:           recv.TypeInfo,
		MainArgsName:       cg.MainArgsName,
		LengthCache:        cg.LengthCache,
	}

	switch n.Name {
	case "length":
		res := GenerateLength(ctx, cg.structFieldLookup())
		for _, eff := range res.Effects {
			cg.Effects.Add(eff)
		}
		return res.Text, nil
	case "capacity":
		res, d := GenerateCapacity(ctx, cg.structFieldLookup(), cg.File, Location{})
		if d != nil {
			return "", d
		}
		return res.Text, nil
	case "size":
		res, d := GenerateSize(ctx, cg.structFieldLookup(), cg.File, Location{})
		if d != nil {
			return "", d
		}
		return res.Text, nil
	}
	return "", nil
}

// resolveChain walks a postfix chain of member/index accesses rooted
// at an identifier, tracking enough context to feed the property
// access generator or the assignment classifier at any point along it.
func (cg *CodeGenerator) resolveChain(e Expr) (chainResult, *Diagnostic) {
	switch n := e.(type) {
	case *IdentExpr:
		ti := cg.vars[n.Name]
		return chainResult{Text: n.Name, TypeInfo: ti, BaseIdent: n.Name}, nil

	case *MemberAccessExpr:
		recv, diag := cg.resolveChain(n.Receiver)
		if diag != nil {
			return chainResult{}, diag
		}
		if recv.TypeInfo != nil {
			if info, ok := cg.Symbols.StructFields[recv.TypeInfo.BaseType]; ok {
				if _, ok := info.Fields.Get(n.Name); ok {
					return chainResult{
						Text:       recv.Text + "." + n.Name,
						StructType: recv.TypeInfo.BaseType,
						MemberName: n.Name,
						BaseIdent:  recv.BaseIdent,
					}, nil
				}
			}
		}
		return chainResult{Text: recv.Text + "." + n.Name, BaseIdent: recv.BaseIdent}, nil

	case *IndexExpr:
		recv, diag := cg.resolveChain(n.Receiver)
		if diag != nil {
			return chainResult{}, diag
		}
		idxTexts := make([]string, 0, len(n.Indices))
		for _, idx := range n.Indices {
			text, diag := cg.GenExpr(idx)
			if diag != nil {
				return chainResult{}, diag
			}
			idxTexts = append(idxTexts, text)
		}
		joined := idxTexts[0]
		for _, t := range idxTexts[1:] {
			joined += ", " + t
		}
		return chainResult{
			Text:           recv.Text + "[" + joined + "]",
			TypeInfo:       recv.TypeInfo,
			StructType:     recv.StructType,
			MemberName:     recv.MemberName,
			SubscriptDepth: recv.SubscriptDepth + 1,
			BaseIdent:      recv.BaseIdent,
		}, nil

	default:
		text, diag := cg.GenExpr(e)
		if diag != nil {
			return chainResult{}, diag
		}
		return chainResult{Text: text}, nil
	}
}
