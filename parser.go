package cnext

import (
	"fmt"
	"strconv"
)

// Parser is a hand-rolled recursive-descent parser over the token
// stream Lexer produces, turning one translation unit's source text
// into a CompilationUnit (§6 parse-tree contract). Grounded on the
// teacher's general "one method per production, descend on the next
// token" shape (base_parser.go), generalized from PEG-driven dispatch
// to a plain top-down parser since this grammar's left-arrow operator
// family isn't a good fit for the teacher's PEG engine's precedence
// handling.
type Parser struct {
	file   string
	tokens []Token
	pos    int
	diags  []Diagnostic
}

// Parse tokenizes and parses source text for file into a CompilationUnit.
// Include directives are extracted separately (include_resolver.go's
// extractIncludes) since they're a line-oriented preprocessor concern,
// not part of the token grammar.
func Parse(file, source string) (*CompilationUnit, []Diagnostic) {
	var diags []Diagnostic
	var includes []*IncludeDirective
	for _, inc := range extractIncludes(source) {
		includes = append(includes, inc.Directive)
	}

	lex := NewLexer(file, source)
	tokens, lexDiags := lex.Tokenize()
	diags = append(diags, lexDiags...)

	p := &Parser{file: file, tokens: tokens}
	unit := &CompilationUnit{Path: file, Includes: includes}

	for !p.atEOF() {
		if p.peek().Kind == TokPunct && len(p.peek().Text) > 0 && p.peek().Text[0] == '#' {
			p.advance()
			continue
		}
		decl := p.parseDeclaration()
		if decl != nil {
			unit.Declarations = append(unit.Declarations, decl)
		}
	}

	diags = append(diags, p.diags...)
	return unit, diags
}

func (p *Parser) peek() Token  { return p.tokens[p.pos] }
func (p *Parser) atEOF() bool  { return p.peek().Kind == TokEOF }
func (p *Parser) advance() Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) check(kind TokenKind, text string) bool {
	t := p.peek()
	return t.Kind == kind && (text == "" || t.Text == text)
}

func (p *Parser) accept(kind TokenKind, text string) bool {
	if p.check(kind, text) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(kind TokenKind, text string) Token {
	if p.check(kind, text) {
		return p.advance()
	}
	got := p.peek()
	p.errorf(got.Span.Start, "expected %q, got %q", text, got.Text)
	return got
}

func (p *Parser) errorf(at Location, format string, args ...interface{}) {
	p.diags = append(p.diags, errSyntax(fmt.Sprintf(format, args...), p.file, at, SeverityError))
}

// --- Declarations ---

func (p *Parser) parseDeclaration() *Declaration {
	switch {
	case p.check(TokKeyword, "scope"):
		return &Declaration{Scope: p.parseScope()}
	case p.check(TokKeyword, "struct"):
		return &Declaration{Struct: p.parseStruct()}
	case p.check(TokKeyword, "enum"):
		return &Declaration{Enum: p.parseEnum()}
	case p.check(TokKeyword, "register"):
		return &Declaration{Register: p.parseRegister()}
	case p.isBitmapKeyword():
		return &Declaration{Bitmap: p.parseBitmap()}
	default:
		return p.parseVarOrFunc("")
	}
}

func (p *Parser) isBitmapKeyword() bool {
	t := p.peek()
	return (t.Kind == TokIdent || t.Kind == TokKeyword) && isBitmapTypeName(t.Text)
}

func isBitmapTypeName(s string) bool {
	switch s {
	case "bitmap8", "bitmap16", "bitmap24", "bitmap32", "bitmap64":
		return true
	default:
		return false
	}
}

func bitmapDeclaredWidth(s string) int {
	switch s {
	case "bitmap8":
		return 8
	case "bitmap16":
		return 16
	case "bitmap24":
		return 24
	case "bitmap32":
		return 32
	case "bitmap64":
		return 64
	default:
		return 8
	}
}

func (p *Parser) parseScope() *ScopeDecl {
	start := p.expect(TokKeyword, "scope").Span.Start
	name := p.expect(TokIdent, "").Text
	p.expect(TokPunct, "{")

	decl := &ScopeDecl{Name: name}
	for !p.check(TokPunct, "}") && !p.atEOF() {
		decl.Members = append(decl.Members, p.parseScopeMember())
	}
	end := p.expect(TokPunct, "}").Span.End
	decl.Span = Span{Start: start, End: end}
	return decl
}

func (p *Parser) parseScopeMember() *ScopeMemberDecl {
	visibility := ""
	if p.check(TokKeyword, "public") || p.check(TokKeyword, "private") {
		visibility = p.advance().Text
	}

	member := &ScopeMemberDecl{Visibility: visibility}
	switch {
	case p.check(TokKeyword, "struct"):
		member.Struct = p.parseStruct()
	case p.check(TokKeyword, "enum"):
		member.Enum = p.parseEnum()
	case p.check(TokKeyword, "register"):
		member.Register = p.parseRegister()
	case p.isBitmapKeyword():
		member.Bitmap = p.parseBitmap()
	default:
		decl := p.parseVarOrFunc(visibility)
		if decl != nil {
			member.Variable = decl.Variable
			member.Function = decl.Function
		}
	}
	return member
}

func (p *Parser) parseStruct() *StructDecl {
	start := p.expect(TokKeyword, "struct").Span.Start
	name := p.expect(TokIdent, "").Text
	p.expect(TokPunct, "{")

	decl := &StructDecl{Name: name}
	for !p.check(TokPunct, "}") && !p.atEOF() {
		decl.Fields = append(decl.Fields, p.parseStructField())
		p.accept(TokPunct, ";")
	}
	end := p.expect(TokPunct, "}").Span.End
	decl.Span = Span{Start: start, End: end}
	return decl
}

func (p *Parser) parseStructField() *StructFieldDecl {
	start := p.peek().Span.Start
	typeName, isString, strCap := p.parseTypeName()
	name := p.expect(TokIdent, "").Text

	field := &StructFieldDecl{Name: name, TypeName: typeName, IsStringType: isString, StringCapacity: strCap}
	for p.check(TokPunct, "[") {
		p.advance()
		field.Dimensions = append(field.Dimensions, p.parseExpr())
		p.expect(TokPunct, "]")
	}
	field.Span = Span{Start: start, End: p.peek().Span.Start}
	return field
}

// parseTypeName reads a base type spelling, handling the `string<N>`
// form specially since its capacity is a declaration-level expression
// rather than an array dimension.
func (p *Parser) parseTypeName() (name string, isString bool, capacity Expr) {
	tok := p.advance()
	if tok.Text == "string" && p.check(TokOp, "<") {
		p.advance()
		capacity = p.parseExpr()
		p.expect(TokOp, ">")
		return "string", true, capacity
	}
	return tok.Text, false, nil
}

func (p *Parser) parseEnum() *EnumDecl {
	start := p.expect(TokKeyword, "enum").Span.Start
	name := p.expect(TokIdent, "").Text
	p.expect(TokPunct, "{")

	decl := &EnumDecl{Name: name}
	for !p.check(TokPunct, "}") && !p.atEOF() {
		memberStart := p.peek().Span.Start
		memberName := p.expect(TokIdent, "").Text
		var explicit Expr
		if p.check(TokOp, "<-") {
			p.advance()
			explicit = p.parseExpr()
		}
		decl.Members = append(decl.Members, &EnumMemberDecl{
			Name: memberName, Explicit: explicit,
			Span: Span{Start: memberStart, End: p.peek().Span.Start},
		})
		if !p.accept(TokPunct, ",") && !p.accept(TokPunct, ";") {
			break
		}
	}
	end := p.expect(TokPunct, "}").Span.End
	decl.Span = Span{Start: start, End: end}
	return decl
}

func (p *Parser) parseBitmap() *BitmapDecl {
	start := p.peek().Span.Start
	width := bitmapDeclaredWidth(p.advance().Text)
	name := p.expect(TokIdent, "").Text
	p.expect(TokPunct, "{")

	decl := &BitmapDecl{Name: name, DeclaredWidth: width}
	for !p.check(TokPunct, "}") && !p.atEOF() {
		fieldStart := p.peek().Span.Start
		fieldName := p.expect(TokIdent, "").Text
		field := &BitmapFieldDecl{Name: fieldName}
		if p.check(TokPunct, "[") {
			p.advance()
			n, _ := strconv.Atoi(p.expect(TokInt, "").Text)
			field.HasExplicitWidth = true
			field.ExplicitWidth = n
			p.expect(TokPunct, "]")
		}
		field.Span = Span{Start: fieldStart, End: p.peek().Span.Start}
		decl.Fields = append(decl.Fields, field)
		if !p.accept(TokPunct, ",") && !p.accept(TokPunct, ";") {
			break
		}
	}
	end := p.expect(TokPunct, "}").Span.End
	decl.Span = Span{Start: start, End: end}
	return decl
}

func (p *Parser) parseRegister() *RegisterDecl {
	start := p.expect(TokKeyword, "register").Span.Start
	name := p.expect(TokIdent, "").Text
	p.expect(TokOp, "@")
	baseAddress := p.advance().Text
	p.expect(TokPunct, "{")

	decl := &RegisterDecl{Name: name, BaseAddress: baseAddress}
	for !p.check(TokPunct, "}") && !p.atEOF() {
		memberStart := p.peek().Span.Start
		cType := p.advance().Text
		memberName := p.expect(TokIdent, "").Text
		p.expect(TokOp, "@")
		offset := p.advance().Text

		member := &RegisterMemberDecl{Name: memberName, Offset: offset, CType: cType, Access: "rw"}
		if p.check(TokPunct, ":") {
			p.advance()
			if isBitmapTypeName(p.peek().Text) || p.peek().Kind == TokIdent {
				member.BitmapTypeName = p.advance().Text
			}
		}
		if p.check(TokKeyword, "rw") || p.check(TokKeyword, "ro") || p.check(TokKeyword, "wo") ||
			p.check(TokKeyword, "w1c") || p.check(TokKeyword, "w1s") {
			member.Access = p.advance().Text
		}
		member.Span = Span{Start: memberStart, End: p.peek().Span.Start}
		decl.Members = append(decl.Members, member)
		p.accept(TokPunct, ";")
	}
	end := p.expect(TokPunct, "}").Span.End
	decl.Span = Span{Start: start, End: end}
	return decl
}

// parseVarOrFunc parses a leading-type declaration that is either a
// variable or a function, disambiguated by whether `(` follows the
// name (§6: both share a type+name prefix).
func (p *Parser) parseVarOrFunc(visibility string) *Declaration {
	start := p.peek().Span.Start

	isConst := false
	if p.check(TokKeyword, "const") {
		isConst = true
		p.advance()
	}
	atomic := false
	if p.check(TokKeyword, "atomic") {
		atomic = true
		p.advance()
	}
	if !p.check(TokIdent, "") && p.peek().Kind != TokKeyword {
		p.errorf(p.peek().Span.Start, "expected type name, got %q", p.peek().Text)
		p.skipToSyncPoint()
		return nil
	}
	typeName, isString, strCap := p.parseTypeName()
	_ = isString
	_ = strCap

	if !p.check(TokIdent, "") {
		p.errorf(p.peek().Span.Start, "expected identifier, got %q", p.peek().Text)
		p.skipToSyncPoint()
		return nil
	}
	name := p.advance().Text

	if p.check(TokPunct, "(") {
		return &Declaration{Function: p.parseFunctionRest(name, typeName, visibility, start)}
	}
	variable := p.parseVariableRest(name, typeName, isConst, atomic, start)
	p.accept(TokPunct, ";")
	return &Declaration{Variable: variable}
}

func (p *Parser) parseVariableRest(name, typeName string, isConst, atomic bool, start Location) *VariableDecl {
	decl := &VariableDecl{Name: name, TypeName: typeName, IsConst: isConst, Atomic: atomic}
	for p.check(TokPunct, "[") {
		p.advance()
		if !p.check(TokPunct, "]") {
			decl.Dimensions = append(decl.Dimensions, p.parseExpr())
		} else {
			decl.Dimensions = append(decl.Dimensions, nil)
		}
		p.expect(TokPunct, "]")
	}
	if p.check(TokKeyword, "wrap") || p.check(TokKeyword, "saturate") || p.check(TokKeyword, "trap") {
		decl.Overflow = p.advance().Text
	}
	if p.check(TokOp, "<-") {
		p.advance()
		decl.Initializer = p.parseExpr()
	}
	decl.Span = Span{Start: start, End: p.peek().Span.Start}
	return decl
}

func (p *Parser) parseFunctionRest(name, returnType, visibility string, start Location) *FunctionDecl {
	p.expect(TokPunct, "(")
	decl := &FunctionDecl{Name: name, ReturnType: returnType, Visibility: visibility}
	for !p.check(TokPunct, ")") && !p.atEOF() {
		param := &FunctionParamDecl{}
		if p.check(TokKeyword, "const") {
			param.IsConst = true
			p.advance()
		}
		param.TypeName, _, _ = p.parseTypeName()
		param.Name = p.expect(TokIdent, "").Text
		for p.check(TokPunct, "[") {
			p.advance()
			param.IsArray = true
			if !p.check(TokPunct, "]") {
				param.ArrayDimensions = append(param.ArrayDimensions, p.parseExpr())
			}
			p.expect(TokPunct, "]")
		}
		decl.Params = append(decl.Params, param)
		if !p.accept(TokPunct, ",") {
			break
		}
	}
	p.expect(TokPunct, ")")
	body := p.parseBlock()
	decl.Body = body.Stmts
	decl.Span = Span{Start: start, End: body.Span.End}
	return decl
}

// --- Statements ---

func (p *Parser) parseBlock() *BlockStmt {
	start := p.expect(TokPunct, "{").Span.Start
	block := &BlockStmt{}
	for !p.check(TokPunct, "}") && !p.atEOF() {
		block.Stmts = append(block.Stmts, p.parseStmt())
	}
	end := p.expect(TokPunct, "}").Span.End
	block.Span = Span{Start: start, End: end}
	return block
}

func (p *Parser) parseStmt() Stmt {
	switch {
	case p.check(TokKeyword, "if"):
		return p.parseIf()
	case p.check(TokKeyword, "while"):
		return p.parseWhile()
	case p.check(TokKeyword, "for"):
		return p.parseFor()
	case p.check(TokKeyword, "return"):
		return p.parseReturn()
	case p.check(TokKeyword, "break"):
		start := p.advance().Span
		p.accept(TokPunct, ";")
		return &BreakStmt{stmtBase{start}}
	case p.check(TokKeyword, "continue"):
		start := p.advance().Span
		p.accept(TokPunct, ";")
		return &ContinueStmt{stmtBase{start}}
	case p.check(TokPunct, "{"):
		return p.parseBlock()
	case p.isLocalVarDeclStart():
		return p.parseLocalVarDecl()
	default:
		return p.parseExprOrAssignStmt()
	}
}

func (p *Parser) parseIf() *IfStmt {
	start := p.expect(TokKeyword, "if").Span.Start
	p.expect(TokPunct, "(")
	cond := p.parseExpr()
	p.expect(TokPunct, ")")
	then := p.parseBlock()
	stmt := &IfStmt{Cond: cond, Then: then}
	if p.check(TokKeyword, "else") {
		p.advance()
		if p.check(TokKeyword, "if") {
			stmt.Else = p.parseIf()
		} else {
			stmt.Else = p.parseBlock()
		}
	}
	stmt.Span = Span{Start: start, End: p.peek().Span.Start}
	return stmt
}

func (p *Parser) parseWhile() *WhileStmt {
	start := p.expect(TokKeyword, "while").Span.Start
	p.expect(TokPunct, "(")
	cond := p.parseExpr()
	p.expect(TokPunct, ")")
	body := p.parseBlock()
	return &WhileStmt{Cond: cond, Body: body, stmtBase: stmtBase{Span{Start: start, End: body.Span.End}}}
}

func (p *Parser) parseFor() *ForStmt {
	start := p.expect(TokKeyword, "for").Span.Start
	p.expect(TokPunct, "(")
	var init Stmt
	if !p.check(TokPunct, ";") {
		init = p.parseForClauseStmt()
	}
	p.expect(TokPunct, ";")
	var cond Expr
	if !p.check(TokPunct, ";") {
		cond = p.parseExpr()
	}
	p.expect(TokPunct, ";")
	var post Stmt
	if !p.check(TokPunct, ")") {
		post = p.parseForClauseStmt()
	}
	p.expect(TokPunct, ")")
	body := p.parseBlock()
	return &ForStmt{Init: init, Cond: cond, Post: post, Body: body, stmtBase: stmtBase{Span{Start: start, End: body.Span.End}}}
}

// parseForClauseStmt parses an init/post clause without requiring a
// trailing semicolon (the surrounding `for` already consumes it).
func (p *Parser) parseForClauseStmt() Stmt {
	if p.isLocalVarDeclStart() {
		return p.parseLocalVarDeclNoSemi()
	}
	start := p.peek().Span.Start
	target := p.parseAssignTarget()
	if op, ok := p.tryParseAssignOp(); ok {
		value := p.parseExpr()
		return &AssignStmt{Target: target, Op: op, Value: value, stmtBase: stmtBase{Span{Start: start, End: p.peek().Span.Start}}}
	}
	return &ExprStmt{X: p.targetToExpr(target), stmtBase: stmtBase{Span{Start: start, End: p.peek().Span.Start}}}
}

func (p *Parser) parseReturn() *ReturnStmt {
	start := p.expect(TokKeyword, "return").Span.Start
	stmt := &ReturnStmt{}
	if !p.check(TokPunct, ";") {
		stmt.Value = p.parseExpr()
	}
	p.accept(TokPunct, ";")
	stmt.Span = Span{Start: start, End: p.peek().Span.Start}
	return stmt
}

// isLocalVarDeclStart looks for a type-name prefix: `const`/`atomic`
// keyword, a known scalar/bitmap type keyword, or an identifier
// immediately followed by another identifier (TYPE NAME pattern).
func (p *Parser) isLocalVarDeclStart() bool {
	if p.check(TokKeyword, "const") || p.check(TokKeyword, "atomic") {
		return true
	}
	t := p.peek()
	if t.Kind != TokIdent && t.Kind != TokKeyword {
		return false
	}
	if !isScalarTypeName(t.Text) && !isBitmapTypeName(t.Text) && t.Text != "string" {
		return false
	}
	next := p.tokens[min(p.pos+1, len(p.tokens)-1)]
	return next.Kind == TokIdent || (t.Text == "string" && next.Kind == TokOp && next.Text == "<")
}

func isScalarTypeName(s string) bool {
	switch s {
	case "i8", "i16", "i32", "i64", "u8", "u16", "u32", "u64", "f32", "f64", "bool", "void":
		return true
	default:
		return false
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// parseLocalVarDecl parses a local variable declaration in statement
// position, consuming its trailing `;`.
func (p *Parser) parseLocalVarDecl() *LocalVarDeclStmt {
	stmt := p.parseLocalVarDeclNoSemi()
	p.accept(TokPunct, ";")
	return stmt
}

// parseLocalVarDeclNoSemi parses a local variable declaration without
// consuming a trailing `;`, for use as a `for` loop's init clause where
// the separator is consumed by the caller instead.
func (p *Parser) parseLocalVarDeclNoSemi() *LocalVarDeclStmt {
	start := p.peek().Span.Start
	isConst := false
	if p.check(TokKeyword, "const") {
		isConst = true
		p.advance()
	}
	atomic := false
	if p.check(TokKeyword, "atomic") {
		atomic = true
		p.advance()
	}
	typeName, _, _ := p.parseTypeName()
	name := p.expect(TokIdent, "").Text
	decl := p.parseVariableRest(name, typeName, isConst, atomic, start)
	return &LocalVarDeclStmt{Decl: decl, stmtBase: stmtBase{decl.Span}}
}

// parseExprOrAssignStmt parses either a bare expression statement or an
// assignment, disambiguated by whether an assignment operator follows
// the parsed target chain.
func (p *Parser) parseExprOrAssignStmt() Stmt {
	start := p.peek().Span.Start
	target := p.parseAssignTarget()
	if op, ok := p.tryParseAssignOp(); ok {
		value := p.parseExpr()
		p.accept(TokPunct, ";")
		return &AssignStmt{Target: target, Op: op, Value: value, stmtBase: stmtBase{Span{Start: start, End: p.peek().Span.Start}}}
	}
	stmt := &ExprStmt{X: p.targetToExpr(target), stmtBase: stmtBase{Span{Start: start, End: p.peek().Span.Start}}}
	p.accept(TokPunct, ";")
	return stmt
}

func (p *Parser) tryParseAssignOp() (AssignOp, bool) {
	if p.peek().Kind != TokOp {
		return 0, false
	}
	if op, ok := ParseAssignOp(p.peek().Text); ok {
		p.advance()
		return op, true
	}
	return 0, false
}

// parseAssignTarget parses `IDENTIFIER postfixTargetOp*`; callers that
// discover this wasn't actually an assignment convert it back to an
// Expr via targetToExpr.
func (p *Parser) parseAssignTarget() *AssignTarget {
	start := p.peek().Span.Start
	base := p.expect(TokIdent, "").Text
	target := &AssignTarget{Base: base}
	for {
		if p.check(TokPunct, ".") {
			p.advance()
			target.Ops = append(target.Ops, MemberOp{Name: p.expect(TokIdent, "").Text})
			continue
		}
		if p.check(TokPunct, "[") {
			p.advance()
			indices := []Expr{p.parseExpr()}
			for p.accept(TokPunct, ",") {
				indices = append(indices, p.parseExpr())
			}
			p.expect(TokPunct, "]")
			target.Ops = append(target.Ops, SubscriptOp{Indices: indices})
			continue
		}
		break
	}
	target.Span = Span{Start: start, End: p.peek().Span.Start}
	return target
}

// targetToExpr converts a parsed AssignTarget chain into the equivalent
// Expr tree, used when the statement turns out to be a bare call/access
// expression rather than an assignment.
func (p *Parser) targetToExpr(t *AssignTarget) Expr {
	var e Expr = &IdentExpr{Name: t.Base, exprBase: exprBase{t.Span}}
	for _, op := range t.Ops {
		switch o := op.(type) {
		case MemberOp:
			e = &MemberAccessExpr{Receiver: e, Name: o.Name, exprBase: exprBase{t.Span}}
		case SubscriptOp:
			e = &IndexExpr{Receiver: e, Indices: o.Indices, exprBase: exprBase{t.Span}}
		}
	}
	if p.check(TokPunct, "(") {
		e = p.parseCallRest(e)
	}
	return e
}

// --- Expressions (precedence climbing) ---

var binaryPrecedence = map[string]int{
	"||": 1, "&&": 2,
	"|": 3, "^": 4, "&": 5,
	"==": 6, "!=": 6, "<": 7, ">": 7, "<=": 7, ">=": 7,
	"<<": 8, ">>": 8,
	"+": 9, "-": 9,
	"*": 10, "/": 10, "%": 10,
}

func (p *Parser) parseExpr() Expr { return p.parseBinary(1) }

func (p *Parser) parseBinary(minPrec int) Expr {
	left := p.parseUnary()
	for {
		tok := p.peek()
		if tok.Kind != TokOp {
			return left
		}
		prec, ok := binaryPrecedence[tok.Text]
		if !ok || prec < minPrec {
			return left
		}
		p.advance()
		right := p.parseBinary(prec + 1)
		left = &BinaryExpr{Op: tok.Text, Left: left, Right: right, exprBase: exprBase{Span{Start: left.Range().Start, End: right.Range().End}}}
	}
}

func (p *Parser) parseUnary() Expr {
	if p.peek().Kind == TokOp && (p.peek().Text == "-" || p.peek().Text == "!" || p.peek().Text == "~") {
		start := p.peek().Span.Start
		op := p.advance().Text
		operand := p.parseUnary()
		return &UnaryExpr{Op: op, Operand: operand, exprBase: exprBase{Span{Start: start, End: operand.Range().End}}}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() Expr {
	e := p.parsePrimary()
	for {
		switch {
		case p.check(TokPunct, "."):
			start := e.Range().Start
			p.advance()
			name := p.expect(TokIdent, "").Text
			e = &MemberAccessExpr{Receiver: e, Name: name, exprBase: exprBase{Span{Start: start, End: p.peek().Span.Start}}}
		case p.check(TokPunct, "["):
			start := e.Range().Start
			p.advance()
			indices := []Expr{p.parseExpr()}
			for p.accept(TokPunct, ",") {
				indices = append(indices, p.parseExpr())
			}
			p.expect(TokPunct, "]")
			e = &IndexExpr{Receiver: e, Indices: indices, exprBase: exprBase{Span{Start: start, End: p.peek().Span.Start}}}
		case p.check(TokPunct, "("):
			e = p.parseCallRest(e)
		default:
			return e
		}
	}
}

// parseCallRest consumes a call's argument list given its already-parsed
// callee expression, which must be a bare identifier per §6 (CallExpr.Callee
// is a string, not a nested Expr).
func (p *Parser) parseCallRest(callee Expr) Expr {
	start := callee.Range().Start
	name := ""
	if ident, ok := callee.(*IdentExpr); ok {
		name = ident.Name
	}
	p.expect(TokPunct, "(")
	var args []Expr
	for !p.check(TokPunct, ")") && !p.atEOF() {
		args = append(args, p.parseExpr())
		if !p.accept(TokPunct, ",") {
			break
		}
	}
	end := p.expect(TokPunct, ")").Span.End
	return &CallExpr{Callee: name, Args: args, exprBase: exprBase{Span{Start: start, End: end}}}
}

func (p *Parser) parsePrimary() Expr {
	start := p.peek().Span.Start
	switch {
	case p.check(TokInt, ""):
		tok := p.advance()
		return &IntLiteralExpr{Text: tok.Text, exprBase: exprBase{tok.Span}}
	case p.check(TokFloat, ""):
		tok := p.advance()
		return &FloatLiteralExpr{Text: tok.Text, exprBase: exprBase{tok.Span}}
	case p.check(TokString, ""):
		tok := p.advance()
		return &StringLiteralExpr{Value: tok.Text, exprBase: exprBase{tok.Span}}
	case p.check(TokKeyword, "true"):
		tok := p.advance()
		return &BoolLiteralExpr{Value: true, exprBase: exprBase{tok.Span}}
	case p.check(TokKeyword, "false"):
		tok := p.advance()
		return &BoolLiteralExpr{Value: false, exprBase: exprBase{tok.Span}}
	case p.check(TokPunct, "("):
		p.advance()
		e := p.parseExpr()
		p.expect(TokPunct, ")")
		return e
	case p.check(TokPunct, "["):
		return p.parseArrayInit()
	case p.check(TokIdent, ""):
		tok := p.advance()
		return &IdentExpr{Name: tok.Text, exprBase: exprBase{tok.Span}}
	default:
		tok := p.advance()
		p.errorf(start, "unexpected token %q in expression", tok.Text)
		return &IdentExpr{Name: tok.Text, exprBase: exprBase{tok.Span}}
	}
}

// parseArrayInit parses `[e1, e2, ...]` or the fill-all form `[v*]`
// (§4.7).
func (p *Parser) parseArrayInit() Expr {
	start := p.expect(TokPunct, "[").Span.Start
	lit := &ArrayInitExpr{}
	if !p.check(TokPunct, "]") {
		// Try the fill-all form first: a single operand followed by `*]`,
		// so the `*` is not taken as a multiplication.
		save, saveDiags := p.pos, len(p.diags)
		first := p.parseUnary()
		if p.check(TokOp, "*") && p.pos+1 < len(p.tokens) &&
			p.tokens[p.pos+1].Kind == TokPunct && p.tokens[p.pos+1].Text == "]" {
			p.advance()
			lit.FillAll = true
			lit.Elements = []Expr{first}
		} else {
			p.pos, p.diags = save, p.diags[:saveDiags]
			first = p.parseExpr()
			lit.Elements = append(lit.Elements, first)
			for p.accept(TokPunct, ",") {
				lit.Elements = append(lit.Elements, p.parseExpr())
			}
		}
	}
	end := p.expect(TokPunct, "]").Span.End
	lit.Span = Span{Start: start, End: end}
	return lit
}

// skipToSyncPoint recovers from a parse error by discarding tokens
// until the next statement/declaration boundary, so one malformed
// declaration doesn't cascade into spurious diagnostics for the rest
// of the file.
func (p *Parser) skipToSyncPoint() {
	for !p.atEOF() {
		if p.check(TokPunct, ";") {
			p.advance()
			return
		}
		if p.check(TokPunct, "}") {
			return
		}
		p.advance()
	}
}
