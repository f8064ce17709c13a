package cnext

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func tokenTexts(tokens []Token) []string {
	var out []string
	for _, t := range tokens {
		if t.Kind == TokEOF {
			continue
		}
		out = append(out, t.Text)
	}
	return out
}

func TestLexerKeywordsAndIdents(t *testing.T) {
	tokens, diags := NewLexer("t.cnx", "scope Foo { public i32 bar; }").Tokenize()
	require.Empty(t, diags)
	require.Equal(t, []string{"scope", "Foo", "{", "public", "i32", "bar", ";", "}"}, tokenTexts(tokens))
	require.Equal(t, TokKeyword, tokens[0].Kind)
	require.Equal(t, TokIdent, tokens[4].Kind)
}

func TestLexerShiftAssignLongestMatch(t *testing.T) {
	tokens, diags := NewLexer("t.cnx", "x <<<- 1; y << 1 <- 2;").Tokenize()
	require.Empty(t, diags)
	texts := tokenTexts(tokens)
	require.Contains(t, texts, "<<<-")
	require.NotContains(t, texts, "<<-")

	var ops []string
	for _, tok := range tokens {
		if tok.Kind == TokOp {
			ops = append(ops, tok.Text)
		}
	}
	require.Equal(t, []string{"<<<-", "<<", "<-"}, ops)
}

func TestLexerNumericLiterals(t *testing.T) {
	tokens, diags := NewLexer("t.cnx", "0x1F 0b101 42 3.5").Tokenize()
	require.Empty(t, diags)
	require.Equal(t, TokInt, tokens[0].Kind)
	require.Equal(t, "0x1F", tokens[0].Text)
	require.Equal(t, TokInt, tokens[1].Kind)
	require.Equal(t, "0b101", tokens[1].Text)
	require.Equal(t, TokInt, tokens[2].Kind)
	require.Equal(t, TokFloat, tokens[3].Kind)
	require.Equal(t, "3.5", tokens[3].Text)
}

func TestLexerStringEscapes(t *testing.T) {
	tokens, diags := NewLexer("t.cnx", `"line1\nline2\t\"quoted\""`).Tokenize()
	require.Empty(t, diags)
	require.Equal(t, TokString, tokens[0].Kind)
	require.Equal(t, "line1\nline2\t\"quoted\"", tokens[0].Text)
}

func TestLexerUnterminatedStringDiagnostic(t *testing.T) {
	_, diags := NewLexer("t.cnx", `"unterminated`).Tokenize()
	require.Len(t, diags, 1)
	require.Equal(t, KindSyntaxError, diags[0].Kind)
	require.Equal(t, SeverityError, diags[0].Severity)
}

func TestLexerCommentsSkipped(t *testing.T) {
	tokens, diags := NewLexer("t.cnx", "i32 a; // trailing comment\n/* block\ncomment */ i32 b;").Tokenize()
	require.Empty(t, diags)
	require.Equal(t, []string{"i32", "a", ";", "i32", "b", ";"}, tokenTexts(tokens))
}
