package lexer

import (
	"testing"

	"plc/token"
)

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestScanBasicProgram(t *testing.T) {
	src := `VAL answer: Integer = 42;
FUN main(): Integer DO RETURN answer; END`

	tokens, err := New(src).Scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[len(tokens)-1].Kind != token.EOF {
		t.Fatalf("expected trailing EOF token, got %v", tokens[len(tokens)-1])
	}

	var literals []string
	for _, tok := range tokens {
		if tok.Kind != token.EOF {
			literals = append(literals, tok.Literal)
		}
	}
	want := []string{"VAL", "answer", ":", "Integer", "=", "42", ";",
		"FUN", "main", "(", ")", ":", "Integer", "DO", "RETURN", "answer", ";", "END"}
	if len(literals) != len(want) {
		t.Fatalf("got %d tokens %v, want %d tokens %v", len(literals), literals, len(want), want)
	}
	for i := range want {
		if literals[i] != want[i] {
			t.Errorf("token %d: got %q, want %q", i, literals[i], want[i])
		}
	}
}

func TestScanOperators(t *testing.T) {
	tokens, err := New("== != && || < > = + - * / ^").Scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"==", "!=", "&&", "||", "<", ">", "=", "+", "-", "*", "/", "^"}
	for i, w := range want {
		if tokens[i].Kind != token.OPERATOR || tokens[i].Literal != w {
			t.Errorf("token %d: got %+v, want operator %q", i, tokens[i], w)
		}
	}
}

func TestScanNumericLiterals(t *testing.T) {
	tokens, err := New("42 3.14").Scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Kind != token.INTEGER || tokens[0].Literal != "42" {
		t.Errorf("expected INTEGER 42, got %+v", tokens[0])
	}
	if tokens[1].Kind != token.DECIMAL || tokens[1].Literal != "3.14" {
		t.Errorf("expected DECIMAL 3.14, got %+v", tokens[1])
	}
}

func TestScanCharacterAndStringEscapes(t *testing.T) {
	tokens, err := New(`'\n' "a\tb\\c\"d"`).Scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Kind != token.CHARACTER || tokens[0].Literal != "\n" {
		t.Errorf("expected CHARACTER literal newline, got %+v", tokens[0])
	}
	if tokens[1].Kind != token.STRING || tokens[1].Literal != "a\tb\\c\"d" {
		t.Errorf("expected unescaped string, got %+v", tokens[1])
	}
}

func TestScanSkipsComments(t *testing.T) {
	tokens, err := New("42 # trailing comment\n43").Scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != 3 { // 42, 43, EOF
		t.Fatalf("expected 3 tokens, got %d: %v", len(tokens), tokens)
	}
	if tokens[0].Literal != "42" || tokens[1].Literal != "43" {
		t.Errorf("comment not skipped correctly: %v", tokens)
	}
}

func TestScanReportsOffsets(t *testing.T) {
	tokens, err := New("  42").Scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Offset != 2 {
		t.Errorf("expected offset 2 for literal after two spaces, got %d", tokens[0].Offset)
	}
}

func TestScanRejectsUnterminatedString(t *testing.T) {
	_, err := New(`"unterminated`).Scan()
	if err == nil {
		t.Fatal("expected an error for an unterminated string literal")
	}
}

func TestScanRejectsMultiCharacterLiteral(t *testing.T) {
	_, err := New(`'ab'`).Scan()
	if err == nil {
		t.Fatal("expected an error for a multi-rune character literal")
	}
}

func TestParseIntegerAndDecimalHelpers(t *testing.T) {
	i, ok := ParseInteger("123")
	if !ok || i.String() != "123" {
		t.Errorf("ParseInteger(123) = %v, %v", i, ok)
	}
	if _, ok := ParseInteger("not-a-number"); ok {
		t.Error("expected ParseInteger to reject malformed input")
	}
	d, err := ParseDecimal("3.5")
	if err != nil || d.String() != "3.5" {
		t.Errorf("ParseDecimal(3.5) = %v, %v", d, err)
	}
}
