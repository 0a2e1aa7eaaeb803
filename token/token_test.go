package token

import "testing"

func TestTokenIs(t *testing.T) {
	tests := []struct {
		name   string
		token  Token
		lexeme string
		want   bool
	}{
		{"matching operator", Make(OPERATOR, "+", 0), "+", true},
		{"matching reserved word", Make(IDENTIFIER, "IF", 0), "IF", true},
		{"plain identifier never matches a keyword lexeme", Make(IDENTIFIER, "x", 0), "IF", false},
		{"string literal never matches via Is", Make(STRING, "IF", 0), "IF", false},
		{"different literal", Make(OPERATOR, "+", 0), "-", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.token.Is(tt.lexeme); got != tt.want {
				t.Errorf("Is(%q) = %v, want %v", tt.lexeme, got, tt.want)
			}
		})
	}
}

func TestReservedWordsAndOperatorsAreClosed(t *testing.T) {
	for _, word := range []string{"LIST", "VAR", "VAL", "FUN", "LET", "IF", "ELSE", "DO", "END",
		"WHILE", "SWITCH", "CASE", "DEFAULT", "RETURN", "NIL", "TRUE", "FALSE"} {
		if !ReservedWords[word] {
			t.Errorf("expected %q to be reserved", word)
		}
	}
	if ReservedWords["main"] {
		t.Error("identifiers outside the fixed set must not be reserved")
	}
	for _, op := range []string{"(", ")", "[", "]", ",", ";", ":", "=", "+", "-", "*", "/", "^", "<", ">", "==", "!=", "&&", "||"} {
		if !Operators[op] {
			t.Errorf("expected %q to be a recognized operator", op)
		}
	}
}

func TestMakeAndString(t *testing.T) {
	tok := Make(INTEGER, "42", 7)
	if tok.Kind != INTEGER || tok.Literal != "42" || tok.Offset != 7 {
		t.Fatalf("Make produced unexpected token: %+v", tok)
	}
	if tok.String() == "" {
		t.Error("String() should not be empty")
	}
}
