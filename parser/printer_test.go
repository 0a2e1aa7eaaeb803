package parser

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestPrintASTJSONShape(t *testing.T) {
	src := parse(t, `
VAL answer: Integer = 42;
FUN main(): Integer DO RETURN answer; END
`)
	out, err := PrintASTJSON(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var tree map[string]any
	if err := json.Unmarshal([]byte(out), &tree); err != nil {
		t.Fatalf("PrintASTJSON output did not parse as JSON: %v", err)
	}

	globals, ok := tree["globals"].([]any)
	if !ok || len(globals) != 1 {
		t.Fatalf("expected one global in the tree, got %v", tree["globals"])
	}
	global := globals[0].(map[string]any)
	if global["name"] != "answer" || global["type"] != "Global" {
		t.Errorf("unexpected global node: %v", global)
	}

	functions, ok := tree["functions"].([]any)
	if !ok || len(functions) != 1 {
		t.Fatalf("expected one function in the tree, got %v", tree["functions"])
	}
	fn := functions[0].(map[string]any)
	if fn["name"] != "main" {
		t.Errorf("unexpected function node: %v", fn)
	}
}

func TestWriteASTJSONToFile(t *testing.T) {
	src := parse(t, `FUN main(): Integer DO RETURN 0; END`)
	path := filepath.Join(t.TempDir(), "ast.json")

	if err := WriteASTJSONToFile(src, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected the AST file to exist: %v", err)
	}
	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		t.Fatalf("file contents did not parse as JSON: %v", err)
	}
}
