package scope

import (
	"testing"

	"plc/environment"
)

func TestDefineAndLookupVariable(t *testing.T) {
	s := New()
	v := environment.NewVariable("x", environment.Integer, true)
	if err := s.DefineVariable("x", v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := s.LookupVariable("x")
	if !ok || got != v {
		t.Fatalf("LookupVariable returned %v, %v, want the defined handle", got, ok)
	}
}

func TestRedefinitionInSameScopeFails(t *testing.T) {
	s := New()
	v := environment.NewVariable("x", environment.Integer, true)
	_ = s.DefineVariable("x", v)
	if err := s.DefineVariable("x", v); err == nil {
		t.Fatal("expected redefining x in the same scope to fail")
	}
}

func TestLookupWalksParentChain(t *testing.T) {
	root := New()
	v := environment.NewVariable("x", environment.Integer, true)
	_ = root.DefineVariable("x", v)

	child := Push(root)
	got, ok := child.LookupVariable("x")
	if !ok || got != v {
		t.Fatalf("expected child scope to see parent's binding, got %v, %v", got, ok)
	}
}

func TestShadowingInChildScopeDoesNotAffectParent(t *testing.T) {
	root := New()
	outer := environment.NewVariable("x", environment.Integer, true)
	_ = root.DefineVariable("x", outer)

	child := Push(root)
	inner := environment.NewVariable("x", environment.String, true)
	_ = child.DefineVariable("x", inner)

	got, _ := child.LookupVariable("x")
	if got != inner {
		t.Error("expected child lookup to prefer its own shadowing binding")
	}
	parentGot, _ := root.LookupVariable("x")
	if parentGot != outer {
		t.Error("shadowing in the child must not mutate the parent's binding")
	}
}

func TestLookupVariableAbsence(t *testing.T) {
	s := New()
	if _, ok := s.LookupVariable("missing"); ok {
		t.Fatal("expected lookup of an undefined variable to fail")
	}
}

func TestFunctionsKeyedByNameAndArity(t *testing.T) {
	s := New()
	unary := &environment.Function{SourceName: "f", ParamTypes: []environment.Type{environment.Integer}}
	binary := &environment.Function{SourceName: "f", ParamTypes: []environment.Type{environment.Integer, environment.Integer}}

	if err := s.DefineFunction("f", unary); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.DefineFunction("f", binary); err != nil {
		t.Fatalf("expected distinct arity to be a distinct key: %v", err)
	}

	got, ok := s.LookupFunction("f", 1)
	if !ok || got != unary {
		t.Errorf("LookupFunction(f, 1) = %v, %v, want unary", got, ok)
	}
	got, ok = s.LookupFunction("f", 2)
	if !ok || got != binary {
		t.Errorf("LookupFunction(f, 2) = %v, %v, want binary", got, ok)
	}
	if _, ok := s.LookupFunction("f", 3); ok {
		t.Error("expected no binding for an undeclared arity")
	}
}

func TestPushRestoresParentOnDiscard(t *testing.T) {
	root := New()
	child := Push(root)
	if child.Parent() != root {
		t.Fatal("Push must record the parent scope")
	}
	// Discarding child (simply dropping the reference) must not have
	// mutated root, mirroring the unconditional-pop discipline every
	// caller is required to follow.
	if _, ok := root.LookupVariable("anything"); ok {
		t.Fatal("root should remain empty after a child scope is discarded")
	}
}
