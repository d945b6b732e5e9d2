package runtime

import "testing"

func TestEnvironmentGetMissing(t *testing.T) {
	env := NewEnvironment()
	if _, err := env.Get("x"); err == nil {
		t.Fatal("expected an error for an undefined variable")
	}
}

func TestEnvironmentInitializeAndGet(t *testing.T) {
	env := NewEnvironment()
	env.Initialize("x", LongVal(1), false)
	v, err := env.Get("x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != LongVal(1) {
		t.Errorf("expected 1, got %v", v)
	}
}

func TestEnvironmentAssignRequiresMut(t *testing.T) {
	env := NewEnvironment()
	env.Initialize("x", LongVal(1), false)
	if err := env.Assign("x", LongVal(2)); err == nil {
		t.Fatal("expected an error assigning to an immutable binding")
	}

	env.Initialize("y", LongVal(1), true)
	if err := env.Assign("y", LongVal(2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, _ := env.Get("y")
	if v != LongVal(2) {
		t.Errorf("expected 2, got %v", v)
	}
}

func TestEnvironmentChainLookup(t *testing.T) {
	outer := NewEnvironment()
	outer.Initialize("x", LongVal(10), false)

	inner := NewEnvironment()
	inner.AppendOuter(outer)

	v, err := inner.Get("x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != LongVal(10) {
		t.Errorf("expected 10, got %v", v)
	}
}

func TestEnvironmentAppendOuterWalksToTail(t *testing.T) {
	a := NewEnvironment()
	b := NewEnvironment()
	c := NewEnvironment()

	a.AppendOuter(b)
	a.AppendOuter(c) // must attach to b's tail, not overwrite a.outer

	b.Initialize("found_on_b", BoolVal(true), false)
	if _, err := a.Get("found_on_b"); err != nil {
		t.Fatalf("expected to find binding through the existing outer link: %v", err)
	}

	c.Initialize("found_on_c", BoolVal(true), false)
	if _, err := a.Get("found_on_c"); err != nil {
		t.Fatalf("expected AppendOuter to attach c past b, not overwrite b: %v", err)
	}
}

func TestEnvironmentInitializeShadowsWithoutMutatingOuter(t *testing.T) {
	outer := NewEnvironment()
	outer.Initialize("x", LongVal(1), false)

	inner := NewEnvironment()
	inner.AppendOuter(outer)
	inner.Initialize("x", LongVal(2), false)

	v, _ := inner.Get("x")
	if v != LongVal(2) {
		t.Errorf("expected inner binding to shadow outer, got %v", v)
	}
	outerVal, _ := outer.Get("x")
	if outerVal != LongVal(1) {
		t.Errorf("expected outer binding to be unaffected, got %v", outerVal)
	}
}
