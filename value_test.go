package hbars

import "testing"

func TestIsTruthy(t *testing.T) {
	cases := []struct {
		name string
		val  any
		want bool
	}{
		{"nil", nil, false},
		{"false", false, false},
		{"true", true, true},
		{"zero", float64(0), true},
		{"empty string", "", true},
		{"empty array", []any{}, false},
		{"non-empty array", []any{1.0}, true},
		{"empty map", map[string]any{}, false},
		{"non-empty map", map[string]any{"a": 1.0}, true},
	}
	for _, c := range cases {
		if got := isTruthy(c.val); got != c.want {
			t.Errorf("%s: isTruthy(%#v) = %v, want %v", c.name, c.val, got, c.want)
		}
	}
}

func TestLookupField(t *testing.T) {
	m := map[string]any{"name": "Ada"}
	if v, ok := lookupField(m, "name"); !ok || v != "Ada" {
		t.Fatalf("map lookup: got %v, %v", v, ok)
	}
	if _, ok := lookupField(m, "missing"); ok {
		t.Fatalf("expected missing key to miss")
	}

	arr := []any{"x", "y", "z"}
	if v, ok := lookupField(arr, "1"); !ok || v != "y" {
		t.Fatalf("array lookup: got %v, %v", v, ok)
	}
	if _, ok := lookupField(arr, "9"); ok {
		t.Fatalf("expected out-of-range index to miss")
	}
	if _, ok := lookupField(arr, "nope"); ok {
		t.Fatalf("expected non-numeric index to miss")
	}
}

func TestStringify(t *testing.T) {
	cases := []struct {
		val  any
		want string
	}{
		{nil, ""},
		{"hi", "hi"},
		{true, "true"},
		{false, "false"},
		{float64(3), "3"},
		{float64(3.5), "3.5"},
	}
	for _, c := range cases {
		if got := stringify(c.val); got != c.want {
			t.Errorf("stringify(%#v) = %q, want %q", c.val, got, c.want)
		}
	}
}

func TestStringifyJSON(t *testing.T) {
	v := map[string]any{"b": 2.0, "a": 1.0}
	if got, want := stringifyJSON(v), `{"a":1,"b":2}`; got != want {
		t.Errorf("stringifyJSON = %q, want %q", got, want)
	}
	if got, want := stringifyJSON([]any{1.0, "x", true, nil}), `[1,"x",true,null]`; got != want {
		t.Errorf("stringifyJSON array = %q, want %q", got, want)
	}
}

func TestEqualValues(t *testing.T) {
	if !equalValues(float64(1), float64(1)) {
		t.Error("expected 1 == 1")
	}
	if equalValues(float64(1), float64(2)) {
		t.Error("expected 1 != 2")
	}
	if !equalValues("a", "a") {
		t.Error("expected string equality")
	}
	if equalValues("1", float64(1)) {
		t.Error("expected mismatched dynamic types to compare unequal")
	}
}

func TestEqualValuesComposite(t *testing.T) {
	a := []any{1.0, "x"}
	b := []any{1.0, "x"}
	c := []any{1.0, "y"}
	if !equalValues(a, b) {
		t.Error("expected structurally equal arrays to compare equal")
	}
	if equalValues(a, c) {
		t.Error("expected structurally different arrays to compare unequal")
	}

	m1 := map[string]any{"k": 1.0}
	m2 := map[string]any{"k": 1.0}
	if !equalValues(m1, m2) {
		t.Error("expected structurally equal maps to compare equal")
	}
	if equalValues(m1, []any{1.0}) {
		t.Error("expected a map and an array to compare unequal")
	}

	// Must not panic comparing uncomparable dynamic types via ==.
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("equalValues panicked: %v", r)
		}
	}()
	_ = equalValues(a, a)
}
