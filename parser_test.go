package hbars

import "testing"

func mustParse(t *testing.T, source string) *Node {
	t.Helper()
	doc, err := Parse("t", source)
	if err != nil {
		t.Fatalf("Parse(%q): %v", source, err)
	}
	return doc
}

func TestParseTextAndStatement(t *testing.T) {
	doc := mustParse(t, "hi {{name}}!")
	if len(doc.children) != 3 {
		t.Fatalf("expected 3 children, got %d: %#v", len(doc.children), doc.children)
	}
	if doc.children[0].Kind() != KindText || doc.children[0].AsStr() != "hi " {
		t.Errorf("child 0: %#v", doc.children[0])
	}
	if doc.children[1].Kind() != KindStatement {
		t.Errorf("child 1 should be a statement")
	}
	if name := doc.children[1].Call().Name(); name != "name" {
		t.Errorf("call name = %q", name)
	}
}

func TestParseBlockWithElse(t *testing.T) {
	doc := mustParse(t, "{{#if a}}y{{else}}n{{/if}}")
	block := doc.children[0]
	if block.Kind() != KindBlock {
		t.Fatalf("expected block node, got %v", block.Kind())
	}
	if len(block.Children()) != 1 || block.Children()[0].AsStr() != "y" {
		t.Errorf("body = %#v", block.Children())
	}
	if len(block.Inverse()) != 1 || block.Inverse()[0].AsStr() != "n" {
		t.Errorf("inverse = %#v", block.Inverse())
	}
}

func TestParseBlockNameMismatchErrors(t *testing.T) {
	_, err := Parse("t", "{{#if a}}y{{/unless}}")
	if err == nil {
		t.Fatal("expected a tag name mismatch error")
	}
	se, ok := err.(*SyntaxError)
	if !ok {
		t.Fatalf("expected *SyntaxError, got %T", err)
	}
	if se.Kind != ErrTagNameMismatch {
		t.Errorf("kind = %v, want ErrTagNameMismatch", se.Kind)
	}
}

func TestParseUnclosedBlockErrors(t *testing.T) {
	_, err := Parse("t", "{{#if a}}y")
	if err == nil {
		t.Fatal("expected unclosed-block error")
	}
}

func TestParsePathVariants(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"{{this}}", "this"},
		{"{{./foo}}", "./foo"},
		{"{{../foo}}", "../foo"},
		{"{{@root.foo}}", "@root.foo"},
		{"{{foo.bar}}", "foo.bar"},
		{"{{foo.[0]}}", "foo.[0]"},
	}
	for _, c := range cases {
		doc := mustParse(t, c.source)
		call := doc.children[0].Call()
		if got := call.Path.String(); got != c.want {
			t.Errorf("source %q: path = %q, want %q", c.source, got, c.want)
		}
	}
}

func TestParseRawBlock(t *testing.T) {
	doc := mustParse(t, "{{{{raw}}}}x{{y}}z{{{{/raw}}}}")
	n := doc.children[0]
	if n.Kind() != KindRawBlock {
		t.Fatalf("expected raw block, got %v", n.Kind())
	}
	if got := n.Between(); got != "x{{y}}z" {
		t.Errorf("between = %q", got)
	}
}

func TestParseArrayLiteralArgument(t *testing.T) {
	doc := mustParse(t, `{{helper [1, "two", true, null, [3, 4]]}}`)
	call := doc.children[0].Call()
	if len(call.Args) != 1 {
		t.Fatalf("expected 1 argument, got %d", len(call.Args))
	}
	arg := call.Args[0]
	if arg.Kind != ParamJSON {
		t.Fatalf("expected ParamJSON, got %v", arg.Kind)
	}
	arr, ok := arg.JSON.([]any)
	if !ok {
		t.Fatalf("expected []any, got %T", arg.JSON)
	}
	want := []any{1.0, "two", true, nil, []any{3.0, 4.0}}
	if len(arr) != len(want) {
		t.Fatalf("got %#v, want %#v", arr, want)
	}
	for i := range want {
		nested, isArr := want[i].([]any)
		if isArr {
			gotNested, ok := arr[i].([]any)
			if !ok || len(gotNested) != len(nested) {
				t.Errorf("element %d: got %#v, want %#v", i, arr[i], want[i])
			}
			continue
		}
		if arr[i] != want[i] {
			t.Errorf("element %d: got %#v, want %#v", i, arr[i], want[i])
		}
	}
}

func TestParseDuplicateHashKeyErrors(t *testing.T) {
	_, err := Parse("t", "{{helper a=1 a=2}}")
	se, ok := err.(*SyntaxError)
	if !ok || se.Kind != ErrDuplicateHashKey {
		t.Fatalf("expected ErrDuplicateHashKey, got %#v", err)
	}
}

func TestParsePositionalAfterHashErrors(t *testing.T) {
	_, err := Parse("t", "{{helper a=1 b}}")
	se, ok := err.(*SyntaxError)
	if !ok || se.Kind != ErrPositionalAfterHash {
		t.Fatalf("expected ErrPositionalAfterHash, got %#v", err)
	}
}
