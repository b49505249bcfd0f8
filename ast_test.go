package hbars

import "testing"

// Each top-level Node's Span is a contiguous byte range of the
// original source (spec.md §3's round-trip invariant), so
// concatenating AsStr() across a sibling list reproduces whatever
// source text that list spans exactly — true of a Document's
// top-level children and, recursively, of a Block's own children and
// inverse lists.
func concatAsStr(nodes []*Node) string {
	var out string
	for _, n := range nodes {
		out += n.AsStr()
	}
	return out
}

func TestNodeAsStrRoundTrip(t *testing.T) {
	source := "a {{b}} c{{#if x}}yes{{else}}no{{/if}} d"
	doc := mustParse(t, source)
	if got := concatAsStr(doc.children); got != source {
		t.Errorf("round-trip mismatch:\n got: %q\nwant: %q", got, source)
	}

	block := doc.children[3]
	if got := concatAsStr(block.Children()); got != "yes" {
		t.Errorf("block body = %q, want %q", got, "yes")
	}
	if got := concatAsStr(block.Inverse()); got != "no" {
		t.Errorf("block inverse = %q, want %q", got, "no")
	}
}

func TestNodeKindString(t *testing.T) {
	cases := map[NodeKind]string{
		KindDocument: "Document",
		KindText:     "Text",
		KindBlock:    "Block",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("%v.String() = %q, want %q", kind, got, want)
		}
	}
}

func TestCallNameForSimplePath(t *testing.T) {
	doc := mustParse(t, "{{foo}}")
	if name := doc.children[0].Call().Name(); name != "foo" {
		t.Errorf("Name() = %q, want %q", name, "foo")
	}
}

func TestCallNameIsLastComponentForDottedPath(t *testing.T) {
	doc := mustParse(t, "{{foo.bar}}")
	if name := doc.children[0].Call().Name(); name != "bar" {
		t.Errorf("Name() = %q, want %q (last identifier component)", name, "bar")
	}
}
