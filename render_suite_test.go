package hbars

import (
	"testing"

	jujutesting "github.com/juju/testing"
	"github.com/kr/pretty"
	. "gopkg.in/check.v1"
)

// Hook up gocheck into the "go test" runner, following the teacher's
// own gocheck entry point.
func TestGocheck(t *testing.T) { TestingT(t) }

// RenderSuite exercises the public Compile/Render surface against a
// fresh Engine per test, via juju/testing's IsolationSuite so each
// test runs with its own clean environment.
type RenderSuite struct {
	jujutesting.IsolationSuite
	engine *Engine
}

var _ = Suite(&RenderSuite{})

func (s *RenderSuite) SetUpTest(c *C) {
	s.IsolationSuite.SetUpTest(c)
	s.engine = NewEngine(DefaultConfig())
}

func (s *RenderSuite) render(c *C, source string, data any) string {
	tpl, err := s.engine.Compile("t", source)
	c.Assert(err, IsNil)
	out, err := tpl.Render(data)
	c.Assert(err, IsNil)
	return out
}

func (s *RenderSuite) TestEachOverMapIsKeySorted(c *C) {
	out := s.render(c, "{{#each m}}{{@key}}={{this}} {{/each}}", map[string]any{
		"m": map[string]any{"b": "2", "a": "1"},
	})
	c.Check(out, Equals, "a=1 b=2 ")
}

func (s *RenderSuite) TestNestedBlocksPushIndependentScopes(c *C) {
	data := map[string]any{
		"groups": []any{
			map[string]any{"items": []any{"x", "y"}},
			map[string]any{"items": []any{"z"}},
		},
	}
	out := s.render(c, "{{#each groups}}[{{#each items}}{{this}}{{/each}}]{{/each}}", data)
	c.Check(out, Equals, "[xy][z]")
}

func (s *RenderSuite) TestRegisteredPartialWithContextArg(c *C) {
	err := s.engine.RegisterPartial("row", "<{{this}}>")
	c.Assert(err, IsNil)
	out := s.render(c, "{{#each items}}{{> row this}}{{/each}}", map[string]any{
		"items": []any{"a", "b"},
	})
	c.Check(out, Equals, "<a><b>")
}

func (s *RenderSuite) TestUnresolvedPathRendersEmptyAndDiffsClean(c *C) {
	got := s.render(c, "[{{nope}}]", map[string]any{})
	want := "[]"
	if got != want {
		c.Fatalf("mismatch: %v", pretty.Diff(got, want))
	}
}
