package hbars

import (
	"github.com/juju/errors"
	"testing"
)

func TestTemplateRegistryRegisterAndGet(t *testing.T) {
	tr := NewTemplateRegistry()
	if err := tr.Register("greet", "hi {{name}}"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	children, err := tr.Get("greet")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(children) == 0 {
		t.Fatalf("expected a non-empty compiled body")
	}
}

func TestTemplateRegistryGetMissingIsNotFound(t *testing.T) {
	tr := NewTemplateRegistry()
	_, err := tr.Get("nope")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.IsNotFound(err) {
		t.Errorf("expected a NotFound error, got %v", err)
	}
}

func TestTemplateRegistryUnregister(t *testing.T) {
	tr := NewTemplateRegistry()
	_ = tr.Register("p", "x")
	tr.Unregister("p")
	if _, ok := tr.lookup("p"); ok {
		t.Error("expected partial to be gone after Unregister")
	}
}

type fakeLoader struct {
	sources map[string]string
}

func (f fakeLoader) LoadPartial(name string) (string, bool, error) {
	src, ok := f.sources[name]
	return src, ok, nil
}

func TestEnginePartialLoaderFallback(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	engine.SetPartialLoader(fakeLoader{sources: map[string]string{"greet": "hi {{name}}"}})

	tpl, err := engine.Compile("t", "{{> greet}}")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	out, err := tpl.Render(map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if want := "hi Ada"; out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}
