package hbars

import (
	"sync"

	"github.com/juju/errors"
)

// TemplateRegistry holds compiled partial bodies by name, looked up by
// {{> name}}/{{#> name}} calls. It is safe for concurrent use, mirroring
// the teacher's mutex-guarded template cache.
type TemplateRegistry struct {
	mu    sync.RWMutex
	trees map[string][]*Node
}

// NewTemplateRegistry returns an empty registry.
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{trees: map[string][]*Node{}}
}

// Register compiles source and stores it under name, replacing any
// existing partial of the same name.
func (tr *TemplateRegistry) Register(name, source string) error {
	doc, err := Parse(name, source)
	if err != nil {
		return err
	}
	applyWhitespaceControl(doc)

	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.trees[name] = doc.children
	return nil
}

// Unregister removes a partial, if present.
func (tr *TemplateRegistry) Unregister(name string) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	delete(tr.trees, name)
}

func (tr *TemplateRegistry) lookup(name string) ([]*Node, bool) {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	children, ok := tr.trees[name]
	return children, ok
}

// Get returns the partial's compiled body, or a juju/errors NotFound
// error a caller can test with errors.IsNotFound.
func (tr *TemplateRegistry) Get(name string) ([]*Node, error) {
	children, ok := tr.lookup(name)
	if !ok {
		return nil, errors.NotFoundf("partial %q", name)
	}
	return children, nil
}

// PartialLoader is consulted when a partial name isn't found in the
// Engine's own TemplateRegistry — e.g. to fetch user-authored partials
// from external storage (see store/mongostore). found is false (with
// a nil error) when the loader simply doesn't have that name either.
type PartialLoader interface {
	LoadPartial(name string) (source string, found bool, err error)
}
