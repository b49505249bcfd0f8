package hbars

import "io"

// Template is a compiled document: a parsed, whitespace-resolved node
// tree bound to the Engine it was compiled against (and therefore to
// that engine's helpers, partials and escape function at render time).
type Template struct {
	name     string
	source   string
	children []*Node
	engine   *Engine
}

// Name returns the template's compile-time name, used in error
// messages.
func (t *Template) Name() string { return t.name }

// Render executes the template against data and returns the result as
// a string.
func (t *Template) Render(data any) (string, error) {
	return renderToString(func(tw TemplateWriter) error {
		return t.RenderTo(tw, data)
	})
}

// RenderTo executes the template against data, writing directly to w.
func (t *Template) RenderTo(w io.Writer, data any) error {
	tw := asTemplateWriter(w)
	rs := &renderState{
		tw:              tw,
		root:            data,
		name:            t.name,
		strict:          t.engine.config.Strict,
		helpers:         t.engine.helpers,
		partials:        t.engine.partials,
		loader:          t.engine.loader,
		escape:          t.engine.escape,
		maxPartialDepth: t.engine.config.MaxPartialDepth,
	}
	return rs.renderNodes(t.children, newScope(data))
}

// Engine owns the helper registry, partial registry and configuration
// shared by every Template it compiles, mirroring the teacher's
// TemplateSet as the thing a host application keeps around long-lived.
type Engine struct {
	helpers  *HelperRegistry
	partials *TemplateRegistry
	loader   PartialLoader
	escape   EscapeFunc
	config   EngineConfig
}

// NewEngine returns an Engine seeded with the built-in helpers and the
// escape behavior cfg.AutoEscape selects.
func NewEngine(cfg EngineConfig) *Engine {
	helpers := NewHelperRegistry()
	registerBuiltins(helpers)

	escape := NoEscape
	if cfg.AutoEscape {
		escape = EscapeHTML
	}

	return &Engine{
		helpers:  helpers,
		partials: NewTemplateRegistry(),
		escape:   escape,
		config:   cfg,
	}
}

// RegisterHelper adds or replaces a value helper.
func (e *Engine) RegisterHelper(name string, fn HelperFunc) {
	e.helpers.RegisterHelper(name, fn)
}

// RegisterBlockHelper adds or replaces a block helper.
func (e *Engine) RegisterBlockHelper(name string, fn BlockHelperFunc) {
	e.helpers.RegisterBlockHelper(name, fn)
}

// SetEscape overrides the engine's output-escaping function.
func (e *Engine) SetEscape(fn EscapeFunc) { e.escape = fn }

// SetPartialLoader installs a fallback source consulted when a partial
// name isn't found in the engine's own registry (see store/mongostore).
func (e *Engine) SetPartialLoader(loader PartialLoader) { e.loader = loader }

// RegisterPartial compiles source and makes it available to every
// template this engine renders under {{> name}}/{{#> name}}.
func (e *Engine) RegisterPartial(name, source string) error {
	return e.partials.Register(name, source)
}

// Compile parses source into a Template bound to this Engine.
func (e *Engine) Compile(name, source string) (*Template, error) {
	doc, err := Parse(name, source)
	if err != nil {
		return nil, err
	}
	applyWhitespaceControl(doc)
	return &Template{name: name, source: source, children: doc.children, engine: e}, nil
}

// defaultEngine backs the package-level Compile convenience function
// with the built-in helpers and HTML auto-escaping, the common case
// for a caller that doesn't need custom helpers or partials.
var defaultEngine = NewEngine(DefaultConfig())

// Compile parses source with the package's default Engine (built-in
// helpers, HTML auto-escaping, strict mode off).
func Compile(name, source string) (*Template, error) {
	return defaultEngine.Compile(name, source)
}
