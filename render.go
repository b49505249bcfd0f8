package hbars

import "fmt"

// renderState carries everything a render needs that isn't part of
// the Scope chain: the output sink, the root data document, the
// helper and partial registries, the configured escape function, and
// the partial-recursion guard.
type renderState struct {
	tw     TemplateWriter
	root   any
	name   string // template name, for error messages
	strict bool

	helpers  *HelperRegistry
	partials *TemplateRegistry
	loader   PartialLoader
	escape   EscapeFunc

	partialDepth    int
	maxPartialDepth int
}

func (rs *renderState) writeString(s string) error {
	if _, err := rs.tw.WriteString(s); err != nil {
		return &RenderError{Filename: rs.name, Kind: ErrWriterFailed, Cause: err}
	}
	return nil
}

// renderNodes walks a sibling list against scope, in document order.
func (rs *renderState) renderNodes(nodes []*Node, scope *Scope) error {
	for _, n := range nodes {
		if err := rs.renderNode(n, scope); err != nil {
			return err
		}
	}
	return nil
}

func (rs *renderState) renderNode(n *Node, scope *Scope) error {
	switch n.kind {
	case KindText:
		return rs.writeString(n.renderString())

	case KindRawStatement:
		return rs.writeString(n.AsStr()[1:])

	case KindComment, KindRawComment:
		return nil

	case KindRawBlock:
		return rs.writeString(n.Between())

	case KindStatement:
		return rs.renderStatement(n, scope)

	case KindBlock:
		return rs.renderBlock(n, scope)

	default:
		return nil
	}
}

// renderStatement evaluates a {{ ... }}/{{{ ... }}}/{{> ... }} call
// and writes its result. A registered value helper by the call's
// simple name takes precedence over treating the name as a path.
func (rs *renderState) renderStatement(n *Node, scope *Scope) error {
	call := n.call

	if call.Partial {
		return rs.renderPartial(n, scope)
	}

	if call.Sub == nil && call.Path != nil && call.Path.IsSimple() {
		if fn, ok := rs.helpers.valueHelper(call.Path.Components[0].Value); ok {
			val, err := rs.invokeValueHelper(fn, n, scope)
			if err != nil {
				return err
			}
			return rs.writeValue(n, val)
		}
	}

	val, err := rs.evalTarget(call, scope)
	if err != nil {
		return err
	}
	return rs.writeValue(n, val)
}

func (rs *renderState) writeValue(n *Node, val any) error {
	s := stringify(val)
	if n.call.Escaped {
		s = rs.escape(s)
	}
	return rs.writeString(s)
}

// evalTarget resolves a Call's own target (Path or Sub) to a value,
// without consulting the helper registry — used for values that are
// definitely not a helper invocation (e.g. a dotted path, or a
// sub-expression's own target).
func (rs *renderState) evalTarget(call *Call, scope *Scope) (any, error) {
	if call.Sub != nil {
		return rs.evalCall(call.Sub, scope)
	}
	val, ok, underflow := resolvePath(scope, rs.root, call.Path)
	if underflow {
		return nil, &RenderError{Filename: rs.name, Kind: ErrScopeUnderflow, Name: call.Path.String()}
	}
	if !ok {
		if rs.strict {
			return nil, &RenderError{Filename: rs.name, Kind: ErrMissingValueStrict, Name: call.Path.String()}
		}
		return nil, nil
	}
	return val, nil
}

// evalCall evaluates any Call as a value: a sub-expression invokes its
// target's helper (value helpers only — block helpers cannot appear
// as sub-expressions) or falls back to path resolution.
func (rs *renderState) evalCall(call *Call, scope *Scope) (any, error) {
	if call.Sub == nil && call.Path != nil && call.Path.IsSimple() {
		if fn, ok := rs.helpers.valueHelper(call.Path.Components[0].Value); ok {
			args, hash, err := rs.evalArgs(call, scope)
			if err != nil {
				return nil, err
			}
			ctx := &Context{name: call.Path.Components[0].Value, args: args, hash: hash, scope: scope, state: rs}
			val, err := fn(ctx)
			if err != nil {
				return nil, wrapHelperErr(rs, call.Path.Components[0].Value, err)
			}
			return val, nil
		}
	}
	return rs.evalTarget(call, scope)
}

func (rs *renderState) evalArgs(call *Call, scope *Scope) (args []any, hash map[string]any, err error) {
	args = make([]any, len(call.Args))
	for i, pv := range call.Args {
		args[i], err = rs.evalParam(pv, scope)
		if err != nil {
			return nil, nil, err
		}
	}
	if len(call.Hash) > 0 {
		hash = make(map[string]any, len(call.Hash))
		for _, h := range call.Hash {
			hash[h.Name], err = rs.evalParam(h.Value, scope)
			if err != nil {
				return nil, nil, err
			}
		}
	}
	return args, hash, nil
}

func (rs *renderState) evalParam(pv ParameterValue, scope *Scope) (any, error) {
	switch pv.Kind {
	case ParamJSON:
		return pv.JSON, nil
	case ParamSubExpr:
		return rs.evalCall(pv.Sub, scope)
	default:
		val, ok, underflow := resolvePath(scope, rs.root, pv.Path)
		if underflow {
			return nil, &RenderError{Filename: rs.name, Kind: ErrScopeUnderflow, Name: pv.Path.String()}
		}
		if !ok {
			if rs.strict {
				return nil, &RenderError{Filename: rs.name, Kind: ErrMissingValueStrict, Name: pv.Path.String()}
			}
			return nil, nil
		}
		return val, nil
	}
}

func (rs *renderState) invokeValueHelper(fn HelperFunc, n *Node, scope *Scope) (any, error) {
	args, hash, err := rs.evalArgs(n.call, scope)
	if err != nil {
		return nil, err
	}
	name := n.call.Path.Components[0].Value
	ctx := &Context{name: name, node: n, args: args, hash: hash, scope: scope, state: rs}
	val, err := fn(ctx)
	if err != nil {
		return nil, wrapHelperErr(rs, name, err)
	}
	return val, nil
}

func wrapHelperErr(rs *renderState, name string, err error) error {
	if _, ok := err.(*HelperError); ok {
		return err
	}
	return &RenderError{Filename: rs.name, Kind: ErrHelperFailed, Name: name, Cause: err}
}

// renderBlock dispatches a {{#name ...}} construct: a registered block
// helper runs first; failing that, a registered value helper runs
// once and its result feeds the implicit truthy/each fallback; failing
// that, the call's own path/sub value feeds the same fallback.
func (rs *renderState) renderBlock(n *Node, scope *Scope) error {
	call := n.call

	if call.Partial {
		return rs.renderPartial(n, scope)
	}

	if call.Sub == nil && call.Path != nil && call.Path.IsSimple() {
		name := call.Path.Components[0].Value
		if fn, ok := rs.helpers.blockHelper(name); ok {
			args, hash, err := rs.evalArgs(call, scope)
			if err != nil {
				return err
			}
			ctx := &Context{name: name, node: n, args: args, hash: hash, scope: scope, state: rs}
			if err := fn(ctx); err != nil {
				return wrapHelperErr(rs, name, err)
			}
			return nil
		}
		if fn, ok := rs.helpers.valueHelper(name); ok {
			val, err := rs.invokeValueHelper(fn, n, scope)
			if err != nil {
				return err
			}
			return rs.renderImplicitSection(n, scope, val)
		}
	}

	val, err := rs.evalTarget(call, scope)
	if err != nil {
		return err
	}
	return rs.renderImplicitSection(n, scope, val)
}

// renderImplicitSection is the Mustache-style fallback for a block
// whose target is not a registered block helper: iterate an array
// (exposing @index/@first/@last), push an object as the new context,
// render once for any other truthy scalar, or run the {{else}} body.
func (rs *renderState) renderImplicitSection(n *Node, scope *Scope, val any) error {
	if !isTruthy(val) {
		if n.inverse != nil {
			return rs.renderNodes(n.inverse, scope)
		}
		return nil
	}

	if arr, ok := val.([]any); ok {
		for i, item := range arr {
			locals := map[string]any{
				"index": float64(i),
				"first": i == 0,
				"last":  i == len(arr)-1,
			}
			if err := rs.renderNodes(n.children, scope.push(item, locals)); err != nil {
				return err
			}
		}
		return nil
	}

	if _, ok := val.(map[string]any); ok {
		return rs.renderNodes(n.children, scope.push(val, nil))
	}

	return rs.renderNodes(n.children, scope)
}

// renderPartial resolves and renders a {{> name}} or {{#> name}}...
// {{/name}} call. A positional argument replaces the partial's
// context; hash arguments are merged on top of it as extra fields. An
// unresolved partial falls back to the block's own children (so
// {{#> name}}default{{/name}} has a usable default), or is a render
// error for a non-block partial reference.
func (rs *renderState) renderPartial(n *Node, scope *Scope) error {
	call := n.call
	name, err := rs.partialName(call, scope)
	if err != nil {
		return err
	}

	body, ok := rs.partials.lookup(name)
	if !ok && rs.loader != nil {
		src, found, loadErr := rs.loader.LoadPartial(name)
		if loadErr != nil {
			return &RenderError{Filename: rs.name, Kind: ErrPartialNotFound, Name: name, Cause: loadErr}
		}
		if found {
			if regErr := rs.partials.Register(name, src); regErr != nil {
				return &RenderError{Filename: rs.name, Kind: ErrPartialNotFound, Name: name, Cause: regErr}
			}
			body, ok = rs.partials.lookup(name)
		}
	}
	if !ok {
		if n.kind == KindBlock {
			return rs.renderNodes(n.children, scope)
		}
		return &RenderError{Filename: rs.name, Kind: ErrPartialNotFound, Name: name}
	}

	if rs.partialDepth >= rs.maxPartialDepth {
		return &RenderError{
			Filename: rs.name, Kind: ErrScopeUnderflow, Name: name,
			Cause: fmt.Errorf("max partial recursion depth %d exceeded", rs.maxPartialDepth),
		}
	}

	ctxVal := scope.Value()
	if len(call.Args) > 0 {
		v, err := rs.evalParam(call.Args[0], scope)
		if err != nil {
			return err
		}
		ctxVal = v
	}
	if len(call.Hash) > 0 {
		merged := map[string]any{}
		if base, ok := ctxVal.(map[string]any); ok {
			for k, v := range base {
				merged[k] = v
			}
		}
		for _, h := range call.Hash {
			v, err := rs.evalParam(h.Value, scope)
			if err != nil {
				return err
			}
			merged[h.Name] = v
		}
		ctxVal = merged
	}

	rs.partialDepth++
	defer func() { rs.partialDepth-- }()
	return rs.renderNodes(body, scope.push(ctxVal, nil))
}

func (rs *renderState) partialName(call *Call, scope *Scope) (string, error) {
	if call.Sub != nil {
		v, err := rs.evalCall(call.Sub, scope)
		if err != nil {
			return "", err
		}
		if s, ok := v.(string); ok {
			return s, nil
		}
		return "", &RenderError{Filename: rs.name, Kind: ErrPartialNotFound, Name: stringify(v)}
	}
	return call.Path.String(), nil
}
