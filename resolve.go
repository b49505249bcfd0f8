package hbars

// resolvePath resolves a parsed Path against the current scope chain
// and the render's root data document, following the precedence order
// from spec.md §4.D: an explicit @root reference wins outright, then
// parent hops reposition the base scope, then a leading local
// identifier (@index, @key, ...) is resolved against the scope chain,
// and finally ordinary identifier/array-access components are walked
// off of whatever base value was selected. A plain path (no @root, no
// explicit this/./, no parent hops) that misses against the current
// scope's base value retries once against the root document, per
// spec.md §4.D step 5's "falling back to root".
//
// ok is false when the path fails to resolve to any value; render.go
// decides whether that is silently empty output or a strict-mode
// error. underflow is true specifically when a `../` hop count exceeds
// the scope chain's depth, which render.go always raises as an
// ErrScopeUnderflow error regardless of strict mode (spec.md §8).
func resolvePath(scope *Scope, root any, path *Path) (val any, ok bool, underflow bool) {
	if path.Root {
		val, ok = resolveComponents(root, path.Components)
		return val, ok, false
	}

	base := scope
	if path.Parents > 0 {
		var pok bool
		base, pok = scope.ancestor(path.Parents)
		if !pok {
			return nil, false, true
		}
	}

	if len(path.Components) > 0 && path.Components[0].Kind == CompLocalIdentifier {
		local, lok := base.local(path.Components[0].Value)
		if !lok {
			return nil, false, false
		}
		val, ok = resolveComponents(local, path.Components[1:])
		return val, ok, false
	}

	// Explicit `this`/`./`, or a bare dotted identifier path: both
	// resolve starting from the selected scope's base value.
	val, ok = resolveComponents(base.Value(), path.Components)
	if ok || path.Explicit || path.Parents > 0 {
		return val, ok, false
	}
	rootVal, rok := resolveComponents(root, path.Components)
	return rootVal, rok, false
}

// resolveComponents walks identifier and array-access components off
// of base in order. Delimiter and this/parent marker components carry
// no data of their own and are skipped.
func resolveComponents(base any, comps []Component) (any, bool) {
	cur := base
	for _, c := range comps {
		switch c.Kind {
		case CompIdentifier, CompArrayAccess:
			next, ok := lookupField(cur, c.Value)
			if !ok {
				return nil, false
			}
			cur = next
		case CompLocalIdentifier:
			// The parser only allows a local identifier in leading
			// position, so this should be unreachable in practice.
			return nil, false
		default:
			// CompThisKeyword, CompThisDotSlash, CompParent, CompDelimiter.
		}
	}
	return cur, true
}
