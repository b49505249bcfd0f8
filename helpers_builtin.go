package hbars

import "sort"

// registerBuiltins seeds a HelperRegistry with the engine's built-in
// helpers: the block helpers if/unless/each/with, and the value
// helpers lookup/log/json/eq/ne/gt/gte/lt/lte/and/or/not.
func registerBuiltins(r *HelperRegistry) {
	r.RegisterBlockHelper("if", helperIf)
	r.RegisterBlockHelper("unless", helperUnless)
	r.RegisterBlockHelper("each", helperEach)
	r.RegisterBlockHelper("with", helperWith)

	r.RegisterHelper("lookup", helperLookup)
	r.RegisterHelper("log", helperLog)
	r.RegisterHelper("json", helperJSON)
	r.RegisterHelper("eq", helperEq)
	r.RegisterHelper("ne", helperNe)
	r.RegisterHelper("gt", helperGt)
	r.RegisterHelper("gte", helperGte)
	r.RegisterHelper("lt", helperLt)
	r.RegisterHelper("lte", helperLte)
	r.RegisterHelper("and", helperAnd)
	r.RegisterHelper("or", helperOr)
	r.RegisterHelper("not", helperNot)
}

func helperIf(ctx *Context) error {
	if err := ctx.Arity(1); err != nil {
		return err
	}
	if isTruthy(ctx.Arg(0)) {
		return ctx.RenderBody(ctx.This(), nil)
	}
	return ctx.RenderInverse(ctx.This(), nil)
}

func helperUnless(ctx *Context) error {
	if err := ctx.Arity(1); err != nil {
		return err
	}
	if !isTruthy(ctx.Arg(0)) {
		return ctx.RenderBody(ctx.This(), nil)
	}
	return ctx.RenderInverse(ctx.This(), nil)
}

func helperWith(ctx *Context) error {
	if err := ctx.Arity(1); err != nil {
		return err
	}
	val := ctx.Arg(0)
	if isTruthy(val) {
		return ctx.RenderBody(val, nil)
	}
	return ctx.RenderInverse(ctx.This(), nil)
}

func helperEach(ctx *Context) error {
	if err := ctx.Arity(1); err != nil {
		return err
	}
	val := ctx.Arg(0)

	switch seq := val.(type) {
	case []any:
		if len(seq) == 0 {
			return ctx.RenderInverse(ctx.This(), nil)
		}
		for i, item := range seq {
			locals := map[string]any{
				"index": float64(i),
				"first": i == 0,
				"last":  i == len(seq)-1,
			}
			if err := ctx.RenderBody(item, locals); err != nil {
				return err
			}
		}
		return nil

	case map[string]any:
		if len(seq) == 0 {
			return ctx.RenderInverse(ctx.This(), nil)
		}
		keys := sortedKeys(seq)
		for i, k := range keys {
			locals := map[string]any{
				"key":   k,
				"index": float64(i),
				"first": i == 0,
				"last":  i == len(keys)-1,
			}
			if err := ctx.RenderBody(seq[k], locals); err != nil {
				return err
			}
		}
		return nil

	default:
		return ctx.RenderInverse(ctx.This(), nil)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func helperLookup(ctx *Context) (any, error) {
	if err := ctx.Arity(2); err != nil {
		return nil, err
	}
	key, err := ctx.ArgString(1)
	if err != nil {
		return nil, err
	}
	val, ok := lookupField(ctx.Arg(0), key)
	if !ok {
		return nil, nil
	}
	return val, nil
}

func helperLog(ctx *Context) (any, error) {
	for i := 0; i < ctx.NumArgs(); i++ {
		logger.Infof("%s", stringify(ctx.Arg(i)))
	}
	return nil, nil
}

func helperJSON(ctx *Context) (any, error) {
	if err := ctx.Arity(1); err != nil {
		return nil, err
	}
	return stringifyJSON(ctx.Arg(0)), nil
}

func helperEq(ctx *Context) (any, error) {
	if err := ctx.Arity(2); err != nil {
		return nil, err
	}
	return equalValues(ctx.Arg(0), ctx.Arg(1)), nil
}

func helperNe(ctx *Context) (any, error) {
	if err := ctx.Arity(2); err != nil {
		return nil, err
	}
	return !equalValues(ctx.Arg(0), ctx.Arg(1)), nil
}

func helperGt(ctx *Context) (any, error) {
	a, b, err := numericArgs(ctx)
	if err != nil {
		return nil, err
	}
	return a > b, nil
}

func helperGte(ctx *Context) (any, error) {
	a, b, err := numericArgs(ctx)
	if err != nil {
		return nil, err
	}
	return a >= b, nil
}

func helperLt(ctx *Context) (any, error) {
	a, b, err := numericArgs(ctx)
	if err != nil {
		return nil, err
	}
	return a < b, nil
}

func helperLte(ctx *Context) (any, error) {
	a, b, err := numericArgs(ctx)
	if err != nil {
		return nil, err
	}
	return a <= b, nil
}

func numericArgs(ctx *Context) (a, b float64, err error) {
	if err = ctx.Arity(2); err != nil {
		return 0, 0, err
	}
	if a, err = ctx.ArgNumber(0); err != nil {
		return 0, 0, err
	}
	if b, err = ctx.ArgNumber(1); err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func helperAnd(ctx *Context) (any, error) {
	if err := ctx.ArityRange(1, 64); err != nil {
		return nil, err
	}
	for i := 0; i < ctx.NumArgs(); i++ {
		if !isTruthy(ctx.Arg(i)) {
			return false, nil
		}
	}
	return true, nil
}

func helperOr(ctx *Context) (any, error) {
	if err := ctx.ArityRange(1, 64); err != nil {
		return nil, err
	}
	for i := 0; i < ctx.NumArgs(); i++ {
		if isTruthy(ctx.Arg(i)) {
			return true, nil
		}
	}
	return false, nil
}

func helperNot(ctx *Context) (any, error) {
	if err := ctx.Arity(1); err != nil {
		return nil, err
	}
	return !isTruthy(ctx.Arg(0)), nil
}
