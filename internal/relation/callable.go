package relation

import "github.com/tycore-project/tycore/internal/types"

// callableCompatible implements arm 18: f is compatible with (assignable
// to / a subtype of) g when f accepts at least everything g's callers
// could pass (contravariant in parameters) and f's return narrows or
// equals g's (covariant in return). A gradual parameter list
// (Callable[..., R]) on either side skips the parameter check entirely.
func (e *Engine) callableCompatible(f, g types.Signature, query *query) bool {
	if !e.dispatch(f.Return, g.Return, query) {
		return false
	}
	if f.IsGradual || g.IsGradual {
		return true
	}

	gPositional := positionalParams(g)
	fPositional := positionalParams(f)
	if len(gPositional) > len(fPositional) && !hasVarArgs(f) {
		return false
	}
	for i, gp := range gPositional {
		var fp types.Param
		if i < len(fPositional) {
			fp = fPositional[i]
		} else if va, ok := varArgsParam(f); ok {
			fp = va
		} else {
			return false
		}
		if !e.dispatch(gp.Type, fp.Type, query) { // contravariant
			return false
		}
		if gp.HasDefault && !fp.HasDefault && fp.Kind != types.ParamVarArgs {
			return false
		}
	}

	for _, gp := range g.Params {
		if gp.Kind != types.ParamKeywordOnly {
			continue
		}
		fp, ok := keywordParam(f, gp.Name)
		if !ok {
			if _, ok := varKwargsParam(f); !ok {
				return false
			}
			continue
		}
		if !e.dispatch(gp.Type, fp.Type, query) {
			return false
		}
	}
	return true
}

func positionalParams(s types.Signature) []types.Param {
	var out []types.Param
	for _, p := range s.Params {
		if p.Kind == types.ParamPositional || p.Kind == types.ParamPositionalOrKeyword {
			out = append(out, p)
		}
	}
	return out
}

func hasVarArgs(s types.Signature) bool {
	_, ok := varArgsParam(s)
	return ok
}

func varArgsParam(s types.Signature) (types.Param, bool) {
	for _, p := range s.Params {
		if p.Kind == types.ParamVarArgs {
			return p, true
		}
	}
	return types.Param{}, false
}

func varKwargsParam(s types.Signature) (types.Param, bool) {
	for _, p := range s.Params {
		if p.Kind == types.ParamVarKwargs {
			return p, true
		}
	}
	return types.Param{}, false
}

func keywordParam(s types.Signature, name string) (types.Param, bool) {
	for _, p := range s.Params {
		if p.Kind == types.ParamKeywordOnly && p.Name == name {
			return p, true
		}
	}
	return types.Param{}, false
}
