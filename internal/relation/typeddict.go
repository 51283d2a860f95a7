package relation

import "github.com/tycore-project/tycore/internal/types"

// typedDictCompatible implements arm 17: a is width-compatible with b
// when every required key of b exists in a with an equivalent type,
// every optional key of b that exists in a is compatible, and totality
// is respected (a required key of b cannot be satisfied by an optional
// key of a).
func (e *Engine) typedDictCompatible(a, b types.TypedDictT, query *query) bool {
	for _, key := range b.SortedKeys() {
		bField := b.Fields[key]
		aField, ok := a.Fields[key]
		if !ok {
			if bField.Required {
				return false
			}
			continue
		}
		if bField.Required && !aField.Required {
			return false
		}
		if bField.ReadOnly {
			if !e.dispatch(aField.Type, bField.Type, query) {
				return false
			}
		} else if !e.IsEquivalentTo(aField.Type, bField.Type) {
			return false
		}
	}
	return true
}
