package main

import "github.com/tycore-project/tycore/internal/types"

// builtinType resolves the handful of type names the relate subcommand
// accepts. A full CLI would parse arbitrary annotations through a real
// Python type-expression grammar; that parser is out of scope here; this
// stays a closed lookup table so the command has something concrete to
// exercise the engine with.
func builtinType(name string) (types.T, bool) {
	switch name {
	case "object":
		return types.NominalInstance{Class: "object"}, true
	case "int":
		return types.NominalInstance{Class: "int"}, true
	case "bool":
		return types.NominalInstance{Class: "bool"}, true
	case "str":
		return types.NominalInstance{Class: "str"}, true
	case "None":
		return types.NominalInstance{Class: "NoneType"}, true
	case "Any":
		return types.Dynamic{Kind: types.DynAny}, true
	case "Never":
		return types.Never{}, true
	default:
		return nil, false
	}
}
