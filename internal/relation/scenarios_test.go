package relation

import (
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tycore-project/tycore/internal/types"
)

// scenario is one golden relation/disjointness fixture loaded from
// testdata/relation_scenarios.yaml.
type scenario struct {
	Name  string `yaml:"name"`
	Op    string `yaml:"op"`
	Left  string `yaml:"left"`
	Right string `yaml:"right"`
	Want  bool   `yaml:"want"`
}

// resolveExpr parses the small notation the fixture file uses: a bare
// builtin name (int, str, bool, object, dynamic_any), a literal
// (int_lit:1, str_lit:a, bool_lit:true), or a union(a,b) of two such
// terms. This is test-only plumbing, not a general type-expression
// parser — the product code never needs to parse type text.
func resolveExpr(t *testing.T, expr string) types.T {
	t.Helper()
	if strings.HasPrefix(expr, "union(") && strings.HasSuffix(expr, ")") {
		inner := strings.TrimSuffix(strings.TrimPrefix(expr, "union("), ")")
		parts := strings.Split(inner, ",")
		elems := make([]types.T, len(parts))
		for i, p := range parts {
			elems[i] = resolveExpr(t, p)
		}
		return types.UnionT{Elements: elems}
	}
	if idx := strings.IndexByte(expr, ':'); idx >= 0 {
		kind, value := expr[:idx], expr[idx+1:]
		switch kind {
		case "int_lit":
			n, err := strconv.ParseInt(value, 10, 64)
			require.NoError(t, err)
			return types.IntLit{Value: n}
		case "str_lit":
			return types.StrLit{Value: value}
		case "bool_lit":
			return types.BoolLit{Value: value == "true"}
		}
	}
	switch expr {
	case "object":
		return types.NominalInstance{Class: "object"}
	case "int":
		return types.NominalInstance{Class: "int"}
	case "bool":
		return types.NominalInstance{Class: "bool"}
	case "str":
		return types.NominalInstance{Class: "str"}
	case "dynamic_any":
		return types.Dynamic{Kind: types.DynAny}
	}
	t.Fatalf("unrecognized scenario expression %q", expr)
	return nil
}

func TestRelationScenariosFromFixture(t *testing.T) {
	data, err := os.ReadFile("../../testdata/relation_scenarios.yaml")
	require.NoError(t, err)

	var scenarios []scenario
	require.NoError(t, yaml.Unmarshal(data, &scenarios))
	require.NotEmpty(t, scenarios)

	e, _ := newTestEngine()
	for _, sc := range scenarios {
		sc := sc
		t.Run(sc.Name, func(t *testing.T) {
			left := resolveExpr(t, sc.Left)
			right := resolveExpr(t, sc.Right)

			var got bool
			switch sc.Op {
			case "subtype":
				got = e.IsSubtypeOf(left, right)
			case "assignable":
				got = e.IsAssignableTo(left, right)
			case "disjoint":
				got = e.IsDisjointFrom(left, right)
			default:
				t.Fatalf("unrecognized op %q", sc.Op)
			}
			require.Equal(t, sc.Want, got)
		})
	}
}
