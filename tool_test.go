package hyperdual_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/hyperdual"
)

// ============================================================
// Tool calls
// ============================================================

func call(t *testing.T, body string) hyperdual.ToolResponse {
	t.Helper()
	var req hyperdual.ToolRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return hyperdual.HandleToolCall(req)
}

const cubeX = `{"type": "pow", "base": {"type": "sym", "name": "x"}, "exp": {"type": "num", "value": 3}}`

const x2y = `{"type": "mul", "factors": [
	{"type": "pow", "base": {"type": "sym", "name": "x"}, "exp": {"type": "num", "value": 2}},
	{"type": "sym", "name": "y"}]}`

func TestTool_Derivative(t *testing.T) {
	resp := call(t, `{"tool": "derivative", "params": {"expr": `+cubeX+`, "var": "x", "at": 2, "order": 3}}`)
	require.Empty(t, resp.Error)
	pt := resp.Result.(hyperdual.Point)
	assert.Equal(t, 8.0, pt.Value)
	assert.Equal(t, []float64{12, 12, 6}, pt.Derivatives)
	assert.Equal(t, "8 + 12ε1 + 12ε2 + 6ε3", resp.String)

	resp = call(t, `{"tool": "derivative", "params": {"expr": `+cubeX+`, "var": "x", "at": 2}}`)
	require.Empty(t, resp.Error)
	assert.Equal(t, "8 + 12ε", resp.String)
}

func TestTool_Derivative_BadOrder(t *testing.T) {
	resp := call(t, `{"tool": "derivative", "params": {"expr": `+cubeX+`, "var": "x", "at": 2, "order": 4}}`)
	assert.Equal(t, "order must be 1, 2 or 3, got 4", resp.Error)

	for _, order := range []string{"1.9", "2.5", "-1", "1e300"} {
		resp = call(t, `{"tool": "derivative", "params": {"expr": `+cubeX+`, "var": "x", "at": 2, "order": `+order+`}}`)
		assert.Contains(t, resp.Error, "order must be 1, 2 or 3", order)
		assert.Nil(t, resp.Result, order)
	}
}

func TestTool_Gradient(t *testing.T) {
	resp := call(t, `{"tool": "gradient", "params": {"expr": `+x2y+`, "vars": ["x", "y"], "at": [1, 2]}}`)
	require.Empty(t, resp.Error)
	pt := resp.Result.(hyperdual.Point)
	assert.Equal(t, 2.0, pt.Value)
	assert.Equal(t, []float64{4, 1}, pt.Gradient)
	assert.Equal(t, "2 + [4, 1]ε", resp.String)
}

func TestTool_Hessian(t *testing.T) {
	resp := call(t, `{"tool": "hessian", "params": {"expr": `+x2y+`, "vars": ["x", "y"], "at": [1, 2]}}`)
	require.Empty(t, resp.Error)
	pt := resp.Result.(hyperdual.Point)
	assert.Equal(t, [][]float64{{4, 2}, {2, 0}}, pt.Hessian)
	assert.Equal(t, []float64{4, 1}, pt.Gradient)
	assert.NotEmpty(t, resp.String)
}

func TestTool_Mixed(t *testing.T) {
	resp := call(t, `{"tool": "mixed", "params": {"expr": `+x2y+`, "vars1": ["x"], "at1": [1], "vars2": ["y"], "at2": [2]}}`)
	require.Empty(t, resp.Error)
	pt := resp.Result.(hyperdual.Point)
	assert.Equal(t, [][]float64{{2}}, pt.Mixed)
	assert.Equal(t, []float64{4}, pt.Gradient)
	assert.Equal(t, []float64{1}, pt.Gradient2)
}

func TestTool_Mixed_Overlap(t *testing.T) {
	resp := call(t, `{"tool": "mixed", "params": {"expr": `+x2y+`, "vars1": ["x"], "at1": [1], "vars2": ["x"], "at2": [2]}}`)
	assert.Equal(t, `variable "x" appears in both groups`, resp.Error)
}

func TestTool_Seed(t *testing.T) {
	resp := call(t, `{"tool": "seed", "params": {"kind": "derive1", "x": [1, 2]}}`)
	require.Empty(t, resp.Error)
	assert.Equal(t, []string{"1 + [1, 0]ε", "2 + [0, 1]ε"}, resp.Result)

	resp = call(t, `{"tool": "seed", "params": {"kind": "derive2", "x": {"re": 2, "eps": 1}}}`)
	require.Empty(t, resp.Error)
	assert.Equal(t, "(2 + 1ε) + (1 + 0ε)ε1 + (1 + 0ε)ε2 + (0 + 0ε)ε1ε2", resp.String)

	resp = call(t, `{"tool": "seed", "params": {"kind": "derive2", "x": 1, "x2": 2}}`)
	require.Empty(t, resp.Error)
	assert.Equal(t, "1 + 1ε1 + 0ε2 + 0ε1ε2\n2 + 0ε1 + 1ε2 + 0ε1ε2", resp.String)

	resp = call(t, `{"tool": "seed", "params": {"kind": "derive3", "x": 2}}`)
	require.Empty(t, resp.Error)
	assert.Equal(t, "2 + 1ε1 + 0ε2 + 0ε3", resp.String)
}

func TestTool_Errors(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"tool": "integrate"}`, "unknown tool: integrate"},
		{`{"tool": "derivative", "params": {}}`, "missing param: expr"},
		{`{"tool": "derivative", "params": {"expr": 3}}`, "invalid type for param expr"},
		{`{"tool": "derivative", "params": {"expr": ` + cubeX + `, "var": 1}}`, "param var must be a string"},
		{`{"tool": "gradient", "params": {"expr": ` + cubeX + `, "vars": ["x", "x"], "at": [1, 2]}}`, `duplicate variable "x"`},
		{`{"tool": "gradient", "params": {"expr": ` + cubeX + `, "vars": ["x", "y"], "at": [1]}}`, "2 variables but 1 values"},
		{`{"tool": "gradient", "params": {"expr": ` + cubeX + `, "vars": "x", "at": [1]}}`, "param vars must be array"},
		{`{"tool": "gradient", "params": {"expr": ` + cubeX + `, "vars": ["y"], "at": [1]}}`, `pow: base: unbound symbol "x"`},
		{`{"tool": "hessian", "params": {"expr": ` + cubeX + `, "vars": ["a", "b", "c", "d", "e", "f"], "at": [1, 2, 3, 4, 5, 6]}}`, "hyperdual: hessian: unsupported input array[6]"},
		{`{"tool": "seed", "params": {"kind": "derive1", "x": [1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11]}}`, "hyperdual: derive1: unsupported input array[11]"},
		{`{"tool": "seed", "params": {"kind": "derive4", "x": 1}}`, "unknown seed kind: derive4"},
		{`{"tool": "seed", "params": {"kind": "derive2", "x": {"re": 1}}}`, "param x: missing param: eps"},
	}
	for _, tt := range tests {
		resp := call(t, tt.body)
		assert.Equal(t, tt.want, resp.Error, tt.body)
	}
}

func TestTool_Spec(t *testing.T) {
	resp := call(t, `{"tool": "tool_spec"}`)
	require.Empty(t, resp.Error)

	var spec struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal([]byte(resp.String), &spec))
	var names []string
	for _, tool := range spec.Tools {
		names = append(names, tool.Name)
	}
	assert.Equal(t, []string{"derivative", "gradient", "hessian", "mixed", "seed", "tool_spec"}, names)
}

func TestHessian_Direct(t *testing.T) {
	e := hyperdual.AddOf(
		hyperdual.MulOf(hyperdual.S("a"), hyperdual.S("b"), hyperdual.S("c")),
		hyperdual.FuncOf("sin", hyperdual.S("a")),
	)
	pt, h, err := hyperdual.Hessian(e, []string{"a", "b", "c"}, []float64{0, 2, 3})
	require.NoError(t, err)
	assert.InDelta(t, 0, h.At(0, 0), 0) // -sin(0)
	assert.Equal(t, 3.0, h.At(0, 1))
	assert.Equal(t, 2.0, h.At(0, 2))
	assert.Equal(t, 0.0, h.At(1, 2))
	assert.Equal(t, []float64{7, 0, 0}, pt.Gradient)
}

func TestGradient_TenVariables(t *testing.T) {
	vars := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	terms := make([]hyperdual.Expr, len(vars))
	at := make([]float64, len(vars))
	for i, v := range vars {
		terms[i] = hyperdual.MulOf(hyperdual.N(float64(i)), hyperdual.S(v))
		at[i] = 1
	}
	pt, _, err := hyperdual.Gradient(hyperdual.AddOf(terms...), vars, at)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, pt.Gradient)
	assert.Equal(t, 45.0, pt.Value)
}
