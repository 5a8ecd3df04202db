package hyperdual

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// ============================================================
// Tool interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool" yaml:"tool" toml:"tool"`
	Params map[string]interface{} `json:"params" yaml:"params" toml:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// Point is the value and derivatives of an expression at one input.
type Point struct {
	Value       float64     `json:"value"`
	Derivatives []float64   `json:"derivatives,omitempty"`
	Gradient    []float64   `json:"gradient,omitempty"`
	Gradient2   []float64   `json:"gradient2,omitempty"`
	Hessian     [][]float64 `json:"hessian,omitempty"`
	Mixed       [][]float64 `json:"mixed,omitempty"`
}

// HandleToolCall runs one tool. Failures are reported in ToolResponse.Error.
func HandleToolCall(req ToolRequest) ToolResponse {
	p := params(req.Params)
	fail := func(err error) ToolResponse { return ToolResponse{Error: err.Error()} }

	switch req.Tool {
	case "derivative":
		e, err := p.expr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := p.text("var")
		if err != nil {
			return fail(err)
		}
		at, err := p.number("at")
		if err != nil {
			return fail(err)
		}
		order := 1
		if _, ok := req.Params["order"]; ok {
			o, err := p.number("order")
			if err != nil {
				return fail(err)
			}
			if o != math.Trunc(o) || o < 1 || o > 3 {
				return fail(fmt.Errorf("order must be 1, 2 or 3, got %v", o))
			}
			order = int(o)
		}
		pt, jet, err := Derivative(e, v, at, order)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: pt, String: jet.String()}

	case "gradient":
		e, vars, at, err := p.exprAt("vars", "at")
		if err != nil {
			return fail(err)
		}
		pt, jet, err := Gradient(e, vars, at)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: pt, String: jet.String()}

	case "hessian":
		e, vars, at, err := p.exprAt("vars", "at")
		if err != nil {
			return fail(err)
		}
		pt, h, err := Hessian(e, vars, at)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: pt, String: formatDense(h)}

	case "mixed":
		e, vars1, at1, err := p.exprAt("vars1", "at1")
		if err != nil {
			return fail(err)
		}
		vars2, err := p.texts("vars2")
		if err != nil {
			return fail(err)
		}
		at2, err := p.numbers("at2")
		if err != nil {
			return fail(err)
		}
		pt, m, err := Mixed(e, vars1, at1, vars2, at2)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: pt, String: formatDense(m)}

	case "seed":
		kind, err := p.text("kind")
		if err != nil {
			return fail(err)
		}
		x, err := p.input("x")
		if err != nil {
			return fail(err)
		}
		var out []Jet
		switch kind {
		case "derive1":
			out, err = Derive1(x)
		case "derive2":
			if _, ok := req.Params["x2"]; ok {
				x2, perr := p.input("x2")
				if perr != nil {
					return fail(perr)
				}
				var j2 []Jet
				out, j2, err = Derive2Pair(x, x2)
				out = append(out, j2...)
			} else {
				out, err = Derive2(x)
			}
		case "derive3":
			var j Jet
			j, err = Derive3(x)
			out = []Jet{j}
		default:
			err = fmt.Errorf("unknown seed kind: %s", kind)
		}
		if err != nil {
			return fail(err)
		}
		strs := make([]string, len(out))
		for i, j := range out {
			strs[i] = j.String()
		}
		return ToolResponse{Result: strs, String: strings.Join(strs, "\n")}

	case "tool_spec":
		return ToolResponse{String: ToolSpec()}
	}
	return ToolResponse{Error: "unknown tool: " + req.Tool}
}

func formatDense(m *mat.Dense) string {
	return fmt.Sprintf("%v", mat.Formatted(m, mat.Squeeze()))
}

// ============================================================
// Parameter access
// ============================================================

type params map[string]interface{}

func (p params) get(key string) (interface{}, error) {
	v, ok := p[key]
	if !ok {
		return nil, fmt.Errorf("missing param: %s", key)
	}
	return v, nil
}

func (p params) expr(key string) (Expr, error) {
	v, err := p.get(key)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid type for param %s", key)
	}
	return ParseExpr(m)
}

func (p params) text(key string) (string, error) {
	v, err := p.get(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("param %s must be a string", key)
	}
	return s, nil
}

func (p params) number(key string) (float64, error) {
	v, err := p.get(key)
	if err != nil {
		return 0, err
	}
	f, err := parseNumber(v)
	if err != nil {
		return 0, fmt.Errorf("param %s: %w", key, err)
	}
	return f, nil
}

func (p params) list(key string) ([]interface{}, error) {
	v, err := p.get(key)
	if err != nil {
		return nil, err
	}
	raw, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("param %s must be array", key)
	}
	return raw, nil
}

func (p params) texts(key string) ([]string, error) {
	raw, err := p.list(key)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(raw))
	for i, r := range raw {
		s, ok := r.(string)
		if !ok {
			return nil, fmt.Errorf("param %s[%d] must be string", key, i)
		}
		out[i] = s
	}
	return out, nil
}

func (p params) numbers(key string) ([]float64, error) {
	raw, err := p.list(key)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(raw))
	for i, r := range raw {
		f, err := parseNumber(r)
		if err != nil {
			return nil, fmt.Errorf("param %s[%d]: %w", key, i, err)
		}
		out[i] = f
	}
	return out, nil
}

func (p params) exprAt(varsKey, atKey string) (Expr, []string, []float64, error) {
	e, err := p.expr("expr")
	if err != nil {
		return nil, nil, nil, err
	}
	vars, err := p.texts(varsKey)
	if err != nil {
		return nil, nil, nil, err
	}
	at, err := p.numbers(atKey)
	if err != nil {
		return nil, nil, nil, err
	}
	return e, vars, at, nil
}

// input reads a seeding argument: a number, an array of numbers, or a dual
// number object {"re": .., "eps": ..}.
func (p params) input(key string) (Input, error) {
	v, err := p.get(key)
	if err != nil {
		return Input{}, err
	}
	switch x := v.(type) {
	case []interface{}:
		xs, err := p.numbers(key)
		if err != nil {
			return Input{}, err
		}
		return Vector(xs...), nil
	case map[string]interface{}:
		d := params(x)
		re, err := d.number("re")
		if err != nil {
			return Input{}, fmt.Errorf("param %s: %w", key, err)
		}
		eps, err := d.number("eps")
		if err != nil {
			return Input{}, fmt.Errorf("param %s: %w", key, err)
		}
		return Nested(NewDual64(re, eps)), nil
	}
	f, err := p.number(key)
	if err != nil {
		return Input{}, err
	}
	return Scalar(f), nil
}

// ============================================================
// Evaluation at a point
// ============================================================

// Derivative evaluates e and its derivatives up to order with respect to v at
// x, for order 1, 2 or 3.
func Derivative(e Expr, v string, x float64, order int) (Point, Jet, error) {
	var (
		vals []Real
		jet  Jet
	)
	switch order {
	case 1:
		r, err := evalJet(e, map[string]Dual64{v: SeedDual(Real(x))})
		if err != nil {
			return Point{}, nil, err
		}
		vals, jet = []Real{r.re, r.eps}, r
	case 2:
		r, err := evalJet(e, map[string]HyperDual64{v: SeedHyperDual(Real(x))})
		if err != nil {
			return Point{}, nil, err
		}
		vals, jet = []Real{r.re, r.eps1, r.eps1eps2}, r
	case 3:
		r, err := evalJet(e, map[string]ThirdOrderJet64{v: SeedThirdOrderJet(Real(x))})
		if err != nil {
			return Point{}, nil, err
		}
		vals, jet = []Real{r.v0, r.v1, r.v2, r.v3}, r
	default:
		return Point{}, nil, fmt.Errorf("order must be 1, 2 or 3, got %d", order)
	}
	pt := Point{Value: float64(vals[0])}
	for _, d := range vals[1:] {
		pt.Derivatives = append(pt.Derivatives, float64(d))
	}
	return pt, jet, nil
}

// Gradient evaluates e and its gradient over 1 to 10 variables.
func Gradient(e Expr, vars []string, at []float64) (Point, Jet, error) {
	if err := checkVars(vars, at); err != nil {
		return Point{}, nil, err
	}
	fn, ok := gradientTools[len(vars)]
	if !ok {
		return Point{}, nil, &ShapeError{Func: "gradient", Shape: "array[" + fmt.Sprint(len(vars)) + "]"}
	}
	return fn(e, vars, at)
}

// Hessian evaluates e, its gradient and its Hessian over 1 to 5 variables.
func Hessian(e Expr, vars []string, at []float64) (Point, *mat.Dense, error) {
	if err := checkVars(vars, at); err != nil {
		return Point{}, nil, err
	}
	fn, ok := hessianTools[len(vars)]
	if !ok {
		return Point{}, nil, &ShapeError{Func: "hessian", Shape: "array[" + fmt.Sprint(len(vars)) + "]"}
	}
	return fn(e, vars, at)
}

// Mixed evaluates e, its gradients over two disjoint variable groups of 1 to
// 5 variables each, and the block of cross partials between them.
func Mixed(e Expr, vars1 []string, at1 []float64, vars2 []string, at2 []float64) (Point, *mat.Dense, error) {
	if err := checkVars(vars1, at1); err != nil {
		return Point{}, nil, err
	}
	if err := checkVars(vars2, at2); err != nil {
		return Point{}, nil, err
	}
	for _, a := range vars1 {
		for _, b := range vars2 {
			if a == b {
				return Point{}, nil, fmt.Errorf("variable %q appears in both groups", a)
			}
		}
	}
	fn, ok := mixedTools[[2]int{len(vars1), len(vars2)}]
	if !ok {
		return Point{}, nil, &ShapeError{Func: "mixed", Shape: fmt.Sprintf("(array[%d], array[%d])", len(vars1), len(vars2))}
	}
	return fn(e, vars1, at1, vars2, at2)
}

func checkVars(vars []string, at []float64) error {
	if len(vars) != len(at) {
		return fmt.Errorf("%d variables but %d values", len(vars), len(at))
	}
	seen := map[string]bool{}
	for _, v := range vars {
		if seen[v] {
			return fmt.Errorf("duplicate variable %q", v)
		}
		seen[v] = true
	}
	return nil
}

func evalJet[T Number[T]](e Expr, env map[string]T) (T, error) {
	o, err := Eval(e, env)
	if err != nil {
		return zero[T](), err
	}
	return o.Jet(), nil
}

func floats[F Number[F], A Array[F]](v Vec[F, A]) []float64 {
	return VecDenseOf(v).RawVector().Data
}

func rows(m *mat.Dense) [][]float64 {
	r, _ := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = mat.Row(nil, i, m)
	}
	return out
}

func gradientAt[A Array[Real]](e Expr, vars []string, at []float64) (Point, Jet, error) {
	xs := SeedDualVec(realArray[A](at))
	env := make(map[string]DualVec[Real, A], len(vars))
	for i, v := range vars {
		env[v] = xs[i]
	}
	r, err := evalJet(e, env)
	if err != nil {
		return Point{}, nil, err
	}
	return Point{Value: r.Float64(), Gradient: floats(r.eps)}, r, nil
}

func hessianAt[A Array[Real], B Block[A]](e Expr, vars []string, at []float64) (Point, *mat.Dense, error) {
	xs := SeedHessian[B](realArray[A](at))
	env := make(map[string]HyperDualVec[Real, A, A, B], len(vars))
	for i, v := range vars {
		env[v] = xs[i]
	}
	r, err := evalJet(e, env)
	if err != nil {
		return Point{}, nil, err
	}
	h := DenseOf(r.eps1eps2)
	return Point{Value: r.Float64(), Gradient: floats(r.eps1), Hessian: rows(h)}, h, nil
}

func mixedAt[A1 Array[Real], A2 Array[Real], B Block[A2]](e Expr, vars1 []string, at1 []float64, vars2 []string, at2 []float64) (Point, *mat.Dense, error) {
	xs1, xs2 := SeedHyperDualVec[B](realArray[A1](at1), realArray[A2](at2))
	env := make(map[string]HyperDualVec[Real, A1, A2, B], len(vars1)+len(vars2))
	for i, v := range vars1 {
		env[v] = xs1[i]
	}
	for j, v := range vars2 {
		env[v] = xs2[j]
	}
	r, err := evalJet(e, env)
	if err != nil {
		return Point{}, nil, err
	}
	m := DenseOf(r.eps1eps2)
	return Point{
		Value:     r.Float64(),
		Gradient:  floats(r.eps1),
		Gradient2: floats(r.eps2),
		Mixed:     rows(m),
	}, m, nil
}

var gradientTools = map[int]func(Expr, []string, []float64) (Point, Jet, error){
	1:  gradientAt[[1]Real],
	2:  gradientAt[[2]Real],
	3:  gradientAt[[3]Real],
	4:  gradientAt[[4]Real],
	5:  gradientAt[[5]Real],
	6:  gradientAt[[6]Real],
	7:  gradientAt[[7]Real],
	8:  gradientAt[[8]Real],
	9:  gradientAt[[9]Real],
	10: gradientAt[[10]Real],
}

var hessianTools = map[int]func(Expr, []string, []float64) (Point, *mat.Dense, error){
	1: hessianAt[[1]Real, [1][1]Real],
	2: hessianAt[[2]Real, [2][2]Real],
	3: hessianAt[[3]Real, [3][3]Real],
	4: hessianAt[[4]Real, [4][4]Real],
	5: hessianAt[[5]Real, [5][5]Real],
}

type mixedFunc = func(Expr, []string, []float64, []string, []float64) (Point, *mat.Dense, error)

var mixedTools = map[[2]int]mixedFunc{
	{1, 1}: mixedAt[[1]Real, [1]Real, [1][1]Real],
	{1, 2}: mixedAt[[1]Real, [2]Real, [1][2]Real],
	{1, 3}: mixedAt[[1]Real, [3]Real, [1][3]Real],
	{1, 4}: mixedAt[[1]Real, [4]Real, [1][4]Real],
	{1, 5}: mixedAt[[1]Real, [5]Real, [1][5]Real],
	{2, 1}: mixedAt[[2]Real, [1]Real, [2][1]Real],
	{2, 2}: mixedAt[[2]Real, [2]Real, [2][2]Real],
	{2, 3}: mixedAt[[2]Real, [3]Real, [2][3]Real],
	{2, 4}: mixedAt[[2]Real, [4]Real, [2][4]Real],
	{2, 5}: mixedAt[[2]Real, [5]Real, [2][5]Real],
	{3, 1}: mixedAt[[3]Real, [1]Real, [3][1]Real],
	{3, 2}: mixedAt[[3]Real, [2]Real, [3][2]Real],
	{3, 3}: mixedAt[[3]Real, [3]Real, [3][3]Real],
	{3, 4}: mixedAt[[3]Real, [4]Real, [3][4]Real],
	{3, 5}: mixedAt[[3]Real, [5]Real, [3][5]Real],
	{4, 1}: mixedAt[[4]Real, [1]Real, [4][1]Real],
	{4, 2}: mixedAt[[4]Real, [2]Real, [4][2]Real],
	{4, 3}: mixedAt[[4]Real, [3]Real, [4][3]Real],
	{4, 4}: mixedAt[[4]Real, [4]Real, [4][4]Real],
	{4, 5}: mixedAt[[4]Real, [5]Real, [4][5]Real],
	{5, 1}: mixedAt[[5]Real, [1]Real, [5][1]Real],
	{5, 2}: mixedAt[[5]Real, [2]Real, [5][2]Real],
	{5, 3}: mixedAt[[5]Real, [3]Real, [5][3]Real],
	{5, 4}: mixedAt[[5]Real, [4]Real, [5][4]Real],
	{5, 5}: mixedAt[[5]Real, [5]Real, [5][5]Real],
}

// ============================================================
// Tool schema
// ============================================================

// ToolSpec returns the JSON schema of every tool HandleToolCall accepts.
func ToolSpec() string {
	tools := []map[string]interface{}{
		ts("derivative", "Value and derivatives d^k/dx^k for k up to order (1..3)", []string{"expr", "var", "at"}, map[string]string{"expr": "object", "var": "string", "at": "number", "order": "integer"}),
		ts("gradient", "Value and gradient ∇f over 1..10 variables", []string{"expr", "vars", "at"}, map[string]string{"expr": "object", "vars": "array", "at": "array"}),
		ts("hessian", "Value, gradient and Hessian over 1..5 variables", []string{"expr", "vars", "at"}, map[string]string{"expr": "object", "vars": "array", "at": "array"}),
		ts("mixed", "Cross partials ∂²f/∂x_i∂y_j between two groups of 1..5 variables", []string{"expr", "vars1", "at1", "vars2", "at2"}, map[string]string{"expr": "object", "vars1": "array", "at1": "array", "vars2": "array", "at2": "array"}),
		ts("seed", "Render seeded jets. kind is derive1, derive2 or derive3", []string{"kind", "x"}, map[string]string{"kind": "string", "x": "number", "x2": "number"}),
		ts("tool_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
