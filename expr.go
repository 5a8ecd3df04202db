package hyperdual

import (
	"encoding/json"
	"fmt"
	"math/big"
	"sort"
	"strings"
)

// ============================================================
// Expression trees
// ============================================================

// Expr is a parsed arithmetic expression that can be evaluated over any jet
// type. Trees are immutable and carry no simplification; the jets do the
// differentiation.
type Expr interface {
	String() string
	exprType() string
	toJSON() map[string]interface{}
	symbols(seen map[string]bool)
}

type Num struct{ val float64 }
type Sym struct{ name string }
type Add struct{ terms []Expr }
type Mul struct{ factors []Expr }
type Pow struct{ base, exp Expr }
type Neg struct{ arg Expr }
type Div struct{ num, den Expr }
type Func struct {
	name string
	arg  Expr
}

// Call is a function of several arguments: log_base(x, base) or
// mul_add(x, a, b).
type Call struct {
	name string
	args []Expr
}

func N(v float64) *Num                   { return &Num{val: v} }
func S(name string) *Sym                 { return &Sym{name: name} }
func AddOf(terms ...Expr) *Add           { return &Add{terms: terms} }
func MulOf(factors ...Expr) *Mul         { return &Mul{factors: factors} }
func PowOf(base, exp Expr) *Pow          { return &Pow{base: base, exp: exp} }
func NegOf(arg Expr) *Neg                { return &Neg{arg: arg} }
func DivOf(num, den Expr) *Div           { return &Div{num: num, den: den} }
func FuncOf(name string, arg Expr) *Func { return &Func{name: name, arg: arg} }
func CallOf(name string, args ...Expr) *Call {
	return &Call{name: name, args: args}
}

func (n *Num) exprType() string  { return "num" }
func (s *Sym) exprType() string  { return "sym" }
func (a *Add) exprType() string  { return "add" }
func (m *Mul) exprType() string  { return "mul" }
func (p *Pow) exprType() string  { return "pow" }
func (n *Neg) exprType() string  { return "neg" }
func (d *Div) exprType() string  { return "div" }
func (f *Func) exprType() string { return "func" }
func (c *Call) exprType() string { return "call" }

func (n *Num) String() string  { return formatFloat(n.val) }
func (s *Sym) String() string  { return s.name }
func (a *Add) String() string  { return "(" + joinExprs(a.terms, " + ") + ")" }
func (m *Mul) String() string  { return "(" + joinExprs(m.factors, " * ") + ")" }
func (p *Pow) String() string  { return p.base.String() + "^" + p.exp.String() }
func (n *Neg) String() string  { return "-" + n.arg.String() }
func (d *Div) String() string  { return "(" + d.num.String() + " / " + d.den.String() + ")" }
func (f *Func) String() string { return f.name + "(" + f.arg.String() + ")" }
func (c *Call) String() string { return c.name + "(" + joinExprs(c.args, ", ") + ")" }

func joinExprs(es []Expr, sep string) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.String()
	}
	return strings.Join(parts, sep)
}

func exprsJSON(es []Expr) []interface{} {
	out := make([]interface{}, len(es))
	for i, e := range es {
		out[i] = e.toJSON()
	}
	return out
}

func (n *Num) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "num", "value": formatFloat(n.val)}
}
func (s *Sym) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "sym", "name": s.name}
}
func (a *Add) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "add", "terms": exprsJSON(a.terms)}
}
func (m *Mul) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "mul", "factors": exprsJSON(m.factors)}
}
func (p *Pow) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "pow", "base": p.base.toJSON(), "exp": p.exp.toJSON()}
}
func (n *Neg) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "neg", "arg": n.arg.toJSON()}
}
func (d *Div) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "div", "num": d.num.toJSON(), "den": d.den.toJSON()}
}
func (f *Func) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "func", "name": f.name, "arg": f.arg.toJSON()}
}
func (c *Call) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "call", "name": c.name, "args": exprsJSON(c.args)}
}

func (n *Num) symbols(map[string]bool)      {}
func (s *Sym) symbols(seen map[string]bool) { seen[s.name] = true }
func (a *Add) symbols(seen map[string]bool) { symbolsOf(a.terms, seen) }
func (m *Mul) symbols(seen map[string]bool) { symbolsOf(m.factors, seen) }
func (p *Pow) symbols(seen map[string]bool) {
	p.base.symbols(seen)
	p.exp.symbols(seen)
}
func (n *Neg) symbols(seen map[string]bool) { n.arg.symbols(seen) }
func (d *Div) symbols(seen map[string]bool) {
	d.num.symbols(seen)
	d.den.symbols(seen)
}
func (f *Func) symbols(seen map[string]bool) { f.arg.symbols(seen) }
func (c *Call) symbols(seen map[string]bool) { symbolsOf(c.args, seen) }

func symbolsOf(es []Expr, seen map[string]bool) {
	for _, e := range es {
		e.symbols(seen)
	}
}

// FreeSymbols returns the sorted names of every symbol in e.
func FreeSymbols(e Expr) []string {
	seen := map[string]bool{}
	e.symbols(seen)
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ============================================================
// JSON wire format
// ============================================================

func ToJSON(e Expr) (string, error) {
	b, err := json.Marshal(e.toJSON())
	return string(b), err
}

// ParseExprJSON decodes one expression object.
func ParseExprJSON(data []byte) (Expr, error) {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode expression: %w", err)
	}
	return ParseExpr(m)
}

// ParseExpr builds an expression from its decoded object. JSON, YAML and
// TOML decoders all produce the map[string]interface{} shape it expects.
func ParseExpr(data map[string]interface{}) (Expr, error) {
	if data == nil {
		return nil, fmt.Errorf("expression must be an object")
	}
	typAny, ok := data["type"]
	if !ok {
		return nil, fmt.Errorf("missing 'type' field")
	}
	typ, ok := typAny.(string)
	if !ok || typ == "" {
		return nil, fmt.Errorf("field 'type' must be a non-empty string")
	}

	sub := func(field string) (Expr, error) {
		v, ok := data[field]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, field)
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an object", typ, field)
		}
		e, err := ParseExpr(m)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", typ, field, err)
		}
		return e, nil
	}

	subList := func(field string) ([]Expr, error) {
		v, ok := data[field]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, field)
		}
		raw, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an array", typ, field)
		}
		out := make([]Expr, len(raw))
		for i, it := range raw {
			m, ok := it.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("%s: %q[%d] must be an object", typ, field, i)
			}
			e, err := ParseExpr(m)
			if err != nil {
				return nil, fmt.Errorf("%s: %s[%d]: %w", typ, field, i, err)
			}
			out[i] = e
		}
		return out, nil
	}

	subString := func(field string) (string, error) {
		v, ok := data[field]
		if !ok {
			return "", fmt.Errorf("%s: missing %q", typ, field)
		}
		s, ok := v.(string)
		if !ok || s == "" {
			return "", fmt.Errorf("%s: %q must be a non-empty string", typ, field)
		}
		return s, nil
	}

	switch typ {
	case "num":
		v, ok := data["value"]
		if !ok {
			return nil, fmt.Errorf("num: missing 'value'")
		}
		f, err := parseNumber(v)
		if err != nil {
			return nil, fmt.Errorf("num: %w", err)
		}
		return N(f), nil

	case "sym":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		return S(name), nil

	case "add":
		terms, err := subList("terms")
		if err != nil {
			return nil, err
		}
		if len(terms) == 0 {
			return nil, fmt.Errorf("add: 'terms' must not be empty")
		}
		return AddOf(terms...), nil

	case "mul":
		factors, err := subList("factors")
		if err != nil {
			return nil, err
		}
		if len(factors) == 0 {
			return nil, fmt.Errorf("mul: 'factors' must not be empty")
		}
		return MulOf(factors...), nil

	case "pow":
		base, err := sub("base")
		if err != nil {
			return nil, err
		}
		exp, err := sub("exp")
		if err != nil {
			return nil, err
		}
		return PowOf(base, exp), nil

	case "neg":
		arg, err := sub("arg")
		if err != nil {
			return nil, err
		}
		return NegOf(arg), nil

	case "div":
		num, err := sub("num")
		if err != nil {
			return nil, err
		}
		den, err := sub("den")
		if err != nil {
			return nil, err
		}
		return DivOf(num, den), nil

	case "func":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		if _, ok := unaryFunc[Real](name); !ok {
			return nil, fmt.Errorf("func: unknown function %q", name)
		}
		arg, err := sub("arg")
		if err != nil {
			return nil, err
		}
		return FuncOf(name, arg), nil

	case "call":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		arity, ok := callArity[name]
		if !ok {
			return nil, fmt.Errorf("call: unknown function %q", name)
		}
		args, err := subList("args")
		if err != nil {
			return nil, err
		}
		if len(args) != arity {
			return nil, fmt.Errorf("call: %s takes %d arguments, got %d", name, arity, len(args))
		}
		return CallOf(name, args...), nil
	}
	return nil, fmt.Errorf("unknown expression type: %s", typ)
}

// parseNumber accepts a JSON number or a decimal or rational string such as
// "0.25" or "1/3".
func parseNumber(v interface{}) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case string:
		r, ok := new(big.Rat).SetString(x)
		if !ok {
			return 0, fmt.Errorf("invalid number %q", x)
		}
		f, _ := r.Float64()
		return f, nil
	}
	return 0, fmt.Errorf("'value' must be a number or numeric string, got %T", v)
}

var callArity = map[string]int{
	"log_base": 2,
	"mul_add":  3,
}

// ============================================================
// Evaluation
// ============================================================

// Eval evaluates e with every symbol bound in env. Subtrees without symbols
// stay plain numbers; the result is a jet as soon as a bound symbol is
// involved.
func Eval[T Number[T]](e Expr, env map[string]T) (Operand[T], error) {
	switch n := e.(type) {
	case *Num:
		return ScalarOperand[T](n.val), nil

	case *Sym:
		x, ok := env[n.name]
		if !ok {
			return Operand[T]{}, fmt.Errorf("unbound symbol %q", n.name)
		}
		return JetOperand(x), nil

	case *Add:
		return fold(OpAdd, "terms", n.terms, env)

	case *Mul:
		return fold(OpMul, "factors", n.factors, env)

	case *Pow:
		base, err := Eval(n.base, env)
		if err != nil {
			return Operand[T]{}, fmt.Errorf("pow: base: %w", err)
		}
		exp, err := Eval(n.exp, env)
		if err != nil {
			return Operand[T]{}, fmt.Errorf("pow: exp: %w", err)
		}
		return Apply(OpPow, base, exp), nil

	case *Neg:
		arg, err := Eval(n.arg, env)
		if err != nil {
			return Operand[T]{}, fmt.Errorf("neg: %w", err)
		}
		return Apply(OpSub, ScalarOperand[T](0), arg), nil

	case *Div:
		num, err := Eval(n.num, env)
		if err != nil {
			return Operand[T]{}, fmt.Errorf("div: num: %w", err)
		}
		den, err := Eval(n.den, env)
		if err != nil {
			return Operand[T]{}, fmt.Errorf("div: den: %w", err)
		}
		return Apply(OpDiv, num, den), nil

	case *Func:
		arg, err := Eval(n.arg, env)
		if err != nil {
			return Operand[T]{}, fmt.Errorf("%s: %w", n.name, err)
		}
		return applyFunc(n.name, arg)

	case *Call:
		args := make([]Operand[T], len(n.args))
		for i, a := range n.args {
			v, err := Eval(a, env)
			if err != nil {
				return Operand[T]{}, fmt.Errorf("%s: args[%d]: %w", n.name, i, err)
			}
			args[i] = v
		}
		return applyCall(n.name, args)
	}
	return Operand[T]{}, fmt.Errorf("cannot evaluate %T", e)
}

func fold[T Number[T]](op Op, field string, es []Expr, env map[string]T) (Operand[T], error) {
	var acc Operand[T]
	for i, e := range es {
		v, err := Eval(e, env)
		if err != nil {
			return Operand[T]{}, fmt.Errorf("%s: %s[%d]: %w", op, field, i, err)
		}
		if i == 0 {
			acc = v
			continue
		}
		acc = Apply(op, acc, v)
	}
	return acc, nil
}

func applyFunc[T Number[T]](name string, arg Operand[T]) (Operand[T], error) {
	if arg.IsJet() {
		fn, ok := unaryFunc[T](name)
		if !ok {
			return Operand[T]{}, fmt.Errorf("unknown function %q", name)
		}
		return JetOperand(fn(arg.jet)), nil
	}
	fn, ok := unaryFunc[Real](name)
	if !ok {
		return Operand[T]{}, fmt.Errorf("unknown function %q", name)
	}
	return ScalarOperand[T](float64(fn(Real(arg.scalar)))), nil
}

func applyCall[T Number[T]](name string, args []Operand[T]) (Operand[T], error) {
	switch name {
	case "log_base":
		x, base := args[0], args[1]
		if base.IsJet() {
			return Apply(OpDiv, JetOperand(x.Jet().Ln()), JetOperand(base.jet.Ln())), nil
		}
		if !x.IsJet() {
			return ScalarOperand[T](Real(x.scalar).LogBase(base.scalar).Float64()), nil
		}
		return JetOperand(x.jet.LogBase(base.scalar)), nil
	case "mul_add":
		x, a, b := args[0], args[1], args[2]
		if !x.IsJet() && !a.IsJet() && !b.IsJet() {
			return ScalarOperand[T](Real(x.scalar).MulAdd(Real(a.scalar), Real(b.scalar)).Float64()), nil
		}
		return JetOperand(x.Jet().MulAdd(a.Jet(), b.Jet())), nil
	}
	return Operand[T]{}, fmt.Errorf("unknown function %q", name)
}

// unaryFunc maps a wire-format function name to the matching method.
func unaryFunc[T Number[T]](name string) (func(T) T, bool) {
	switch name {
	case "recip":
		return T.Recip, true
	case "sqrt":
		return T.Sqrt, true
	case "cbrt":
		return T.Cbrt, true
	case "exp":
		return T.Exp, true
	case "exp2":
		return T.Exp2, true
	case "expm1":
		return T.Expm1, true
	case "ln", "log":
		return T.Ln, true
	case "log2":
		return T.Log2, true
	case "log10":
		return T.Log10, true
	case "ln_1p", "log1p":
		return T.Ln1p, true
	case "sin":
		return T.Sin, true
	case "cos":
		return T.Cos, true
	case "tan":
		return T.Tan, true
	case "asin":
		return T.Asin, true
	case "acos":
		return T.Acos, true
	case "atan":
		return T.Atan, true
	case "sinh":
		return T.Sinh, true
	case "cosh":
		return T.Cosh, true
	case "tanh":
		return T.Tanh, true
	case "asinh":
		return T.Asinh, true
	case "acosh":
		return T.Acosh, true
	case "atanh":
		return T.Atanh, true
	case "sph_j0":
		return T.SphJ0, true
	case "sph_j1":
		return T.SphJ1, true
	case "sph_j2":
		return T.SphJ2, true
	}
	return nil, false
}
