package predict

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Side selects whose counts a condition reference reads.
type Side int

const (
	// Own is written {F} in a condition: the team the category belongs to.
	Own Side = iota
	// Opponent is written {A} in a condition.
	Opponent
)

// Env supplies values to condition references.
type Env interface {
	Value(category int, side Side) float64
}

// Expr is a parsed condition expression.
type Expr interface {
	Eval(env Env) float64
	String() string
	resolve(index map[string]int) error
}

// ConditionError reports a condition that cannot be parsed or resolved.
type ConditionError struct {
	Category string
	Reason   string
}

func (e *ConditionError) Error() string {
	if e.Category == "" {
		return "condition: " + e.Reason
	}
	return fmt.Sprintf("condition for %s: %s", e.Category, e.Reason)
}

// Number is a constant.
type Number float64

func (n Number) Eval(Env) float64             { return float64(n) }
func (n Number) String() string               { return strconv.FormatFloat(float64(n), 'g', -1, 64) }
func (n Number) resolve(map[string]int) error { return nil }

// Ref reads the count of a score category for one side.
type Ref struct {
	Code     string
	Side     Side
	Category int
}

func (r *Ref) Eval(env Env) float64 { return env.Value(r.Category, r.Side) }

func (r *Ref) String() string {
	if r.Side == Own {
		return r.Code + "_{F}"
	}
	return r.Code + "_{A}"
}

func (r *Ref) resolve(index map[string]int) error {
	i, ok := index[r.Code]
	if !ok {
		return fmt.Errorf("unknown score category %q", r.Code)
	}
	r.Category = i
	return nil
}

// Negate is unary minus.
type Negate struct {
	X Expr
}

func (n *Negate) Eval(env Env) float64                 { return -n.X.Eval(env) }
func (n *Negate) String() string                       { return "-" + n.X.String() }
func (n *Negate) resolve(index map[string]int) error { return n.X.resolve(index) }

// Binary applies an arithmetic or comparison operator. Comparisons evaluate to 1 or 0.
type Binary struct {
	Op   string
	X, Y Expr
}

func (b *Binary) Eval(env Env) float64 {
	x := b.X.Eval(env)
	y := b.Y.Eval(env)
	switch b.Op {
	case "+":
		return x + y
	case "-":
		return x - y
	case "*":
		return x * y
	case "/":
		return x / y
	case ">":
		return truth(x > y)
	case ">=":
		return truth(x >= y)
	case "<":
		return truth(x < y)
	case "<=":
		return truth(x <= y)
	case "==":
		return truth(x == y)
	case "!=":
		return truth(x != y)
	}
	return math.NaN()
}

func (b *Binary) String() string {
	return "(" + b.X.String() + " " + b.Op + " " + b.Y.String() + ")"
}

func (b *Binary) resolve(index map[string]int) error {
	if err := b.X.resolve(index); err != nil {
		return err
	}
	return b.Y.resolve(index)
}

func truth(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// References returns every category reference in the expression.
func References(e Expr) []*Ref {
	var refs []*Ref
	var walk func(Expr)
	walk = func(e Expr) {
		switch x := e.(type) {
		case *Ref:
			refs = append(refs, x)
		case *Negate:
			walk(x.X)
		case *Binary:
			walk(x.X)
			walk(x.Y)
		}
	}
	walk(e)
	return refs
}

// Trials evaluates a condition as a trial count: floored and never negative.
func Trials(e Expr, env Env) float64 {
	v := e.Eval(env)
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	return math.Floor(v)
}

// ParseCondition parses expressions such as "TD_{F} + OTTD_{F}" or "GOFOR2_{A} - PAT2_{A}".
// References must be resolved against a ScoreSettings before evaluation.
func ParseCondition(s string) (Expr, error) {
	toks, err := lex(s)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	e, err := p.comparison()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, &ConditionError{Reason: fmt.Sprintf("unexpected %q in %q", p.toks[p.pos].text, s)}
	}
	return e, nil
}

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokRef
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	num  float64
	side Side
}

func lex(s string) ([]token, error) {
	var toks []token
	rs := []rune(s)
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '(':
			toks = append(toks, token{kind: tokLParen, text: "("})
			i++
		case r == ')':
			toks = append(toks, token{kind: tokRParen, text: ")"})
			i++
		case strings.ContainsRune("+-*/", r):
			toks = append(toks, token{kind: tokOp, text: string(r)})
			i++
		case strings.ContainsRune("<>=!", r):
			op := string(r)
			if i+1 < len(rs) && rs[i+1] == '=' {
				op += "="
			}
			if op == "=" || op == "!" {
				return nil, &ConditionError{Reason: fmt.Sprintf("bad operator %q in %q", op, s)}
			}
			toks = append(toks, token{kind: tokOp, text: op})
			i += len(op)
		case unicode.IsDigit(r) || r == '.':
			j := i
			for j < len(rs) && (unicode.IsDigit(rs[j]) || rs[j] == '.') {
				j++
			}
			v, err := strconv.ParseFloat(string(rs[i:j]), 64)
			if err != nil {
				return nil, &ConditionError{Reason: fmt.Sprintf("bad number %q in %q", string(rs[i:j]), s)}
			}
			toks = append(toks, token{kind: tokNumber, text: string(rs[i:j]), num: v})
			i = j
		case unicode.IsLetter(r) || r == '_':
			j := i
			for j < len(rs) && (unicode.IsLetter(rs[j]) || unicode.IsDigit(rs[j]) || rs[j] == '_') {
				j++
			}
			ident := string(rs[i:j])
			if j+2 >= len(rs) || rs[j] != '{' || rs[j+2] != '}' || !strings.HasSuffix(ident, "_") {
				return nil, &ConditionError{Reason: fmt.Sprintf("reference %q in %q must end in _{F} or _{A}", ident, s)}
			}
			var side Side
			switch rs[j+1] {
			case 'F':
				side = Own
			case 'A':
				side = Opponent
			default:
				return nil, &ConditionError{Reason: (&DirectionError{Token: string(rs[j+1])}).Error()}
			}
			toks = append(toks, token{kind: tokRef, text: strings.TrimSuffix(ident, "_"), side: side})
			i = j + 3
		default:
			return nil, &ConditionError{Reason: fmt.Sprintf("unexpected character %q in %q", r, s)}
		}
	}
	if len(toks) == 0 {
		return nil, &ConditionError{Reason: "empty condition"}
	}
	return toks, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peekOp(ops ...string) (string, bool) {
	if p.pos >= len(p.toks) || p.toks[p.pos].kind != tokOp {
		return "", false
	}
	for _, op := range ops {
		if p.toks[p.pos].text == op {
			return op, true
		}
	}
	return "", false
}

func (p *parser) comparison() (Expr, error) {
	x, err := p.sum()
	if err != nil {
		return nil, err
	}
	if op, ok := p.peekOp(">", ">=", "<", "<=", "==", "!="); ok {
		p.pos++
		y, err := p.sum()
		if err != nil {
			return nil, err
		}
		return &Binary{Op: op, X: x, Y: y}, nil
	}
	return x, nil
}

func (p *parser) sum() (Expr, error) {
	x, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.peekOp("+", "-")
		if !ok {
			return x, nil
		}
		p.pos++
		y, err := p.term()
		if err != nil {
			return nil, err
		}
		x = &Binary{Op: op, X: x, Y: y}
	}
}

func (p *parser) term() (Expr, error) {
	x, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.peekOp("*", "/")
		if !ok {
			return x, nil
		}
		p.pos++
		y, err := p.unary()
		if err != nil {
			return nil, err
		}
		x = &Binary{Op: op, X: x, Y: y}
	}
}

func (p *parser) unary() (Expr, error) {
	if _, ok := p.peekOp("-"); ok {
		p.pos++
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Negate{X: x}, nil
	}
	return p.primary()
}

func (p *parser) primary() (Expr, error) {
	if p.pos >= len(p.toks) {
		return nil, &ConditionError{Reason: "unexpected end of condition"}
	}
	t := p.toks[p.pos]
	p.pos++
	switch t.kind {
	case tokNumber:
		return Number(t.num), nil
	case tokRef:
		return &Ref{Code: t.text, Side: t.side}, nil
	case tokLParen:
		x, err := p.comparison()
		if err != nil {
			return nil, err
		}
		if p.pos >= len(p.toks) || p.toks[p.pos].kind != tokRParen {
			return nil, &ConditionError{Reason: "missing closing parenthesis"}
		}
		p.pos++
		return x, nil
	}
	return nil, &ConditionError{Reason: fmt.Sprintf("unexpected %q", t.text)}
}

// rowEnv evaluates references against a score table row in direction d: own references read d, opponent references read the complement.
type rowEnv struct {
	row ScoreRow
	d   Direction
}

func (e rowEnv) Value(category int, side Side) float64 {
	if side == Own {
		return e.row.Count(e.d, category)
	}
	return e.row.Count(e.d.Complement(), category)
}

// drawEnv evaluates references against one simulated trial.
type drawEnv struct {
	own, opp [][]float64
	trial    int
}

func (e *drawEnv) Value(category int, side Side) float64 {
	if side == Own {
		return e.own[category][e.trial]
	}
	return e.opp[category][e.trial]
}

// RowTrials returns the number of trials a probabilistic category had in a historical game, seen from direction d.
func RowTrials(cat *ScoreCategory, row ScoreRow, d Direction) float64 {
	if cat.Condition == nil {
		return 0
	}
	return Trials(cat.Condition, rowEnv{row: row, d: d})
}
