package dice

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KirkDiggler/deltagreen-api/internal/errors"
)

// Limits on a single die term
const (
	MaxDiceCount = 100
	MaxDieSides  = 1000
)

// Limits on a whole expression
const (
	MaxExpressionLength = 256
	MaxNestingDepth     = 32
)

// Expression is a parsed formula. A plain formula has one group; a pool
// such as "{1, 1d6}" has one group per member.
type Expression struct {
	Raw    string
	Pool   bool
	groups []groupNode
}

// Groups returns the source text of each group
func (e *Expression) Groups() []string {
	out := make([]string, len(e.groups))
	for i, g := range e.groups {
		out[i] = g.formula
	}
	return out
}

type groupNode struct {
	formula string
	root    node
}

type node interface {
	eval(rc *rollContext) (int, error)
}

type numberNode struct {
	value int
}

type diceNode struct {
	count int
	sides int
}

type binaryNode struct {
	op          byte
	left, right node
}

type negNode struct {
	inner node
}

// Parse parses a formula such as "1d100", "2 * (1d6 + 1)" or "{1, 1d6}"
func Parse(raw string) (*Expression, error) {
	if len(raw) > MaxExpressionLength {
		return nil, errors.InvalidArgumentf("dice: expression longer than %d characters", MaxExpressionLength)
	}

	p := &parser{src: raw}
	p.skipSpace()
	if p.done() {
		return nil, errors.InvalidArgument("dice: empty expression")
	}

	expr := &Expression{Raw: raw}
	if p.peek() == '{' {
		expr.Pool = true
		p.pos++
		for {
			g, err := p.group()
			if err != nil {
				return nil, err
			}
			expr.groups = append(expr.groups, g)

			p.skipSpace()
			if p.done() {
				return nil, p.errorf("unterminated pool")
			}
			if p.peek() == ',' {
				p.pos++
				continue
			}
			if p.peek() == '}' {
				p.pos++
				break
			}
			return nil, p.errorf("unexpected %q in pool", p.peek())
		}
	} else {
		g, err := p.group()
		if err != nil {
			return nil, err
		}
		expr.groups = append(expr.groups, g)
	}

	p.skipSpace()
	if !p.done() {
		return nil, p.errorf("unexpected %q", p.peek())
	}
	return expr, nil
}

type parser struct {
	src   string
	pos   int
	depth int
}

func (p *parser) done() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte { return p.src[p.pos] }

func (p *parser) skipSpace() {
	for !p.done() && (p.peek() == ' ' || p.peek() == '\t') {
		p.pos++
	}
}

func (p *parser) errorf(format string, args ...any) error {
	return errors.InvalidArgumentf("dice: %s at position %d in %q", fmt.Sprintf(format, args...), p.pos, p.src)
}

func (p *parser) group() (groupNode, error) {
	p.skipSpace()
	start := p.pos
	root, err := p.expr()
	if err != nil {
		return groupNode{}, err
	}
	return groupNode{formula: strings.TrimSpace(p.src[start:p.pos]), root: root}, nil
}

// expr := term (('+' | '-') term)*
func (p *parser) expr() (node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if p.done() || (p.peek() != '+' && p.peek() != '-') {
			return left, nil
		}
		op := p.peek()
		p.pos++
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
}

// term := unary (('*' | '/') unary)*
func (p *parser) term() (node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if p.done() || (p.peek() != '*' && p.peek() != '/') {
			return left, nil
		}
		op := p.peek()
		p.pos++
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
}

// unary := ('-' | '+') unary | primary
func (p *parser) unary() (node, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > MaxNestingDepth {
		return nil, p.errorf("expression nested deeper than %d", MaxNestingDepth)
	}

	p.skipSpace()
	if p.done() {
		return nil, p.errorf("unexpected end of expression")
	}
	switch p.peek() {
	case '-':
		p.pos++
		inner, err := p.unary()
		if err != nil {
			return nil, err
		}
		return negNode{inner: inner}, nil
	case '+':
		p.pos++
		return p.unary()
	}
	return p.primary()
}

// primary := '(' expr ')' | NUMBER | [NUMBER] 'd' NUMBER
func (p *parser) primary() (node, error) {
	if p.peek() == '(' {
		p.pos++
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.done() || p.peek() != ')' {
			return nil, p.errorf("missing closing parenthesis")
		}
		p.pos++
		return inner, nil
	}

	count, hasCount := p.number()
	if !p.done() && (p.peek() == 'd' || p.peek() == 'D') {
		p.pos++
		sides, ok := p.number()
		if !ok {
			return nil, p.errorf("missing die size")
		}
		if !hasCount {
			count = 1
		}
		if count < 1 || count > MaxDiceCount {
			return nil, p.errorf("die count must be between 1 and %d", MaxDiceCount)
		}
		if sides < 1 || sides > MaxDieSides {
			return nil, p.errorf("die size must be between 1 and %d", MaxDieSides)
		}
		return diceNode{count: count, sides: sides}, nil
	}
	if !hasCount {
		if p.done() {
			return nil, p.errorf("unexpected end of expression")
		}
		return nil, p.errorf("unexpected %q", p.peek())
	}
	return numberNode{value: count}, nil
}

func (p *parser) number() (int, bool) {
	start := p.pos
	for !p.done() && p.peek() >= '0' && p.peek() <= '9' {
		p.pos++
	}
	if start == p.pos {
		return 0, false
	}
	n, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		return 0, false
	}
	return n, true
}
