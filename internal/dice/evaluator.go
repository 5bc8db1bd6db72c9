// Package dice evaluates roll formulas against an rpg-toolkit dice.Roller.
package dice

import (
	"context"
	"fmt"
	"strings"

	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"
	"go.uber.org/zap"

	"github.com/KirkDiggler/deltagreen-api/internal/errors"
)

// DieTerm records the faces rolled for one NdS term
type DieTerm struct {
	Count  int   `json:"count"`
	Sides  int   `json:"sides"`
	Values []int `json:"values"`
}

// Formula renders the term as NdS
func (d DieTerm) Formula() string {
	return fmt.Sprintf("%dd%d", d.Count, d.Sides)
}

// Sum adds up the faces
func (d DieTerm) Sum() int {
	total := 0
	for _, v := range d.Values {
		total += v
	}
	return total
}

// Group is one evaluated member of a formula
type Group struct {
	Formula string    `json:"formula"`
	Total   int       `json:"total"`
	Dice    []DieTerm `json:"dice,omitempty"`
}

// Result is an evaluated formula. Total is the sum of group totals.
type Result struct {
	Expression string  `json:"expression"`
	Pool       bool    `json:"pool"`
	Total      int     `json:"total"`
	Groups     []Group `json:"groups"`
}

// Dice flattens every die term across groups
func (r *Result) Dice() []DieTerm {
	var out []DieTerm
	for _, g := range r.Groups {
		out = append(out, g.Dice...)
	}
	return out
}

// String renders "formula = total", or one entry per group for pools
func (r *Result) String() string {
	if !r.Pool {
		return fmt.Sprintf("%s = %d", r.Expression, r.Total)
	}
	parts := make([]string, len(r.Groups))
	for i, g := range r.Groups {
		parts[i] = fmt.Sprintf("%s: %d", g.Formula, g.Total)
	}
	return strings.Join(parts, ", ")
}

// Config holds the evaluator dependencies
type Config struct {
	Roller toolkitdice.Roller
	Logger *zap.Logger
}

// Validate ensures a roller was provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	vb := errors.NewValidationBuilder()
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	return vb.Build()
}

// Evaluator rolls formulas
type Evaluator struct {
	roller toolkitdice.Roller
	logger *zap.Logger
}

// NewEvaluator creates an Evaluator. A nil logger discards output.
func NewEvaluator(cfg *Config) (*Evaluator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid dice evaluator config")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Evaluator{roller: cfg.Roller, logger: logger}, nil
}

// Evaluate parses and rolls expression
func (e *Evaluator) Evaluate(ctx context.Context, expression string) (*Result, error) {
	expr, err := Parse(expression)
	if err != nil {
		return nil, err
	}
	return e.EvaluateExpression(ctx, expr)
}

// EvaluateExpression rolls an already parsed expression. Groups are
// rolled left to right.
func (e *Evaluator) EvaluateExpression(ctx context.Context, expr *Expression) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeCanceled, "dice evaluation canceled")
	}

	result := &Result{Expression: strings.TrimSpace(expr.Raw), Pool: expr.Pool}
	for _, g := range expr.groups {
		rc := &rollContext{roller: e.roller}
		total, err := g.root.eval(rc)
		if err != nil {
			return nil, err
		}
		result.Groups = append(result.Groups, Group{Formula: g.formula, Total: total, Dice: rc.terms})
		result.Total += total
	}

	e.logger.Debug("dice roll",
		zap.String("expression", result.Expression),
		zap.Int("total", result.Total),
		zap.Any("groups", result.Groups),
	)
	return result, nil
}

type rollContext struct {
	roller toolkitdice.Roller
	terms  []DieTerm
}

func (n numberNode) eval(_ *rollContext) (int, error) {
	return n.value, nil
}

func (n diceNode) eval(rc *rollContext) (int, error) {
	values, err := rc.roller.RollN(n.count, n.sides)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to roll %dd%d", n.count, n.sides)
	}
	term := DieTerm{Count: n.count, Sides: n.sides, Values: values}
	rc.terms = append(rc.terms, term)
	return term.Sum(), nil
}

func (n negNode) eval(rc *rollContext) (int, error) {
	v, err := n.inner.eval(rc)
	return -v, err
}

func (n binaryNode) eval(rc *rollContext) (int, error) {
	left, err := n.left.eval(rc)
	if err != nil {
		return 0, err
	}
	right, err := n.right.eval(rc)
	if err != nil {
		return 0, err
	}

	switch n.op {
	case '+':
		return left + right, nil
	case '-':
		return left - right, nil
	case '*':
		return left * right, nil
	case '/':
		if right == 0 {
			return 0, errors.InvalidArgument("dice: division by zero")
		}
		return left / right, nil
	default:
		return 0, errors.Internalf("dice: unknown operator %q", n.op)
	}
}
