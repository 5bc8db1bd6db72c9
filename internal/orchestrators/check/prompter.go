package check

import (
	"context"
	"strings"

	"github.com/KirkDiggler/deltagreen-api/internal/chat"
	"github.com/KirkDiggler/deltagreen-api/internal/checks"
)

// presetPrompter answers every dialog with adjustments supplied up
// front by a non-interactive caller.
type presetPrompter struct {
	modifier int
	rollMode chat.RollMode
	outer    string
	inner    string
}

var _ checks.Prompter = (*presetPrompter)(nil)

func (p *presetPrompter) empty() bool {
	return p.modifier == 0 &&
		p.rollMode == "" &&
		strings.TrimSpace(p.outer) == "" &&
		strings.TrimSpace(p.inner) == ""
}

func (p *presetPrompter) RequestModifier(_ context.Context, _ checks.ModifierRequest) (*checks.ModifierResponse, error) {
	return &checks.ModifierResponse{Modifier: p.modifier, RollMode: p.rollMode}, nil
}

func (p *presetPrompter) RequestDamageFormula(
	_ context.Context,
	req checks.DamageFormulaRequest,
) (*checks.DamageFormulaResponse, error) {
	return &checks.DamageFormulaResponse{
		OriginalFormula: req.OriginalFormula,
		OuterModifier:   p.outer,
		InnerModifier:   p.inner,
		RollMode:        p.rollMode,
	}, nil
}
