// Package dialog implements checks.Prompter for a line-based terminal.
package dialog

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/KirkDiggler/deltagreen-api/internal/chat"
	"github.com/KirkDiggler/deltagreen-api/internal/checks"
	"github.com/KirkDiggler/deltagreen-api/internal/errors"
)

// Words with a meaning at any prompt
const (
	InputCancel = "cancel"
	InputNone   = "none"
)

// Terminal asks for roll adjustments over a reader and writer. Typing
// "cancel" or closing the input dismisses the dialog.
type Terminal struct {
	in        *bufio.Reader
	out       io.Writer
	localizer checks.Localizer
}

var _ checks.Prompter = (*Terminal)(nil)

// NewTerminal creates a Terminal
func NewTerminal(in io.Reader, out io.Writer, localizer checks.Localizer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out, localizer: localizer}
}

// RequestModifier reads a signed modifier such as "+20" or "-40" and a
// roll mode. Blank answers keep the defaults.
func (t *Terminal) RequestModifier(ctx context.Context, req checks.ModifierRequest) (*checks.ModifierResponse, error) {
	t.writeLine("== %s ==", t.localizer.Localize("DG.ModifySkillRollDialogue.Title"))
	if req.HideTarget {
		t.writeLine("%s", req.Label)
	} else {
		t.writeLine("%s (%s %d)", req.Label, t.localizer.Localize("DG.Roll.Target"), req.CurrentTarget)
	}

	resp := &checks.ModifierResponse{}
	for {
		line, err := t.ask(ctx, fmt.Sprintf("%s [+%d / -%d]: ",
			t.localizer.Localize("DG.ModifySkillRollDialogue.Modifier"), req.SuggestedModifier, req.SuggestedModifier))
		if err != nil {
			return nil, err
		}
		modifier, err := parseModifier(line)
		if err != nil {
			t.writeLine("%s", errors.GetMessage(err))
			continue
		}
		resp.Modifier = modifier
		break
	}

	mode, err := t.askRollMode(ctx, req.DefaultRollMode)
	if err != nil {
		return nil, err
	}
	resp.RollMode = mode
	return resp, nil
}

// RequestDamageFormula reads the outer and inner modifiers. A blank
// answer keeps the default and "none" clears it.
func (t *Terminal) RequestDamageFormula(
	ctx context.Context,
	req checks.DamageFormulaRequest,
) (*checks.DamageFormulaResponse, error) {
	t.writeLine("== %s ==", t.localizer.Localize("DG.DamageDialogue.Title"))
	t.writeLine("%s: %s", req.Label, req.OriginalFormula)

	outer, err := t.askText(ctx, t.localizer.Localize("DG.DamageDialogue.Outer"), req.OuterModifier)
	if err != nil {
		return nil, err
	}
	inner, err := t.askText(ctx, t.localizer.Localize("DG.DamageDialogue.Inner"), req.InnerModifier)
	if err != nil {
		return nil, err
	}
	mode, err := t.askRollMode(ctx, req.DefaultRollMode)
	if err != nil {
		return nil, err
	}

	return &checks.DamageFormulaResponse{
		OriginalFormula: req.OriginalFormula,
		OuterModifier:   outer,
		InnerModifier:   inner,
		RollMode:        mode,
	}, nil
}

func (t *Terminal) askText(ctx context.Context, label, def string) (string, error) {
	line, err := t.ask(ctx, fmt.Sprintf("%s [%s]: ", label, strings.TrimSpace(def)))
	if err != nil {
		return "", err
	}
	switch {
	case line == "":
		return def, nil
	case strings.EqualFold(line, InputNone):
		return "", nil
	default:
		return line, nil
	}
}

func (t *Terminal) askRollMode(ctx context.Context, def chat.RollMode) (chat.RollMode, error) {
	for {
		line, err := t.ask(ctx, fmt.Sprintf("%s [%s]: ", t.localizer.Localize("DG.ModifySkillRollDialogue.RollMode"), def))
		if err != nil {
			return "", err
		}
		if line == "" {
			return def, nil
		}
		mode, err := chat.ParseRollMode(line)
		if err != nil {
			t.writeLine("%s", errors.GetMessage(err))
			continue
		}
		return mode, nil
	}
}

// ask prints a prompt and reads one trimmed line. End of input and
// "cancel" both dismiss the dialog.
func (t *Terminal) ask(ctx context.Context, prompt string) (string, error) {
	if ctx.Err() != nil {
		return "", checks.ErrDialogCanceled
	}
	if _, err := fmt.Fprint(t.out, prompt); err != nil {
		return "", errors.Wrap(err, "failed to write prompt")
	}

	line, err := t.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil && (err != io.EOF || line == "") {
		if err == io.EOF {
			return "", checks.ErrDialogCanceled
		}
		return "", errors.Wrap(err, "failed to read answer")
	}
	if strings.EqualFold(line, InputCancel) {
		return "", checks.ErrDialogCanceled
	}
	return line, nil
}

func (t *Terminal) writeLine(format string, args ...any) {
	_, _ = fmt.Fprintf(t.out, format+"\n", args...)
}

// parseModifier splits "+20", "-20" or "20" into magnitude and sign
func parseModifier(s string) (int, error) {
	sign := "+"
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		sign, s = s[:1], s[1:]
	}
	return checks.ParseSignedModifier(s, sign)
}
