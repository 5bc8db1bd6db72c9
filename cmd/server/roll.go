package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/deltagreen-api/internal/chat"
	"github.com/KirkDiggler/deltagreen-api/internal/checks"
	"github.com/KirkDiggler/deltagreen-api/internal/dialog"
	"github.com/KirkDiggler/deltagreen-api/internal/orchestrators/check"
)

var rollFlags struct {
	sheet       string
	kind        string
	key         string
	item        string
	training    string
	modifier    int
	rollMode    string
	outer       string
	inner       string
	successLoss string
	failedLoss  string
	gm          bool
	interactive bool
	save        bool
}

var rollCmd = &cobra.Command{
	Use:   "roll",
	Short: "Roll one check against a local agent sheet",
	Long: `Roll a check for the agent in a YAML sheet. Examples:

  roll --sheet agent.yaml --kind skill --key firearms
  roll --sheet agent.yaml --kind weapon --item glock -i
  roll --sheet agent.yaml --kind sanity-damage --success-loss 1 --failed-loss 1d6
  roll --sheet agent.yaml --kind skill --key alertness --save`,
	RunE: runRoll,
}

func init() {
	f := rollCmd.Flags()
	f.StringVar(&rollFlags.sheet, "sheet", "", "agent sheet (YAML)")
	f.StringVar(&rollFlags.kind, "kind", "", "check kind: "+strings.Join(checks.KindNames(), ", "))
	f.StringVar(&rollFlags.key, "key", "", "skill, typed skill or statistic key")
	f.StringVar(&rollFlags.item, "item", "", "weapon id")
	f.StringVar(&rollFlags.training, "training", "", "special training id")
	f.IntVar(&rollFlags.modifier, "modifier", 0, "percentile modifier")
	f.StringVar(&rollFlags.rollMode, "roll-mode", "", "publicroll, gmroll, blindroll or selfroll")
	f.StringVar(&rollFlags.outer, "outer", "", "text before the damage formula, e.g. \"2 * \"")
	f.StringVar(&rollFlags.inner, "inner", "", "text after the damage formula, e.g. \"+ 2\"")
	f.StringVar(&rollFlags.successLoss, "success-loss", "", "sanity loss on success")
	f.StringVar(&rollFlags.failedLoss, "failed-loss", "", "sanity loss on failure")
	f.BoolVar(&rollFlags.gm, "gm", false, "roll as the game moderator")
	f.BoolVarP(&rollFlags.interactive, "interactive", "i", false, "ask for modifiers on the terminal")
	f.BoolVar(&rollFlags.save, "save", false, "write failure marks back to the sheet")

	_ = rollCmd.MarkFlagRequired("sheet")
	_ = rollCmd.MarkFlagRequired("kind")
}

func runRoll(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	s, sheet, err := localStack(ctx, rollFlags.sheet)
	if err != nil {
		return err
	}
	defer func() { _ = s.logger.Sync() }()

	localizer, err := s.localizer()
	if err != nil {
		return err
	}
	if rollFlags.interactive {
		s.prompter = dialog.NewTerminal(os.Stdin, cmd.OutOrStdout(), localizer)
	}

	svc, err := s.orchestrator(localizer)
	if err != nil {
		return err
	}

	out, err := svc.RollCheck(ctx, &check.RollCheckInput{
		AgentID:       sheet.ID,
		Kind:          rollFlags.kind,
		Key:           rollFlags.key,
		ItemID:        rollFlags.item,
		TrainingID:    rollFlags.training,
		Modifier:      rollFlags.modifier,
		RollMode:      rollFlags.rollMode,
		OuterModifier: rollFlags.outer,
		InnerModifier: rollFlags.inner,
		SuccessLoss:   rollFlags.successLoss,
		FailedLoss:    rollFlags.failedLoss,
		IsGM:          rollFlags.gm,
		Interactive:   rollFlags.interactive,
	})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if out.Canceled {
		fmt.Fprintln(w, "Roll canceled.")
		return nil
	}
	printMessage(w, out.Message)
	for _, effect := range out.SideEffects {
		fmt.Fprintf(w, "  marked %s for improvement\n", effect.SkillKey)
	}

	if rollFlags.save {
		return saveAgent(ctx, s, sheet.ID, rollFlags.sheet)
	}
	return nil
}

func printMessage(w io.Writer, msg *chat.Message) {
	if msg == nil {
		return
	}
	fmt.Fprintf(w, "[%s] %s\n", msg.Visibility, msg.Speaker)
	fmt.Fprintln(w, msg.Flavor)
	fmt.Fprintln(w, msg.Content)
}
