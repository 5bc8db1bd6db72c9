package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/deltagreen-api/internal/orchestrators/check"
)

var improveFlags struct {
	sheet string
	dry   bool
}

var improveCmd = &cobra.Command{
	Use:   "improve",
	Short: "Apply end-of-session skill improvements to a local agent sheet",
	Long: `Roll the configured improvement formula for every skill marked as failed,
add the gains and clear the marks. The sheet is rewritten unless --dry-run is set.`,
	RunE: runImprove,
}

func init() {
	improveCmd.Flags().StringVar(&improveFlags.sheet, "sheet", "", "agent sheet (YAML)")
	improveCmd.Flags().BoolVar(&improveFlags.dry, "dry-run", false, "roll without rewriting the sheet")
	_ = improveCmd.MarkFlagRequired("sheet")
}

func runImprove(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	s, sheet, err := localStack(ctx, improveFlags.sheet)
	if err != nil {
		return err
	}
	defer func() { _ = s.logger.Sync() }()

	localizer, err := s.localizer()
	if err != nil {
		return err
	}
	svc, err := s.orchestrator(localizer)
	if err != nil {
		return err
	}

	out, err := svc.ApplySkillImprovements(ctx, &check.ApplySkillImprovementsInput{AgentID: sheet.ID})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(out.Improvements) == 0 {
		fmt.Fprintln(w, "No failed skills to improve.")
		return nil
	}
	printMessage(w, out.Message)

	if improveFlags.dry {
		return nil
	}
	return saveAgent(ctx, s, sheet.ID, improveFlags.sheet)
}
