package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var rollCheckReq struct {
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
	speaker     string
}

var rollCheckCmd = &cobra.Command{
	Use:   "roll-check [agent-id]",
	Short: "Roll a check for a stored agent",
	Long: `Roll a check on the server. Examples:

  roll-check agent-123 --kind skill --key firearms
  roll-check agent-123 --kind weapon --item glock --modifier 20
  roll-check agent-123 --kind sanity --gm`,
	Args: cobra.ExactArgs(1),
	RunE: rollCheck,
}

func init() {
	f := rollCheckCmd.Flags()
	f.StringVar(&rollCheckReq.kind, "kind", "", "check kind")
	f.StringVar(&rollCheckReq.key, "key", "", "skill, typed skill or statistic key")
	f.StringVar(&rollCheckReq.item, "item", "", "weapon id")
	f.StringVar(&rollCheckReq.training, "training", "", "special training id")
	f.IntVar(&rollCheckReq.modifier, "modifier", 0, "percentile modifier")
	f.StringVar(&rollCheckReq.rollMode, "roll-mode", "", "publicroll, gmroll, blindroll or selfroll")
	f.StringVar(&rollCheckReq.outer, "outer", "", "text before the damage formula")
	f.StringVar(&rollCheckReq.inner, "inner", "", "text after the damage formula")
	f.StringVar(&rollCheckReq.successLoss, "success-loss", "", "sanity loss on success")
	f.StringVar(&rollCheckReq.failedLoss, "failed-loss", "", "sanity loss on failure")
	f.BoolVar(&rollCheckReq.gm, "gm", false, "roll as the game moderator")
	f.StringVar(&rollCheckReq.speaker, "speaker", "", "speaker shown on the message")
	_ = rollCheckCmd.MarkFlagRequired("kind")
}

func rollCheck(cmd *cobra.Command, args []string) error {
	client, cleanup, err := createCheckClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := newRequest(map[string]any{
		"agent_id":       args[0],
		"kind":           rollCheckReq.kind,
		"key":            rollCheckReq.key,
		"item_id":        rollCheckReq.item,
		"training_id":    rollCheckReq.training,
		"modifier":       rollCheckReq.modifier,
		"roll_mode":      rollCheckReq.rollMode,
		"outer_modifier": rollCheckReq.outer,
		"inner_modifier": rollCheckReq.inner,
		"success_loss":   rollCheckReq.successLoss,
		"failed_loss":    rollCheckReq.failedLoss,
		"is_gm":          rollCheckReq.gm,
		"speaker":        rollCheckReq.speaker,
	})
	if err != nil {
		return err
	}

	resp, err := client.RollCheck(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to roll check: %w", err)
	}

	return printResponse(cmd.OutOrStdout(), resp)
}
