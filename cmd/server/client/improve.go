package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var improveSpeaker string

var improveCmd = &cobra.Command{
	Use:   "improve [agent-id]",
	Short: "Apply skill improvements to a stored agent",
	Args:  cobra.ExactArgs(1),
	RunE:  improve,
}

func init() {
	improveCmd.Flags().StringVar(&improveSpeaker, "speaker", "", "speaker shown on the message")
}

func improve(cmd *cobra.Command, args []string) error {
	client, cleanup, err := createCheckClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := newRequest(map[string]any{
		"agent_id": args[0],
		"speaker":  improveSpeaker,
	})
	if err != nil {
		return err
	}

	resp, err := client.ApplySkillImprovements(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to apply improvements: %w", err)
	}
	return printResponse(cmd.OutOrStdout(), resp)
}
