package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	logChannel string
	logLimit   int
)

var rollLogCmd = &cobra.Command{
	Use:   "roll-log [agent-id]",
	Short: "Show an agent's recent roll messages",
	Args:  cobra.ExactArgs(1),
	RunE:  rollLog,
}

var clearLogCmd = &cobra.Command{
	Use:   "clear-log [agent-id]",
	Short: "Clear an agent's roll log",
	Args:  cobra.ExactArgs(1),
	RunE:  clearLog,
}

func init() {
	for _, c := range []*cobra.Command{rollLogCmd, clearLogCmd} {
		c.Flags().StringVar(&logChannel, "channel", "", "public or gm (default public)")
	}
	rollLogCmd.Flags().IntVar(&logLimit, "limit", 0, "maximum messages to return")
}

func rollLog(cmd *cobra.Command, args []string) error {
	client, cleanup, err := createCheckClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := newRequest(map[string]any{
		"agent_id": args[0],
		"channel":  logChannel,
		"limit":    logLimit,
	})
	if err != nil {
		return err
	}

	resp, err := client.GetRollLog(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to get roll log: %w", err)
	}
	return printResponse(cmd.OutOrStdout(), resp)
}

func clearLog(cmd *cobra.Command, args []string) error {
	client, cleanup, err := createCheckClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := newRequest(map[string]any{
		"agent_id": args[0],
		"channel":  logChannel,
	})
	if err != nil {
		return err
	}

	resp, err := client.ClearRollLog(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to clear roll log: %w", err)
	}
	return printResponse(cmd.OutOrStdout(), resp)
}
