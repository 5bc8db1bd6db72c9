// Package main is the entry point for the Delta Green check server and
// its local tools
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/deltagreen-api/cmd/server/client"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "dgapi",
	Short: "Delta Green check server",
	Long:  `dgapi rolls Delta Green percentile checks, damage, lethality and sanity over gRPC or from a local agent sheet.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(rollCmd)
	rootCmd.AddCommand(improveCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
