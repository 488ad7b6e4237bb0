// Package main is the entry point for the ddb-converter CLI and gRPC server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/ddb-converter/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "ddb-converter",
	Short: "D&D Beyond character converter",
	Long: `ddb-converter turns D&D Beyond character JSON into Fantasy Grounds
character XML and Foundry VTT actor JSON, from the command line or as a gRPC service.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
