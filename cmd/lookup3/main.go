// Package main provides the entry point for the lookup3 CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/lookup3/cmd/lookup3/commands"
	"github.com/Sumatoshi-tech/lookup3/pkg/version"
)

func main() {
	version.InitBinaryVersion()

	rootCmd := &cobra.Command{
		Use:   "lookup3",
		Short: "lookup3 - Bob Jenkins' lookup3 hash toolkit",
		Long: `lookup3 computes Bob Jenkins' lookup3 hashes and checks them against
the published reference vectors.

Commands:
  hash      Hash literal strings, hex bytes or a file
  words     Hash a sequence of 32-bit words
  size      Print the size and mask of a 2^n hash table
  vectors   Check the reference vectors under every strategy
  bloom     Build, query and persist a Bloom filter`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	commands.RegisterGlobalFlags(rootCmd)

	rootCmd.AddCommand(commands.NewHashCommand())
	rootCmd.AddCommand(commands.NewWordsCommand())
	rootCmd.AddCommand(commands.NewSizeCommand())
	rootCmd.AddCommand(commands.NewVectorsCommand())
	rootCmd.AddCommand(commands.NewBloomCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lookup3 %s\n", version.String())
		},
	}
}
