// Package main is the entry point for the sheet API server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmtable/sheet-api/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "sheet-api",
	Short: "Tabletop character sheet API",
	Long:  `sheet-api serves character sheets, templates and dice-free rules math for a Telegram mini app.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
