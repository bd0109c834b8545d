package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dbFile string

var rootCmd = &cobra.Command{
	Use:     "gringottsctl",
	Short:   "Inspect and manipulate gringotts database files",
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbFile, "file", "f", "", "database file (required)")
	rootCmd.MarkPersistentFlagRequired("file")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
}
