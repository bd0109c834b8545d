package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gringottsdb"
)

func init() {
	rootCmd.AddCommand(newSetCmd())
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY",
		Short: "Set KEY to the entirety of stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(args[0])
		},
	}
}

func runSet(key string) error {
	value, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	db, err := gringottsdb.Open(dbFile)
	if err != nil {
		return fmt.Errorf("open %s: %w", dbFile, err)
	}
	defer db.Close()

	if err := db.Set(key, string(value)); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}
