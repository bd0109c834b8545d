package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gringottsdb"
)

func init() {
	rootCmd.AddCommand(newCreateCmd())
}

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a new gringotts database file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate()
		},
	}
}

func runCreate() error {
	db, err := gringottsdb.Create(dbFile)
	if err != nil {
		return fmt.Errorf("create %s: %w", dbFile, err)
	}
	defer db.Close()

	fmt.Printf("created %s\n", dbFile)
	return nil
}
