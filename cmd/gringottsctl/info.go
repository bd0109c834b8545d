package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gringottsdb"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Report a database's path, version, block size, and block count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo()
		},
	}
}

func runInfo() error {
	db, err := gringottsdb.Open(dbFile)
	if err != nil {
		return fmt.Errorf("open %s: %w", dbFile, err)
	}
	defer db.Close()

	info, err := db.Info()
	if err != nil {
		return fmt.Errorf("info %s: %w", dbFile, err)
	}

	fmt.Printf("path: %s\n", info.Path)
	fmt.Printf("version: %s\n", info.Version)
	fmt.Printf("block size: %dkb\n", info.BlockSizeKiB)
	fmt.Printf("block count: %d\n", info.BlockCount)
	return nil
}
