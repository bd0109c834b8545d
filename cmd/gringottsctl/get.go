package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gringottsdb"
)

func init() {
	rootCmd.AddCommand(newGetCmd())
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print the value stored for KEY, or nothing if absent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runGet(args[0])
			return nil
		},
	}
}

// runGet always exits 0, even on failure: unlike every other subcommand,
// get's contract is "print the value if present, nothing otherwise",
// with no distinct failure signal on the exit code.
func runGet(key string) {
	db, err := gringottsdb.Open(dbFile)
	if err != nil {
		printError("get %q: %v\n", key, err)
		return
	}
	defer db.Close()

	value, err := db.Get(key)
	if err != nil {
		printError("get %q: %v\n", key, err)
		return
	}
	if value != "" {
		fmt.Fprint(os.Stdout, value)
	}
}
