package main

import (
	"fmt"
	"strconv"

	"guarantor/pkg/lasterr"

	"github.com/spf13/cobra"
)

var errnoCmd = &cobra.Command{
	Use:   "errno <code>",
	Short: "Describe a platform error code in English",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := strconv.ParseUint(args[0], 0, 32)
		if err != nil {
			return fmt.Errorf("invalid error code %q: %w", args[0], err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), lasterr.Describe(uint32(code)))
		return nil
	},
}
