package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"guarantor/pkg/ensure"
	"guarantor/pkg/lasterr"

	"github.com/spf13/cobra"
)

var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Fail an ensure on purpose and write a dump",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := configureEnsure(cmd)
		if err != nil {
			return err
		}
		defer index.Close()

		missing := filepath.Join(os.TempDir(), "guarantor-selftest-missing")
		f, openErr := os.Open(missing)
		le := lasterr.Capture(openErr)
		if f != nil {
			f.Close()
		}

		err = ensure.That(ensure.RaiseWithDump, openErr == nil, "openErr == nil").
			Capture("path", missing).
			Capture("last_error", le).
			WithMessage("selftest").
			Require()

		var v *ensure.Violation
		if !errors.As(err, &v) {
			return fmt.Errorf("selftest: expected a violation, got %v", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), v.Error())
		if v.DumpErr != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "dump:", v.DumpErr)
		}
		if v.DumpPath != "" {
			fmt.Fprintln(cmd.OutOrStdout(), "see dump at", v.DumpPath)
		}
		return nil
	},
}
