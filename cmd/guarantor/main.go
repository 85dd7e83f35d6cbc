package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "guarantor",
	Short:         "Inspect and manage postmortem dumps written by failed ensures",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	rootCmd.PersistentFlags().String("dump-dir", "", "dump directory (default $GUARANTOR_DUMP_DIR or working directory)")
	rootCmd.PersistentFlags().String("db", "", "dump index path (default $GUARANTOR_DB_PATH)")

	rootCmd.AddCommand(dumpsCmd)
	rootCmd.AddCommand(errnoCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(selftestCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}
