package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"guarantor/pkg/config"
	"guarantor/pkg/dump"
	"guarantor/pkg/logic"
	"guarantor/pkg/minio"
	"guarantor/pkg/retention"

	"github.com/fr-str/log"
	"github.com/spf13/cobra"
)

var dumpsCmd = &cobra.Command{
	Use:   "dumps",
	Short: "Work with indexed dumps",
}

var dumpsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed dumps, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := openIndex(cmd)
		if err != nil {
			return err
		}
		defer index.Close()

		entries, err := index.List(cmd.Context())
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "CREATED\tPID\tCONDITION\tPATH")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", e.CreatedAt.Local().Format(time.DateTime), e.PID, e.Condition, e.Path)
		}
		return tw.Flush()
	},
}

var dumpsSearchCmd = &cobra.Command{
	Use:   "search <condition>",
	Short: "Find dumps whose failed condition resembles the query",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := openIndex(cmd)
		if err != nil {
			return err
		}
		defer index.Close()

		matches, err := logic.FindDumps(cmd.Context(), index, args[0])
		if err != nil {
			return err
		}
		for _, m := range matches {
			fmt.Fprintf(cmd.OutOrStdout(), "%3d  %s  %s\n", m.Ratio, m.Entry.Condition, m.Entry.Path)
		}
		return nil
	},
}

var dumpsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove dumps older than the retention period",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := openIndex(cmd)
		if err != nil {
			return err
		}
		defer index.Close()

		maxAge, err := cmd.Flags().GetDuration("older-than")
		if err != nil {
			return err
		}

		p := retention.Pruner{Dir: dumpDir(cmd), MaxAge: maxAge, Index: index}
		removed, err := p.Prune(cmd.Context())
		for _, name := range removed {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return err
	},
}

var dumpsPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload dumps that are not mirrored to object storage yet",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !config.MinioEnabled() {
			return fmt.Errorf("MINIO_HOST is not set")
		}
		index, err := openIndex(cmd)
		if err != nil {
			return err
		}
		defer index.Close()

		m, err := minio.NewMirror(cmd.Context())
		if err != nil {
			return err
		}
		m.Keys = index

		pending, err := index.Unmirrored(cmd.Context())
		if err != nil {
			return err
		}
		for _, e := range pending {
			if _, err := os.Stat(e.Path); err != nil {
				log.Error("skipping missing dump", log.String("path", e.Path), log.Err(err))
				continue
			}
			err := m.Store(cmd.Context(), dump.Artifact{Name: e.Name, Path: e.Path})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "pushed:", m.ObjectKey(e.Name))
		}
		return nil
	},
}

func init() {
	dumpsPruneCmd.Flags().Duration("older-than", config.RETENTION, "remove dumps older than this")

	dumpsCmd.AddCommand(dumpsListCmd)
	dumpsCmd.AddCommand(dumpsSearchCmd)
	dumpsCmd.AddCommand(dumpsPruneCmd)
	dumpsCmd.AddCommand(dumpsPushCmd)
}
