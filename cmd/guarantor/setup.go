package main

import (
	"context"
	"fmt"

	"guarantor/pkg/config"
	"guarantor/pkg/db"
	"guarantor/pkg/dump"
	"guarantor/pkg/ensure"
	"guarantor/pkg/minio"
	"guarantor/pkg/notify"

	"github.com/fr-str/log"
	"github.com/spf13/cobra"
)

func dumpDir(cmd *cobra.Command) string {
	dir, err := cmd.Root().PersistentFlags().GetString("dump-dir")
	if err != nil || dir == "" {
		return config.DUMP_DIR
	}
	return dir
}

func openIndex(cmd *cobra.Command) (*db.Index, error) {
	path, err := cmd.Root().PersistentFlags().GetString("db")
	if err != nil || path == "" {
		path = config.DB_PATH
	}
	return db.ConnectIndex(cmd.Context(), path)
}

// coordinator builds the dump coordinator with every configured sink.
func coordinator(ctx context.Context, dir string, index *db.Index) *dump.Coordinator {
	sinks := []dump.Sink{index}

	if config.MinioEnabled() {
		m, err := minio.NewMirror(ctx)
		if err != nil {
			log.Error(err.Error())
		} else {
			m.Keys = index
			sinks = append(sinks, m)
		}
	}

	if config.DiscordEnabled() {
		d, err := notify.NewDiscord()
		if err != nil {
			log.Error(err.Error())
		} else {
			sinks = append(sinks, d)
		}
	}

	return dump.NewCoordinator(dir, sinks...)
}

// configureEnsure installs process settings; call it before any check runs.
func configureEnsure(cmd *cobra.Command) (*db.Index, error) {
	index, err := openIndex(cmd)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}

	dir := dumpDir(cmd)
	ensure.Configure(ensure.Settings{
		AlwaysCheckInDebug: config.ALWAYS_CHECK,
		DumpDir:            dir,
		Dumper:             coordinator(cmd.Context(), dir, index),
	})
	return index, nil
}
