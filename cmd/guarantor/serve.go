package main

import (
	"guarantor/pkg/api"
	"guarantor/pkg/config"
	"guarantor/pkg/retention"

	"github.com/fr-str/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dump index over HTTP and prune old dumps periodically",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		index, err := openIndex(cmd)
		if err != nil {
			return err
		}
		defer index.Close()

		p := retention.Pruner{Dir: dumpDir(cmd), MaxAge: config.RETENTION, Index: index}
		if _, err := p.Start(ctx, config.PRUNE_EVERY); err != nil {
			return err
		}
		api.StartServer(ctx, config.HTTP_ADDR, index)

		<-ctx.Done()
		log.Info("shutting down")
		return nil
	},
}
