package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chrisdamba/foodstore/internal/httpapi"
	"github.com/chrisdamba/foodstore/internal/storefront"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the storefront as a JSON HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return withApp(ctx, cmd.OutOrStdout(), func(app *storefront.App) error {
			server := httpapi.New(app, cfg.Delays.Tick)
			return server.ListenAndServe(ctx, cfg.ListenAddr)
		})
	},
}

func init() {
	serveCmd.Flags().String("listen", ":8080", "address to listen on")
	bindFlag("listen_addr", serveCmd.Flags().Lookup("listen"))
	rootCmd.AddCommand(serveCmd)
}
