package cmd

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aitorfernandez/puid"
	"github.com/aitorfernandez/puid/internal/config"
	"github.com/aitorfernandez/puid/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve [flags]",
	Short: "Serve IDs over HTTP",
	Long: `Run an HTTP service that mints IDs on request.

Endpoints:
  GET /v1/ids?prefix=foo&length=12&count=3   → {"ids": [...]}
  GET /healthz                               → ok

All IDs come from this process, so they share one sequence counter.

With --ngrok the service is exposed on a public ngrok URL instead of a
local address. The auth token is read from NGROK_AUTHTOKEN.

Examples:
  puid serve --addr :8080
  NGROK_AUTHTOKEN=... puid serve --ngrok`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var (
	serveAddr  string
	serveNgrok bool
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
	serveCmd.Flags().BoolVar(&serveNgrok, "ngrok", false, "Expose the service through an ngrok tunnel")
}

// resolveServeSettings layers the serve flags over cfg. An explicit --ngrok
// flag, true or false, wins over the config file.
func resolveServeSettings(cfg config.ServeConfig, ngrokChanged bool) (addr string, useNgrok bool) {
	addr = firstNonEmpty(serveAddr, cfg.Addr)
	if ngrokChanged {
		return addr, serveNgrok
	}
	return addr, cfg.Ngrok
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr, useNgrok := resolveServeSettings(projectConfig.Serve, cmd.Flags().Changed("ngrok"))

	var (
		ln  net.Listener
		url string
		err error
	)
	if useNgrok {
		ln, url, err = server.ListenNgrok(ctx)
	} else {
		ln, url, err = server.Listen(addr)
	}
	if err != nil {
		return err
	}

	logger.Info("serving ids", "url", url)
	defer logger.Info("server stopped")

	return server.New(puid.Default(), logger).Serve(ctx, ln)
}
