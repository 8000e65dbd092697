package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sprite-ai/eslint-teamcity/internal/api"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start an HTTP server exposing the formatter.

Endpoints:
  GET  /health       Health check
  POST /api/format   Format results into service messages
  POST /api/summary  Aggregate results by file and rule
  GET  /api/ws       WebSocket for repeated format requests`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	cmd.Flags().StringP("addr", "a", "127.0.0.1", "address to listen on")
	cmd.Flags().IntP("port", "p", 6142, "port to listen on")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}

	f, err := newFormatter(cmd, log)
	if err != nil {
		return err
	}

	addr, _ := cmd.Flags().GetString("addr")
	port, _ := cmd.Flags().GetInt("port")

	listen := fmt.Sprintf("%s:%d", addr, port)
	srv := api.New(listen, f, log)
	return srv.ListenAndServe()
}
