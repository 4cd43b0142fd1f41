package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "resource-demo",
		Short: "Live demo server for the reactive resource engine",
		Long: `resource-demo serves a small quote API backed by a keyed resource.

The quote resource refetches whenever the selected symbol changes,
discards superseded fetches, and keeps serving the previous value
while a refresh is in flight. Endpoints:

  GET  /state            current resource snapshot as JSON
  POST /symbol/{symbol}  select a new symbol (re-triggers the fetch)
  POST /refetch          force a refetch
  POST /mutate?price=N   overwrite the value directly
  GET  /ws               websocket feed of state transitions
  GET  /metrics          Prometheus metrics`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var addr string
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo API and websocket feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(addr)
		},
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8766", "listen address")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("resource-demo %s (%s)\n", version, commit)
		},
	}

	rootCmd.AddCommand(serveCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
