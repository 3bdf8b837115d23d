package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/changwulf/dxf-viewer/internal/config"
	"github.com/changwulf/dxf-viewer/internal/server"
	"github.com/spf13/cobra"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the measurement API over HTTP",
	Long: `Start the HTTP API. Settings come from PORT, ENV, READ_TIMEOUT,
WRITE_TIMEOUT, BODY_LIMIT_MB and FETCH_TIMEOUT; --port overrides PORT.`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Port to listen on")
}

func runServe(cmd *cobra.Command, args []string) {
	cfg := config.Load()
	if servePort != "" {
		cfg.Port = servePort
	}

	srv := server.New(cfg)

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	if err := srv.Listen(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
