package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpAdapter "github.com/dathuynh1108/rule-table-render/internal/adapters/http"
	rediscache "github.com/dathuynh1108/rule-table-render/internal/adapters/redis"
)

var serveCmd = &cobra.Command{
	Use:   "serve <template>",
	Short: "Serve renders of a template over HTTP",
	Long: `Loads a template and exposes it as a JSON API: POST /render takes
overrides and returns the resolved payload. With --redis, resolved
payloads are cached by template and override digest.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd)

		renderer, tpl, doc, _, err := loadTemplate(cmd, args[0])
		if err != nil {
			return err
		}

		opts := []httpAdapter.ServerOption{httpAdapter.WithServerLogger(logger)}
		if addr, _ := cmd.Flags().GetString("redis"); addr != "" {
			ttl, _ := cmd.Flags().GetDuration("redis-ttl")
			cache := rediscache.New(addr, "", 0, rediscache.WithTTL(ttl))
			defer cache.Close()
			opts = append(opts, httpAdapter.WithCache(cache))
		}
		handler := httpAdapter.NewHandler(renderer, tpl, doc, opts...)

		port, _ := cmd.Flags().GetString("port")
		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		serverErrors := make(chan error, 1)
		go func() {
			fmt.Printf("Serving %q on %s\n", tpl.Title, srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			fmt.Printf("\nShutdown signal received: %v\n", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("graceful shutdown did not complete", "error", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("failed to stop server: %w", err)
				}
			}
			fmt.Println("Server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().StringArray("table", nil, "Serve only the given table id (repeatable)")
	serveCmd.Flags().String("redis", "", "Redis address for payload caching (e.g. localhost:6379)")
	serveCmd.Flags().Duration("redis-ttl", time.Hour, "TTL for cached payloads")
}
