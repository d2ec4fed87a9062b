package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"frankentokens/api"
	"frankentokens/theme"
	"frankentokens/watch"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a live theme preview",
	Long:  "Serve the extracted themes over HTTP and re-extract whenever the source stylesheet changes.",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	manager, err := theme.NewManager(cfg.CSSPath, extractorOptions(), logger)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	apiServer := api.NewServer(manager, logger)
	mux := http.NewServeMux()
	apiServer.Register(mux)

	w := watch.New(cfg.CSSPath, watch.DefaultDelay, func() {
		_ = apiServer.Reload()
	}, logger)
	go func() {
		if err := w.Run(ctx); err != nil {
			logger.Error().Err(err).Msg("watcher stopped")
		}
	}()

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: mux,
	}

	printListeningAddresses(cfg.ListenAddr)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info().Msg("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("server shutdown")
	}
	return nil
}

func printListeningAddresses(addr string) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		logger.Info().Msgf("listening on http://%s", addr)
		return
	}

	if host != "" && host != "0.0.0.0" && host != "::" {
		logger.Info().Msgf("listening on http://%s:%s", host, port)
		return
	}

	addrs, err := net.InterfaceAddrs()
	if err != nil {
		logger.Info().Msgf("listening on http://0.0.0.0:%s", port)
		return
	}
	for _, a := range addrs {
		if ipnet, ok := a.(*net.IPNet); ok && !ipnet.IP.IsLoopback() && ipnet.IP.To4() != nil {
			logger.Info().Msgf("listening on http://%s:%s", ipnet.IP.String(), port)
		}
	}
	logger.Info().Msgf("listening on http://localhost:%s", port)
}
