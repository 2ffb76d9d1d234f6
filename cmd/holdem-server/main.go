package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/lox/nlhe/internal/callback"
	"github.com/lox/nlhe/internal/config"
	"github.com/lox/nlhe/internal/engine"
	"github.com/lox/nlhe/internal/httpapi"
	"github.com/lox/nlhe/internal/identity"
	"github.com/lox/nlhe/internal/registry"
	"github.com/lox/nlhe/internal/transport"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"math/rand"
)

// CLI holds the flags kong parses. Addr and LogLevel override the matching
// HCL config fields when set.
var CLI struct {
	Config   string `short:"c" default:"holdem-server.hcl" help:"Path to HCL configuration file"`
	Addr     string `short:"a" help:"Server address to bind to (overrides config)"`
	LogLevel string `short:"l" help:"Log level (overrides config)"`
	Seed     int64  `short:"s" help:"Random seed for table shuffling (0 = time-based)"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("holdem-server"),
		kong.Description("Multi-table No-Limit Hold'em server"),
		kong.UsageOnError(),
	)

	cfg, err := config.LoadServerConfig(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		ctx.Exit(1)
	}
	if CLI.Addr != "" {
		cfg.Server.Address = CLI.Addr
	}
	if CLI.LogLevel != "" {
		cfg.Server.LogLevel = CLI.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		ctx.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()

	seed := CLI.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	reg := registry.New(logger)
	tokens := identity.Generator{}
	hub := transport.NewHub(logger)

	for _, gameID := range cfg.Defaults.Games {
		cb := callback.New(logger)
		sink := engine.MultiSink{cb, hub}
		table := engine.NewTable(rng, sink,
			engine.WithLogger(logger),
			engine.WithTokenGenerator(tokens),
			engine.WithStartingStack(cfg.Defaults.StartingStack),
			engine.WithMaxPlayers(cfg.Defaults.MaxPlayers),
		)
		cb.SetAddressBook(table)

		if err := reg.Register(gameID, table); err != nil {
			logger.Fatal().Err(err).Str("game_id", gameID).Msg("failed to register game")
		}
		logger.Info().Str("game_id", gameID).Msg("registered game")
	}

	handler := httpapi.NewHandler(logger, reg)
	mux := http.NewServeMux()
	mux.Handle("/games/", handler)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "OK")
	})

	httpServer := &http.Server{
		Addr:    cfg.Address(),
		Handler: mux,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Address()).Int("games", len(cfg.Defaults.Games)).Msg("server starting")
		serverErr <- httpServer.ListenAndServe()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("server failed")
			ctx.Exit(1)
		}
	case sig := <-sigChan:
		logger.Info().Str("signal", sig.String()).Msg("received signal, shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var g errgroup.Group
		g.Go(func() error { return httpServer.Shutdown(shutdownCtx) })
		g.Go(func() error { return reg.Shutdown(shutdownCtx) })
		if err := g.Wait(); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown failed")
		}
	}
}
