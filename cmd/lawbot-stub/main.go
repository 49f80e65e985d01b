// Command lawbot-stub runs a fake LawBot API for local development. Accounts
// live in memory and vanish on restart.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	httpserver "github.com/lawbot360/web/internal/infrastructure/http"
	"github.com/lawbot360/web/internal/stubapi"
	"github.com/lawbot360/web/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		addr         string
		secret       string
		tokenTTL     time.Duration
		chatDisabled bool
		logLevel     string
	)
	flagSet := pflag.NewFlagSet("lawbot-stub", pflag.ContinueOnError)
	flagSet.StringVar(&addr, "addr", ":5000", "address to listen on")
	flagSet.StringVar(&secret, "jwt-secret", os.Getenv("JWT_SECRET"), "HS256 signing secret (JWT_SECRET)")
	flagSet.DurationVar(&tokenTTL, "token-ttl", 7*24*time.Hour, "lifetime of issued tokens")
	flagSet.BoolVar(&chatDisabled, "no-chat", false, "answer chat requests with 503 as if no model key were configured")
	flagSet.StringVar(&logLevel, "log-level", "debug", "log level")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		return err
	}
	if secret == "" {
		secret = "dev-secret"
	}

	log := logger.Init(logger.Options{Level: logLevel, Pretty: true, Service: "lawbot-stub"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := stubapi.New(stubapi.Config{
		JWTSecret:    secret,
		TokenTTL:     tokenTTL,
		ChatDisabled: chatDisabled,
	}, log)
	return httpserver.Serve(ctx, srv.Handler(), addr, log)
}
