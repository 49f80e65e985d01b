// Command web serves the LawBot 360 front-end: server-rendered pages backed
// by the LawBot API, with visitor sessions kept in Redis or in memory.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/lawbot360/web/internal/api"
	"github.com/lawbot360/web/internal/api/middleware"
	"github.com/lawbot360/web/internal/core/ports"
	"github.com/lawbot360/web/internal/core/service"
	"github.com/lawbot360/web/internal/infrastructure/config"
	"github.com/lawbot360/web/internal/infrastructure/db/memory"
	mongostore "github.com/lawbot360/web/internal/infrastructure/db/mongo"
	redisstore "github.com/lawbot360/web/internal/infrastructure/db/redis"
	httpserver "github.com/lawbot360/web/internal/infrastructure/http"
	"github.com/lawbot360/web/internal/infrastructure/http/handlers"
	"github.com/lawbot360/web/internal/infrastructure/lawbot"
	"github.com/lawbot360/web/internal/infrastructure/queue"
	"github.com/lawbot360/web/pkg/logger"
)

const (
	submitWindow   = time.Minute
	contactWorkers = 4
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
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	var pretty bool
	flagSet := pflag.NewFlagSet("web", pflag.ContinueOnError)
	flagSet.StringVar(&cfg.Port, "port", cfg.Port, "port to listen on (PORT)")
	flagSet.StringVar(&cfg.Lawbot.BaseURL, "lawbot-url", cfg.Lawbot.BaseURL, "LawBot API base URL (LAWBOT_API_URL)")
	flagSet.StringVar(&cfg.Session.Backend, "session-backend", cfg.Session.Backend, "session store: redis or memory (SESSION_BACKEND)")
	flagSet.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "trace, debug, info, warn or error (LOG_LEVEL)")
	flagSet.BoolVar(&pretty, "pretty", !cfg.IsProduction(), "human-readable console logs")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: pretty, Service: "lawbot-web"})

	var (
		sessions ports.SessionStore
		guard    ports.SubmitGuard
		checks   []handlers.Check
	)
	switch strings.ToLower(cfg.Session.Backend) {
	case config.SessionBackendMemory:
		sessions, guard = memory.NewSessionStore(), memory.NewSubmitGuard(submitWindow)
		log.Warn().Msg("using in-memory sessions; visitors are logged out on restart")
	default:
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()
		sessions, guard = redisstore.NewSessionStore(rdb, cfg.Session.TTL), redisstore.NewSubmitGuard(rdb, submitWindow)
	}
	checks = append(checks, handlers.Check{Name: "sessions", Pinger: sessions})

	var contacts ports.ContactRepository
	if cfg.Mongo.URI != "" {
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(dctx)
		}()

		repo := mongostore.NewContactRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("could not create contact message indexes")
		}
		dispatcher := queue.NewDispatcher(contactWorkers, repo, log)
		dispatcher.Start(ctx)
		defer dispatcher.Close()

		contacts = dispatcher
		checks = append(checks, handlers.Check{Name: "mongodb", Pinger: handlers.PingFunc(func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		})})
	} else {
		log.Info().Msg("MONGO_URI not set; contact messages are only logged")
	}

	backend, err := lawbot.New(lawbot.Config{BaseURL: cfg.Lawbot.BaseURL, Timeout: cfg.Lawbot.Timeout}, log)
	if err != nil {
		return err
	}

	e, err := api.NewRouter(api.Deps{
		Sessions: sessions,
		SessionConfig: middleware.SessionConfig{
			CookieName: cfg.Session.CookieName,
			TTL:        cfg.Session.TTL,
			Secure:     cfg.Session.SecureCookies || cfg.IsProduction(),
		},
		Auth:          service.NewAuthService(backend, log),
		API:           backend,
		Contacts:      service.NewContactService(contacts, guard, log),
		Checks:        checks,
		MaxUploadSize: cfg.MaxUploadSize,
		Log:           log,
	})
	if err != nil {
		return err
	}

	log.Info().Str("env", cfg.Env).Str("lawbot_api", cfg.Lawbot.BaseURL).Str("sessions", cfg.Session.Backend).Msg("starting")
	return httpserver.Serve(ctx, e, ":"+cfg.Port, log)
}
