package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/terraincognita07/nutrigoal/internal/api"
	"github.com/terraincognita07/nutrigoal/internal/cli"
	"github.com/terraincognita07/nutrigoal/internal/config"
	"github.com/terraincognita07/nutrigoal/internal/db"
	"github.com/terraincognita07/nutrigoal/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

var errUnknownCommand = errors.New("unknown command")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		slog.Error("nutrigoal failed", "error", err)
		os.Exit(1)
	}
}

// run dispatches to serve when no subcommand is given.
func run(args []string, out io.Writer) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}

	command := "serve"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		command, args = args[0], args[1:]
	}

	switch command {
	case "serve":
		return serve()
	case "seed":
		flags := flag.NewFlagSet("seed", flag.ContinueOnError)
		flags.SetOutput(out)
		dir := flags.String("dir", filepath.Join("data", "reference"), "directory holding units.csv, nutrients.csv and goal_templates.csv")
		if err := flags.Parse(args); err != nil {
			return err
		}
		return cli.RunSeedCommand(config.DatabaseOptions(), *dir, out)
	case "reset-password":
		email, err := parseEmailFlag(command, args, out)
		if err != nil {
			return err
		}
		return cli.RunResetPasswordCommand(config.DatabaseOptions(), email, out)
	case "promote":
		email, err := parseEmailFlag(command, args, out)
		if err != nil {
			return err
		}
		return cli.RunPromoteCommand(config.DatabaseOptions(), email, out)
	case "delete-user":
		email, err := parseEmailFlag(command, args, out)
		if err != nil {
			return err
		}
		return cli.RunDeleteUserCommand(config.DatabaseOptions(), email, out)
	default:
		return fmt.Errorf("%w %q (expected serve, seed, reset-password, promote or delete-user)", errUnknownCommand, command)
	}
}

func parseEmailFlag(command string, args []string, out io.Writer) (string, error) {
	flags := flag.NewFlagSet(command, flag.ContinueOnError)
	flags.SetOutput(out)
	email := flags.String("email", "", "account email")
	if err := flags.Parse(args); err != nil {
		return "", err
	}
	if strings.TrimSpace(*email) == "" {
		return "", fmt.Errorf("%s: --email is required", command)
	}
	return *email, nil
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))
	time.Local = cfg.Location

	database, err := db.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	appMetrics := metrics.New()
	handler, err := api.NewHandler(database, api.Options{
		SecretKey:    cfg.SecretKey,
		Location:     cfg.Location,
		CookieSecure: cfg.CookieSecure,
		Metrics:      appMetrics,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}
	app := newApp(handler, appMetrics)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("nutrigoal listening",
		"port", cfg.Port,
		"driver", cfg.Database.Driver,
		"tz", cfg.Location.String(),
	)
	return app.Listen(":" + cfg.Port)
}

func newApp(handler *api.Handler, appMetrics *metrics.Metrics) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "NutriGoal",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} ${latency} ${method} ${path}\n",
	}))
	app.Use(compress.New())
	app.Use(appMetrics.Middleware)

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}
