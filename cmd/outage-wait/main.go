package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/cg14823/outage-wait/mailer"
	"github.com/cg14823/outage-wait/store"
	"github.com/cg14823/outage-wait/waiter"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	app := &cli.App{
		Name:    "outage-wait",
		Usage:   "Blocks until a scheduled outage begins",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "db",
				Usage:    "The path to the outage schedule database",
				Required: true,
			},
			&cli.Int64Flag{
				Name:    "outage-id",
				Aliases: []string{"id"},
				Usage:   "Wait for the outage with this id",
			},
			&cli.BoolFlag{
				Name:    "active",
				Aliases: []string{"a"},
				Usage:   "Wait for whichever outage is currently active",
			},
			&cli.Int64Flag{
				Name:    "sleep",
				Aliases: []string{"s"},
				Usage:   "The maximum sleep per iteration in seconds",
				Value:   300,
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Print a diagnostic line before each lookup and sleep",
			},
			&cli.StringFlag{
				Name:  "notify-to",
				Usage: "Email this address once the outage starts",
			},
			&cli.StringFlag{
				Name:    "gmail-token",
				Usage:   "The path to the token",
				Value:   "/home/pi/.gmail/token.json",
				EnvVars: []string{"OUTAGE_WAIT_GMAIL_TOKEN"},
			},
			&cli.StringFlag{
				Name:    "gmail-creds",
				Usage:   "The path to the client secret",
				Value:   "/home/pi/.gmail/client_secret.json",
				EnvVars: []string{"OUTAGE_WAIT_GMAIL_CREDS"},
			},
		},
		Action: wait,
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func createLogger(verbose bool) *zap.Logger {
	atom := zap.NewAtomicLevel()
	if verbose {
		atom.SetLevel(zap.DebugLevel)
	} else {
		atom.SetLevel(zap.WarnLevel)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	return zap.New(zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(os.Stderr),
		atom,
	))
}

func wait(ctx *cli.Context) error {
	logger := createLogger(ctx.Bool("verbose"))
	defer logger.Sync()

	dbPath, err := filepath.Abs(ctx.String("db"))
	if err != nil {
		return err
	}

	st, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return fmt.Errorf("could not open outage store: %w", err)
	}
	defer st.Close()

	var notifier waiter.Notifier
	if to := ctx.String("notify-to"); to != "" {
		m, err := mailer.NewMailer(to, to, ctx.String("gmail-creds"), ctx.String("gmail-token"), logger)
		if err != nil {
			return fmt.Errorf("could not set up notifier: %w", err)
		}

		notifier = m
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := waiter.New(st, waiter.NewWallClock(), notifier, os.Stdout, logger)
	return w.Run(runCtx, waiter.Options{
		OutageID:     ctx.Int64("outage-id"),
		Active:       ctx.Bool("active"),
		SleepCeiling: time.Duration(ctx.Int64("sleep")) * time.Second,
	})
}
