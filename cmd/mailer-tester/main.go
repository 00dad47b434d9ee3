package main

import (
	"os"
	"time"

	"github.com/cg14823/outage-wait/mailer"
	"github.com/cg14823/outage-wait/outage"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:    "mailer-test",
		Usage:   "Send a test maintenance-window notification",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "to",
				Usage:    "The email location to send the test email to",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "token",
				Usage: "The path to the token",
				Value: "/home/pi/.gmail/token.json",
			},
			&cli.StringFlag{
				Name:  "creds",
				Usage: "The path to the client secret",
				Value: "/home/pi/.gmail/client_secret.json",
			},
		},
		Action: sendEmail,
	}

	err := app.Run(os.Args)
	if err != nil {
		panic(err)
	}
}

func createLogger() *zap.Logger {
	atom := zap.NewAtomicLevel()

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	return zap.New(zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(os.Stdout),
		atom,
	))
}

func sendEmail(ctx *cli.Context) error {
	logger := createLogger()
	defer logger.Sync()

	logger.Sugar().Infow("Sending test email", "to", ctx.String("to"))
	m, err := mailer.NewMailer(
		ctx.String("to"),
		ctx.String("to"),
		ctx.String("creds"),
		ctx.String("token"),
		logger,
	)
	if err != nil {
		return err
	}

	end := time.Now().Add(2 * time.Hour)
	done := m.AsyncStartNotification(&outage.Outage{
		ID:    1,
		Title: "test window",
		Start: time.Now(),
		End:   &end,
	})
	<-done
	return nil
}
