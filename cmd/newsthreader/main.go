package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"NewsThreader/internal/app"
	"NewsThreader/internal/config"
	"NewsThreader/internal/logging"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		stop()
		os.Exit(1)
	}
}

// run owns the application lifecycle so every exit path closes the store.
func run(ctx context.Context, args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet("newsthreader", flag.ContinueOnError)
	once := flags.Bool("once", false, "run the pipeline a single time and exit")
	history := flags.Int("history", 0, "print the N most recent seen URLs and exit")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		return err
	}
	defer application.Close()

	switch {
	case *history > 0:
		records, err := application.History(ctx, *history)
		if err != nil {
			logger.Error("read history", "error", err)
			return err
		}
		for _, r := range records {
			fmt.Fprintf(stdout, "%s\t%-7s\t%s\n", r.RecordedAt.Format(time.RFC3339), r.Status, r.URL)
		}
		return nil
	case *once:
		err = application.Run(ctx)
	default:
		err = application.Serve(ctx)
	}

	if err != nil {
		logger.Error("application stopped", "error", err)
	}
	return err
}
