package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code.
func run(argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := loadConfig(os.LookupEnv, dotenvFiles()...)
	log := newLogger(stderr, cfg.LogLevel)
	for _, w := range cfg.Warnings {
		log.Warn().Msg(w)
	}

	a := &app{
		out:   stdout,
		stdin: stdin,
		log:   log,
		connect: func() (linearAPI, error) {
			if err := cfg.requireAPIKey(); err != nil {
				return nil, err
			}
			log.Debug().Str("source", cfg.Source).Str("endpoint", cfg.Endpoint).Dur("timeout", cfg.Timeout).Msg("config loaded")
			return newClient(cfg, log), nil
		},
	}

	if err := a.dispatch(ctx, parseArgs(argv)); err != nil {
		reportError(stderr, err)
		return 1
	}
	return 0
}
