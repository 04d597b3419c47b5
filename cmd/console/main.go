package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"github.com/protomem/hr-console/internal/env"
)

var _cfgFile = flag.String("cfg", "", "path to config file")

func main() {
	flag.Parse()

	logger, closeLogger, err := newLogger()
	if err != nil {
		os.Stderr.WriteString("hr-console: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer closeLogger()

	if err := run(logger); err != nil {
		trace := string(debug.Stack())
		logger.Error(err.Error(), "trace", trace)

		os.Stderr.WriteString("hr-console: " + err.Error() + "\n")
		os.Exit(1)
	}
}

type config struct {
	apiURL      string
	httpTimeout time.Duration
	tokenFile   string
	downloadDir string
}

// newLogger builds the application logger. The console draws on stdout, so
// structured logs go to a file; without HRM_LOG_FILE they are discarded.
func newLogger() (*slog.Logger, func(), error) {
	if *_cfgFile != "" {
		if err := env.Load(*_cfgFile); err != nil {
			return nil, nil, err
		}
	}

	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(env.GetString("HRM_LOG_LEVEL", "info"))); err != nil {
		level = slog.LevelInfo
	}

	var (
		out     io.Writer = io.Discard
		closeFn           = func() {}
	)

	if path := env.GetString("HRM_LOG_FILE", ""); path != "" {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, err
		}
		out = file
		closeFn = func() { _ = file.Close() }
	}

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))

	return logger, closeFn, nil
}

func run(logger *slog.Logger) error {
	var cfg config

	cfg.apiURL = env.GetString("HRM_API_URL", "http://localhost:5000")
	cfg.httpTimeout = env.GetDuration("HRM_HTTP_TIMEOUT", 15*time.Second)
	cfg.tokenFile = env.GetString("HRM_TOKEN_FILE", defaultTokenFile())
	cfg.downloadDir = env.GetString("HRM_DOWNLOAD_DIR", ".")

	app := newApplication(cfg, logger, os.Stdin, os.Stdout)

	return app.run(context.Background())
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".hr-console-token"
	}
	return dir + "/hr-console/token"
}
