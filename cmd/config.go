package cmd

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/payments"
)

const (
	modeEnvVar      = "PAY_MODE"
	queueSizeEnvVar = "PAY_QUEUE_SIZE"
	logLevelEnvVar  = "PAY_LOG_LEVEL"

	defaultLogLevel = "warn"
)

// engineFlags are the engine settings shared by the commands that run it.
// Defaults come from the environment.
type engineFlags struct {
	serial    bool
	queueSize int
	logLevel  string
}

func (e *engineFlags) SetFlags(f *flag.FlagSet) {
	mode := getEnv(modeEnvVar, payments.Concurrent.String())
	queue, err := strconv.Atoi(getEnv(queueSizeEnvVar, strconv.Itoa(payments.DefaultQueueSize)))
	if err != nil {
		queue = payments.DefaultQueueSize
	}
	f.BoolVar(&e.serial, "serial", mode == payments.Serial.String(), "Apply transactions sequentially instead of one lane per client. Defaults to $"+modeEnvVar+"=serial.")
	f.IntVar(&e.queueSize, "queue", queue, "Capacity of each client lane queue. Defaults to $"+queueSizeEnvVar+".")
	f.StringVar(&e.logLevel, "log-level", strings.ToLower(getEnv(logLevelEnvVar, defaultLogLevel)), "Log level on stderr (debug, info, warn, error). Rejected records are logged at debug.")
}

// options returns the engine options. Logs go to stderr, stdout carries the output.
func (e *engineFlags) options() (payments.Options, error) {
	if e.queueSize < 0 {
		return payments.Options{}, fmt.Errorf("invalid queue size %d", e.queueSize)
	}
	mode := payments.Concurrent
	if e.serial {
		mode = payments.Serial
	}
	return payments.Options{
		Mode:      mode,
		QueueSize: e.queueSize,
		Logger:    newLogger(e.logLevel),
	}, nil
}

// newLogger creates a text slog logger on stderr at the provided level. If the
// level string is invalid it defaults to info.
func newLogger(level string) *slog.Logger {
	lvl := new(slog.LevelVar)
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl.Set(slog.LevelInfo)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
