package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
)

const (
	EnvLogDir      = "SAFEMATH_LOG_DIR"
	EnvLogLevel    = "SAFEMATH_LOG_LEVEL"
	EnvServiceName = "SAFEMATH_SERVICE_NAME"

	defaultServiceName = "safemath"
)

var (
	global     atomic.Pointer[zerolog.Logger] // global, shared logger.
	once       sync.Once                      // guards global.
	logFile    *os.File
	logfileErr error

	// InstanceID identifies this process in every log line. Generated once, as a v7 uuid.
	InstanceID = sync.OnceValue(func() string {
		return must(uuid.NewV7()).String()
	})
)

func must[T any](v T, err error) T {
	if err != nil {
		log.Fatal(err)
	}
	return v
}

// envOr returns the value of the environment variable key, or fallback if it is unset or empty.
func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// Level returns the level named by $SAFEMATH_LOG_LEVEL, or fallback if it is unset or invalid.
func Level(fallback zerolog.Level) zerolog.Level {
	lvl, err := zerolog.ParseLevel(envOr(EnvLogLevel, fallback.String()))
	if err != nil {
		return fallback
	}
	return lvl
}

// Logfile returns the log file for this instance of the program, if any.
// It is safe to call this function from multiple goroutines, but accesses to the file are not synchronized.
// You generally shouldn't use this function directly.
func Logfile() (*os.File, error) {
	initLogger()
	return logFile, logfileErr
}

// New returns a logger writing to w with the same fields as the global logger.
// It does not touch the global logger.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("instance_id", InstanceID()).
		Str("service", envOr(EnvServiceName, defaultServiceName)).
		Logger()
}

func initLogger() {
	once.Do(func() {
		servicename := envOr(EnvServiceName, defaultServiceName)

		// we log to stdout, and also to $SAFEMATH_LOG_DIR/<service_name>_<timestamp>.log when the dir is set.
		// the logger should never crash or stall the program, so we use a diode to buffer the writes.
		// if the file can't be created, we'll just log to stdout and warn the user.
		const size, pollInterval = 1024, 15 * time.Millisecond
		dropped := func(missed int) { log.Printf("diode: dropped %d log messages", missed) }

		var out io.Writer = os.Stdout
		if dir, ok := os.LookupEnv(EnvLogDir); ok && dir != "" {
			if logfileErr = os.MkdirAll(dir, 0o755); logfileErr == nil {
				logFile, logfileErr = os.Create(filepath.Join(dir, fmt.Sprintf("%s_%s.log", servicename, time.Now().Format(time.RFC3339))))
			}
			if logfileErr == nil {
				out = io.MultiWriter(logFile, os.Stdout)
			}
		}
		w := diode.NewWriter(out, size, pollInterval, dropped)

		logger := New(w, Level(zerolog.InfoLevel))

		if logfileErr != nil {
			logger.Warn().Err(logfileErr).Msg("logfile is not being used, check SAFEMATH_LOG_DIR")
		}

		// write debug logs that give metadata about this program and it's logger
		dbglogger := logger.With().
			Int("gomaxprocs", runtime.GOMAXPROCS(0)).
			Str("goarch", runtime.GOARCH).
			Str("goos", runtime.GOOS).
			Str("user", envOr("USER", "unknown")).
			Logger()

		info, ok := debug.ReadBuildInfo()
		if ok {
			dbglogger.Debug().Any("buildinfo", info).Msg("buildinfo dump")
		}
		dbglogger.Debug().Msg("logger init")
		global.Store(&logger)
	})
}

// Global returns the global logger. This function initializes the logger exactly once.
// It is safe to call this function from multiple goroutines.
// The Global logger relies on the following environment variables:
//
//   - SAFEMATH_LOG_DIR: directory to also write the log file to, unset by default. logs will be written to a file named "<service_name>_<timestamp>.log".
//   - SAFEMATH_LOG_LEVEL: the log level, defaults to "info". Possible values are "debug", "info", "warn", "error", "fatal", "panic".
//   - SAFEMATH_SERVICE_NAME: the name of the service, defaults to "safemath"
//   - USER: the user running the service, defaults to "unknown"
func Global() *zerolog.Logger {
	initLogger()
	return global.Load()
}

// Add fields to the global logger, thread-safe. Avoid this where possible, but sometimes it's handy.
func AddFieldsToGlobal(fields map[string]any) {
	for {
		old := Global()
		newentry := old.With()
		for k, v := range fields {
			newentry = newentry.Any(k, v)
		}
		new := newentry.Logger()

		if global.CompareAndSwap(old, &new) {
			return
		}
	}
}
