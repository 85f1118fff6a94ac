// Package envconfig reads blockstore settings from the environment.
package envconfig

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Var returns an environment variable stripped of surrounding quotes and spaces.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// LogLevel returns the log level selected by BLOCKSTORE_DEBUG.
// 0/false is INFO (default), 1/true is DEBUG, n is slog.Level(-4n).
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("BLOCKSTORE_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}
	return level
}

// BoolWithDefault returns a getter for a boolean variable.
// Unparsable values count as true.
func BoolWithDefault(k string) func(defaultValue bool) bool {
	return func(defaultValue bool) bool {
		if s := Var(k); s != "" {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return true
			}
			return b
		}
		return defaultValue
	}
}

// Bool returns a getter for a boolean variable defaulting to false.
func Bool(k string) func() bool {
	withDefault := BoolWithDefault(k)
	return func() bool {
		return withDefault(false)
	}
}

// Uint returns a getter for an unsigned variable. Invalid values log a
// warning and fall back to defaultValue.
func Uint(key string, defaultValue uint) func() uint {
	return func() uint {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseUint(s, 10, 64); err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return uint(n)
			}
		}
		return defaultValue
	}
}

var (
	// NoParallel disables parallel sample moves.
	NoParallel = Bool("BLOCKSTORE_NO_PARALLEL")
	// NumThreads is the number of workers used for parallel sample moves.
	NumThreads = Uint("BLOCKSTORE_NUM_THREADS", uint(runtime.NumCPU()))
	// ParallelMinChunk is the minimum number of sample mappings per worker.
	ParallelMinChunk = Uint("BLOCKSTORE_PARALLEL_MIN_CHUNK", 64)
	// MergeConcurrency bounds the number of blocks assembled at once.
	MergeConcurrency = Uint("BLOCKSTORE_MERGE_CONCURRENCY", uint(runtime.NumCPU()))
)

// EnvVar describes one configuration variable.
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap returns every configuration variable with its current value.
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"BLOCKSTORE_DEBUG":              {"BLOCKSTORE_DEBUG", LogLevel(), "Show additional debug information (e.g. BLOCKSTORE_DEBUG=1)"},
		"BLOCKSTORE_NO_PARALLEL":        {"BLOCKSTORE_NO_PARALLEL", NoParallel(), "Copy samples on a single goroutine"},
		"BLOCKSTORE_NUM_THREADS":        {"BLOCKSTORE_NUM_THREADS", NumThreads(), "Workers used for parallel sample moves"},
		"BLOCKSTORE_PARALLEL_MIN_CHUNK": {"BLOCKSTORE_PARALLEL_MIN_CHUNK", ParallelMinChunk(), "Minimum sample mappings per worker"},
		"BLOCKSTORE_MERGE_CONCURRENCY":  {"BLOCKSTORE_MERGE_CONCURRENCY", MergeConcurrency(), "Blocks assembled concurrently"},
	}
}

// Values returns every configuration variable formatted as a string.
func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}
