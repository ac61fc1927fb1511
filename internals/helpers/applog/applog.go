// Package applog wraps bolt so services log structured events the same way.
package applog

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/felixgeelhaar/bolt/v3"
)

var (
	defaultLogger *bolt.Logger
	mu            sync.Mutex
)

// Config configures the logger.
type Config struct {
	// Level is the minimum log level (trace, debug, info, warn, error).
	Level string

	// Format is the output format (json or console).
	Format string

	// Output is the output destination. Defaults to os.Stdout.
	Output io.Writer
}

// DefaultConfig returns the console configuration used in development.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "console",
		Output: os.Stdout,
	}
}

func parseLevel(s string) bolt.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return bolt.TRACE
	case "debug":
		return bolt.DEBUG
	case "warn":
		return bolt.WARN
	case "error":
		return bolt.ERROR
	default:
		return bolt.INFO
	}
}

// Init (re)initializes the default logger.
func Init(config Config) {
	output := config.Output
	if output == nil {
		output = os.Stdout
	}

	var handler bolt.Handler
	if strings.EqualFold(config.Format, "json") {
		handler = bolt.NewJSONHandler(output)
	} else {
		handler = bolt.NewConsoleHandler(output)
	}

	mu.Lock()
	defaultLogger = bolt.New(handler).SetLevel(parseLevel(config.Level))
	mu.Unlock()
}

// Get returns the default logger, initializing it if necessary.
func Get() *bolt.Logger {
	mu.Lock()
	l := defaultLogger
	mu.Unlock()
	if l == nil {
		Init(DefaultConfig())
		mu.Lock()
		l = defaultLogger
		mu.Unlock()
	}
	return l
}

// Event wraps a bolt.Event so Fields can be chained onto it.
type Event struct {
	event *bolt.Event
}

// Add applies a field to the event.
func (e *Event) Add(f Field) *Event {
	e.event = f(e.event)
	return e
}

// Msg sends the event with a message.
func (e *Event) Msg(msg string) {
	e.event.Msg(msg)
}

func Debug() *Event { return &Event{event: Get().Debug()} }
func Info() *Event  { return &Event{event: Get().Info()} }
func Warn() *Event  { return &Event{event: Get().Warn()} }
func Error() *Event { return &Event{event: Get().Error()} }
