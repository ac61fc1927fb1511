package applog

import (
	"time"

	"github.com/felixgeelhaar/bolt/v3"
	"github.com/google/uuid"
)

// Field applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

func Str(key, value string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, value)
	}
}

func Int(key string, value int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int(key, value)
	}
}

func Bool(key string, value bool) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Bool(key, value)
	}
}

// Err adds an error field. A nil error leaves the event untouched.
func Err(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}

// Duration adds a duration field in milliseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

func Component(name string) Field {
	return Str("component", name)
}

func SelectionID(id uuid.UUID) Field {
	return Str("intern_selection_id", id.String())
}

func UserID(id uuid.UUID) Field {
	return Str("user_id", id.String())
}

func Stage(stage string) Field {
	return Str("stage", stage)
}

func Role(role string) Field {
	return Str("role", role)
}

// Date adds a calendar date field formatted as YYYY-MM-DD.
func Date(key string, t time.Time) Field {
	return Str(key, t.Format("2006-01-02"))
}
