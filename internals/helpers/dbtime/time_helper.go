package dbtime

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Locals key set by the timezone middleware.
const LocProgramLoc = "program_loc"

// Clock returns the current instant. Services hold one so tests can pin "today".
type Clock func() time.Time

func SystemClock() time.Time { return time.Now() }

// Today is the calendar date of clock() in loc.
func Today(clock Clock, loc *time.Location) Date {
	if clock == nil {
		clock = SystemClock
	}
	return DateOf(clock(), loc)
}

// GetProgramLocation reads the *time.Location placed in locals, falling back to UTC.
func GetProgramLocation(c *fiber.Ctx) *time.Location {
	if c == nil {
		return time.UTC
	}
	if v := c.Locals(LocProgramLoc); v != nil {
		if loc, ok := v.(*time.Location); ok && loc != nil {
			return loc
		}
	}
	return time.UTC
}

// UseProgramLocation stores the program timezone into locals for every request.
func UseProgramLocation(tz string) fiber.Handler {
	loc := time.UTC
	if s := strings.TrimSpace(tz); s != "" {
		if l, err := time.LoadLocation(s); err == nil {
			loc = l
		}
	}
	return func(c *fiber.Ctx) error {
		c.Locals(LocProgramLoc, loc)
		return c.Next()
	}
}

// ToProgramTime converts an instant (usually UTC from the DB) into the program timezone.
func ToProgramTime(c *fiber.Ctx, t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(GetProgramLocation(c))
}
