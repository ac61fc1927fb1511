package dbtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateArithmetic(t *testing.T) {
	d := NewDate(2026, time.December, 28)

	assert.Equal(t, "2027-01-04", d.AddWeeks(1).String())
	assert.Equal(t, "2026-12-21", d.AddDays(-7).String())
	assert.Equal(t, "2027-02-01", d.AddWeeks(5).String())
	assert.True(t, d.Before(d.AddDays(1)))
	assert.False(t, d.AddDays(1).Before(d))
	assert.Equal(t, NewDate(2026, time.December, 28), d)
}

func TestDateOfUsesLocation(t *testing.T) {
	instant := time.Date(2026, time.March, 1, 23, 30, 0, 0, time.UTC)
	tokyo := time.FixedZone("JST", 9*3600)

	assert.Equal(t, "2026-03-01", DateOf(instant, time.UTC).String())
	assert.Equal(t, "2026-03-02", DateOf(instant, tokyo).String())
	assert.Equal(t, "2026-03-02", Today(func() time.Time { return instant }, tokyo).String())
}

func TestDateScan(t *testing.T) {
	cases := map[string]any{
		"time":      time.Date(2026, time.May, 9, 15, 0, 0, 0, time.UTC),
		"string":    "2026-05-09",
		"bytes":     []byte("2026-05-09"),
		"timestamp": "2026-05-09 00:00:00+00:00",
	}
	for name, v := range cases {
		t.Run(name, func(t *testing.T) {
			var d Date
			require.NoError(t, d.Scan(v))
			assert.Equal(t, "2026-05-09", d.String())
		})
	}

	var d Date
	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())
	assert.Error(t, d.Scan(42))
}

func TestDateValueAndJSON(t *testing.T) {
	d := NewDate(2026, time.May, 9)
	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2026-05-09", v)

	var zero Date
	v, err = zero.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	b, err := json.Marshal(struct {
		On  Date  `json:"on"`
		Off *Date `json:"off"`
	}{On: d})
	require.NoError(t, err)
	assert.JSONEq(t, `{"on":"2026-05-09","off":null}`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal([]byte(`"2026-05-09"`), &back))
	assert.Equal(t, d.String(), back.String())

	_, err = ParseDate("09/05/2026")
	assert.Error(t, err)
}
