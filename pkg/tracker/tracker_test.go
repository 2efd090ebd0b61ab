package tracker

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name    string
	Count   int    `structs:"count"`
	Secret  string `structs:"-"`
	private int
}

type custom struct {
	hidden string
}

func (c *custom) TrackFields() map[string]any {
	return map[string]any{"hidden": c.hidden}
}

func attrMap(attrs []slog.Attr) map[string]any {
	out := make(map[string]any, len(attrs))
	for _, a := range attrs {
		out[a.Key] = a.Value.Any()
	}
	return out
}

func TestFieldsFromStruct(t *testing.T) {
	attrs := Fields(&sample{Name: "echo", Count: 3, Secret: "x", private: 1})

	require.Len(t, attrs, 2)
	assert.Equal(t, "Name", attrs[0].Key)
	assert.Equal(t, "count", attrs[1].Key)

	m := attrMap(attrs)
	assert.Equal(t, "echo", m["Name"])
	assert.EqualValues(t, 3, m["count"])
	assert.NotContains(t, m, "Secret")
	assert.NotContains(t, m, "private")
}

func TestFieldsFromTracked(t *testing.T) {
	m := attrMap(Fields(&custom{hidden: "value"}))
	assert.Equal(t, map[string]any{"hidden": "value"}, m)
}

func TestFieldsNonStruct(t *testing.T) {
	assert.Nil(t, Fields(nil))
	assert.Nil(t, Fields(42))
	assert.Nil(t, Fields("text"))
}

func TestLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	Log(logger, "actor state", sample{Name: "echo", Count: 2})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "actor state", entry["msg"])
	assert.Equal(t, "tracker.sample", entry["type"])
	assert.Equal(t, "echo", entry["Name"])
	assert.EqualValues(t, 2, entry["count"])
}

func TestLogLevelDisabled(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	LogLevel(logger, slog.LevelDebug, "hidden", sample{Name: "echo"})
	assert.Empty(t, buf.String())
}

type nested struct {
	Started time.Time
	Inner   sample
}

func TestFieldsKeepsNestedValues(t *testing.T) {
	now := time.Now()
	m := attrMap(Fields(nested{Started: now, Inner: sample{Name: "x"}}))

	require.IsType(t, time.Time{}, m["Started"])
	assert.WithinDuration(t, now, m["Started"].(time.Time), 0)
	assert.Equal(t, sample{Name: "x"}, m["Inner"])
}
