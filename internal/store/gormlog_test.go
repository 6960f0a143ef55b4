package store

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func traceInto(t *testing.T, echo bool, err error) string {
	t.Helper()
	var buf bytes.Buffer
	ctx := zerolog.New(&buf).Level(zerolog.InfoLevel).WithContext(context.Background())

	l := NewGormLogger(echo, time.Second)
	l.Trace(ctx, time.Now(), func() (string, int64) { return "SELECT 1", 1 }, err)
	return buf.String()
}

func TestGormLogger_EchoLogsAtInfo(t *testing.T) {
	out := traceInto(t, true, nil)
	assert.Contains(t, out, `"level":"info"`)
	assert.Contains(t, out, `"sql":"SELECT 1"`)
}

func TestGormLogger_QuietWithoutEcho(t *testing.T) {
	assert.Empty(t, traceInto(t, false, nil))
}

func TestGormLogger_ErrorsAlwaysLogged(t *testing.T) {
	out := traceInto(t, false, errors.New("boom"))
	assert.Contains(t, out, `"level":"error"`)
	assert.Contains(t, out, "boom")
}
