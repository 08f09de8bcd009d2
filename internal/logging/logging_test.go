package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultIsSilent(t *testing.T) {
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}

func TestSetup(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	var buf bytes.Buffer
	Setup(&buf, false)
	Logger().Debug("hidden")
	Logger().Info("shown", "demo", "shapes")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "demo=shapes")

	buf.Reset()
	Setup(&buf, true)
	Logger().Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
}
