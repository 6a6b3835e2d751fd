package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_json(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, InfoLevel).Named("web")
	l.Debug("hidden")
	l.Info("shown", String("race", "r1"), Int("rows", 3))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"logger":"web"`)
	assert.Contains(t, out, `"race":"r1"`)
	assert.Contains(t, out, `"rows":3`)
}

func TestWithFilterRules(t *testing.T) {
	opt, err := WithFilterRules("debug:web warn:*")
	require.NoError(t, err)

	var buf bytes.Buffer
	l := New(&buf, DebugLevel, opt)
	l.Named("web").Debug("web debug")
	l.Named("route").Info("route info")
	l.Named("route").Warn("route warn")

	out := buf.String()
	assert.Contains(t, out, "web debug")
	assert.NotContains(t, out, "route info")
	assert.Contains(t, out, "route warn")
}

func TestWithFilterRules_invalid(t *testing.T) {
	_, err := WithFilterRules("verbose:web")
	assert.Error(t, err)
}

func TestContext(t *testing.T) {
	var buf bytes.Buffer
	l := DevLogger(&buf, DebugLevel)
	assert.Same(t, Default(), GetFromContext(context.Background()))

	ctx := AddToContext(context.Background(), l)
	assert.Same(t, l, GetFromContext(ctx))
	GetFromContext(ctx).Debug("from context")
	assert.Contains(t, buf.String(), "from context")
}
