package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, tt := range []struct {
		name  string
		json  bool
		debug bool
	}{
		{"console info", false, false},
		{"json debug", true, true},
	} {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.json, tt.debug)
			require.NoError(t, err)
			require.NotNil(t, l)
			assert.Equal(t, tt.debug, l.Core().Enabled(zapcore.DebugLevel))
		})
	}
}

func TestStringFields(t *testing.T) {
	fields := StringFields(
		StringField{Key: "  industry  ", Value: "  technology  "},
		StringField{Key: "ignored", Value: "   "},
		StringField{Key: "   ", Value: "empty key"},
	)

	require.Len(t, fields, 1)
	assert.Equal(t, "industry", fields[0].Key)
	assert.Equal(t, "technology", fields[0].String)
	assert.Empty(t, StringFields())
}

func TestWithFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	l := zap.New(core)

	WithFields(l, zap.String("foo", "bar")).Info("test log")

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "bar", entries[0].ContextMap()["foo"])

	assert.NotNil(t, WithFields(nil))
	assert.NotPanics(t, func() { WithFields(nil, zap.String("a", "b")).Info("noop") })
}

func TestFingerprint(t *testing.T) {
	assert.Equal(t, "0123456789ab", Fingerprint("0123456789abcdef").String)
	assert.Equal(t, "abc", Fingerprint("abc").String)
}

func TestScoreFields(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	zap.New(core).Debug("scored", ScoreFields("0123456789abcdef", "technology", 81.5, true)...)

	ctx := observed.All()[0].ContextMap()
	assert.Equal(t, "0123456789ab", ctx[FieldFingerprint])
	assert.Equal(t, "technology", ctx[FieldIndustry])
	assert.Equal(t, 81.5, ctx[FieldOverallScore])
	assert.Equal(t, true, ctx[FieldCacheHit])
}
