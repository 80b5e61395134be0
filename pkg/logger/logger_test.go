package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestWithContextFallsBackToGlobal(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "info")

	WithContext(context.Background()).Info().Msg("global")
	require.Contains(t, buf.String(), `"message":"global"`)

	buf.Reset()
	reqLogger := WithRequestID("abc123")
	ctx := NewContext(context.Background(), &reqLogger)
	WithContext(ctx).Info().Msg("scoped")
	assert.Contains(t, buf.String(), `"request_id":"abc123"`)
}
