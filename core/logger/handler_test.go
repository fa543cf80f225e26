package logger

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLine(t *testing.T, format logFormat, emit func(log *slog.Logger)) string {
	t.Helper()
	buf := &bytes.Buffer{}
	aw := newAsyncWriter([]io.Writer{buf}, 1024)
	log := slog.New(newStructuredHandler(handlerConfig{
		level:  slog.LevelInfo,
		writer: aw,
		format: format,
	}))
	emit(log)
	require.NoError(t, aw.Flush())
	require.NoError(t, aw.Close())
	return strings.TrimSpace(buf.String())
}

func TestStructuredHandlerKVOrder(t *testing.T) {
	ctx := WithUpdateMeta(WithRID(context.Background(), "rid-123"), 42, 7, 9)
	line := captureLine(t, formatKV, func(log *slog.Logger) {
		LogEvent(ctx, log.With("component", CompLeads), slog.LevelInfo, "lead.saved",
			slog.String("status", "ok"),
			slog.Int64("lead_id", 5),
		)
	})

	tokens := strings.Split(line, " ")
	require.GreaterOrEqual(t, len(tokens), 6, line)
	for i, prefix := range []string{"ts=", "level=INFO", "component=leads", "event=lead.saved", "status=ok", "rid=rid-123"} {
		assert.True(t, strings.HasPrefix(tokens[i], prefix), "token %d = %s, want prefix %s", i, tokens[i], prefix)
	}
	assert.Contains(t, line, "lead_id=5")
	assert.Contains(t, line, "user_id=7")
}

func TestStructuredHandlerJSON(t *testing.T) {
	ctx := WithUpdateMeta(WithRID(context.Background(), "rid-json"), 11, 22, 33)
	line := captureLine(t, formatJSON, func(log *slog.Logger) {
		LogEvent(ctx, log.With("component", CompNotify), slog.LevelError, "notify.fail",
			slog.String("status", "error"),
			Err(errors.New("boom")),
			slog.Duration("took", 1500*time.Microsecond),
		)
	})

	var fields map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &fields))
	assert.Equal(t, "ERROR", fields["level"])
	assert.Equal(t, "notify", fields["component"])
	assert.Equal(t, "notify.fail", fields["event"])
	assert.Equal(t, "fail", fields["status"])
	assert.Equal(t, "boom", fields["err"])
	assert.EqualValues(t, 2, fields["took_ms"])
	assert.EqualValues(t, 22, fields["user_id"])
	assert.Contains(t, fields, "ts_unix_nano")

	ordered := []string{`{"ts":`, `"level":`, `"component":`, `"event":`, `"status":`, `"rid":`}
	pos := -1
	for _, key := range ordered {
		idx := strings.Index(line, key)
		require.Greater(t, idx, pos, "%s out of order in %s", key, line)
		pos = idx
	}
}

func TestStructuredHandlerCompactRID(t *testing.T) {
	ctx := WithRID(context.Background(), "123:456:789")
	line := captureLine(t, formatKV, func(log *slog.Logger) {
		LogEvent(ctx, log, slog.LevelInfo, "rid.test")
	})
	assert.Contains(t, line, "rid="+CompactRID("123:456:789"))
	assert.NotContains(t, line, "rid_full=")
	assert.Contains(t, line, "component=app")

	line = captureLine(t, formatJSON, func(log *slog.Logger) {
		LogEvent(ctx, log, slog.LevelInfo, "rid.test")
	})
	assert.Contains(t, line, `"rid":"`+CompactRID("123:456:789")+`"`)
	assert.Contains(t, line, `"rid_full":"123:456:789"`)
}

func TestStructuredHandlerDropsBelowLevel(t *testing.T) {
	line := captureLine(t, formatKV, func(log *slog.Logger) {
		log.Debug("hidden")
	})
	assert.Empty(t, line)
}

func TestKVQuotesValuesWithSpaces(t *testing.T) {
	line := captureLine(t, formatKV, func(log *slog.Logger) {
		LogEvent(context.Background(), log, slog.LevelInfo, "quote", slog.String("role", "Biznes egasi"))
	})
	assert.Contains(t, line, `role="Biznes egasi"`)
}

func TestCompactRID(t *testing.T) {
	assert.Equal(t, "a.b.c", CompactRID("10:11:12"))
	assert.Equal(t, "not-a-rid", CompactRID("not-a-rid"))
	assert.Equal(t, "1:x:2", CompactRID("1:x:2"))
}

func TestSanitizeLimit(t *testing.T) {
	assert.Equal(t, "ab\ncd", Sanitize("a\x00b\ncd​"))
	assert.Equal(t, "Sal", SanitizeLimit("Salom", 3))
	assert.Empty(t, SanitizeLimit("x", 0))
}

func TestRatioSampler(t *testing.T) {
	s := newRatioSampler(1, 3)
	got := []bool{s.Allow(), s.Allow(), s.Allow(), s.Allow()}
	assert.Equal(t, []bool{true, false, false, true}, got)

	s.Set(0, 0)
	assert.True(t, s.Allow())

	num, den := parseRatioSpec("2/5")
	assert.Equal(t, [2]int{2, 5}, [2]int{num, den})
	num, den = parseRatioSpec("10")
	assert.Equal(t, [2]int{1, 10}, [2]int{num, den})
	num, den = parseRatioSpec("x/y")
	assert.Equal(t, [2]int{0, 0}, [2]int{num, den})
}

func TestHelpersAreNoopsBeforeInit(t *testing.T) {
	assert.Nil(t, Component(CompAdmin))
	assert.NotPanics(t, func() {
		Info(context.Background(), CompAdmin, "noop")
	})
}
