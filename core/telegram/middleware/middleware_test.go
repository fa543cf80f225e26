package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"
)

func newCtx(userID int64, upd tele.Update) tele.Context {
	b, _ := tele.NewBot(tele.Settings{Offline: true})
	if upd.Message == nil && upd.Callback == nil {
		upd.Message = &tele.Message{Sender: &tele.User{ID: userID}, Chat: &tele.Chat{ID: userID}}
	}
	return b.NewContext(upd)
}

func TestAdminOnlyRejectsWhenNoAdminConfigured(t *testing.T) {
	var rejected, passed int
	mw := AdminOnlyMiddleware(AdminOptions{
		AdminID:  0,
		OnReject: func(tele.Context) error { rejected++; return nil },
	})
	h := mw(func(tele.Context) error { passed++; return nil })

	require.NoError(t, h(newCtx(7, tele.Update{})))
	assert.Equal(t, 1, rejected)
	assert.Zero(t, passed)
}

func TestAdminOnlyAllowsConfiguredAdmin(t *testing.T) {
	var passed int
	h := AdminOnlyMiddleware(AdminOptions{AdminID: 42})(func(tele.Context) error { passed++; return nil })
	require.NoError(t, h(newCtx(42, tele.Update{})))
	require.NoError(t, h(newCtx(43, tele.Update{})))
	assert.Equal(t, 1, passed)
}

func TestRecoverAnswersAndSwallowsPanic(t *testing.T) {
	var answered bool
	h := Recover(func(tele.Context) error { answered = true; return nil })(func(tele.Context) error {
		panic("boom")
	})
	assert.NotPanics(t, func() { assert.NoError(t, h(newCtx(1, tele.Update{}))) })
	assert.True(t, answered)
}

func TestRateLimit(t *testing.T) {
	clock := time.Unix(0, 0)
	var limited, passed int
	mw := RateLimitMiddleware(RateLimitOptions{
		Interval:  time.Second,
		Exclude:   map[string]struct{}{"callback": {}},
		OnLimited: func(tele.Context) error { limited++; return nil },
		Now:       func() time.Time { return clock },
	})
	h := mw(func(tele.Context) error { passed++; return nil })

	_ = h(newCtx(5, tele.Update{}))
	_ = h(newCtx(5, tele.Update{}))
	clock = clock.Add(2 * time.Second)
	_ = h(newCtx(5, tele.Update{}))
	cb := tele.Update{Callback: &tele.Callback{Sender: &tele.User{ID: 5}}}
	_ = h(newCtx(5, cb))
	_ = h(newCtx(5, cb))

	assert.Equal(t, 4, passed)
	assert.Equal(t, 1, limited)
}

func TestMessageCounters(t *testing.T) {
	c := newCtx(1, tele.Update{})
	h := MessageMetricsMiddleware(func(c tele.Context) error {
		mc := c.(metricsContext)
		mc.incMessages(false)
		mc.incMessages(true)
		return nil
	})
	require.NoError(t, h(c))
	msgs, kb := GetCounters(c)
	assert.Equal(t, 2, msgs)
	assert.True(t, kb)
	assert.True(t, hasKeyboard([]interface{}{&tele.SendOptions{ReplyMarkup: &tele.ReplyMarkup{}}}))
	assert.False(t, hasKeyboard([]interface{}{tele.ModeHTML}))
}

func TestObserveHandledDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() { ObserveHandled("test", "ok", 0.01) })
}
