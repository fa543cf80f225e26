package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"github.com/jamshidbekman/rivojbot/core/telegram/commands"
)

func noop(tele.Context) error { return nil }

func TestRegistryCommands(t *testing.T) {
	r := NewRegistry()
	r.RegisterCommand("/start", commands.Command{Handler: noop, Description: "Boshlash"})
	r.RegisterCommand("/help", commands.Command{Handler: noop, Description: "Yordam", Aliases: []string{"ℹ️ Yordam"}})
	r.RegisterCommand("/admin", commands.Command{Handler: noop, Description: "Admin", AdminOnly: true})
	r.RegisterCommand("nope", commands.Command{Handler: noop, Description: "x"})
	r.RegisterCommand("/start", commands.Command{Handler: noop, Description: "dup"})

	assert.Len(t, r.Commands(), 3)
	visible := r.ListCommands(true)
	require.Len(t, visible, 2)
	assert.Equal(t, "help", visible[0].Text)

	key, _, ok := r.LookupCommand("ℹ️ Yordam")
	assert.True(t, ok)
	assert.Equal(t, "/help", key)
	key, _, ok = r.LookupCommand("start")
	assert.True(t, ok)
	assert.Equal(t, "/start", key)
	_, _, ok = r.LookupCommand("/missing")
	assert.False(t, ok)
}

func TestRegistryTextsAndCallbacks(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterText(" 💰 Narxlar ", noop))
	assert.Error(t, r.RegisterText("💰 Narxlar", noop))
	assert.Error(t, r.RegisterText("", noop))
	_, ok := r.LookupText("💰 Narxlar")
	assert.True(t, ok)

	require.NoError(t, r.RegisterCallback("offer_view", noop))
	assert.Error(t, r.RegisterCallback("offer_view", noop))
	assert.Error(t, r.RegisterCallback("x", nil))
	assert.Equal(t, []string{"offer_view"}, r.ListCallbacks())
	assert.NotNil(t, r.CallbackNotFound())
}
