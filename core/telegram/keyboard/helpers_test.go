package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplyButtons(t *testing.T) {
	m := ReplyButtons([]string{"a", "b"}, []string{"c"})
	require.Len(t, m.ReplyKeyboard, 2)
	assert.Len(t, m.ReplyKeyboard[0], 2)
	assert.Equal(t, "c", m.ReplyKeyboard[1][0].Text)
	assert.True(t, m.ResizeKeyboard)
	assert.False(t, m.OneTimeKeyboard)
}

func TestContactRequest(t *testing.T) {
	m := ContactRequest("📲 Kontaktni yuborish", []string{"🔙 Bekor qilish"})
	require.Len(t, m.ReplyKeyboard, 2)
	assert.True(t, m.ReplyKeyboard[0][0].Contact)
	assert.Equal(t, "🔙 Bekor qilish", m.ReplyKeyboard[1][0].Text)
	assert.True(t, m.OneTimeKeyboard)
}

func TestInlineButtonsNPerRow(t *testing.T) {
	btns := []InlineBtn{{Text: "1", Unique: "a"}, {Text: "2", Unique: "b"}, {Text: "3", Unique: "c"}}
	m := InlineButtonsNPerRow(btns, 2)
	require.Len(t, m.InlineKeyboard, 2)
	assert.Len(t, m.InlineKeyboard[0], 2)
	assert.Equal(t, "c", m.InlineKeyboard[1][0].Unique)

	assert.Len(t, InlineButtons(btns).InlineKeyboard, 3)
}
