package reply

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuilderDropsZeroPauses(t *testing.T) {
	var b Builder
	b.Action(ActionTyping).Pause(0).Text("a", KeyboardNone).Pause(time.Second).
		Doc(Document{Path: "offer.pdf"}, KeyboardOfferActions)

	got := b.Intents()
	assert.Len(t, got, 4)
	assert.Equal(t, KindAction, got[0].Kind)
	assert.Equal(t, KindText, got[1].Kind)
	assert.Equal(t, time.Second, got[2].Pause)
	assert.Equal(t, "offer.pdf", got[3].Document.Path)
	assert.Equal(t, []string{"a"}, Texts(got))
}
