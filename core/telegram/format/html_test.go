package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEscape(t *testing.T) {
	assert.Equal(t, "a &lt;b&gt; &amp; O'g'li", Escape("a <b> & O'g'li"))
	assert.Equal(t, "<b>x &lt; y</b>", Bold("x < y"))
	assert.Equal(t, "<code>+998</code>", Code("+998"))
	assert.Equal(t, "<i>hi</i>", Italic("hi"))
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, "❌ Yo'q", OrDefault("  ", "❌ Yo'q"))
	assert.Equal(t, "aziz", OrDefault("aziz", "❌ Yo'q"))
}

func TestDateTime(t *testing.T) {
	ts := time.Date(2025, 10, 1, 20, 5, 0, 0, time.UTC)
	tashkent := time.FixedZone("UZT", 5*3600)
	assert.Equal(t, "02.10.2025 01:05", DateTime(ts, tashkent))
	assert.Equal(t, "01.10.2025 20:05", DateTime(ts, nil))
	assert.Equal(t, "02.10.2025", Date(ts, tashkent))
}
