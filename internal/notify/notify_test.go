package notify

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
	tele "gopkg.in/telebot.v4"

	"github.com/jamshidbekman/rivojbot/internal/lead"
)

var tashkent = time.FixedZone("UZT", 5*60*60)

func sampleLead() lead.Lead {
	return lead.Lead{
		ID:         7,
		UserID:     12345,
		Username:   "aziz",
		FirstName:  "Aziz <Bek>",
		Phone:      "+998901234567",
		Role:       lead.RoleBarber,
		Problem:    lead.ProblemSales,
		CapturedAt: time.Date(2025, 10, 1, 19, 30, 0, 0, time.UTC),
	}
}

func TestFormatLead(t *testing.T) {
	text := FormatLead(sampleLead(), tashkent)
	assert.Contains(t, text, "YANGI LEAD QABUL QILINDI")
	assert.Contains(t, text, "<b>Aziz &lt;Bek&gt;</b>")
	assert.Contains(t, text, "<code>+998901234567</code>")
	assert.Contains(t, text, "<code>12345</code>")
	assert.Contains(t, text, "@aziz")
	assert.Contains(t, text, "2️⃣ Sartarosh")
	assert.Contains(t, text, "💵 Sotuvni oshirish")
	assert.Contains(t, text, "02.10.2025 00:30")
}

func TestFormatLeadWithoutSelections(t *testing.T) {
	l := sampleLead()
	l.Username = ""
	l.Role = lead.RoleUnknown
	l.Problem = lead.ProblemUnknown
	text := FormatLead(l, nil)
	assert.Contains(t, text, "Username: ❌ Yo'q")
	assert.Equal(t, 2, strings.Count(text, "❌ Ko'rsatilmagan"))
}

type recordingDest struct {
	name string
	err  error

	mu    sync.Mutex
	leads []lead.Lead
}

func (d *recordingDest) Name() string { return d.name }

func (d *recordingDest) Deliver(_ context.Context, l lead.Lead) error {
	d.mu.Lock()
	d.leads = append(d.leads, l)
	d.mu.Unlock()
	return d.err
}

func (d *recordingDest) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.leads)
}

func TestNotifierFansOut(t *testing.T) {
	ok := &recordingDest{name: "ok"}
	failing := &recordingDest{name: "failing", err: errors.New("boom")}
	n := New(Options{}, failing, ok)

	n.Notify(context.Background(), sampleLead())
	n.Notify(context.Background(), sampleLead())
	n.Close()

	assert.Equal(t, 2, ok.count())
	assert.Equal(t, 2, failing.count())
	assert.Equal(t, []string{"failing", "ok"}, n.Destinations())
}

func TestNotifierSendsOnceOnTransientError(t *testing.T) {
	d := &recordingDest{name: "flaky", err: &net.OpError{Op: "dial", Err: errors.New("connection refused")}}
	n := New(Options{}, d)

	n.Notify(context.Background(), sampleLead())
	n.Close()

	assert.Equal(t, 1, d.count())
}

func TestNotifierDeliversAfterCancel(t *testing.T) {
	d := &recordingDest{name: "d"}
	n := New(Options{}, d)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n.Notify(ctx, sampleLead())
	n.Close()
	assert.Equal(t, 1, d.count())
}

func TestNotifierRunsInlineWhenClosed(t *testing.T) {
	d := &recordingDest{name: "d"}
	n := New(Options{}, d)
	n.Close()
	n.Notify(context.Background(), sampleLead())
	assert.Equal(t, 1, d.count())
}

type fakeAPI struct {
	mu    sync.Mutex
	paths []string
	chats []string
}

func (f *fakeAPI) RoundTrip(req *http.Request) (*http.Response, error) {
	var body map[string]any
	if req.Body != nil {
		_ = json.NewDecoder(req.Body).Decode(&body)
	}
	f.mu.Lock()
	f.paths = append(f.paths, req.URL.Path)
	if id, ok := body["chat_id"].(string); ok {
		f.chats = append(f.chats, id)
	}
	f.mu.Unlock()
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(`{"ok":true,"result":{"message_id":1,"chat":{"id":4242}}}`)),
		Request:    req,
	}, nil
}

func TestTelegramDestination(t *testing.T) {
	api := &fakeAPI{}
	bot, err := tele.NewBot(tele.Settings{
		Token:   "123:abc",
		Offline: true,
		Client:  &http.Client{Transport: api},
	})
	require.NoError(t, err)

	d := NewTelegramDestination("admin", bot, 4242, tashkent)
	assert.Equal(t, "admin", d.Name())
	require.NoError(t, d.Deliver(context.Background(), sampleLead()))

	require.Len(t, api.paths, 1)
	assert.True(t, strings.HasSuffix(api.paths[0], "/sendMessage"))
	assert.Equal(t, []string{"4242"}, api.chats)
}

type fakeMailer struct {
	msgs []*gomail.Message
	err  error
}

func (f *fakeMailer) DialAndSend(m ...*gomail.Message) error {
	f.msgs = append(f.msgs, m...)
	return f.err
}

func TestEmailDestination(t *testing.T) {
	mailer := &fakeMailer{}
	d := NewEmailDestinationWith(EmailConfig{From: "bot@rivoj.uz", To: []string{"sales@rivoj.uz"}}, mailer, tashkent)
	require.NoError(t, d.Deliver(context.Background(), sampleLead()))
	require.Len(t, mailer.msgs, 1)
	m := mailer.msgs[0]
	assert.Equal(t, []string{"sales@rivoj.uz"}, m.GetHeader("To"))
	assert.Contains(t, m.GetHeader("Subject")[0], "+998901234567")

	mailer.err = errors.New("smtp down")
	assert.ErrorContains(t, d.Deliver(context.Background(), sampleLead()), "smtp down")

	none := NewEmailDestinationWith(EmailConfig{}, mailer, nil)
	assert.Error(t, none.Deliver(context.Background(), sampleLead()))
}

type fakePublisher struct {
	exchange, key string
	msg           amqp.Publishing
	err           error
}

func (f *fakePublisher) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

func TestAMQPDestination(t *testing.T) {
	pub := &fakePublisher{}
	d := NewAMQPDestination(pub, "rivojbot.leads", "")
	require.NoError(t, d.Deliver(context.Background(), sampleLead()))

	assert.Equal(t, "rivojbot.leads", pub.exchange)
	assert.Equal(t, EventLeadCaptured, pub.key)
	assert.Equal(t, "application/json", pub.msg.ContentType)
	assert.Equal(t, amqp.Persistent, pub.msg.DeliveryMode)
	assert.NotEmpty(t, pub.msg.MessageId)

	var ev LeadEvent
	require.NoError(t, json.Unmarshal(pub.msg.Body, &ev))
	assert.Equal(t, pub.msg.MessageId, ev.ID)
	assert.Equal(t, EventLeadCaptured, ev.Type)
	assert.Equal(t, sampleLead(), ev.Lead)

	pub.err = errors.New("channel closed")
	assert.ErrorContains(t, d.Deliver(context.Background(), sampleLead()), "channel closed")
}
