package admin

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamshidbekman/rivojbot/internal/lead"
	"github.com/jamshidbekman/rivojbot/internal/reply"
)

const adminID = 999

var tashkent = time.FixedZone("UZT", 5*60*60)

type staticStore struct {
	leads   []lead.Lead
	err     error
	appends int
}

func (s *staticStore) Append(_ context.Context, l lead.Lead) (lead.Lead, error) {
	s.appends++
	return l, nil
}

func (s *staticStore) LoadAll(context.Context) ([]lead.Lead, error) {
	return s.leads, s.err
}

func at(h int) time.Time {
	return time.Date(2025, 10, 1, h, 0, 0, 0, time.UTC)
}

func fixtureLeads() []lead.Lead {
	return []lead.Lead{
		{ID: 1, UserID: 10, FirstName: "Aziz", Phone: "+1", Role: lead.RoleBusiness, Problem: lead.ProblemClients, CapturedAt: at(1)},
		{ID: 2, UserID: 11, Username: "dil", FirstName: "Dilnoza", Phone: "+2", Role: lead.RoleBusiness, Problem: lead.ProblemClients, CapturedAt: at(2)},
		{ID: 3, UserID: 10, FirstName: "Aziz", Phone: "+1", Role: lead.RoleIT, Problem: lead.ProblemClients, CapturedAt: at(3)},
		{ID: 4, UserID: 12, FirstName: "Bek, Jr", Phone: "+4", Role: lead.RoleUnknown, Problem: lead.ProblemSales, CapturedAt: at(4)},
	}
}

func newService(store lead.Store) *Service {
	return New(store, Options{
		AdminID:  adminID,
		Location: tashkent,
		Now:      func() time.Time { return at(12) },
	})
}

func TestNonAdminIsRejected(t *testing.T) {
	store := &staticStore{leads: fixtureLeads()}
	s := newService(store)
	ctx := context.Background()

	ops := map[string]func() ([]reply.Intent, error){
		"panel":   func() ([]reply.Intent, error) { return s.Panel(ctx, 1) },
		"stats":   func() ([]reply.Intent, error) { return s.Stats(ctx, 1) },
		"refresh": func() ([]reply.Intent, error) { return s.Refresh(ctx, 1) },
		"leads":   func() ([]reply.Intent, error) { return s.RecentLeads(ctx, 1) },
		"export":  func() ([]reply.Intent, error) { return s.Export(ctx, 1) },
	}
	for name, op := range ops {
		out, err := op()
		assert.ErrorIs(t, err, ErrPermissionDenied, name)
		assert.Empty(t, out, name)
	}

	msgr := &recordingMessenger{}
	_, err := s.Broadcast(ctx, 1, "hi", msgr)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Empty(t, msgr.sent)
	assert.Zero(t, store.appends)
}

func TestZeroAdminIDDisablesSurface(t *testing.T) {
	s := New(&staticStore{}, Options{})
	assert.ErrorIs(t, s.Authorize(0), ErrPermissionDenied)
	assert.ErrorIs(t, s.Authorize(5), ErrPermissionDenied)
}

func TestPanel(t *testing.T) {
	out, err := newService(&staticStore{}).Panel(context.Background(), adminID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, reply.KeyboardAdmin, out[0].Keyboard)
	assert.Contains(t, out[0].Text, "ADMIN PANEL")
}

func TestStats(t *testing.T) {
	out, err := newService(&staticStore{leads: fixtureLeads()}).Stats(context.Background(), adminID)
	require.NoError(t, err)
	text := out[0].Text
	assert.Contains(t, text, "<b>Jami leadlar:</b> 4")
	assert.Contains(t, text, "<b>Bugun:</b> 4")
	assert.Contains(t, text, "• 1️⃣ Biznes egasi: 2")
	assert.Contains(t, text, "• Noma'lum: 1")
	assert.Contains(t, text, "• 🚀 Mijozlarni jalb qilish: 3")
	assert.Contains(t, text, "01.10.2025 17:00")
}

func TestStatsEmptyAndUnreadable(t *testing.T) {
	out, err := newService(&staticStore{err: lead.ErrStorageRead}).Stats(context.Background(), adminID)
	require.NoError(t, err)
	assert.Contains(t, out[0].Text, "<b>Jami leadlar:</b> 0")
	assert.Contains(t, out[0].Text, "Ma'lumot yo'q")
}

func TestRefresh(t *testing.T) {
	out, err := newService(&staticStore{leads: fixtureLeads()}).Refresh(context.Background(), adminID)
	require.NoError(t, err)
	assert.Contains(t, out[0].Text, "Jami leadlar: 4")
}

func TestRecentLeadsNewestFirst(t *testing.T) {
	var leads []lead.Lead
	for i := 1; i <= 12; i++ {
		leads = append(leads, lead.Lead{ID: int64(i), UserID: int64(i), FirstName: fmt.Sprintf("U%02d", i), Phone: "+1", CapturedAt: at(1)})
	}
	got := Recent(leads, 10)
	require.Len(t, got, 10)
	assert.Equal(t, int64(12), got[0].ID)
	assert.Equal(t, int64(3), got[9].ID)
	assert.Len(t, Recent(leads[:2], 10), 2)

	out, err := newService(&staticStore{leads: leads}).RecentLeads(context.Background(), adminID)
	require.NoError(t, err)
	text := out[0].Text
	assert.Contains(t, text, "1. <b>U12</b>")
	assert.Contains(t, text, "10. <b>U03</b>")
	assert.NotContains(t, text, "U02")
}

func TestRecentLeadsEmpty(t *testing.T) {
	out, err := newService(&staticStore{}).RecentLeads(context.Background(), adminID)
	require.NoError(t, err)
	assert.Equal(t, "📋 Hozircha leadlar yo'q.", out[0].Text)
}

func TestExport(t *testing.T) {
	out, err := newService(&staticStore{leads: fixtureLeads()}).Export(context.Background(), adminID)
	require.NoError(t, err)
	require.Len(t, out, 2)
	doc := out[1].Document
	require.NotNil(t, doc)
	assert.Equal(t, "leads_2025-10-01.csv", doc.FileName)
	assert.Contains(t, doc.Caption, "Jami: 4 ta")

	rows, err := csv.NewReader(bytes.NewReader(doc.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{"1", "Aziz", "+1", "1️⃣ Biznes egasi", "🚀 Mijozlarni jalb qilish", "01.10.2025 06:00", "10", "Yo'q"}, rows[1])
	assert.Equal(t, "dil", rows[2][7])
	assert.Equal(t, "Bek, Jr", rows[4][1])
}

func TestExportEmpty(t *testing.T) {
	out, err := newService(&staticStore{}).Export(context.Background(), adminID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, reply.KindText, out[0].Kind)
}

type recordingMessenger struct {
	mu     sync.Mutex
	sent   []int64
	texts  []string
	failTo map[int64]bool
}

func (m *recordingMessenger) SendHTML(_ context.Context, chatID int64, html string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, chatID)
	m.texts = append(m.texts, html)
	if m.failTo[chatID] {
		return errors.New("blocked")
	}
	return nil
}

func TestRecipientsDistinctInFirstCaptureOrder(t *testing.T) {
	assert.Equal(t, []int64{10, 11, 12}, Recipients(fixtureLeads()))
}

func TestBroadcast(t *testing.T) {
	s := newService(&staticStore{leads: fixtureLeads()})
	msgr := &recordingMessenger{failTo: map[int64]bool{11: true}}

	res, err := s.Broadcast(context.Background(), adminID, "  Yangi aksiya!  ", msgr)
	require.NoError(t, err)
	assert.Equal(t, BroadcastResult{Total: 3, Sent: 2, Failed: 1}, res)
	assert.Equal(t, []int64{adminID, 10, 11, 12, adminID}, msgr.sent)
	assert.Equal(t, "Yangi aksiya!", msgr.texts[1])
	assert.Contains(t, msgr.texts[0], "(3 foydalanuvchi)")
	assert.Equal(t, BroadcastSummary(res), msgr.texts[4])
}

func TestBroadcastEmptyMessage(t *testing.T) {
	_, err := newService(&staticStore{}).Broadcast(context.Background(), adminID, " ", &recordingMessenger{})
	assert.ErrorIs(t, err, ErrEmptyBroadcast)
}

func TestBroadcastStopsOnCancel(t *testing.T) {
	s := New(&staticStore{leads: fixtureLeads()}, Options{AdminID: adminID, BroadcastPacing: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	msgr := &recordingMessenger{}

	done := make(chan BroadcastResult)
	go func() {
		res, _ := s.Broadcast(ctx, adminID, "hi", msgr)
		done <- res
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case res := <-done:
		assert.True(t, res.Aborted)
		assert.Equal(t, 1, res.Sent)
	case <-time.After(time.Second):
		t.Fatal("broadcast ignored cancellation")
	}
}
