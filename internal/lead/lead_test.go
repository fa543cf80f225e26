package lead

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	t := time.Date(2025, 10, 1, 9, 30, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func newStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := OpenFileStore(filepath.Join(t.TempDir(), "leads.jsonl"), WithClock(fixedClock()))
	require.NoError(t, err)
	return s
}

func TestRoleLabels(t *testing.T) {
	r, ok := RoleFromLabel("1️⃣ Biznes egasi")
	require.True(t, ok)
	assert.Equal(t, RoleBusiness, r)

	_, ok = RoleFromLabel("Biznes")
	assert.False(t, ok)

	assert.Equal(t, RoleUnknown, ParseRole("Noma'lum"))
	assert.Equal(t, RoleBarber, ParseRole("barber"))
	assert.Equal(t, UnknownLabel, RoleUnknown.Label())
}

func TestProblemKeys(t *testing.T) {
	for _, p := range Problems {
		got, ok := ProblemFromKey(p.Key())
		require.True(t, ok, p)
		assert.Equal(t, p, got)
	}
	_, ok := ProblemFromKey("prob_zzz")
	assert.False(t, ok)
	_, ok = ProblemFromKey("clients")
	assert.False(t, ok)
	assert.True(t, IsProblemKey("prob_zzz"))
	assert.Equal(t, ProblemSales, ParseProblem("💵 Sotuvni oshirish"))
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, Lead{Phone: "1"}.Validate(), ErrInvalidLead)
	assert.ErrorIs(t, Lead{UserID: 1, Phone: " "}.Validate(), ErrInvalidLead)
	assert.NoError(t, Lead{UserID: 1, Phone: "+998"}.Validate())
}

func TestAppendAssignsSequentialIDs(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		l, err := s.Append(ctx, Lead{UserID: int64(100 + i), Phone: "+99890"})
		require.NoError(t, err)
		assert.EqualValues(t, i, l.ID)
		assert.Equal(t, time.UTC, l.CapturedAt.Location())
	}

	leads, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 5)
	for i, l := range leads {
		assert.EqualValues(t, i+1, l.ID)
		assert.Equal(t, RoleUnknown, l.Role)
		assert.Equal(t, ProblemUnknown, l.Problem)
	}
}

func TestAppendConcurrentKeepsIDsUnique(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Append(ctx, Lead{UserID: int64(i + 1), Phone: "p"})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	leads, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 20)
	for i, l := range leads {
		assert.EqualValues(t, i+1, l.ID)
	}
}

func TestReopenContinuesSequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.jsonl")
	s, err := OpenFileStore(path)
	require.NoError(t, err)
	_, err = s.Append(context.Background(), Lead{UserID: 1, Phone: "a"})
	require.NoError(t, err)

	s2, err := OpenFileStore(path)
	require.NoError(t, err)
	l, err := s2.Append(context.Background(), Lead{UserID: 2, Phone: "b"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, l.ID)
}

func TestLoadAllMissingFileIsEmpty(t *testing.T) {
	s := newStore(t)
	leads, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, leads)
}

func TestMalformedLinesAreSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.jsonl")
	data := "{\"id\":1,\"userId\":1,\"phone\":\"x\"}\nnot-json\n{\"id\":3,\"userId\":2,\"phone\":\"y\"}\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	s, err := OpenFileStore(path, WithClock(fixedClock()))
	require.NoError(t, err)

	leads, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.EqualValues(t, 1, leads[0].ID)
	assert.EqualValues(t, 3, leads[1].ID)

	l, err := s.Append(context.Background(), Lead{UserID: 4, Phone: "z"})
	require.NoError(t, err)
	assert.EqualValues(t, 4, l.ID)
}

func TestUnreadableLegacyArrayIsMovedAside(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "leads.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("[{\"id\":1,"), 0o600))

	s, err := OpenFileStore(path, WithClock(fixedClock()))
	require.NoError(t, err)

	leads, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, leads)

	moved, err := filepath.Glob(path + ".corrupt-*")
	require.NoError(t, err)
	assert.Len(t, moved, 1)

	l, err := s.Append(context.Background(), Lead{UserID: 1, Phone: "x"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, l.ID)
}

func TestOpenRepairsTornTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{\"id\":1,\"userId\":1,\"phone\":\"x\"}\n{\"id\":2,\"us"), 0o600))

	s, err := OpenFileStore(path)
	require.NoError(t, err)
	l, err := s.Append(context.Background(), Lead{UserID: 3, Phone: "y"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, l.ID)

	leads, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, leads, 2)
}

func TestOpenMigratesLegacyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.json")
	legacy := `[
  {"userId": 7, "username": null, "firstName": "Aziz", "phone": "+998901234567",
   "role": "1️⃣ Biznes egasi", "problem": "🚀 Mijozlarni jalb qilish",
   "timestamp": "2025-10-01T08:00:00.000Z", "id": 1},
  {"userId": 8, "firstName": "Dilnoza", "phone": "+998911112233",
   "role": "Noma'lum", "problem": "Noma'lum", "timestamp": "2025-10-02T08:00:00.000Z", "id": 2}
]`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o600))

	s, err := OpenFileStore(path)
	require.NoError(t, err)
	leads, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, RoleBusiness, leads[0].Role)
	assert.Equal(t, ProblemClients, leads[0].Problem)
	assert.Equal(t, RoleUnknown, leads[1].Role)

	l, err := s.Append(context.Background(), Lead{UserID: 9, Phone: "z"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, l.ID)
}

func TestAppendRejectsInvalidLead(t *testing.T) {
	s := newStore(t)
	_, err := s.Append(context.Background(), Lead{UserID: 1})
	assert.ErrorIs(t, err, ErrInvalidLead)

	l, err := s.Append(context.Background(), Lead{UserID: 1, Phone: "p"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, l.ID)
}

func TestAppendWriteFailure(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenFileStore(filepath.Join(dir, "leads.jsonl"))
	require.NoError(t, err)
	// A directory in place of the file makes the open fail.
	require.NoError(t, os.Mkdir(s.Path(), 0o755))

	_, err = s.Append(context.Background(), Lead{UserID: 1, Phone: "p"})
	assert.ErrorIs(t, err, ErrStorageWrite)
}
