package lead

import (
	"context"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a disposable database when RIVOJBOT_TEST_DSN is set.
func TestPGStoreRoundTrip(t *testing.T) {
	dsn := os.Getenv("RIVOJBOT_TEST_DSN")
	if dsn == "" {
		t.Skip("RIVOJBOT_TEST_DSN not set")
	}
	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)
	defer db.Close()

	schema, err := os.ReadFile("../../migrations/000001_create_leads.up.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)
	_, err = db.Exec("TRUNCATE leads RESTART IDENTITY")
	require.NoError(t, err)

	s := NewPGStore(db)
	s.now = fixedClock()
	ctx := context.Background()

	first, err := s.Append(ctx, Lead{UserID: 1, FirstName: "Aziz", Phone: "+998901234567", Role: RoleBusiness, Problem: ProblemClients})
	require.NoError(t, err)
	second, err := s.Append(ctx, Lead{UserID: 2, Phone: "+998911112233"})
	require.NoError(t, err)
	assert.Less(t, first.ID, second.ID)

	leads, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, RoleBusiness, leads[0].Role)
	assert.Equal(t, ProblemUnknown, leads[1].Problem)
	assert.True(t, leads[0].CapturedAt.Equal(fixedClock()()))
}
