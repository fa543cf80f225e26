package stats

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamshidbekman/rivojbot/internal/lead"
)

func TestComputeCounts(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tashkent")
	require.NoError(t, err)
	now := time.Date(2025, 10, 2, 12, 0, 0, 0, loc)
	today := now.UTC()
	yesterday := now.Add(-24 * time.Hour).UTC()

	leads := []lead.Lead{
		{Role: lead.RoleBusiness, Problem: lead.ProblemClients, CapturedAt: today},
		{Role: lead.RoleBusiness, Problem: lead.ProblemClients, CapturedAt: today},
		{Role: lead.RoleBusiness, Problem: lead.ProblemClients, CapturedAt: yesterday},
		{Role: lead.RoleBarber, Problem: lead.ProblemClients, CapturedAt: yesterday},
		{Role: lead.RoleBarber, Problem: lead.ProblemSales, CapturedAt: today},
	}

	s := Compute(leads, now, loc)
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 3, s.Today)
	assert.Equal(t, map[lead.Role]int{lead.RoleBusiness: 3, lead.RoleBarber: 2}, s.ByRole)
	assert.Equal(t, map[lead.Problem]int{lead.ProblemClients: 4, lead.ProblemSales: 1}, s.ByProblem)
}

func TestComputeTodayUsesLocalCalendarDay(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tashkent")
	require.NoError(t, err)
	// 20:30 UTC on Oct 1 is already Oct 2 in Tashkent (UTC+5).
	captured := time.Date(2025, 10, 1, 20, 30, 0, 0, time.UTC)
	now := time.Date(2025, 10, 2, 9, 0, 0, 0, loc)

	assert.Equal(t, 1, Compute([]lead.Lead{{CapturedAt: captured}}, now, loc).Today)
	assert.Equal(t, 0, Compute([]lead.Lead{{CapturedAt: captured}}, now, time.UTC).Today)
}

func TestComputeEmpty(t *testing.T) {
	s := Compute(nil, time.Now(), nil)
	assert.Zero(t, s.Total)
	assert.Zero(t, s.Today)
	assert.Empty(t, s.ByRole)
	assert.Empty(t, s.SortedProblems())
}

func TestUnknownIsItsOwnBucket(t *testing.T) {
	s := Compute([]lead.Lead{
		{Role: lead.RoleUnknown, Problem: lead.ProblemUnknown},
		{Role: lead.RoleIT, Problem: lead.ProblemUnknown},
	}, time.Now(), time.UTC)
	assert.Equal(t, 1, s.ByRole[lead.RoleUnknown])
	assert.Equal(t, 2, s.ByProblem[lead.ProblemUnknown])
}

func TestSortedOrder(t *testing.T) {
	s := Snapshot{
		ByRole:    map[lead.Role]int{lead.RoleTutor: 1, lead.RoleIT: 3, lead.RoleBarber: 1},
		ByProblem: map[lead.Problem]int{lead.ProblemBrand: 2, lead.ProblemIncome: 2},
	}
	assert.Equal(t, []RoleCount{
		{lead.RoleIT, 3}, {lead.RoleBarber, 1}, {lead.RoleTutor, 1},
	}, s.SortedRoles())
	assert.Equal(t, []ProblemCount{
		{lead.ProblemBrand, 2}, {lead.ProblemIncome, 2},
	}, s.SortedProblems())
}
