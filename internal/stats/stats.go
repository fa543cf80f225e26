package stats

import (
	"sort"
	"time"

	"github.com/jamshidbekman/rivojbot/internal/lead"
)

// Snapshot is a derived aggregate over all leads. It is never cached.
type Snapshot struct {
	Total     int                  `json:"total"`
	Today     int                  `json:"today"`
	ByRole    map[lead.Role]int    `json:"by_role"`
	ByProblem map[lead.Problem]int `json:"by_problem"`
}

// Compute counts leads. "Today" compares calendar days in loc, which
// defaults to the process local zone.
func Compute(leads []lead.Lead, now time.Time, loc *time.Location) Snapshot {
	if loc == nil {
		loc = time.Local
	}
	s := Snapshot{
		Total:     len(leads),
		ByRole:    make(map[lead.Role]int),
		ByProblem: make(map[lead.Problem]int),
	}
	ty, tm, td := now.In(loc).Date()
	for _, l := range leads {
		s.ByRole[l.Role]++
		s.ByProblem[l.Problem]++
		if y, m, d := l.CapturedAt.In(loc).Date(); y == ty && m == tm && d == td {
			s.Today++
		}
	}
	return s
}

// RoleCount is one row of the by-role breakdown.
type RoleCount struct {
	Role  lead.Role
	Count int
}

// ProblemCount is one row of the by-problem breakdown.
type ProblemCount struct {
	Problem lead.Problem
	Count   int
}

// SortedRoles orders the breakdown by count descending, then by code.
func (s Snapshot) SortedRoles() []RoleCount {
	out := make([]RoleCount, 0, len(s.ByRole))
	for r, n := range s.ByRole {
		out = append(out, RoleCount{Role: r, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Role < out[j].Role
	})
	return out
}

// SortedProblems orders the breakdown by count descending, then by code.
func (s Snapshot) SortedProblems() []ProblemCount {
	out := make([]ProblemCount, 0, len(s.ByProblem))
	for p, n := range s.ByProblem {
		out = append(out, ProblemCount{Problem: p, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Problem < out[j].Problem
	})
	return out
}
