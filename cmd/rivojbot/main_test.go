package main

import (
	"bytes"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamshidbekman/rivojbot/internal/lead"
	"github.com/jamshidbekman/rivojbot/internal/stats"
)

func TestRootCommands(t *testing.T) {
	root := newRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"run", "stats", "export"})
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.NotEmpty(t, root.Version)
}

func sampleSnapshot() stats.Snapshot {
	return stats.Snapshot{
		Total:     3,
		Today:     1,
		ByRole:    map[lead.Role]int{lead.RoleIT: 2, lead.RoleBarber: 1},
		ByProblem: map[lead.Problem]int{lead.ProblemSales: 3},
	}
}

func TestWriteStatsText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeStats(&buf, sampleSnapshot(), false))
	out := buf.String()
	assert.Contains(t, out, "total: 3\ntoday: 1\n")
	assert.Contains(t, out, lead.RoleIT.Label())
	assert.Less(t, bytes.Index(buf.Bytes(), []byte(lead.RoleIT.Label())), bytes.Index(buf.Bytes(), []byte(lead.RoleBarber.Label())))
}

func TestWriteStatsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeStats(&buf, sampleSnapshot(), true))
	var got stats.Snapshot
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 2, got.ByRole[lead.RoleIT])
}
