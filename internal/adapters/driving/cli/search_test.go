package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ims-cli/internal/core/domain"
)

func TestSearchCmd_Flags(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
	for _, name := range []string{"target", "limit", "threshold", "json"} {
		assert.NotNil(t, searchCmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "t", searchCmd.Flags().Lookup("target").Shorthand)
	assert.Equal(t, "n", searchCmd.Flags().Lookup("limit").Shorthand)
}

func TestSearchCmd_NotConfigured(t *testing.T) {
	SetServices(nil)

	_, err := runCommand(t, "search", "bolt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "search service not configured")
}

func TestSearchCmd_RequiresQuery(t *testing.T) {
	setupTestServices(t)

	_, err := runCommand(t, "search")
	assert.Error(t, err)
}

func TestSearchCmd_Table(t *testing.T) {
	setupTestServices(t)

	out, err := runCommand(t, "search", "hex")
	require.NoError(t, err)

	rows := lines(out)
	require.Len(t, rows, 4)
	assert.Contains(t, rows[0], "Score")
	assert.Contains(t, rows[1], "item-1")
	assert.Contains(t, rows[1], "1.00")
	assert.Contains(t, rows[2], "item-2")
	assert.Contains(t, rows[3], "Washer")
	assert.Contains(t, rows[3], "0.67")
}

func TestSearchCmd_NoResults(t *testing.T) {
	setupTestServices(t)

	out, err := runCommand(t, "search", "zzz")
	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestSearchCmd_JSON(t *testing.T) {
	setupTestServices(t)

	out, err := runCommand(t, "search", "hex", "--json", "--limit", "2")
	require.NoError(t, err)

	var results []searchResultJSON
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "item-1", results[0].ID)
	assert.Equal(t, "row", results[0].Kind)
	assert.Equal(t, []string{"Hex bolt M6", "HB-06", "400"}, results[0].Cells)
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
}

func TestSearchCmd_Threshold(t *testing.T) {
	setupTestServices(t)

	out, err := runCommand(t, "search", "hex", "--json", "--threshold", "0.9")
	require.NoError(t, err)

	var results []searchResultJSON
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	assert.Len(t, results, 2)
}

func TestSearchCmd_Target(t *testing.T) {
	setupTestServices(t)

	out, err := runCommand(t, "search", "hex", "-t", "#empty")
	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestFilterCmd_Help(t *testing.T) {
	assert.Equal(t, "filter [query]", filterCmd.Use)
	assert.Contains(t, filterCmd.Long, "header rows")
}

func TestFilterCmd_Table(t *testing.T) {
	setupTestServices(t)

	out, err := runCommand(t, "filter", "bolt")
	require.NoError(t, err)

	requireLine(t, out, "*", "Hex bolt M6")
	assert.NotContains(t, out, "Washer")
	assert.Contains(t, out, "1 of 3 elements visible")
}

func TestFilterCmd_All(t *testing.T) {
	setupTestServices(t)

	out, err := runCommand(t, "filter", "bolt", "--all")
	require.NoError(t, err)

	requireLine(t, out, "-", "Washer 10mm")
	assert.Contains(t, out, "1 of 3 elements visible")
}

func TestFilterCmd_EmptyQueryShowsAll(t *testing.T) {
	setupTestServices(t)

	out, err := runCommand(t, "filter")
	require.NoError(t, err)
	assert.Contains(t, out, "3 of 3 elements visible")
	assert.NotContains(t, out, "*")
}

func TestFilterCmd_JSON(t *testing.T) {
	setupTestServices(t)

	out, err := runCommand(t, "filter", "NUT", "--json")
	require.NoError(t, err)

	var states []elementStateJSON
	require.NoError(t, json.Unmarshal([]byte(out), &states))
	require.Len(t, states, 3)
	assert.False(t, states[0].Visible)
	assert.True(t, states[1].Visible)
	assert.True(t, states[1].Highlighted)
	assert.False(t, states[2].Visible)
}

func TestFilterCmd_MissingTarget(t *testing.T) {
	setupTestServices(t)

	out, err := runCommand(t, "filter", "bolt", "--target", "#missing")
	require.NoError(t, err)
	assert.Contains(t, out, "0 of 0 elements visible")
}

func TestScoreCmd(t *testing.T) {
	setupTestServices(t)

	tests := []struct {
		name      string
		query     string
		candidate string
		want      string
	}{
		{"substring", "bolt", "Hex bolt M6", "1.0000 (match)"},
		{"partial", "hex", "Washer", "0.6667 (match)"},
		{"threshold is exclusive", "abcdefghij", "abc", "0.3000 (no match)"},
		{"no match", "xyz", "bolt", "0.0000 (no match)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCommand(t, "score", tt.query, tt.candidate)
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.TrimSpace(out))
		})
	}
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "0.67", formatScore(2.0/3.0))
	assert.Equal(t, "1.00", formatScore(domain.Score("", "anything")))
}
