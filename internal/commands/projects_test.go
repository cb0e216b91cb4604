package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TraceTutor/internal/catalog"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	projectsQuery, projectsLevel, projectsJSON = "", "all", false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLoadCatalog_MatchesBuiltIn(t *testing.T) {
	cat, err := loadCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, catalog.Default(), cat)
}

func TestProjectsCommand_Query(t *testing.T) {
	out, err := runRoot(t, "projects", "-q", "led")
	require.NoError(t, err)

	assert.Contains(t, out, "LED Blinker Circuit")
	assert.NotContains(t, out, "Motor Controller")
	assert.True(t, strings.HasPrefix(out, "ID"))
}

func TestProjectsCommand_LevelJSON(t *testing.T) {
	out, err := runRoot(t, "projects", "--level", "advanced", "--json")
	require.NoError(t, err)

	var result struct {
		Projects []catalog.Project `json:"projects"`
		Count    int               `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, len(result.Projects), result.Count)
	for _, p := range result.Projects {
		assert.Equal(t, "Advanced", p.Difficulty)
	}
}

func TestProjectsCommand_BadLevel(t *testing.T) {
	_, err := runRoot(t, "projects", "--level", "expert")
	assert.ErrorContains(t, err, "unknown level")
}

func TestFormatProjectsOutput_Empty(t *testing.T) {
	assert.Equal(t, "No projects match your search.\n", formatProjectsOutput(nil, false))
	assert.Contains(t, formatProjectsOutput([]catalog.Project{}, true), `"count": 0`)
}

func TestVersionCommand(t *testing.T) {
	SetVersionInfo("1.2.3", "abc123", "2026-01-01")
	out, err := runRoot(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "tracetutor 1.2.3 (commit abc123, built 2026-01-01)\n", out)
}
