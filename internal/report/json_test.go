package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamaslan/leakgate/internal/rules"
	"github.com/adamaslan/leakgate/internal/scan"
)

func TestNewRun(t *testing.T) {
	res := blockedResult()
	res.ConfigErrors = []rules.ConfigError{
		{RuleID: "bad-rule", Err: errors.New("missing pattern")},
	}
	meta := Meta{Version: "1.2.3", Repository: "/work/demo", Branch: "main"}

	run := NewRun(res, meta)

	_, err := uuid.Parse(run.RunID)
	require.NoError(t, err, "run id must be a valid uuid")
	assert.WithinDuration(t, time.Now().UTC(), run.CreatedAt, time.Minute)

	assert.Equal(t, "1.2.3", run.Version)
	assert.Equal(t, "/work/demo", run.Repository)
	assert.Equal(t, "main", run.Branch)
	assert.Equal(t, 3, run.FilesScanned)
	assert.Equal(t, 1, run.CriticalCount)
	assert.True(t, run.Blocked)
	assert.Equal(t, int64(4), run.DurationMS)
	require.Len(t, run.Findings, 1)
	require.Len(t, run.ConfigErrors, 1)
	assert.Equal(t, "bad-rule", run.ConfigErrors[0].RuleID)
	assert.Equal(t, "missing pattern", run.ConfigErrors[0].Error)
}

func TestNewRun_FreshIDs(t *testing.T) {
	res := &scan.Result{}
	a := NewRun(res, Meta{})
	b := NewRun(res, Meta{})
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	err := WriteJSON(&buf, blockedResult(), Meta{Version: "dev"})
	require.NoError(t, err)

	var run Run
	require.NoError(t, json.Unmarshal(buf.Bytes(), &run))

	assert.Equal(t, 1, run.CriticalCount)
	assert.True(t, run.Blocked)
	require.Len(t, run.Findings, 1)
	assert.Equal(t, "config/prod.yaml", run.Findings[0].File)
	assert.Equal(t, 14, run.Findings[0].Line)
	assert.Equal(t, rules.SeverityCritical, run.Findings[0].Severity)
}

func TestWriteJSON_EmptyFindings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, &scan.Result{FilesScanned: 2}, Meta{}))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	findings, ok := doc["findings"]
	require.True(t, ok, "findings key must always be present")
	assert.NotNil(t, findings, "findings must be [] not null")
	assert.Empty(t, findings)

	_, ok = doc["config_errors"]
	assert.False(t, ok, "config_errors omitted when empty")
}

func TestWriteJSON_SnippetOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, blockedResult(), Meta{}))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	findings := doc["findings"].([]any)
	entry := findings[0].(map[string]any)

	for key := range entry {
		assert.Contains(t, []string{"file", "line", "rule_id", "description", "severity", "snippet"}, key,
			"finding fields are limited to the display surface")
	}
}
