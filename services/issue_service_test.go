package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zing-keeper/internal/config"
	"zing-keeper/internal/models"
)

func newTestIssues(t *testing.T) (*IssueService, string) {
	t.Helper()
	dir := t.TempDir()
	svc := NewIssueService(dir)
	require.NoError(t, svc.Load())
	return svc, dir
}

func TestCreateAndFixRestartIssue(t *testing.T) {
	svc, _ := newTestIssues(t)

	issue, err := svc.CreateRestartIssue("zing-dimmer")
	require.NoError(t, err)
	assert.Contains(t, issue.ID, "restart_zing-dimmer_")
	assert.True(t, issue.Fixable)
	assert.Equal(t, models.SeverityWarning, issue.Severity)
	assert.True(t, svc.HasRestartIssue("zing-dimmer"))

	fixed, err := svc.Fix(issue.ID)
	require.NoError(t, err)
	assert.Equal(t, issue.ID, fixed.ID)
	assert.False(t, svc.HasRestartIssue("zing-dimmer"))
	assert.Equal(t, 0, svc.Count())
}

func TestFixUnknownIssue(t *testing.T) {
	svc, _ := newTestIssues(t)
	_, err := svc.Fix("restart_ghost_00000000000000")
	assert.ErrorIs(t, err, config.ErrIssueNotFound)
}

func TestRemoveIssuesForPackage(t *testing.T) {
	svc, _ := newTestIssues(t)
	_, err := svc.CreateRestartIssue("zing-dimmer")
	require.NoError(t, err)
	_, err = svc.CreateRestartIssue("zing-card")
	require.NoError(t, err)

	require.NoError(t, svc.RemoveForPackage("zing-dimmer"))
	assert.False(t, svc.HasRestartIssue("zing-dimmer"))
	assert.True(t, svc.HasRestartIssue("zing-card"))
	assert.Equal(t, 1, svc.Count())
}

func TestIssuesPersist(t *testing.T) {
	svc, dir := newTestIssues(t)
	issue, err := svc.CreateRestartIssue("zing-dimmer")
	require.NoError(t, err)

	reloaded := NewIssueService(dir)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, 1, reloaded.Count())
	assert.True(t, reloaded.HasRestartIssue("zing-dimmer"))

	_, err = reloaded.Fix(issue.ID)
	require.NoError(t, err)
}
