package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckerTrigger(t *testing.T) {
	manager, store, _, _ := newTestManager(t)
	_, err := manager.Install("onoffre_zing_dimmer")
	require.NoError(t, err)
	store.setLatest("zing-dimmer", "v1.2.0")

	c := NewChecker(manager, time.Hour)
	results := c.Trigger()
	require.Len(t, results, 1)
	assert.True(t, results[0].UpdateAvailable)

	status := c.Status()
	assert.Equal(t, "idle", status.Status)
	assert.Equal(t, 1, status.PackagesCount)
	assert.Equal(t, 1, status.UpdatesAvailable)
	assert.False(t, status.LastCheckTime.IsZero())
	assert.Equal(t, time.Hour, status.NextCheckTime.Sub(status.LastCheckTime))
}

func TestCheckerStatusBeforeFirstRun(t *testing.T) {
	manager, _, _, _ := newTestManager(t)
	c := NewChecker(manager, time.Hour)

	status := c.Status()
	assert.Equal(t, "idle", status.Status)
	assert.True(t, status.LastCheckTime.IsZero())
	assert.Equal(t, 0, status.UpdatesAvailable)
}
