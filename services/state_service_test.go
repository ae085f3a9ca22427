package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zing-keeper/internal/models"
)

func newTestState(t *testing.T) (*StateService, string) {
	t.Helper()
	dir := t.TempDir()
	svc := NewStateService(dir)
	require.NoError(t, svc.Load())
	return svc, dir
}

func TestStateLoadMissingFile(t *testing.T) {
	svc, _ := newTestState(t)
	assert.Equal(t, 0, svc.Count())
}

func TestStatePutGetRemove(t *testing.T) {
	svc, _ := newTestState(t)

	id := svc.Put(&models.PackageState{
		Repo:             "Zing-Dimmer",
		Owner:            "OnOffre",
		Type:             models.TypeIntegration,
		InstalledVersion: "1.0.0",
	})
	assert.Equal(t, "onoffre_zing_dimmer", id)
	assert.NotNil(t, svc.Get(id))
	assert.NotNil(t, svc.GetByRepo("OnOffre", "Zing-Dimmer"))

	assert.True(t, svc.Remove(id))
	assert.False(t, svc.Remove(id))
	assert.Nil(t, svc.Get(id))
}

func TestStateSaveAndReload(t *testing.T) {
	svc, dir := newTestState(t)
	svc.Put(&models.PackageState{Repo: "zing-dimmer", Owner: "onoffre", Type: models.TypeIntegration, InstalledVersion: "1.0.0"})
	svc.Put(&models.PackageState{Repo: "zing-card", Owner: "onoffre", Type: models.TypeLovelace, InstalledVersion: "0.3.0"})
	require.NoError(t, svc.Save())

	_, err := os.Stat(filepath.Join(dir, "storage", "packages.json"))
	require.NoError(t, err)

	reloaded := NewStateService(dir)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, 2, reloaded.Count())

	state := reloaded.Get("onoffre_zing_dimmer")
	require.NotNil(t, state)
	assert.Equal(t, "1.0.0", state.InstalledVersion)
}

func TestStateListSorted(t *testing.T) {
	svc, _ := newTestState(t)
	svc.Put(&models.PackageState{Repo: "zeta", Owner: "onoffre"})
	svc.Put(&models.PackageState{Repo: "alpha", Owner: "onoffre"})

	details := svc.List()
	require.Len(t, details, 2)
	assert.Equal(t, "onoffre_alpha", details[0].ID)
	assert.Equal(t, "onoffre_zeta", details[1].ID)
}
