package services

import (
	"archive/zip"
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zing-keeper/internal/config"
	"zing-keeper/internal/gitea"
	"zing-keeper/internal/models"
)

const managerCatalogYaml = `packages:
  - name: Zing Dimmer
    repo: zing-dimmer
    type: integration
    domain: zing_dimmer
  - name: Zing Card
    repo: zing-card
    type: lovelace-card
  - name: Zing Blueprints
    repo: zing-blueprints
    type: blueprint
  - name: Zing Asset
    repo: zing-asset
    type: integration
    domain: zing_asset
    mode: asset
`

func makeZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// fakeStore simulates the Gitea store server for manager tests
type fakeStore struct {
	mu              sync.Mutex
	latest          map[string]string
	zips            map[string][]byte
	downloadAccepts []string
}

func (f *fakeStore) acceptHeaders() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.downloadAccepts...)
}

func (f *fakeStore) setLatest(repo, tag string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.latest[repo] = tag
}

func (f *fakeStore) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		path := r.URL.Path

		switch {
		case strings.HasSuffix(path, "/releases/latest"):
			repo := strings.TrimSuffix(strings.TrimPrefix(path, "/api/v1/repos/onoffre/"), "/releases/latest")
			tag, ok := f.latest[repo]
			if !ok {
				w.WriteHeader(404)
				return
			}
			f.writeRelease(w, r, repo, tag)

		case strings.Contains(path, "/releases/tags/"):
			parts := strings.Split(path, "/")
			repo := parts[5]
			tag := parts[len(parts)-1]
			f.writeRelease(w, r, repo, tag)

		case strings.Contains(path, "/archive/"):
			parts := strings.Split(path, "/")
			repo := parts[5]
			data, ok := f.zips[repo]
			if !ok {
				w.WriteHeader(404)
				return
			}
			f.downloadAccepts = append(f.downloadAccepts, r.Header.Get("Accept"))
			w.Write(data)

		case strings.HasPrefix(path, "/downloads/"):
			repo := strings.TrimSuffix(strings.TrimPrefix(path, "/downloads/"), ".zip")
			data, ok := f.zips[repo]
			if !ok {
				w.WriteHeader(404)
				return
			}
			f.downloadAccepts = append(f.downloadAccepts, r.Header.Get("Accept"))
			w.Write(data)

		default:
			w.WriteHeader(404)
		}
	}
}

func (f *fakeStore) writeRelease(w http.ResponseWriter, r *http.Request, repo, tag string) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w,
		`{"tag_name":"%s","name":"Release %s","body":"notes","assets":[{"name":"%s.zip","browser_download_url":"http://%s/downloads/%s.zip"}]}`,
		tag, tag, repo, r.Host, repo)
}

func newTestManager(t *testing.T) (*PackageManager, *fakeStore, string, string) {
	t.Helper()
	store := &fakeStore{
		latest: map[string]string{
			"zing-dimmer": "v1.1.0",
			"zing-card":   "v0.3.0",
			"zing-asset":  "v2.0.0",
		},
		zips: map[string][]byte{
			"zing-dimmer": makeZip(t, map[string]string{
				"zing-dimmer/custom_components/zing_dimmer/manifest.json": `{"domain":"zing_dimmer","version":"1.1.0"}`,
				"zing-dimmer/custom_components/zing_dimmer/__init__.py":   "",
			}),
			"zing-card": makeZip(t, map[string]string{
				"zing-card/dist/zing-card.js": "card",
				"zing-card/README.md":         "readme",
			}),
			"zing-blueprints": makeZip(t, map[string]string{
				"zing-blueprints/blueprints/automation/motion.yaml": "blueprint",
			}),
			"zing-asset": makeZip(t, map[string]string{
				"zing-asset/custom_components/zing_asset/manifest.json": `{"domain":"zing_asset","version":"2.0.0"}`,
			}),
		},
	}
	// Blueprints repo has no release; zipball resolution falls back to the
	// default branch.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/repos/onoffre/zing-blueprints" {
			fmt.Fprint(w, `{"name":"zing-blueprints","default_branch":"main"}`)
			return
		}
		store.handler()(w, r)
	}))
	t.Cleanup(srv.Close)

	baseDir := t.TempDir()
	hubDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(baseDir, "share"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(baseDir, "share", "store_list.yaml"), []byte(managerCatalogYaml), 0644))

	client := gitea.NewClient(srv.URL, "")
	manager := NewPackageManager(client,
		NewCatalogService(baseDir, "onoffre"),
		NewStateService(baseDir),
		NewIssueService(baseDir),
		baseDir, hubDir)
	require.NoError(t, manager.Init())
	return manager, store, baseDir, hubDir
}

func TestInstallIntegration(t *testing.T) {
	manager, _, _, hubDir := newTestManager(t)

	detail, err := manager.Install("onoffre_zing_dimmer")
	require.NoError(t, err)
	assert.Equal(t, "onoffre_zing_dimmer", detail.ID)
	assert.Equal(t, "v1.1.0", detail.State.InstalledVersion)
	assert.True(t, detail.State.WaitingRestart)

	_, err = os.Stat(filepath.Join(hubDir, "custom_components", "zing_dimmer", "manifest.json"))
	require.NoError(t, err)

	// An integration install raises a fixable restart issue.
	require.True(t, manager.Issues().HasRestartIssue("zing-dimmer"))
}

func TestInstallUnknownPackage(t *testing.T) {
	manager, _, _, _ := newTestManager(t)
	_, err := manager.Install("onoffre_ghost")
	assert.ErrorIs(t, err, config.ErrPackageNotFound)
}

func TestInstallLovelaceCard(t *testing.T) {
	manager, _, _, hubDir := newTestManager(t)

	detail, err := manager.Install("onoffre_zing_card")
	require.NoError(t, err)
	assert.False(t, detail.State.WaitingRestart)
	assert.Equal(t, 0, manager.Issues().Count())

	content, err := os.ReadFile(filepath.Join(hubDir, "www", "community", "zing-card", "zing-card.js"))
	require.NoError(t, err)
	assert.Equal(t, "card", string(content))
	_, err = os.Stat(filepath.Join(hubDir, "www", "community", "zing-card", "README.md"))
	assert.True(t, os.IsNotExist(err))
}

func TestInstallBlueprint(t *testing.T) {
	manager, _, _, hubDir := newTestManager(t)

	detail, err := manager.Install("onoffre_zing_blueprints")
	require.NoError(t, err)
	assert.Equal(t, "main", detail.State.InstalledVersion)

	_, err = os.Stat(filepath.Join(hubDir, "blueprints", "zing-blueprints", "automation", "motion.yaml"))
	require.NoError(t, err)
}

func TestInstallAssetMode(t *testing.T) {
	manager, _, _, hubDir := newTestManager(t)

	detail, err := manager.Install("onoffre_zing_asset")
	require.NoError(t, err)
	assert.Equal(t, "v2.0.0", detail.State.InstalledVersion)

	_, err = os.Stat(filepath.Join(hubDir, "custom_components", "zing_asset", "manifest.json"))
	require.NoError(t, err)
}

func TestCheckUpdates(t *testing.T) {
	manager, store, _, _ := newTestManager(t)
	_, err := manager.Install("onoffre_zing_dimmer")
	require.NoError(t, err)

	store.setLatest("zing-dimmer", "v1.2.0")

	results, updates := manager.CheckUpdates()
	require.Len(t, results, 1)
	assert.Equal(t, 1, updates)
	assert.True(t, results[0].UpdateAvailable)
	assert.Equal(t, "v1.2.0", results[0].LatestVersion)

	state := manager.State().Get("onoffre_zing_dimmer")
	assert.Equal(t, "v1.2.0", state.LatestVersion)
	assert.NotEmpty(t, state.LastCheck)
	assert.Equal(t, "Release v1.2.0", state.ReleaseSummary)
}

func TestCheckUpdatesSkipsForeignSources(t *testing.T) {
	manager, _, _, _ := newTestManager(t)
	manager.State().Put(&models.PackageState{
		Repo: "upstream-card", Owner: "other", Type: models.TypeLovelace,
		InstalledVersion: "1.0.0", Source: models.SourceGithub,
	})
	manager.State().Put(&models.PackageState{
		Repo: "hacs-thing", Owner: "other", Type: models.TypeIntegration,
		InstalledVersion: "1.0.0", Source: models.SourceHacs,
	})

	results, updates := manager.CheckUpdates()
	require.Len(t, results, 2)
	assert.Equal(t, 0, updates)
	for _, result := range results {
		assert.True(t, result.Skipped)
	}
}

func TestCheckUpdatesAdvancesLastCheckOnError(t *testing.T) {
	manager, store, _, _ := newTestManager(t)
	_, err := manager.Install("onoffre_zing_dimmer")
	require.NoError(t, err)

	// Repo vanished from the store; the sweep must not error out and the
	// check timestamp still advances.
	store.mu.Lock()
	delete(store.latest, "zing-dimmer")
	store.mu.Unlock()

	results, updates := manager.CheckUpdates()
	require.Len(t, results, 1)
	assert.Equal(t, 0, updates)
	assert.Empty(t, results[0].Error)
	assert.NotEmpty(t, manager.State().Get("onoffre_zing_dimmer").LastCheck)
}

func TestUpgradeRefreshesInstall(t *testing.T) {
	manager, store, _, _ := newTestManager(t)
	detail, err := manager.Install("onoffre_zing_dimmer")
	require.NoError(t, err)
	installDate := detail.State.InstallDate

	store.setLatest("zing-dimmer", "v1.2.0")
	upgraded, err := manager.Upgrade("onoffre_zing_dimmer", "")
	require.NoError(t, err)
	assert.Equal(t, "v1.2.0", upgraded.State.InstalledVersion)
	assert.False(t, upgraded.State.UpdateAvailable)
	assert.Equal(t, installDate, upgraded.State.InstallDate)
}

func TestUpgradeRejectsHacsPackage(t *testing.T) {
	manager, _, _, _ := newTestManager(t)
	manager.State().Put(&models.PackageState{
		Repo: "hacs-thing", Owner: "other", Type: models.TypeIntegration,
		InstalledVersion: "1.0.0", Source: models.SourceHacs,
	})
	_, err := manager.Upgrade("other_hacs_thing", "")
	assert.Error(t, err)
}

func TestRemovePackage(t *testing.T) {
	manager, _, _, hubDir := newTestManager(t)
	_, err := manager.Install("onoffre_zing_dimmer")
	require.NoError(t, err)

	require.NoError(t, manager.Remove("onoffre_zing_dimmer"))

	_, err = os.Stat(filepath.Join(hubDir, "custom_components", "zing_dimmer"))
	assert.True(t, os.IsNotExist(err))
	assert.Nil(t, manager.State().Get("onoffre_zing_dimmer"))
	assert.Equal(t, 0, manager.Issues().Count())

	assert.ErrorIs(t, manager.Remove("onoffre_zing_dimmer"), config.ErrPackageNotFound)
}

func TestFixIssueClearsWaitingRestart(t *testing.T) {
	manager, _, _, _ := newTestManager(t)
	_, err := manager.Install("onoffre_zing_dimmer")
	require.NoError(t, err)

	issues := manager.Issues().List()
	require.Len(t, issues, 1)
	require.NoError(t, manager.FixIssue(issues[0].ID))

	state := manager.State().Get("onoffre_zing_dimmer")
	assert.False(t, state.WaitingRestart)
	assert.Equal(t, 0, manager.Issues().Count())

	assert.ErrorIs(t, manager.FixIssue(issues[0].ID), config.ErrIssueNotFound)
}

func TestListCatalogFlagsInstalled(t *testing.T) {
	manager, _, _, _ := newTestManager(t)
	_, err := manager.Install("onoffre_zing_card")
	require.NoError(t, err)

	items := manager.ListCatalog()
	require.Len(t, items, 4)
	for _, item := range items {
		if item.ID == "onoffre_zing_card" {
			assert.True(t, item.Installed)
			assert.Equal(t, "v0.3.0", item.Version)
		} else {
			assert.False(t, item.Installed)
		}
	}
}

func TestDownloadRequestsCarryNoJSONAccept(t *testing.T) {
	manager, store, _, _ := newTestManager(t)

	// Zipball download.
	_, err := manager.Install("onoffre_zing_dimmer")
	require.NoError(t, err)
	// Release asset download.
	_, err = manager.Install("onoffre_zing_asset")
	require.NoError(t, err)

	accepts := store.acceptHeaders()
	require.Len(t, accepts, 2)
	for _, accept := range accepts {
		assert.NotContains(t, accept, "application/json")
	}
}

func TestConcurrentReadsDuringMutations(t *testing.T) {
	manager, _, _, _ := newTestManager(t)

	// The HTTP surface reads state, issues and catalog without going through
	// the manager; those reads must be safe against a concurrent install or
	// remove mutating the underlying maps.
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				manager.Issues().List()
				manager.Issues().Count()
				manager.State().Count()
				manager.Catalog().List()
			}
		}
	}()

	for i := 0; i < 10; i++ {
		_, err := manager.Install("onoffre_zing_dimmer")
		require.NoError(t, err)
		require.NoError(t, manager.Remove("onoffre_zing_dimmer"))
	}
	close(done)
	wg.Wait()
}

func TestSyncPreinstalled(t *testing.T) {
	manager, _, baseDir, hubDir := newTestManager(t)

	// An integration dropped into the hub tree by hand gets adopted on the
	// next start; one listed in the HACS storage is marked hands-off.
	require.NoError(t, os.MkdirAll(filepath.Join(hubDir, "custom_components", "zing_dimmer"), 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(hubDir, "custom_components", "zing_dimmer", "manifest.json"),
		[]byte(`{"domain":"zing_dimmer","version":"0.9.0"}`), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(hubDir, "custom_components", "zing_asset"), 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(hubDir, "custom_components", "zing_asset", "manifest.json"),
		[]byte(`{"domain":"zing_asset","version":"2.0.0"}`), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(hubDir, ".storage"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(hubDir, ".storage", "hacs"),
		[]byte(`{"data":{"repositories":[{"category":"integration","installed":true,"domain":"zing_asset"}]}}`), 0644))

	require.NoError(t, manager.Init())

	dimmer := manager.State().Get("onoffre_zing_dimmer")
	require.NotNil(t, dimmer)
	assert.Equal(t, "0.9.0", dimmer.InstalledVersion)
	assert.Equal(t, models.SourceGitea, dimmer.Source)

	asset := manager.State().Get("onoffre_zing_asset")
	require.NotNil(t, asset)
	assert.Equal(t, models.SourceHacs, asset.Source)

	// Adoption survives a restart through the state file.
	reloaded := NewStateService(baseDir)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, 2, reloaded.Count())
}
