package services

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zing-keeper/internal/gitea"
)

const testCatalogYaml = `packages:
  - name: Zing Dimmer
    repo: zing-dimmer
    type: integration
    domain: zing_dimmer
  - name: Zing Card
    repo: zing-card
    owner: community
    type: lovelace-card
  - name: Broken entry without repo
`

func encodeBase64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func writeTestCatalog(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "share"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "share", "store_list.yaml"), []byte(testCatalogYaml), 0644))
}

func TestCatalogLoad(t *testing.T) {
	dir := t.TempDir()
	writeTestCatalog(t, dir)

	svc := NewCatalogService(dir, "onoffre")
	require.NoError(t, svc.Load())

	// The repo-less entry is dropped, defaults are filled in.
	entries := svc.List()
	require.Len(t, entries, 2)
	assert.Equal(t, "onoffre", entries[0].Owner)
	assert.Equal(t, "community", entries[1].Owner)
	assert.Equal(t, "integration", entries[0].Type)
}

func TestCatalogLoadMissingFile(t *testing.T) {
	svc := NewCatalogService(t.TempDir(), "onoffre")
	require.NoError(t, svc.Load())
	assert.Empty(t, svc.List())
}

func TestCatalogLookup(t *testing.T) {
	dir := t.TempDir()
	writeTestCatalog(t, dir)
	svc := NewCatalogService(dir, "onoffre")
	require.NoError(t, svc.Load())

	require.NotNil(t, svc.Get("onoffre", "zing-dimmer"))
	require.NotNil(t, svc.GetByID("community_zing_card"))
	assert.Nil(t, svc.GetByID("onoffre_missing"))
}

func TestCatalogRefresh(t *testing.T) {
	encoded := encodeBase64(testCatalogYaml)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/repos/onoffre/zing-store":
			fmt.Fprint(w, `{"name":"zing-store","default_branch":"main"}`)
		case "/api/v1/repos/onoffre/zing-store/contents/store_list.yaml":
			fmt.Fprintf(w, `{"name":"store_list.yaml","type":"file","content":"%s"}`, encoded)
		default:
			w.WriteHeader(404)
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	svc := NewCatalogService(dir, "onoffre")
	require.NoError(t, svc.Load())
	assert.Empty(t, svc.List())

	client := gitea.NewClient(srv.URL, "")
	require.NoError(t, svc.Refresh(client, "onoffre", "zing-store"))
	assert.Len(t, svc.List(), 2)

	// The refreshed catalog is persisted for the next start.
	reloaded := NewCatalogService(dir, "onoffre")
	require.NoError(t, reloaded.Load())
	assert.Len(t, reloaded.List(), 2)
}

func TestCatalogRefreshFailureKeepsLocalFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
	}))
	defer srv.Close()

	dir := t.TempDir()
	writeTestCatalog(t, dir)
	svc := NewCatalogService(dir, "onoffre")
	require.NoError(t, svc.Load())

	client := gitea.NewClient(srv.URL, "")
	assert.Error(t, svc.Refresh(client, "onoffre", "zing-store"))

	reloaded := NewCatalogService(dir, "onoffre")
	require.NoError(t, reloaded.Load())
	assert.Len(t, reloaded.List(), 2)
}
