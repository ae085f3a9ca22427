package services

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"zing-keeper/internal/gitea"
	"zing-keeper/internal/logger"
	"zing-keeper/internal/models"
)

const catalogFileName = "store_list.yaml"

/**
 * Store catalog (share/store_list.yaml)
 * @description
 * - The catalog lists every package the store offers
 * - Ships with the keeper and can be refreshed from the store server
 * - The entry list is guarded; Refresh swaps it while readers may be listing
 */
type CatalogService struct {
	mu           sync.RWMutex
	path         string
	defaultOwner string
	entries      []models.CatalogEntry
}

/**
 * Create new catalog service backed by <baseDir>/share/store_list.yaml
 * @param {string} defaultOwner - Owner applied to entries without one
 */
func NewCatalogService(baseDir, defaultOwner string) *CatalogService {
	return &CatalogService{
		path:         filepath.Join(baseDir, "share", catalogFileName),
		defaultOwner: defaultOwner,
	}
}

/**
 * Load the catalog from disk
 * @description
 * - Missing file yields an empty catalog
 * - Entries without a repo are skipped with a warning
 */
func (c *CatalogService) Load() error {
	bytes, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warnf("Store catalog not found: %s", c.path)
			c.mu.Lock()
			c.entries = nil
			c.mu.Unlock()
			return nil
		}
		return fmt.Errorf("load '%s' failed: %v", c.path, err)
	}
	return c.parse(bytes)
}

func (c *CatalogService) parse(bytes []byte) error {
	var catalog models.Catalog
	if err := yaml.Unmarshal(bytes, &catalog); err != nil {
		return fmt.Errorf("unmarshal '%s' failed: %v", c.path, err)
	}
	entries := make([]models.CatalogEntry, 0, len(catalog.Packages))
	for _, entry := range catalog.Packages {
		if entry.Repo == "" {
			logger.Warnf("Skipping catalog entry without repo: %q", entry.Name)
			continue
		}
		if entry.Owner == "" {
			entry.Owner = c.defaultOwner
		}
		if entry.Type == "" {
			entry.Type = string(models.TypeIntegration)
		}
		entries = append(entries, entry)
	}
	c.mu.Lock()
	c.entries = entries
	c.mu.Unlock()
	logger.Infof("Loaded %d packages from store catalog", len(entries))
	return nil
}

/**
 * Refresh the catalog from the store server and rewrite the local file
 * @param {gitea.Client} client - Store client
 * @param {string} owner - Owner of the catalog repository
 * @param {string} repo - Catalog repository name
 * @returns {error} Returns error when download or parsing fails
 * @description
 * - Fetches store_list.yaml from the catalog repository default branch
 * - The local file is only replaced after the new content parses
 */
func (c *CatalogService) Refresh(client *gitea.Client, owner, repo string) error {
	repoInfo, err := client.GetRepo(owner, repo)
	if err != nil {
		return fmt.Errorf("fetch catalog repository failed: %v", err)
	}
	ref := repoInfo.DefaultBranch
	if ref == "" {
		ref = "main"
	}
	bytes, err := client.GetFileContent(owner, repo, catalogFileName, ref)
	if err != nil {
		return fmt.Errorf("fetch '%s' failed: %v", catalogFileName, err)
	}
	if err := c.parse(bytes); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(c.path, bytes, 0644); err != nil {
		return fmt.Errorf("write '%s' failed: %v", c.path, err)
	}
	logger.Infof("Store catalog refreshed: %d packages", len(c.List()))
	return nil
}

/**
 * List all catalog entries
 */
func (c *CatalogService) List() []models.CatalogEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries
}

/**
 * Get a catalog entry by owner and repo, nil when absent
 */
func (c *CatalogService) Get(owner, repo string) *models.CatalogEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	want := models.PackageID(owner, repo)
	for i := range c.entries {
		if models.PackageID(c.entries[i].Owner, c.entries[i].Repo) == want {
			return &c.entries[i]
		}
	}
	return nil
}

/**
 * Get a catalog entry by package id, nil when absent
 */
func (c *CatalogService) GetByID(id string) *models.CatalogEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.entries {
		if models.PackageID(c.entries[i].Owner, c.entries[i].Repo) == id {
			return &c.entries[i]
		}
	}
	return nil
}
