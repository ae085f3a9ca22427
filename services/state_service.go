package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"zing-keeper/internal/logger"
	"zing-keeper/internal/models"
)

/**
 * Persisted package state (storage/packages.json)
 * @description
 * - One JSON document keyed by package id
 * - Saved with a temp-file rename so a crash never truncates the state
 * - The map is guarded so HTTP read handlers can run during an install
 */
type StateService struct {
	mu       sync.RWMutex
	path     string
	packages map[string]*models.PackageState
}

type stateDocument struct {
	Packages map[string]*models.PackageState `json:"packages"`
}

/**
 * Create new state service backed by <baseDir>/storage/packages.json
 */
func NewStateService(baseDir string) *StateService {
	return &StateService{
		path:     filepath.Join(baseDir, "storage", "packages.json"),
		packages: make(map[string]*models.PackageState),
	}
}

/**
 * Load tracked packages from storage
 * @returns {error} Returns error on unreadable or corrupt state file
 * @description
 * - A missing state file yields an empty package set, not an error
 */
func (s *StateService) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bytes, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("No tracked packages found")
			s.packages = make(map[string]*models.PackageState)
			return nil
		}
		return fmt.Errorf("load '%s' failed: %v", s.path, err)
	}
	var doc stateDocument
	if err := json.Unmarshal(bytes, &doc); err != nil {
		return fmt.Errorf("unmarshal '%s' failed: %v", s.path, err)
	}
	if doc.Packages == nil {
		doc.Packages = make(map[string]*models.PackageState)
	}
	s.packages = doc.Packages
	logger.Infof("Loaded %d tracked packages", len(s.packages))
	return nil
}

/**
 * Save tracked packages to storage
 * @description
 * - Writes to a temp file in the same directory, then renames over the target
 */
func (s *StateService) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, err := json.MarshalIndent(stateDocument{Packages: s.packages}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("MkdirAll('%s') error: %v", filepath.Dir(s.path), err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write '%s' failed: %v", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename '%s' failed: %v", tmp, err)
	}
	return nil
}

/**
 * Get package state by id, nil when not tracked
 */
func (s *StateService) Get(id string) *models.PackageState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.packages[id]
}

/**
 * Get package state by owner and repo name
 */
func (s *StateService) GetByRepo(owner, repo string) *models.PackageState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.packages[models.PackageID(owner, repo)]
}

/**
 * Put package state under its canonical id
 */
func (s *StateService) Put(state *models.PackageState) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := models.PackageID(state.Owner, state.Repo)
	s.packages[id] = state
	return id
}

/**
 * Remove a tracked package, reporting whether it existed
 */
func (s *StateService) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.packages[id]; !ok {
		return false
	}
	delete(s.packages, id)
	return true
}

/**
 * List all tracked packages sorted by id
 */
func (s *StateService) List() []models.PackageDetail {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.packages))
	for id := range s.packages {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	details := make([]models.PackageDetail, 0, len(ids))
	for _, id := range ids {
		details = append(details, models.PackageDetail{ID: id, State: *s.packages[id]})
	}
	return details
}

/**
 * Count of tracked packages
 */
func (s *StateService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.packages)
}
