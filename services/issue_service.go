package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"zing-keeper/internal/config"
	"zing-keeper/internal/logger"
	"zing-keeper/internal/models"
)

const restartIssueKey = "integration_restart_required"

/**
 * Repair issue registry (storage/issues.json)
 * @description
 * - Holds fixable issues the hub surfaces to the user
 * - The only issue kind today is the restart prompt raised after an
 *   integration install or update
 * - The map is guarded so HTTP read handlers can run during an install
 */
type IssueService struct {
	mu     sync.RWMutex
	path   string
	issues map[string]*models.Issue
}

/**
 * Create new issue service backed by <baseDir>/storage/issues.json
 */
func NewIssueService(baseDir string) *IssueService {
	return &IssueService{
		path:   filepath.Join(baseDir, "storage", "issues.json"),
		issues: make(map[string]*models.Issue),
	}
}

/**
 * Load issues from storage; a missing file yields an empty registry
 */
func (s *IssueService) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bytes, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.issues = make(map[string]*models.Issue)
			return nil
		}
		return fmt.Errorf("load '%s' failed: %v", s.path, err)
	}
	var issues map[string]*models.Issue
	if err := json.Unmarshal(bytes, &issues); err != nil {
		return fmt.Errorf("unmarshal '%s' failed: %v", s.path, err)
	}
	if issues == nil {
		issues = make(map[string]*models.Issue)
	}
	s.issues = issues
	return nil
}

// save writes the registry; callers must hold the lock
func (s *IssueService) save() error {
	data, err := json.MarshalIndent(s.issues, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

/**
 * Raise a fixable restart issue for an integration
 * @param {string} repo - Repository name of the integration
 * @returns {models.Issue} The created issue
 * @description
 * - Issue id carries a timestamp so repeated installs raise distinct issues
 */
func (s *IssueService) CreateRestartIssue(repo string) (*models.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	issue := &models.Issue{
		ID:        fmt.Sprintf("restart_%s_%s", repo, now.Format("20060102150405")),
		Key:       restartIssueKey,
		Severity:  models.SeverityWarning,
		Fixable:   true,
		Package:   repo,
		CreatedAt: now,
	}
	s.issues[issue.ID] = issue
	if err := s.save(); err != nil {
		return nil, err
	}
	logger.Infof("Created restart issue for '%s'", repo)
	return issue, nil
}

/**
 * Fix an issue by id
 * @returns {models.Issue} The removed issue
 * @returns {error} config.ErrIssueNotFound when the id is unknown
 */
func (s *IssueService) Fix(id string) (*models.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	issue, ok := s.issues[id]
	if !ok {
		return nil, config.ErrIssueNotFound
	}
	delete(s.issues, id)
	if err := s.save(); err != nil {
		return nil, err
	}
	logger.Infof("Issue '%s' fixed", id)
	return issue, nil
}

/**
 * Remove all issues raised for a package's repo
 * @description
 * - Used when the package is uninstalled
 */
func (s *IssueService) RemoveForPackage(repo string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := false
	for id, issue := range s.issues {
		if issue.Package == repo {
			delete(s.issues, id)
			removed = true
		}
	}
	if !removed {
		return nil
	}
	return s.save()
}

/**
 * Report whether a repo still has a pending restart issue
 */
func (s *IssueService) HasRestartIssue(repo string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, issue := range s.issues {
		if issue.Package == repo && issue.Key == restartIssueKey {
			return true
		}
	}
	return false
}

/**
 * List all issues sorted by creation time
 */
func (s *IssueService) List() []models.Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	issues := make([]models.Issue, 0, len(s.issues))
	for _, issue := range s.issues {
		issues = append(issues, *issue)
	}
	sort.Slice(issues, func(i, j int) bool {
		return issues[i].CreatedAt.Before(issues[j].CreatedAt)
	})
	return issues
}

/**
 * Count of pending issues
 */
func (s *IssueService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.issues)
}
