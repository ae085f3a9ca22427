package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"zing-keeper/internal/config"
	"zing-keeper/internal/env"
	"zing-keeper/internal/gitea"
	"zing-keeper/internal/logger"
	"zing-keeper/internal/models"
	"zing-keeper/internal/utils"
)

/**
 * Package manager orchestrates the store catalog, the persisted package
 * state, the issue registry and the hub file tree
 */
type PackageManager struct {
	mu      sync.Mutex
	client  *gitea.Client
	catalog *CatalogService
	state   *StateService
	issues  *IssueService
	baseDir string
	hubDir  string
}

var packageManager *PackageManager

/**
 * Get the process-wide package manager instance
 * @returns {PackageManager} Returns the package manager singleton
 * @description
 * - Built from the application configuration on first use
 */
func GetPackageManager() *PackageManager {
	if packageManager != nil {
		return packageManager
	}
	cfg := &config.Config
	client := gitea.NewClient(cfg.Store.BaseUrl, cfg.Store.Token)
	packageManager = NewPackageManager(client,
		NewCatalogService(env.ZingDir, cfg.Store.Owner),
		NewStateService(env.ZingDir),
		NewIssueService(env.ZingDir),
		env.ZingDir, cfg.Hub.Dir)
	return packageManager
}

/**
 * Get the store client used by the package manager singleton
 */
func GetStoreClient() *gitea.Client {
	return GetPackageManager().client
}

/**
 * Create new package manager instance
 * @param {gitea.Client} client - Store client
 * @param {string} baseDir - Keeper data directory (cache, storage)
 * @param {string} hubDir - Hub config tree packages are installed into
 */
func NewPackageManager(client *gitea.Client, catalog *CatalogService,
	state *StateService, issues *IssueService, baseDir, hubDir string) *PackageManager {
	return &PackageManager{
		client:  client,
		catalog: catalog,
		state:   state,
		issues:  issues,
		baseDir: baseDir,
		hubDir:  hubDir,
	}
}

/**
 * Initialize the manager: load catalog, state and issues, then adopt
 * integrations already present in the hub tree
 */
func (pm *PackageManager) Init() error {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	if err := pm.catalog.Load(); err != nil {
		return err
	}
	if err := pm.state.Load(); err != nil {
		return err
	}
	if err := pm.issues.Load(); err != nil {
		return err
	}
	pm.syncPreinstalled()
	return nil
}

func (pm *PackageManager) Catalog() *CatalogService { return pm.catalog }
func (pm *PackageManager) State() *StateService     { return pm.state }
func (pm *PackageManager) Issues() *IssueService    { return pm.issues }

/**
 * List tracked packages
 */
func (pm *PackageManager) List() []models.PackageDetail {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return pm.state.List()
}

/**
 * List the catalog with per-entry installed state
 */
func (pm *PackageManager) ListCatalog() []models.CatalogItem {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	items := make([]models.CatalogItem, 0, len(pm.catalog.List()))
	for _, entry := range pm.catalog.List() {
		id := models.PackageID(entry.Owner, entry.Repo)
		item := models.CatalogItem{CatalogEntry: entry, ID: id}
		if state := pm.state.Get(id); state != nil {
			item.Installed = true
			item.Version = state.InstalledVersion
		}
		items = append(items, item)
	}
	return items
}

/**
 * Install a catalog package by id
 * @param {string} id - Package id (lowercased owner_repo)
 * @returns {models.PackageDetail} Installed package state
 * @returns {error} config.ErrPackageNotFound when the id is not in the catalog
 */
func (pm *PackageManager) Install(id string) (*models.PackageDetail, error) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	entry := pm.catalog.GetByID(id)
	if entry == nil {
		return nil, config.ErrPackageNotFound
	}
	return pm.installEntry(entry, "")
}

/**
 * Upgrade a tracked package to the latest (or a specific) version
 * @param {string} id - Package id
 * @param {string} tag - Target release tag, "" for latest
 * @returns {error} config.ErrPackageNotFound when the package is not tracked
 */
func (pm *PackageManager) Upgrade(id, tag string) (*models.PackageDetail, error) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	state := pm.state.Get(id)
	if state == nil {
		return nil, config.ErrPackageNotFound
	}
	if state.Source == models.SourceHacs {
		return nil, fmt.Errorf("package '%s' is managed by HACS", id)
	}
	entry := pm.catalog.GetByID(id)
	if entry == nil {
		// Package adopted from disk without a catalog entry; rebuild one
		// from its tracked state.
		entry = &models.CatalogEntry{
			Repo:      state.Repo,
			Owner:     state.Owner,
			Type:      string(state.Type),
			Mode:      string(state.Mode),
			AssetName: state.AssetName,
			Domain:    state.Domain,
			Source:    string(state.Source),
		}
	}
	return pm.installEntry(entry, tag)
}

/**
 * Download and install one package, then record it as tracked
 * @description
 * - Resolves the download URL (zipball first, release asset fallback)
 * - Extracts the archive and copies the package files into the hub tree
 * - Integration installs mark the package waiting-restart and raise a
 *   fixable restart issue
 * @private
 */
func (pm *PackageManager) installEntry(entry *models.CatalogEntry, tag string) (*models.PackageDetail, error) {
	url, version, err := pm.resolveDownload(entry, tag)
	if err != nil {
		return nil, fmt.Errorf("resolve download for '%s/%s' failed: %v", entry.Owner, entry.Repo, err)
	}
	logger.Infof("Installing package: %s/%s (type: %s, version: %s)", entry.Owner, entry.Repo, entry.Type, version)

	zipPath := filepath.Join(pm.baseDir, "package", fmt.Sprintf("%s-%s.zip", entry.Repo, version))
	if err := utils.GetFile(url, nil, nil, zipPath); err != nil {
		return nil, err
	}
	if info, err := os.Stat(zipPath); err == nil {
		RecordDownload(info.Size())
	}

	if err := pm.installFiles(entry, zipPath); err != nil {
		return nil, err
	}

	pkgType := models.PackageType(entry.Type)
	now := time.Now().Format(time.RFC3339)
	existing := pm.state.GetByRepo(entry.Owner, entry.Repo)

	state := &models.PackageState{
		Repo:             entry.Repo,
		Owner:            entry.Owner,
		Type:             pkgType,
		InstalledVersion: version,
		LatestVersion:    version,
		UpdateAvailable:  false,
		InstallDate:      now,
		LastUpdate:       now,
		Mode:             models.DownloadMode(entry.Mode),
		AssetName:        entry.AssetName,
		Domain:           entry.Domain,
		Source:           models.PackageSource(entry.Source),
	}
	if state.Source == "" {
		state.Source = models.SourceGitea
	}
	if existing != nil {
		state.InstallDate = existing.InstallDate
		state.LastCheck = existing.LastCheck
	}
	if pkgType == models.TypeIntegration {
		state.WaitingRestart = true
		if _, err := pm.issues.CreateRestartIssue(entry.Repo); err != nil {
			logger.Warnf("Could not create restart issue: %v", err)
		}
	}
	id := pm.state.Put(state)
	if err := pm.state.Save(); err != nil {
		return nil, err
	}
	RecordInstall(entry.Type)
	logger.Infof("Package %s/%s installed/updated to %s", entry.Owner, entry.Repo, version)
	return &models.PackageDetail{ID: id, State: *state}, nil
}

/**
 * Resolve the download URL and version for a package
 * @returns {string} Download URL
 * @returns {string} Version the URL resolves to (tag or branch name)
 * @description
 * - github source: GitHub API zipball of the tag (or default branch)
 * - Otherwise zipball of the latest release tag / default branch; when that
 *   fails, fall back to a release asset
 * @private
 */
func (pm *PackageManager) resolveDownload(entry *models.CatalogEntry, tag string) (string, string, error) {
	if entry.Source == string(models.SourceGithub) {
		ref := tag
		if ref == "" {
			ref = "main"
		}
		url := fmt.Sprintf("https://api.github.com/repos/%s/%s/zipball/%s", entry.Owner, entry.Repo, ref)
		return url, ref, nil
	}

	if entry.Mode != string(models.ModeAsset) {
		ref := tag
		var err error
		if ref == "" {
			ref, err = pm.client.ResolveZipballRef(entry.Owner, entry.Repo)
		}
		if err == nil {
			return pm.client.ArchiveZipURL(entry.Owner, entry.Repo, ref), ref, nil
		}
		logger.Debugf("Zipball method failed for %s/%s, trying release asset: %v", entry.Owner, entry.Repo, err)
	}

	resolvedTag := tag
	if resolvedTag == "" {
		latest, err := pm.client.GetLatestRelease(entry.Owner, entry.Repo)
		if err != nil {
			return "", "", err
		}
		resolvedTag = latest.TagName
		if resolvedTag == "" {
			resolvedTag = latest.Name
		}
		if resolvedTag == "" {
			return "", "", fmt.Errorf("could not determine latest release tag")
		}
	}
	release, err := pm.client.GetReleaseByTag(entry.Owner, entry.Repo, resolvedTag)
	if err != nil {
		return "", "", err
	}
	asset, err := gitea.PickAsset(release, entry.AssetName)
	if err != nil {
		return "", "", err
	}
	return asset.BrowserDownloadURL, resolvedTag, nil
}

/**
 * Extract the downloaded archive and place its files in the hub tree
 * @private
 */
func (pm *PackageManager) installFiles(entry *models.CatalogEntry, zipPath string) error {
	extractDir, err := os.MkdirTemp("", "zing-install-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(extractDir)

	if err := utils.ExtractZip(zipPath, extractDir); err != nil {
		return err
	}
	root, err := utils.ArchiveRoot(extractDir)
	if err != nil {
		return err
	}

	switch models.PackageType(entry.Type) {
	case models.TypeIntegration:
		domain := entry.Domain
		if domain == "" {
			domain = strings.ReplaceAll(entry.Repo, "-", "_")
		}
		src := utils.FindDir(root, "custom_components/"+domain)
		if src == "" {
			return fmt.Errorf("archive of '%s' has no custom_components/%s directory", entry.Repo, domain)
		}
		return utils.CopyTree(src, filepath.Join(pm.hubDir, "custom_components", domain))

	case models.TypeLovelace:
		files := utils.ListFilesByExt(filepath.Join(root, "dist"), ".js")
		if len(files) == 0 {
			files = utils.ListFilesByExt(root, ".js")
		}
		if len(files) == 0 {
			return fmt.Errorf("archive of '%s' contains no dashboard card files", entry.Repo)
		}
		return utils.CopyFiles(files, filepath.Join(pm.hubDir, "www", "community", entry.Repo))

	case models.TypeBlueprint:
		src := utils.FindDir(root, "blueprints")
		if src == "" {
			src = root
		}
		return utils.CopyTree(src, filepath.Join(pm.hubDir, "blueprints", entry.Repo))

	default:
		return fmt.Errorf("unknown package type '%s'", entry.Type)
	}
}

/**
 * Uninstall a tracked package
 * @param {string} id - Package id
 * @returns {error} config.ErrPackageNotFound when the package is not tracked
 * @description
 * - Removes the installed files, pending issues and the state record
 * - Already-missing files are not an error
 */
func (pm *PackageManager) Remove(id string) error {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	state := pm.state.Get(id)
	if state == nil {
		return config.ErrPackageNotFound
	}
	target := pm.targetDir(state)
	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("remove '%s' failed: %v", target, err)
	}
	if err := pm.issues.RemoveForPackage(state.Repo); err != nil {
		logger.Warnf("Could not remove issues for '%s': %v", state.Repo, err)
	}
	pm.state.Remove(id)
	if err := pm.state.Save(); err != nil {
		return err
	}
	logger.Infof("Package '%s' fully removed", id)
	return nil
}

func (pm *PackageManager) targetDir(state *models.PackageState) string {
	switch state.Type {
	case models.TypeLovelace:
		return filepath.Join(pm.hubDir, "www", "community", state.Repo)
	case models.TypeBlueprint:
		return filepath.Join(pm.hubDir, "blueprints", state.Repo)
	default:
		domain := state.Domain
		if domain == "" {
			domain = strings.ReplaceAll(state.Repo, "-", "_")
		}
		return filepath.Join(pm.hubDir, "custom_components", domain)
	}
}

/**
 * Check all tracked packages for updates
 * @returns {[]models.PackageCheckResult} Per-package results
 * @returns {int} Number of packages with an update available
 * @description
 * - github/hacs sourced packages are skipped
 * - 404/401 store responses are logged at debug level, other errors warn
 * - last-check always advances, state is saved after the sweep
 */
func (pm *PackageManager) CheckUpdates() ([]models.PackageCheckResult, int) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	details := pm.state.List()
	if len(details) == 0 {
		logger.Info("No packages tracked yet, skipping update check")
		return nil, 0
	}
	logger.Infof("Checking for updates for %d packages...", len(details))

	results := make([]models.PackageCheckResult, 0, len(details))
	updates := 0
	now := time.Now().Format(time.RFC3339)

	for _, detail := range details {
		state := pm.state.Get(detail.ID)
		result := models.PackageCheckResult{
			ID:               detail.ID,
			Repo:             state.Repo,
			Type:             string(state.Type),
			InstalledVersion: state.InstalledVersion,
			WaitingRestart:   state.WaitingRestart,
		}

		if state.Source == models.SourceGithub || state.Source == models.SourceHacs {
			logger.Debugf("Skipping update check for %s package: %s", state.Source, detail.ID)
			result.Skipped = true
			result.LatestVersion = state.LatestVersion
			result.UpdateAvailable = state.UpdateAvailable
			results = append(results, result)
			continue
		}

		latest, err := pm.client.GetLatestRelease(state.Owner, state.Repo)
		if err != nil {
			switch {
			case gitea.IsNotFound(err):
				logger.Debugf("Repo %s/%s not found on store server", state.Owner, state.Repo)
			case gitea.IsUnauthorized(err):
				logger.Debugf("Auth failed for %s/%s", state.Owner, state.Repo)
			default:
				logger.Warnf("Error checking updates for %s: %v", detail.ID, err)
				result.Error = err.Error()
			}
			state.LastCheck = now
			results = append(results, result)
			continue
		}

		latestVersion := latest.TagName
		if latestVersion == "" {
			latestVersion = "unknown"
		}
		state.LatestVersion = latestVersion
		state.UpdateAvailable = utils.UpdateAvailable(state.InstalledVersion, latestVersion)
		state.LastCheck = now
		state.ReleaseSummary = latest.Name
		state.ReleaseNotes = latest.Body

		result.LatestVersion = latestVersion
		result.UpdateAvailable = state.UpdateAvailable
		results = append(results, result)

		if state.UpdateAvailable {
			updates++
			logger.Infof("Update available for %s: %s -> %s", state.Repo, state.InstalledVersion, latestVersion)
		} else {
			logger.Debugf("No update available for %s", state.Repo)
		}
	}

	if err := pm.state.Save(); err != nil {
		logger.Errorf("Save package state failed: %v", err)
	}
	RecordCheckSweep(updates)
	logger.Info("Update check complete")
	return results, updates
}

/**
 * Fix an issue and clear the package's waiting-restart flag
 * @param {string} id - Issue id
 * @returns {error} config.ErrIssueNotFound when the id is unknown
 */
func (pm *PackageManager) FixIssue(id string) error {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	issue, err := pm.issues.Fix(id)
	if err != nil {
		return err
	}
	if pm.issues.HasRestartIssue(issue.Package) {
		return nil
	}
	for _, detail := range pm.state.List() {
		if detail.State.Repo == issue.Package && detail.State.WaitingRestart {
			state := pm.state.Get(detail.ID)
			state.WaitingRestart = false
		}
	}
	return pm.state.Save()
}

/**
 * Adopt integrations already present in the hub tree
 * @description
 * - Scans <hub>/custom_components/<domain>/manifest.json for versions
 * - Catalog-matched, untracked integrations are recorded as installed
 * - Packages found in the hub's HACS storage get source "hacs" so update
 *   checks leave them alone
 * @private
 */
func (pm *PackageManager) syncPreinstalled() {
	installed := scanCustomComponents(pm.hubDir)
	if len(installed) == 0 {
		return
	}
	hacsDomains := loadHacsIntegrations(pm.hubDir)

	adopted := 0
	now := time.Now().Format(time.RFC3339)
	for _, entry := range pm.catalog.List() {
		if models.PackageType(entry.Type) != models.TypeIntegration {
			continue
		}
		domain := matchInstalledDomain(installed, entry.Repo, entry.Domain)
		if domain == "" {
			continue
		}
		if pm.state.GetByRepo(entry.Owner, entry.Repo) != nil {
			continue
		}
		source := models.PackageSource(entry.Source)
		if source == "" {
			source = models.SourceGitea
		}
		if _, ok := hacsDomains[domain]; ok {
			source = models.SourceHacs
		}
		pm.state.Put(&models.PackageState{
			Repo:             entry.Repo,
			Owner:            entry.Owner,
			Type:             models.TypeIntegration,
			InstalledVersion: installed[domain],
			LatestVersion:    installed[domain],
			InstallDate:      now,
			LastUpdate:       now,
			Mode:             models.DownloadMode(entry.Mode),
			AssetName:        entry.AssetName,
			Domain:           entry.Domain,
			Source:           source,
		})
		adopted++
	}
	if adopted == 0 {
		return
	}
	logger.Infof("Tracking %d pre-installed integrations", adopted)
	if err := pm.state.Save(); err != nil {
		logger.Errorf("Save package state failed: %v", err)
	}
}

func matchInstalledDomain(installed map[string]string, repo, domain string) string {
	candidates := []string{}
	if domain != "" {
		candidates = append(candidates, domain)
	}
	candidates = append(candidates, repo, strings.ReplaceAll(repo, "-", "_"))
	for _, cand := range candidates {
		key := strings.ToLower(strings.TrimSpace(cand))
		if key == "" {
			continue
		}
		if _, ok := installed[key]; ok {
			return key
		}
	}
	return ""
}

type integrationManifest struct {
	Domain  string `json:"domain"`
	Version string `json:"version"`
}

/**
 * Scan custom_components for installed integration versions
 * @returns {map} Domain -> manifest version ("unknown" when unreadable)
 */
func scanCustomComponents(hubDir string) map[string]string {
	versions := make(map[string]string)
	root := filepath.Join(hubDir, "custom_components")
	entries, err := os.ReadDir(root)
	if err != nil {
		return versions
	}
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		domain := strings.ToLower(e.Name())
		version := "unknown"
		bytes, err := os.ReadFile(filepath.Join(root, e.Name(), "manifest.json"))
		if err == nil {
			var manifest integrationManifest
			if err := json.Unmarshal(bytes, &manifest); err == nil {
				if manifest.Version != "" {
					version = manifest.Version
				}
				manifestDomain := strings.ToLower(strings.TrimSpace(manifest.Domain))
				if manifestDomain != "" && manifestDomain != domain {
					if _, ok := versions[manifestDomain]; !ok {
						versions[manifestDomain] = version
					}
				}
			} else {
				logger.Debugf("Failed to read manifest for %s: %v", domain, err)
			}
		}
		versions[domain] = version
	}
	return versions
}

type hacsRepository struct {
	Category  string   `json:"category"`
	Installed bool     `json:"installed"`
	Domain    string   `json:"domain"`
	Domains   []string `json:"domains"`
}

type hacsStorage struct {
	Data struct {
		Repositories []hacsRepository `json:"repositories"`
	} `json:"data"`
}

/**
 * Load the set of integration domains managed by HACS
 */
func loadHacsIntegrations(hubDir string) map[string]struct{} {
	domains := make(map[string]struct{})
	bytes, err := os.ReadFile(filepath.Join(hubDir, ".storage", "hacs"))
	if err != nil {
		return domains
	}
	var storage hacsStorage
	if err := json.Unmarshal(bytes, &storage); err != nil {
		logger.Debugf("Failed to read HACS storage: %v", err)
		return domains
	}
	for _, repo := range storage.Data.Repositories {
		if repo.Category != "integration" || !repo.Installed {
			continue
		}
		if repo.Domain != "" {
			domains[strings.ToLower(repo.Domain)] = struct{}{}
			continue
		}
		for _, d := range repo.Domains {
			if d != "" {
				domains[strings.ToLower(d)] = struct{}{}
			}
		}
	}
	return domains
}
