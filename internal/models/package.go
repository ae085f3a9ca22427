package models

import (
	"strings"
)

/**
 * Package type enumeration
 */
type PackageType string

const (
	TypeIntegration PackageType = "integration"
	TypeLovelace    PackageType = "lovelace-card"
	TypeBlueprint   PackageType = "blueprint"
)

/**
 * Package source enumeration
 * @description
 * - gitea: packages downloaded from the configured store server
 * - github: packages downloaded from the GitHub API (no update checks)
 * - hacs: packages managed by HACS, tracked but never touched
 */
type PackageSource string

const (
	SourceGitea  PackageSource = "gitea"
	SourceGithub PackageSource = "github"
	SourceHacs   PackageSource = "hacs"
)

/**
 * Download mode enumeration
 * @description
 * - zipball: archive of the repository at a ref
 * - asset: file attached to a release
 */
type DownloadMode string

const (
	ModeZipball DownloadMode = "zipball"
	ModeAsset   DownloadMode = "asset"
)

/**
 * Tracked package state (serialized to storage/packages.json)
 * @property {string} repo - Repository name
 * @property {string} owner - Repository owner
 * @property {string} type - Package type: integration/lovelace-card/blueprint
 * @property {string} installedVersion - Currently installed version
 * @property {string} latestVersion - Latest version known from the store
 * @property {bool} updateAvailable - Whether latestVersion differs from installedVersion
 * @property {bool} waitingRestart - Hub restart pending (integrations only)
 */
type PackageState struct {
	Repo             string        `json:"repo"`
	Owner            string        `json:"owner"`
	Type             PackageType   `json:"type"`
	InstalledVersion string        `json:"installedVersion"`
	LatestVersion    string        `json:"latestVersion"`
	UpdateAvailable  bool          `json:"updateAvailable"`
	WaitingRestart   bool          `json:"waitingRestart,omitempty"`
	InstallDate      string        `json:"installDate"`
	LastUpdate       string        `json:"lastUpdate"`
	LastCheck        string        `json:"lastCheck,omitempty"`
	Mode             DownloadMode  `json:"mode,omitempty"`
	AssetName        string        `json:"assetName,omitempty"`
	Domain           string        `json:"domain,omitempty"`
	Source           PackageSource `json:"source"`
	ReleaseSummary   string        `json:"releaseSummary,omitempty"`
	ReleaseNotes     string        `json:"releaseNotes,omitempty"`
}

/**
 * Build the canonical package id for an owner/repo pair
 * @description
 * - Lowercased "<owner>_<repo>" with dashes folded to underscores
 */
func PackageID(owner, repo string) string {
	id := strings.ToLower(owner + "_" + repo)
	return strings.ReplaceAll(id, "-", "_")
}

/**
 * Package detail returned by the API and CLI
 */
type PackageDetail struct {
	ID    string       `json:"id"`
	State PackageState `json:"state"`
}
