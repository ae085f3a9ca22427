package models

import (
	"time"
)

// PackageCheckResult per-package result of an update check sweep
// @Description Package update status after a check
type PackageCheckResult struct {
	ID               string `json:"id" example:"onoffre_zing_dimmer"`
	Repo             string `json:"repo" example:"zing-dimmer"`
	Type             string `json:"type" example:"integration"`
	InstalledVersion string `json:"installedVersion" example:"1.0.0"`
	LatestVersion    string `json:"latestVersion" example:"1.1.0"`
	UpdateAvailable  bool   `json:"updateAvailable" example:"true"`
	WaitingRestart   bool   `json:"waitingRestart" example:"false"`
	Skipped          bool   `json:"skipped" example:"false"`
	Error            string `json:"error,omitempty"`
}

// SchedulerCheckResult state of the periodic update checker
// @Description Periodic checker status
type SchedulerCheckResult struct {
	Status           string    `json:"status" example:"active"`
	NextCheckTime    time.Time `json:"nextCheckTime" example:"2024-01-01T11:00:00Z"`
	LastCheckTime    time.Time `json:"lastCheckTime" example:"2024-01-01T10:00:00Z"`
	PackagesCount    int       `json:"packagesCount" example:"5"`
	UpdatesAvailable int       `json:"updatesAvailable" example:"2"`
}

// CheckResponse check API response structure
// @Description Update check API response
type CheckResponse struct {
	Timestamp     time.Time            `json:"timestamp" example:"2024-01-01T10:00:00Z"`
	Packages      []PackageCheckResult `json:"packages"`
	Issues        []Issue              `json:"issues"`
	Scheduler     SchedulerCheckResult `json:"scheduler"`
	OverallStatus string               `json:"overallStatus" example:"healthy"`
	TotalChecks   int                  `json:"totalChecks" example:"5"`
	PassedChecks  int                  `json:"passedChecks" example:"4"`
	FailedChecks  int                  `json:"failedChecks" example:"1"`
}

// HealthResponse healthz API response structure
// @Description Readiness probe response
type HealthResponse struct {
	Version       string    `json:"version" example:"1.2.0"`
	StartTime     time.Time `json:"startTime" example:"2024-01-01T09:00:00Z"`
	Uptime        string    `json:"uptime" example:"1h3m"`
	Healthy       bool      `json:"healthy" example:"true"`
	Packages      int       `json:"packages" example:"5"`
	PendingIssues int       `json:"pendingIssues" example:"1"`
	TotalRequests int64     `json:"totalRequests" example:"120"`
	ErrorRequests int64     `json:"errorRequests" example:"3"`
}
