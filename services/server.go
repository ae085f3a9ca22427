package services

import (
	"time"

	"zing-keeper/internal/models"
)

// SoftwareVer is stamped at build time via -ldflags
var (
	SoftwareVer = "dev"
	BuildTime   = "unknown"
)

var startTime = time.Now()

/**
 * Run a full check and build the check API response
 * @returns {models.CheckResponse} Aggregated package, issue and scheduler state
 */
func Check() models.CheckResponse {
	checker := GetChecker()
	manager := GetPackageManager()

	packages := checker.Trigger()
	issues := manager.Issues().List()

	passed := 0
	failed := 0
	for _, pkg := range packages {
		if pkg.Error != "" {
			failed++
		} else {
			passed++
		}
	}
	overall := "healthy"
	if failed > 0 {
		overall = "degraded"
	}

	return models.CheckResponse{
		Timestamp:     time.Now(),
		Packages:      packages,
		Issues:        issues,
		Scheduler:     checker.Status(),
		OverallStatus: overall,
		TotalChecks:   len(packages),
		PassedChecks:  passed,
		FailedChecks:  failed,
	}
}

/**
 * Build the healthz API response
 */
func GetHealthz() models.HealthResponse {
	manager := GetPackageManager()
	return models.HealthResponse{
		Version:       SoftwareVer,
		StartTime:     startTime,
		Uptime:        time.Since(startTime).Round(time.Second).String(),
		Healthy:       true,
		Packages:      manager.State().Count(),
		PendingIssues: manager.Issues().Count(),
		TotalRequests: GetTotalRequestCount(),
		ErrorRequests: GetTotalErrorCount(),
	}
}
