package models

import "time"

type IssueSeverity string

const (
	SeverityWarning  IssueSeverity = "warning"
	SeverityCritical IssueSeverity = "critical"
)

/**
 * Repair issue (serialized to storage/issues.json)
 * @property {string} id - Issue id, e.g. "restart_zing_dimmer_20240101120000"
 * @property {string} key - Translation key for the hub frontend
 * @property {bool} fixable - Whether the issue can be fixed via the fix endpoint
 * @property {string} package - Repo of the package the issue belongs to
 * @description
 * - Installing or updating an integration raises a fixable restart issue
 * - Fixing the issue clears the package's waiting-restart flag
 */
type Issue struct {
	ID        string        `json:"id"`
	Key       string        `json:"key"`
	Severity  IssueSeverity `json:"severity"`
	Fixable   bool          `json:"fixable"`
	Package   string        `json:"package"`
	CreatedAt time.Time     `json:"createdAt"`
}
