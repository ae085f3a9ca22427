package utils

import (
	"strings"

	goversion "github.com/hashicorp/go-version"
)

/**
 * Compare two version strings
 * @param {string} installed - Installed version string
 * @param {string} latest - Latest version string from the store
 * @returns {int} <0 when installed is older, 0 when equal, >0 when newer
 * @description
 * - Compares semantically when both strings parse as versions
 * - A leading "v" is tolerated on either side
 * - Falls back to string comparison when either side is not a version
 *   ("unknown", branch names), matching plain tag inequality
 * @example
 * CompareVersions("1.2.0", "v1.2.0")  // 0
 * CompareVersions("1.2.0", "1.10.0")  // < 0
 */
func CompareVersions(installed, latest string) int {
	iv, ierr := goversion.NewVersion(strings.TrimPrefix(installed, "v"))
	lv, lerr := goversion.NewVersion(strings.TrimPrefix(latest, "v"))
	if ierr == nil && lerr == nil {
		return iv.Compare(lv)
	}
	return strings.Compare(installed, latest)
}

/**
 * Report whether an update is available
 * @description
 * - Unknown latest version never signals an update
 */
func UpdateAvailable(installed, latest string) bool {
	if latest == "" || latest == "unknown" {
		return false
	}
	if installed == "" || installed == "unknown" {
		return true
	}
	return CompareVersions(installed, latest) != 0
}
