package issue

import (
	"fmt"

	"zing-keeper/cmd/root"
	"zing-keeper/services"

	"github.com/spf13/cobra"
)

var issueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Repair issue operations (list/fix)",
	Long:  `Repair issue operations (list/fix)`,
}

const issueExample = `  # list pending issues
  zing-keeper issue list
  zing-keeper issue fix restart_zing-dimmer_20240101120000`

/**
 * Get a fully initialized package manager for CLI use
 */
func initManager() (*services.PackageManager, error) {
	manager := services.GetPackageManager()
	if err := manager.Init(); err != nil {
		return nil, fmt.Errorf("initialize package manager failed: %v", err)
	}
	return manager, nil
}

func init() {
	root.RootCmd.AddCommand(issueCmd)

	issueCmd.Example = issueExample
}
