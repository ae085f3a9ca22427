package pkg

import (
	"fmt"

	"zing-keeper/cmd/root"
	"zing-keeper/services"

	"github.com/spf13/cobra"
)

var packageCmd = &cobra.Command{
	Use:     "package",
	Aliases: []string{"pkg"},
	Short:   "Package operations (list/install/upgrade/remove/check)",
	Long:    `Package operations (list/install/upgrade/remove/check)`,
}

const packageExample = `  # list tracked packages
  zing-keeper package list
  zing-keeper package install onoffre_zing_dimmer
  zing-keeper package upgrade onoffre_zing_dimmer
  zing-keeper package remove onoffre_zing_dimmer
  zing-keeper package check`

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
	root.RootCmd.AddCommand(packageCmd)

	packageCmd.Example = packageExample
}
