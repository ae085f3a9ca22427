package pkg

import (
	"fmt"

	"github.com/spf13/cobra"
)

var optVersion string

var upgradeCmd = &cobra.Command{
	Use:   "upgrade <package id>",
	Short: "Upgrade a tracked package",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := upgradePackage(args[0], optVersion); err != nil {
			fmt.Println(err)
		}
	},
}

func upgradePackage(id, version string) error {
	manager, err := initManager()
	if err != nil {
		return err
	}
	before := ""
	if state := manager.State().Get(id); state != nil {
		before = state.InstalledVersion
	}
	detail, err := manager.Upgrade(id, version)
	if err != nil {
		return fmt.Errorf("The '%s' upgrade failed: %v", id, err)
	}
	if detail.State.InstalledVersion == before {
		fmt.Printf("The '%s' version is up to date\n", id)
	} else {
		fmt.Printf("The '%s' is upgraded to version %s\n", id, detail.State.InstalledVersion)
	}
	if detail.State.WaitingRestart {
		fmt.Println("A hub restart is required to load the new version")
	}
	return nil
}

func init() {
	upgradeCmd.Flags().SortFlags = false
	upgradeCmd.Flags().StringVarP(&optVersion, "version", "v", "", "Target release tag (default: latest)")
	packageCmd.AddCommand(upgradeCmd)
}
