package pkg

import (
	"fmt"

	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install <package id>",
	Short: "Install a store package",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := installPackage(args[0]); err != nil {
			fmt.Println(err)
		}
	},
}

func installPackage(id string) error {
	manager, err := initManager()
	if err != nil {
		return err
	}
	detail, err := manager.Install(id)
	if err != nil {
		return fmt.Errorf("The '%s' install failed: %v", id, err)
	}
	fmt.Printf("The '%s' is installed at version %s\n", detail.ID, detail.State.InstalledVersion)
	if detail.State.WaitingRestart {
		fmt.Println("A hub restart is required to load the integration")
	}
	return nil
}

func init() {
	packageCmd.AddCommand(installCmd)
}
