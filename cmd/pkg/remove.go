package pkg

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <package id>",
	Short: "Uninstall a tracked package",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := removePackage(args[0]); err != nil {
			fmt.Println(err)
		}
	},
}

func removePackage(id string) error {
	manager, err := initManager()
	if err != nil {
		return err
	}
	if err := manager.Remove(id); err != nil {
		return fmt.Errorf("The '%s' remove failed: %v", id, err)
	}
	fmt.Printf("The '%s' is removed\n", id)
	return nil
}

func init() {
	packageCmd.AddCommand(removeCmd)
}
