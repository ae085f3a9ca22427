package issue

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fixCmd = &cobra.Command{
	Use:   "fix <issue id>",
	Short: "Mark a repair issue as fixed",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := fixIssue(args[0]); err != nil {
			fmt.Println(err)
		}
	},
}

func fixIssue(id string) error {
	manager, err := initManager()
	if err != nil {
		return err
	}
	if err := manager.FixIssue(id); err != nil {
		return fmt.Errorf("The issue '%s' fix failed: %v", id, err)
	}
	fmt.Printf("The issue '%s' is fixed\n", id)
	return nil
}

func init() {
	issueCmd.AddCommand(fixCmd)
}
