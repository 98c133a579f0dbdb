package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oscar503sv/gestion-de-proyectos/internal/seed"
)

var seedCheckCmd = &cobra.Command{
	Use:   "check-seed [file]",
	Short: "Validate a seed file without starting the server",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}

		d, err := seed.Load(path)
		if err != nil {
			return err
		}

		cmd.Printf("seed ok: %d users, %d projects, %d tasks\n", len(d.Users), len(d.Projects), len(d.Tasks))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCheckCmd)
}
