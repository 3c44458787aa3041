package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mgtboard/cmd/client/cmd/types"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Проверить доступность сервера",
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := types.Client(cmd)
		if err != nil {
			return err
		}

		st, err := c.Status(cmd.Context())
		if err != nil {
			return fmt.Errorf("сервер недоступен: %w", err)
		}

		if types.JSON(cmd) {
			return types.PrintJSON(st)
		}
		color.Green("✓ %s (версия %s)", st.Status, st.Version)
		return nil
	},
}
