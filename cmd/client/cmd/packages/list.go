package packages

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mgtboard/cmd/client/cmd/types"
	"mgtboard/internal/domain/pkg"
)

var DeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Удалить версию",
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := types.Client(cmd)
		if err != nil {
			return err
		}
		t, err := pkgType()
		if err != nil {
			return err
		}

		id := pkg.Identity{Name: name, Type: t, Version: version}
		if err := c.Delete(cmd.Context(), id); err != nil {
			return err
		}
		color.Green("✓ удалено %s", id)
		return nil
	},
}

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список версий, от новой к старой",
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := types.Client(cmd)
		if err != nil {
			return err
		}
		t, err := pkgType()
		if err != nil {
			return err
		}

		pkgs, err := c.List(cmd.Context(), name, t)
		if err != nil {
			return fmt.Errorf("ошибка получения списка версий: %w", err)
		}
		if types.JSON(cmd) {
			return types.PrintJSON(pkgs)
		}
		return printTable(pkgs)
	},
}

var LatestBoxCmd = &cobra.Command{
	Use:   "latest-box",
	Short: "Последняя версия бокса",
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := types.Client(cmd)
		if err != nil {
			return err
		}
		t, err := pkgType()
		if err != nil {
			return err
		}

		p, err := c.LatestBox(cmd.Context(), name, t)
		if err != nil {
			return err
		}
		if types.JSON(cmd) {
			return types.PrintJSON(p)
		}
		return printTable([]pkg.Package{*p})
	},
}

func init() {
	DeleteCmd.Flags().StringVarP(&version, "version", "v", "", "версия пакета")
	_ = DeleteCmd.MarkFlagRequired("version")
}
