package boxes

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mgtboard/cmd/client/cmd/types"
)

var BoxesCmd = &cobra.Command{
	Use:   "boxes",
	Short: "Реестр боксов",
}

var importCmd = &cobra.Command{
	Use:   "import [file.xlsx]",
	Short: "Загрузить заводской реестр боксов на сервер",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := types.Client(cmd)
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("ошибка открытия файла: %w", err)
		}
		defer f.Close()

		res, err := c.ImportBoxes(cmd.Context(), f)
		if err != nil {
			return err
		}

		if types.JSON(cmd) {
			return types.PrintJSON(res)
		}
		color.Green("✓ Импортировано: %d, пропущено: %d", res.Imported, res.Skipped)
		for _, e := range res.Failed {
			color.Red("✗ Строка %d: %s", e.Row, e.Error)
		}
		return nil
	},
}

func init() {
	BoxesCmd.AddCommand(importCmd)
}
