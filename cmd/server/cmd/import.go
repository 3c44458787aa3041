package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mgtboard/internal/domain/inventory"
	"mgtboard/internal/infrastructure/storage"
)

var importBoxesCmd = &cobra.Command{
	Use:   "import-boxes [file.xlsx]",
	Short: "Импортировать реестр боксов из xlsx",
	Long: `Читает первый лист книги и сохраняет строки по MAC адресу.
Строки с ошибками пропускаются и выводятся в отчете.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("ошибка открытия файла: %w", err)
		}
		defer f.Close()

		repos, err := storage.New(cmd.Context(), cfg, log)
		if err != nil {
			return fmt.Errorf("ошибка подключения к хранилищу: %w", err)
		}
		defer repos.Close()

		res, err := inventory.NewService(repos.Boxes, log).Import(cmd.Context(), f)
		if err != nil {
			return err
		}

		color.Green("✓ Импортировано: %d", res.Imported)
		if res.Skipped > 0 {
			fmt.Printf("Пропущено пустых строк: %d\n", res.Skipped)
		}
		for _, e := range res.Failed {
			color.Red("✗ Строка %d: %s", e.Row, e.Error)
		}
		return nil
	},
}
