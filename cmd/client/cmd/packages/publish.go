package packages

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mgtboard/cmd/client/cmd/types"
	"mgtboard/internal/domain/pkg"
)

var fields pkg.Package

var PublishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Опубликовать новую версию",
	Long: `Сохраняет новую версию пакета. Повторная публикация той же версии
завершается ошибкой PKG_VERSION_EXISTED.`,
	Example: `  mgtctl pkg publish -n spacebox -t box -v 1.2.0 --min-android 1.1 --url https://cdn/box-1.2.0.bin`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return write(cmd, false)
	},
}

var UpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Изменить существующую версию",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return write(cmd, true)
	},
}

func write(cmd *cobra.Command, update bool) error {
	c, err := types.Client(cmd)
	if err != nil {
		return err
	}
	t, err := pkgType()
	if err != nil {
		return err
	}

	p := fields
	p.Name, p.Type, p.Version = name, t, version

	var out *pkg.Package
	if update {
		out, err = c.Update(cmd.Context(), p)
	} else {
		out, err = c.Publish(cmd.Context(), p)
	}
	if err != nil {
		return err
	}

	if types.JSON(cmd) {
		return types.PrintJSON(out)
	}
	color.Green("✓ %s", out.Identity())
	return nil
}

func init() {
	for _, c := range []*cobra.Command{PublishCmd, UpdateCmd} {
		f := c.Flags()
		f.StringVarP(&version, "version", "v", "", "версия пакета")
		f.Int64Var(&fields.Size, "size", 0, "размер в байтах")
		f.StringVar(&fields.DownloadURL, "url", "", "ссылка на скачивание")
		f.StringVar(&fields.UpdateDesc, "desc", "", "описание изменений")
		f.StringVar(&fields.MD5, "md5", "", "контрольная сумма")
		f.BoolVar(&fields.IsForceUpdate, "force", false, "клиенты на этой версии обязаны обновиться")
		f.StringVar(&fields.MinAndroidVersion, "min-android", "", "минимальная версия Android приложения (для box)")
		f.StringVar(&fields.MinIOSVersion, "min-ios", "", "минимальная версия iOS приложения (для box)")
		f.StringVar(&fields.MinBoxVersion, "min-box", "", "минимальная версия бокса (для приложений)")
		_ = c.MarkFlagRequired("version")
	}
}
