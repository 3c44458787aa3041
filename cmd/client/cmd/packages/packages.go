package packages

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"mgtboard/internal/domain/pkg"
)

var PkgCmd = &cobra.Command{
	Use:   "pkg",
	Short: "Управление версиями пакетов",
	Long:  `Публикация, изменение, удаление и просмотр версий пакетов app и box.`,
}

var (
	name    string
	typ     string
	version string
)

func init() {
	PkgCmd.PersistentFlags().StringVarP(&name, "name", "n", "", "имя пакета")
	PkgCmd.PersistentFlags().StringVarP(&typ, "type", "t", "", "тип пакета: android, ios, box")
	_ = PkgCmd.MarkPersistentFlagRequired("name")
	_ = PkgCmd.MarkPersistentFlagRequired("type")

	PkgCmd.AddCommand(PublishCmd)
	PkgCmd.AddCommand(UpdateCmd)
	PkgCmd.AddCommand(DeleteCmd)
	PkgCmd.AddCommand(ListCmd)
	PkgCmd.AddCommand(LatestBoxCmd)
}

func pkgType() (pkg.PkgType, error) {
	t := pkg.PkgType(typ)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

func printTable(pkgs []pkg.Package) error {
	if len(pkgs) == 0 {
		fmt.Println("Версии не найдены")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tFORCE\tMIN ANDROID\tMIN IOS\tMIN BOX\tSIZE\tCREATED")
	for _, p := range pkgs {
		force := ""
		if p.IsForceUpdate {
			force = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			p.Version, force, p.MinAndroidVersion, p.MinIOSVersion, p.MinBoxVersion, p.Size,
			p.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
