package check

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mgtboard/cmd/client/cmd/types"
	"mgtboard/internal/domain/pkg"
)

var (
	appName    string
	appType    string
	appVersion string
	boxName    string
	boxType    string
	boxVersion string
)

var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Проверка обновлений и совместимости app/box",
}

var appCmd = &cobra.Command{
	Use:   "app",
	Short: "Есть ли новая версия приложения",
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := types.Client(cmd)
		if err != nil {
			return err
		}
		res, err := c.CheckApp(cmd.Context(), query())
		if err != nil {
			return err
		}
		return printCheck(cmd, res)
	},
}

var boxCmd = &cobra.Command{
	Use:   "box",
	Short: "Есть ли новая версия бокса",
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := types.Client(cmd)
		if err != nil {
			return err
		}
		res, err := c.CheckBox(cmd.Context(), query())
		if err != nil {
			return err
		}
		return printCheck(cmd, res)
	},
}

var compatCmd = &cobra.Command{
	Use:   "compat",
	Short: "Нужно ли принудительное обновление app и/или box",
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := types.Client(cmd)
		if err != nil {
			return err
		}
		res, err := c.CheckCompatibility(cmd.Context(), query())
		if err != nil {
			return err
		}

		if types.JSON(cmd) {
			return types.PrintJSON(res)
		}
		printForce("app", res.IsAppForceUpdate, res.LatestAppPkg)
		printForce("box", res.IsBoxForceUpdate, res.LatestBoxPkg)
		return nil
	},
}

func query() pkg.CheckQuery {
	return pkg.CheckQuery{
		AppName:    appName,
		AppType:    pkg.PkgType(appType),
		AppVersion: appVersion,
		BoxName:    boxName,
		BoxType:    pkg.PkgType(boxType),
		BoxVersion: boxVersion,
	}
}

func printCheck(cmd *cobra.Command, res pkg.CheckResult) error {
	if types.JSON(cmd) {
		return types.PrintJSON(res)
	}
	if !res.NewVersionExist {
		color.Green("✓ установлена последняя версия")
		return nil
	}
	if res.LatestAppPkg != nil {
		color.Yellow("↑ приложение: %s", res.LatestAppPkg.Version)
	}
	if res.LatestBoxPkg != nil {
		color.Yellow("↑ бокс: %s", res.LatestBoxPkg.Version)
	}
	if res.IsAppNeedUpdate {
		fmt.Println("  новая версия бокса требует обновить приложение")
	}
	if res.IsBoxNeedUpdate {
		fmt.Println("  новая версия приложения требует обновить бокс")
	}
	return nil
}

func printForce(side string, force bool, latest *pkg.Package) {
	if !force {
		color.Green("✓ %s: обновление не требуется", side)
		return
	}
	color.Red("! %s: принудительное обновление до %s", side, latest.Version)
}

func init() {
	f := CheckCmd.PersistentFlags()
	f.StringVar(&appName, "app-name", "", "имя пакета приложения")
	f.StringVar(&appType, "app-type", "", "платформа приложения: android, ios")
	f.StringVar(&appVersion, "app-version", "", "установленная версия приложения")
	f.StringVar(&boxName, "box-name", "", "имя пакета бокса")
	f.StringVar(&boxType, "box-type", "box", "тип пакета бокса")
	f.StringVar(&boxVersion, "box-version", "", "установленная версия бокса")
	for _, name := range []string{"app-name", "app-type", "app-version", "box-name", "box-version"} {
		_ = CheckCmd.MarkPersistentFlagRequired(name)
	}

	CheckCmd.AddCommand(appCmd)
	CheckCmd.AddCommand(boxCmd)
	CheckCmd.AddCommand(compatCmd)
}
