package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mgtboard/cmd/client/cmd/boxes"
	"mgtboard/cmd/client/cmd/check"
	"mgtboard/cmd/client/cmd/packages"
	"mgtboard/cmd/client/cmd/types"
	"mgtboard/internal/app/client"
	"mgtboard/internal/app/client/config"
	"mgtboard/internal/utils/logger"
)

var (
	cfgFile    string
	debug      bool
	jsonOutput bool
	serverURL  string
	token      string
)

var rootCmd = &cobra.Command{
	Use:   "mgtctl",
	Short: "mgtctl - консольный клиент MgtBoard",
	Long: `mgtctl публикует версии пакетов app/box, проверяет обновления и
совместимость и загружает реестр боксов на сервер MgtBoard.

Токен администратора берется из MGTBOARD_TOKEN или флага --token.`,
	PersistentPreRunE: setupClient,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupClient(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Флаги важнее окружения
	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}
	if token != "" {
		cfg.Token = token
	}
	if debug {
		cfg.LogLevel = "debug"
	}

	log := logger.NewWithLevel(cfg.Env, cfg.LogLevel)
	ctx := context.WithValue(cmd.Context(), types.ClientKey, client.New(cfg, log))
	cmd.SetContext(ctx)
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "вывод в формате JSON")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "адрес сервера MgtBoard (host:port)")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "admin токен")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(packages.PkgCmd)
	rootCmd.AddCommand(check.CheckCmd)
	rootCmd.AddCommand(boxes.BoxesCmd)
}
