package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"mgtboard/internal/app/server/api/http/middleware/auth"
)

var hashTokenCmd = &cobra.Command{
	Use:   "hash-token",
	Short: "Получить bcrypt хеш admin токена для ADMIN_TOKEN_HASH",
	// конфигурация не нужна
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error { return nil },
	RunE: func(_ *cobra.Command, _ []string) error {
		token, err := readToken()
		if err != nil {
			return fmt.Errorf("ошибка чтения токена: %w", err)
		}
		if token == "" {
			return fmt.Errorf("токен не может быть пустым")
		}

		hash, err := auth.HashToken(token)
		if err != nil {
			return err
		}
		fmt.Println(hash)
		return nil
	},
}

func readToken() (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, "Admin токен: ")
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
