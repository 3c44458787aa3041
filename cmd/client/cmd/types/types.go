package types

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mgtboard/internal/app/client"
)

type contextKey string

const ClientKey contextKey = "client"

// Client достает клиента, созданного в PersistentPreRunE корневой команды.
func Client(cmd *cobra.Command) (*client.Client, error) {
	c, ok := cmd.Context().Value(ClientKey).(*client.Client)
	if !ok || c == nil {
		return nil, fmt.Errorf("клиент не инициализирован")
	}
	return c, nil
}

// JSON сообщает, задан ли глобальный флаг --json.
func JSON(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func PrintJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
