// Package client provides test commands for the sheet API
package client

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	apiclient "github.com/dmtable/sheet-api/internal/client"
	"github.com/dmtable/sheet-api/internal/view/prefs"
)

var (
	// Connection flags
	serverAddr string
	initData   string
	asUserID   int64
	timeout    time.Duration
)

// ClientCmd is the root command for all client test commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Test client commands for the sheet API",
	Long:  `Client commands allow you to test the sheet API by making real HTTP requests.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "http://localhost:8080", "API server base URL")
	ClientCmd.PersistentFlags().StringVar(&initData, "init-data", "", "Raw Telegram init data (overrides --as-user)")
	ClientCmd.PersistentFlags().Int64Var(&asUserID, "as-user", 1, "Fake Telegram user ID, accepted only with AUTH_DISABLED servers")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	ClientCmd.AddCommand(listCharactersCmd)
	ClientCmd.AddCommand(createCharacterCmd)
	ClientCmd.AddCommand(getSheetCmd)
	ClientCmd.AddCommand(useActionCmd)
	ClientCmd.AddCommand(exportCharacterCmd)
	ClientCmd.AddCommand(importCharacterCmd)

	ClientCmd.AddCommand(listTemplatesCmd)
	ClientCmd.AddCommand(useTemplateCmd)
}

// createClient builds the API client from the connection flags.
func createClient() (*apiclient.Client, error) {
	data := initData
	if data == "" {
		values := url.Values{}
		values.Set("user", fmt.Sprintf(`{"id":%d,"username":"cli_%d"}`, asUserID, asUserID))
		data = values.Encode()
	}

	return apiclient.New(&apiclient.Config{
		BaseURL:  serverAddr,
		InitData: data,
	})
}

// prefsStore opens the per-device preference file.
func prefsStore() (*prefs.Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return prefs.NewStore(&prefs.Config{
		Path: filepath.Join(home, ".sheet-api", "prefs.json"),
	})
}
