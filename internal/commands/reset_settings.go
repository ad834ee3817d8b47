// Package commands implements the CLI maintenance commands.
package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"farmgate/internal/config"
	"farmgate/internal/db"
	"farmgate/internal/services"
	"farmgate/internal/store"

	"github.com/sirupsen/logrus"
)

// RunResetSettings discards every stored storefront customization and
// restores the bare settings document. Intended for operators recovering
// from a bad import.
func RunResetSettings(args []string) {
	fs := flag.NewFlagSet("reset-settings", flag.ExitOnError)
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if !*yes {
		fmt.Print("This discards all storefront customizations. Continue? [y/N]: ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if !confirmed(answer) {
			fmt.Println("Aborted.")
			return
		}
	}

	configManager, err := config.NewManager()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	database, err := db.NewDB(configManager)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	storage, err := store.NewStore(configManager)
	if err != nil {
		logrus.Fatalf("Failed to connect to store: %v", err)
	}
	defer storage.Close()

	settingsService := services.NewSettingsService(database, storage)

	ctx := context.Background()
	if err := settingsService.EnsureDocument(ctx); err != nil {
		logrus.Fatalf("Failed to initialize settings document: %v", err)
	}
	version, err := settingsService.ResetDocument(ctx)
	if err != nil {
		logrus.Fatalf("Failed to reset settings: %v", err)
	}

	fmt.Printf("Settings reset to defaults (version %d).\n", version)
}

// confirmed reports whether an interactive answer means yes.
func confirmed(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
