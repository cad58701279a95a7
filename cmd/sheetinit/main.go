package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"membership_system/internal/config"
	"membership_system/internal/sheets"
)

// One-shot bootstrap: writes the header row to an empty member sheet so the
// server's schema validation passes on first run.
func main() {
	cfg := config.LoadConfig()
	ctx := context.Background()

	credentials, err := sheets.ResolveCredentials(cfg.CredentialsFile)
	if err != nil {
		logrus.Fatalf("resolve credentials: %v", err)
	}

	client, err := sheets.NewClient(ctx, credentials)
	if err != nil {
		logrus.Fatalf("authorize: %v", err)
	}

	gateway, err := sheets.Open(ctx, client, cfg.SpreadsheetID)
	if err != nil {
		logrus.Fatalf("open spreadsheet: %v", err)
	}

	if err := gateway.EnsureHeader(ctx); err != nil {
		logrus.Fatalf("ensure header row: %v", err)
	}

	logrus.Info("Header row in place.")
}
