package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"
)

// ServiceAccountEnv is the environment key holding an injected
// service-account JSON bundle (hosted deployments).
const ServiceAccountEnv = "GCP_SERVICE_ACCOUNT"

// DefaultCredentialsFile is the local fallback credential path.
const DefaultCredentialsFile = "credentials.json"

// ErrNoCredentials is returned when neither credential source is present.
// Callers are expected to degrade to "no store available", not crash.
var ErrNoCredentials = errors.New("no Google service account credentials found")

// ResolveCredentials returns the service-account key JSON, checking the
// environment bundle first and the local file second. The private_key field
// of either source may carry doubly-escaped newlines; both are normalized.
func ResolveCredentials(file string) ([]byte, error) {
	if raw := os.Getenv(ServiceAccountEnv); raw != "" {
		return normalizeServiceAccount([]byte(raw))
	}

	if _, err := os.Stat(file); err == nil {
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read credentials file %s: %w", file, err)
		}
		return normalizeServiceAccount(b)
	}

	return nil, ErrNoCredentials
}

// normalizeServiceAccount rewrites literal `\n` sequences in the private_key
// field to real newlines. Secrets pasted into environment configuration tend
// to arrive double-escaped.
func normalizeServiceAccount(b []byte) ([]byte, error) {
	var info map[string]any
	if err := json.Unmarshal(b, &info); err != nil {
		return nil, fmt.Errorf("parse service account JSON: %w", err)
	}

	if pk, ok := info["private_key"].(string); ok {
		info["private_key"] = strings.ReplaceAll(pk, `\n`, "\n")
	}

	normalized, err := json.Marshal(info)
	if err != nil {
		return nil, fmt.Errorf("encode service account JSON: %w", err)
	}
	return normalized, nil
}

// NewClient builds an authorized HTTP client from service-account key JSON.
func NewClient(ctx context.Context, credentials []byte) (*http.Client, error) {
	config, err := google.JWTConfigFromJSON(credentials, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account key: %w", err)
	}
	return config.Client(ctx), nil
}
