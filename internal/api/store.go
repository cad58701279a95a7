package api

import (
	"context"

	"membership_system/internal/domain"
)

// MemberStore is the slice of the sheet gateway the handlers consume. A nil
// store means credentials could not be resolved or the spreadsheet could not
// be opened; handlers answer 503 instead of crashing.
type MemberStore interface {
	AppendRow(ctx context.Context, row []string) error
	ReadAll(ctx context.Context) ([]domain.Member, error)
	FindRowByUsername(ctx context.Context, username string) (int64, error)
	UpdateCell(ctx context.Context, row int64, col int, value string) error
	DeleteRow(ctx context.Context, row int64) error
}
