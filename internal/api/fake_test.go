package api

import (
	"context"

	"membership_system/internal/domain"
	"membership_system/internal/sheets"
)

// fakeStore is an in-memory MemberStore with the gateway's row semantics:
// 1-based row numbers, header at row 1, deletes shift later rows up.
type fakeStore struct {
	rows [][]string // data rows only; rows[0] is sheet row 2

	appendErr error
	readErr   error
	updateErr error
	deleteErr error
}

func (f *fakeStore) AppendRow(_ context.Context, row []string) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.rows = append(f.rows, append([]string(nil), row...))
	return nil
}

func (f *fakeStore) ReadAll(_ context.Context) ([]domain.Member, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	var members []domain.Member
	for _, row := range f.rows {
		members = append(members, domain.FromRow(row))
	}
	return members, nil
}

func (f *fakeStore) FindRowByUsername(_ context.Context, username string) (int64, error) {
	var matches []int64
	for i, row := range f.rows {
		if len(row) >= domain.ColUsername && row[domain.ColUsername-1] == username {
			matches = append(matches, int64(i+2))
		}
	}
	switch len(matches) {
	case 0:
		return 0, sheets.ErrNotFound
	case 1:
		return matches[0], nil
	default:
		return 0, sheets.ErrAmbiguousUsername
	}
}

func (f *fakeStore) UpdateCell(_ context.Context, row int64, col int, value string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.rows[row-2][col-1] = value
	return nil
}

func (f *fakeStore) DeleteRow(_ context.Context, row int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	i := int(row - 2)
	f.rows = append(f.rows[:i], f.rows[i+1:]...)
	return nil
}

func seedRow(nama, username, email, password, noWA, link, timestamp string) []string {
	return domain.Member{
		Nama: nama, Username: username, Email: email,
		Password: password, NoWA: noWA, Link: link, Timestamp: timestamp,
	}.ToRow()
}
