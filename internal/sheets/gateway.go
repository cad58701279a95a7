package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"membership_system/internal/domain"
)

var (
	// ErrNotFound is returned when no row carries the requested username.
	ErrNotFound = errors.New("username not found in sheet")
	// ErrAmbiguousUsername is returned when more than one row carries the
	// requested username. The caller must report the conflict rather than
	// pick a row.
	ErrAmbiguousUsername = errors.New("username matches more than one row")
	// ErrSchemaMismatch is returned when the live header row does not match
	// the declared column schema.
	ErrSchemaMismatch = errors.New("sheet header does not match expected schema")
)

// Gateway wraps the always-first worksheet of one spreadsheet. All
// operations are synchronous remote calls with no retry; row numbers are
// 1-based with the header at row 1.
type Gateway struct {
	svc           *sheets.Service
	spreadsheetID string
	sheet         string
	sheetID       int64
}

// Open connects to the spreadsheet and binds the gateway to its first
// worksheet.
func Open(ctx context.Context, client *http.Client, spreadsheetID string) (*Gateway, error) {
	svc, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("create sheets client: %w", err)
	}

	spreadsheet, err := svc.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet %s: %w", spreadsheetID, err)
	}
	if len(spreadsheet.Sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet %s has no worksheets", spreadsheetID)
	}

	properties := spreadsheet.Sheets[0].Properties
	return &Gateway{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheet:         properties.Title,
		sheetID:       properties.SheetId,
	}, nil
}

// ValidateHeader checks the live header row against the declared schema.
// Serving against a drifted sheet silently mis-assigns fields, so callers
// should refuse the store handle on mismatch.
func (g *Gateway) ValidateHeader(ctx context.Context) error {
	response, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, g.rangeOf("A1:G1")).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read header row: %w", err)
	}
	if len(response.Values) == 0 {
		return fmt.Errorf("%w: header row is empty", ErrSchemaMismatch)
	}

	got := toStrings(response.Values[0])
	want := domain.Header()
	if len(got) != len(want) {
		return fmt.Errorf("%w: got %v, want %v", ErrSchemaMismatch, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			return fmt.Errorf("%w: got %v, want %v", ErrSchemaMismatch, got, want)
		}
	}
	return nil
}

// EnsureHeader writes the header row to an empty worksheet. A populated
// worksheet must already match the schema.
func (g *Gateway) EnsureHeader(ctx context.Context) error {
	response, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, g.rangeOf("A1:G1")).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read header row: %w", err)
	}
	if len(response.Values) > 0 {
		return g.ValidateHeader(ctx)
	}

	vr := sheets.ValueRange{Values: [][]any{toAnys(domain.Header())}}
	_, err = g.svc.Spreadsheets.Values.Update(g.spreadsheetID, g.rangeOf("A1:G1"), &vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("write header row: %w", err)
	}
	return nil
}

// AppendRow appends one row after the last populated row. No deduplication
// and no field-count validation happens here.
func (g *Gateway) AppendRow(ctx context.Context, row []string) error {
	vr := sheets.ValueRange{Values: [][]any{toAnys(row)}}
	_, err := g.svc.Spreadsheets.Values.Append(g.spreadsheetID, g.rangeOf("A:G"), &vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row: %w", err)
	}
	return nil
}

// ReadAll returns every data row decoded as a Member. The header row is
// never returned; an empty sheet yields an empty slice.
func (g *Gateway) ReadAll(ctx context.Context) ([]domain.Member, error) {
	response, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, g.rangeOf("A:G")).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read member table: %w", err)
	}

	var members []domain.Member
	for i, row := range response.Values {
		if i == 0 {
			continue // header
		}
		members = append(members, domain.FromRow(toStrings(row)))
	}
	return members, nil
}

// FindRowByUsername resolves a username to its 1-based row number by exact
// match on the username column. Duplicates are a reportable conflict, not a
// first-match win.
func (g *Gateway) FindRowByUsername(ctx context.Context, username string) (int64, error) {
	column := g.rangeOf(fmt.Sprintf("%s2:%s", columnLetter(domain.ColUsername), columnLetter(domain.ColUsername)))
	response, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, column).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("search username column: %w", err)
	}

	var matches []int64
	for i, row := range response.Values {
		cells := toStrings(row)
		if len(cells) > 0 && cells[0] == username {
			matches = append(matches, int64(i+2)) // first data row is row 2
		}
	}

	switch len(matches) {
	case 0:
		return 0, fmt.Errorf("%w: %q", ErrNotFound, username)
	case 1:
		return matches[0], nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrAmbiguousUsername, username)
	}
}

// UpdateCell overwrites a single cell, addressed by 1-based row and column.
func (g *Gateway) UpdateCell(ctx context.Context, row int64, col int, value string) error {
	cell := fmt.Sprintf("%s%d", columnLetter(col), row)
	vr := sheets.ValueRange{Values: [][]any{{value}}}
	_, err := g.svc.Spreadsheets.Values.Update(g.spreadsheetID, g.rangeOf(cell), &vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("update cell %s: %w", cell, err)
	}
	return nil
}

// DeleteRow removes a row entirely. Rows below shift up by one, so any row
// number held by the caller is stale after this returns.
func (g *Gateway) DeleteRow(ctx context.Context, row int64) error {
	rq := sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				DeleteDimension: &sheets.DeleteDimensionRequest{
					Range: &sheets.DimensionRange{
						SheetId:    g.sheetID,
						Dimension:  "ROWS",
						StartIndex: row - 1,
						EndIndex:   row,
					},
				},
			},
		},
	}

	if _, err := g.svc.Spreadsheets.BatchUpdate(g.spreadsheetID, &rq).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete row %d: %w", row, err)
	}
	return nil
}

func (g *Gateway) rangeOf(a1 string) string {
	return g.sheet + "!" + a1
}

// columnLetter maps a 1-based column number to its A1 letter. The schema
// never exceeds column G.
func columnLetter(col int) string {
	return string(rune('A' + col - 1))
}

func toStrings(row []any) []string {
	cells := make([]string, len(row))
	for i, v := range row {
		if s, ok := v.(string); ok {
			cells[i] = s
		} else if v != nil {
			cells[i] = fmt.Sprint(v)
		}
	}
	return cells
}

func toAnys(row []string) []any {
	cells := make([]any, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return cells
}
