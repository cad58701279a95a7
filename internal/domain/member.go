package domain

// Spreadsheet column numbers (1-based, matching the sheet layout)
const (
	ColNama = iota + 1
	ColUsername
	ColEmail
	ColPassword
	ColNoWA
	ColLink
	ColTimestamp
)

// Header returns the expected header row of the member sheet. Row 1 of the
// worksheet must match this exactly; field identity is positional.
func Header() []string {
	return []string{"Nama", "Username", "Email", "Password", "No_WA", "Link", "Timestamp"}
}

// Member is one row of the member sheet. Password holds the stored bcrypt
// digest and is never serialized in API responses.
type Member struct {
	Nama      string `json:"nama"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"-"`
	NoWA      string `json:"no_wa"`
	Link      string `json:"link"`
	Timestamp string `json:"timestamp"`
}

// FromRow decodes a sheet row into a Member. Rows shorter than the schema
// (trailing empty cells are trimmed by the API) decode with empty fields.
func FromRow(cells []string) Member {
	cell := func(col int) string {
		if col-1 < len(cells) {
			return cells[col-1]
		}
		return ""
	}
	return Member{
		Nama:      cell(ColNama),
		Username:  cell(ColUsername),
		Email:     cell(ColEmail),
		Password:  cell(ColPassword),
		NoWA:      cell(ColNoWA),
		Link:      cell(ColLink),
		Timestamp: cell(ColTimestamp),
	}
}

// ToRow encodes a Member in the fixed column order.
func (m Member) ToRow() []string {
	return []string{m.Nama, m.Username, m.Email, m.Password, m.NoWA, m.Link, m.Timestamp}
}
