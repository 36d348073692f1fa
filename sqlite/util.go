package sqlite

import "strings"

// GenerateParameters renders a "(?, ?, ...)" placeholder group for n args.
func GenerateParameters(n int) string {
	if n <= 0 {
		return "()"
	}
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(strings.Repeat("?, ", n-1))
	b.WriteString("?)")
	return b.String()
}

// Scannable is satisfied by both *sql.Row and *sql.Rows.
type Scannable interface {
	Scan(dest ...any) error
}
