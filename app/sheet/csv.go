package sheet

import (
	"strings"
)

// ParseCSV splits spreadsheet CSV export text into rows. It never fails:
// a double quote toggles quoted mode, a doubled quote inside quoted mode is a
// literal quote, and an unterminated quote keeps the remaining text literal.
func ParseCSV(text string) []RawRow {
	var (
		rows     []RawRow
		row      RawRow
		field    strings.Builder
		inQuotes bool
		dirty    bool
	)

	endField := func() {
		row = append(row, field.String())
		field.Reset()
	}
	endRow := func() {
		endField()
		rows = append(rows, row)
		row = nil
		dirty = false
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(text) && text[i+1] == '"' {
				field.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
			dirty = true
		case c == ',' && !inQuotes:
			endField()
			dirty = true
		case c == '\n' && !inQuotes:
			endRow()
		case c == '\r' && !inQuotes:
			if i+1 < len(text) && text[i+1] == '\n' {
				continue
			}
			endRow()
		default:
			field.WriteByte(c)
			dirty = true
		}
	}

	if dirty || field.Len() > 0 {
		endRow()
	}

	return rows
}
