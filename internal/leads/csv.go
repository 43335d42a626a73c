package leads

import (
	"strconv"
	"strings"

	"leadfinder/pkg/domain"
)

// CSVHeader is the first line of every rendered CSV document.
const CSVHeader = "name,address,phone,website,rating,emails,verified_emails"

// emailSeparator joins email lists inside a single CSV field.
const emailSeparator = "|"

// RenderCSV renders rows as CSV. Every field is quoted with embedded quotes
// doubled, email lists are joined with "|", a missing rating is an empty field
// and lines are separated by "\n" without a trailing newline.
func RenderCSV(rows []domain.Row) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, CSVHeader)
	for _, row := range rows {
		rating := ""
		if row.Rating != nil {
			rating = strconv.FormatFloat(*row.Rating, 'f', -1, 64)
		}
		lines = append(lines, strings.Join([]string{
			quote(row.Name),
			quote(row.Address),
			quote(row.Phone),
			quote(row.Website),
			quote(rating),
			quote(strings.Join(row.Emails, emailSeparator)),
			quote(strings.Join(row.VerifiedEmails, emailSeparator)),
		}, ","))
	}

	return strings.Join(lines, "\n")
}

func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
