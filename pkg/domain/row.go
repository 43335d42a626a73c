package domain

// Mode selects how the items of a run are interpreted.
type Mode string

const (
	// ModeWebsites treats every item as a website URL to scrape.
	ModeWebsites Mode = "websites"
	// ModePlaces treats every item as a free-text places query.
	ModePlaces Mode = "places"
)

// RunRequest describes a single batch run.
type RunRequest struct {
	// Mode selects the item interpretation; an empty mode means ModePlaces.
	Mode Mode `json:"mode"`
	// Items holds website URLs or search queries depending on Mode.
	Items []string `json:"items"`
	// MaxResults bounds the number of places returned per query. Zero means the default.
	MaxResults int `json:"maxResults,omitempty"`
	// Verify enables MX validation of every discovered email.
	Verify bool `json:"verify,omitempty"`
}

// Row is the result for one processed item: one website in websites mode,
// one business in places mode. Emails and VerifiedEmails are never nil.
type Row struct {
	Name           string   `json:"name"`
	Phone          string   `json:"phone"`
	Website        string   `json:"website"`
	Address        string   `json:"address"`
	Rating         *float64 `json:"rating"`
	Emails         []string `json:"emails"`
	VerifiedEmails []string `json:"verifiedEmails"`
}

// ReportRow is a Row enriched with the query that produced it.
type ReportRow struct {
	Row

	// Query is the text query the business was found with.
	Query string `json:"query"`
	// Verified reports whether MX verification ran for this row.
	Verified bool `json:"verified"`
}

// Report is the outcome of a single places query rendered for export.
type Report struct {
	Count int         `json:"count"`
	Rows  []ReportRow `json:"rows"`
	CSV   string      `json:"csv"`
}
