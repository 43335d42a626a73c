package domain

// Business is a normalized record of a single place returned by a places search.
// Optional upstream fields default to their zero value; Rating is nil when the
// upstream result carried no rating.
type Business struct {
	// Name is the display name of the business.
	Name string `json:"name"`
	// Phone is the phone number as formatted by the upstream provider.
	Phone string `json:"phone"`
	// Address is the formatted postal address.
	Address string `json:"address"`
	// Rating is the average user rating, if any.
	Rating *float64 `json:"rating"`
	// Website is the business website URL, empty when unknown.
	Website string `json:"website"`
}
