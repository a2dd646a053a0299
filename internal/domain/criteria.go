package domain

// FilterCriteria narrows a record listing. All fields are optional; an empty
// or malformed value places no constraint. Multiple criteria AND together.
type FilterCriteria struct {
	// Q is a case-insensitive substring matched against method, URL,
	// status, error, and tag.
	Q string `json:"q,omitempty"`

	// Method is an exact, case-insensitive HTTP verb match.
	Method string `json:"method,omitempty"`

	// Status is a single code ("204") or an inclusive range ("500-599").
	Status string `json:"status,omitempty"`

	// Direction matches incoming or outgoing records.
	Direction string `json:"direction,omitempty"`

	// From and To are inclusive RFC 3339 timestamp bounds.
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// RecordPage is one page of a newest-first record listing.
type RecordPage struct {
	Total    int      `json:"total"`
	Page     int      `json:"page"`
	PageSize int      `json:"pageSize"`
	Items    []Record `json:"items"`
}
