package models

// Suggestion represents a bookable window offered to the user.
type Suggestion struct {
	Date  string `json:"date"`  // Canonical date
	Time  string `json:"time"`  // e.g. "8:00 AM - 9:00 AM", ready to populate the time field
	Start int    `json:"start"` // Minutes from midnight
	End   int    `json:"end"`   // Minutes from midnight
	Label string `json:"label"` // e.g. "April 25, 2025 • 8:00 AM - 9:00 AM"
}

// SuggestionResponse is returned by the suggestion endpoint.
type SuggestionResponse struct {
	Location     string       `json:"location"`
	Date         string       `json:"date,omitempty"`
	Suggestions  []Suggestion `json:"suggestions"`
	DaysExamined int          `json:"daysExamined,omitempty"`
}
