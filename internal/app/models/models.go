package models

// Campus identifies an institutional site. Users belong to exactly one
// campus; subjects may be offered on one campus or on both.
type Campus string

const (
	Campus62   Campus = "62"
	Campus128  Campus = "128"
	CampusBoth Campus = "both" // subjects only
)
