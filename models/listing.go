package models

import "time"

// ListingRecord holds one boat offer exactly as it appears on a search-results
// page. Price and BoatLength keep their display decoration ("€1,234.00",
// "12 m"); CheckIn and CheckOut are always the checkIn/checkOut query
// parameters parsed out of Link, never supplied independently.
type ListingRecord struct {
	Link       string
	BoatName   string
	BoatLength string
	Price      string
	CheckIn    string
	CheckOut   string
}

// Listing is the cleaned, coerced record ready for Excel or PostgreSQL storage.
type Listing struct {
	ID       int64
	Link     string
	BoatName string
	Length   float64
	Price    float64
	CheckIn  time.Time
	CheckOut time.Time
}

// DateWindow is a single checkIn/checkOut pair driving one search query.
// Windows are generated, never mutated.
type DateWindow struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// Format used for dates everywhere in this project: query parameters,
// config values and log output.
const DateLayout = "2006-01-02"

// InsightReport holds the computed summary over the cleaned dataset.
type InsightReport struct {
	TotalRecords  int
	AveragePrice  float64
	MinPrice      float64
	MaxPrice      float64
	MostExpensive *Listing
	Longest       []*Listing
	RecordsByWeek map[string]int
}
