package storage

import "boataround-scraper/models"

// ListingWriter is the interface any clean-record storage backend must satisfy.
type ListingWriter interface {
	Write(listings []*models.Listing) error
	Close() error
}

// RecordWriter is the interface for persisting raw scraped records.
type RecordWriter interface {
	WriteRecords(records []*models.ListingRecord) error
	Close() error
}
