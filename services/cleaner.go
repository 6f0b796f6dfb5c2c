package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"boataround-scraper/models"
	"boataround-scraper/utils"
)

var (
	// numberRegexp captures the first numeric value of a display string,
	// commas already removed.
	numberRegexp = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// Cleaner coerces raw ListingRecords into typed Listings: currency
// decoration stripped off the price, the unit suffix off the length and the
// dates parsed into calendar values. The scraping core hands over raw
// display strings untouched; all coercion happens here.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean processes raw records and returns typed listings. Records without a
// link are dropped; everything else degrades field by field.
func (c *Cleaner) Clean(raw []*models.ListingRecord) []*models.Listing {
	result := make([]*models.Listing, 0, len(raw))

	for _, r := range raw {
		link := strings.TrimSpace(r.Link)
		if link == "" {
			c.logger.Warn("[cleaner] Dropping record with empty link: %s", r.BoatName)
			continue
		}

		result = append(result, &models.Listing{
			Link:     link,
			BoatName: strings.TrimSpace(r.BoatName),
			Length:   c.parseLength(r.BoatLength),
			Price:    c.parsePrice(r.Price),
			CheckIn:  c.parseDate(r.CheckIn),
			CheckOut: c.parseDate(r.CheckOut),
		})
	}

	c.logger.Info("[cleaner] Cleaned %d → %d records (dropped %d)",
		len(raw), len(result), len(raw)-len(result))
	return result
}

// parsePrice extracts the numeric value out of a currency-formatted display
// string. Examples:
//
//	"€1,234.00" → 1234
//	"€ 950"     → 950
//	""          → 0
func (c *Cleaner) parsePrice(raw string) float64 {
	cleaned := strings.ReplaceAll(raw, ",", "")
	match := numberRegexp.FindString(cleaned)
	if match == "" {
		return 0
	}
	val, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return val
}

// parseLength extracts the numeric value out of a unit-suffixed length
// string such as "12 m" or "11.95 m".
func (c *Cleaner) parseLength(raw string) float64 {
	match := numberRegexp.FindString(raw)
	if match == "" {
		return 0
	}
	val, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return val
}

// parseDate parses a YYYY-MM-DD string; anything else yields the zero time.
func (c *Cleaner) parseDate(raw string) time.Time {
	t, err := time.Parse(models.DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}
	}
	return t
}
