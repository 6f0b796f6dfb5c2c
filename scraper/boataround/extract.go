package boataround

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"boataround-scraper/models"
)

// ErrResultsMissing reports that the search-results section was absent from
// an otherwise valid page. The site drops it transiently; this is not the
// same as a page with zero listings.
var ErrResultsMissing = errors.New("search results section not found")

// Fixed structural markers of the search-results markup. The layout is
// brittle upstream; every selector lives here so breakage is a one-place fix.
const (
	searchContainerSel = "div#search"
	resultsSectionSel  = "section.search-results-list"
	listingSel         = "li.search-result-wrapper.mt-4"
	paginatorSel       = "div.paginator--desktop"
	paginatorArrowSel  = "a.paginator__arrow"
	boatNameSel        = "span.mr-2"
	priceSel           = "span.price-box__price.ml-2"
	paramsBlockSel     = "div.d-flex"
	paramsNameSel      = "ul.search-result-middle__params-name"
	paramsValueSel     = "ul.search-result-middle__params-value"
)

// SearchPage is the parsed form of one fetched results page. It lives only
// long enough to be turned into records.
type SearchPage struct {
	Listings *goquery.Selection
	LastPage bool
}

// parseSearchPage locates the unique search container, the results section
// within it and the listing elements. A missing section yields
// ErrResultsMissing so the caller can retry the download; a section that is
// present but holds zero listings is a valid, terminal-empty page.
func parseSearchPage(body []byte) (*SearchPage, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse search page: %w", err)
	}

	// id is unique where class is not, so the container is located by id
	// first and everything else is searched inside it.
	container := doc.Find(searchContainerSel).First()

	section := container.Find(resultsSectionSel)
	if section.Length() == 0 {
		return nil, ErrResultsMissing
	}

	return &SearchPage{
		Listings: section.Find(listingSel),
		LastPage: isLastPage(container),
	}, nil
}

// isLastPage inspects the desktop paginator's "next" arrow. The page is the
// last one when the arrow carries disabled="disabled". A page without a
// paginator has nowhere to go and counts as last.
func isLastPage(container *goquery.Selection) bool {
	arrows := container.Find(paginatorSel).First().Find(paginatorArrowSel)
	if arrows.Length() < 2 {
		return true
	}
	disabled, _ := arrows.Eq(1).Attr("disabled")
	return disabled == "disabled"
}

// extractRecords converts every listing element on a page, in document order.
func extractRecords(page *SearchPage) []*models.ListingRecord {
	records := make([]*models.ListingRecord, 0, page.Listings.Length())
	page.Listings.Each(func(_ int, item *goquery.Selection) {
		rec := extractRecord(item)
		records = append(records, &rec)
	})
	return records
}

// extractRecord pulls one ListingRecord out of a listing element. It is
// total over its input: sub-fields that cannot be located stay empty so one
// malformed listing cannot sink the rest of the page.
func extractRecord(item *goquery.Selection) models.ListingRecord {
	link, _ := item.Find("a").First().Attr("href")
	checkIn, checkOut := datesFromLink(link)

	return models.ListingRecord{
		Link:       link,
		BoatName:   strings.TrimSpace(item.Find(boatNameSel).First().Text()),
		Price:      strings.TrimSpace(item.Find(priceSel).First().Text()),
		BoatLength: extractLength(item),
		CheckIn:    checkIn,
		CheckOut:   checkOut,
	}
}

// datesFromLink parses the checkIn/checkOut query parameters out of a
// listing link. The link is the canonical source for both dates; nothing
// else on the page is consulted.
func datesFromLink(href string) (checkIn, checkOut string) {
	u, err := url.Parse(href)
	if err != nil {
		return "", ""
	}
	q := u.Query()
	return q.Get("checkIn"), q.Get("checkOut")
}

// extractLength finds the boat length in the parameter tables. Each d-flex
// block renders two parallel lists, parameter names and parameter values,
// related only by position. Blocks are scanned in document order; the first
// one whose name list contains "Length" wins. No match leaves the length
// empty rather than failing the record.
func extractLength(item *goquery.Selection) string {
	length := ""

	item.Find(paramsBlockSel).EachWithBreak(func(_ int, block *goquery.Selection) bool {
		names := block.Find(paramsNameSel).First().Find("li")

		index := -1
		names.EachWithBreak(func(i int, name *goquery.Selection) bool {
			if strings.Contains(name.Text(), "Length") {
				index = i
				return false
			}
			return true
		})
		if index < 0 {
			return true
		}

		values := block.Find(paramsValueSel).First().Find("li")
		if v, ok := pairedValue(values, index); ok {
			length = v
			return false
		}
		return true
	})

	return length
}

// pairedValue reads the entry of a value list sitting at the same position
// as a matched entry of the adjacent name list. Out-of-range indexes report
// no value instead of panicking.
func pairedValue(values *goquery.Selection, index int) (string, bool) {
	if index < 0 || index >= values.Length() {
		return "", false
	}
	return strings.TrimSpace(values.Eq(index).Text()), true
}
