package boataround

import (
	"context"
	"errors"
	"testing"

	"boataround-scraper/config"
	"boataround-scraper/utils"
)

type fakeFetcher struct {
	pages map[string]string
	calls []string
}

func (f *fakeFetcher) FetchPage(_ context.Context, url string) ([]byte, error) {
	f.calls = append(f.calls, url)
	body, ok := f.pages[url]
	if !ok {
		return nil, &FatalError{URL: url, Err: errors.New("no such page")}
	}
	return []byte(body), nil
}

func testConfig() *config.Config {
	return &config.Config{
		SearchBaseURL:     "https://example.test/search",
		MaxSectionRetries: 5,
		MaxConcurrency:    1,
	}
}

func newTestScraper(fetcher PageFetcher) *Scraper {
	return New(testConfig(), utils.NewLogger(), fetcher)
}

func TestWalkAllPagesStopsAtLastPage(t *testing.T) {
	base := "https://example.test/search?destinations=split-1&checkIn=2024-05-04&checkOut=2024-05-11"
	fetcher := &fakeFetcher{pages: map[string]string{
		base + "&page=1": pageHTML(false, listingHTML("/a?checkIn=2024-05-04&checkOut=2024-05-11", "A", "€100.00")),
		base + "&page=2": pageHTML(false, listingHTML("/b?checkIn=2024-05-04&checkOut=2024-05-11", "B", "€200.00")),
		base + "&page=3": pageHTML(true, listingHTML("/c?checkIn=2024-05-04&checkOut=2024-05-11", "C", "€300.00")),
	}}

	records, err := newTestScraper(fetcher).walkAllPages(context.Background(), base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fetcher.calls) != 3 {
		t.Errorf("fetch count: got %d, want 3", len(fetcher.calls))
	}
	if len(records) != 3 {
		t.Fatalf("records: got %d, want 3", len(records))
	}
	for i, want := range []string{"A", "B", "C"} {
		if records[i].BoatName != want {
			t.Errorf("record %d: got %q, want %q", i, records[i].BoatName, want)
		}
	}
}

func TestWalkAllPagesSkipsPageWhenSectionStaysMissing(t *testing.T) {
	base := "https://example.test/search?destinations=split-1&checkIn=2024-05-04&checkOut=2024-05-11"
	fetcher := &fakeFetcher{pages: map[string]string{
		base + "&page=1": `<html><body><div id="search"><p>No results found.</p></div></body></html>`,
	}}

	records, err := newTestScraper(fetcher).walkAllPages(context.Background(), base)
	if err != nil {
		t.Fatalf("the run should continue after giving up on the page, got: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records: got %d, want 0", len(records))
	}
	// Every attempt re-downloads the page.
	if len(fetcher.calls) != 5 {
		t.Errorf("fetch count: got %d, want 5", len(fetcher.calls))
	}
}

func TestWalkAllPagesPropagatesFatalErrors(t *testing.T) {
	base := "https://example.test/search?destinations=split-1&checkIn=2024-05-04&checkOut=2024-05-11"
	fetcher := &fakeFetcher{pages: map[string]string{}}

	_, err := newTestScraper(fetcher).walkAllPages(context.Background(), base)

	var fatal *FatalError
	if !errors.As(err, &fatal) {
		t.Fatalf("got %v, want *FatalError", err)
	}
	// Transport errors are never retried.
	if len(fetcher.calls) != 1 {
		t.Errorf("fetch count: got %d, want 1", len(fetcher.calls))
	}
}

func TestScrapeDestinationPreservesOrder(t *testing.T) {
	// 2 windows × 2 pages × 2 listings: the 8 records must come back in
	// window, then page, then listing order.
	w1 := "https://example.test/search?destinations=split-1&checkIn=2024-05-04&checkOut=2024-05-11"
	w2 := "https://example.test/search?destinations=split-1&checkIn=2024-05-11&checkOut=2024-05-18"

	listing := func(name string) string {
		return listingHTML("/"+name+"?checkIn=2024-05-04&checkOut=2024-05-11", name, "€100.00")
	}
	fetcher := &fakeFetcher{pages: map[string]string{
		w1 + "&page=1": pageHTML(false, listing("w1p1a"), listing("w1p1b")),
		w1 + "&page=2": pageHTML(true, listing("w1p2a"), listing("w1p2b")),
		w2 + "&page=1": pageHTML(false, listing("w2p1a"), listing("w2p1b")),
		w2 + "&page=2": pageHTML(true, listing("w2p2a"), listing("w2p2b")),
	}}

	records, err := newTestScraper(fetcher).ScrapeDestination(
		context.Background(), "split-1", day("2024-05-01"), day("2024-05-18"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"w1p1a", "w1p1b", "w1p2a", "w1p2b", "w2p1a", "w2p1b", "w2p2a", "w2p2b"}
	if len(records) != len(want) {
		t.Fatalf("records: got %d, want %d", len(records), len(want))
	}
	for i, name := range want {
		if records[i].BoatName != name {
			t.Errorf("record %d: got %q, want %q", i, records[i].BoatName, name)
		}
	}
}

func TestScrapeDestinationOrderWithConcurrentWindows(t *testing.T) {
	w1 := "https://example.test/search?destinations=split-1&checkIn=2024-05-04&checkOut=2024-05-11"
	w2 := "https://example.test/search?destinations=split-1&checkIn=2024-05-11&checkOut=2024-05-18"

	listing := func(name string) string {
		return listingHTML("/"+name+"?checkIn=2024-05-04&checkOut=2024-05-11", name, "€100.00")
	}
	fetcher := &safeFakeFetcher{pages: map[string]string{
		w1 + "&page=1": pageHTML(true, listing("w1")),
		w2 + "&page=1": pageHTML(true, listing("w2")),
	}}

	cfg := testConfig()
	cfg.MaxConcurrency = 4
	s := New(cfg, utils.NewLogger(), fetcher)

	records, err := s.ScrapeDestination(
		context.Background(), "split-1", day("2024-05-01"), day("2024-05-18"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 || records[0].BoatName != "w1" || records[1].BoatName != "w2" {
		t.Errorf("window order not preserved: %+v", records)
	}
}

func TestScrapeDestinationNoWindows(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{}}

	records, err := newTestScraper(fetcher).ScrapeDestination(
		context.Background(), "split-1", day("2024-05-05"), day("2024-05-10"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records: got %d, want 0", len(records))
	}
	if len(fetcher.calls) != 0 {
		t.Errorf("fetch count: got %d, want 0", len(fetcher.calls))
	}
}

// safeFakeFetcher is a fakeFetcher without call recording, usable from
// concurrent windows.
type safeFakeFetcher struct {
	pages map[string]string
}

func (f *safeFakeFetcher) FetchPage(_ context.Context, url string) ([]byte, error) {
	body, ok := f.pages[url]
	if !ok {
		return nil, &FatalError{URL: url, Err: errors.New("no such page")}
	}
	return []byte(body), nil
}
