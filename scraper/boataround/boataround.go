package boataround

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"boataround-scraper/config"
	"boataround-scraper/models"
	"boataround-scraper/utils"
)

// Scraper walks Boataround search results for one destination across a set
// of weekly date windows.
type Scraper struct {
	cfg     *config.Config
	logger  *utils.Logger
	fetcher PageFetcher
	pool    *utils.WorkerPool
}

// New creates a ready-to-use Scraper. The fetcher is passed in explicitly;
// NewClient builds the production one.
func New(cfg *config.Config, logger *utils.Logger, fetcher PageFetcher) *Scraper {
	return &Scraper{
		cfg:     cfg,
		logger:  logger,
		fetcher: fetcher,
		pool:    utils.NewWorkerPool(cfg.MaxConcurrency),
	}
}

// ScrapeDestination collects every listing for the destination across all
// Saturday-to-Saturday windows in [start, end]. The result preserves window
// order, then page order, then listing order; with MaxConcurrency above 1
// the windows download in parallel but each writes to its own slot, so the
// order stays deterministic. On error the records gathered so far are
// returned alongside it.
func (s *Scraper) ScrapeDestination(ctx context.Context, destination string, start, end time.Time) ([]*models.ListingRecord, error) {
	windows := WeeklyWindows(start, end)
	s.logger.Info("[boataround] %s: %d weekly windows between %s and %s",
		destination, len(windows),
		start.Format(models.DateLayout), end.Format(models.DateLayout))

	perWindow := make([][]*models.ListingRecord, len(windows))
	perWindowErr := make([]error, len(windows))

	for i, w := range windows {
		i, w := i, w
		s.pool.Submit(func() {
			searchURL := s.searchURL(destination, w)
			s.logger.Info("[boataround] window %s → %s: %s",
				w.CheckIn.Format(models.DateLayout),
				w.CheckOut.Format(models.DateLayout),
				searchURL)
			perWindow[i], perWindowErr[i] = s.walkAllPages(ctx, searchURL)
		})
	}
	s.pool.Wait()

	var records []*models.ListingRecord
	for i := range windows {
		records = append(records, perWindow[i]...)
		if perWindowErr[i] != nil {
			return records, perWindowErr[i]
		}
	}
	return records, nil
}

// searchURL builds the page-less search URL for one window.
func (s *Scraper) searchURL(destination string, w models.DateWindow) string {
	return fmt.Sprintf("%s?destinations=%s&checkIn=%s&checkOut=%s",
		s.cfg.SearchBaseURL,
		url.QueryEscape(destination),
		w.CheckIn.Format(models.DateLayout),
		w.CheckOut.Format(models.DateLayout))
}

// walkAllPages fetches successive &page=N pages of one search URL, starting
// at 1, until the paginator reports the last page. There is no page cap
// beyond that signal.
func (s *Scraper) walkAllPages(ctx context.Context, baseURL string) ([]*models.ListingRecord, error) {
	var records []*models.ListingRecord

	for pageNumber := 1; ; pageNumber++ {
		pageURL := fmt.Sprintf("%s&page=%d", baseURL, pageNumber)

		page, err := s.fetchSearchPage(ctx, pageURL)
		if errors.Is(err, ErrResultsMissing) {
			// The section stayed missing through every retry. The page is
			// skipped and the run continues with what it has.
			s.logger.Error("[boataround] giving up on %s: %v", pageURL, err)
			return records, nil
		}
		if err != nil {
			return records, err
		}

		pageRecords := extractRecords(page)
		records = append(records, pageRecords...)
		s.logger.Info("[boataround] page number: %d, listings: %d, last page: %t",
			pageNumber, len(pageRecords), page.LastPage)

		if page.LastPage {
			return records, nil
		}
	}
}

// fetchSearchPage downloads and parses one page. Only a transiently missing
// results section is retried, with fresh downloads and no backoff; transport
// errors are fatal and bubble straight up.
func (s *Scraper) fetchSearchPage(ctx context.Context, pageURL string) (*SearchPage, error) {
	attempts := s.cfg.MaxSectionRetries
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; ; attempt++ {
		body, err := s.fetcher.FetchPage(ctx, pageURL)
		if err != nil {
			return nil, err
		}

		page, err := parseSearchPage(body)
		if err == nil {
			return page, nil
		}
		if !errors.Is(err, ErrResultsMissing) {
			return nil, err
		}
		if attempt == attempts {
			return nil, fmt.Errorf("after %d attempts: %w", attempts, err)
		}

		s.logger.Warn("[boataround] results section missing on %s — retrying (%d/%d)",
			pageURL, attempt+1, attempts)
	}
}
