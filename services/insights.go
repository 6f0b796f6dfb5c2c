package services

import (
	"fmt"
	"sort"
	"strings"

	"boataround-scraper/models"
	"boataround-scraper/utils"
)

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

func (s *InsightService) Generate(listings []*models.Listing) *models.InsightReport {
	report := &models.InsightReport{
		RecordsByWeek: make(map[string]int),
	}

	if len(listings) == 0 {
		return report
	}

	report.TotalRecords = len(listings)

	var priced []*models.Listing
	var withLength []*models.Listing

	for _, l := range listings {
		if l.Price > 0 {
			priced = append(priced, l)
		}
		if l.Length > 0 {
			withLength = append(withLength, l)
		}
		if !l.CheckIn.IsZero() {
			report.RecordsByWeek[l.CheckIn.Format(models.DateLayout)]++
		}
	}

	// Price stats (only listings with price > 0)
	if len(priced) > 0 {
		report.MinPrice = priced[0].Price
		report.MaxPrice = priced[0].Price
		report.MostExpensive = priced[0]
		var total float64
		for _, l := range priced {
			total += l.Price
			if l.Price < report.MinPrice {
				report.MinPrice = l.Price
			}
			if l.Price > report.MaxPrice {
				report.MaxPrice = l.Price
				report.MostExpensive = l
			}
		}
		report.AveragePrice = round2(total / float64(len(priced)))
		report.MinPrice = round2(report.MinPrice)
		report.MaxPrice = round2(report.MaxPrice)
	}

	// Top 5 by length
	sort.Slice(withLength, func(i, j int) bool {
		return withLength[i].Length > withLength[j].Length
	})
	if len(withLength) > 5 {
		report.Longest = withLength[:5]
	} else {
		report.Longest = withLength
	}

	return report
}

func (s *InsightService) Print(r *models.InsightReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  BOATAROUND SCRAPE INSIGHTS\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Total records scraped : \033[1m%d\033[0m\n", r.TotalRecords)
	fmt.Println()

	// Price Stats
	fmt.Printf("\033[1;33m  Price Statistics (per week)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.AveragePrice > 0 {
		fmt.Printf("  Average price : \033[1;32m€%.2f\033[0m\n", r.AveragePrice)
		fmt.Printf("  Minimum price : \033[1;32m€%.2f\033[0m\n", r.MinPrice)
		fmt.Printf("  Maximum price : \033[1;32m€%.2f\033[0m\n", r.MaxPrice)
	} else {
		fmt.Printf("  No price data available\n")
	}
	fmt.Println()

	// Most Expensive
	if r.MostExpensive != nil {
		fmt.Printf("\033[1;33m  Most Expensive Boat\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  %s\n", truncate(r.MostExpensive.BoatName, 50))
		fmt.Printf("  Week  : %s\n", r.MostExpensive.CheckIn.Format(models.DateLayout))
		fmt.Printf("  Price : \033[1;31m€%.2f/week\033[0m\n", r.MostExpensive.Price)
		fmt.Println()
	}

	// Top 5 longest
	fmt.Printf("\033[1;33m  Top 5 Longest Boats\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.Longest) == 0 {
		fmt.Printf("  No length data found\n")
	} else {
		for i, l := range r.Longest {
			name := truncate(l.BoatName, 38)
			fmt.Printf("  \033[1m%d.\033[0m %-40s \033[1;32m%.2f m\033[0m\n",
				i+1, name, l.Length)
		}
	}
	fmt.Println()

	// Records per check-in week
	fmt.Printf("\033[1;33m  Records by Check-In Week\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.RecordsByWeek) == 0 {
		fmt.Printf("  No date data\n")
	} else {
		weeks := make([]string, 0, len(r.RecordsByWeek))
		for w := range r.RecordsByWeek {
			weeks = append(weeks, w)
		}
		sort.Strings(weeks)
		for _, w := range weeks {
			count := r.RecordsByWeek[w]
			bar := strings.Repeat("█", count)
			fmt.Printf("  %-12s %s (%d)\n", w, bar, count)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
