package services

import (
	"testing"
	"time"

	"boataround-scraper/models"
	"boataround-scraper/utils"
)

func week(s string) time.Time {
	t, _ := time.Parse(models.DateLayout, s)
	return t
}

func sampleListings() []*models.Listing {
	return []*models.Listing{
		{BoatName: "Bavaria 46", Price: 2000, Length: 14.3, CheckIn: week("2024-05-04"), Link: "/1"},
		{BoatName: "Oceanis 38", Price: 500, Length: 11.5, CheckIn: week("2024-05-04"), Link: "/2"},
		{BoatName: "Lagoon 42", Price: 1200, Length: 12.8, CheckIn: week("2024-05-11"), Link: "/3"},
		{BoatName: "Dufour 390", Price: 3000, Length: 0, CheckIn: week("2024-05-11"), Link: "/4"},
		{BoatName: "Elan 45", Price: 0, Length: 13.85, CheckIn: week("2024-05-11"), Link: "/5"},
	}
}

func TestInsightCounts(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	r := svc.Generate(sampleListings())
	if r.TotalRecords != 5 {
		t.Errorf("TotalRecords: got %d, want 5", r.TotalRecords)
	}
}

func TestInsightPrices(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	r := svc.Generate(sampleListings())
	wantAvg := 1675.00
	if r.AveragePrice != wantAvg {
		t.Errorf("AveragePrice: got %.2f, want %.2f", r.AveragePrice, wantAvg)
	}
	if r.MinPrice != 500 {
		t.Errorf("MinPrice: got %.2f, want 500", r.MinPrice)
	}
	if r.MaxPrice != 3000 {
		t.Errorf("MaxPrice: got %.2f, want 3000", r.MaxPrice)
	}
}

func TestInsightMostExpensive(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	r := svc.Generate(sampleListings())
	if r.MostExpensive == nil {
		t.Fatal("MostExpensive should not be nil")
	}
	if r.MostExpensive.BoatName != "Dufour 390" {
		t.Errorf("MostExpensive: got %q, want %q", r.MostExpensive.BoatName, "Dufour 390")
	}
}

func TestInsightLongest(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	r := svc.Generate(sampleListings())
	if len(r.Longest) != 4 {
		t.Fatalf("Longest len: got %d, want 4", len(r.Longest))
	}
	if r.Longest[0].Length != 14.3 {
		t.Errorf("Longest[0].Length: got %.2f, want 14.3", r.Longest[0].Length)
	}
}

func TestInsightWeekGrouping(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	r := svc.Generate(sampleListings())
	if r.RecordsByWeek["2024-05-04"] != 2 {
		t.Errorf("2024-05-04 count: got %d, want 2", r.RecordsByWeek["2024-05-04"])
	}
	if r.RecordsByWeek["2024-05-11"] != 3 {
		t.Errorf("2024-05-11 count: got %d, want 3", r.RecordsByWeek["2024-05-11"])
	}
}

func TestInsightEmptyInput(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	r := svc.Generate(nil)
	if r.TotalRecords != 0 {
		t.Errorf("expected 0 total records for empty input")
	}
}
