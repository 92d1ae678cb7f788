package service

import (
	"context"
	"sort"
	"time"

	"carlog/internal/models"
	"carlog/internal/repository"
)

const dateLayout = "2006-01-02"

// StatsService recomputes the dashboard aggregates in full on every read.
// Record counts are personal-use scale, so no caching is kept.
type StatsService struct {
	records repository.Records
}

func NewStatsService(records repository.Records) *StatsService {
	return &StatsService{records: records}
}

// Dashboard aggregates all of the user's records. TotalSpent, TotalServices
// and ByMonth cover all time; HasServiceInMonth covers only the given year,
// keyed by zero-based month index. A year of 0 selects the current year.
func (s *StatsService) Dashboard(ctx context.Context, userID string, year int) (models.DashboardStats, error) {
	recs, err := s.records.ListByUser(ctx, userID)
	if err != nil {
		return models.DashboardStats{}, err
	}

	if year == 0 {
		year = time.Now().Year()
	}

	stats := models.DashboardStats{
		TotalServices:     len(recs),
		ByMonth:           make(map[string]float64),
		HasServiceInMonth: make(map[int]bool),
	}

	yearSet := map[int]bool{time.Now().Year(): true}
	for _, r := range recs {
		stats.TotalSpent += r.Cost

		d, err := time.Parse(dateLayout, r.Date)
		if err != nil {
			// Unparseable dates still count toward totals but carry no month.
			continue
		}
		key := d.Format("2006-01")
		stats.ByMonth[key] += r.Cost
		yearSet[d.Year()] = true

		if d.Year() == year {
			stats.HasServiceInMonth[int(d.Month())-1] = true
		}
	}

	for y := range yearSet {
		stats.Years = append(stats.Years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(stats.Years)))

	return stats, nil
}
