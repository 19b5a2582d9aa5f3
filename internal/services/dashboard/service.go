// Package dashboard assembles the portfolio summary: metric cards, occupancy
// insights and the recent activity feed. The assembled summary is cached in
// redis for a short window since every card is a full-table rollup.
package dashboard

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"estates/internal/models"
	"estates/internal/repositories"
)

const (
	summaryCacheKey = "dashboard:summary"
	summaryCacheTTL = 30 * time.Second
	recentFeedSize  = 5
)

// MetricCard is one headline figure on the dashboard.
type MetricCard struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// OccupancyInsight is the per-property occupancy row.
type OccupancyInsight struct {
	PropertyID    uint    `json:"property_id"`
	PropertyName  string  `json:"property_name"`
	TotalUnits    int64   `json:"total_units"`
	OccupiedUnits int64   `json:"occupied_units"`
	OccupancyRate float64 `json:"occupancy_rate"`
	PendingKyc    int64   `json:"pending_kyc"`
}

// ActivityItem is one entry in the recent activity feed.
type ActivityItem struct {
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Summary is the full dashboard payload.
type Summary struct {
	Cards          []MetricCard       `json:"cards"`
	Occupancy      []OccupancyInsight `json:"occupancy"`
	RecentActivity []ActivityItem     `json:"recent_activity"`
	GeneratedAt    time.Time          `json:"generated_at"`
}

// summaryCache is the slice of the cache adapter the dashboard needs.
type summaryCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

type Service interface {
	Summary(ctx context.Context) (*Summary, error)
}

type service struct {
	statsRepo    repositories.StatsRepository
	propertyRepo repositories.PropertyRepository
	cache        summaryCache
	now          func() time.Time
}

// NewService creates a new dashboard Service. The cache may be nil, in which
// case every call recomputes.
func NewService(statsRepo repositories.StatsRepository, propertyRepo repositories.PropertyRepository, cache summaryCache) Service {
	return &service{
		statsRepo:    statsRepo,
		propertyRepo: propertyRepo,
		cache:        cache,
		now:          time.Now,
	}
}

func (s *service) Summary(ctx context.Context) (*Summary, error) {
	if s.cache != nil {
		var cached Summary
		hit, err := s.cache.Get(ctx, summaryCacheKey, &cached)
		if err != nil {
			log.Printf("dashboard cache read failed: %v", err)
		} else if hit {
			return &cached, nil
		}
	}

	summary, err := s.build()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetWithTTL(ctx, summaryCacheKey, summary, summaryCacheTTL); err != nil {
			log.Printf("dashboard cache write failed: %v", err)
		}
	}
	return summary, nil
}

func (s *service) build() (*Summary, error) {
	properties, err := s.statsRepo.PropertyCount()
	if err != nil {
		return nil, err
	}
	tenants, err := s.statsRepo.TenantCount()
	if err != nil {
		return nil, err
	}
	activeLeases, err := s.statsRepo.ActiveLeaseCount()
	if err != nil {
		return nil, err
	}
	pendingKyc, err := s.statsRepo.PendingKycCount()
	if err != nil {
		return nil, err
	}
	revenue, err := s.statsRepo.ActiveLeaseRentSum()
	if err != nil {
		return nil, err
	}

	occupancy, err := s.occupancyInsights()
	if err != nil {
		return nil, err
	}

	feed, err := s.recentActivity()
	if err != nil {
		return nil, err
	}

	return &Summary{
		Cards: []MetricCard{
			{Label: "Properties", Value: strconv.FormatInt(properties, 10)},
			{Label: "Tenants", Value: strconv.FormatInt(tenants, 10)},
			{Label: "Active leases", Value: strconv.FormatInt(activeLeases, 10)},
			{Label: "Monthly revenue", Value: FormatKES(revenue)},
			{Label: "Pending KYC", Value: strconv.FormatInt(pendingKyc, 10)},
		},
		Occupancy:      occupancy,
		RecentActivity: feed,
		GeneratedAt:    s.now(),
	}, nil
}

func (s *service) occupancyInsights() ([]OccupancyInsight, error) {
	rows, err := s.statsRepo.OccupancyRows()
	if err != nil {
		return nil, err
	}
	pending, err := s.statsRepo.PendingKycPerProperty()
	if err != nil {
		return nil, err
	}

	insights := make([]OccupancyInsight, len(rows))
	for i, row := range rows {
		rate := 0.0
		if row.TotalUnits > 0 {
			rate = models.RoundAmount(float64(row.ActiveLeases) / float64(row.TotalUnits))
		}
		insights[i] = OccupancyInsight{
			PropertyID:    row.PropertyID,
			PropertyName:  row.PropertyName,
			TotalUnits:    row.TotalUnits,
			OccupiedUnits: row.ActiveLeases,
			OccupancyRate: rate,
			PendingKyc:    pending[row.PropertyID],
		}
	}
	return insights, nil
}

func (s *service) recentActivity() ([]ActivityItem, error) {
	records, err := s.statsRepo.RecentMaintenance(recentFeedSize)
	if err != nil {
		return nil, err
	}

	items := make([]ActivityItem, len(records))
	for i, record := range records {
		subtitle := ""
		if property, err := s.propertyRepo.GetByID(record.PropertyID); err == nil {
			subtitle = property.Name
		}
		items[i] = ActivityItem{
			Title:     record.Title,
			Subtitle:  subtitle,
			Status:    record.Status,
			Timestamp: FormatFeedTime(record.CreatedAt),
		}
	}
	return items, nil
}

// FormatFeedTime renders a feed timestamp, e.g. "02 Jan • 15:04".
func FormatFeedTime(t time.Time) string {
	return t.Format("02 Jan") + " • " + t.Format("15:04")
}

// FormatKES renders a shilling amount with thousands separators and no
// fractional part, e.g. "KES 1,250,000".
func FormatKES(amount float64) string {
	whole := strconv.FormatInt(int64(amount+0.5), 10)

	negative := strings.HasPrefix(whole, "-")
	digits := strings.TrimPrefix(whole, "-")

	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	out := strings.Join(groups, ",")
	if negative {
		out = "-" + out
	}
	return fmt.Sprintf("KES %s", out)
}
