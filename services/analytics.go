package services

import (
	"time"
	"welfare-assistance-api/models"

	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

const analyticsCacheKey = "dashboard_analytics"

// Dashboards poll every 10 seconds, so counters older than one poll
// interval are acceptable by design.
var analyticsCache = gocache.New(10*time.Second, time.Minute)

// DashboardAnalytics is the counter block the admin overview renders.
type DashboardAnalytics struct {
	TotalRequests     int64   `json:"totalRequests"`
	PendingRequests   int64   `json:"pendingRequests"`
	ApprovedRequests  int64   `json:"approvedRequests"`
	RejectedRequests  int64   `json:"rejectedRequests"`
	ForwardedRequests int64   `json:"forwardedRequests"`
	CompletedSurveys  int64   `json:"completedSurveys"`
	TotalDonors       int64   `json:"totalDonors"`
	ActiveDonors      int64   `json:"activeDonors"`
	PendingDonors     int64   `json:"pendingDonors"`
	TotalPledges      int64   `json:"totalPledges"`
	TotalPledged      float64 `json:"totalPledged"`
}

type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// ClearAnalyticsCache drops the cached counters, forcing a recount.
func ClearAnalyticsCache() {
	analyticsCache.Delete(analyticsCacheKey)
}

// Overview returns the dashboard counters, recounting at most once per
// cache window.
func (s *AnalyticsService) Overview() (*DashboardAnalytics, error) {
	if cached, ok := analyticsCache.Get(analyticsCacheKey); ok {
		return cached.(*DashboardAnalytics), nil
	}

	analytics := &DashboardAnalytics{}

	requests := s.db.Model(&models.AssistanceRequest{})
	if err := requests.Count(&analytics.TotalRequests).Error; err != nil {
		return nil, err
	}

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&analytics.PendingRequests, s.db.Model(&models.AssistanceRequest{}).Where("status = ?", models.RequestPending)},
		{&analytics.ApprovedRequests, s.db.Model(&models.AssistanceRequest{}).Where("status = ?", models.RequestApproved)},
		{&analytics.RejectedRequests, s.db.Model(&models.AssistanceRequest{}).Where("status = ?", models.RequestRejected)},
		{&analytics.ForwardedRequests, s.db.Model(&models.AssistanceRequest{}).Where("forwarded_to_survey = ?", true)},
		{&analytics.CompletedSurveys, s.db.Model(&models.Survey{}).Where("status = ?", models.SurveyCompleted)},
		{&analytics.TotalDonors, s.db.Model(&models.Account{}).Where("role = ?", models.RoleDonor)},
		{&analytics.ActiveDonors, s.db.Model(&models.Account{}).Where("role = ? AND donor_status = ?", models.RoleDonor, models.DonorActive)},
		{&analytics.PendingDonors, s.db.Model(&models.Account{}).Where("role = ? AND donor_status = ?", models.RoleDonor, models.DonorPending)},
		{&analytics.TotalPledges, s.db.Model(&models.Pledge{})},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	var total *float64
	if err := s.db.Model(&models.Pledge{}).Select("SUM(amount)").Scan(&total).Error; err != nil {
		return nil, err
	}
	if total != nil {
		analytics.TotalPledged = *total
	}

	analyticsCache.Set(analyticsCacheKey, analytics, gocache.DefaultExpiration)

	return analytics, nil
}
