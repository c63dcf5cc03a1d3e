package service

import (
	"math/rand"
	"time"

	"github.com/sustaincity/city-backend/internal/core/ports"
)

const appVersion = "1.0.0"

// DashboardService generates the randomized demo statistics the dashboard
// renders. The numbers carry no contract; only the shapes do.
type DashboardService struct {
	startedAt time.Time
}

func NewDashboardService() *DashboardService {
	return &DashboardService{startedAt: time.Now().UTC()}
}

func (s *DashboardService) Stats() ports.DashboardStats {
	now := time.Now().UTC()
	return ports.DashboardStats{
		ActiveSensors:      245,
		RunningSimulations: 12,
		OpenIncidents:      34,
		SystemUptime:       98.5,
		Metrics: []ports.MetricData{
			{Timestamp: now.Add(-2 * time.Hour).Format(time.RFC3339), Type: "traffic", Value: 75.5},
			{Timestamp: now.Add(-time.Hour).Format(time.RFC3339), Type: "traffic", Value: 82.3},
			{Timestamp: now.Format(time.RFC3339), Type: "traffic", Value: 68.9},
		},
	}
}

func (s *DashboardService) Overview() ports.DashboardOverview {
	now := time.Now().UTC()
	return ports.DashboardOverview{
		Summary: map[string]any{
			"totalVehicles": 15420,
			"avgSpeed":      45.2,
			"incidents":     8,
			"efficiency":    87.3,
		},
		Charts: []ports.ChartData{
			{
				Title: "Traffic Volume",
				Kind:  "line",
				Data: []ports.DataPoint{
					{Label: "00:00", Value: 120},
					{Label: "04:00", Value: 80},
					{Label: "08:00", Value: 450},
					{Label: "12:00", Value: 380},
					{Label: "16:00", Value: 520},
					{Label: "20:00", Value: 290},
				},
			},
		},
		Alerts: []ports.Alert{
			{Level: "warning", Message: "High traffic on Route 101", Timestamp: now.Format(time.RFC3339)},
			{Level: "info", Message: "Scheduled maintenance in Zone A", Timestamp: now.Add(-time.Hour).Format(time.RFC3339)},
		},
	}
}

func (s *DashboardService) Indicator(mode string) ports.IndicatorData {
	now := time.Now().UTC()

	series := make([]ports.TimeSeriesPoint, 0, 24)
	for i := 0; i < 24; i++ {
		series = append(series, ports.TimeSeriesPoint{
			Timestamp: now.Add(-time.Duration(24-i) * time.Hour).Format(time.RFC3339),
			Value:     50 + rand.Float64()*50,
			Metadata: map[string]any{
				"hour":       i,
				"conditions": "normal",
			},
		})
	}

	return ports.IndicatorData{
		Mode: mode,
		Summary: map[string]any{
			"mode":       mode,
			"totalCount": 500 + rand.Intn(1000),
			"avgSpeed":   30 + rand.Float64()*20,
			"efficiency": 70 + rand.Float64()*25,
		},
		TimeSeries: series,
		Metrics: map[string]any{
			"peakHour":      "17:00",
			"lowHour":       "03:00",
			"avgDailyCount": 12450,
		},
	}
}

func (s *DashboardService) SystemStatus() ports.SystemStatus {
	return ports.SystemStatus{
		Status:  "healthy",
		Version: appVersion,
		Uptime:  int64(time.Since(s.startedAt).Seconds()),
		Services: map[string]ports.ServiceStatus{
			"database":   {Status: "healthy", Message: "Connected", LatencyMs: 5},
			"cache":      {Status: "healthy", Message: "Running", LatencyMs: 2},
			"api":        {Status: "healthy", Message: "Operational", LatencyMs: 10},
			"monitoring": {Status: "healthy", Message: "Active", LatencyMs: 15},
		},
	}
}

func (s *DashboardService) SystemHealth() map[string]any {
	return map[string]any{
		"status":    "UP",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    int64(time.Since(s.startedAt).Seconds()),
		"details": map[string]string{
			"application": "Sustainable City Management Backend",
			"version":     appVersion,
		},
	}
}
