package ports

// MetricData is a single dashboard metric sample.
type MetricData struct {
	Timestamp string  `json:"timestamp"`
	Type      string  `json:"type"`
	Value     float64 `json:"value"`
}

// DashboardStats is the headline figures block on the dashboard.
type DashboardStats struct {
	ActiveSensors      int          `json:"active_sensors"`
	RunningSimulations int          `json:"running_simulations"`
	OpenIncidents      int          `json:"open_incidents"`
	SystemUptime       float64      `json:"system_uptime"`
	Metrics            []MetricData `json:"metrics"`
}

// DataPoint is one sample in an overview chart.
type DataPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartData is a named chart with its samples.
type ChartData struct {
	Title string      `json:"title"`
	Kind  string      `json:"kind"`
	Data  []DataPoint `json:"data"`
}

// Alert is a dashboard banner entry.
type Alert struct {
	Level     string `json:"level"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// DashboardOverview aggregates the overview page payload.
type DashboardOverview struct {
	Summary map[string]any `json:"summary"`
	Charts  []ChartData    `json:"charts"`
	Alerts  []Alert        `json:"alerts"`
}

// TimeSeriesPoint is one indicator sample with free-form metadata.
type TimeSeriesPoint struct {
	Timestamp string         `json:"timestamp"`
	Value     float64        `json:"value"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// IndicatorData is the payload for a single indicator mode (traffic, air, ...).
type IndicatorData struct {
	Mode       string            `json:"mode"`
	Summary    map[string]any    `json:"summary"`
	TimeSeries []TimeSeriesPoint `json:"time_series"`
	Metrics    map[string]any    `json:"metrics"`
}

// ServiceStatus describes one internal service on the status page.
type ServiceStatus struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	LatencyMs int64  `json:"latency_ms"`
}

// SystemStatus is the aggregate status page payload.
type SystemStatus struct {
	Status   string                   `json:"status"`
	Version  string                   `json:"version"`
	Uptime   int64                    `json:"uptime"`
	Services map[string]ServiceStatus `json:"services"`
}

// DashboardService serves the mock statistics the dashboard renders. The
// numeric content is randomized demo data, not a contract.
type DashboardService interface {
	Stats() DashboardStats
	Overview() DashboardOverview
	Indicator(mode string) IndicatorData
	SystemStatus() SystemStatus
	SystemHealth() map[string]any
}
