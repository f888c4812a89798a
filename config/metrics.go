package config

// MetricsConfig configures the observability sinks.
type MetricsConfig struct {
	Prometheus PrometheusConfig `json:"prometheus"`
	Influx     InfluxConfig     `json:"influx"`
}

// PrometheusConfig exposes assignment metrics over HTTP.
type PrometheusConfig struct {
	Enabled bool `json:"enabled"`
	// Addr is the listen address of the /metrics endpoint.
	Addr string `json:"addr"`
}

// InfluxConfig writes assignment events to InfluxDB.
type InfluxConfig struct {
	Enabled bool   `json:"enabled"`
	URL     string `json:"url"`
	Token   string `json:"token"`
	Org     string `json:"org"`
	Bucket  string `json:"bucket"`
}

// SetDefaults applies sane defaults.
func (c *MetricsConfig) SetDefaults() {
	if c.Prometheus.Addr == "" {
		c.Prometheus.Addr = ":9090"
	}
	if c.Influx.URL == "" {
		c.Influx.URL = "http://localhost:8086"
	}
}
