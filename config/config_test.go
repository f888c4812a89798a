package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `inputs:
  appointments: "appointments.csv"
  roster: "roster.txt"
  edits: "edits.txt"
oracle:
  api_key: "secret"
geocode:
  enabled: true
windows:
  explicit:
    - start: "2024-12-20T09:00:00Z"
      end: "2024-12-20T11:00:00Z"
      allow_edit: true
    - start: "2024-12-20T11:01:00Z"
      end: "2024-12-20T14:00:00Z"
metrics:
  prometheus:
    enabled: true
    addr: ":9191"
mqtt:
  enabled: true
  broker: "tcp://localhost:1883"
  client_id: "fieldassign"
  topic: "assignments/windows"
report:
  format: "csv"
  output: "out.csv"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"appointments", cfg.Inputs.Appointments, "appointments.csv"},
		{"roster", cfg.Inputs.Roster, "roster.txt"},
		{"edits", cfg.Inputs.Edits, "edits.txt"},
		{"api_key", cfg.Oracle.APIKey, "secret"},
		{"geocode enabled", cfg.Geocode.Enabled, true},
		{"geocode key inherits oracle", cfg.Geocode.APIKey, "secret"},
		{"window count", len(cfg.Windows.Explicit), 2},
		{"first window editable", cfg.Windows.Explicit[0].AllowEdit, true},
		{"prom enabled", cfg.Metrics.Prometheus.Enabled, true},
		{"prom addr", cfg.Metrics.Prometheus.Addr, ":9191"},
		{"influx url default", cfg.Metrics.Influx.URL, "http://localhost:8086"},
		{"mqtt broker", cfg.MQTT.Broker, "tcp://localhost:1883"},
		{"report format", cfg.Report.Format, "csv"},
		{"report output", cfg.Report.Output, "out.csv"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: got %v, want %v", c.name, c.got, c.want)
		}
	}

	ws, err := cfg.Windows.Build()
	if err != nil {
		t.Fatalf("build windows: %v", err)
	}
	if len(ws) != 2 || !ws[0].AllowEdit || ws[1].AllowEdit {
		t.Errorf("built windows wrong: %+v", ws)
	}
}

func TestLoadRejectsBadConfigs(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name string
		data string
	}{
		{"missing inputs", "oracle:\n  api_key: \"secret\"\n"},
		{"missing api key", "inputs:\n  appointments: \"a.csv\"\n  roster: \"r.txt\"\n"},
		{"overlapping windows", `inputs:
  appointments: "a.csv"
  roster: "r.txt"
oracle:
  api_key: "secret"
windows:
  explicit:
    - start: "2024-12-20T09:00:00Z"
      end: "2024-12-20T11:00:00Z"
    - start: "2024-12-20T11:00:00Z"
      end: "2024-12-20T14:00:00Z"
`},
		{"mqtt enabled without broker", `inputs:
  appointments: "a.csv"
  roster: "r.txt"
oracle:
  api_key: "secret"
mqtt:
  enabled: true
`},
		{"bad report format", `inputs:
  appointments: "a.csv"
  roster: "r.txt"
oracle:
  api_key: "secret"
report:
  format: "xlsx"
`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name+".yaml")
			if err := os.WriteFile(path, []byte(tc.data), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("expected error")
			}
		})
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	if _, err := Load("config.toml"); err == nil {
		t.Errorf("expected error for unsupported format")
	}
}
