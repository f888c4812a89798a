// Package app wires configuration, adapters and the assignment engine into
// a runnable service.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"fieldassign/config"
	"fieldassign/core/assign"
	"fieldassign/core/events"
	coremetrics "fieldassign/core/metrics"
	"fieldassign/core/model"
	"fieldassign/core/travel"
	"fieldassign/infra/geo"
	"fieldassign/infra/logger"
	"fieldassign/infra/metrics"
	"fieldassign/infra/notify"
	"fieldassign/ingest"
	"fieldassign/internal/eventbus"
	"fieldassign/report"
)

// Service runs one assignment pass over the configured inputs and writes
// the report.
type Service struct {
	cfg      *config.Config
	manager  *assign.Manager
	cache    *travel.Cache
	cities   report.CityResolver
	notifier *notify.Notifier
	bus      eventbus.EventBus
	log      logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var geoOpts []geo.Option
	if cfg.Oracle.BaseURL != "" {
		geoOpts = append(geoOpts, geo.WithBaseURL(cfg.Oracle.BaseURL))
	}
	oracle := geo.NewClient(cfg.Oracle.APIKey, logger.New("oracle"), geoOpts...)
	cache := travel.NewCache(oracle, logger.New("cache"))

	var sinks []coremetrics.Sink
	if cfg.Metrics.Prometheus.Enabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.Influx.Enabled {
		sink := metrics.NewInfluxSinkWithFallback(
			cfg.Metrics.Influx.URL, cfg.Metrics.Influx.Token,
			cfg.Metrics.Influx.Org, cfg.Metrics.Influx.Bucket,
			logger.New("influx"))
		sinks = append(sinks, sink)
	}
	var sink coremetrics.Sink
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	var editor assign.RosterEditor
	if cfg.Inputs.Edits != "" {
		script, err := ingest.ReadEditScript(cfg.Inputs.Edits)
		if err != nil {
			return nil, fmt.Errorf("edit script: %w", err)
		}
		editor = script
	}

	bus := eventbus.New()
	manager, err := assign.NewManager(cache, editor, sink, bus, logg)
	if err != nil {
		return nil, fmt.Errorf("assignment manager: %w", err)
	}

	svc := &Service{
		cfg:     cfg,
		manager: manager,
		cache:   cache,
		bus:     bus,
		log:     logg,
	}
	if cfg.Geocode.Enabled {
		var gOpts []geo.GeocoderOption
		if cfg.Geocode.BaseURL != "" {
			gOpts = append(gOpts, geo.WithGeocodeURL(cfg.Geocode.BaseURL))
		}
		svc.cities = geo.NewGeocoder(cfg.Geocode.APIKey, logger.New("geocode"), gOpts...)
	}
	if cfg.MQTT.Enabled {
		notifier, err := notify.NewNotifier(notify.Config{
			Broker:   cfg.MQTT.Broker,
			ClientID: cfg.MQTT.ClientID,
			Username: cfg.MQTT.Username,
			Password: cfg.MQTT.Password,
			Topic:    cfg.MQTT.Topic,
			QoS:      cfg.MQTT.QoS,
		}, logger.New("notify"))
		if err != nil {
			return nil, fmt.Errorf("mqtt notifier: %w", err)
		}
		svc.notifier = notifier
	}
	return svc, nil
}

// Run loads the inputs, executes the assignment pass and writes the report.
// It blocks until the run finishes or the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	appointments, err := ingest.ReadAppointments(s.cfg.Inputs.Appointments)
	if err != nil {
		return fmt.Errorf("appointments: %w", err)
	}
	roster, err := ingest.ReadRoster(s.cfg.Inputs.Roster)
	if err != nil {
		return fmt.Errorf("roster: %w", err)
	}
	windows, err := s.cfg.Windows.Build()
	if err != nil {
		return fmt.Errorf("windows: %w", err)
	}
	if len(windows) == 0 {
		windows = model.DeriveWindows(appointments)
	}

	if s.cfg.Metrics.Prometheus.Enabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.Prometheus.Addr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	sub := s.bus.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.observe(sub)
	}()

	result, err := s.manager.Run(ctx, appointments, roster, windows)
	s.bus.Unsubscribe(sub)
	<-done
	if err != nil {
		return err
	}
	s.log.Infof("run %s: %d assigned across %d windows (cache holds %d pairs)",
		result.RunID, result.Assigned(), len(result.Windows), s.cache.Size())

	if s.notifier != nil {
		for _, w := range result.Windows {
			if err := s.notifier.PublishWindow(result.RunID, w); err != nil {
				s.log.Errorf("notify window %d: %v", w.Ordinal, err)
			}
		}
	}

	return s.writeReport(ctx, result)
}

// observe turns bus events into progress log lines until the subscription
// channel closes.
func (s *Service) observe(sub <-chan eventbus.Event) {
	for e := range sub {
		switch ev := e.(type) {
		case events.RunStartedEvent:
			s.log.Infof("run %s started: %d windows, %d appointments, %d representatives",
				ev.RunID, ev.Windows, ev.Appointments, ev.Reps)
		case events.WindowEvent:
			s.log.Infof("window %d done: %d assigned, %d unassigned", ev.Ordinal, ev.Assigned, ev.Unassigned)
		case events.ConflictEvent:
			s.log.Infof("window %d: %s double-booked, kept %s, displaced %d",
				ev.Ordinal, ev.Representative, ev.KeptCustomer, len(ev.Displaced))
		case events.RosterEditEvent:
			s.log.Infof("window %d: roster edited, %d -> %d representatives", ev.Ordinal, ev.Before, ev.After)
		}
	}
}

func (s *Service) writeReport(ctx context.Context, result assign.RunResult) error {
	rep := report.Build(ctx, result, s.cities)

	var out io.Writer = os.Stdout
	if s.cfg.Report.Output != "" {
		f, err := os.Create(s.cfg.Report.Output)
		if err != nil {
			return fmt.Errorf("create report file: %w", err)
		}
		defer f.Close()
		out = f
	}
	if s.cfg.Report.Format == "csv" {
		return report.WriteCSV(out, rep)
	}
	return report.WriteText(out, rep)
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.notifier != nil {
		s.notifier.Close()
	}
	if s.bus != nil {
		s.bus.Close()
	}
	return nil
}
