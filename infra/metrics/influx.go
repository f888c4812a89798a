package metrics

import (
	"context"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/domain"

	corelogger "fieldassign/core/logger"
	coremetrics "fieldassign/core/metrics"
)

// InfluxSink writes assignment records to InfluxDB.
type InfluxSink struct {
	client influxdb2.Client
	write  api.WriteAPIBlocking
}

// NewInfluxSink connects to InfluxDB and returns a sink writing to the given
// org and bucket.
func NewInfluxSink(url, token, org, bucket string) (*InfluxSink, error) {
	client := influxdb2.NewClient(url, token)
	write := client.WriteAPIBlocking(org, bucket)
	return &InfluxSink{client: client, write: write}, nil
}

// NewInfluxSinkWithFallback pings InfluxDB first and returns a NopSink when
// the server is unreachable or unhealthy, so a metrics outage never blocks
// an assignment run.
func NewInfluxSinkWithFallback(url, token, org, bucket string, log corelogger.Logger) coremetrics.Sink {
	client := influxdb2.NewClient(url, token)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := client.Health(ctx)
	if err != nil || health == nil || health.Status != domain.HealthCheckStatusPass {
		if log != nil {
			log.Warnf("influxdb unavailable at %s, metrics disabled: %v", url, err)
		}
		client.Close()
		return coremetrics.NopSink{}
	}
	return &InfluxSink{client: client, write: client.WriteAPIBlocking(org, bucket)}
}

// RecordAssignments writes one point per assignment.
func (s *InfluxSink) RecordAssignments(recs []coremetrics.AssignmentRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, r := range recs {
		p := influxdb2.NewPoint("assignment",
			map[string]string{
				"representative": r.Representative,
				"capability":     r.Capability,
			},
			map[string]interface{}{
				"customer_id":      r.CustomerID,
				"drive_time_min":   r.DriveTimeMin,
				"drive_time_known": r.DriveTimeKnown,
				"window":           r.WindowOrdinal,
			},
			r.ScheduledAt,
		)
		if err := s.write.WritePoint(ctx, p); err != nil {
			return fmt.Errorf("influx write: %w", err)
		}
	}
	return nil
}

// RecordUnassigned writes one point per unassigned appointment.
func (s *InfluxSink) RecordUnassigned(recs []coremetrics.UnassignedRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, r := range recs {
		p := influxdb2.NewPoint("unassigned",
			map[string]string{"reason": r.Reason},
			map[string]interface{}{
				"customer_id": r.CustomerID,
				"window":      r.WindowOrdinal,
			},
			r.Time,
		)
		if err := s.write.WritePoint(ctx, p); err != nil {
			return fmt.Errorf("influx write: %w", err)
		}
	}
	return nil
}

// RecordWindow writes a summary point for a completed window.
func (s *InfluxSink) RecordWindow(rec coremetrics.WindowRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := influxdb2.NewPoint("window",
		map[string]string{},
		map[string]interface{}{
			"ordinal":     rec.Ordinal,
			"assigned":    rec.Assigned,
			"unassigned":  rec.Unassigned,
			"duration_ms": rec.Duration.Milliseconds(),
		},
		rec.Start,
	)
	if err := s.write.WritePoint(ctx, p); err != nil {
		return fmt.Errorf("influx write: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}
