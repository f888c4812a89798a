package notify

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"fieldassign/core/assign"
	corelogger "fieldassign/core/logger"
)

// Notifier publishes window results to an MQTT broker so downstream
// consumers can react to finished assignment windows.
type Notifier struct {
	client mqtt.Client
	topic  string
	qos    byte
	log    corelogger.Logger
}

// Config holds the MQTT connection settings.
type Config struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string
	QoS      byte
}

// NewNotifier connects to the broker and returns a ready notifier.
func NewNotifier(cfg Config, log corelogger.Logger) (*Notifier, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetConnectTimeout(10 * time.Second).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("mqtt connect timeout to %s", cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	return &Notifier{client: client, topic: cfg.Topic, qos: cfg.QoS, log: log}, nil
}

type windowPayload struct {
	RunID      string             `json:"run_id"`
	Ordinal    int                `json:"ordinal"`
	Start      time.Time          `json:"start"`
	End        time.Time          `json:"end"`
	Assigned   []assignmentEntry  `json:"assigned"`
	Unassigned []unassignedEntry  `json:"unassigned"`
}

type assignmentEntry struct {
	CustomerID     string  `json:"customer_id"`
	Representative string  `json:"representative"`
	DriveTimeMin   float64 `json:"drive_time_min,omitempty"`
}

type unassignedEntry struct {
	CustomerID string `json:"customer_id"`
	Reason     string `json:"reason"`
}

// PublishWindow sends the result of a processed window.
func (n *Notifier) PublishWindow(runID string, res assign.WindowResult) error {
	payload := windowPayload{
		RunID:   runID,
		Ordinal: res.Ordinal,
		Start:   res.Window.Start,
		End:     res.Window.End,
	}
	for _, a := range res.Assignments {
		e := assignmentEntry{
			CustomerID:     a.Appointment.CustomerID,
			Representative: a.Representative,
		}
		if a.KnownDriveTime() {
			e.DriveTimeMin = a.DriveTimeMin
		}
		payload.Assigned = append(payload.Assigned, e)
	}
	for _, u := range res.Unassigned {
		payload.Unassigned = append(payload.Unassigned, unassignedEntry{
			CustomerID: u.Appointment.CustomerID,
			Reason:     u.Reason,
		})
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal window payload: %w", err)
	}
	topic := fmt.Sprintf("%s/%d", n.topic, res.Ordinal)
	token := n.client.Publish(topic, n.qos, false, data)
	if !token.WaitTimeout(10 * time.Second) {
		return fmt.Errorf("mqtt publish timeout on %s", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt publish: %w", err)
	}
	n.log.Debugf("published window %d results to %s", res.Ordinal, topic)
	return nil
}

// Close disconnects from the broker.
func (n *Notifier) Close() {
	n.client.Disconnect(250)
}
