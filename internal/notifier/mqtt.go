package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/pedromssoares/service-agenda-for-cars/internal/constants"
	"github.com/pedromssoares/service-agenda-for-cars/internal/logger"
	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
)

// MQTTClient is the subset of paho.Client the sink needs.
type MQTTClient interface {
	IsConnected() bool
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

type MQTTConfig struct {
	Broker      string `koanf:"broker"`
	ClientID    string `koanf:"client_id"`
	Username    string `koanf:"username"`
	Password    string `koanf:"password"`
	TopicPrefix string `koanf:"topic_prefix"`
	QoS         byte   `koanf:"qos"`
	Retained    bool   `koanf:"retained"`
}

// MQTT publishes each alert as JSON to <prefix>/<vehicleID>.
type MQTT struct {
	client  MQTTClient
	prefix  string
	qos     byte
	retain  bool
	timeout time.Duration
}

type mqttPayload struct {
	ID            string    `json:"id"`
	VehicleID     string    `json:"vehicle_id"`
	ServiceTypeID string    `json:"service_type_id"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	Category      string    `json:"category"`
	FireAt        time.Time `json:"fire_at"`
}

// NewMQTT connects to the broker.
func NewMQTT(cfg MQTTConfig) (*MQTT, error) {
	if cfg.Broker == "" {
		return nil, fmt.Errorf("mqtt broker is not configured")
	}
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = constants.AppName + "-notifier"
	}
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(clientID).
		SetConnectTimeout(5 * time.Second).
		SetAutoReconnect(true)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		logger.Warn("MQTT connection lost", "broker", cfg.Broker, "error", err)
	}

	client := paho.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to mqtt broker: %w", token.Error())
	}
	return NewMQTTWithClient(client, cfg), nil
}

// NewMQTTWithClient wraps an existing connection.
func NewMQTTWithClient(client MQTTClient, cfg MQTTConfig) *MQTT {
	prefix := strings.TrimSuffix(cfg.TopicPrefix, "/")
	if prefix == "" {
		prefix = constants.DefaultMQTTTopicPrefix
	}
	return &MQTT{client: client, prefix: prefix, qos: cfg.QoS, retain: cfg.Retained, timeout: 5 * time.Second}
}

func (m *MQTT) Name() string { return constants.SinkMQTT }

func (m *MQTT) Topic(alert models.PendingAlert) string {
	return m.prefix + "/" + alert.VehicleID
}

func (m *MQTT) Send(ctx context.Context, alert models.PendingAlert) error {
	data, err := json.Marshal(mqttPayload{
		ID:            alert.ID,
		VehicleID:     alert.VehicleID,
		ServiceTypeID: alert.ServiceTypeID,
		Title:         alert.Title,
		Body:          alert.Body,
		Category:      alert.Category,
		FireAt:        alert.FireAt,
	})
	if err != nil {
		return err
	}

	token := m.client.Publish(m.Topic(alert), m.qos, m.retain, data)
	timeout := m.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if !token.WaitTimeout(timeout) {
		return fmt.Errorf("mqtt publish timed out after %s", timeout)
	}
	return token.Error()
}

func (m *MQTT) Close() {
	if m.client.IsConnected() {
		m.client.Disconnect(250)
	}
}
