package notify

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// DefaultTopic is the MQTT topic notifications are published on.
const DefaultTopic = "travellog/notify"

// MQTTNotifier publishes directives to an MQTT broker. Messages are
// retained so a reconnecting consumer sees the current level.
type MQTTNotifier struct {
	client paho.Client
	topic  string
}

// NewMQTTNotifier creates a notifier connected to the given broker.
func NewMQTTNotifier(broker, topic string) (*MQTTNotifier, error) {
	if topic == "" {
		topic = DefaultTopic
	}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("travellog-backend").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}

	return &MQTTNotifier{client: client, topic: topic}, nil
}

// Notify publishes the directive as retained JSON.
func (n *MQTTNotifier) Notify(d Directive) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal directive: %w", err)
	}

	// QoS 1, retained: the consumer must see the latest level even after
	// a reconnect.
	token := n.client.Publish(n.topic, 1, true, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish: %w", err)
	}

	return nil
}

// Cancel clears the retained notification by publishing an empty payload.
func (n *MQTTNotifier) Cancel() error {
	token := n.client.Publish(n.topic, 1, true, []byte{})
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("cancel timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to cancel: %w", err)
	}
	return nil
}

// Close disconnects from the broker.
func (n *MQTTNotifier) Close() error {
	n.client.Disconnect(250)
	return nil
}
