package mqttbridge

import (
	"context"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/zwsim-project/zwsim-go/pkg/fixture"
	"github.com/zwsim-project/zwsim-go/pkg/simnode"
)

// Bridge connects a simulated node to an MQTT broker.
type Bridge struct {
	cfg    Config
	node   *simnode.SimNode
	client mqtt.Client

	// byTopicPart maps sanitized value ID segments back to value IDs.
	byTopicPart map[string]fixture.ValueID
}

// New creates a bridge for a node. Connect with Start.
func New(cfg Config, node *simnode.SimNode) *Bridge {
	b := &Bridge{
		cfg:         cfg,
		node:        node,
		byTopicPart: make(map[string]fixture.ValueID),
	}
	for _, id := range node.ValueIDs() {
		b.byTopicPart[SanitizeTopicPart(id.String())] = id
	}
	return b
}

// Start connects to the broker, publishes discovery configs and initial
// states, and wires value updates in both directions. It blocks until
// the connection is established or the context is cancelled.
func (b *Bridge) Start(ctx context.Context) error {
	nodeID := b.node.NodeID()
	availTopic := AvailabilityTopic(b.cfg.BaseTopic, nodeID)

	opts := mqtt.NewClientOptions()
	opts.AddBroker(b.cfg.BrokerURL())
	opts.SetClientID(fmt.Sprintf("%s-node-%d", b.cfg.ClientID, nodeID))
	opts.SetUsername(b.cfg.Username)
	opts.SetPassword(b.cfg.Password)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(5 * time.Second)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetWill(availTopic, "offline", 0, true)
	opts.SetOnConnectHandler(func(mqtt.Client) {
		log.Printf("[MQTT] Connected to %s", b.cfg.BrokerURL())
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		log.Printf("[MQTT] Connection lost: %v", err)
	})

	b.client = mqtt.NewClient(opts)

	token := b.client.Connect()
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to connect to broker: %w", err)
	}

	if err := b.publishDiscovery(); err != nil {
		return err
	}
	b.publish(availTopic, "online", true)

	// Initial state snapshot.
	for _, id := range b.node.ValueIDs() {
		b.publishState(id)
	}

	// Forward subsequent value changes.
	b.node.Subscribe(func(u simnode.Update) {
		b.publishState(u.ValueID)
	})

	// Route inbound writes through the value store.
	setFilter := NodeTopic(b.cfg.BaseTopic, nodeID) + "/+/set"
	token = b.client.Subscribe(setFilter, 0, b.handleSet)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", setFilter, err)
	}

	return nil
}

// Stop announces the node offline and disconnects.
func (b *Bridge) Stop() {
	if b.client == nil {
		return
	}
	b.publish(AvailabilityTopic(b.cfg.BaseTopic, b.node.NodeID()), "offline", true)
	b.client.Disconnect(250)
	b.client = nil
}

func (b *Bridge) publishDiscovery() error {
	messages, err := BuildDiscoveryMessages(b.cfg, b.node)
	if err != nil {
		return err
	}
	for _, m := range messages {
		// Discovery configs are always retained so entities survive HA
		// restarts.
		token := b.client.Publish(m.Topic, 0, true, m.Payload)
		token.Wait()
		if err := token.Error(); err != nil {
			return fmt.Errorf("failed to publish discovery config: %w", err)
		}
	}
	log.Printf("[MQTT] Published %d discovery configs", len(messages))
	return nil
}

func (b *Bridge) publishState(id fixture.ValueID) {
	meta, err := b.node.Metadata(id)
	if err != nil {
		return
	}
	if !meta.Readable {
		return
	}
	value, err := b.node.Get(id)
	if err != nil {
		return
	}
	b.publish(StateTopic(b.cfg.BaseTopic, b.node.NodeID(), id), FormatStatePayload(meta, value), b.cfg.Retain)
}

func (b *Bridge) publish(topic, payload string, retain bool) {
	token := b.client.Publish(topic, 0, retain, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		log.Printf("[MQTT] Publish to %s failed: %v", topic, err)
	}
}

func (b *Bridge) handleSet(_ mqtt.Client, msg mqtt.Message) {
	part, ok := valueIDFromTopic(b.cfg.BaseTopic, b.node.NodeID(), msg.Topic())
	if !ok {
		return
	}
	id, ok := b.byTopicPart[part]
	if !ok {
		log.Printf("[MQTT] Set on unknown value topic %s", msg.Topic())
		return
	}

	meta, err := b.node.Metadata(id)
	if err != nil {
		return
	}
	value, err := ParseSetPayload(meta, msg.Payload())
	if err != nil {
		log.Printf("[MQTT] %s: %v", id, err)
		return
	}

	if err := b.node.Set(id, value); err != nil {
		log.Printf("[MQTT] Set %s = %v rejected: %v", id, value, err)
		return
	}
	log.Printf("[MQTT] %s = %v", id, value)
}
