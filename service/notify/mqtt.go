// Package notify publishes finished reports to an MQTT broker.
package notify

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/go-logr/logr"

	"github.com/elC0mpa/aws-rate-genie/config"
	"github.com/elC0mpa/aws-rate-genie/model"
	"github.com/elC0mpa/aws-rate-genie/response"
)

const (
	topicTopInstances  = "top_instances"
	topicIdleDatabases = "idle_databases"

	publishTimeout = 10 * time.Second
)

// Client is the subset of mqtt.Client used by the publisher.
type Client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// Publisher sends report summaries to "<prefix>/<report>" topics.
type Publisher struct {
	client      Client
	topicPrefix string
	log         logr.Logger
}

// New connects to the configured broker.
func New(cfg config.MQTTConfig, log logr.Logger) (*Publisher, error) {
	if cfg.Broker == "" {
		return nil, fmt.Errorf("MQTT broker address is required when enabled")
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s", cfg.Broker))
	opts.SetClientID("rate-genie")
	opts.SetConnectTimeout(10 * time.Second)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connecting to MQTT broker: %w", token.Error())
	}

	return NewWithClient(client, cfg.TopicPrefix, log), nil
}

// NewWithClient wraps an already connected client.
func NewWithClient(client Client, topicPrefix string, log logr.Logger) *Publisher {
	if topicPrefix == "" {
		topicPrefix = "rate_genie"
	}
	return &Publisher{
		client:      client,
		topicPrefix: topicPrefix,
		log:         log.WithName("notify"),
	}
}

// PublishTopInstances publishes the top instances report as JSON.
func (p *Publisher) PublishTopInstances(report *model.TopInstancesReport) error {
	return p.publish(topicTopInstances, response.ConvertTopInstancesReport(report))
}

// PublishIdleDatabases publishes the idle databases report as JSON.
func (p *Publisher) PublishIdleDatabases(report *model.IdleDatabasesReport) error {
	return p.publish(topicIdleDatabases, response.ConvertIdleDatabasesReport(report))
}

func (p *Publisher) publish(name string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	topic := fmt.Sprintf("%s/%s", p.topicPrefix, name)
	token := p.client.Publish(topic, 1, true, body)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publishing to %s: timed out after %s", topic, publishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publishing to %s: %w", topic, err)
	}

	p.log.V(1).Info("published report", "topic", topic, "bytes", len(body))
	return nil
}

// Close disconnects from the MQTT broker
func (p *Publisher) Close() {
	if p.client != nil {
		p.client.Disconnect(250)
	}
}
