package notify

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elC0mpa/aws-rate-genie/config"
	"github.com/elC0mpa/aws-rate-genie/model"
)

type fakeToken struct {
	err      error
	timedOut bool
}

func (t *fakeToken) Wait() bool                     { return !t.timedOut }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return !t.timedOut }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t *fakeToken) Error() error { return t.err }

type published struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
}

type fakeClient struct {
	token        *fakeToken
	messages     []published
	disconnected bool
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.messages = append(c.messages, published{topic: topic, qos: qos, retained: retained, payload: payload.([]byte)})
	return c.token
}

func (c *fakeClient) Disconnect(uint) { c.disconnected = true }

func TestPublishTopInstances(t *testing.T) {
	client := &fakeClient{token: &fakeToken{}}
	p := NewWithClient(client, "finops", logr.Discard())

	report := &model.TopInstancesReport{
		ID:        uuid.New(),
		AccountID: "123456789012",
		Rows: []model.RankedCost{
			{CostRecord: model.CostRecord{Service: model.ServiceEC2, InstanceType: "m5.large", OnDemandMonthlyCost: decimal.NewFromInt(70)}},
		},
	}

	require.NoError(t, p.PublishTopInstances(report))

	require.Len(t, client.messages, 1)
	msg := client.messages[0]
	assert.Equal(t, "finops/top_instances", msg.topic)
	assert.Equal(t, byte(1), msg.qos)
	assert.True(t, msg.retained)

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.payload, &body))
	assert.Equal(t, "123456789012", body["account_id"])
	assert.Len(t, body["instances"], 1)
}

func TestPublishIdleDatabasesDefaultPrefix(t *testing.T) {
	client := &fakeClient{token: &fakeToken{}}
	p := NewWithClient(client, "", logr.Discard())

	require.NoError(t, p.PublishIdleDatabases(&model.IdleDatabasesReport{LookbackDays: 30}))
	assert.Equal(t, "rate_genie/idle_databases", client.messages[0].topic)

	p.Close()
	assert.True(t, client.disconnected)
}

func TestPublishErrors(t *testing.T) {
	t.Run("broker error", func(t *testing.T) {
		p := NewWithClient(&fakeClient{token: &fakeToken{err: errors.New("not connected")}}, "x", logr.Discard())
		err := p.PublishTopInstances(&model.TopInstancesReport{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not connected")
	})

	t.Run("timeout", func(t *testing.T) {
		p := NewWithClient(&fakeClient{token: &fakeToken{timedOut: true}}, "x", logr.Discard())
		err := p.PublishTopInstances(&model.TopInstancesReport{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "timed out")
	})
}

func TestNewRequiresBroker(t *testing.T) {
	_, err := New(config.MQTTConfig{Enabled: true}, logr.Discard())
	require.Error(t, err)
}
