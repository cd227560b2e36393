package mbus

import (
	"encoding/json"
	"errors"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendNotConnected(t *testing.T) {
	b := &RabbitMQBus{declared: make(map[string]bool), done: make(chan struct{})}
	err := b.SendMsg("testing", "x", nil)
	assert.Equal(t, errNotConnected, err)
}

type refusingConnection struct {
	closed *int32
}

func (c refusingConnection) Channel() (*amqp.Channel, error) {
	return nil, errors.New("channel refused")
}

func (c refusingConnection) NotifyClose(receiver chan *amqp.Error) chan *amqp.Error {
	return receiver
}

func (c refusingConnection) Close() error {
	atomic.AddInt32(c.closed, 1)
	return nil
}

func TestChannelErrorWaitsBeforeRedial(t *testing.T) {
	var dials, closed int32
	b := &RabbitMQBus{
		dial: func(address string, config amqp.Config) (amqpConnection, error) {
			atomic.AddInt32(&dials, 1)
			return refusingConnection{closed: &closed}, nil
		},
		retryDelay: 50 * time.Millisecond,
		declared:   make(map[string]bool),
		done:       make(chan struct{}),
	}

	stopped := make(chan struct{})
	go func() {
		b.Run()
		close(stopped)
	}()
	time.Sleep(200 * time.Millisecond)
	b.Close()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Close")
	}
	n := atomic.LoadInt32(&dials)
	assert.True(t, n >= 1 && n <= 6, "dials: %d", n)
	assert.Equal(t, n, atomic.LoadInt32(&closed))
	assert.Equal(t, errNotConnected, b.SendMsg("testing", "x", nil))
}

func TestRabbitMQSend(t *testing.T) {
	amqp_url := os.Getenv("AMQP_SERVER")
	if amqp_url == "" {
		t.Skip("env variable AMQP_SERVER not defined")
	}

	mbus := NewRabbitMQBus(amqp_url, "")
	defer mbus.Close()

	msg := map[string]json.RawMessage{
		"id": json.RawMessage(`"x"`),
	}
	var err error
	for i := 0; i < 5; i++ {
		err = mbus.SendMsg("testing", "x", msg)
		if err == errNotConnected {
			time.Sleep(time.Second)
			continue
		}
		break
	}
	require.NoError(t, err)

	conn, err := amqp.Dial(amqp_url)
	require.NoError(t, err)
	defer conn.Close()
	ch, err := conn.Channel()
	require.NoError(t, err)
	defer ch.Close()

	var delivery amqp.Delivery
	var ok bool
	for i := 0; i < 5; i++ {
		delivery, ok, err = ch.Get("testing", true)
		require.NoError(t, err)
		if ok {
			break
		}
		time.Sleep(time.Second)
	}
	require.True(t, ok)
	assert.Equal(t, "x", delivery.CorrelationId)
	assert.JSONEq(t, `{"id":"x"}`, string(delivery.Body))
}
