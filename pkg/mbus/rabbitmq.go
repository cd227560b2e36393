package mbus

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/streadway/amqp"

	"github.com/pedro-r-marques/devops-tutor/pkg/assistant"
)

const reconnectDelay = 30 * time.Second

var errNotConnected = errors.New("unable to send message to RabbitMQ server: not connected")

// amqpConnection is the part of *amqp.Connection the bus uses.
type amqpConnection interface {
	Channel() (*amqp.Channel, error)
	NotifyClose(receiver chan *amqp.Error) chan *amqp.Error
	Close() error
}

func dialAMQP(address string, config amqp.Config) (amqpConnection, error) {
	return amqp.DialConfig(address, config)
}

type RabbitMQBus struct {
	address     string
	vhost       string
	dial        func(address string, config amqp.Config) (amqpConnection, error)
	retryDelay  time.Duration
	mutex       sync.Mutex
	sendChannel *amqp.Channel
	declared    map[string]bool
	done        chan struct{}
	closeOnce   sync.Once
}

// NewRabbitMQBus returns a bus that publishes to the given server. The
// connection is established in the background and re-established when it
// drops; messages sent while disconnected fail with an error.
func NewRabbitMQBus(address, vhost string) *RabbitMQBus {
	b := &RabbitMQBus{
		address:    address,
		vhost:      vhost,
		dial:       dialAMQP,
		retryDelay: reconnectDelay,
		declared:   make(map[string]bool),
		done:       make(chan struct{}),
	}
	go b.Run()
	return b
}

func (b *RabbitMQBus) Close() {
	b.closeOnce.Do(func() { close(b.done) })
}

func (b *RabbitMQBus) setChannel(ch *amqp.Channel) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.sendChannel = ch
	b.declared = make(map[string]bool)
}

func (b *RabbitMQBus) sleep(d time.Duration) bool {
	select {
	case <-b.done:
		return false
	case <-time.After(d):
		return true
	}
}

func (b *RabbitMQBus) Run() {
	config := amqp.Config{
		Vhost: b.vhost,
	}
	for {
		select {
		case <-b.done:
			return
		default:
		}

		connection, err := b.dial(b.address, config)
		if err != nil {
			log.Debug().Err(err).Msg("amqp dial")
			if !b.sleep(b.retryDelay) {
				return
			}
			continue
		}

		connErrChan := make(chan *amqp.Error, 1)
		connection.NotifyClose(connErrChan)

		sendChannel, err := connection.Channel()
		if err != nil {
			log.Debug().Err(err).Msg("amqp channel")
			connection.Close()
			if !b.sleep(b.retryDelay) {
				return
			}
			continue
		}
		sendErrChan := make(chan *amqp.Error, 1)
		sendChannel.NotifyClose(sendErrChan)
		b.setChannel(sendChannel)
		log.Info().Str("vhost", b.vhost).Msg("amqp connected")

		isConnected := true
		for isConnected {
			select {
			case <-b.done:
				b.setChannel(nil)
				sendChannel.Close()
				connection.Close()
				return

			case qerr := <-sendErrChan:
				log.Error().Msgf("amqp send channel error: %v", qerr)
				b.setChannel(nil)
				sendChannel, err = connection.Channel()
				if err == nil {
					sendErrChan = make(chan *amqp.Error, 1)
					sendChannel.NotifyClose(sendErrChan)
					b.setChannel(sendChannel)
				} else {
					log.Error().Err(err).Msg("amqp send channel reconnect")
					connection.Close()
					isConnected = false
				}

			case qerr := <-connErrChan:
				log.Error().Msgf("amqp connection error: %v", qerr)
				isConnected = false
			}
		}
		b.setChannel(nil)
	}
}

func (b *RabbitMQBus) SendMsg(qname string, correlationId string, data map[string]json.RawMessage) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if b.sendChannel == nil {
		return errNotConnected
	}
	if !b.declared[qname] {
		_, err := b.sendChannel.QueueDeclare(
			qname,
			true,  // durable
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil)
		if err != nil {
			return fmt.Errorf("RabbitMQ queue %s: %w", qname, err)
		}
		b.declared[qname] = true
	}

	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("RabbitMQ send: %w", err)
	}
	msg := amqp.Publishing{
		CorrelationId: correlationId,
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		Timestamp:     time.Now(),
		Body:          body,
	}
	return b.sendChannel.Publish(
		"",    // exchange
		qname, // routing-key
		false, // mandatory
		false, // immediate
		msg)
}

var _ assistant.MessageBus = (*RabbitMQBus)(nil)
