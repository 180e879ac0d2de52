package rabbitmq_common

import (
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrManagerClosed возвращается после Close.
var ErrManagerClosed = errors.New("rabbitmq: connection manager is closed")

const (
	defaultReconnectDelay    = time.Second
	defaultMaxReconnectDelay = 30 * time.Second
)

// ConnectionManager держит одно соединение RabbitMQ на процесс.
// Обрыв соединения приходит через NotifyClose, после чего идет переподключение с backoff.
type ConnectionManager struct {
	url    string
	logger Logger

	reconnectDelay    time.Duration
	maxReconnectDelay time.Duration

	mu     sync.RWMutex
	conn   *amqp.Connection
	closed bool

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewConnectionManager подключается сразу: недоступный брокер при старте - ошибка конфигурации.
func NewConnectionManager(cfg Config, logger Logger) (*ConnectionManager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = NewNoopLogger()
	}

	m := &ConnectionManager{
		url:               cfg.URL,
		logger:            logger,
		reconnectDelay:    cfg.ReconnectDelay,
		maxReconnectDelay: cfg.MaxReconnectDelay,
		done:              make(chan struct{}),
	}
	if m.reconnectDelay <= 0 {
		m.reconnectDelay = defaultReconnectDelay
	}
	if m.maxReconnectDelay < m.reconnectDelay {
		m.maxReconnectDelay = defaultMaxReconnectDelay
	}

	conn, err := amqp.Dial(m.url)
	if err != nil {
		logger.Error(err, "Initial RabbitMQ connection failed")
		return nil, fmt.Errorf("rabbitmq: initial connection failed: %w", err)
	}
	m.conn = conn
	logger.Debug("RabbitMQ connection established")

	m.wg.Add(1)
	go m.watch(conn)
	return m, nil
}

// watch ждет закрытия текущего соединения и поднимает новое.
func (m *ConnectionManager) watch(conn *amqp.Connection) {
	defer m.wg.Done()

	for {
		closeCh := conn.NotifyClose(make(chan *amqp.Error, 1))

		select {
		case <-m.done:
			return
		case amqpErr, ok := <-closeCh:
			if !ok || amqpErr == nil {
				// штатное закрытие через Close
				return
			}
			m.logger.Warn("RabbitMQ connection lost", "code", amqpErr.Code, "reason", amqpErr.Reason)
		}

		next, ok := m.redial()
		if !ok {
			return
		}
		conn = next
	}
}

// redial повторяет Dial с удвоением паузы, пока не получится или менеджер не закроют.
func (m *ConnectionManager) redial() (*amqp.Connection, bool) {
	delay := m.reconnectDelay
	for attempt := 1; ; attempt++ {
		select {
		case <-m.done:
			return nil, false
		case <-time.After(delay):
		}

		conn, err := amqp.Dial(m.url)
		if err != nil {
			m.logger.Error(err, "RabbitMQ reconnect failed", "attempt", attempt, "next_delay", delay.String())
			delay *= 2
			if delay > m.maxReconnectDelay {
				delay = m.maxReconnectDelay
			}
			continue
		}

		m.mu.Lock()
		if m.closed {
			m.mu.Unlock()
			_ = conn.Close()
			return nil, false
		}
		m.conn = conn
		m.mu.Unlock()

		m.logger.Info("RabbitMQ connection restored", "attempt", attempt)
		return conn, true
	}
}

// Channel открывает новый канал в общем соединении.
// Пока идет переподключение, возвращает ошибку: повторы остаются на вызывающей стороне.
func (m *ConnectionManager) Channel() (*amqp.Channel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrManagerClosed
	}
	if m.conn == nil || m.conn.IsClosed() {
		return nil, fmt.Errorf("rabbitmq: connection is not available")
	}
	ch, err := m.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: failed to open a channel: %w", err)
	}
	return ch, nil
}

// Close останавливает переподключение и закрывает соединение. Повторный вызов безопасен.
func (m *ConnectionManager) Close() error {
	var err error
	m.closeOnce.Do(func() {
		m.mu.Lock()
		m.closed = true
		conn := m.conn
		m.mu.Unlock()

		close(m.done)

		if conn != nil && !conn.IsClosed() {
			if err = conn.Close(); err != nil {
				m.logger.Error(err, "Failed to close RabbitMQ connection")
			}
		}
		m.wg.Wait()
		m.logger.Debug("RabbitMQ connection manager closed")
	})
	return err
}
