package mq

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"ReplyOK/pkg/logger"
)

// 发布通道为单例，关闭后在下一次发布时重建

var (
	publisherCh *amqp.Channel
	pubMutex    sync.RWMutex // 读写锁，读多写少
)

func getPublisherChannel() (*amqp.Channel, error) {
	// 先读锁检查
	pubMutex.RLock()
	if publisherCh != nil && !publisherCh.IsClosed() {
		ch := publisherCh
		pubMutex.RUnlock()
		return ch, nil
	}
	pubMutex.RUnlock()

	pubMutex.Lock()
	defer pubMutex.Unlock()

	if publisherCh != nil && !publisherCh.IsClosed() {
		return publisherCh, nil
	}

	if conn == nil {
		return nil, fmt.Errorf("RabbitMQ connection is nil")
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open publish channel: %w", err)
	}

	publisherCh = ch

	go func() {
		closeChan := make(chan *amqp.Error, 1)
		closeChan = ch.NotifyClose(closeChan)
		<-closeChan

		pubMutex.Lock()
		if publisherCh == ch {
			publisherCh = nil
		}
		pubMutex.Unlock()

		logger.Logger.Warn("Publisher channel closed, will recreate on next publish",
			zap.String("component", "rabbitmq"),
		)
	}()

	logger.Logger.Info("Publisher channel created",
		zap.String("component", "rabbitmq"),
	)

	return ch, nil
}

// DeclareQueue 声明持久化队列，发布方与消费方都会调用，幂等。
func DeclareQueue(name string) error {
	ch, err := getPublisherChannel()
	if err != nil {
		return err
	}

	_, err = ch.QueueDeclare(
		name,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", name, err)
	}
	return nil
}

// PublishMessage 发送普通消息（默认 exchange，routing key 即队列名）
func PublishMessage(exchange, routingKey string, body interface{}) error {
	ch, err := getPublisherChannel()
	if err != nil {
		return err
	}

	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	err = ch.Publish(
		exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         bodyBytes,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)

	return err
}
