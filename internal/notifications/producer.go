package notifications

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/IBM/sarama"
)

// BookingProducer publishes confirmed bookings to Kafka.
type BookingProducer interface {
	PublishConfirmedBooking(ctx context.Context, message *BookingConfirmedMessage) error
	Close() error
	HealthCheck(ctx context.Context) error
}

// ProducerConfig contains configuration for the Kafka booking producer
type ProducerConfig struct {
	Brokers          []string
	BookingsTopic    string
	RetryMax         int
	TimeoutMs        int
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
	MaxMessageBytes  int
}

// DefaultProducerConfig returns a default producer configuration
func DefaultProducerConfig() *ProducerConfig {
	return &ProducerConfig{
		Brokers:          []string{"localhost:9092"},
		BookingsTopic:    "staybook.bookings.confirmed",
		RetryMax:         3,
		TimeoutMs:        10000,             // 10 seconds
		RequiredAcks:     sarama.WaitForAll, // Wait for all in-sync replicas
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
		MaxMessageBytes:  1000000, // 1MB
	}
}

// KafkaBookingProducer handles publishing confirmed bookings to Kafka
type KafkaBookingProducer struct {
	producer sarama.SyncProducer
	config   *ProducerConfig
}

// NewKafkaBookingProducer creates a new Kafka booking producer
func NewKafkaBookingProducer(config *ProducerConfig) (BookingProducer, error) {
	saramaConfig := sarama.NewConfig()

	// Producer configuration
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	saramaConfig.Producer.MaxMessageBytes = config.MaxMessageBytes

	// Enable idempotent producer
	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Hash partitioner keeps one session's events ordered on one partition
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log.Printf("Kafka booking producer created successfully")
	return &KafkaBookingProducer{
		producer: producer,
		config:   config,
	}, nil
}

// PublishConfirmedBooking publishes a single confirmed booking to Kafka
func (kbp *KafkaBookingProducer) PublishConfirmedBooking(ctx context.Context, message *BookingConfirmedMessage) error {
	message.Status = NotificationStatusQueued
	message.UpdatedAt = time.Now()

	messageBytes, err := message.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal booking message: %w", err)
	}

	kafkaMessage := &sarama.ProducerMessage{
		Topic:     kbp.config.BookingsTopic,
		Key:       sarama.StringEncoder(message.GetPartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Headers:   kbp.createHeaders(message),
		Timestamp: message.CreatedAt,
	}

	partition, offset, err := kbp.producer.SendMessage(kafkaMessage)
	if err != nil {
		message.MarkFailed(err)
		return fmt.Errorf("failed to send booking message to Kafka: %w", err)
	}

	log.Printf("Confirmed booking published to Kafka - Topic: %s, Partition: %d, Offset: %d, Confirmation: %d",
		kbp.config.BookingsTopic, partition, offset, message.ConfirmationNumber)

	return nil
}

// createHeaders creates Kafka headers for booking messages
func (kbp *KafkaBookingProducer) createHeaders(message *BookingConfirmedMessage) []sarama.RecordHeader {
	return []sarama.RecordHeader{
		{Key: []byte("message_id"), Value: []byte(message.ID.String())},
		{Key: []byte("session_id"), Value: []byte(message.SessionID)},
		{Key: []byte("confirmation_number"), Value: []byte(fmt.Sprintf("%d", message.ConfirmationNumber))},
		{Key: []byte("room_number"), Value: []byte(message.RoomNumber)},
		{Key: []byte("version"), Value: []byte("1.0")},
		{Key: []byte("producer"), Value: []byte("staybook-backend")},
		{Key: []byte("created_at"), Value: []byte(message.CreatedAt.Format(time.RFC3339))},
	}
}

// Close closes the Kafka producer
func (kbp *KafkaBookingProducer) Close() error {
	if kbp.producer != nil {
		err := kbp.producer.Close()
		if err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
		log.Printf("Kafka booking producer closed")
	}
	return nil
}

// HealthCheck performs a health check on the Kafka producer
func (kbp *KafkaBookingProducer) HealthCheck(ctx context.Context) error {
	if kbp.producer == nil {
		return fmt.Errorf("health check failed - producer is nil")
	}

	if kbp.config.BookingsTopic == "" {
		return fmt.Errorf("health check failed - bookings topic not configured")
	}

	// Serialize a throwaway message to catch marshaling regressions early;
	// the producer itself will surface broker problems on the next send.
	msg := NewBookingConfirmedMessage("health-check", 0, "", "", "", time.Now(), "", "")
	if _, err := msg.ToJSON(); err != nil {
		return fmt.Errorf("health check failed - JSON marshaling error: %w", err)
	}

	return nil
}
