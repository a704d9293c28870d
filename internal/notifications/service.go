package notifications

import (
	"context"
	"fmt"
	"log"
	"sync"

	"staybook/internal/shared/config"
)

// Service publishes confirmed bookings and runs the consumer workers that
// forward them to the front desk.
type Service interface {
	PublishConfirmedBooking(ctx context.Context, message *BookingConfirmedMessage) error

	Start(ctx context.Context) error
	Stop() error
	HealthCheck(ctx context.Context) error
}

type bookingNotificationService struct {
	producer     BookingProducer
	consumer     BookingConsumer
	emailService EmailService
	numWorkers   int

	// State
	isRunning bool
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewService wires the Kafka producer, consumer group and email sender from
// application config. When SMTP is not configured the front desk email is
// replaced with a logging mock so development setups still work.
func NewService(cfg *config.Config, numWorkers int) (Service, error) {
	var emailService EmailService
	if cfg.Email.SMTPHost == "" {
		emailService = NewMockEmailService()
		log.Printf("SMTP not configured, front desk notifications will be logged only")
	} else {
		smtpService, err := NewSMTPEmailService(&SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  "Staybook",
			FrontDesk: cfg.Email.FrontDesk,
			UseTLS:    true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create SMTP email service: %w", err)
		}
		emailService = smtpService
	}

	// Create producer
	producerConfig := DefaultProducerConfig()
	producerConfig.Brokers = cfg.Kafka.Brokers
	producerConfig.BookingsTopic = cfg.Kafka.BookingsTopic

	producer, err := NewKafkaBookingProducer(producerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking producer: %w", err)
	}

	// Create consumer
	consumerConfig := DefaultConsumerConfig()
	consumerConfig.Brokers = cfg.Kafka.Brokers
	consumerConfig.Topics = []string{cfg.Kafka.BookingsTopic}
	consumerConfig.GroupID = cfg.Kafka.ConsumerGroup

	consumer, err := NewKafkaBookingConsumer(consumerConfig, emailService)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking consumer: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &bookingNotificationService{
		producer:     producer,
		consumer:     consumer,
		emailService: emailService,
		numWorkers:   numWorkers,
		isRunning:    false,
		ctx:          ctx,
		cancel:       cancel,
	}, nil
}

func (s *bookingNotificationService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("notification service is already running")
	}

	log.Printf("Starting booking notification service...")

	err := s.consumer.StartConsumers(s.ctx, s.numWorkers)
	if err != nil {
		return fmt.Errorf("failed to start consumers: %w", err)
	}

	s.isRunning = true
	log.Printf("Booking notification service started successfully")

	return nil
}

func (s *bookingNotificationService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return fmt.Errorf("notification service is not running")
	}

	log.Printf("Stopping booking notification service...")

	s.cancel()

	if err := s.consumer.Stop(); err != nil {
		log.Printf("Error stopping consumer: %v", err)
	}

	if err := s.producer.Close(); err != nil {
		log.Printf("Error closing producer: %v", err)
	}

	s.isRunning = false
	log.Printf("Booking notification service stopped")

	return nil
}

func (s *bookingNotificationService) PublishConfirmedBooking(ctx context.Context, message *BookingConfirmedMessage) error {
	return s.producer.PublishConfirmedBooking(ctx, message)
}

func (s *bookingNotificationService) HealthCheck(ctx context.Context) error {
	s.mu.RLock()
	isRunning := s.isRunning
	s.mu.RUnlock()

	if !isRunning {
		return fmt.Errorf("notification service is not running")
	}

	if err := s.producer.HealthCheck(ctx); err != nil {
		return fmt.Errorf("producer health check failed: %w", err)
	}

	if err := s.consumer.HealthCheck(ctx); err != nil {
		return fmt.Errorf("consumer health check failed: %w", err)
	}

	return nil
}
