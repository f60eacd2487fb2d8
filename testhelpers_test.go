//go:build integration

package main_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/circleshare/service-sharing/internal/application"
	"github.com/circleshare/service-sharing/internal/events"
	"github.com/circleshare/service-sharing/internal/pkg/kafka"
	"github.com/circleshare/service-sharing/internal/repository"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB           *gorm.DB
	KafkaBrokers []string
	Cleanup      func()
}

// sharingStack holds the wired-up service components.
type sharingStack struct {
	Users    *application.UserService
	Items    *application.ItemService
	Bookings *application.BookingService
	Requests *application.RequestService

	BookingRepo *repository.GormBookingRepository
	ItemRepo    *repository.GormItemRepository
	UserRepo    *repository.GormUserRepository

	Consumer        *events.UserEventConsumer
	CleanupProducer func()
}

// setupContainers starts PostgreSQL and Kafka testcontainers and returns a
// connected GORM DB.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_sharing",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test_sharing sslmode=disable", pgHost, pgPort.Port())

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, db.AutoMigrate(
		&repository.UserModel{},
		&repository.ItemModel{},
		&repository.ItemRequestModel{},
		&repository.BookingModel{},
		&repository.CommentModel{},
	))

	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	createTopics(t, kafkaBrokers, application.TopicBookingEvents, events.TopicUserEvents)

	cleanup := func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{
		DB:           db,
		KafkaBrokers: kafkaBrokers,
		Cleanup:      cleanup,
	}
}

// setupSharingStack wires up the full service stack against the containers.
func setupSharingStack(t *testing.T, db *gorm.DB, brokers []string) *sharingStack {
	t.Helper()
	log := zap.NewNop()

	producer := kafka.NewProducer(brokers, log)

	bookingRepo := repository.NewGormBookingRepository(db)
	itemRepo := repository.NewGormItemRepository(db)
	userRepo := repository.NewGormUserRepository(db)
	requestRepo := repository.NewGormRequestRepository(db)

	userService := application.NewUserService(userRepo, log)
	itemService := application.NewItemService(itemRepo, userRepo, bookingRepo, log)
	bookingService := application.NewBookingService(bookingRepo, itemRepo, userRepo, producer, log)
	requestService := application.NewRequestService(requestRepo, itemRepo, userRepo, log)

	consumer := events.NewUserEventConsumer(brokers, "test-sharing-"+uuid.NewString(), userService, log)

	return &sharingStack{
		Users:           userService,
		Items:           itemService,
		Bookings:        bookingService,
		Requests:        requestService,
		BookingRepo:     bookingRepo,
		ItemRepo:        itemRepo,
		UserRepo:        userRepo,
		Consumer:        consumer,
		CleanupProducer: func() { _ = producer.Close() },
	}
}

// createTopics pre-creates the given topics on the broker.
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)
	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer controllerConn.Close()

	configs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		configs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	require.NoError(t, controllerConn.CreateTopics(configs...))
}

// publishTestEvent writes one CloudEvent to the topic.
func publishTestEvent(t *testing.T, brokers []string, topic, source, eventType string, payload interface{}) {
	t.Helper()

	event, err := kafka.NewCloudEvent(source, eventType, payload)
	require.NoError(t, err)
	value, err := json.Marshal(event)
	require.NoError(t, err)

	writer := &kafkago.Writer{
		Addr:     kafkago.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafkago.LeastBytes{},
	}
	defer writer.Close()

	require.NoError(t, writer.WriteMessages(context.Background(), kafkago.Message{
		Key:   []byte(event.ID),
		Value: value,
	}))
}

// consumeOneEvent reads from the topic until it sees an event of the given
// type or the deadline passes.
func consumeOneEvent(t *testing.T, brokers []string, topic, eventType string, timeout time.Duration) kafka.CloudEvent {
	t.Helper()

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		StartOffset: kafkago.FirstOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
	})
	defer reader.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	for {
		msg, err := reader.ReadMessage(ctx)
		require.NoError(t, err, "no %s event on %s before deadline", eventType, topic)

		event, err := kafka.ParseCloudEvent(msg.Value)
		if err != nil {
			continue
		}
		if event.Type == eventType {
			return event
		}
	}
}

// seedUser inserts a user through the service layer.
func seedUser(t *testing.T, stack *sharingStack, name, email string) uuid.UUID {
	t.Helper()
	resp, err := stack.Users.CreateUser(context.Background(), application.CreateUserRequest{
		Name:  name,
		Email: email,
	})
	require.NoError(t, err)
	return resp.ID
}

// seedItem inserts an available item through the service layer.
func seedItem(t *testing.T, stack *sharingStack, ownerID uuid.UUID, name string) uuid.UUID {
	t.Helper()
	available := true
	resp, err := stack.Items.AddItem(context.Background(), ownerID, application.CreateItemRequest{
		Name:        name,
		Description: name + " in good condition",
		Available:   &available,
	})
	require.NoError(t, err)
	return resp.ID
}

// waitForUserRow polls until the user row appears or the deadline passes.
func waitForUserRow(t *testing.T, db *gorm.DB, id uuid.UUID, timeout time.Duration) repository.UserModel {
	t.Helper()
	var model repository.UserModel
	require.Eventually(t, func() bool {
		return db.Where("id = ?", id).First(&model).Error == nil
	}, timeout, 500*time.Millisecond, "user row %s never appeared", id)
	return model
}
