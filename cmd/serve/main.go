package main

import (
	"crypto/rsa"
	"fmt"
	stdlog "log"
	"log/slog"
	"os"

	"github.com/go-mail/mail"
	"github.com/lestrrat-go/jwx/v2/jwk"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sitegrid/fm-manager/internal/log"
	"github.com/sitegrid/fm-manager/internal/middleware"
	"github.com/sitegrid/fm-manager/internal/server"
	"github.com/sitegrid/fm-manager/pkg/config"
	"github.com/sitegrid/fm-manager/pkg/event"
	"github.com/sitegrid/fm-manager/pkg/history"
	"github.com/sitegrid/fm-manager/pkg/notification"
	"github.com/sitegrid/fm-manager/pkg/project"
	"github.com/sitegrid/fm-manager/pkg/storage"
	"github.com/sitegrid/fm-manager/pkg/token"
	"github.com/sitegrid/fm-manager/pkg/user"
)

func main() {
	if err := run(); err != nil {
		stdlog.Fatal(err)
	}
}

func run() error {
	cfg := config.ProvideConfig()

	logger := slog.New(log.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := storage.NewDatabase(logger, cfg)
	if err != nil {
		return err
	}

	privateKey, err := readPrivateKey(cfg.Authentication.PrivateKeyPath)
	if err != nil {
		return err
	}

	dialer := mail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)

	connection, err := amqp.Dial(cfg.RabbitMq.GetUrl())
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %v", err)
	}
	defer connection.Close()

	channel, err := connection.Channel()
	if err != nil {
		return fmt.Errorf("failed to open RabbitMQ channel: %v", err)
	}
	defer channel.Close()

	userRepository := user.NewRepository(db)
	userService := user.NewService(cfg.UIURL, userRepository, dialer)
	tokenService := token.NewService(privateKey, cfg.Authentication.AccessTokenExpirationSeconds)
	userHandler := user.NewHandler(userService, tokenService)

	projectRepository := project.NewRepository(db)
	projectService := project.NewService(projectRepository, userService)
	projectHandler := project.NewHandler(projectService)

	broker := notification.NewBroker()
	notificationRepository := notification.NewRepository(db)
	notificationService := notification.NewService(logger, notificationRepository, channel, broker)
	notificationHandler := notification.NewHandler(logger, notificationService, broker)

	emailConsumer := notification.NewEmailConsumer(logger, channel, notificationRepository, dialer)
	if err := emailConsumer.Consume(); err != nil {
		return err
	}

	fanout := notification.NewFanout(notificationService, userService, projectService, cfg.UIURL)

	historyRepository := history.NewRepository(db)
	historyService := history.NewService(historyRepository)

	eventRepository := event.NewRepository(db)
	eventService := event.NewService(logger, eventRepository, historyService, fanout)
	eventHandler := event.NewHandler(eventService)

	historyHandler := history.NewHandler(historyService, eventRepository)

	authMiddleware := middleware.NewAuthentication(&privateKey.PublicKey, userService)

	r, err := server.GetEngine(logger, cfg.BasePath, authMiddleware, server.Handlers{
		User:         userHandler,
		Project:      projectHandler,
		Event:        eventHandler,
		History:      historyHandler,
		Notification: notificationHandler,
	})
	if err != nil {
		return err
	}

	return r.Run(cfg.Hostname)
}

func readPrivateKey(path string) (*rsa.PrivateKey, error) {
	pem, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key: %v", err)
	}

	key, err := jwk.ParseKey(pem, jwk.WithPEM(true))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %v", err)
	}

	privateKey := &rsa.PrivateKey{}
	if err := key.Raw(privateKey); err != nil {
		return nil, fmt.Errorf("failed to extract RSA private key: %v", err)
	}

	return privateKey, nil
}
