package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

func ProvideConfig() Config {
	return Config{
		Hostname: requireEnv("HOSTNAME"),
		BasePath: requireEnv("BASE_PATH"),
		UIURL:    requireEnv("UI_URL"),
		Postgresql: postgresql{
			Host:         requireEnv("DATABASE_HOST"),
			Port:         requireEnvAsInt("DATABASE_PORT"),
			Username:     requireEnv("DATABASE_USERNAME"),
			Password:     requireEnv("DATABASE_PASSWORD"),
			DatabaseName: requireEnv("DATABASE_NAME"),
		},
		RabbitMq: rabbitmq{
			Host:     requireEnv("RABBITMQ_HOST"),
			Port:     requireEnvAsInt("RABBITMQ_PORT"),
			Username: requireEnv("RABBITMQ_USERNAME"),
			Password: requireEnv("RABBITMQ_PASSWORD"),
		},
		SMTP: smtp{
			Host:     requireEnv("SMTP_HOST"),
			Port:     requireEnvAsInt("SMTP_PORT"),
			Username: requireEnv("SMTP_USERNAME"),
			Password: requireEnv("SMTP_PASSWORD"),
		},
		Authentication: authentication{
			PrivateKeyPath:               requireEnv("PRIVATE_KEY_PATH"),
			AccessTokenExpirationSeconds: requireEnvAsInt("ACCESS_TOKEN_EXPIRATION_IN_SECONDS"),
		},
	}
}

type Config struct {
	// Hostname is the listen address handed to the HTTP server, e.g. ":8080".
	Hostname       string
	BasePath       string
	UIURL          string
	Postgresql     postgresql
	RabbitMq       rabbitmq
	SMTP           smtp
	Authentication authentication
}

type postgresql struct {
	Host         string
	Port         int
	Username     string
	Password     string
	DatabaseName string
}

type rabbitmq struct {
	Host     string
	Port     int
	Username string
	Password string
}

func (r rabbitmq) GetUrl() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", r.Username, r.Password, r.Host, r.Port)
}

type smtp struct {
	Host     string
	Port     int
	Username string
	Password string
}

type authentication struct {
	PrivateKeyPath               string
	AccessTokenExpirationSeconds int
}

func requireEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("Can't find environment variable: %s\n", key)
	}
	return value
}

func requireEnvAsInt(key string) int {
	valueStr := requireEnv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("Can't parse value as integer: %s", err.Error())
	}
	return value
}
