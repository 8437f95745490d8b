package storage

import (
	"fmt"
	"log/slog"

	"github.com/sitegrid/fm-manager/pkg/config"
	"github.com/sitegrid/fm-manager/pkg/model"
	slogGorm "github.com/orandin/slog-gorm"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDatabase(logger *slog.Logger, c config.Config) (*gorm.DB, error) {
	p := c.Postgresql
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable", p.Host, p.Username, p.Password, p.DatabaseName, p.Port)

	databaseConfig := gorm.Config{
		Logger:         slogGorm.New(slogGorm.WithHandler(logger.Handler())),
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.Open(dsn), &databaseConfig)
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.SiteMap{},
		&model.Event{},
		&model.EventHistory{},
		&model.Comment{},
		&model.Notification{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %v", err)
	}

	return db, nil
}
