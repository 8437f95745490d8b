package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/sitegrid/fm-manager/internal/errdef"
	"github.com/sitegrid/fm-manager/pkg/model"
	"gorm.io/gorm"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(db *gorm.DB) *repository {
	return &repository{db}
}

type repository struct {
	db *gorm.DB
}

func (r repository) create(ctx context.Context, notification *model.Notification) error {
	err := r.db.WithContext(ctx).Create(&notification).Error
	if err != nil {
		return fmt.Errorf("failed to create notification for user %d: %v", notification.UserID, err)
	}
	return nil
}

func (r repository) findById(ctx context.Context, id uint) (*model.Notification, error) {
	var n *model.Notification
	err := r.db.
		WithContext(ctx).
		Preload("User").
		First(&n, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("failed to find notification with id %d", id)
	}
	return n, err
}

func (r repository) findByUser(ctx context.Context, userId uint, skip, limit int) ([]model.Notification, error) {
	notifications := []model.Notification{}
	err := r.db.
		WithContext(ctx).
		Where("user_id = ?", userId).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find notifications for user %d: %v", userId, err)
	}
	return notifications, nil
}

func (r repository) setRead(ctx context.Context, id, userId uint, read bool) error {
	db := r.db.
		WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userId).
		Update("read", read)
	if db.Error != nil {
		return fmt.Errorf("failed to update notification %d: %v", id, db.Error)
	} else if db.RowsAffected < 1 {
		return errdef.NewNotFound("failed to find notification with id %d", id)
	}
	return nil
}

func (r repository) delete(ctx context.Context, id, userId uint) error {
	db := r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.Notification{}, id)
	if db.Error != nil {
		return fmt.Errorf("failed to delete notification %d: %v", id, db.Error)
	} else if db.RowsAffected < 1 {
		return errdef.NewNotFound("failed to find notification with id %d", id)
	}
	return nil
}
