package models

import (
	"context"

	"github.com/google/uuid"
)

func (r *GormRepo) GetEventType(ctx context.Context, id uuid.UUID) (*EventType, error) {
	var et EventType
	err := r.db.WithContext(ctx).
		Preload("Users").
		First(&et, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &et, nil
}

func (r *GormRepo) CreateEventType(ctx context.Context, et *EventType) error {
	if et.ID == uuid.Nil {
		et.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(et).Error
}
