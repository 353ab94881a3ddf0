package models

import (
	"context"

	"github.com/google/uuid"
)

func (r *GormRepo) Subscribers(ctx context.Context, userID uuid.UUID, trigger string) ([]Webhook, error) {
	var hooks []Webhook
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Find(&hooks).Error
	if err != nil {
		return nil, err
	}

	// Trigger lists are short comma-separated strings; filtering in process
	// keeps the query portable.
	subscribed := hooks[:0]
	for _, h := range hooks {
		if h.Subscribed(trigger) {
			subscribed = append(subscribed, h)
		}
	}
	return subscribed, nil
}

func (r *GormRepo) CreateWebhooks(ctx context.Context, hooks []Webhook) error {
	if len(hooks) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&hooks).Error
}
