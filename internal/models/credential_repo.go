package models

import (
	"context"

	"github.com/google/uuid"
)

func (r *GormRepo) CredentialsForUser(ctx context.Context, userID uuid.UUID) ([]Credential, error) {
	var creds []Credential
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&creds).Error
	if err != nil {
		return nil, err
	}
	return creds, nil
}
