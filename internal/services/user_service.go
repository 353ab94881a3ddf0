package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/joshua-takyi/coachbook/internal/models"
)

// Request body field -> column name for the editable profile subset.
var editableFieldColumns = map[string]string{
	"username":            "username",
	"name":                "name",
	"avatar":              "avatar",
	"timeZone":            "time_zone",
	"weekStart":           "week_start",
	"hideBranding":        "hide_branding",
	"theme":               "theme",
	"completedOnboarding": "completed_onboarding",
}

type UserService struct {
	users models.UserRepo
}

func NewUserService(users models.UserRepo) *UserService {
	return &UserService{users: users}
}

func (us *UserService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := us.users.GetUser(ctx, id)
	if err != nil {
		if models.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// UpdateProfile applies the editable subset of profile fields. Users may
// only update themselves; unknown fields in data are dropped. A non-empty
// description overrides the bio.
func (us *UserService) UpdateProfile(ctx context.Context, requestorID, targetID uuid.UUID, data map[string]interface{}, description string) (*models.User, error) {
	if requestorID != targetID {
		return nil, ErrNotAuthorized
	}

	fields := make(map[string]interface{})
	for key, value := range data {
		if column, ok := editableFieldColumns[key]; ok {
			fields[column] = value
		}
	}
	if description != "" {
		fields["bio"] = description
	} else if bio, ok := data["bio"]; ok {
		fields["bio"] = bio
	}

	if len(fields) == 0 {
		return us.GetUser(ctx, targetID)
	}

	user, err := us.users.UpdateUser(ctx, targetID, fields)
	if err != nil {
		if models.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (us *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := us.users.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	return nil
}
