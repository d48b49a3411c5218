// Package user provides the interface for user persistence
package user

//go:generate mockgen -destination=mock/mock_repository.go -package=usermock github.com/dmtable/sheet-api/internal/repositories/user Repository

import (
	"context"

	"github.com/dmtable/sheet-api/internal/entities"
)

// Repository defines the interface for user persistence. User IDs are the
// Telegram account IDs, so there is no ID allocation here.
type Repository interface {
	// Get retrieves a user by Telegram ID
	// Returns errors.NotFound if user doesn't exist
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Save creates or overwrites a user record
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.Internal for storage failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)
}

// GetInput defines the input for getting a user
type GetInput struct {
	ID int64
}

// GetOutput defines the output for getting a user
type GetOutput struct {
	User *entities.User
}

// SaveInput defines the input for saving a user
type SaveInput struct {
	User *entities.User
}

// SaveOutput defines the output for saving a user
type SaveOutput struct {
	User *entities.User
}
