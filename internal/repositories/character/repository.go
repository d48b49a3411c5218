// Package character provides the interface for character persistence
package character

//go:generate mockgen -destination=mock/mock_repository.go -package=charactermock github.com/dmtable/sheet-api/internal/repositories/character Repository

import (
	"context"

	"github.com/dmtable/sheet-api/internal/entities"
)

// Repository defines the interface for character persistence
type Repository interface {
	// Create stores a new character, assigning its ID and initial version
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a character by ID
	// Returns errors.NotFound if character doesn't exist
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update persists a character whose Version still matches the stored
	// one, then increments it
	// Returns errors.NotFound if character doesn't exist
	// Returns errors.FailedPrecondition if the version no longer matches
	// Returns errors.Internal for storage failures
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete deletes a character by ID
	// Returns errors.NotFound if character doesn't exist
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ListByOwnerID retrieves all characters owned by a user
	// Returns errors.InvalidArgument for a zero owner ID
	// Returns errors.Internal for storage failures
	ListByOwnerID(ctx context.Context, input ListByOwnerIDInput) (*ListByOwnerIDOutput, error)

	// ListAll retrieves every character, for dungeon master views
	// Returns errors.Internal for storage failures
	ListAll(ctx context.Context, input ListAllInput) (*ListAllOutput, error)
}

// CreateInput defines the input for creating a character
type CreateInput struct {
	Character *entities.Character
}

// CreateOutput defines the output for creating a character
type CreateOutput struct {
	Character *entities.Character
}

// GetInput defines the input for getting a character
type GetInput struct {
	ID int64
}

// GetOutput defines the output for getting a character
type GetOutput struct {
	Character *entities.Character
}

// UpdateInput defines the input for updating a character
type UpdateInput struct {
	Character *entities.Character
}

// UpdateOutput defines the output for updating a character
type UpdateOutput struct {
	Character *entities.Character
}

// DeleteInput defines the input for deleting a character
type DeleteInput struct {
	ID int64
}

// DeleteOutput defines the output for deleting a character
type DeleteOutput struct{}

// ListByOwnerIDInput defines the input for listing characters by owner
type ListByOwnerIDInput struct {
	OwnerID int64
}

// ListByOwnerIDOutput defines the output for listing characters by owner
type ListByOwnerIDOutput struct {
	Characters []*entities.Character
}

// ListAllInput defines the input for listing every character
type ListAllInput struct{}

// ListAllOutput defines the output for listing every character
type ListAllOutput struct {
	Characters []*entities.Character
}
