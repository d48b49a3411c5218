// Package template provides the interface for sheet template persistence
package template

//go:generate mockgen -destination=mock/mock_repository.go -package=templatemock github.com/dmtable/sheet-api/internal/repositories/template Repository

import (
	"context"

	"github.com/dmtable/sheet-api/internal/entities"
)

// Repository defines the interface for sheet template persistence
type Repository interface {
	// Create stores a new template, assigning its ID
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a template by ID
	// Returns errors.NotFound if template doesn't exist
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update overwrites an existing template
	// Returns errors.NotFound if template doesn't exist
	// Returns errors.Internal for storage failures
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete deletes a template by ID
	// Returns errors.NotFound if template doesn't exist
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ListByOwnerID retrieves all templates owned by a user
	// Returns errors.InvalidArgument for a zero owner ID
	// Returns errors.Internal for storage failures
	ListByOwnerID(ctx context.Context, input ListByOwnerIDInput) (*ListByOwnerIDOutput, error)
}

// CreateInput defines the input for creating a template
type CreateInput struct {
	Template *entities.SheetTemplate
}

// CreateOutput defines the output for creating a template
type CreateOutput struct {
	Template *entities.SheetTemplate
}

// GetInput defines the input for getting a template
type GetInput struct {
	ID int64
}

// GetOutput defines the output for getting a template
type GetOutput struct {
	Template *entities.SheetTemplate
}

// UpdateInput defines the input for updating a template
type UpdateInput struct {
	Template *entities.SheetTemplate
}

// UpdateOutput defines the output for updating a template
type UpdateOutput struct {
	Template *entities.SheetTemplate
}

// DeleteInput defines the input for deleting a template
type DeleteInput struct {
	ID int64
}

// DeleteOutput defines the output for deleting a template
type DeleteOutput struct{}

// ListByOwnerIDInput defines the input for listing templates by owner
type ListByOwnerIDInput struct {
	OwnerID int64
}

// ListByOwnerIDOutput defines the output for listing templates by owner
type ListByOwnerIDOutput struct {
	Templates []*entities.SheetTemplate
}
