package usecases

import (
	"context"

	"github.com/docview/docview/internal/domain/entities"
	"github.com/docview/docview/internal/domain/ports"
)

// ListUseCase produces the document listing outside the page pipeline.
type ListUseCase struct {
	index ports.Index
}

// NewListUseCase creates a ListUseCase.
func NewListUseCase(index ports.Index) *ListUseCase {
	return &ListUseCase{index: index}
}

// List returns the ordered navigation entries with no document marked
// active.
func (uc *ListUseCase) List(ctx context.Context) ([]entities.NavEntry, error) {
	return uc.index.List(ctx, "")
}
