package document

import "context"

type Repository interface {
	Create(ctx context.Context, d *Document) error
	GetByID(ctx context.Context, id uint64) (*Document, error)
	// ListVisibleTo returns the user's own documents plus the shared ones
	// (nil UserID).
	ListVisibleTo(ctx context.Context, userID uint64) ([]Document, error)
	List(ctx context.Context) ([]Document, error)
	Delete(ctx context.Context, id uint64) error
}
