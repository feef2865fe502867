package mysql

import (
	"context"

	docDomain "investorhub/internal/domain/document"

	"gorm.io/gorm"
)

type DocumentRepository struct{ db *gorm.DB }

func NewDocumentRepository(db *gorm.DB) *DocumentRepository { return &DocumentRepository{db: db} }

func (r *DocumentRepository) Create(ctx context.Context, d *docDomain.Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DocumentRepository) GetByID(ctx context.Context, id uint64) (*docDomain.Document, error) {
	var out docDomain.Document
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *DocumentRepository) ListVisibleTo(ctx context.Context, userID uint64) ([]docDomain.Document, error) {
	var out []docDomain.Document
	res := r.db.WithContext(ctx).
		Where("user_id = ? OR user_id IS NULL", userID).
		Order("uploaded_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *DocumentRepository) List(ctx context.Context) ([]docDomain.Document, error) {
	var out []docDomain.Document
	res := r.db.WithContext(ctx).Order("uploaded_at DESC, id DESC").Find(&out)
	return out, res.Error
}

func (r *DocumentRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&docDomain.Document{}, id).Error
}
