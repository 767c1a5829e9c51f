package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"toodoo/internal/domain"
)

type PersonalTaskRepo struct{ db *gorm.DB }

func NewPersonalTaskRepo(db *gorm.DB) *PersonalTaskRepo { return &PersonalTaskRepo{db: db} }

func (r *PersonalTaskRepo) Create(ctx context.Context, t *domain.PersonalTask) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *PersonalTaskRepo) ListActive(ctx context.Context, userID string) ([]domain.PersonalTask, error) {
	var ts []domain.PersonalTask
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND deleted_at IS NULL", userID).
		Find(&ts).Error
	return ts, err
}

func (r *PersonalTaskRepo) Find(ctx context.Context, userID, id string) (*domain.PersonalTask, error) {
	var t domain.PersonalTask
	err := r.db.WithContext(ctx).First(&t, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &t, err
}

func (r *PersonalTaskRepo) UpdateFields(ctx context.Context, userID, id string, fields map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.PersonalTask{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	return res.RowsAffected, res.Error
}

// SetTombstone stamps (or clears, with nil) deleted_at. Stamping only
// touches active rows so a second delete reports 0 affected rows.
func (r *PersonalTaskRepo) SetTombstone(ctx context.Context, userID, id string, at *time.Time) (int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.PersonalTask{}).
		Where("id = ? AND user_id = ?", id, userID)
	if at != nil {
		q = q.Where("deleted_at IS NULL")
	}
	res := q.Update("deleted_at", at)
	return res.RowsAffected, res.Error
}

type CollabTaskRepo struct{ db *gorm.DB }

func NewCollabTaskRepo(db *gorm.DB) *CollabTaskRepo { return &CollabTaskRepo{db: db} }

func (r *CollabTaskRepo) Create(ctx context.Context, t *domain.CollabTask) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *CollabTaskRepo) ListActive(ctx context.Context, listID string) ([]domain.CollabTask, error) {
	var ts []domain.CollabTask
	err := r.db.WithContext(ctx).
		Where("list_id = ? AND deleted_at IS NULL", listID).
		Find(&ts).Error
	return ts, err
}

func (r *CollabTaskRepo) Find(ctx context.Context, id string) (*domain.CollabTask, error) {
	var t domain.CollabTask
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &t, err
}

func (r *CollabTaskRepo) UpdateFields(ctx context.Context, id string, fields map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.CollabTask{}).
		Where("id = ?", id).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *CollabTaskRepo) SetTombstone(ctx context.Context, id string, at *time.Time) (int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.CollabTask{}).Where("id = ?", id)
	if at != nil {
		q = q.Where("deleted_at IS NULL")
	}
	res := q.Update("deleted_at", at)
	return res.RowsAffected, res.Error
}
