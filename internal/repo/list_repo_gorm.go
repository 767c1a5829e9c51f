package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"toodoo/internal/domain"
)

type ListRepo struct{ db *gorm.DB }

func NewListRepo(db *gorm.DB) *ListRepo { return &ListRepo{db: db} }

func (r *ListRepo) Create(ctx context.Context, l *domain.List) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(l).Error; err != nil {
			return err
		}
		// Owner is always a member row of their own list.
		return tx.Create(&domain.ListMember{ListID: l.ID, UserID: l.OwnerID}).Error
	})
}

func (r *ListRepo) FindByID(ctx context.Context, id string) (*domain.List, error) {
	var l domain.List
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &l, err
}

func (r *ListRepo) VisibleTo(ctx context.Context, userID string) (owned, shared []domain.List, err error) {
	if err = r.db.WithContext(ctx).
		Where("owner_id = ?", userID).
		Find(&owned).Error; err != nil {
		return nil, nil, err
	}
	err = r.db.WithContext(ctx).
		Joins("JOIN list_members ON list_members.list_id = lists.id").
		Where("list_members.user_id = ? AND lists.owner_id <> ?", userID, userID).
		Find(&shared).Error
	if err != nil {
		return nil, nil, err
	}
	return owned, shared, nil
}

func (r *ListRepo) AddMember(ctx context.Context, listID, userID string) error {
	return r.db.WithContext(ctx).Create(&domain.ListMember{ListID: listID, UserID: userID}).Error
}

func (r *ListRepo) RemoveMember(ctx context.Context, listID, userID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("list_id = ? AND user_id = ?", listID, userID).
		Delete(&domain.ListMember{})
	return res.RowsAffected, res.Error
}

func (r *ListRepo) IsMember(ctx context.Context, listID, userID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.ListMember{}).
		Where("list_id = ? AND user_id = ?", listID, userID).
		Count(&n).Error
	return n > 0, err
}

func (r *ListRepo) Members(ctx context.Context, listID string) ([]domain.Member, error) {
	var ms []domain.Member
	err := r.db.WithContext(ctx).Model(&domain.ListMember{}).
		Select("users.id AS user_id, users.name, users.email").
		Joins("JOIN users ON users.id = list_members.user_id").
		Where("list_members.list_id = ?", listID).
		Order("list_members.id").
		Scan(&ms).Error
	return ms, err
}
