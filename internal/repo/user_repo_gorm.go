package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"toodoo/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *UserRepo) UpdateFields(ctx context.Context, id string, fields map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *UserRepo) Delete(ctx context.Context, id string) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&domain.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		deleted = res.RowsAffected

		if err := tx.Where("user_id = ?", id).Delete(&domain.PersonalTask{}).Error; err != nil {
			return err
		}

		var listIDs []string
		if err := tx.Model(&domain.List{}).Where("owner_id = ?", id).Pluck("id", &listIDs).Error; err != nil {
			return err
		}
		if len(listIDs) > 0 {
			if err := tx.Where("list_id IN ?", listIDs).Delete(&domain.CollabTask{}).Error; err != nil {
				return err
			}
			if err := tx.Where("list_id IN ?", listIDs).Delete(&domain.ListMember{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", listIDs).Delete(&domain.List{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", id).Delete(&domain.ListMember{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", id).Delete(&domain.ResetToken{}).Error
	})
	return deleted, err
}

func (r *UserRepo) CreateResetToken(ctx context.Context, t *domain.ResetToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *UserRepo) FindResetToken(ctx context.Context, token string) (*domain.ResetToken, error) {
	var t domain.ResetToken
	err := r.db.WithContext(ctx).First(&t, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &t, err
}

func (r *UserRepo) ConsumeResetToken(ctx context.Context, token string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&domain.ResetToken{}).
		Where("token = ?", token).Update("used_at", &now).Error
}
