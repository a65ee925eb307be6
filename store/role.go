package store

import (
	"context"
	"strings"

	"github.com/legit-games/catalog-service/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoleStore struct{ DB *gorm.DB }

func NewRoleStore(db *gorm.DB) *RoleStore { return &RoleStore{DB: db} }

// Ensure creates the authority if missing and returns it.
func (s *RoleStore) Ensure(ctx context.Context, authority string) (*models.Role, error) {
	role := models.Role{Authority: strings.TrimSpace(authority)}
	if role.Authority == "" {
		return nil, gorm.ErrInvalidData
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&role).Error; err != nil {
			return err
		}
		return tx.Where("authority = ?", role.Authority).First(&role).Error
	})
	if err != nil {
		return nil, err
	}
	return &role, nil
}
