package store

import (
	"context"
	"strings"

	"github.com/legit-games/catalog-service/errors"
	"github.com/legit-games/catalog-service/models"
	"gorm.io/gorm"
)

var userSortColumns = map[string]string{
	"id":        "id",
	"firstName": "first_name",
	"lastName":  "last_name",
	"email":     "email",
}

// UserStore provides operations for users.
type UserStore struct {
	DB *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore { return &UserStore{DB: db} }

// FindByEmail loads a user and its roles. Missing users yield errors.ErrResourceNotFound.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.DB.WithContext(ctx).Preload("Roles").Where("email = ?", strings.TrimSpace(email)).First(&u).Error
	if err != nil {
		return nil, translate(err, "Email not found")
	}
	return &u, nil
}

func (s *UserStore) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := s.DB.WithContext(ctx).Preload("Roles").First(&u, id).Error; err != nil {
		return nil, translate(err, "Entity not found")
	}
	return &u, nil
}

func (s *UserStore) Page(ctx context.Context, p Pageable) (Page[models.User], error) {
	q := s.DB.WithContext(ctx).Model(&models.User{})
	return paginate[models.User](q, p, userSortColumns, "Roles")
}

// EmailTaken reports whether email belongs to a user other than exceptID.
// Pass exceptID = 0 on insert.
func (s *UserStore) EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error) {
	var count int64
	q := s.DB.WithContext(ctx).Model(&models.User{}).Where("email = ?", strings.TrimSpace(email))
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert stores u with the roles identified by roleIDs. u.Password must already be hashed.
func (s *UserStore) Insert(ctx context.Context, u *models.User, roleIDs []int64) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		roles, err := loadRoles(tx, roleIDs)
		if err != nil {
			return err
		}
		u.ID = 0
		u.Roles = nil
		if err := tx.Omit("Roles").Create(u).Error; err != nil {
			return translate(err, "")
		}
		if len(roles) > 0 {
			if err := tx.Model(u).Association("Roles").Append(roles); err != nil {
				return translate(err, "")
			}
		}
		u.Roles = roles
		return nil
	})
}

// Update replaces name, e-mail and role set of user id. The password is untouched.
func (s *UserStore) Update(ctx context.Context, id int64, u *models.User, roleIDs []int64) (*models.User, error) {
	var out models.User
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&out, id).Error; err != nil {
			return translate(err, "Id not found %d", id)
		}
		roles, err := loadRoles(tx, roleIDs)
		if err != nil {
			return err
		}
		if err := tx.Model(&out).Updates(map[string]interface{}{
			"first_name": u.FirstName,
			"last_name":  u.LastName,
			"email":      strings.TrimSpace(u.Email),
		}).Error; err != nil {
			return translate(err, "")
		}
		if err := tx.Model(&out).Association("Roles").Replace(roles); err != nil {
			return translate(err, "")
		}
		return tx.Preload("Roles").First(&out, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *UserStore) Delete(ctx context.Context, id int64) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u models.User
		if err := tx.First(&u, id).Error; err != nil {
			return translate(err, "Id not found %d", id)
		}
		if err := tx.Model(&u).Association("Roles").Clear(); err != nil {
			return translate(err, "")
		}
		return translate(tx.Delete(&u).Error, "")
	})
}

// loadRoles resolves every id or fails with ErrResourceNotFound.
func loadRoles(tx *gorm.DB, ids []int64) ([]models.Role, error) {
	ids = distinct(ids)
	if len(ids) == 0 {
		return []models.Role{}, nil
	}
	var roles []models.Role
	if err := tx.Where("id IN ?", ids).Order("id").Find(&roles).Error; err != nil {
		return nil, err
	}
	if len(roles) != len(ids) {
		return nil, errors.NotFound("Role not found")
	}
	return roles, nil
}

func distinct(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
