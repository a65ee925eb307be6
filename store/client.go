package store

import (
	"context"

	"github.com/legit-games/catalog-service/models"
	"gorm.io/gorm"
)

var clientSortColumns = map[string]string{
	"id":        "id",
	"name":      "name",
	"cpf":       "cpf",
	"income":    "income",
	"birthDate": "birth_date",
	"children":  "children",
}

// ClientStore keeps customer records.
type ClientStore struct {
	DB *gorm.DB
}

func NewClientStore(db *gorm.DB) *ClientStore { return &ClientStore{DB: db} }

func (s *ClientStore) Page(ctx context.Context, p Pageable) (Page[models.Client], error) {
	return paginate[models.Client](s.DB.WithContext(ctx).Model(&models.Client{}), p, clientSortColumns)
}

func (s *ClientStore) FindByID(ctx context.Context, id int64) (*models.Client, error) {
	var c models.Client
	if err := s.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err, "Entity not found")
	}
	return &c, nil
}

func (s *ClientStore) Insert(ctx context.Context, c *models.Client) error {
	c.ID = 0
	return translate(s.DB.WithContext(ctx).Create(c).Error, "")
}

func (s *ClientStore) Update(ctx context.Context, id int64, in *models.Client) (*models.Client, error) {
	var out models.Client
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&out, id).Error; err != nil {
			return translate(err, "Id not found %d", id)
		}
		in.ID = out.ID
		out = *in
		return translate(tx.Save(&out).Error, "")
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ClientStore) Delete(ctx context.Context, id int64) error {
	res := s.DB.WithContext(ctx).Delete(&models.Client{}, id)
	if res.Error != nil {
		return translate(res.Error, "")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "Id not found %d", id)
	}
	return nil
}
