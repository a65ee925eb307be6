package models

import "time"

// Product is a catalog entry belonging to zero or more categories.
type Product struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string     `gorm:"column:name"`
	Description string     `gorm:"column:description"`
	Price       float64    `gorm:"column:price"`
	ImgURL      string     `gorm:"column:img_url"`
	Date        time.Time  `gorm:"column:date"`
	Categories  []Category `gorm:"many2many:tb_product_category"`
	CreatedAt   time.Time  `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;default:CURRENT_TIMESTAMP"`
}

func (Product) TableName() string { return "tb_product" }
