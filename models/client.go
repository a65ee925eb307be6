package models

import "time"

// Client is a customer record. It is unrelated to OAuth2 clients.
type Client struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name"`
	CPF       string    `gorm:"column:cpf"`
	Income    float64   `gorm:"column:income"`
	BirthDate time.Time `gorm:"column:birth_date"`
	Children  int       `gorm:"column:children"`
}

func (Client) TableName() string { return "tb_client" }
