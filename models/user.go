package models

import "time"

// User is the authenticated principal. Email is unique and acts as the login name.
type User struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FirstName string    `gorm:"column:first_name" json:"firstName"`
	LastName  string    `gorm:"column:last_name" json:"lastName"`
	Email     string    `gorm:"column:email;uniqueIndex" json:"email"`
	Password  string    `gorm:"column:password" json:"-"`
	Roles     []Role    `gorm:"many2many:tb_user_role" json:"roles"`
	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:CURRENT_TIMESTAMP" json:"-"`
}

func (User) TableName() string { return "tb_user" }

// RoleNames returns the authorities held by the user, in storage order.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Authority)
	}
	return names
}

// HasRole reports whether the user holds the given authority.
func (u *User) HasRole(authority string) bool {
	for _, r := range u.Roles {
		if r.Authority == authority {
			return true
		}
	}
	return false
}
