package models

// Role names known to the reference route table. Role names are plain tags;
// no prefix convention is implied.
const (
	RoleOperator = "OPERATOR"
	RoleAdmin    = "ADMIN"
)

// Role is a capability tag granted to users.
type Role struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Authority string `gorm:"column:authority;uniqueIndex" json:"authority"`
}

func (Role) TableName() string { return "tb_role" }
