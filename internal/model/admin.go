package model

// swagger:model Admin
type Admin struct {
	UUIDBase
	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	IsSuperAdmin bool   `gorm:"default:false" json:"isSuperAdmin"`
}

func (Admin) TableName() string {
	return "admins"
}
