package model

// swagger:model School
type School struct {
	UUIDBase
	Name string `gorm:"size:255;not null" json:"name"`
	// Serial backs the human-readable registration code. Never exposed directly.
	Serial         uint     `gorm:"uniqueIndex;autoIncrement" json:"-"`
	RegistrationID string   `gorm:"size:20;uniqueIndex" json:"registrationId"`
	Location       Location `gorm:"type:json" json:"location"`
	LogoURL        string   `gorm:"size:255" json:"logoUrl"`
	IsActive       bool     `gorm:"default:false" json:"isActive"`
}

func (School) TableName() string {
	return "schools"
}
