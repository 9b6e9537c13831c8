package model

import "time"

// swagger:model User
type User struct {
	UUIDBase
	Email     string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	FirstName string `gorm:"size:100;not null" json:"firstName"`
	LastName  string `gorm:"size:100;not null" json:"lastName"`
	OtherName string `gorm:"size:100" json:"otherName,omitempty"`
	// Serial backs the generated registration number.
	Serial             uint      `gorm:"uniqueIndex;autoIncrement" json:"-"`
	RegistrationNumber string    `gorm:"size:14;uniqueIndex" json:"registrationNumber"`
	Gender             string    `gorm:"size:20;not null" json:"gender"`
	DisplayImage       string    `gorm:"size:255" json:"displayImage,omitempty"`
	Password           string    `gorm:"size:100" json:"-"`
	IsActivated        bool      `gorm:"default:false" json:"isActivated"`
	IsEmailVerified    bool      `gorm:"default:false" json:"isEmailVerified"`
	LastLogin          time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}

// FullName joins the name parts for display.
func (u *User) FullName() string {
	if u.OtherName != "" {
		return u.FirstName + " " + u.LastName + " " + u.OtherName
	}
	return u.FirstName + " " + u.LastName
}
