package model

// SchoolTeacher links a user to a school as a staff member. The teaching flag
// drives assessment audience resolution.
// swagger:model SchoolTeacher
type SchoolTeacher struct {
	UUIDBase
	SchoolID        string `gorm:"size:36;index:idx_school_user,unique;not null" json:"schoolId"`
	UserID          string `gorm:"size:36;index:idx_school_user,unique;not null" json:"userId"`
	IsTeachingStaff bool   `gorm:"default:true;not null" json:"isTeachingStaff"`
	IsActive        bool   `gorm:"default:true;not null" json:"isActive"`
	ClassAssigned   string `gorm:"size:100" json:"classAssigned,omitempty"`

	School *School `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
	User   *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (SchoolTeacher) TableName() string {
	return "school_teachers"
}
