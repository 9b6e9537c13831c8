package model

type SchoolAdminRole string

const (
	RoleOwner SchoolAdminRole = "owner"
	RoleAdmin SchoolAdminRole = "admin"
	RoleGuest SchoolAdminRole = "guest"
)

// Permission tags a single school-scoped admin action. A non-owner admin is
// denied an action when its tag appears in the record's Restrictions.
type Permission string

const (
	PermCreateTeacher    Permission = "CREATE_TEACHER"
	PermUpdateTeacher    Permission = "UPDATE_TEACHER"
	PermDeleteTeacher    Permission = "DELETE_TEACHER"
	PermCreateAssessment Permission = "CREATE_ASSESSMENT"
	PermUpdateAssessment Permission = "UPDATE_ASSESSMENT"
	PermDeleteAssessment Permission = "DELETE_ASSESSMENT"
	PermViewAssessment   Permission = "VIEW_ASSESSMENT"
	PermCreateAdmin      Permission = "CREATE_ADMIN"
	PermUpdateSchool     Permission = "UPDATE_SCHOOL"
)

// swagger:model SchoolAdmin
type SchoolAdmin struct {
	UUIDBase
	AdminID      string          `gorm:"size:36;index:idx_school_admin,unique;not null" json:"adminId"`
	SchoolID     string          `gorm:"size:36;index:idx_school_admin,unique;not null" json:"schoolId"`
	Role         SchoolAdminRole `gorm:"type:enum('owner','admin','guest');default:'guest'" json:"role"`
	Restrictions StringList      `gorm:"type:json" json:"restrictions"`

	Admin  *Admin  `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
	School *School `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
}

func (SchoolAdmin) TableName() string {
	return "school_admins"
}

// IsRestricted reports whether the record denies the given permission.
// Owners bypass restrictions entirely.
func (sa *SchoolAdmin) IsRestricted(p Permission) bool {
	if sa.Role == RoleOwner {
		return false
	}
	for _, tag := range sa.Restrictions {
		if tag == string(p) {
			return true
		}
	}
	return false
}
