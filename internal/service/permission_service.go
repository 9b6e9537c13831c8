package service

import (
	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/util"
)

// SchoolStore is the slice of the school repository the gate needs.
type SchoolStore interface {
	FindByID(id string) (*model.School, error)
	FindBySerial(serial uint) (*model.School, error)
}

// SchoolAdminStore resolves per-school permission records.
type SchoolAdminStore interface {
	FindByAdminAndSchool(adminID, schoolID string) (*model.SchoolAdmin, error)
}

// PermissionService guards every admin-initiated school-scoped mutation.
type PermissionService struct {
	Schools      SchoolStore
	SchoolAdmins SchoolAdminStore
}

func NewPermissionService(schools SchoolStore, schoolAdmins SchoolAdminStore) *PermissionService {
	return &PermissionService{Schools: schools, SchoolAdmins: schoolAdmins}
}

// ResolveSchool accepts either a school UUID or its public registration code
// (SCH-prefixed).
func (s *PermissionService) ResolveSchool(ref string) (*model.School, error) {
	if serial, ok := util.ParseSchoolCode(ref); ok {
		return s.Schools.FindBySerial(serial)
	}
	return s.Schools.FindByID(ref)
}

// AuthorizeSchoolAction checks that the admin may perform the given action on
// the school and returns the resolved school.
//
// Super admins pass unconditionally. Otherwise the admin must hold a
// SchoolAdmin record for the school; owners pass regardless of restrictions,
// anyone else is denied when the permission tag is in their restriction list.
func (s *PermissionService) AuthorizeSchoolAction(admin *model.Admin, schoolRef string, permission model.Permission) (*model.School, error) {
	school, err := s.ResolveSchool(schoolRef)
	if err != nil {
		return nil, err
	}

	if admin == nil {
		return nil, util.ErrNotSchoolAdmin
	}
	if admin.IsSuperAdmin {
		return school, nil
	}

	record, err := s.SchoolAdmins.FindByAdminAndSchool(admin.ID, school.ID)
	if err != nil {
		return nil, util.ErrNotSchoolAdmin
	}

	if record.IsRestricted(permission) {
		return nil, util.ErrPermissionDenied
	}

	return school, nil
}
