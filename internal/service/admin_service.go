package service

import (
	"errors"

	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/util"
)

// AdminDirectory is the full platform admin repository surface.
type AdminDirectory interface {
	Create(admin *model.Admin) error
	FindByID(id string) (*model.Admin, error)
	FindByEmail(email string) (*model.Admin, error)
	List(page, size int) ([]model.Admin, int64, error)
	Update(admin *model.Admin) error
	Delete(id string) error
}

// SchoolAdminDirectory is the full school admin repository surface.
type SchoolAdminDirectory interface {
	SchoolAdminStore
	Create(record *model.SchoolAdmin) error
	List(page, size int, schoolID string, role model.SchoolAdminRole) ([]model.SchoolAdmin, int64, error)
	Update(record *model.SchoolAdmin) error
	Delete(adminID, schoolID string) error
}

type AdminService struct {
	Admins       AdminDirectory
	SchoolAdmins SchoolAdminDirectory
	Gate         *PermissionService
}

func NewAdminService(admins AdminDirectory, schoolAdmins SchoolAdminDirectory, gate *PermissionService) *AdminService {
	return &AdminService{Admins: admins, SchoolAdmins: schoolAdmins, Gate: gate}
}

type AdminRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	IsSuperAdmin bool   `json:"isSuperAdmin"`
}

// CreateAdmin registers a platform admin account. Super admins only; school
// scoping happens separately through AssignSchoolAdmin.
func (s *AdminService) CreateAdmin(req *AdminRequest, actor *model.Admin) (*model.Admin, error) {
	if !actor.IsSuperAdmin {
		return nil, util.ErrSuperAdminOnly
	}

	email := util.NormalizeEmail(req.Email)
	if _, err := s.Admins.FindByEmail(email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, util.ErrAdminNotFound) {
		return nil, err
	}

	admin := &model.Admin{
		Name:         util.CapitalizeName(req.Name),
		Email:        email,
		IsSuperAdmin: req.IsSuperAdmin,
	}
	if err := s.Admins.Create(admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *AdminService) GetAdmin(id string) (*model.Admin, error) {
	return s.Admins.FindByID(id)
}

func (s *AdminService) ListAdmins(page, size int, actor *model.Admin) ([]model.Admin, int64, error) {
	if !actor.IsSuperAdmin {
		return nil, 0, util.ErrSuperAdminOnly
	}
	return s.Admins.List(page, size)
}

func (s *AdminService) DeleteAdmin(id string, actor *model.Admin) error {
	if !actor.IsSuperAdmin {
		return util.ErrSuperAdminOnly
	}
	if _, err := s.Admins.FindByID(id); err != nil {
		return err
	}
	return s.Admins.Delete(id)
}

type SchoolAdminRequest struct {
	AdminEmail   string                `json:"adminEmail" binding:"required,email"`
	AdminName    string                `json:"adminName"`
	Role         model.SchoolAdminRole `json:"role"`
	Restrictions []string              `json:"restrictions"`
}

// AssignSchoolAdmin attaches an admin to a school, creating the admin account
// on the fly when the email is new. Requires the CREATE_ADMIN permission on
// the target school.
func (s *AdminService) AssignSchoolAdmin(schoolRef string, req *SchoolAdminRequest, actor *model.Admin) (*model.SchoolAdmin, error) {
	school, err := s.Gate.AuthorizeSchoolAction(actor, schoolRef, model.PermCreateAdmin)
	if err != nil {
		return nil, err
	}

	email := util.NormalizeEmail(req.AdminEmail)
	admin, err := s.Admins.FindByEmail(email)
	switch {
	case err == nil:
	case errors.Is(err, util.ErrAdminNotFound):
		admin = &model.Admin{
			Name:  util.CapitalizeName(req.AdminName),
			Email: email,
		}
		if err := s.Admins.Create(admin); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if _, err := s.SchoolAdmins.FindByAdminAndSchool(admin.ID, school.ID); err == nil {
		return nil, util.ErrEmailRegistered
	}

	role := req.Role
	if role == "" {
		role = model.RoleGuest
	}
	record := &model.SchoolAdmin{
		AdminID:      admin.ID,
		SchoolID:     school.ID,
		Role:         role,
		Restrictions: model.StringList(req.Restrictions),
	}
	if err := s.SchoolAdmins.Create(record); err != nil {
		return nil, err
	}
	record.Admin = admin
	return record, nil
}

func (s *AdminService) ListSchoolAdmins(schoolRef string, page, size int, role model.SchoolAdminRole, actor *model.Admin) ([]model.SchoolAdmin, int64, error) {
	school, err := s.Gate.AuthorizeSchoolAction(actor, schoolRef, model.PermCreateAdmin)
	if err != nil {
		return nil, 0, err
	}
	return s.SchoolAdmins.List(page, size, school.ID, role)
}

type SchoolAdminUpdateRequest struct {
	Role         *model.SchoolAdminRole `json:"role"`
	Restrictions *[]string              `json:"restrictions"`
}

// UpdateSchoolAdmin changes an admin's role or restriction list on one
// school. Owners cannot be demoted by non-super admins.
func (s *AdminService) UpdateSchoolAdmin(schoolRef, adminID string, req *SchoolAdminUpdateRequest, actor *model.Admin) (*model.SchoolAdmin, error) {
	school, err := s.Gate.AuthorizeSchoolAction(actor, schoolRef, model.PermCreateAdmin)
	if err != nil {
		return nil, err
	}

	record, err := s.SchoolAdmins.FindByAdminAndSchool(adminID, school.ID)
	if err != nil {
		return nil, err
	}
	if record.Role == model.RoleOwner && !actor.IsSuperAdmin {
		return nil, util.ErrPermissionDenied
	}

	if req.Role != nil {
		record.Role = *req.Role
	}
	if req.Restrictions != nil {
		record.Restrictions = model.StringList(*req.Restrictions)
	}
	if err := s.SchoolAdmins.Update(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *AdminService) RemoveSchoolAdmin(schoolRef, adminID string, actor *model.Admin) error {
	school, err := s.Gate.AuthorizeSchoolAction(actor, schoolRef, model.PermCreateAdmin)
	if err != nil {
		return err
	}
	record, err := s.SchoolAdmins.FindByAdminAndSchool(adminID, school.ID)
	if err != nil {
		return err
	}
	if record.Role == model.RoleOwner && !actor.IsSuperAdmin {
		return util.ErrPermissionDenied
	}
	return s.SchoolAdmins.Delete(adminID, school.ID)
}
