package service

import (
	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/util"
)

// SchoolDirectory is the full school repository surface.
type SchoolDirectory interface {
	SchoolStore
	Create(school *model.School) error
	List(page, size int, query string, isActive *bool) ([]model.School, int64, error)
	Update(school *model.School) error
	Delete(id string) error
}

type SchoolService struct {
	Schools SchoolDirectory
	Gate    *PermissionService
}

func NewSchoolService(schools SchoolDirectory, gate *PermissionService) *SchoolService {
	return &SchoolService{Schools: schools, Gate: gate}
}

type SchoolRequest struct {
	Name     string          `json:"name" binding:"required"`
	Location *model.Location `json:"location"`
	LogoURL  string          `json:"logoUrl"`
}

// CreateSchool registers a new school. Only super admins may onboard
// schools; the registration code is stamped from the serial on insert.
func (s *SchoolService) CreateSchool(req *SchoolRequest, admin *model.Admin) (*model.School, error) {
	if !admin.IsSuperAdmin {
		return nil, util.ErrSuperAdminOnly
	}

	school := &model.School{
		Name:     util.CapitalizeName(req.Name),
		LogoURL:  req.LogoURL,
		IsActive: true,
	}
	if req.Location != nil {
		school.Location = *req.Location
	}

	if err := s.Schools.Create(school); err != nil {
		return nil, err
	}
	return school, nil
}

// GetSchool resolves a school by UUID or registration code.
func (s *SchoolService) GetSchool(ref string) (*model.School, error) {
	return s.Gate.ResolveSchool(ref)
}

func (s *SchoolService) ListSchools(page, size int, query string, isActive *bool) ([]model.School, int64, error) {
	return s.Schools.List(page, size, query, isActive)
}

type SchoolUpdateRequest struct {
	Name     *string         `json:"name"`
	Location *model.Location `json:"location"`
	LogoURL  *string         `json:"logoUrl"`
	IsActive *bool           `json:"isActive"`
}

// UpdateSchool applies a partial update. School admins need the
// UPDATE_SCHOOL permission; toggling activation stays super-only.
func (s *SchoolService) UpdateSchool(ref string, req *SchoolUpdateRequest, admin *model.Admin) (*model.School, error) {
	school, err := s.Gate.AuthorizeSchoolAction(admin, ref, model.PermUpdateSchool)
	if err != nil {
		return nil, err
	}

	if req.IsActive != nil && !admin.IsSuperAdmin {
		return nil, util.ErrSuperAdminOnly
	}

	if req.Name != nil {
		school.Name = util.CapitalizeName(*req.Name)
	}
	if req.Location != nil {
		school.Location = *req.Location
	}
	if req.LogoURL != nil {
		school.LogoURL = *req.LogoURL
	}
	if req.IsActive != nil {
		school.IsActive = *req.IsActive
	}

	if err := s.Schools.Update(school); err != nil {
		return nil, err
	}
	return school, nil
}

// DeleteSchool soft-deletes a school. Super admins only.
func (s *SchoolService) DeleteSchool(ref string, admin *model.Admin) error {
	if !admin.IsSuperAdmin {
		return util.ErrSuperAdminOnly
	}
	school, err := s.Gate.ResolveSchool(ref)
	if err != nil {
		return err
	}
	return s.Schools.Delete(school.ID)
}
