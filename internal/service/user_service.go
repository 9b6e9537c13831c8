package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/util"
)

// UserDirectory is the full user repository surface.
type UserDirectory interface {
	Create(user *model.User) error
	FindByID(id string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	List(page, size int, query string) ([]model.User, int64, error)
	Update(user *model.User) error
	Delete(id string) error
	UpdateLastLogin(id string) error
}

// MembershipDirectory is the full school membership repository surface.
type MembershipDirectory interface {
	MembershipStore
	Create(membership *model.SchoolTeacher) error
	FindBySchoolAndUser(schoolID, userID string) (*model.SchoolTeacher, error)
	List(page, size int, schoolID string) ([]model.SchoolTeacher, int64, error)
	Update(membership *model.SchoolTeacher) error
	Delete(schoolID, userID string) error
}

type UserService struct {
	Users   UserDirectory
	Members MembershipDirectory
	Gate    *PermissionService
}

func NewUserService(users UserDirectory, members MembershipDirectory, gate *PermissionService) *UserService {
	return &UserService{Users: users, Members: members, Gate: gate}
}

type TeacherRequest struct {
	Email           string `json:"email" binding:"required,email"`
	FirstName       string `json:"firstName" binding:"required"`
	LastName        string `json:"lastName" binding:"required"`
	OtherName       string `json:"otherName"`
	Gender          string `json:"gender"`
	Password        string `json:"password" binding:"required,min=8"`
	IsTeachingStaff *bool  `json:"isTeachingStaff"`
	ClassAssigned   string `json:"classAssigned"`
}

// CreateTeacher registers a user and enrols them in the school in one go.
// If the email already belongs to a user, that user is enrolled instead of
// a second account being created.
func (s *UserService) CreateTeacher(schoolRef string, req *TeacherRequest, admin *model.Admin) (*model.SchoolTeacher, error) {
	school, err := s.Gate.AuthorizeSchoolAction(admin, schoolRef, model.PermCreateTeacher)
	if err != nil {
		return nil, err
	}

	email := util.NormalizeEmail(req.Email)
	user, err := s.Users.FindByEmail(email)
	switch {
	case err == nil:
		// existing account, enrol below
	case errors.Is(err, util.ErrUserNotFound):
		hashed, hashErr := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if hashErr != nil {
			return nil, hashErr
		}
		user = &model.User{
			Email:       email,
			FirstName:   util.CapitalizeName(req.FirstName),
			LastName:    util.CapitalizeName(req.LastName),
			OtherName:   util.CapitalizeName(req.OtherName),
			Gender:      req.Gender,
			Password:    string(hashed),
			IsActivated: true,
		}
		if err := s.Users.Create(user); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if _, err := s.Members.FindBySchoolAndUser(school.ID, user.ID); err == nil {
		return nil, util.ErrEmailRegistered
	}

	teaching := true
	if req.IsTeachingStaff != nil {
		teaching = *req.IsTeachingStaff
	}
	membership := &model.SchoolTeacher{
		SchoolID:        school.ID,
		UserID:          user.ID,
		IsTeachingStaff: teaching,
		IsActive:        true,
		ClassAssigned:   req.ClassAssigned,
	}
	if err := s.Members.Create(membership); err != nil {
		return nil, err
	}
	membership.User = user
	return membership, nil
}

func (s *UserService) GetUser(id string) (*model.User, error) {
	return s.Users.FindByID(id)
}

func (s *UserService) ListUsers(page, size int, query string) ([]model.User, int64, error) {
	return s.Users.List(page, size, query)
}

// ListSchoolTeachers pages through a school's memberships with the user rows
// preloaded. Any school admin may read the roster.
func (s *UserService) ListSchoolTeachers(schoolRef string, page, size int, admin *model.Admin) ([]model.SchoolTeacher, int64, error) {
	school, err := s.Gate.AuthorizeSchoolAction(admin, schoolRef, model.PermViewAssessment)
	if err != nil {
		return nil, 0, err
	}
	return s.Members.List(page, size, school.ID)
}

type TeacherUpdateRequest struct {
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	OtherName       *string `json:"otherName"`
	Gender          *string `json:"gender"`
	IsTeachingStaff *bool   `json:"isTeachingStaff"`
	IsActive        *bool   `json:"isActive"`
	ClassAssigned   *string `json:"classAssigned"`
}

// UpdateTeacher edits both the user profile and the school membership.
func (s *UserService) UpdateTeacher(schoolRef, userID string, req *TeacherUpdateRequest, admin *model.Admin) (*model.SchoolTeacher, error) {
	school, err := s.Gate.AuthorizeSchoolAction(admin, schoolRef, model.PermUpdateTeacher)
	if err != nil {
		return nil, err
	}

	membership, err := s.Members.FindBySchoolAndUser(school.ID, userID)
	if err != nil {
		return nil, err
	}
	user, err := s.Users.FindByID(userID)
	if err != nil {
		return nil, err
	}

	profileChanged := false
	if req.FirstName != nil {
		user.FirstName = util.CapitalizeName(*req.FirstName)
		profileChanged = true
	}
	if req.LastName != nil {
		user.LastName = util.CapitalizeName(*req.LastName)
		profileChanged = true
	}
	if req.OtherName != nil {
		user.OtherName = util.CapitalizeName(*req.OtherName)
		profileChanged = true
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
		profileChanged = true
	}
	if profileChanged {
		if err := s.Users.Update(user); err != nil {
			return nil, err
		}
	}

	if req.IsTeachingStaff != nil {
		membership.IsTeachingStaff = *req.IsTeachingStaff
	}
	if req.IsActive != nil {
		membership.IsActive = *req.IsActive
	}
	if req.ClassAssigned != nil {
		membership.ClassAssigned = *req.ClassAssigned
	}
	if err := s.Members.Update(membership); err != nil {
		return nil, err
	}
	membership.User = user
	return membership, nil
}

// RemoveTeacher drops the school membership. The user account survives so
// other schools keep their rosters.
func (s *UserService) RemoveTeacher(schoolRef, userID string, admin *model.Admin) error {
	school, err := s.Gate.AuthorizeSchoolAction(admin, schoolRef, model.PermDeleteTeacher)
	if err != nil {
		return err
	}
	if _, err := s.Members.FindBySchoolAndUser(school.ID, userID); err != nil {
		return err
	}
	return s.Members.Delete(school.ID, userID)
}
