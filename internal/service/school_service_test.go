package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/util"
)

func newSchoolService(schools *fakeSchoolStore) *SchoolService {
	gate := NewPermissionService(schools, &fakeSchoolAdminStore{})
	return NewSchoolService(schools, gate)
}

func TestCreateSchoolStampsRegistrationCode(t *testing.T) {
	schools := newFakeSchoolStore()
	svc := newSchoolService(schools)

	school, err := svc.CreateSchool(&SchoolRequest{Name: "greenfield high"}, superAdmin())
	require.NoError(t, err)

	assert.Equal(t, "Greenfield high", school.Name)
	assert.True(t, school.IsActive)
	assert.Equal(t, util.FormatSchoolCode(school.Serial), school.RegistrationID)

	byCode, err := svc.GetSchool(school.RegistrationID)
	require.NoError(t, err)
	assert.Equal(t, school.ID, byCode.ID)
}

func TestCreateSchoolRequiresSuperAdmin(t *testing.T) {
	svc := newSchoolService(newFakeSchoolStore())

	_, err := svc.CreateSchool(&SchoolRequest{Name: "Greenfield"}, plainAdmin())
	assert.ErrorIs(t, err, util.ErrSuperAdminOnly)
}

func TestUpdateSchoolActivationStaysSuperOnly(t *testing.T) {
	school := testSchool(1)
	schools := newFakeSchoolStore(school)
	admin := plainAdmin()
	schoolAdmins := &fakeSchoolAdminStore{records: []*model.SchoolAdmin{{
		SchoolID: school.ID,
		AdminID:  admin.ID,
		Role:     model.RoleOwner,
	}}}
	gate := NewPermissionService(schools, schoolAdmins)
	svc := NewSchoolService(schools, gate)

	inactive := false
	_, err := svc.UpdateSchool(school.ID, &SchoolUpdateRequest{IsActive: &inactive}, admin)
	assert.ErrorIs(t, err, util.ErrSuperAdminOnly)

	name := "renamed campus"
	updated, err := svc.UpdateSchool(school.ID, &SchoolUpdateRequest{Name: &name}, admin)
	require.NoError(t, err)
	assert.Equal(t, "Renamed campus", updated.Name)

	updated, err = svc.UpdateSchool(school.ID, &SchoolUpdateRequest{IsActive: &inactive}, superAdmin())
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}

func TestDeleteSchool(t *testing.T) {
	school := testSchool(1)
	schools := newFakeSchoolStore(school)
	svc := newSchoolService(schools)

	err := svc.DeleteSchool(school.ID, plainAdmin())
	assert.ErrorIs(t, err, util.ErrSuperAdminOnly)

	require.NoError(t, svc.DeleteSchool(util.FormatSchoolCode(school.Serial), superAdmin()))

	_, err = svc.GetSchool(school.ID)
	assert.ErrorIs(t, err, util.ErrSchoolNotFound)
}
