package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/util"
)

func TestResolveSchoolByCodeAndID(t *testing.T) {
	school := testSchool(7)
	gate := NewPermissionService(newFakeSchoolStore(school), &fakeSchoolAdminStore{})

	byID, err := gate.ResolveSchool(school.ID)
	require.NoError(t, err)
	assert.Equal(t, school.ID, byID.ID)

	byCode, err := gate.ResolveSchool(util.FormatSchoolCode(school.Serial))
	require.NoError(t, err)
	assert.Equal(t, school.ID, byCode.ID)

	_, err = gate.ResolveSchool("SCH09999")
	assert.ErrorIs(t, err, util.ErrSchoolNotFound)
}

func TestAuthorizeSuperAdminBypassesRecords(t *testing.T) {
	school := testSchool(1)
	gate := NewPermissionService(newFakeSchoolStore(school), &fakeSchoolAdminStore{})

	got, err := gate.AuthorizeSchoolAction(superAdmin(), school.ID, model.PermDeleteTeacher)
	require.NoError(t, err)
	assert.Equal(t, school.ID, got.ID)
}

func TestAuthorizeRequiresSchoolAdminRecord(t *testing.T) {
	school := testSchool(1)
	gate := NewPermissionService(newFakeSchoolStore(school), &fakeSchoolAdminStore{})

	_, err := gate.AuthorizeSchoolAction(plainAdmin(), school.ID, model.PermCreateAssessment)
	assert.ErrorIs(t, err, util.ErrNotSchoolAdmin)
}

func TestAuthorizeRestrictionDeniesAction(t *testing.T) {
	school := testSchool(1)
	admin := plainAdmin()
	records := &fakeSchoolAdminStore{records: []*model.SchoolAdmin{{
		AdminID:      admin.ID,
		SchoolID:     school.ID,
		Role:         model.RoleAdmin,
		Restrictions: model.StringList{string(model.PermCreateAssessment)},
	}}}
	gate := NewPermissionService(newFakeSchoolStore(school), records)

	_, err := gate.AuthorizeSchoolAction(admin, school.ID, model.PermCreateAssessment)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	// a different action stays allowed
	_, err = gate.AuthorizeSchoolAction(admin, school.ID, model.PermUpdateAssessment)
	assert.NoError(t, err)
}

func TestAuthorizeOwnerIgnoresRestrictions(t *testing.T) {
	school := testSchool(1)
	admin := plainAdmin()
	records := &fakeSchoolAdminStore{records: []*model.SchoolAdmin{{
		AdminID:      admin.ID,
		SchoolID:     school.ID,
		Role:         model.RoleOwner,
		Restrictions: model.StringList{string(model.PermDeleteTeacher)},
	}}}
	gate := NewPermissionService(newFakeSchoolStore(school), records)

	_, err := gate.AuthorizeSchoolAction(admin, school.ID, model.PermDeleteTeacher)
	assert.NoError(t, err)
}
