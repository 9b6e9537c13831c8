package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/util"
)

type assessmentFixture struct {
	service *AssessmentService
	store   *fakeAssessmentStore
	takers  *fakeTakerStore
	members *fakeMembershipStore
	bank    *fakeQuestionStore
	school  *model.School
	admins  *fakeSchoolAdminStore
}

func newAssessmentFixture(t *testing.T) *assessmentFixture {
	t.Helper()

	school := testSchool(1)
	admins := &fakeSchoolAdminStore{}
	gate := NewPermissionService(newFakeSchoolStore(school), admins)

	bank := newFakeQuestionStore(bankQuestion("A"), bankQuestion("B"))
	takers := newFakeTakerStore()
	store := newFakeAssessmentStore(takers, bank)
	members := &fakeMembershipStore{}

	return &assessmentFixture{
		service: NewAssessmentService(store, takers, members, bank, gate),
		store:   store,
		takers:  takers,
		members: members,
		bank:    bank,
		school:  school,
		admins:  admins,
	}
}

func (f *assessmentFixture) questionIDs() []string {
	ids := make([]string, 0, len(f.bank.questions))
	for id := range f.bank.questions {
		ids = append(ids, id)
	}
	return ids
}

func (f *assessmentFixture) validRequest() AssessmentRequest {
	return AssessmentRequest{
		Name:        "Midterm",
		SchoolID:    f.school.ID,
		Duration:    45,
		QuestionIDs: f.questionIDs(),
	}
}

func (f *assessmentFixture) member(userID string, teaching bool) {
	f.members.members = append(f.members.members, model.SchoolTeacher{
		SchoolID:        f.school.ID,
		UserID:          userID,
		IsTeachingStaff: teaching,
		IsActive:        true,
	})
}

func TestCreateAssessmentDefaults(t *testing.T) {
	f := newAssessmentFixture(t)

	a, err := f.service.CreateAssessment(f.validRequest(), superAdmin())
	require.NoError(t, err)

	assert.Equal(t, model.AudienceAll, a.TargetAudience)
	assert.True(t, a.Grading.IsGradable)
	assert.InDelta(t, 50, a.Grading.PassMark, 0.001)

	attachments, err := f.store.ListAttachments(a.ID)
	require.NoError(t, err)
	require.Len(t, attachments, 2)
	assert.Equal(t, 1, attachments[0].Order)
	assert.Equal(t, 2, attachments[1].Order)
	assert.False(t, attachments[0].IsCustom)
}

func TestCreateAssessmentValidation(t *testing.T) {
	f := newAssessmentFixture(t)

	noQuestions := f.validRequest()
	noQuestions.QuestionIDs = nil
	_, err := f.service.CreateAssessment(noQuestions, superAdmin())
	assert.ErrorIs(t, err, util.ErrNoQuestions)

	badDuration := f.validRequest()
	badDuration.Duration = 0
	_, err = f.service.CreateAssessment(badDuration, superAdmin())
	assert.ErrorIs(t, err, util.ErrInvalidDuration)

	badPassMark := f.validRequest()
	mark := 120.0
	badPassMark.Grading = &GradingPolicyRequest{PassMark: &mark}
	_, err = f.service.CreateAssessment(badPassMark, superAdmin())
	assert.ErrorIs(t, err, util.ErrInvalidPassMark)

	unknownQuestion := f.validRequest()
	unknownQuestion.QuestionIDs = []string{"missing"}
	_, err = f.service.CreateAssessment(unknownQuestion, superAdmin())
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)
}

func TestCreateAssessmentRequiresPermission(t *testing.T) {
	f := newAssessmentFixture(t)

	_, err := f.service.CreateAssessment(f.validRequest(), plainAdmin())
	assert.ErrorIs(t, err, util.ErrNotSchoolAdmin)
}

func TestCreateAssessmentAudienceFanOut(t *testing.T) {
	f := newAssessmentFixture(t)
	f.member("teacher-1", true)
	f.member("teacher-2", true)
	f.member("clerk-1", false)

	req := f.validRequest()
	req.TargetAudience = model.AudienceTeaching
	a, err := f.service.CreateAssessment(req, superAdmin())
	require.NoError(t, err)

	takers, count, err := f.takers.List(takerFilterFor(a.ID))
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
	for _, taker := range takers {
		assert.Equal(t, model.TakerPending, taker.Status)
		assert.NotEqual(t, "clerk-1", taker.UserID)
	}
}

func TestCreateAssessmentNonTeachingAudience(t *testing.T) {
	f := newAssessmentFixture(t)
	f.member("teacher-1", true)
	f.member("clerk-1", false)

	req := f.validRequest()
	req.TargetAudience = model.AudienceNonTeaching
	a, err := f.service.CreateAssessment(req, superAdmin())
	require.NoError(t, err)

	takers, _, err := f.takers.List(takerFilterFor(a.ID))
	require.NoError(t, err)
	require.Len(t, takers, 1)
	assert.Equal(t, "clerk-1", takers[0].UserID)
}

func TestCreateAssessmentSpecificAudienceSkipsFanOut(t *testing.T) {
	f := newAssessmentFixture(t)
	f.member("teacher-1", true)

	req := f.validRequest()
	req.TargetAudience = model.AudienceSpecific
	a, err := f.service.CreateAssessment(req, superAdmin())
	require.NoError(t, err)

	_, count, err := f.takers.List(takerFilterFor(a.ID))
	require.NoError(t, err)
	assert.Zero(t, count)

	// assignment is explicit afterwards
	taker, err := f.service.AssignTaker(a.ID, "teacher-1", superAdmin())
	require.NoError(t, err)
	assert.Equal(t, model.TakerPending, taker.Status)
}

func TestViewSingleAssessmentQuestionVisibility(t *testing.T) {
	f := newAssessmentFixture(t)
	futureStart := time.Now().Add(24 * time.Hour)

	req := f.validRequest()
	req.StartDate = futureStart
	a, err := f.service.CreateAssessment(req, superAdmin())
	require.NoError(t, err)

	// super admin sees questions before the start date
	got, err := f.service.ViewSingleAssessment(a.ID, AdminActor(superAdmin()))
	require.NoError(t, err)
	assert.Len(t, got.Questions, 2)

	// users never see questions through this endpoint
	got, err = f.service.ViewSingleAssessment(a.ID, UserActor("user-1"))
	require.NoError(t, err)
	assert.Nil(t, got.Questions)

	// anonymous callers neither
	got, err = f.service.ViewSingleAssessment(a.ID, NoActor())
	require.NoError(t, err)
	assert.Nil(t, got.Questions)
}

func TestViewSingleAssessmentRestrictedAdmin(t *testing.T) {
	f := newAssessmentFixture(t)
	admin := plainAdmin()
	f.admins.records = append(f.admins.records, &model.SchoolAdmin{
		AdminID:      admin.ID,
		SchoolID:     f.school.ID,
		Role:         model.RoleAdmin,
		Restrictions: model.StringList{string(model.PermViewAssessment)},
	})

	req := f.validRequest()
	req.StartDate = time.Now().Add(24 * time.Hour)
	a, err := f.service.CreateAssessment(req, superAdmin())
	require.NoError(t, err)

	// before the window opens the restricted admin gets no questions
	f.service.now = fixedClock(time.Now())
	got, err := f.service.ViewSingleAssessment(a.ID, AdminActor(admin))
	require.NoError(t, err)
	assert.Nil(t, got.Questions)

	// once the exam has started the restriction no longer hides content
	f.service.now = fixedClock(req.StartDate.Add(time.Minute))
	got, err = f.service.ViewSingleAssessment(a.ID, AdminActor(admin))
	require.NoError(t, err)
	assert.Len(t, got.Questions, 2)
}

func TestStartAndSubmitLifecycle(t *testing.T) {
	f := newAssessmentFixture(t)
	f.member("teacher-1", true)

	a, err := f.service.CreateAssessment(f.validRequest(), superAdmin())
	require.NoError(t, err)

	taker, err := f.takers.FindByAssessmentAndUser(a.ID, "teacher-1")
	require.NoError(t, err)
	assert.Equal(t, model.TakerPending, taker.Status)

	firstStart := time.Now().UTC().Truncate(time.Second)
	f.service.now = fixedClock(firstStart)

	started, err := f.service.StartAssessment(taker.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TakerOngoing, started.Status)
	require.NotNil(t, started.StartedAt)
	assert.Equal(t, firstStart, *started.StartedAt)

	// re-entry after a dropped connection is allowed and keeps the clock
	f.service.now = fixedClock(firstStart.Add(10 * time.Minute))
	restarted, err := f.service.StartAssessment(taker.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TakerOngoing, restarted.Status)
	assert.Equal(t, firstStart, *restarted.StartedAt)

	answers := model.AnswerList{{QuestionID: f.questionIDs()[0], Answer: "A"}}
	submitted, err := f.service.SubmitAssessment(taker.ID, answers)
	require.NoError(t, err)
	assert.Equal(t, model.TakerCompleted, submitted.Status)
	require.NotNil(t, submitted.CompletedAt)
	assert.Len(t, submitted.Answers, 1)

	// completed attempts are sealed
	_, err = f.service.StartAssessment(taker.ID)
	assert.ErrorIs(t, err, util.ErrTakerCompleted)
	_, err = f.service.SubmitAssessment(taker.ID, nil)
	assert.ErrorIs(t, err, util.ErrTakerCompleted)
}

func TestSubmitEmptyAnswersAccepted(t *testing.T) {
	f := newAssessmentFixture(t)
	f.member("teacher-1", true)

	a, err := f.service.CreateAssessment(f.validRequest(), superAdmin())
	require.NoError(t, err)

	taker, err := f.takers.FindByAssessmentAndUser(a.ID, "teacher-1")
	require.NoError(t, err)

	submitted, err := f.service.SubmitAssessment(taker.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, model.TakerCompleted, submitted.Status)
}

func TestUpdateTakerBypassesLifecycleGuards(t *testing.T) {
	f := newAssessmentFixture(t)
	f.member("teacher-1", true)

	a, err := f.service.CreateAssessment(f.validRequest(), superAdmin())
	require.NoError(t, err)

	taker, err := f.takers.FindByAssessmentAndUser(a.ID, "teacher-1")
	require.NoError(t, err)

	_, err = f.service.SubmitAssessment(taker.ID, nil)
	require.NoError(t, err)

	// the administrative path can reopen a completed attempt
	reopened := model.TakerOngoing
	updated, err := f.service.UpdateTaker(taker.ID, TakerUpdateRequest{Status: &reopened})
	require.NoError(t, err)
	assert.Equal(t, model.TakerOngoing, updated.Status)
}

func TestUpdateAssessmentPartial(t *testing.T) {
	f := newAssessmentFixture(t)

	a, err := f.service.CreateAssessment(f.validRequest(), superAdmin())
	require.NoError(t, err)

	name := "Final"
	updated, err := f.service.UpdateAssessment(a.ID, AssessmentUpdateRequest{Name: &name}, superAdmin())
	require.NoError(t, err)
	assert.Equal(t, "Final", updated.Name)
	assert.Equal(t, 45, updated.Duration)
}

func TestDeleteAssessmentRequiresPermission(t *testing.T) {
	f := newAssessmentFixture(t)

	a, err := f.service.CreateAssessment(f.validRequest(), superAdmin())
	require.NoError(t, err)

	err = f.service.DeleteAssessment(a.ID, plainAdmin())
	assert.ErrorIs(t, err, util.ErrNotSchoolAdmin)

	require.NoError(t, f.service.DeleteAssessment(a.ID, superAdmin()))
	_, err = f.store.FindByID(a.ID)
	assert.ErrorIs(t, err, util.ErrAssessmentNotFound)
}
