package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/util"
)

type questionFixture struct {
	service    *QuestionBankService
	bank       *fakeQuestionStore
	store      *fakeAssessmentStore
	takers     *fakeTakerStore
	assessment *model.Assessment
}

func newQuestionFixture(t *testing.T) *questionFixture {
	t.Helper()

	school := testSchool(1)
	gate := NewPermissionService(newFakeSchoolStore(school), &fakeSchoolAdminStore{})

	seed := bankQuestion("A")
	bank := newFakeQuestionStore(seed)
	takers := newFakeTakerStore()
	store := newFakeAssessmentStore(takers, bank)

	assessment := &model.Assessment{
		UUIDBase: model.UUIDBase{ID: model.GenerateUUID()},
		Name:     "Quiz",
		SchoolID: school.ID,
		Duration: 30,
		Grading:  model.GradingPolicy{IsGradable: true, PassMark: 50},
	}
	require.NoError(t, store.CreateWithQuestions(assessment, []model.AssessmentQuestion{
		{QuestionID: seed.ID, Order: 1},
	}, nil))

	return &questionFixture{
		service:    NewQuestionBankService(bank, store, takers, gate),
		bank:       bank,
		store:      store,
		takers:     takers,
		assessment: assessment,
	}
}

func validQuestion() QuestionRequest {
	return QuestionRequest{
		Question: "What is 2 + 2?",
		Options: []model.QuestionOption{
			{Option: "A", Text: "3"},
			{Option: "B", Text: "4"},
			{Option: "C", Text: "5"},
		},
		Answer: "B",
	}
}

func TestCreateQuestionValidation(t *testing.T) {
	f := newQuestionFixture(t)

	tooFew := validQuestion()
	tooFew.Options = tooFew.Options[:1]
	_, err := f.service.CreateQuestion(tooFew)
	assert.ErrorIs(t, err, util.ErrInvalidOptionCount)

	tooMany := validQuestion()
	tooMany.Options = []model.QuestionOption{
		{Option: "A"}, {Option: "B"}, {Option: "C"}, {Option: "D"}, {Option: "E"},
	}
	_, err = f.service.CreateQuestion(tooMany)
	assert.ErrorIs(t, err, util.ErrInvalidOptionCount)

	badAnswer := validQuestion()
	badAnswer.Answer = "Z"
	_, err = f.service.CreateQuestion(badAnswer)
	assert.ErrorIs(t, err, util.ErrAnswerNotAnOption)

	question, err := f.service.CreateQuestion(validQuestion())
	require.NoError(t, err)
	assert.NotEmpty(t, question.ID)
}

func TestAddAssessmentQuestionAppendsCustom(t *testing.T) {
	f := newQuestionFixture(t)

	question, created, err := f.service.AddOrUpdateAssessmentQuestion(f.assessment.ID, validQuestion(), superAdmin())
	require.NoError(t, err)
	assert.True(t, created)

	attachments, err := f.store.ListAttachments(f.assessment.ID)
	require.NoError(t, err)
	require.Len(t, attachments, 2)

	last := attachments[len(attachments)-1]
	assert.Equal(t, question.ID, last.QuestionID)
	assert.Equal(t, 2, last.Order)
	assert.True(t, last.IsCustom)
}

func TestAddAssessmentQuestionUpdatesInPlace(t *testing.T) {
	f := newQuestionFixture(t)

	question, _, err := f.service.AddOrUpdateAssessmentQuestion(f.assessment.ID, validQuestion(), superAdmin())
	require.NoError(t, err)

	edit := validQuestion()
	edit.ID = question.ID
	edit.Question = "What is 3 + 3?"
	edit.Answer = "C"

	updated, created, err := f.service.AddOrUpdateAssessmentQuestion(f.assessment.ID, edit, superAdmin())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, question.ID, updated.ID)
	assert.Equal(t, "What is 3 + 3?", updated.Question)

	// no duplicate attachment was made
	attachments, err := f.store.ListAttachments(f.assessment.ID)
	require.NoError(t, err)
	assert.Len(t, attachments, 2)
}

func TestRemoveQuestionLeavesOrderGaps(t *testing.T) {
	f := newQuestionFixture(t)

	first, _, err := f.service.AddOrUpdateAssessmentQuestion(f.assessment.ID, validQuestion(), superAdmin())
	require.NoError(t, err)
	_, _, err = f.service.AddOrUpdateAssessmentQuestion(f.assessment.ID, validQuestion(), superAdmin())
	require.NoError(t, err)

	require.NoError(t, f.service.RemoveQuestionFromAssessment(f.assessment.ID, first.ID, superAdmin()))

	attachments, err := f.store.ListAttachments(f.assessment.ID)
	require.NoError(t, err)
	require.Len(t, attachments, 2)
	assert.Equal(t, 1, attachments[0].Order)
	assert.Equal(t, 3, attachments[1].Order) // the gap stays

	// the bank entry survives detachment
	_, err = f.bank.FindByID(first.ID)
	assert.NoError(t, err)

	err = f.service.RemoveQuestionFromAssessment(f.assessment.ID, first.ID, superAdmin())
	assert.ErrorIs(t, err, util.ErrQuestionNotAttached)
}

func TestViewAssessmentQuestionsStripsAnswers(t *testing.T) {
	f := newQuestionFixture(t)

	questions, err := f.service.ViewAssessmentQuestions(f.assessment.ID, AdminActor(superAdmin()))
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.NotEmpty(t, questions[0].Question)
	assert.Len(t, questions[0].Options, 2)
	assert.Equal(t, 1, questions[0].Order)
}

func TestViewAssessmentQuestionsRequiresAssignment(t *testing.T) {
	f := newQuestionFixture(t)

	_, err := f.service.ViewAssessmentQuestions(f.assessment.ID, UserActor("user-1"))
	assert.ErrorIs(t, err, util.ErrNotAssigned)

	_, err = f.service.ViewAssessmentQuestions(f.assessment.ID, NoActor())
	assert.ErrorIs(t, err, util.ErrNotAssigned)

	require.NoError(t, f.takers.Create(&model.AssessmentTaker{
		AssessmentID: f.assessment.ID,
		UserID:       "user-1",
		Status:       model.TakerPending,
	}))

	questions, err := f.service.ViewAssessmentQuestions(f.assessment.ID, UserActor("user-1"))
	require.NoError(t, err)
	assert.Len(t, questions, 1)
}

func TestDeleteQuestion(t *testing.T) {
	f := newQuestionFixture(t)

	question, err := f.service.CreateQuestion(validQuestion())
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteQuestion(question.ID))
	err = f.service.DeleteQuestion(question.ID)
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)
}
