package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/util"
)

type gradingFixture struct {
	service    *GradingService
	takers     *fakeTakerStore
	assessment *model.Assessment
	questions  []*model.QuestionBank
}

func newGradingFixture(t *testing.T, grading model.GradingPolicy) *gradingFixture {
	t.Helper()

	q1 := bankQuestion("A")
	q2 := bankQuestion("B")
	q3 := bankQuestion("A")
	bank := newFakeQuestionStore(q1, q2, q3)
	takers := newFakeTakerStore()
	store := newFakeAssessmentStore(takers, bank)

	assessment := &model.Assessment{
		UUIDBase: model.UUIDBase{ID: model.GenerateUUID()},
		Name:     "Term Exam",
		SchoolID: model.GenerateUUID(),
		Duration: 60,
		Grading:  grading,
	}
	attachments := []model.AssessmentQuestion{
		{QuestionID: q1.ID, Order: 1},
		{QuestionID: q2.ID, Order: 2},
		{QuestionID: q3.ID, Order: 3},
	}
	require.NoError(t, store.CreateWithQuestions(assessment, attachments, nil))

	return &gradingFixture{
		service:    NewGradingService(store, takers),
		takers:     takers,
		assessment: assessment,
		questions:  []*model.QuestionBank{q1, q2, q3},
	}
}

func (f *gradingFixture) completedTaker(t *testing.T, answers model.AnswerList) *model.AssessmentTaker {
	t.Helper()
	taker := &model.AssessmentTaker{
		AssessmentID: f.assessment.ID,
		UserID:       model.GenerateUUID(),
		Status:       model.TakerCompleted,
		Answers:      answers,
	}
	require.NoError(t, f.takers.Create(taker))
	return taker
}

func TestGradeAssessmentScoresAgainstAllQuestions(t *testing.T) {
	f := newGradingFixture(t, model.GradingPolicy{IsGradable: true, PassMark: 50})

	// one correct, one wrong, one unanswered
	taker := f.completedTaker(t, model.AnswerList{
		{QuestionID: f.questions[0].ID, Answer: "A"},
		{QuestionID: f.questions[1].ID, Answer: "A"},
	})

	summary, err := f.service.GradeAssessment(f.assessment.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.GradedCount)
	assert.Equal(t, 1, summary.TotalCount)

	require.NotNil(t, taker.Results)
	assert.InDelta(t, 33.33, taker.Results.Score, 0.01)
	assert.Equal(t, 3, taker.Results.TotalQuestions)
	assert.Equal(t, 1, taker.Results.CorrectAnswers)
	assert.Equal(t, 1, taker.Results.IncorrectAnswers)
	assert.Equal(t, 1, taker.Results.Unanswered)
	assert.False(t, taker.Results.Passed)
}

func TestGradeAssessmentPerfectScore(t *testing.T) {
	f := newGradingFixture(t, model.GradingPolicy{IsGradable: true, PassMark: 50})

	taker := f.completedTaker(t, model.AnswerList{
		{QuestionID: f.questions[0].ID, Answer: "A"},
		{QuestionID: f.questions[1].ID, Answer: "B"},
		{QuestionID: f.questions[2].ID, Answer: "A"},
	})

	_, err := f.service.GradeAssessment(f.assessment.ID)
	require.NoError(t, err)

	require.NotNil(t, taker.Results)
	assert.InDelta(t, 100, taker.Results.Score, 0.001)
	assert.True(t, taker.Results.Passed)
	assert.Zero(t, taker.Results.Unanswered)
}

func TestGradeAssessmentFirstAnswerWinsOnDuplicates(t *testing.T) {
	f := newGradingFixture(t, model.GradingPolicy{IsGradable: true, PassMark: 50})

	taker := f.completedTaker(t, model.AnswerList{
		{QuestionID: f.questions[0].ID, Answer: "A"},
		{QuestionID: f.questions[0].ID, Answer: "B"},
	})

	_, err := f.service.GradeAssessment(f.assessment.ID)
	require.NoError(t, err)

	require.NotNil(t, taker.Results)
	assert.Equal(t, 1, taker.Results.CorrectAnswers)
	assert.Equal(t, 0, taker.Results.IncorrectAnswers)
	assert.Equal(t, 2, taker.Results.Unanswered)
}

func TestGradeAssessmentZeroPassMarkDefaultsToFifty(t *testing.T) {
	f := newGradingFixture(t, model.GradingPolicy{IsGradable: true, PassMark: 0})

	passing := f.completedTaker(t, model.AnswerList{
		{QuestionID: f.questions[0].ID, Answer: "A"},
		{QuestionID: f.questions[1].ID, Answer: "B"},
	})
	failing := f.completedTaker(t, model.AnswerList{
		{QuestionID: f.questions[0].ID, Answer: "A"},
	})

	_, err := f.service.GradeAssessment(f.assessment.ID)
	require.NoError(t, err)

	require.NotNil(t, passing.Results)
	require.NotNil(t, failing.Results)
	assert.True(t, passing.Results.Passed)   // 66.7 >= 50
	assert.False(t, failing.Results.Passed)  // 33.3 < 50
}

func TestGradeAssessmentNotGradable(t *testing.T) {
	f := newGradingFixture(t, model.GradingPolicy{IsGradable: false})
	f.completedTaker(t, nil)

	_, err := f.service.GradeAssessment(f.assessment.ID)
	assert.ErrorIs(t, err, util.ErrNotGradable)
}

func TestGradeAssessmentWithoutQuestions(t *testing.T) {
	takers := newFakeTakerStore()
	store := newFakeAssessmentStore(takers, newFakeQuestionStore())
	assessment := &model.Assessment{
		UUIDBase: model.UUIDBase{ID: model.GenerateUUID()},
		Grading:  model.GradingPolicy{IsGradable: true, PassMark: 50},
	}
	require.NoError(t, store.CreateWithQuestions(assessment, nil, nil))

	svc := NewGradingService(store, takers)
	_, err := svc.GradeAssessment(assessment.ID)
	assert.ErrorIs(t, err, util.ErrNoQuestions)
}

func TestGradeAssessmentExactPassMarkAndRerun(t *testing.T) {
	q1 := bankQuestion("A")
	q2 := bankQuestion("B")
	q3 := bankQuestion("A")
	q4 := bankQuestion("B")
	bank := newFakeQuestionStore(q1, q2, q3, q4)
	takers := newFakeTakerStore()
	store := newFakeAssessmentStore(takers, bank)

	assessment := &model.Assessment{
		UUIDBase: model.UUIDBase{ID: model.GenerateUUID()},
		Name:     "Midterm",
		SchoolID: model.GenerateUUID(),
		Duration: 60,
		Grading:  model.GradingPolicy{IsGradable: true, PassMark: 50},
	}
	require.NoError(t, store.CreateWithQuestions(assessment, []model.AssessmentQuestion{
		{QuestionID: q1.ID, Order: 1},
		{QuestionID: q2.ID, Order: 2},
		{QuestionID: q3.ID, Order: 3},
		{QuestionID: q4.ID, Order: 4},
	}, nil))

	// two correct, one wrong, one unanswered: exactly the pass mark
	taker := &model.AssessmentTaker{
		AssessmentID: assessment.ID,
		UserID:       model.GenerateUUID(),
		Status:       model.TakerCompleted,
		Answers: model.AnswerList{
			{QuestionID: q1.ID, Answer: "A"},
			{QuestionID: q2.ID, Answer: "B"},
			{QuestionID: q3.ID, Answer: "B"},
		},
	}
	require.NoError(t, takers.Create(taker))

	svc := NewGradingService(store, takers)
	summary, err := svc.GradeAssessment(assessment.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.GradedCount)

	require.NotNil(t, taker.Results)
	assert.InDelta(t, 50, taker.Results.Score, 0.001)
	assert.Equal(t, 2, taker.Results.CorrectAnswers)
	assert.Equal(t, 1, taker.Results.IncorrectAnswers)
	assert.Equal(t, 1, taker.Results.Unanswered)
	assert.True(t, taker.Results.Passed)

	firstResults := *taker.Results
	again, err := svc.GradeAssessment(assessment.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, again.GradedCount)
	assert.Equal(t, 0, again.TotalCount)
	assert.Equal(t, firstResults, *taker.Results)
}

func TestGradeAssessmentSkipsGradedAndIncompleteTakers(t *testing.T) {
	f := newGradingFixture(t, model.GradingPolicy{IsGradable: true, PassMark: 50})

	alreadyGraded := f.completedTaker(t, nil)
	alreadyGraded.Results = &model.TakerResults{Score: 100, Passed: true}

	pending := &model.AssessmentTaker{
		AssessmentID: f.assessment.ID,
		UserID:       model.GenerateUUID(),
		Status:       model.TakerPending,
	}
	require.NoError(t, f.takers.Create(pending))

	fresh := f.completedTaker(t, nil)

	summary, err := f.service.GradeAssessment(f.assessment.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.GradedCount)

	assert.InDelta(t, 100, alreadyGraded.Results.Score, 0.001) // untouched
	assert.Nil(t, pending.Results)
	require.NotNil(t, fresh.Results)
	assert.Zero(t, fresh.Results.CorrectAnswers)
}
