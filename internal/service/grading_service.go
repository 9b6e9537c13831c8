package service

import (
	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/util"
	"schoolhub_backend/pkg/logger"
	"schoolhub_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// GradingService scores completed, ungraded takers against an assessment's
// question set. Grading is idempotent: a taker with non-nil results is never
// selected again, so repeated calls only pick up newly completed takers.
type GradingService struct {
	Assessments AssessmentStore
	Takers      TakerStore
}

func NewGradingService(assessments AssessmentStore, takers TakerStore) *GradingService {
	return &GradingService{Assessments: assessments, Takers: takers}
}

type GradingSummary struct {
	GradedCount int `json:"gradedCount"`
	TotalCount  int `json:"totalCount"`
}

// GradeAssessment runs one grading pass over the assessment. The whole batch
// runs in a single transaction with row locks, so concurrent passes cannot
// score the same taker twice.
func (s *GradingService) GradeAssessment(assessmentID string) (*GradingSummary, error) {
	assessment, err := s.Assessments.FindByIDWithQuestions(assessmentID)
	if err != nil {
		return nil, err
	}

	if !assessment.Grading.IsGradable {
		return nil, util.ErrNotGradable
	}
	// an assessment with no attached questions cannot produce a score
	if len(assessment.Questions) == 0 {
		return nil, util.ErrNoQuestions
	}

	passMark := assessment.Grading.PassMark
	if passMark == 0 {
		passMark = 50
	}

	graded, total, err := s.Takers.GradeUngraded(assessmentID, func(taker *model.AssessmentTaker) model.TakerResults {
		return scoreAnswers(taker.Answers, assessment.Questions, passMark)
	})
	if err != nil {
		return nil, err
	}

	monitoring.GradedTakers.Add(float64(graded))
	logger.Log.Info("assessment graded",
		zap.String("assessmentId", assessmentID),
		zap.Int("gradedCount", graded),
		zap.Int("totalCount", total),
	)

	return &GradingSummary{GradedCount: graded, TotalCount: total}, nil
}

// scoreAnswers reconciles a taker's submitted answers with the attached
// question set. Each attached question with a submitted answer counts as
// correct or incorrect by verbatim comparison; questions without an answer
// count as unanswered. Score is the correct percentage over ALL attached
// questions, not over the answers submitted.
func scoreAnswers(answers model.AnswerList, questions []model.AssessmentQuestion, passMark float64) model.TakerResults {
	// first occurrence wins when a question id appears twice in a submission
	byQuestion := make(map[string]string, len(answers))
	for _, submitted := range answers {
		if _, ok := byQuestion[submitted.QuestionID]; !ok {
			byQuestion[submitted.QuestionID] = submitted.Answer
		}
	}

	totalQuestions := len(questions)
	correct, incorrect := 0, 0
	for _, attachment := range questions {
		answer, ok := byQuestion[attachment.QuestionID]
		if !ok {
			continue
		}
		if attachment.Question != nil && answer == attachment.Question.Answer {
			correct++
		} else {
			incorrect++
		}
	}

	score := float64(correct) / float64(totalQuestions) * 100

	return model.TakerResults{
		Score:            score,
		TotalQuestions:   totalQuestions,
		CorrectAnswers:   correct,
		IncorrectAnswers: incorrect,
		Unanswered:       totalQuestions - (correct + incorrect),
		Passed:           score >= passMark,
	}
}
