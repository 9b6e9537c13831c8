package service

import (
	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/util"
)

// BankStore is the full question bank repository surface.
type BankStore interface {
	QuestionStore
	List(page, size int, query string, categories []string) ([]model.QuestionBank, int64, error)
	Delete(id string) error
}

type QuestionBankService struct {
	Bank        BankStore
	Assessments AssessmentStore
	Takers      TakerStore
	Gate        *PermissionService
}

func NewQuestionBankService(bank BankStore, assessments AssessmentStore, takers TakerStore, gate *PermissionService) *QuestionBankService {
	return &QuestionBankService{Bank: bank, Assessments: assessments, Takers: takers, Gate: gate}
}

type QuestionRequest struct {
	ID         string                 `json:"id"`
	Question   string                 `json:"question" binding:"required"`
	Options    []model.QuestionOption `json:"options" binding:"required"`
	Answer     string                 `json:"answer" binding:"required"`
	Categories []string               `json:"categories"`
}

func validateQuestion(req QuestionRequest) error {
	if len(req.Options) < 2 || len(req.Options) > 4 {
		return util.ErrInvalidOptionCount
	}
	for _, opt := range req.Options {
		if opt.Option == req.Answer {
			return nil
		}
	}
	return util.ErrAnswerNotAnOption
}

func (s *QuestionBankService) CreateQuestion(req QuestionRequest) (*model.QuestionBank, error) {
	if err := validateQuestion(req); err != nil {
		return nil, err
	}
	question := &model.QuestionBank{
		Question:   req.Question,
		Options:    req.Options,
		Answer:     req.Answer,
		Categories: req.Categories,
	}
	if err := s.Bank.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionBankService) GetQuestion(id string) (*model.QuestionBank, error) {
	return s.Bank.FindByID(id)
}

func (s *QuestionBankService) ListQuestions(page, size int, query string, categories []string) ([]model.QuestionBank, int64, error) {
	return s.Bank.List(page, size, query, categories)
}

func (s *QuestionBankService) UpdateQuestion(id string, req QuestionRequest) (*model.QuestionBank, error) {
	if err := validateQuestion(req); err != nil {
		return nil, err
	}
	question, err := s.Bank.FindByID(id)
	if err != nil {
		return nil, err
	}
	question.Question = req.Question
	question.Options = req.Options
	question.Answer = req.Answer
	question.Categories = req.Categories
	if err := s.Bank.Update(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionBankService) DeleteQuestion(id string) error {
	if _, err := s.Bank.FindByID(id); err != nil {
		return err
	}
	return s.Bank.Delete(id)
}

// AddOrUpdateAssessmentQuestion either updates an existing bank entry in
// place (the edit is visible to every assessment the entry is attached to)
// or creates a new one and attaches it at the next order slot. The returned
// flag is true when a new question was created.
func (s *QuestionBankService) AddOrUpdateAssessmentQuestion(assessmentID string, req QuestionRequest, admin *model.Admin) (*model.QuestionBank, bool, error) {
	assessment, err := s.Assessments.FindByID(assessmentID)
	if err != nil {
		return nil, false, err
	}
	if _, err := s.Gate.AuthorizeSchoolAction(admin, assessment.SchoolID, model.PermUpdateAssessment); err != nil {
		return nil, false, err
	}

	if req.ID != "" {
		question, err := s.UpdateQuestion(req.ID, req)
		if err != nil {
			return nil, false, err
		}
		return question, false, nil
	}

	if err := validateQuestion(req); err != nil {
		return nil, false, err
	}

	question := &model.QuestionBank{
		Question:   req.Question,
		Options:    req.Options,
		Answer:     req.Answer,
		Categories: req.Categories,
	}
	if err := s.Bank.Create(question); err != nil {
		return nil, false, err
	}

	order, err := s.Assessments.NextQuestionOrder(assessmentID)
	if err != nil {
		return nil, false, err
	}
	attachment := &model.AssessmentQuestion{
		AssessmentID: assessmentID,
		QuestionID:   question.ID,
		Order:        order,
		IsCustom:     true, // authored for this assessment, not picked from the bank
	}
	if err := s.Assessments.AttachQuestion(attachment); err != nil {
		return nil, false, err
	}

	return question, true, nil
}

// RemoveQuestionFromAssessment detaches a question; the bank entry itself
// survives. Order numbers of the remaining attachments are left untouched,
// so gaps may appear but display order stays monotonic.
func (s *QuestionBankService) RemoveQuestionFromAssessment(assessmentID, questionID string, admin *model.Admin) error {
	assessment, err := s.Assessments.FindByID(assessmentID)
	if err != nil {
		return err
	}
	if _, err := s.Gate.AuthorizeSchoolAction(admin, assessment.SchoolID, model.PermUpdateAssessment); err != nil {
		return err
	}
	return s.Assessments.DetachQuestion(assessmentID, questionID)
}

// TakerQuestion is the projection served to assessment takers. It must never
// carry the correct answer.
type TakerQuestion struct {
	ID         string                 `json:"id"`
	Question   string                 `json:"question"`
	Options    []model.QuestionOption `json:"options"`
	Categories []string               `json:"categories"`
	Order      int                    `json:"order"`
}

// ViewAssessmentQuestions lists an assessment's questions. When called on
// behalf of a user, that user must be assigned to the assessment; either way
// the answers are stripped from the projection.
func (s *QuestionBankService) ViewAssessmentQuestions(assessmentID string, actor Actor) ([]TakerQuestion, error) {
	if _, err := s.Assessments.FindByID(assessmentID); err != nil {
		return nil, err
	}

	switch actor.Kind {
	case ActorAdmin:
		// admins always see the question list; answers stay stripped anyway
	case ActorUser:
		if _, err := s.Takers.FindByAssessmentAndUser(assessmentID, actor.UserID); err != nil {
			return nil, util.ErrNotAssigned
		}
	default:
		return nil, util.ErrNotAssigned
	}

	attachments, err := s.Assessments.ListAttachments(assessmentID)
	if err != nil {
		return nil, err
	}

	questions := make([]TakerQuestion, 0, len(attachments))
	for _, attachment := range attachments {
		if attachment.Question == nil {
			continue
		}
		questions = append(questions, TakerQuestion{
			ID:         attachment.Question.ID,
			Question:   attachment.Question.Question,
			Options:    attachment.Question.Options,
			Categories: attachment.Question.Categories,
			Order:      attachment.Order,
		})
	}
	return questions, nil
}
