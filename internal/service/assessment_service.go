package service

import (
	"time"

	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/repository"
	"schoolhub_backend/internal/util"
	"schoolhub_backend/pkg/monitoring"
)

// AssessmentStore is the slice of the assessment repository the service
// layer depends on.
type AssessmentStore interface {
	CreateWithQuestions(a *model.Assessment, questions []model.AssessmentQuestion, takers []model.AssessmentTaker) error
	FindByID(id string) (*model.Assessment, error)
	FindByIDWithQuestions(id string) (*model.Assessment, error)
	List(filter repository.AssessmentFilter) ([]model.Assessment, int64, error)
	Update(a *model.Assessment) error
	Delete(id string) error
	ListAttachments(assessmentID string) ([]model.AssessmentQuestion, error)
	NextQuestionOrder(assessmentID string) (int, error)
	AttachQuestion(attachment *model.AssessmentQuestion) error
	DetachQuestion(assessmentID, questionID string) error
}

// TakerStore persists per-user assignment and progress records.
type TakerStore interface {
	Create(taker *model.AssessmentTaker) error
	FindByID(id string) (*model.AssessmentTaker, error)
	FindByAssessmentAndUser(assessmentID, userID string) (*model.AssessmentTaker, error)
	List(filter repository.TakerFilter) ([]model.AssessmentTaker, int64, error)
	Update(taker *model.AssessmentTaker) error
	Delete(id string) error
	GradeUngraded(assessmentID string, score func(*model.AssessmentTaker) model.TakerResults) (int, int, error)
}

// MembershipStore supplies school staff for audience resolution.
type MembershipStore interface {
	ListMembers(schoolID string, isTeachingStaff *bool) ([]model.SchoolTeacher, error)
}

// QuestionStore is the slice of the question bank repository needed here.
type QuestionStore interface {
	Create(question *model.QuestionBank) error
	FindByID(id string) (*model.QuestionBank, error)
	Update(question *model.QuestionBank) error
}

type AssessmentService struct {
	Assessments AssessmentStore
	Takers      TakerStore
	Members     MembershipStore
	Questions   QuestionStore
	Gate        *PermissionService

	now func() time.Time
}

func NewAssessmentService(assessments AssessmentStore, takers TakerStore, members MembershipStore, questions QuestionStore, gate *PermissionService) *AssessmentService {
	return &AssessmentService{
		Assessments: assessments,
		Takers:      takers,
		Members:     members,
		Questions:   questions,
		Gate:        gate,
		now:         time.Now,
	}
}

type GradingPolicyRequest struct {
	IsGradable *bool    `json:"isGradable"`
	PassMark   *float64 `json:"passMark"`
}

type AssessmentRequest struct {
	Name           string                `json:"name" binding:"required"`
	Description    string                `json:"description"`
	Categories     []string              `json:"categories"`
	SchoolID       string                `json:"schoolId" binding:"required"`
	TargetAudience model.TargetAudience  `json:"targetAudience"`
	StartDate      time.Time             `json:"startDate"`
	Duration       int                   `json:"duration" binding:"required"`
	Grading        *GradingPolicyRequest `json:"grading"`
	QuestionIDs    []string              `json:"questions"`
}

// CreateAssessment persists a new assessment with its ordered question
// attachments and, unless the audience is "specific", the audience fan-out
// takers. Everything happens in one transaction.
func (s *AssessmentService) CreateAssessment(req AssessmentRequest, admin *model.Admin) (*model.Assessment, error) {
	school, err := s.Gate.AuthorizeSchoolAction(admin, req.SchoolID, model.PermCreateAssessment)
	if err != nil {
		return nil, err
	}

	if len(req.QuestionIDs) == 0 {
		return nil, util.ErrNoQuestions
	}
	if req.Duration <= 0 {
		return nil, util.ErrInvalidDuration
	}

	grading := model.GradingPolicy{IsGradable: true, PassMark: 50}
	if req.Grading != nil {
		if req.Grading.IsGradable != nil {
			grading.IsGradable = *req.Grading.IsGradable
		}
		if req.Grading.PassMark != nil {
			grading.PassMark = *req.Grading.PassMark
		}
	}
	if grading.PassMark < 0 || grading.PassMark > 100 {
		return nil, util.ErrInvalidPassMark
	}

	audience := req.TargetAudience
	if audience == "" {
		audience = model.AudienceAll
	}

	attachments := make([]model.AssessmentQuestion, 0, len(req.QuestionIDs))
	for i, questionID := range req.QuestionIDs {
		if _, err := s.Questions.FindByID(questionID); err != nil {
			return nil, err
		}
		attachments = append(attachments, model.AssessmentQuestion{
			QuestionID: questionID,
			Order:      i + 1,
			IsCustom:   false,
		})
	}

	var takers []model.AssessmentTaker
	if audience != model.AudienceSpecific {
		takers, err = s.resolveAudience(school.ID, audience)
		if err != nil {
			return nil, err
		}
	}

	assessment := &model.Assessment{
		Name:           req.Name,
		Description:    req.Description,
		Categories:     req.Categories,
		SchoolID:       school.ID,
		TargetAudience: audience,
		StartDate:      req.StartDate.UTC(),
		Duration:       req.Duration,
		Grading:        grading,
	}

	if err := s.Assessments.CreateWithQuestions(assessment, attachments, takers); err != nil {
		return nil, err
	}
	monitoring.AssessmentsCreated.Inc()
	return assessment, nil
}

// resolveAudience snapshots the school members matching the target audience
// into pending taker rows. Users joining the school later are not assigned
// retroactively.
func (s *AssessmentService) resolveAudience(schoolID string, audience model.TargetAudience) ([]model.AssessmentTaker, error) {
	var teachingFilter *bool
	switch audience {
	case model.AudienceTeaching:
		t := true
		teachingFilter = &t
	case model.AudienceNonTeaching:
		f := false
		teachingFilter = &f
	}

	members, err := s.Members.ListMembers(schoolID, teachingFilter)
	if err != nil {
		return nil, err
	}

	takers := make([]model.AssessmentTaker, 0, len(members))
	for _, member := range members {
		takers = append(takers, model.AssessmentTaker{
			UserID: member.UserID,
			Status: model.TakerPending,
		})
	}
	return takers, nil
}

func (s *AssessmentService) ListAssessments(filter repository.AssessmentFilter) ([]model.Assessment, int64, error) {
	return s.Assessments.List(filter)
}

type AssessmentUpdateRequest struct {
	Name        *string               `json:"name"`
	Description *string               `json:"description"`
	Categories  []string              `json:"categories"`
	StartDate   *time.Time            `json:"startDate"`
	Duration    *int                  `json:"duration"`
	Grading     *GradingPolicyRequest `json:"grading"`
}

func (s *AssessmentService) UpdateAssessment(id string, req AssessmentUpdateRequest, admin *model.Admin) (*model.Assessment, error) {
	assessment, err := s.Assessments.FindByID(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.Gate.AuthorizeSchoolAction(admin, assessment.SchoolID, model.PermUpdateAssessment); err != nil {
		return nil, err
	}

	if req.Name != nil {
		assessment.Name = *req.Name
	}
	if req.Description != nil {
		assessment.Description = *req.Description
	}
	if req.Categories != nil {
		assessment.Categories = req.Categories
	}
	if req.StartDate != nil {
		assessment.StartDate = req.StartDate.UTC()
	}
	if req.Duration != nil {
		if *req.Duration <= 0 {
			return nil, util.ErrInvalidDuration
		}
		assessment.Duration = *req.Duration
	}
	if req.Grading != nil {
		if req.Grading.IsGradable != nil {
			assessment.Grading.IsGradable = *req.Grading.IsGradable
		}
		if req.Grading.PassMark != nil {
			if *req.Grading.PassMark < 0 || *req.Grading.PassMark > 100 {
				return nil, util.ErrInvalidPassMark
			}
			assessment.Grading.PassMark = *req.Grading.PassMark
		}
	}

	if err := s.Assessments.Update(assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

func (s *AssessmentService) DeleteAssessment(id string, admin *model.Admin) error {
	assessment, err := s.Assessments.FindByID(id)
	if err != nil {
		return err
	}
	if _, err := s.Gate.AuthorizeSchoolAction(admin, assessment.SchoolID, model.PermDeleteAssessment); err != nil {
		return err
	}
	return s.Assessments.Delete(id)
}

// ViewSingleAssessment loads an assessment and applies the question
// visibility rule for the requesting actor: a super admin always sees the
// questions; a school admin sees them unless VIEW_ASSESSMENT is restricted
// and the exam window has not yet opened; everyone else gets the assessment
// without its questions.
func (s *AssessmentService) ViewSingleAssessment(id string, actor Actor) (*model.Assessment, error) {
	assessment, err := s.Assessments.FindByIDWithQuestions(id)
	if err != nil {
		return nil, err
	}

	if !s.questionsVisible(assessment, actor) {
		assessment.Questions = nil
	}
	return assessment, nil
}

func (s *AssessmentService) questionsVisible(assessment *model.Assessment, actor Actor) bool {
	switch actor.Kind {
	case ActorAdmin:
		if actor.Admin.IsSuperAdmin {
			return true
		}
		record, err := s.Gate.SchoolAdmins.FindByAdminAndSchool(actor.Admin.ID, assessment.SchoolID)
		if err != nil {
			return false
		}
		// content is concealed pre-start only for restricted admins
		return !record.IsRestricted(model.PermViewAssessment) || assessment.HasStarted(s.now())
	case ActorUser, ActorNone:
		return false
	default:
		return false
	}
}

// AssignTaker attaches a single user to an assessment, used for the
// "specific" audience. The acting admin's permission over the assessment's
// school is re-validated.
func (s *AssessmentService) AssignTaker(assessmentID, userID string, admin *model.Admin) (*model.AssessmentTaker, error) {
	assessment, err := s.Assessments.FindByID(assessmentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Gate.AuthorizeSchoolAction(admin, assessment.SchoolID, model.PermUpdateAssessment); err != nil {
		return nil, err
	}

	taker := &model.AssessmentTaker{
		AssessmentID: assessment.ID,
		UserID:       userID,
		Status:       model.TakerPending,
	}
	if err := s.Takers.Create(taker); err != nil {
		return nil, err
	}
	return taker, nil
}

func (s *AssessmentService) ListTakers(filter repository.TakerFilter) ([]model.AssessmentTaker, int64, error) {
	return s.Takers.List(filter)
}

func (s *AssessmentService) GetTaker(id string) (*model.AssessmentTaker, error) {
	return s.Takers.FindByID(id)
}

// StartAssessment moves a taker to ongoing and stamps startedAt. Starting an
// already-ongoing taker is permitted (re-entry after a dropped connection)
// and keeps the original start time; a completed taker cannot be restarted.
func (s *AssessmentService) StartAssessment(takerID string) (*model.AssessmentTaker, error) {
	taker, err := s.Takers.FindByID(takerID)
	if err != nil {
		return nil, err
	}
	if taker.Status == model.TakerCompleted {
		return nil, util.ErrTakerCompleted
	}

	if taker.StartedAt == nil {
		now := s.now().UTC()
		taker.StartedAt = &now
	}
	taker.Status = model.TakerOngoing

	if err := s.Takers.Update(taker); err != nil {
		return nil, err
	}
	return taker, nil
}

// SubmitAssessment records the answers and completes the taking workflow.
// Partial and empty answer sets are accepted; missing questions are scored
// as unanswered later. Re-submitting after completion is rejected so graded
// answers cannot be silently replaced.
func (s *AssessmentService) SubmitAssessment(takerID string, answers model.AnswerList) (*model.AssessmentTaker, error) {
	taker, err := s.Takers.FindByID(takerID)
	if err != nil {
		return nil, err
	}
	if taker.Status == model.TakerCompleted {
		return nil, util.ErrTakerCompleted
	}

	now := s.now().UTC()
	taker.Answers = answers
	taker.CompletedAt = &now
	taker.Status = model.TakerCompleted

	if err := s.Takers.Update(taker); err != nil {
		return nil, err
	}
	return taker, nil
}

type TakerUpdateRequest struct {
	Status      *model.TakerStatus `json:"status"`
	StartedAt   *time.Time         `json:"startedAt"`
	CompletedAt *time.Time         `json:"completedAt"`
	Answers     model.AnswerList   `json:"answers"`
}

// UpdateTaker is the administrative correction path. It bypasses the state
// machine guards and must only be routed to admin principals.
func (s *AssessmentService) UpdateTaker(id string, req TakerUpdateRequest) (*model.AssessmentTaker, error) {
	taker, err := s.Takers.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		taker.Status = *req.Status
	}
	if req.StartedAt != nil {
		t := req.StartedAt.UTC()
		taker.StartedAt = &t
	}
	if req.CompletedAt != nil {
		t := req.CompletedAt.UTC()
		taker.CompletedAt = &t
	}
	if req.Answers != nil {
		taker.Answers = req.Answers
	}

	if err := s.Takers.Update(taker); err != nil {
		return nil, err
	}
	return taker, nil
}

func (s *AssessmentService) DeleteTaker(id string, admin *model.Admin) error {
	taker, err := s.Takers.FindByID(id)
	if err != nil {
		return err
	}
	assessment, err := s.Assessments.FindByID(taker.AssessmentID)
	if err != nil {
		return err
	}
	if _, err := s.Gate.AuthorizeSchoolAction(admin, assessment.SchoolID, model.PermDeleteAssessment); err != nil {
		return err
	}
	return s.Takers.Delete(id)
}
