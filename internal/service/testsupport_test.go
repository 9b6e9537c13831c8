package service

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/repository"
	"schoolhub_backend/internal/util"
	"schoolhub_backend/pkg/logger"
)

func init() {
	// services log through the package-level logger
	logger.Log = zap.NewNop()
}

// ---- in-memory fakes over the store interfaces ----

type fakeSchoolStore struct {
	schools map[string]*model.School
}

func newFakeSchoolStore(schools ...*model.School) *fakeSchoolStore {
	f := &fakeSchoolStore{schools: make(map[string]*model.School)}
	for _, s := range schools {
		if s.ID == "" {
			s.ID = model.GenerateUUID()
		}
		f.schools[s.ID] = s
	}
	return f
}

func (f *fakeSchoolStore) FindByID(id string) (*model.School, error) {
	if s, ok := f.schools[id]; ok {
		return s, nil
	}
	return nil, util.ErrSchoolNotFound
}

func (f *fakeSchoolStore) FindBySerial(serial uint) (*model.School, error) {
	for _, s := range f.schools {
		if s.Serial == serial {
			return s, nil
		}
	}
	return nil, util.ErrSchoolNotFound
}

func (f *fakeSchoolStore) Create(school *model.School) error {
	if school.ID == "" {
		school.ID = model.GenerateUUID()
	}
	if school.Serial == 0 {
		school.Serial = uint(len(f.schools) + 1)
	}
	school.RegistrationID = util.FormatSchoolCode(school.Serial)
	f.schools[school.ID] = school
	return nil
}

func (f *fakeSchoolStore) List(page, size int, query string, isActive *bool) ([]model.School, int64, error) {
	var out []model.School
	for _, s := range f.schools {
		if isActive != nil && s.IsActive != *isActive {
			continue
		}
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (f *fakeSchoolStore) Update(school *model.School) error {
	if _, ok := f.schools[school.ID]; !ok {
		return util.ErrSchoolNotFound
	}
	f.schools[school.ID] = school
	return nil
}

func (f *fakeSchoolStore) Delete(id string) error {
	if _, ok := f.schools[id]; !ok {
		return util.ErrSchoolNotFound
	}
	delete(f.schools, id)
	return nil
}

type fakeSchoolAdminStore struct {
	records []*model.SchoolAdmin
}

func (f *fakeSchoolAdminStore) FindByAdminAndSchool(adminID, schoolID string) (*model.SchoolAdmin, error) {
	for _, r := range f.records {
		if r.AdminID == adminID && r.SchoolID == schoolID {
			return r, nil
		}
	}
	return nil, util.ErrSchoolAdminNotFound
}

type fakeTakerStore struct {
	takers map[string]*model.AssessmentTaker
}

func newFakeTakerStore() *fakeTakerStore {
	return &fakeTakerStore{takers: make(map[string]*model.AssessmentTaker)}
}

func (f *fakeTakerStore) Create(taker *model.AssessmentTaker) error {
	if taker.ID == "" {
		taker.ID = model.GenerateUUID()
	}
	if taker.Status == "" {
		taker.Status = model.TakerPending
	}
	f.takers[taker.ID] = taker
	return nil
}

func (f *fakeTakerStore) FindByID(id string) (*model.AssessmentTaker, error) {
	if t, ok := f.takers[id]; ok {
		return t, nil
	}
	return nil, util.ErrTakerNotFound
}

func (f *fakeTakerStore) FindByAssessmentAndUser(assessmentID, userID string) (*model.AssessmentTaker, error) {
	for _, t := range f.takers {
		if t.AssessmentID == assessmentID && t.UserID == userID {
			return t, nil
		}
	}
	return nil, util.ErrTakerNotFound
}

func (f *fakeTakerStore) List(filter repository.TakerFilter) ([]model.AssessmentTaker, int64, error) {
	var out []model.AssessmentTaker
	for _, t := range f.takers {
		if filter.AssessmentID != "" && t.AssessmentID != filter.AssessmentID {
			continue
		}
		if filter.UserID != "" && t.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (f *fakeTakerStore) Update(taker *model.AssessmentTaker) error {
	if _, ok := f.takers[taker.ID]; !ok {
		return util.ErrTakerNotFound
	}
	f.takers[taker.ID] = taker
	return nil
}

func (f *fakeTakerStore) Delete(id string) error {
	if _, ok := f.takers[id]; !ok {
		return util.ErrTakerNotFound
	}
	delete(f.takers, id)
	return nil
}

func (f *fakeTakerStore) GradeUngraded(assessmentID string, score func(*model.AssessmentTaker) model.TakerResults) (int, int, error) {
	graded, total := 0, 0
	for _, t := range f.takers {
		if t.AssessmentID != assessmentID || t.Status != model.TakerCompleted || t.Results != nil {
			continue
		}
		total++
		results := score(t)
		t.Results = &results
		graded++
	}
	return graded, total, nil
}

type fakeAssessmentStore struct {
	assessments map[string]*model.Assessment
	attachments map[string][]model.AssessmentQuestion
	takers      *fakeTakerStore
	bank        *fakeQuestionStore
}

func newFakeAssessmentStore(takers *fakeTakerStore, bank *fakeQuestionStore) *fakeAssessmentStore {
	return &fakeAssessmentStore{
		assessments: make(map[string]*model.Assessment),
		attachments: make(map[string][]model.AssessmentQuestion),
		takers:      takers,
		bank:        bank,
	}
}

func (f *fakeAssessmentStore) CreateWithQuestions(a *model.Assessment, questions []model.AssessmentQuestion, takers []model.AssessmentTaker) error {
	if a.ID == "" {
		a.ID = model.GenerateUUID()
	}
	f.assessments[a.ID] = a
	for i := range questions {
		questions[i].AssessmentID = a.ID
		if questions[i].ID == "" {
			questions[i].ID = model.GenerateUUID()
		}
	}
	f.attachments[a.ID] = questions
	for i := range takers {
		takers[i].AssessmentID = a.ID
		if err := f.takers.Create(&takers[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeAssessmentStore) FindByID(id string) (*model.Assessment, error) {
	if a, ok := f.assessments[id]; ok {
		return a, nil
	}
	return nil, util.ErrAssessmentNotFound
}

func (f *fakeAssessmentStore) FindByIDWithQuestions(id string) (*model.Assessment, error) {
	a, err := f.FindByID(id)
	if err != nil {
		return nil, err
	}
	attachments, err := f.ListAttachments(id)
	if err != nil {
		return nil, err
	}
	copied := *a
	copied.Questions = attachments
	return &copied, nil
}

func (f *fakeAssessmentStore) List(filter repository.AssessmentFilter) ([]model.Assessment, int64, error) {
	var out []model.Assessment
	for _, a := range f.assessments {
		if filter.SchoolID != "" && a.SchoolID != filter.SchoolID {
			continue
		}
		if filter.TargetAudience != "" && a.TargetAudience != filter.TargetAudience {
			continue
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(a.Name), strings.ToLower(filter.Query)) {
			continue
		}
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAssessmentStore) Update(a *model.Assessment) error {
	if _, ok := f.assessments[a.ID]; !ok {
		return util.ErrAssessmentNotFound
	}
	f.assessments[a.ID] = a
	return nil
}

func (f *fakeAssessmentStore) Delete(id string) error {
	if _, ok := f.assessments[id]; !ok {
		return util.ErrAssessmentNotFound
	}
	delete(f.assessments, id)
	delete(f.attachments, id)
	return nil
}

func (f *fakeAssessmentStore) ListAttachments(assessmentID string) ([]model.AssessmentQuestion, error) {
	attachments := f.attachments[assessmentID]
	out := make([]model.AssessmentQuestion, len(attachments))
	copy(out, attachments)
	// resolve the question rows the way a preload would
	for i := range out {
		if out[i].Question == nil && f.bank != nil {
			if q, err := f.bank.FindByID(out[i].QuestionID); err == nil {
				out[i].Question = q
			}
		}
	}
	return out, nil
}

func (f *fakeAssessmentStore) NextQuestionOrder(assessmentID string) (int, error) {
	max := 0
	for _, att := range f.attachments[assessmentID] {
		if att.Order > max {
			max = att.Order
		}
	}
	return max + 1, nil
}

func (f *fakeAssessmentStore) AttachQuestion(attachment *model.AssessmentQuestion) error {
	if attachment.ID == "" {
		attachment.ID = model.GenerateUUID()
	}
	f.attachments[attachment.AssessmentID] = append(f.attachments[attachment.AssessmentID], *attachment)
	return nil
}

func (f *fakeAssessmentStore) DetachQuestion(assessmentID, questionID string) error {
	attachments := f.attachments[assessmentID]
	for i, att := range attachments {
		if att.QuestionID == questionID {
			f.attachments[assessmentID] = append(attachments[:i], attachments[i+1:]...)
			return nil
		}
	}
	return util.ErrQuestionNotAttached
}

type fakeMembershipStore struct {
	members []model.SchoolTeacher
}

func (f *fakeMembershipStore) ListMembers(schoolID string, isTeachingStaff *bool) ([]model.SchoolTeacher, error) {
	var out []model.SchoolTeacher
	for _, m := range f.members {
		if m.SchoolID != schoolID || !m.IsActive {
			continue
		}
		if isTeachingStaff != nil && m.IsTeachingStaff != *isTeachingStaff {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

type fakeQuestionStore struct {
	questions map[string]*model.QuestionBank
}

func newFakeQuestionStore(questions ...*model.QuestionBank) *fakeQuestionStore {
	f := &fakeQuestionStore{questions: make(map[string]*model.QuestionBank)}
	for _, q := range questions {
		if q.ID == "" {
			q.ID = model.GenerateUUID()
		}
		f.questions[q.ID] = q
	}
	return f
}

func (f *fakeQuestionStore) Create(question *model.QuestionBank) error {
	if question.ID == "" {
		question.ID = model.GenerateUUID()
	}
	f.questions[question.ID] = question
	return nil
}

func (f *fakeQuestionStore) FindByID(id string) (*model.QuestionBank, error) {
	if q, ok := f.questions[id]; ok {
		return q, nil
	}
	return nil, util.ErrQuestionNotFound
}

func (f *fakeQuestionStore) Update(question *model.QuestionBank) error {
	if _, ok := f.questions[question.ID]; !ok {
		return util.ErrQuestionNotFound
	}
	f.questions[question.ID] = question
	return nil
}

func (f *fakeQuestionStore) List(page, size int, query string, categories []string) ([]model.QuestionBank, int64, error) {
	var out []model.QuestionBank
	for _, q := range f.questions {
		out = append(out, *q)
	}
	return out, int64(len(out)), nil
}

func (f *fakeQuestionStore) Delete(id string) error {
	if _, ok := f.questions[id]; !ok {
		return util.ErrQuestionNotFound
	}
	delete(f.questions, id)
	return nil
}

// ---- fixtures ----

func superAdmin() *model.Admin {
	return &model.Admin{
		UUIDBase:     model.UUIDBase{ID: model.GenerateUUID()},
		Name:         "Root",
		Email:        "root@example.com",
		IsSuperAdmin: true,
	}
}

func plainAdmin() *model.Admin {
	return &model.Admin{
		UUIDBase: model.UUIDBase{ID: model.GenerateUUID()},
		Name:     "Jamie",
		Email:    "jamie@example.com",
	}
}

func testSchool(serial uint) *model.School {
	return &model.School{
		UUIDBase: model.UUIDBase{ID: model.GenerateUUID()},
		Name:     fmt.Sprintf("School %d", serial),
		Serial:   serial,
		IsActive: true,
	}
}

func bankQuestion(answer string) *model.QuestionBank {
	return &model.QuestionBank{
		UUIDBase: model.UUIDBase{ID: model.GenerateUUID()},
		Question: "Pick " + answer,
		Options: model.OptionList{
			{Option: "A", Text: "first"},
			{Option: "B", Text: "second"},
		},
		Answer: answer,
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func takerFilterFor(assessmentID string) repository.TakerFilter {
	return repository.TakerFilter{AssessmentID: assessmentID}
}
