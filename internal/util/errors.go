package util

import "errors"

var (
	// not found
	ErrSchoolNotFound      = errors.New("school not found")
	ErrAdminNotFound       = errors.New("admin not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrSchoolAdminNotFound = errors.New("school admin record not found")
	ErrAssessmentNotFound  = errors.New("assessment not found")
	ErrTakerNotFound       = errors.New("assessment taker not found")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrQuestionNotAttached = errors.New("question is not attached to this assessment")

	// bad request
	ErrEmailRegistered    = errors.New("email already registered")
	ErrNoQuestions        = errors.New("assessment must have at least one question")
	ErrNotGradable        = errors.New("this assessment is not gradable")
	ErrInvalidPassMark    = errors.New("pass mark must be between 0 and 100")
	ErrInvalidDuration    = errors.New("duration must be greater than zero")
	ErrInvalidOptionCount = errors.New("options must contain between 2 and 4 entries")
	ErrAnswerNotAnOption  = errors.New("answer must match one of the options")
	ErrTakerAlreadyGraded = errors.New("assessment taker already graded")
	ErrTakerCompleted     = errors.New("assessment already completed by this taker")
	ErrInvalidOTP         = errors.New("invalid or expired one-time code")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// unauthorized / forbidden
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotSchoolAdmin   = errors.New("not an admin of this school")
	ErrNotAssigned      = errors.New("user is not assigned to this assessment")
	ErrSuperAdminOnly   = errors.New("super admin access required")
)
