package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

type TakerStatus string

const (
	TakerPending   TakerStatus = "pending"
	TakerOngoing   TakerStatus = "ongoing"
	TakerCompleted TakerStatus = "completed"
)

// TakerResults is the scoring outcome written exactly once per completed
// taker. A nil Results field on AssessmentTaker means not yet graded.
type TakerResults struct {
	Score            float64 `json:"score"`
	TotalQuestions   int     `json:"totalQuestions"`
	CorrectAnswers   int     `json:"correctAnswers"`
	IncorrectAnswers int     `json:"incorrectAnswers"`
	Unanswered       int     `json:"unanswered"`
	Passed           bool    `json:"passed"`
}

func (r TakerResults) Value() (driver.Value, error) {
	return json.Marshal(r)
}

func (r *TakerResults) Scan(value interface{}) error {
	return scanJSON(value, r)
}

// swagger:model AssessmentTaker
type AssessmentTaker struct {
	UUIDBase
	AssessmentID string        `gorm:"size:36;index;not null" json:"assessmentId"`
	UserID       string        `gorm:"size:36;index;not null" json:"userId"`
	Status       TakerStatus   `gorm:"type:enum('pending','ongoing','completed');default:'pending'" json:"status"`
	StartedAt    *time.Time    `json:"startedAt,omitempty"`
	CompletedAt  *time.Time    `json:"completedAt,omitempty"`
	Answers      AnswerList    `gorm:"type:json" json:"answers,omitempty"`
	Results      *TakerResults `gorm:"type:json" json:"results,omitempty"`

	Assessment *Assessment `gorm:"foreignKey:AssessmentID" json:"assessment,omitempty"`
	User       *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AssessmentTaker) TableName() string {
	return "assessment_takers"
}
