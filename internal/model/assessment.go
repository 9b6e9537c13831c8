package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

type TargetAudience string

const (
	AudienceAll         TargetAudience = "all"
	AudienceTeaching    TargetAudience = "teaching"
	AudienceNonTeaching TargetAudience = "non_teaching"
	AudienceSpecific    TargetAudience = "specific"
)

// GradingPolicy configures whether and how an assessment is scored.
type GradingPolicy struct {
	IsGradable bool    `json:"isGradable"`
	PassMark   float64 `json:"passMark"` // percentage, 0-100
}

func (g GradingPolicy) Value() (driver.Value, error) {
	return json.Marshal(g)
}

func (g *GradingPolicy) Scan(value interface{}) error {
	return scanJSON(value, g)
}

// swagger:model Assessment
type Assessment struct {
	UUIDBase
	Name           string         `gorm:"size:255;not null" json:"name"`
	Description    string         `gorm:"type:text" json:"description"`
	Categories     StringList     `gorm:"type:json" json:"categories"`
	SchoolID       string         `gorm:"size:36;index;not null" json:"schoolId"`
	TargetAudience TargetAudience `gorm:"type:enum('all','teaching','non_teaching','specific');default:'all'" json:"targetAudience"`
	StartDate      time.Time      `json:"startDate"`
	Duration       int            `gorm:"not null" json:"duration"` // minutes
	Grading        GradingPolicy  `gorm:"type:json" json:"grading"`

	School    *School              `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
	Questions []AssessmentQuestion `gorm:"foreignKey:AssessmentID" json:"questions,omitempty"`
}

func (Assessment) TableName() string {
	return "assessments"
}

// HasStarted reports whether the exam window has opened.
func (a *Assessment) HasStarted(now time.Time) bool {
	return !a.StartDate.IsZero() && !now.Before(a.StartDate)
}
