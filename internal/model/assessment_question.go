package model

// AssessmentQuestion attaches a question bank entry to an assessment at a
// 1-based display order. Removal leaves gaps; order stays monotonic.
// swagger:model AssessmentQuestion
type AssessmentQuestion struct {
	UUIDBase
	AssessmentID string `gorm:"size:36;index:idx_assessment_question,unique;not null" json:"assessmentId"`
	QuestionID   string `gorm:"size:36;index:idx_assessment_question,unique;not null" json:"questionId"`
	Order        int    `gorm:"column:display_order;not null" json:"order"`
	IsCustom     bool   `gorm:"default:false" json:"isCustom"`

	Question *QuestionBank `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
}

func (AssessmentQuestion) TableName() string {
	return "assessment_questions"
}
