package model

// QuestionBank is a reusable multiple-choice question. Entries are shared
// across assessments; editing one changes it everywhere it is attached.
// swagger:model QuestionBank
type QuestionBank struct {
	UUIDBase
	Question   string     `gorm:"type:text;not null" json:"question"`
	Options    OptionList `gorm:"type:json;not null" json:"options"`
	Answer     string     `gorm:"size:255;not null" json:"answer"`
	Categories StringList `gorm:"type:json" json:"categories"`
}

func (QuestionBank) TableName() string {
	return "question_banks"
}

// HasOption reports whether the stored answer label exists among the options.
func (q *QuestionBank) HasOption(label string) bool {
	for _, opt := range q.Options {
		if opt.Option == label {
			return true
		}
	}
	return false
}
