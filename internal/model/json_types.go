package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// StringList is a []string stored as a JSON column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// QuestionOption is one selectable option of a multiple-choice question.
type QuestionOption struct {
	Option string `json:"option"` // label, e.g. "A"
	Text   string `json:"text"`
}

type OptionList []QuestionOption

func (l OptionList) Value() (driver.Value, error) {
	if l == nil {
		l = OptionList{}
	}
	return json.Marshal(l)
}

func (l *OptionList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// SubmittedAnswer pairs a question with the answer a taker chose.
type SubmittedAnswer struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
}

type AnswerList []SubmittedAnswer

func (l AnswerList) Value() (driver.Value, error) {
	if l == nil {
		l = AnswerList{}
	}
	return json.Marshal(l)
}

func (l *AnswerList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// Location is a school's postal address, stored as a JSON column.
type Location struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
}

func (loc Location) Value() (driver.Value, error) {
	return json.Marshal(loc)
}

func (loc *Location) Scan(value interface{}) error {
	return scanJSON(value, loc)
}

func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dest)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dest)
	default:
		return errors.New("unsupported type for JSON column")
	}
}
