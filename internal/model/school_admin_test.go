package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRestricted(t *testing.T) {
	sa := &SchoolAdmin{
		Role:         RoleAdmin,
		Restrictions: StringList{string(PermCreateAssessment), string(PermDeleteTeacher)},
	}

	assert.True(t, sa.IsRestricted(PermCreateAssessment))
	assert.False(t, sa.IsRestricted(PermUpdateSchool))

	sa.Role = RoleOwner
	assert.False(t, sa.IsRestricted(PermCreateAssessment))
}

func TestJSONColumnScan(t *testing.T) {
	var answers AnswerList
	assert.NoError(t, answers.Scan([]byte(`[{"questionId":"q1","answer":"A"}]`)))
	assert.Len(t, answers, 1)
	assert.Equal(t, "q1", answers[0].QuestionID)

	// NULL columns leave the zero value in place
	var restrictions StringList
	assert.NoError(t, restrictions.Scan(nil))
	assert.Nil(t, restrictions)

	value, err := (StringList)(nil).Value()
	assert.NoError(t, err)
	assert.JSONEq(t, "[]", string(value.([]byte)))
}
