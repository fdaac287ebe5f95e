package model

import (
	"fmt"
	"strings"
	"time"

	"studyset_backend/internal/util"
)

type QuestionType string

const (
	SingleChoice   QuestionType = "SINGLE_CHOICE"
	MultipleChoice QuestionType = "MULTIPLE_CHOICE"
	TrueFalse      QuestionType = "TRUE_FALSE"
)

func (t QuestionType) Valid() bool {
	switch t {
	case SingleChoice, MultipleChoice, TrueFalse:
		return true
	}
	return false
}

// PracticeTest is the root of the test aggregate. Questions and options are
// owned rows; deleting a test cascades through questions, options, results
// and history.
//
// swagger:model PracticeTest
type PracticeTest struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"practiceTestId"`
	UserID    string    `gorm:"index;type:varchar(36);not null" json:"userId"`
	Name      string    `gorm:"size:255;not null" json:"practiceTestName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (PracticeTest) TableName() string {
	return "practice_tests"
}

func NewPracticeTest(userID, name string) (*PracticeTest, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: practice test owner is required", util.ErrValidation)
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: practice test name must not be empty", util.ErrValidation)
	}
	return &PracticeTest{
		ID:     NewID(),
		UserID: userID,
		Name:   name,
	}, nil
}

func (t *PracticeTest) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: practice test name must not be empty", util.ErrValidation)
	}
	t.Name = name
	return nil
}

// swagger:model PracticeTestQuestion
type PracticeTestQuestion struct {
	ID             string         `gorm:"primaryKey;type:varchar(36)" json:"questionId"`
	PracticeTestID string         `gorm:"index;type:varchar(36);not null" json:"practiceTestId"`
	Text           string         `gorm:"type:text;not null" json:"questionText"`
	Type           QuestionType   `gorm:"size:50;not null" json:"questionType"`
	Options        []AnswerOption `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

func (PracticeTestQuestion) TableName() string {
	return "practice_test_questions"
}

func NewPracticeTestQuestion(testID, text string, qtype QuestionType) (*PracticeTestQuestion, error) {
	if testID == "" {
		return nil, fmt.Errorf("%w: question must belong to a practice test", util.ErrValidation)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: question text must not be empty", util.ErrValidation)
	}
	if !qtype.Valid() {
		return nil, fmt.Errorf("%w: unknown question type %q", util.ErrValidation, qtype)
	}
	return &PracticeTestQuestion{
		ID:             NewID(),
		PracticeTestID: testID,
		Text:           text,
		Type:           qtype,
	}, nil
}

// Revise applies an optional new text and type, validating the resulting
// state before mutating anything.
func (q *PracticeTestQuestion) Revise(text *string, qtype *QuestionType) error {
	newText := q.Text
	if text != nil {
		newText = *text
	}
	newType := q.Type
	if qtype != nil {
		newType = *qtype
	}

	if strings.TrimSpace(newText) == "" {
		return fmt.Errorf("%w: question text must not be empty", util.ErrValidation)
	}
	if !newType.Valid() {
		return fmt.Errorf("%w: unknown question type %q", util.ErrValidation, newType)
	}

	q.Text = newText
	q.Type = newType
	return nil
}

// swagger:model AnswerOption
type AnswerOption struct {
	ID         string `gorm:"primaryKey;type:varchar(36)" json:"optionId"`
	QuestionID string `gorm:"index;type:varchar(36);not null" json:"questionId"`
	Text       string `gorm:"type:text;not null" json:"optionText"`
	IsCorrect  bool   `gorm:"not null" json:"isCorrect"`
}

func (AnswerOption) TableName() string {
	return "answer_options"
}

func NewAnswerOption(questionID, text string, isCorrect *bool) (*AnswerOption, error) {
	if questionID == "" {
		return nil, fmt.Errorf("%w: option must belong to a question", util.ErrValidation)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: option text must not be empty", util.ErrValidation)
	}
	if isCorrect == nil {
		return nil, fmt.Errorf("%w: option correctness flag is required", util.ErrValidation)
	}
	return &AnswerOption{
		ID:         NewID(),
		QuestionID: questionID,
		Text:       text,
		IsCorrect:  *isCorrect,
	}, nil
}

// Change overwrites text and/or the correctness flag, validating the
// resulting state first.
func (o *AnswerOption) Change(text *string, isCorrect *bool) error {
	newText := o.Text
	if text != nil {
		newText = *text
	}
	if strings.TrimSpace(newText) == "" {
		return fmt.Errorf("%w: option text must not be empty", util.ErrValidation)
	}

	o.Text = newText
	if isCorrect != nil {
		o.IsCorrect = *isCorrect
	}
	return nil
}

// PracticeTestResult records one scored attempt. Immutable after creation.
//
// swagger:model PracticeTestResult
type PracticeTestResult struct {
	ID             string    `gorm:"primaryKey;type:varchar(36)" json:"resultId"`
	UserID         string    `gorm:"index;type:varchar(36);not null" json:"userId"`
	PracticeTestID string    `gorm:"index;type:varchar(36);not null" json:"practiceTestId"`
	NumOfQuestions int       `gorm:"not null" json:"numOfQuestions"`
	Score          int       `gorm:"not null" json:"score"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (PracticeTestResult) TableName() string {
	return "practice_test_results"
}

func NewPracticeTestResult(userID, testID string, numOfQuestions, score int) (*PracticeTestResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: result user is required", util.ErrValidation)
	}
	if testID == "" {
		return nil, fmt.Errorf("%w: result practice test is required", util.ErrValidation)
	}
	if numOfQuestions < 0 || score < 0 {
		return nil, fmt.Errorf("%w: question count and score must not be negative", util.ErrValidation)
	}
	return &PracticeTestResult{
		ID:             NewID(),
		UserID:         userID,
		PracticeTestID: testID,
		NumOfQuestions: numOfQuestions,
		Score:          score,
	}, nil
}

// PracticeTestHistory is one (question, chosen option) pair of an attempt.
// OptionID is nil when the question was left unanswered.
//
// swagger:model PracticeTestHistory
type PracticeTestHistory struct {
	ID         string  `gorm:"primaryKey;type:varchar(36)" json:"historyId"`
	ResultID   string  `gorm:"index;type:varchar(36);not null" json:"resultId"`
	QuestionID string  `gorm:"index;type:varchar(36);not null" json:"questionId"`
	OptionID   *string `gorm:"type:varchar(36)" json:"optionId"`
}

func (PracticeTestHistory) TableName() string {
	return "practice_test_histories"
}

func NewPracticeTestHistory(resultID, questionID string, optionID *string) *PracticeTestHistory {
	return &PracticeTestHistory{
		ID:         NewID(),
		ResultID:   resultID,
		QuestionID: questionID,
		OptionID:   optionID,
	}
}
