package model

import (
	"fmt"
	"strings"
	"time"

	"studyset_backend/internal/util"
)

// Course is the flashcard aggregate: a named set of term/definition cards.
//
// swagger:model Course
type Course struct {
	ID        string       `gorm:"primaryKey;type:varchar(36)" json:"courseId"`
	UserID    string       `gorm:"index;type:varchar(36);not null" json:"userId"`
	Name      string       `gorm:"size:255;not null" json:"courseName"`
	Cards     []CourseCard `gorm:"foreignKey:CourseID" json:"cards,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

func (Course) TableName() string {
	return "courses"
}

func NewCourse(userID, name string) (*Course, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: course owner is required", util.ErrValidation)
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: course name must not be empty", util.ErrValidation)
	}
	return &Course{
		ID:     NewID(),
		UserID: userID,
		Name:   name,
	}, nil
}

func (c *Course) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: course name must not be empty", util.ErrValidation)
	}
	c.Name = name
	return nil
}

// swagger:model CourseCard
type CourseCard struct {
	ID         string `gorm:"primaryKey;type:varchar(36)" json:"cardId"`
	CourseID   string `gorm:"index;type:varchar(36);not null" json:"courseId"`
	Term       string `gorm:"size:255;not null" json:"term"`
	Definition string `gorm:"type:text;not null" json:"definition"`
}

func (CourseCard) TableName() string {
	return "course_cards"
}

func NewCourseCard(courseID, term, definition string) (*CourseCard, error) {
	if courseID == "" {
		return nil, fmt.Errorf("%w: card must belong to a course", util.ErrValidation)
	}
	if strings.TrimSpace(term) == "" {
		return nil, fmt.Errorf("%w: card term must not be empty", util.ErrValidation)
	}
	if strings.TrimSpace(definition) == "" {
		return nil, fmt.Errorf("%w: card definition must not be empty", util.ErrValidation)
	}
	return &CourseCard{
		ID:         NewID(),
		CourseID:   courseID,
		Term:       term,
		Definition: definition,
	}, nil
}

func (c *CourseCard) Change(term, definition *string) error {
	newTerm := c.Term
	if term != nil {
		newTerm = *term
	}
	newDef := c.Definition
	if definition != nil {
		newDef = *definition
	}

	if strings.TrimSpace(newTerm) == "" {
		return fmt.Errorf("%w: card term must not be empty", util.ErrValidation)
	}
	if strings.TrimSpace(newDef) == "" {
		return fmt.Errorf("%w: card definition must not be empty", util.ErrValidation)
	}

	c.Term = newTerm
	c.Definition = newDef
	return nil
}
