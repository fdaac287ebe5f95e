package model

import (
	"errors"
	"testing"

	"studyset_backend/internal/util"
)

func boolPtr(b bool) *bool                 { return &b }
func strPtr(s string) *string              { return &s }
func typePtr(t QuestionType) *QuestionType { return &t }

func TestNewPracticeTestValidation(t *testing.T) {
	if _, err := NewPracticeTest("", "name"); !errors.Is(err, util.ErrValidation) {
		t.Errorf("missing owner: got %v", err)
	}
	if _, err := NewPracticeTest("u", "  "); !errors.Is(err, util.ErrValidation) {
		t.Errorf("blank name: got %v", err)
	}

	test, err := NewPracticeTest("u", "Go basics")
	if err != nil {
		t.Fatalf("NewPracticeTest: %v", err)
	}
	if test.ID == "" {
		t.Error("id must be assigned at construction")
	}
}

func TestNewIDsAreUniqueAndSortable(t *testing.T) {
	a, b := NewID(), NewID()
	if a == b {
		t.Fatal("consecutive ids must differ")
	}
	if len(a) != 36 {
		t.Errorf("id %q is not a canonical uuid", a)
	}
}

func TestQuestionTypeValid(t *testing.T) {
	for _, valid := range []QuestionType{SingleChoice, MultipleChoice, TrueFalse} {
		if !valid.Valid() {
			t.Errorf("%s should be valid", valid)
		}
	}
	if QuestionType("ESSAY").Valid() {
		t.Error("unknown type must be invalid")
	}
	if QuestionType("single_choice").Valid() {
		t.Error("type comparison is case sensitive")
	}
}

func TestQuestionRevise(t *testing.T) {
	q, err := NewPracticeTestQuestion("t1", "original", SingleChoice)
	if err != nil {
		t.Fatalf("NewPracticeTestQuestion: %v", err)
	}

	if err := q.Revise(strPtr("  "), nil); !errors.Is(err, util.ErrValidation) {
		t.Errorf("blank text: got %v", err)
	}
	if q.Text != "original" {
		t.Error("a rejected revise must not mutate")
	}

	if err := q.Revise(nil, typePtr("ESSAY")); !errors.Is(err, util.ErrValidation) {
		t.Errorf("bad type: got %v", err)
	}
	if q.Type != SingleChoice {
		t.Error("a rejected revise must not mutate the type")
	}

	if err := q.Revise(strPtr("revised"), typePtr(TrueFalse)); err != nil {
		t.Fatalf("Revise: %v", err)
	}
	if q.Text != "revised" || q.Type != TrueFalse {
		t.Errorf("revise not applied: %+v", q)
	}
}

func TestNewAnswerOptionRequiresCorrectness(t *testing.T) {
	if _, err := NewAnswerOption("q1", "text", nil); !errors.Is(err, util.ErrValidation) {
		t.Errorf("nil correctness: got %v", err)
	}
	if _, err := NewAnswerOption("q1", " ", boolPtr(true)); !errors.Is(err, util.ErrValidation) {
		t.Errorf("blank text: got %v", err)
	}

	o, err := NewAnswerOption("q1", "text", boolPtr(false))
	if err != nil {
		t.Fatalf("NewAnswerOption: %v", err)
	}
	if o.IsCorrect {
		t.Error("flag must be stored as given")
	}
}

func TestOptionChangeKeepsFlagWhenOmitted(t *testing.T) {
	o, err := NewAnswerOption("q1", "text", boolPtr(true))
	if err != nil {
		t.Fatalf("NewAnswerOption: %v", err)
	}

	if err := o.Change(strPtr("new text"), nil); err != nil {
		t.Fatalf("Change: %v", err)
	}
	if !o.IsCorrect {
		t.Error("omitted flag must keep the old value")
	}

	if err := o.Change(nil, boolPtr(false)); err != nil {
		t.Fatalf("Change: %v", err)
	}
	if o.IsCorrect || o.Text != "new text" {
		t.Errorf("change not applied: %+v", o)
	}
}

func TestNewPracticeTestResultRejectsNegatives(t *testing.T) {
	if _, err := NewPracticeTestResult("u", "t", -1, 0); !errors.Is(err, util.ErrValidation) {
		t.Errorf("negative count: got %v", err)
	}
	if _, err := NewPracticeTestResult("u", "t", 0, -1); !errors.Is(err, util.ErrValidation) {
		t.Errorf("negative score: got %v", err)
	}
	if _, err := NewPracticeTestResult("u", "t", 0, 0); err != nil {
		t.Errorf("zero attempt must be accepted: %v", err)
	}
}
