package service

import (
	"fmt"
	"strings"

	"studyset_backend/internal/model"
	"studyset_backend/internal/repository"
	"studyset_backend/internal/util"
)

// PracticeTestStore is the persistence contract the engine needs. Each write
// method is atomic: it either commits every row it touches or none of them.
// Implemented by repository.PracticeTestRepository.
type PracticeTestStore interface {
	GetTestSummaryByID(testID string) (*repository.TestSummary, error)
	ListQuestionIDs(testID string, random bool, limit int) ([]string, error)
	LoadQuestionsWithOptions(questionIDs []string) ([]model.PracticeTestQuestion, error)
	CreateAggregate(test *model.PracticeTest, questions []model.PracticeTestQuestion, options []model.AnswerOption) error
	ApplyDiff(testID string, renameTo *string, newQuestions []model.PracticeTestQuestion, newOptions []model.AnswerOption, updatedQuestions []model.PracticeTestQuestion, updatedOptions []model.AnswerOption) error
	DeleteOptions(testID string, refs []repository.OptionRef) (bool, error)
	DeleteQuestions(testID string, questionIDs []string) (bool, error)
	DeleteTest(testID string) (bool, error)
	IsOwner(userID, testID string) (bool, error)
	InsertResultAndHistory(result *model.PracticeTestResult, histories []model.PracticeTestHistory) (string, error)
	ListResultsForUser(userID string) ([]repository.ResultWithTest, error)
	LoadResultWithHistory(resultID string) (*repository.ResultDetailRows, error)
}

type PracticeTestService struct {
	Store PracticeTestStore
}

func NewPracticeTestService(store PracticeTestStore) *PracticeTestService {
	return &PracticeTestService{Store: store}
}

type NewAnswerOptionReq struct {
	OptionText string `json:"optionText" binding:"required"`
	IsCorrect  *bool  `json:"isCorrect" binding:"required"`
}

type NewQuestionReq struct {
	QuestionText string               `json:"questionText" binding:"required"`
	QuestionType model.QuestionType   `json:"questionType" binding:"required"`
	Options      []NewAnswerOptionReq `json:"options"`
}

type CreatePracticeTestReq struct {
	Name      string           `json:"practiceTestName" binding:"required"`
	Questions []NewQuestionReq `json:"questions"`
}

// UpdateOptionReq without an OptionID creates a new option; with one it
// overwrites the matching existing option.
type UpdateOptionReq struct {
	OptionID   string  `json:"optionId"`
	OptionText *string `json:"optionText"`
	IsCorrect  *bool   `json:"isCorrect"`
}

// UpdateQuestionReq without a QuestionID appends a brand-new question; with
// one it edits the existing question in place.
type UpdateQuestionReq struct {
	QuestionID   string              `json:"questionId"`
	QuestionText *string             `json:"questionText"`
	QuestionType *model.QuestionType `json:"questionType"`
	Options      []UpdateOptionReq   `json:"options"`
}

type UpdatePracticeTestReq struct {
	Name      *string             `json:"practiceTestName"`
	Questions []UpdateQuestionReq `json:"questions"`
}

type TestDetail struct {
	BaseInfo  repository.TestSummary       `json:"baseInfo"`
	Questions []model.PracticeTestQuestion `json:"questions"`
}

type AnswerReq struct {
	QuestionID string   `json:"questionId" binding:"required"`
	OptionIDs  []string `json:"optionIds"`
}

type SubmitTestReq struct {
	Answers        []AnswerReq `json:"answers"`
	NumOfQuestions int         `json:"numOfQuestions"`
	Score          int         `json:"score"`
}

type QuestionHistory struct {
	QuestionID      string                     `json:"questionId"`
	ChosenOptionIDs []string                   `json:"chosenOptionIds"`
	Question        model.PracticeTestQuestion `json:"questionDetail"`
}

type ResultDetail struct {
	Result    model.PracticeTestResult `json:"result"`
	BaseInfo  repository.TestSummary   `json:"baseInfo"`
	Histories []QuestionHistory        `json:"histories"`
}

// assertOwner gates every mutating operation. Reads and quiz-taking are open
// to any authenticated user.
func (s *PracticeTestService) assertOwner(userID, testID string) error {
	owner, err := s.Store.IsOwner(userID, testID)
	if err != nil {
		return err
	}
	if !owner {
		return util.ErrNotAllowed
	}
	return nil
}

// CreatePracticeTest builds the full aggregate in memory, then persists it in
// one transaction. Returns the new test id.
func (s *PracticeTestService) CreatePracticeTest(ownerID string, req CreatePracticeTestReq) (string, error) {
	test, err := model.NewPracticeTest(ownerID, req.Name)
	if err != nil {
		return "", err
	}

	var questions []model.PracticeTestQuestion
	var options []model.AnswerOption
	for _, qReq := range req.Questions {
		question, err := model.NewPracticeTestQuestion(test.ID, qReq.QuestionText, qReq.QuestionType)
		if err != nil {
			return "", err
		}
		questions = append(questions, *question)

		for _, oReq := range qReq.Options {
			option, err := model.NewAnswerOption(question.ID, oReq.OptionText, oReq.IsCorrect)
			if err != nil {
				return "", err
			}
			options = append(options, *option)
		}
	}

	if err := s.Store.CreateAggregate(test, questions, options); err != nil {
		return "", fmt.Errorf("create practice test: %w", err)
	}
	return test.ID, nil
}

// UpdatePracticeTest reconciles a partial update into explicit creates and
// in-place edits, committed as one transaction. Question specs without an id
// append new questions; specs with an id must match an existing question of
// this test or the whole update aborts.
func (s *PracticeTestService) UpdatePracticeTest(callerID, testID string, req UpdatePracticeTestReq) error {
	if err := s.assertOwner(callerID, testID); err != nil {
		return err
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return fmt.Errorf("%w: practice test name must not be empty", util.ErrValidation)
	}

	var createBucket, updateBucket []UpdateQuestionReq
	for _, qReq := range req.Questions {
		if qReq.QuestionID == "" {
			createBucket = append(createBucket, qReq)
		} else {
			updateBucket = append(updateBucket, qReq)
		}
	}

	var newQuestions []model.PracticeTestQuestion
	var newOptions []model.AnswerOption
	for _, qReq := range createBucket {
		text := ""
		if qReq.QuestionText != nil {
			text = *qReq.QuestionText
		}
		var qtype model.QuestionType
		if qReq.QuestionType != nil {
			qtype = *qReq.QuestionType
		}

		question, err := model.NewPracticeTestQuestion(testID, text, qtype)
		if err != nil {
			return err
		}
		newQuestions = append(newQuestions, *question)

		for _, oReq := range qReq.Options {
			if oReq.OptionID != "" {
				// A referenced option cannot exist under a question that
				// does not exist yet.
				return util.ErrOptionNotFound
			}
			optText := ""
			if oReq.OptionText != nil {
				optText = *oReq.OptionText
			}
			option, err := model.NewAnswerOption(question.ID, optText, oReq.IsCorrect)
			if err != nil {
				return err
			}
			newOptions = append(newOptions, *option)
		}
	}

	var updatedQuestions []model.PracticeTestQuestion
	var updatedOptions []model.AnswerOption
	if len(updateBucket) > 0 {
		ids := make([]string, 0, len(updateBucket))
		for _, qReq := range updateBucket {
			ids = append(ids, qReq.QuestionID)
		}

		loaded, err := s.Store.LoadQuestionsWithOptions(ids)
		if err != nil {
			return fmt.Errorf("load questions for update: %w", err)
		}
		existing := make(map[string]*model.PracticeTestQuestion, len(loaded))
		for i := range loaded {
			if loaded[i].PracticeTestID == testID {
				existing[loaded[i].ID] = &loaded[i]
			}
		}

		for _, qReq := range updateBucket {
			question, ok := existing[qReq.QuestionID]
			if !ok {
				return util.ErrQuestionNotFound
			}
			if err := question.Revise(qReq.QuestionText, qReq.QuestionType); err != nil {
				return err
			}
			updatedQuestions = append(updatedQuestions, *question)

			for _, oReq := range qReq.Options {
				if oReq.OptionID == "" {
					optText := ""
					if oReq.OptionText != nil {
						optText = *oReq.OptionText
					}
					option, err := model.NewAnswerOption(question.ID, optText, oReq.IsCorrect)
					if err != nil {
						return err
					}
					newOptions = append(newOptions, *option)
					continue
				}

				var match *model.AnswerOption
				for i := range question.Options {
					if question.Options[i].ID == oReq.OptionID {
						match = &question.Options[i]
						break
					}
				}
				if match == nil {
					return util.ErrOptionNotFound
				}
				if err := match.Change(oReq.OptionText, oReq.IsCorrect); err != nil {
					return err
				}
				updatedOptions = append(updatedOptions, *match)
			}
		}
	}

	err := s.Store.ApplyDiff(testID, req.Name, newQuestions, newOptions, updatedQuestions, updatedOptions)
	if err != nil {
		return fmt.Errorf("apply practice test update: %w", err)
	}
	return nil
}

// GetPracticeTestDetail returns every question with its options in stable id
// order, for authoring and edit views.
func (s *PracticeTestService) GetPracticeTestDetail(testID string) (*TestDetail, error) {
	summary, err := s.Store.GetTestSummaryByID(testID)
	if err != nil {
		return nil, err
	}

	ids, err := s.Store.ListQuestionIDs(testID, false, 0)
	if err != nil {
		return nil, err
	}

	questions, err := s.Store.LoadQuestionsWithOptions(ids)
	if err != nil {
		return nil, err
	}

	return &TestDetail{
		BaseInfo:  *summary,
		Questions: questions,
	}, nil
}

// GetRandomQuestions samples count distinct questions at the id level before
// loading full rows. A count above the question total degrades to all
// questions; a test with no questions yields an empty list. Successive calls
// may return different samples.
func (s *PracticeTestService) GetRandomQuestions(testID string, count int) (*TestDetail, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: question count must be a positive number", util.ErrValidation)
	}

	summary, err := s.Store.GetTestSummaryByID(testID)
	if err != nil {
		return nil, err
	}

	ids, err := s.Store.ListQuestionIDs(testID, true, count)
	if err != nil {
		return nil, err
	}

	questions, err := s.Store.LoadQuestionsWithOptions(ids)
	if err != nil {
		return nil, err
	}

	return &TestDetail{
		BaseInfo:  *summary,
		Questions: questions,
	}, nil
}

// DeleteOptions is a bulk best-effort delete: pairs not belonging to this
// test are skipped, not reported.
func (s *PracticeTestService) DeleteOptions(callerID, testID string, refs []repository.OptionRef) (bool, error) {
	if err := s.assertOwner(callerID, testID); err != nil {
		return false, err
	}
	return s.Store.DeleteOptions(testID, refs)
}

func (s *PracticeTestService) DeleteQuestions(callerID, testID string, questionIDs []string) (bool, error) {
	if err := s.assertOwner(callerID, testID); err != nil {
		return false, err
	}
	return s.Store.DeleteQuestions(testID, questionIDs)
}

func (s *PracticeTestService) DeletePracticeTest(callerID, testID string) (bool, error) {
	if err := s.assertOwner(callerID, testID); err != nil {
		return false, err
	}
	return s.Store.DeleteTest(testID)
}

// SubmitTest records a completed attempt. The score and attempted count are
// stored as supplied by the client; nothing is recomputed from the stored
// correctness flags. Each answered question becomes one history row per
// chosen option, an unanswered question becomes a single row with no option.
func (s *PracticeTestService) SubmitTest(userID, testID string, req SubmitTestReq) (string, error) {
	if _, err := s.Store.GetTestSummaryByID(testID); err != nil {
		return "", err
	}

	result, err := model.NewPracticeTestResult(userID, testID, req.NumOfQuestions, req.Score)
	if err != nil {
		return "", err
	}

	var histories []model.PracticeTestHistory
	for _, answer := range req.Answers {
		if answer.QuestionID == "" {
			return "", fmt.Errorf("%w: answer question id is required", util.ErrValidation)
		}
		if len(answer.OptionIDs) == 0 {
			histories = append(histories, *model.NewPracticeTestHistory(result.ID, answer.QuestionID, nil))
			continue
		}
		for _, optionID := range answer.OptionIDs {
			id := optionID
			histories = append(histories, *model.NewPracticeTestHistory(result.ID, answer.QuestionID, &id))
		}
	}

	resultID, err := s.Store.InsertResultAndHistory(result, histories)
	if err != nil {
		return "", fmt.Errorf("record submission: %w", err)
	}
	return resultID, nil
}

func (s *PracticeTestService) ListMyHistory(userID string) ([]repository.ResultWithTest, error) {
	return s.Store.ListResultsForUser(userID)
}

// GetHistoryDetail returns one attempt with its answers grouped per
// question. Only the user who took the attempt may view it.
func (s *PracticeTestService) GetHistoryDetail(userID, resultID string) (*ResultDetail, error) {
	rows, err := s.Store.LoadResultWithHistory(resultID)
	if err != nil {
		return nil, err
	}
	if rows.Result.UserID != userID {
		return nil, util.ErrNotAllowedForResult
	}

	questionByID := make(map[string]model.PracticeTestQuestion, len(rows.Questions))
	for _, q := range rows.Questions {
		questionByID[q.ID] = q
	}

	grouped := make(map[string]*QuestionHistory)
	var order []string
	for _, h := range rows.Histories {
		entry, ok := grouped[h.QuestionID]
		if !ok {
			entry = &QuestionHistory{
				QuestionID:      h.QuestionID,
				ChosenOptionIDs: []string{},
				Question:        questionByID[h.QuestionID],
			}
			grouped[h.QuestionID] = entry
			order = append(order, h.QuestionID)
		}
		if h.OptionID != nil {
			entry.ChosenOptionIDs = append(entry.ChosenOptionIDs, *h.OptionID)
		}
	}

	histories := make([]QuestionHistory, 0, len(order))
	for _, id := range order {
		histories = append(histories, *grouped[id])
	}

	return &ResultDetail{
		Result:    rows.Result,
		BaseInfo:  rows.Test,
		Histories: histories,
	}, nil
}
