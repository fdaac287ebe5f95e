package service

import (
	"errors"
	"sort"
	"testing"

	"studyset_backend/internal/model"
	"studyset_backend/internal/repository"
	"studyset_backend/internal/util"
)

// fakeTestStore keeps the aggregate in maps and applies the same atomicity
// contract the real store promises: a failing write leaves nothing behind.
type fakeTestStore struct {
	tests     map[string]*model.PracticeTest
	questions map[string]*model.PracticeTestQuestion
	options   map[string]*model.AnswerOption
	results   map[string]*model.PracticeTestResult
	histories []model.PracticeTestHistory

	failCreate bool
	failDiff   bool
}

func newFakeTestStore() *fakeTestStore {
	return &fakeTestStore{
		tests:     make(map[string]*model.PracticeTest),
		questions: make(map[string]*model.PracticeTestQuestion),
		options:   make(map[string]*model.AnswerOption),
		results:   make(map[string]*model.PracticeTestResult),
	}
}

func (f *fakeTestStore) GetTestSummaryByID(testID string) (*repository.TestSummary, error) {
	t, ok := f.tests[testID]
	if !ok {
		return nil, util.ErrTestNotFound
	}
	return &repository.TestSummary{
		PracticeTestID: t.ID,
		Name:           t.Name,
		UserID:         t.UserID,
	}, nil
}

func (f *fakeTestStore) ListQuestionIDs(testID string, random bool, limit int) ([]string, error) {
	var ids []string
	for id, q := range f.questions {
		if q.PracticeTestID == testID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (f *fakeTestStore) LoadQuestionsWithOptions(questionIDs []string) ([]model.PracticeTestQuestion, error) {
	var out []model.PracticeTestQuestion
	for _, id := range questionIDs {
		q, ok := f.questions[id]
		if !ok {
			continue
		}
		loaded := *q
		loaded.Options = nil
		var optIDs []string
		for oid, o := range f.options {
			if o.QuestionID == id {
				optIDs = append(optIDs, oid)
			}
		}
		sort.Strings(optIDs)
		for _, oid := range optIDs {
			loaded.Options = append(loaded.Options, *f.options[oid])
		}
		out = append(out, loaded)
	}
	return out, nil
}

func (f *fakeTestStore) CreateAggregate(test *model.PracticeTest, questions []model.PracticeTestQuestion, options []model.AnswerOption) error {
	if f.failCreate {
		return errors.New("storage unavailable")
	}
	f.tests[test.ID] = test
	for i := range questions {
		q := questions[i]
		f.questions[q.ID] = &q
	}
	for i := range options {
		o := options[i]
		f.options[o.ID] = &o
	}
	return nil
}

func (f *fakeTestStore) ApplyDiff(testID string, renameTo *string, newQuestions []model.PracticeTestQuestion, newOptions []model.AnswerOption, updatedQuestions []model.PracticeTestQuestion, updatedOptions []model.AnswerOption) error {
	if f.failDiff {
		return errors.New("storage unavailable")
	}
	if renameTo != nil {
		f.tests[testID].Name = *renameTo
	}
	for i := range newQuestions {
		q := newQuestions[i]
		f.questions[q.ID] = &q
	}
	for i := range newOptions {
		o := newOptions[i]
		f.options[o.ID] = &o
	}
	for i := range updatedQuestions {
		q := updatedQuestions[i]
		q.Options = nil
		f.questions[q.ID] = &q
	}
	for i := range updatedOptions {
		o := updatedOptions[i]
		f.options[o.ID] = &o
	}
	return nil
}

func (f *fakeTestStore) DeleteOptions(testID string, refs []repository.OptionRef) (bool, error) {
	deleted := false
	for _, ref := range refs {
		q, ok := f.questions[ref.QuestionID]
		if !ok || q.PracticeTestID != testID {
			continue
		}
		o, ok := f.options[ref.OptionID]
		if !ok || o.QuestionID != ref.QuestionID {
			continue
		}
		delete(f.options, ref.OptionID)
		deleted = true
	}
	return deleted, nil
}

func (f *fakeTestStore) DeleteQuestions(testID string, questionIDs []string) (bool, error) {
	deleted := false
	for _, id := range questionIDs {
		q, ok := f.questions[id]
		if !ok || q.PracticeTestID != testID {
			continue
		}
		for oid, o := range f.options {
			if o.QuestionID == id {
				delete(f.options, oid)
			}
		}
		delete(f.questions, id)
		deleted = true
	}
	return deleted, nil
}

func (f *fakeTestStore) DeleteTest(testID string) (bool, error) {
	if _, ok := f.tests[testID]; !ok {
		return false, nil
	}
	for qid, q := range f.questions {
		if q.PracticeTestID != testID {
			continue
		}
		for oid, o := range f.options {
			if o.QuestionID == qid {
				delete(f.options, oid)
			}
		}
		delete(f.questions, qid)
	}
	for rid, r := range f.results {
		if r.PracticeTestID != testID {
			continue
		}
		kept := f.histories[:0]
		for _, h := range f.histories {
			if h.ResultID != rid {
				kept = append(kept, h)
			}
		}
		f.histories = kept
		delete(f.results, rid)
	}
	delete(f.tests, testID)
	return true, nil
}

func (f *fakeTestStore) IsOwner(userID, testID string) (bool, error) {
	t, ok := f.tests[testID]
	if !ok {
		return false, util.ErrTestNotFound
	}
	return t.UserID == userID, nil
}

func (f *fakeTestStore) InsertResultAndHistory(result *model.PracticeTestResult, histories []model.PracticeTestHistory) (string, error) {
	f.results[result.ID] = result
	f.histories = append(f.histories, histories...)
	return result.ID, nil
}

func (f *fakeTestStore) ListResultsForUser(userID string) ([]repository.ResultWithTest, error) {
	var out []repository.ResultWithTest
	for _, r := range f.results {
		if r.UserID != userID {
			continue
		}
		summary, err := f.GetTestSummaryByID(r.PracticeTestID)
		if err != nil {
			continue
		}
		out = append(out, repository.ResultWithTest{Result: *r, Test: *summary})
	}
	return out, nil
}

func (f *fakeTestStore) LoadResultWithHistory(resultID string) (*repository.ResultDetailRows, error) {
	r, ok := f.results[resultID]
	if !ok {
		return nil, util.ErrResultNotFound
	}
	summary, err := f.GetTestSummaryByID(r.PracticeTestID)
	if err != nil {
		return nil, err
	}

	rows := &repository.ResultDetailRows{Result: *r, Test: *summary}
	seen := make(map[string]bool)
	for _, h := range f.histories {
		if h.ResultID != resultID {
			continue
		}
		rows.Histories = append(rows.Histories, h)
		seen[h.QuestionID] = true
	}
	var qids []string
	for id := range seen {
		qids = append(qids, id)
	}
	sort.Strings(qids)
	rows.Questions, _ = f.LoadQuestionsWithOptions(qids)
	return rows, nil
}

var _ PracticeTestStore = (*fakeTestStore)(nil)

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func seedTest(t *testing.T, store *fakeTestStore, svc *PracticeTestService, owner string, questionCount int) string {
	t.Helper()
	req := CreatePracticeTestReq{Name: "Go basics"}
	for i := 0; i < questionCount; i++ {
		req.Questions = append(req.Questions, NewQuestionReq{
			QuestionText: "what does make([]int, 0) return",
			QuestionType: model.SingleChoice,
			Options: []NewAnswerOptionReq{
				{OptionText: "an empty slice", IsCorrect: boolPtr(true)},
				{OptionText: "nil", IsCorrect: boolPtr(false)},
			},
		})
	}
	testID, err := svc.CreatePracticeTest(owner, req)
	if err != nil {
		t.Fatalf("CreatePracticeTest: %v", err)
	}
	return testID
}

func TestCreatePracticeTestPersistsAggregate(t *testing.T) {
	store := newFakeTestStore()
	svc := NewPracticeTestService(store)

	testID := seedTest(t, store, svc, "user-1", 2)

	if len(store.tests) != 1 {
		t.Fatalf("expected 1 test, got %d", len(store.tests))
	}
	if len(store.questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(store.questions))
	}
	if len(store.options) != 4 {
		t.Fatalf("expected 4 options, got %d", len(store.options))
	}
	for _, q := range store.questions {
		if q.PracticeTestID != testID {
			t.Errorf("question %s bound to wrong test %s", q.ID, q.PracticeTestID)
		}
	}
}

func TestCreatePracticeTestValidation(t *testing.T) {
	store := newFakeTestStore()
	svc := NewPracticeTestService(store)

	cases := []struct {
		name string
		req  CreatePracticeTestReq
	}{
		{"empty name", CreatePracticeTestReq{Name: "   "}},
		{"empty question text", CreatePracticeTestReq{
			Name:      "t",
			Questions: []NewQuestionReq{{QuestionText: "", QuestionType: model.SingleChoice}},
		}},
		{"unknown question type", CreatePracticeTestReq{
			Name:      "t",
			Questions: []NewQuestionReq{{QuestionText: "q", QuestionType: "ESSAY"}},
		}},
		{"missing correctness flag", CreatePracticeTestReq{
			Name: "t",
			Questions: []NewQuestionReq{{
				QuestionText: "q",
				QuestionType: model.SingleChoice,
				Options:      []NewAnswerOptionReq{{OptionText: "a", IsCorrect: nil}},
			}},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreatePracticeTest("user-1", tc.req)
			if !errors.Is(err, util.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(store.tests) != 0 || len(store.questions) != 0 || len(store.options) != 0 {
				t.Fatal("store must stay empty after a rejected create")
			}
		})
	}
}

func TestCreatePracticeTestStoreFailureLeavesNothing(t *testing.T) {
	store := newFakeTestStore()
	store.failCreate = true
	svc := NewPracticeTestService(store)

	_, err := svc.CreatePracticeTest("user-1", CreatePracticeTestReq{Name: "t"})
	if err == nil {
		t.Fatal("expected error from failing store")
	}
	if len(store.tests) != 0 {
		t.Fatal("no test row may survive a failed create")
	}
}

func TestUpdatePracticeTestReconcilesDiff(t *testing.T) {
	store := newFakeTestStore()
	svc := NewPracticeTestService(store)
	testID := seedTest(t, store, svc, "user-1", 2)

	ids, _ := store.ListQuestionIDs(testID, false, 0)
	editedID, untouchedID := ids[0], ids[1]
	edited := store.questions[editedID]
	var editedOptionID string
	for oid, o := range store.options {
		if o.QuestionID == editedID {
			editedOptionID = oid
			break
		}
	}
	untouchedBefore := *store.questions[untouchedID]

	req := UpdatePracticeTestReq{
		Name: strPtr("Go basics v2"),
		Questions: []UpdateQuestionReq{
			{
				QuestionID:   editedID,
				QuestionText: strPtr("what does append do on a full slice"),
				Options: []UpdateOptionReq{
					{OptionID: editedOptionID, OptionText: strPtr("allocates a bigger array")},
					{OptionText: strPtr("a freshly added option"), IsCorrect: boolPtr(false)},
				},
			},
			{
				QuestionText: strPtr("is a nil map readable"),
				QuestionType: questionTypePtr(model.TrueFalse),
				Options: []UpdateOptionReq{
					{OptionText: strPtr("yes"), IsCorrect: boolPtr(true)},
					{OptionText: strPtr("no"), IsCorrect: boolPtr(false)},
				},
			},
		},
	}

	if err := svc.UpdatePracticeTest("user-1", testID, req); err != nil {
		t.Fatalf("UpdatePracticeTest: %v", err)
	}

	if store.tests[testID].Name != "Go basics v2" {
		t.Errorf("rename not applied, got %q", store.tests[testID].Name)
	}
	if got := store.questions[editedID].Text; got != "what does append do on a full slice" {
		t.Errorf("edited question text = %q", got)
	}
	if store.questions[editedID].ID != edited.ID {
		t.Error("edit must keep the question id stable")
	}
	if got := store.options[editedOptionID].Text; got != "allocates a bigger array" {
		t.Errorf("edited option text = %q", got)
	}
	if got := *store.questions[untouchedID]; got.Text != untouchedBefore.Text || got.Type != untouchedBefore.Type {
		t.Error("unmentioned question must stay unchanged")
	}
	if len(store.questions) != 3 {
		t.Fatalf("expected 3 questions after appending one, got %d", len(store.questions))
	}
	// 4 seeded + 1 added to the edited question + 2 under the new question.
	if len(store.options) != 7 {
		t.Fatalf("expected 7 options, got %d", len(store.options))
	}
}

func TestAuthoringRoundTrip(t *testing.T) {
	store := newFakeTestStore()
	svc := NewPracticeTestService(store)

	testID, err := svc.CreatePracticeTest("author", CreatePracticeTestReq{
		Name: "Capitals",
		Questions: []NewQuestionReq{{
			QuestionText: "capital of France",
			QuestionType: model.SingleChoice,
			Options: []NewAnswerOptionReq{
				{OptionText: "Paris", IsCorrect: boolPtr(true)},
				{OptionText: "Lyon", IsCorrect: boolPtr(false)},
			},
		}},
	})
	if err != nil {
		t.Fatalf("CreatePracticeTest: %v", err)
	}

	detail, err := svc.GetPracticeTestDetail(testID)
	if err != nil {
		t.Fatalf("GetPracticeTestDetail: %v", err)
	}
	if len(detail.Questions) != 1 || len(detail.Questions[0].Options) != 2 {
		t.Fatalf("expected 1 question with 2 options, got %+v", detail.Questions)
	}
	questionID := detail.Questions[0].ID

	req := UpdatePracticeTestReq{
		Questions: []UpdateQuestionReq{
			{QuestionID: questionID, QuestionText: strPtr("capital city of France")},
		},
	}
	if err := svc.UpdatePracticeTest("author", testID, req); err != nil {
		t.Fatalf("UpdatePracticeTest: %v", err)
	}

	detail, err = svc.GetPracticeTestDetail(testID)
	if err != nil {
		t.Fatalf("GetPracticeTestDetail after update: %v", err)
	}
	if got := detail.Questions[0].Text; got != "capital city of France" {
		t.Errorf("text not updated, got %q", got)
	}
	if len(detail.Questions[0].Options) != 2 {
		t.Errorf("text-only update must not touch options, got %d", len(detail.Questions[0].Options))
	}
}

func TestUpdatePracticeTestUnknownQuestionAborts(t *testing.T) {
	store := newFakeTestStore()
	svc := NewPracticeTestService(store)
	testID := seedTest(t, store, svc, "user-1", 1)

	req := UpdatePracticeTestReq{
		Name: strPtr("should not stick"),
		Questions: []UpdateQuestionReq{
			{QuestionID: "no-such-question", QuestionText: strPtr("x")},
		},
	}

	err := svc.UpdatePracticeTest("user-1", testID, req)
	if !errors.Is(err, util.ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}
	if store.tests[testID].Name != "Go basics" {
		t.Error("a failed update must not apply the rename")
	}
}

func TestUpdatePracticeTestForeignQuestionRejected(t *testing.T) {
	store := newFakeTestStore()
	svc := NewPracticeTestService(store)
	mine := seedTest(t, store, svc, "user-1", 1)
	theirs := seedTest(t, store, svc, "user-1", 1)

	foreignIDs, _ := store.ListQuestionIDs(theirs, false, 0)
	req := UpdatePracticeTestReq{
		Questions: []UpdateQuestionReq{
			{QuestionID: foreignIDs[0], QuestionText: strPtr("hijack")},
		},
	}

	err := svc.UpdatePracticeTest("user-1", mine, req)
	if !errors.Is(err, util.ErrQuestionNotFound) {
		t.Fatalf("question of another test must read as not found, got %v", err)
	}
}

func TestUpdatePracticeTestUnknownOptionAborts(t *testing.T) {
	store := newFakeTestStore()
	svc := NewPracticeTestService(store)
	testID := seedTest(t, store, svc, "user-1", 1)
	ids, _ := store.ListQuestionIDs(testID, false, 0)

	req := UpdatePracticeTestReq{
		Questions: []UpdateQuestionReq{
			{
				QuestionID: ids[0],
				Options:    []UpdateOptionReq{{OptionID: "no-such-option", OptionText: strPtr("x")}},
			},
		},
	}

	err := svc.UpdatePracticeTest("user-1", testID, req)
	if !errors.Is(err, util.ErrOptionNotFound) {
		t.Fatalf("expected ErrOptionNotFound, got %v", err)
	}
}

func TestUpdatePracticeTestNonOwnerRejected(t *testing.T) {
	store := newFakeTestStore()
	svc := NewPracticeTestService(store)
	testID := seedTest(t, store, svc, "user-1", 1)

	err := svc.UpdatePracticeTest("intruder", testID, UpdatePracticeTestReq{Name: strPtr("stolen")})
	if !errors.Is(err, util.ErrNotAllowed) {
		t.Fatalf("expected ErrNotAllowed, got %v", err)
	}
	if store.tests[testID].Name != "Go basics" {
		t.Error("non-owner update must leave the store unchanged")
	}
}

func TestGetRandomQuestionsDegradesToAll(t *testing.T) {
	store := newFakeTestStore()
	svc := NewPracticeTestService(store)
	testID := seedTest(t, store, svc, "user-1", 3)

	detail, err := svc.GetRandomQuestions(testID, 10)
	if err != nil {
		t.Fatalf("GetRandomQuestions: %v", err)
	}
	if len(detail.Questions) != 3 {
		t.Fatalf("count above total must return all questions, got %d", len(detail.Questions))
	}
	for _, q := range detail.Questions {
		if len(q.Options) != 2 {
			t.Errorf("question %s delivered without its options", q.ID)
		}
	}
}

func TestGetRandomQuestionsValidation(t *testing.T) {
	store := newFakeTestStore()
	svc := NewPracticeTestService(store)
	testID := seedTest(t, store, svc, "user-1", 1)

	if _, err := svc.GetRandomQuestions(testID, 0); !errors.Is(err, util.ErrValidation) {
		t.Fatalf("count 0 must be a validation error, got %v", err)
	}
	if _, err := svc.GetRandomQuestions(testID, -2); !errors.Is(err, util.ErrValidation) {
		t.Fatalf("negative count must be a validation error, got %v", err)
	}
	if _, err := svc.GetRandomQuestions("missing", 5); !errors.Is(err, util.ErrTestNotFound) {
		t.Fatalf("unknown test must be not found, got %v", err)
	}
}

func TestGetRandomQuestionsEmptyTest(t *testing.T) {
	store := newFakeTestStore()
	svc := NewPracticeTestService(store)
	testID := seedTest(t, store, svc, "user-1", 0)

	detail, err := svc.GetRandomQuestions(testID, 5)
	if err != nil {
		t.Fatalf("a test without questions must not error: %v", err)
	}
	if len(detail.Questions) != 0 {
		t.Fatalf("expected no questions, got %d", len(detail.Questions))
	}
}

func TestDeleteOptionsSkipsForeignPairs(t *testing.T) {
	store := newFakeTestStore()
	svc := NewPracticeTestService(store)
	mine := seedTest(t, store, svc, "user-1", 1)
	theirs := seedTest(t, store, svc, "user-2", 1)

	myIDs, _ := store.ListQuestionIDs(mine, false, 0)
	theirIDs, _ := store.ListQuestionIDs(theirs, false, 0)
	var myOption, theirOption string
	for oid, o := range store.options {
		if o.QuestionID == myIDs[0] {
			myOption = oid
		}
		if o.QuestionID == theirIDs[0] {
			theirOption = oid
		}
	}

	deleted, err := svc.DeleteOptions("user-1", mine, []repository.OptionRef{
		{QuestionID: myIDs[0], OptionID: myOption},
		{QuestionID: theirIDs[0], OptionID: theirOption},
	})
	if err != nil {
		t.Fatalf("DeleteOptions: %v", err)
	}
	if !deleted {
		t.Fatal("expected at least one deletion")
	}
	if _, ok := store.options[myOption]; ok {
		t.Error("own option should be gone")
	}
	if _, ok := store.options[theirOption]; !ok {
		t.Error("another test's option must survive a best-effort delete")
	}
}

func TestDeletePracticeTestCascades(t *testing.T) {
	store := newFakeTestStore()
	svc := NewPracticeTestService(store)
	testID := seedTest(t, store, svc, "user-1", 2)
	other := seedTest(t, store, svc, "user-1", 1)

	ids, _ := store.ListQuestionIDs(testID, false, 0)
	submitReq := SubmitTestReq{
		Answers:        []AnswerReq{{QuestionID: ids[0], OptionIDs: nil}},
		NumOfQuestions: 2,
		Score:          1,
	}
	if _, err := svc.SubmitTest("user-1", testID, submitReq); err != nil {
		t.Fatalf("SubmitTest: %v", err)
	}

	deleted, err := svc.DeletePracticeTest("user-1", testID)
	if err != nil {
		t.Fatalf("DeletePracticeTest: %v", err)
	}
	if !deleted {
		t.Fatal("expected deletion to report true")
	}
	if _, ok := store.tests[testID]; ok {
		t.Error("test row must be gone")
	}
	for _, q := range store.questions {
		if q.PracticeTestID == testID {
			t.Error("cascade must remove the test's questions")
		}
	}
	if len(store.results) != 0 || len(store.histories) != 0 {
		t.Error("cascade must remove results and history")
	}
	if _, ok := store.tests[other]; !ok {
		t.Error("unrelated test must survive")
	}
}

func TestDeleteNonOwnerRejected(t *testing.T) {
	store := newFakeTestStore()
	svc := NewPracticeTestService(store)
	testID := seedTest(t, store, svc, "user-1", 1)

	if _, err := svc.DeletePracticeTest("intruder", testID); !errors.Is(err, util.ErrNotAllowed) {
		t.Fatalf("expected ErrNotAllowed, got %v", err)
	}
	if _, ok := store.tests[testID]; !ok {
		t.Fatal("test must survive a rejected delete")
	}
}

func TestSubmitTestRecordsChosenOptions(t *testing.T) {
	store := newFakeTestStore()
	svc := NewPracticeTestService(store)
	testID := seedTest(t, store, svc, "user-1", 2)
	ids, _ := store.ListQuestionIDs(testID, false, 0)

	req := SubmitTestReq{
		Answers: []AnswerReq{
			{QuestionID: ids[0], OptionIDs: []string{"opt-a", "opt-b"}},
			{QuestionID: ids[1], OptionIDs: nil},
		},
		NumOfQuestions: 2,
		Score:          1,
	}

	resultID, err := svc.SubmitTest("taker", testID, req)
	if err != nil {
		t.Fatalf("SubmitTest: %v", err)
	}

	result := store.results[resultID]
	if result == nil {
		t.Fatal("result row missing")
	}
	if result.Score != 1 || result.NumOfQuestions != 2 {
		t.Errorf("score stored as supplied: got score=%d count=%d", result.Score, result.NumOfQuestions)
	}

	// Two rows for the multi-choice answer, one nil-option row for the
	// unanswered question.
	if len(store.histories) != 3 {
		t.Fatalf("expected 3 history rows, got %d", len(store.histories))
	}
	var nilRows int
	for _, h := range store.histories {
		if h.OptionID == nil {
			nilRows++
			if h.QuestionID != ids[1] {
				t.Errorf("nil-option row bound to wrong question %s", h.QuestionID)
			}
		}
	}
	if nilRows != 1 {
		t.Fatalf("expected exactly one unanswered row, got %d", nilRows)
	}
}

func TestSubmitTestValidation(t *testing.T) {
	store := newFakeTestStore()
	svc := NewPracticeTestService(store)
	testID := seedTest(t, store, svc, "user-1", 1)

	if _, err := svc.SubmitTest("taker", "missing", SubmitTestReq{}); !errors.Is(err, util.ErrTestNotFound) {
		t.Fatalf("unknown test must be not found, got %v", err)
	}
	if _, err := svc.SubmitTest("taker", testID, SubmitTestReq{Score: -1}); !errors.Is(err, util.ErrValidation) {
		t.Fatalf("negative score must be rejected, got %v", err)
	}
	req := SubmitTestReq{Answers: []AnswerReq{{QuestionID: ""}}}
	if _, err := svc.SubmitTest("taker", testID, req); !errors.Is(err, util.ErrValidation) {
		t.Fatalf("answer without question id must be rejected, got %v", err)
	}
}

func TestGetHistoryDetailGroupsAnswers(t *testing.T) {
	store := newFakeTestStore()
	svc := NewPracticeTestService(store)
	testID := seedTest(t, store, svc, "user-1", 2)
	ids, _ := store.ListQuestionIDs(testID, false, 0)

	req := SubmitTestReq{
		Answers: []AnswerReq{
			{QuestionID: ids[0], OptionIDs: []string{"o1", "o2"}},
			{QuestionID: ids[1], OptionIDs: nil},
		},
		NumOfQuestions: 2,
		Score:          2,
	}
	resultID, err := svc.SubmitTest("taker", testID, req)
	if err != nil {
		t.Fatalf("SubmitTest: %v", err)
	}

	detail, err := svc.GetHistoryDetail("taker", resultID)
	if err != nil {
		t.Fatalf("GetHistoryDetail: %v", err)
	}
	if len(detail.Histories) != 2 {
		t.Fatalf("expected 2 grouped questions, got %d", len(detail.Histories))
	}
	first := detail.Histories[0]
	if first.QuestionID != ids[0] || len(first.ChosenOptionIDs) != 2 {
		t.Errorf("first answer grouped wrong: %+v", first)
	}
	second := detail.Histories[1]
	if second.QuestionID != ids[1] || len(second.ChosenOptionIDs) != 0 {
		t.Errorf("unanswered question must group to zero chosen options: %+v", second)
	}
	if first.Question.Text == "" {
		t.Error("grouped answer must carry the question detail")
	}
}

func TestGetHistoryDetailOwnerOnly(t *testing.T) {
	store := newFakeTestStore()
	svc := NewPracticeTestService(store)
	testID := seedTest(t, store, svc, "user-1", 1)

	resultID, err := svc.SubmitTest("taker", testID, SubmitTestReq{NumOfQuestions: 1, Score: 1})
	if err != nil {
		t.Fatalf("SubmitTest: %v", err)
	}

	if _, err := svc.GetHistoryDetail("someone-else", resultID); !errors.Is(err, util.ErrNotAllowedForResult) {
		t.Fatalf("expected ErrNotAllowedForResult, got %v", err)
	}
	if _, err := svc.GetHistoryDetail("taker", "missing"); !errors.Is(err, util.ErrResultNotFound) {
		t.Fatalf("expected ErrResultNotFound, got %v", err)
	}
}

func questionTypePtr(t model.QuestionType) *model.QuestionType { return &t }
