package repository

import (
	"errors"

	"studyset_backend/internal/model"
	"studyset_backend/internal/util"

	"gorm.io/gorm"
)

// TestSummary is the practice test header joined with its author.
type TestSummary struct {
	PracticeTestID  string `gorm:"column:practice_test_id" json:"practiceTestId"`
	Name            string `gorm:"column:name" json:"practiceTestName"`
	UserID          string `gorm:"column:user_id" json:"userId"`
	AuthorUsername  string `gorm:"column:author_username" json:"authorUsername"`
	AuthorAvatarURL string `gorm:"column:author_avatar_url" json:"authorAvatarUrl"`
}

// OptionRef addresses one option within one question of a test.
type OptionRef struct {
	QuestionID string `json:"questionId"`
	OptionID   string `json:"optionId"`
}

type ResultWithTest struct {
	Result model.PracticeTestResult `json:"result"`
	Test   TestSummary              `json:"baseInfo"`
}

// ResultDetailRows carries one attempt with the raw rows needed to build its
// detail view: the history entries plus every question they reference,
// options included.
type ResultDetailRows struct {
	Result    model.PracticeTestResult
	Test      TestSummary
	Histories []model.PracticeTestHistory
	Questions []model.PracticeTestQuestion
}

type PracticeTestRepository struct {
	DB *gorm.DB
}

func NewPracticeTestRepository(db *gorm.DB) *PracticeTestRepository {
	return &PracticeTestRepository{DB: db}
}

func (r *PracticeTestRepository) GetTestSummaryByID(testID string) (*TestSummary, error) {
	var summary TestSummary
	err := r.DB.Table("practice_tests t").
		Select("t.id as practice_test_id, t.name, t.user_id, u.username as author_username, u.avatar_url as author_avatar_url").
		Joins("JOIN users u ON u.id = t.user_id").
		Where("t.id = ?", testID).
		Take(&summary).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// ListQuestionIDs returns question ids of a test, either ascending by id or
// in random database order. limit <= 0 means no limit.
func (r *PracticeTestRepository) ListQuestionIDs(testID string, random bool, limit int) ([]string, error) {
	query := r.DB.Model(&model.PracticeTestQuestion{}).Where("practice_test_id = ?", testID)
	if random {
		query = query.Order("RAND()")
	} else {
		query = query.Order("id asc")
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var ids []string
	err := query.Pluck("id", &ids).Error
	return ids, err
}

func (r *PracticeTestRepository) LoadQuestionsWithOptions(questionIDs []string) ([]model.PracticeTestQuestion, error) {
	if len(questionIDs) == 0 {
		return nil, nil
	}
	var qs []model.PracticeTestQuestion
	err := r.DB.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("answer_options.id asc")
		}).
		Where("id IN ?", questionIDs).
		Order("id asc").
		Find(&qs).Error
	return qs, err
}

// CreateAggregate persists a test with all its questions and options in one
// transaction.
func (r *PracticeTestRepository) CreateAggregate(test *model.PracticeTest, questions []model.PracticeTestQuestion, options []model.AnswerOption) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(test).Error; err != nil {
			return err
		}
		if len(questions) > 0 {
			if err := tx.Omit("Options").Create(&questions).Error; err != nil {
				return err
			}
		}
		if len(options) > 0 {
			if err := tx.Create(&options).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ApplyDiff commits one reconciled update in a single transaction: optional
// rename, appended questions/options, and in-place question/option edits.
func (r *PracticeTestRepository) ApplyDiff(
	testID string,
	renameTo *string,
	newQuestions []model.PracticeTestQuestion,
	newOptions []model.AnswerOption,
	updatedQuestions []model.PracticeTestQuestion,
	updatedOptions []model.AnswerOption,
) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if renameTo != nil {
			err := tx.Model(&model.PracticeTest{}).
				Where("id = ?", testID).
				Update("name", *renameTo).Error
			if err != nil {
				return err
			}
		}

		if len(newQuestions) > 0 {
			if err := tx.Omit("Options").Create(&newQuestions).Error; err != nil {
				return err
			}
		}
		if len(newOptions) > 0 {
			if err := tx.Create(&newOptions).Error; err != nil {
				return err
			}
		}

		for i := range updatedQuestions {
			q := &updatedQuestions[i]
			err := tx.Model(&model.PracticeTestQuestion{}).
				Where("id = ? AND practice_test_id = ?", q.ID, testID).
				Updates(map[string]interface{}{"text": q.Text, "type": q.Type}).Error
			if err != nil {
				return err
			}
		}
		for i := range updatedOptions {
			o := &updatedOptions[i]
			err := tx.Model(&model.AnswerOption{}).
				Where("id = ? AND question_id = ?", o.ID, o.QuestionID).
				Updates(map[string]interface{}{"text": o.Text, "is_correct": o.IsCorrect}).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// DeleteOptions removes the given (question, option) pairs, ignoring pairs
// whose question does not belong to the test.
func (r *PracticeTestRepository) DeleteOptions(testID string, refs []OptionRef) (bool, error) {
	if len(refs) == 0 {
		return false, nil
	}

	questionIDs := make([]string, 0, len(refs))
	for _, ref := range refs {
		questionIDs = append(questionIDs, ref.QuestionID)
	}

	var validIDs []string
	err := r.DB.Model(&model.PracticeTestQuestion{}).
		Where("practice_test_id = ? AND id IN ?", testID, questionIDs).
		Pluck("id", &validIDs).Error
	if err != nil {
		return false, err
	}
	valid := make(map[string]bool, len(validIDs))
	for _, id := range validIDs {
		valid[id] = true
	}

	deleted := false
	err = r.DB.Transaction(func(tx *gorm.DB) error {
		for _, ref := range refs {
			if !valid[ref.QuestionID] {
				continue
			}
			res := tx.Where("id = ? AND question_id = ?", ref.OptionID, ref.QuestionID).
				Delete(&model.AnswerOption{})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				deleted = true
			}
		}
		return nil
	})
	return deleted, err
}

// DeleteQuestions removes the given questions of a test together with their
// options. Ids not belonging to the test are skipped.
func (r *PracticeTestRepository) DeleteQuestions(testID string, questionIDs []string) (bool, error) {
	if len(questionIDs) == 0 {
		return false, nil
	}

	var validIDs []string
	err := r.DB.Model(&model.PracticeTestQuestion{}).
		Where("practice_test_id = ? AND id IN ?", testID, questionIDs).
		Pluck("id", &validIDs).Error
	if err != nil {
		return false, err
	}
	if len(validIDs) == 0 {
		return false, nil
	}

	err = r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id IN ?", validIDs).Delete(&model.AnswerOption{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", validIDs).Delete(&model.PracticeTestQuestion{}).Error
	})
	return err == nil, err
}

// DeleteTest cascades through questions, options, results and history.
func (r *PracticeTestRepository) DeleteTest(testID string) (bool, error) {
	deleted := false
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var questionIDs []string
		err := tx.Model(&model.PracticeTestQuestion{}).
			Where("practice_test_id = ?", testID).
			Pluck("id", &questionIDs).Error
		if err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.AnswerOption{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("practice_test_id = ?", testID).Delete(&model.PracticeTestQuestion{}).Error; err != nil {
			return err
		}

		var resultIDs []string
		err = tx.Model(&model.PracticeTestResult{}).
			Where("practice_test_id = ?", testID).
			Pluck("id", &resultIDs).Error
		if err != nil {
			return err
		}
		if len(resultIDs) > 0 {
			if err := tx.Where("result_id IN ?", resultIDs).Delete(&model.PracticeTestHistory{}).Error; err != nil {
				return err
			}
			if err := tx.Where("practice_test_id = ?", testID).Delete(&model.PracticeTestResult{}).Error; err != nil {
				return err
			}
		}

		res := tx.Delete(&model.PracticeTest{}, "id = ?", testID)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}

func (r *PracticeTestRepository) IsOwner(userID, testID string) (bool, error) {
	var test model.PracticeTest
	err := r.DB.Select("user_id").Take(&test, "id = ?", testID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, util.ErrTestNotFound
	}
	if err != nil {
		return false, err
	}
	return test.UserID == userID, nil
}

func (r *PracticeTestRepository) InsertResultAndHistory(result *model.PracticeTestResult, histories []model.PracticeTestHistory) (string, error) {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(result).Error; err != nil {
			return err
		}
		if len(histories) > 0 {
			if err := tx.Create(&histories).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return result.ID, nil
}

func (r *PracticeTestRepository) ListResultsForUser(userID string) ([]ResultWithTest, error) {
	type row struct {
		model.PracticeTestResult
		TestName        string `gorm:"column:test_name"`
		TestUserID      string `gorm:"column:test_user_id"`
		AuthorUsername  string `gorm:"column:author_username"`
		AuthorAvatarURL string `gorm:"column:author_avatar_url"`
	}

	var rows []row
	err := r.DB.Table("practice_test_results r").
		Select("r.*, t.name as test_name, t.user_id as test_user_id, u.username as author_username, u.avatar_url as author_avatar_url").
		Joins("JOIN practice_tests t ON t.id = r.practice_test_id").
		Joins("JOIN users u ON u.id = t.user_id").
		Where("r.user_id = ?", userID).
		Order("r.created_at desc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]ResultWithTest, len(rows))
	for i, row := range rows {
		out[i] = ResultWithTest{
			Result: row.PracticeTestResult,
			Test: TestSummary{
				PracticeTestID:  row.PracticeTestID,
				Name:            row.TestName,
				UserID:          row.TestUserID,
				AuthorUsername:  row.AuthorUsername,
				AuthorAvatarURL: row.AuthorAvatarURL,
			},
		}
	}
	return out, nil
}

func (r *PracticeTestRepository) LoadResultWithHistory(resultID string) (*ResultDetailRows, error) {
	var result model.PracticeTestResult
	err := r.DB.Take(&result, "id = ?", resultID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrResultNotFound
	}
	if err != nil {
		return nil, err
	}

	summary, err := r.GetTestSummaryByID(result.PracticeTestID)
	if err != nil {
		return nil, err
	}

	var histories []model.PracticeTestHistory
	err = r.DB.Where("result_id = ?", resultID).Order("id asc").Find(&histories).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(histories))
	questionIDs := make([]string, 0, len(histories))
	for _, h := range histories {
		if !seen[h.QuestionID] {
			seen[h.QuestionID] = true
			questionIDs = append(questionIDs, h.QuestionID)
		}
	}

	questions, err := r.LoadQuestionsWithOptions(questionIDs)
	if err != nil {
		return nil, err
	}

	return &ResultDetailRows{
		Result:    result,
		Test:      *summary,
		Histories: histories,
		Questions: questions,
	}, nil
}

// SearchByKeyword pages through matching tests with an id cursor, newest id
// block first. UUIDv7 ids sort by creation time, so the cursor is stable.
func (r *PracticeTestRepository) SearchByKeyword(keyword, cursorID string) ([]TestSummary, error) {
	query := r.DB.Table("practice_tests t").
		Select("t.id as practice_test_id, t.name, t.user_id, u.username as author_username, u.avatar_url as author_avatar_url").
		Joins("JOIN users u ON u.id = t.user_id").
		Where("t.name LIKE ?", "%"+keyword+"%")

	if cursorID != "" {
		query = query.Where("t.id < ?", cursorID)
	}

	var results []TestSummary
	err := query.Order("t.id desc").Limit(12).Scan(&results).Error
	return results, err
}

func (r *PracticeTestRepository) RandomSummaries(limit int) ([]TestSummary, error) {
	var results []TestSummary
	err := r.DB.Table("practice_tests t").
		Select("t.id as practice_test_id, t.name, t.user_id, u.username as author_username, u.avatar_url as author_avatar_url").
		Joins("JOIN users u ON u.id = t.user_id").
		Order("RAND()").
		Limit(limit).
		Scan(&results).Error
	return results, err
}
