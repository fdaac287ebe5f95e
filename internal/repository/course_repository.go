package repository

import (
	"errors"

	"studyset_backend/internal/model"
	"studyset_backend/internal/util"

	"gorm.io/gorm"
)

// CourseSummary is the course header joined with its author.
type CourseSummary struct {
	CourseID        string `gorm:"column:course_id" json:"courseId"`
	Name            string `gorm:"column:name" json:"courseName"`
	UserID          string `gorm:"column:user_id" json:"userId"`
	AuthorUsername  string `gorm:"column:author_username" json:"authorUsername"`
	AuthorAvatarURL string `gorm:"column:author_avatar_url" json:"authorAvatarUrl"`
}

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) GetSummaryByID(courseID string) (*CourseSummary, error) {
	var summary CourseSummary
	err := r.DB.Table("courses c").
		Select("c.id as course_id, c.name, c.user_id, u.username as author_username, u.avatar_url as author_avatar_url").
		Joins("JOIN users u ON u.id = c.user_id").
		Where("c.id = ?", courseID).
		Take(&summary).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *CourseRepository) LoadCards(courseID string) ([]model.CourseCard, error) {
	var cards []model.CourseCard
	err := r.DB.Where("course_id = ?", courseID).Order("id asc").Find(&cards).Error
	return cards, err
}

func (r *CourseRepository) CreateAggregate(course *model.Course, cards []model.CourseCard) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Cards").Create(course).Error; err != nil {
			return err
		}
		if len(cards) > 0 {
			if err := tx.Create(&cards).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *CourseRepository) ApplyDiff(courseID string, renameTo *string, newCards []model.CourseCard, updatedCards []model.CourseCard) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if renameTo != nil {
			err := tx.Model(&model.Course{}).
				Where("id = ?", courseID).
				Update("name", *renameTo).Error
			if err != nil {
				return err
			}
		}

		if len(newCards) > 0 {
			if err := tx.Create(&newCards).Error; err != nil {
				return err
			}
		}

		for i := range updatedCards {
			card := &updatedCards[i]
			err := tx.Model(&model.CourseCard{}).
				Where("id = ? AND course_id = ?", card.ID, courseID).
				Updates(map[string]interface{}{"term": card.Term, "definition": card.Definition}).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// DeleteCards removes the given cards, skipping ids that do not belong to the
// course.
func (r *CourseRepository) DeleteCards(courseID string, cardIDs []string) (bool, error) {
	if len(cardIDs) == 0 {
		return false, nil
	}
	res := r.DB.Where("course_id = ? AND id IN ?", courseID, cardIDs).Delete(&model.CourseCard{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *CourseRepository) DeleteCourse(courseID string) (bool, error) {
	deleted := false
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", courseID).Delete(&model.CourseCard{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Course{}, "id = ?", courseID)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}

func (r *CourseRepository) IsOwner(userID, courseID string) (bool, error) {
	var course model.Course
	err := r.DB.Select("user_id").Take(&course, "id = ?", courseID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, util.ErrCourseNotFound
	}
	if err != nil {
		return false, err
	}
	return course.UserID == userID, nil
}

func (r *CourseRepository) SearchByKeyword(keyword, cursorID string) ([]CourseSummary, error) {
	query := r.DB.Table("courses c").
		Select("c.id as course_id, c.name, c.user_id, u.username as author_username, u.avatar_url as author_avatar_url").
		Joins("JOIN users u ON u.id = c.user_id").
		Where("c.name LIKE ?", "%"+keyword+"%")

	if cursorID != "" {
		query = query.Where("c.id < ?", cursorID)
	}

	var results []CourseSummary
	err := query.Order("c.id desc").Limit(12).Scan(&results).Error
	return results, err
}

func (r *CourseRepository) RandomSummaries(limit int) ([]CourseSummary, error) {
	var results []CourseSummary
	err := r.DB.Table("courses c").
		Select("c.id as course_id, c.name, c.user_id, u.username as author_username, u.avatar_url as author_avatar_url").
		Joins("JOIN users u ON u.id = c.user_id").
		Order("RAND()").
		Limit(limit).
		Scan(&results).Error
	return results, err
}
