package service

import (
	"fmt"
	"strings"

	"studyset_backend/internal/model"
	"studyset_backend/internal/repository"
	"studyset_backend/internal/util"
)

// CourseStore mirrors PracticeTestStore for the flashcard aggregate, one
// level shallower. Implemented by repository.CourseRepository.
type CourseStore interface {
	GetSummaryByID(courseID string) (*repository.CourseSummary, error)
	LoadCards(courseID string) ([]model.CourseCard, error)
	CreateAggregate(course *model.Course, cards []model.CourseCard) error
	ApplyDiff(courseID string, renameTo *string, newCards []model.CourseCard, updatedCards []model.CourseCard) error
	DeleteCards(courseID string, cardIDs []string) (bool, error)
	DeleteCourse(courseID string) (bool, error)
	IsOwner(userID, courseID string) (bool, error)
}

type CourseService struct {
	Store CourseStore
}

func NewCourseService(store CourseStore) *CourseService {
	return &CourseService{Store: store}
}

type NewCardReq struct {
	Term       string `json:"term" binding:"required"`
	Definition string `json:"definition" binding:"required"`
}

type CreateCourseReq struct {
	Name  string       `json:"courseName" binding:"required"`
	Cards []NewCardReq `json:"cards"`
}

// UpdateCardReq without a CardID appends a new card; with one it edits the
// existing card in place.
type UpdateCardReq struct {
	CardID     string  `json:"cardId"`
	Term       *string `json:"term"`
	Definition *string `json:"definition"`
}

type UpdateCourseReq struct {
	Name  *string         `json:"courseName"`
	Cards []UpdateCardReq `json:"cards"`
}

type CourseDetail struct {
	BaseInfo repository.CourseSummary `json:"baseInfo"`
	Cards    []model.CourseCard       `json:"cards"`
}

func (s *CourseService) assertOwner(userID, courseID string) error {
	owner, err := s.Store.IsOwner(userID, courseID)
	if err != nil {
		return err
	}
	if !owner {
		return util.ErrNotAllowedForCourse
	}
	return nil
}

func (s *CourseService) CreateCourse(ownerID string, req CreateCourseReq) (string, error) {
	course, err := model.NewCourse(ownerID, req.Name)
	if err != nil {
		return "", err
	}

	var cards []model.CourseCard
	for _, cardReq := range req.Cards {
		card, err := model.NewCourseCard(course.ID, cardReq.Term, cardReq.Definition)
		if err != nil {
			return "", err
		}
		cards = append(cards, *card)
	}

	if err := s.Store.CreateAggregate(course, cards); err != nil {
		return "", fmt.Errorf("create course: %w", err)
	}
	return course.ID, nil
}

// UpdateCourse applies the same reconcile scheme as the practice test
// engine: id-less card specs append, id-carrying specs edit in place, an
// unknown id aborts the whole update.
func (s *CourseService) UpdateCourse(callerID, courseID string, req UpdateCourseReq) error {
	if err := s.assertOwner(callerID, courseID); err != nil {
		return err
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return fmt.Errorf("%w: course name must not be empty", util.ErrValidation)
	}

	var newCards, updatedCards []model.CourseCard
	var updateBucket []UpdateCardReq
	for _, cardReq := range req.Cards {
		if cardReq.CardID == "" {
			term, definition := "", ""
			if cardReq.Term != nil {
				term = *cardReq.Term
			}
			if cardReq.Definition != nil {
				definition = *cardReq.Definition
			}
			card, err := model.NewCourseCard(courseID, term, definition)
			if err != nil {
				return err
			}
			newCards = append(newCards, *card)
		} else {
			updateBucket = append(updateBucket, cardReq)
		}
	}

	if len(updateBucket) > 0 {
		existingCards, err := s.Store.LoadCards(courseID)
		if err != nil {
			return fmt.Errorf("load cards for update: %w", err)
		}
		existing := make(map[string]*model.CourseCard, len(existingCards))
		for i := range existingCards {
			existing[existingCards[i].ID] = &existingCards[i]
		}

		for _, cardReq := range updateBucket {
			card, ok := existing[cardReq.CardID]
			if !ok {
				return util.ErrCardNotFound
			}
			if err := card.Change(cardReq.Term, cardReq.Definition); err != nil {
				return err
			}
			updatedCards = append(updatedCards, *card)
		}
	}

	if err := s.Store.ApplyDiff(courseID, req.Name, newCards, updatedCards); err != nil {
		return fmt.Errorf("apply course update: %w", err)
	}
	return nil
}

func (s *CourseService) GetCourseDetail(courseID string) (*CourseDetail, error) {
	summary, err := s.Store.GetSummaryByID(courseID)
	if err != nil {
		return nil, err
	}

	cards, err := s.Store.LoadCards(courseID)
	if err != nil {
		return nil, err
	}

	return &CourseDetail{
		BaseInfo: *summary,
		Cards:    cards,
	}, nil
}

func (s *CourseService) DeleteCards(callerID, courseID string, cardIDs []string) (bool, error) {
	if err := s.assertOwner(callerID, courseID); err != nil {
		return false, err
	}
	return s.Store.DeleteCards(courseID, cardIDs)
}

func (s *CourseService) DeleteCourse(callerID, courseID string) (bool, error) {
	if err := s.assertOwner(callerID, courseID); err != nil {
		return false, err
	}
	return s.Store.DeleteCourse(courseID)
}
