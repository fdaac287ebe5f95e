package service

import (
	"context"
	"testing"

	"studyset_backend/internal/repository"
)

type fakeCourseSearch struct {
	summaries   []repository.CourseSummary
	lastKeyword string
	lastCursor  string
}

func (f *fakeCourseSearch) SearchByKeyword(keyword, cursorID string) ([]repository.CourseSummary, error) {
	f.lastKeyword, f.lastCursor = keyword, cursorID
	return f.summaries, nil
}

func (f *fakeCourseSearch) RandomSummaries(limit int) ([]repository.CourseSummary, error) {
	if limit < len(f.summaries) {
		return f.summaries[:limit], nil
	}
	return f.summaries, nil
}

type fakeTestSearch struct {
	summaries   []repository.TestSummary
	lastKeyword string
	lastCursor  string
}

func (f *fakeTestSearch) SearchByKeyword(keyword, cursorID string) ([]repository.TestSummary, error) {
	f.lastKeyword, f.lastCursor = keyword, cursorID
	return f.summaries, nil
}

func (f *fakeTestSearch) RandomSummaries(limit int) ([]repository.TestSummary, error) {
	if limit < len(f.summaries) {
		return f.summaries[:limit], nil
	}
	return f.summaries, nil
}

func newSearchFixture() (*fakeCourseSearch, *fakeTestSearch, *SearchService) {
	courses := &fakeCourseSearch{summaries: []repository.CourseSummary{
		{CourseID: "c1", Name: "Go for beginners"},
	}}
	tests := &fakeTestSearch{summaries: []repository.TestSummary{
		{PracticeTestID: "t1", Name: "Go quiz"},
	}}
	return courses, tests, NewSearchService(courses, tests, nil)
}

func TestSearchTypeTestExcludesCourses(t *testing.T) {
	courses, _, svc := newSearchFixture()

	result, err := svc.SearchByKeyword(context.Background(), "go", "test", "cursor-1")
	if err != nil {
		t.Fatalf("SearchByKeyword: %v", err)
	}
	if len(result.Courses) != 0 {
		t.Fatalf("type=test must not return courses, got %d course rows", len(result.Courses))
	}
	if len(result.PracticeTests) != 1 {
		t.Fatalf("type=test must return test rows, got %d", len(result.PracticeTests))
	}
	if courses.lastKeyword != "" {
		t.Error("type=test must not query the course store at all")
	}
}

func TestSearchTypeCourseExcludesTests(t *testing.T) {
	_, tests, svc := newSearchFixture()

	result, err := svc.SearchByKeyword(context.Background(), "go", "course", "")
	if err != nil {
		t.Fatalf("SearchByKeyword: %v", err)
	}
	if len(result.PracticeTests) != 0 {
		t.Fatalf("type=course must not return tests, got %d test rows", len(result.PracticeTests))
	}
	if len(result.Courses) != 1 {
		t.Fatalf("type=course must return course rows, got %d", len(result.Courses))
	}
	if tests.lastKeyword != "" {
		t.Error("type=course must not query the test store at all")
	}
}

func TestSearchCursorForwardedPerType(t *testing.T) {
	courses, tests, svc := newSearchFixture()

	if _, err := svc.SearchByKeyword(context.Background(), "go", "test", "t-cursor"); err != nil {
		t.Fatalf("SearchByKeyword: %v", err)
	}
	if tests.lastCursor != "t-cursor" {
		t.Errorf("type=test must page with the supplied cursor, got %q", tests.lastCursor)
	}

	if _, err := svc.SearchByKeyword(context.Background(), "go", "course", "c-cursor"); err != nil {
		t.Fatalf("SearchByKeyword: %v", err)
	}
	if courses.lastCursor != "c-cursor" {
		t.Errorf("type=course must page with the supplied cursor, got %q", courses.lastCursor)
	}
}

func TestSearchTypeAllIgnoresCursor(t *testing.T) {
	courses, tests, svc := newSearchFixture()

	result, err := svc.SearchByKeyword(context.Background(), "go", "all", "some-cursor")
	if err != nil {
		t.Fatalf("SearchByKeyword: %v", err)
	}
	if len(result.Courses) != 1 || len(result.PracticeTests) != 1 {
		t.Fatalf("type=all must return both sets, got %d courses / %d tests",
			len(result.Courses), len(result.PracticeTests))
	}
	if courses.lastCursor != "" || tests.lastCursor != "" {
		t.Error("type=all cannot address two result sets with one cursor")
	}
}
