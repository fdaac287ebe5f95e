package util

import "errors"

var (
	ErrValidation          = errors.New("invalid input")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserNotFound        = errors.New("user not found")
	ErrTestNotFound        = errors.New("practice test not found")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrOptionNotFound      = errors.New("answer option not found")
	ErrResultNotFound      = errors.New("result not found")
	ErrCourseNotFound      = errors.New("course not found")
	ErrCardNotFound        = errors.New("course card not found")
	ErrNotAllowed          = errors.New("not the owner of this practice test")
	ErrNotAllowedForCourse = errors.New("not the owner of this course")
	ErrNotAllowedForResult = errors.New("not the owner of this result")
	ErrRefreshTokenInvalid = errors.New("refresh token invalid or expired")
	ErrAccountLocked       = errors.New("account is locked")
	ErrAdminRequired       = errors.New("administrator role required")
)
