package controller

import (
	"errors"
	"net/http"

	"studyset_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondError translates service-level sentinel errors into HTTP responses.
// Anything unrecognized is a store or transaction failure: logged, answered
// with a generic 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrValidation):
		util.BadRequest(c, err.Error())
	case errors.Is(err, util.ErrEmailRegistered):
		util.Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, util.ErrInvalidCredentials),
		errors.Is(err, util.ErrRefreshTokenInvalid):
		util.Unauthorized(c)
	case errors.Is(err, util.ErrNotAllowed),
		errors.Is(err, util.ErrNotAllowedForCourse),
		errors.Is(err, util.ErrNotAllowedForResult),
		errors.Is(err, util.ErrAccountLocked),
		errors.Is(err, util.ErrAdminRequired):
		util.Forbidden(c)
	case errors.Is(err, util.ErrTestNotFound),
		errors.Is(err, util.ErrQuestionNotFound),
		errors.Is(err, util.ErrOptionNotFound),
		errors.Is(err, util.ErrResultNotFound),
		errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrCardNotFound),
		errors.Is(err, util.ErrUserNotFound):
		util.NotFound(c, err.Error())
	default:
		util.LogInternalError(c, err)
	}
}
