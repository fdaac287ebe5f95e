package controller

import (
	"time"

	"studyset_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

// @Summary Service health probe
// @Tags health
// @Produce json
// @Success 200 {object} util.Response
// @Router /health [get]
func (c *HealthController) Check(ctx *gin.Context) {
	status := "ok"
	if sqlDB, err := c.DB.DB(); err != nil || sqlDB.Ping() != nil {
		status = "degraded"
	}

	util.Success(ctx, gin.H{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
