package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/utils"
)

type HealthHandler struct {
	db *sqlx.DB
}

func NewHealthHandler(db *sqlx.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check reports service health including database reachability.
func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		utils.Error(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database is not reachable")
		return
	}
	utils.Success(c, http.StatusOK, "OK", gin.H{"status": "healthy"})
}
