package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"autovest/internal/domain"
	"autovest/internal/service"
)

const maxQueryLength = 2000

// Advisor responde una consulta. Lo implementa service.AdvisorService.
type Advisor interface {
	Answer(ctx context.Context, query string) domain.ResponseBundle
}

// QueryLister lista consultas recientes. Lo implementa service.QueryLogService.
type QueryLister interface {
	ListRecent(ctx context.Context, limit int) ([]domain.QueryLog, error)
}

// QueryHandler expone el asesor por HTTP.
type QueryHandler struct {
	logger  *zap.Logger
	advisor Advisor
	logs    QueryLister
}

// NewQueryHandler crea el handler. logs puede ser nil si no hay base de datos.
func NewQueryHandler(logger *zap.Logger, advisor Advisor, logs QueryLister) *QueryHandler {
	return &QueryHandler{
		logger:  logger,
		advisor: advisor,
		logs:    logs,
	}
}

// PostQuery maneja POST /query.
func (h *QueryHandler) PostQuery(c *gin.Context) {
	var req struct {
		Query string `json:"query" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid query request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is empty"})
		return
	}
	if utf8.RuneCountInString(query) > maxQueryLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query too long"})
		return
	}

	if clientID, ok := ClientID(c); ok {
		h.logger.Debug("query from client", zap.String("client_id", clientID))
	}

	// Una consulta en medio de reintentos termina aunque el cliente corte.
	ctx := context.WithoutCancel(c.Request.Context())
	bundle := h.advisor.Answer(ctx, query)

	c.JSON(http.StatusOK, bundle)
}

// ListQueries maneja GET /queries?limit=N.
func (h *QueryHandler) ListQueries(c *gin.Context) {
	if h.logs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "query log disabled"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	entries, err := h.logs.ListRecent(c.Request.Context(), limit)
	if err != nil {
		if errors.Is(err, service.ErrQueryLogNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "query log disabled"})
			return
		}
		h.logger.Error("list queries failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list queries"})
		return
	}
	if entries == nil {
		entries = []domain.QueryLog{}
	}

	c.JSON(http.StatusOK, gin.H{"queries": entries})
}

// Health maneja GET /health.
func (h *QueryHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"query_log": h.logs != nil,
	})
}
