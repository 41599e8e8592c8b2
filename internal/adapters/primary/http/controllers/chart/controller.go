package chartController

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bilgisen/natal/internal/domain"
	astroUsecase "github.com/bilgisen/natal/internal/usecases/astro"
)

type ChartController struct {
	astroService *astroUsecase.Service
	log          *slog.Logger
}

func New(astroService *astroUsecase.Service, log *slog.Logger) *ChartController {
	return &ChartController{
		astroService: astroService,
		log:          log,
	}
}

func (c *ChartController) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/profiles/:profileId/chart", c.createChart)
	r.GET("/api/profiles/:profileId/chart", c.getChart)
}

// createChartRequest - тело запроса на расчёт натальной карты
type createChartRequest struct {
	Name         string  `json:"name" binding:"required"`
	BirthDate    string  `json:"birth_date" binding:"required"` // YYYY-MM-DD
	BirthTime    string  `json:"birth_time" binding:"required"` // HH:MM
	City         string  `json:"city" binding:"required"`
	Country      string  `json:"country" binding:"required"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Timezone     string  `json:"timezone"`
	UserID       string  `json:"user_id" binding:"required"`
	BirthPlaceID string  `json:"birth_place_id"`
}

// createChart рассчитывает и сохраняет натальную карту профиля
func (c *ChartController) createChart(ctx *gin.Context) {
	profileID, err := uuid.Parse(ctx.Param("profileId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile id"})
		return
	}

	var req createChartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid birth_date, expected YYYY-MM-DD"})
		return
	}

	subject := domain.BirthSubject{
		Name:      req.Name,
		BirthDate: birthDate,
		BirthTime: req.BirthTime,
		City:      req.City,
		Country:   req.Country,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Timezone:  req.Timezone,
	}

	result, err := c.astroService.CreateNormalizedNatalChart(ctx.Request.Context(), subject, req.UserID, req.BirthPlaceID, profileID)
	if err != nil {
		status := statusForError(err)
		if status >= 500 {
			c.log.Error("failed to create natal chart",
				"error", err,
				"profile_id", profileID,
			)
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"chart_id":   result.ChartID,
		"chart_data": result.Canonical,
	})
}

// getChart отдаёт последнюю рассчитанную карту профиля
func (c *ChartController) getChart(ctx *gin.Context) {
	profileID, err := uuid.Parse(ctx.Param("profileId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile id"})
		return
	}

	details, err := c.astroService.GetNatalChart(ctx.Request.Context(), profileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "natal chart not found"})
			return
		}
		c.log.Error("failed to get natal chart",
			"error", err,
			"profile_id", profileID,
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, details)
}

// statusForError переводит доменную ошибку в HTTP-статус
func statusForError(err error) int {
	switch {
	case domain.IsValidationError(err):
		return http.StatusBadRequest
	case domain.IsUpstreamDataError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
