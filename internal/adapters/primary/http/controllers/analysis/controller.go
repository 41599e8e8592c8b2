package analysisController

import (
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bilgisen/natal/internal/domain"
	astroUsecase "github.com/bilgisen/natal/internal/usecases/astro"
)

type AnalysisController struct {
	astroService *astroUsecase.Service
	log          *slog.Logger
}

func New(astroService *astroUsecase.Service, log *slog.Logger) *AnalysisController {
	return &AnalysisController{
		astroService: astroService,
		log:          log,
	}
}

func (c *AnalysisController) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/profiles/:profileId/analysis", c.getAnalysis)
	r.POST("/api/profiles/:profileId/analysis", c.storeAnalysis)
	r.POST("/api/cache/invalidate-astro-analysis", c.invalidateAnalysis)
}

// getAnalysis возвращает разбор карты: из кэша либо с генерацией
func (c *AnalysisController) getAnalysis(ctx *gin.Context) {
	profileID, err := uuid.Parse(ctx.Param("profileId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile id"})
		return
	}

	detailLevel := domain.DetailLevel(ctx.DefaultQuery("detailLevel", string(domain.DetailLevelBasic)))

	text, cached, err := c.astroService.GetAnalysis(ctx.Request.Context(), profileID, detailLevel)
	if err != nil {
		if domain.IsValidationError(err) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.log.Error("failed to get analysis",
			"error", err,
			"profile_id", profileID,
			"detail_level", detailLevel,
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"analysis": text,
		"cached":   cached,
	})
}

// storeAnalysisRequest - тело запроса на запись разбора в кэш
type storeAnalysisRequest struct {
	DetailLevel string `json:"detail_level" binding:"required"`
	Text        string `json:"text" binding:"required"`
}

// storeAnalysis пишет готовый разбор в кэш
func (c *AnalysisController) storeAnalysis(ctx *gin.Context) {
	profileID, err := uuid.Parse(ctx.Param("profileId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile id"})
		return
	}

	var req storeAnalysisRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	detailLevel := domain.DetailLevel(req.DetailLevel)
	if !detailLevel.IsValid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "unknown detail level"})
		return
	}

	c.astroService.StoreAnalysis(ctx.Request.Context(), profileID, detailLevel, req.Text)

	ctx.JSON(http.StatusOK, gin.H{"status": "stored"})
}

// invalidateAnalysisRequest - тело запроса на инвалидацию разборов
type invalidateAnalysisRequest struct {
	ProfileID string `json:"profileId" binding:"required"`
}

// invalidateAnalysis удаляет закэшированные разборы профиля.
// Вызывается при изменении данных рождения.
func (c *AnalysisController) invalidateAnalysis(ctx *gin.Context) {
	var req invalidateAnalysisRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profileID, err := uuid.Parse(req.ProfileID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile id"})
		return
	}

	c.astroService.InvalidateAnalysis(ctx.Request.Context(), profileID)

	ctx.JSON(http.StatusOK, gin.H{"status": "invalidated"})
}
