package horoscopeController

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/bilgisen/natal/internal/ports/service"
	astroUsecase "github.com/bilgisen/natal/internal/usecases/astro"
)

type HoroscopeController struct {
	astroService    *astroUsecase.Service
	timezoneService service.ITimezoneService
	log             *slog.Logger
}

func New(astroService *astroUsecase.Service, timezoneService service.ITimezoneService, log *slog.Logger) *HoroscopeController {
	return &HoroscopeController{
		astroService:    astroService,
		timezoneService: timezoneService,
		log:             log,
	}
}

func (c *HoroscopeController) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/daily-horoscope", c.dailyHoroscope)
	r.GET("/api/current-transits", c.currentTransits)
	r.GET("/api/timezone", c.timezone)
}

// dailyHoroscope возвращает дневной гороскоп
func (c *HoroscopeController) dailyHoroscope(ctx *gin.Context) {
	text, cached, err := c.astroService.GetDailyHoroscope(ctx.Request.Context())
	if err != nil {
		c.log.Error("failed to get daily horoscope", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"horoscope": text,
		"cached":    cached,
	})
}

// currentTransits возвращает текущие позиции планет
func (c *HoroscopeController) currentTransits(ctx *gin.Context) {
	transits, err := c.astroService.GetCurrentTransits(ctx.Request.Context())
	if err != nil {
		c.log.Error("failed to get current transits", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"transits": json.RawMessage(transits),
	})
}

// timezone разрешает координаты в таймзону
func (c *HoroscopeController) timezone(ctx *gin.Context) {
	lat, err := strconv.ParseFloat(ctx.Query("lat"), 64)
	if err != nil || lat < -90 || lat > 90 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid lat"})
		return
	}

	lng, err := strconv.ParseFloat(ctx.Query("lng"), 64)
	if err != nil || lng < -180 || lng > 180 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid lng"})
		return
	}

	timestamp := time.Now().Unix()
	if rawTs := ctx.Query("timestamp"); rawTs != "" {
		timestamp, err = strconv.ParseInt(rawTs, 10, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid timestamp"})
			return
		}
	}

	entry, err := c.timezoneService.Resolve(ctx.Request.Context(), lat, lng, timestamp)
	if err != nil {
		c.log.Warn("timezone lookup failed, falling back to UTC",
			"error", err,
			"lat", lat,
			"lng", lng,
		)
		ctx.JSON(http.StatusOK, gin.H{"timezone_id": "UTC", "fallback": true})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"timezone_id":   entry.TimezoneID,
		"timezone_name": entry.TimezoneName,
		"raw_offset":    entry.RawOffset,
		"dst_offset":    entry.DSTOffset,
	})
}
