package schedule

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	service Service
	loc     *time.Location
}

func NewHandler(db *sqlx.DB, loc *time.Location) *Handler {
	return &Handler{
		service: NewService(NewRepository(db), loc),
		loc:     loc,
	}
}

func NewHandlerWithService(service Service, loc *time.Location) *Handler {
	return &Handler{service: service, loc: loc}
}

type settingsResponse struct {
	Settings
	MinDate string `json:"min_date"`
	MaxDate string `json:"max_date"`
}

// GetSettings godoc
// @Summary      Booking policy
// @Description  Returns the booking policy plus the computed selectable date window.
// @Tags         bookings
// @Produce      json
// @Success      200  {object}  settingsResponse
// @Router       /api/bookings/settings [get]
func (h *Handler) GetSettings(c *gin.Context) {
	window, settings := h.service.Window(c.Request.Context())
	c.JSON(http.StatusOK, settingsResponse{
		Settings: settings,
		MinDate:  window.MinDate,
		MaxDate:  window.MaxDate,
	})
}

// GetAvailable godoc
// @Summary      Day availability
// @Description  Returns the time-bucket partition for a date. With auto_advance=true
// @Description  an empty unrestricted date is silently advanced to the next open one.
// @Tags         bookings
// @Produce      json
// @Param        date          query     string  true   "Date (YYYY-MM-DD)"
// @Param        duration      query     int     false  "Session duration in minutes"  default(60)
// @Param        auto_advance  query     bool    false  "Advance to next open date when empty"
// @Success      200  {object}  DayAvailability
// @Failure      400  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /api/bookings/available [get]
func (h *Handler) GetAvailable(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query param is required"})
		return
	}
	if _, err := time.ParseInLocation(DateLayout, date, h.loc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, use YYYY-MM-DD"})
		return
	}

	duration, err := strconv.Atoi(c.DefaultQuery("duration", "60"))
	if err != nil || duration <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid duration"})
		return
	}

	autoAdvance := c.Query("auto_advance") == "true"

	day, _, err := h.service.Resolve(c.Request.Context(), date, duration, autoAdvance)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load availability"})
		return
	}

	c.JSON(http.StatusOK, day)
}

type nextAvailableResponse struct {
	Date          *string `json:"date"`
	FormattedDate *string `json:"formatted_date"`
}

// GetNextAvailable godoc
// @Summary      Next open date
// @Description  Returns the first date at or after from_date that has openings.
// @Tags         bookings
// @Produce      json
// @Param        from_date  query     string  false  "Search start date (YYYY-MM-DD)"
// @Param        duration   query     int     false  "Session duration in minutes"  default(60)
// @Param        _t         query     string  false  "Cache-bust token, ignored"
// @Success      200  {object}  nextAvailableResponse
// @Failure      404  {object}  nextAvailableResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /api/bookings/next-available [get]
func (h *Handler) GetNextAvailable(c *gin.Context) {
	fromDate := c.Query("from_date")
	if fromDate != "" {
		if _, err := time.ParseInLocation(DateLayout, fromDate, h.loc); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from_date format, use YYYY-MM-DD"})
			return
		}
	}

	duration, err := strconv.Atoi(c.DefaultQuery("duration", "60"))
	if err != nil || duration <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid duration"})
		return
	}

	date, err := h.service.Next(c.Request.Context(), fromDate, duration)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search availability"})
		return
	}

	if date == "" {
		c.JSON(http.StatusNotFound, nextAvailableResponse{})
		return
	}

	formatted := FormatKoreanDate(date, h.loc)
	c.JSON(http.StatusOK, nextAvailableResponse{Date: &date, FormattedDate: &formatted})
}

// UpdateSettings godoc
// @Summary      Update booking policy
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      UpdateSettingsRequest  true  "Fields to change"
// @Success      200      {object}  Settings
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/settings [put]
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.service.UpdateSettings(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// SetRestriction godoc
// @Summary      Close a date for booking
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      RestrictionRequest  true  "Restriction"
// @Success      200      {object}  api.MessageResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/restrictions [post]
func (h *Handler) SetRestriction(c *gin.Context) {
	var req RestrictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := time.ParseInLocation(DateLayout, req.Date, h.loc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, use YYYY-MM-DD"})
		return
	}

	if err := h.service.SetRestriction(c.Request.Context(), req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set restriction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "restriction saved"})
}

// ClearRestriction godoc
// @Summary      Reopen a closed date
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        date  path      string  true  "Date (YYYY-MM-DD)"
// @Success      200   {object}  api.MessageResponse
// @Failure      404   {object}  api.ErrorResponse
// @Failure      500   {object}  api.ErrorResponse
// @Router       /admin/restrictions/{date} [delete]
func (h *Handler) ClearRestriction(c *gin.Context) {
	date := c.Param("date")

	err := h.service.ClearRestriction(c.Request.Context(), date)
	if err == ErrRestrictionNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "restriction not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear restriction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "restriction cleared"})
}

// BlockTime godoc
// @Summary      Block a single time bucket
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      BlockTimeRequest  true  "Bucket to block"
// @Success      200      {object}  api.MessageResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/blocked-times [post]
func (h *Handler) BlockTime(c *gin.Context) {
	var req BlockTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.BlockTime(c.Request.Context(), req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to block time"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "time blocked"})
}

// UnblockTime godoc
// @Summary      Unblock a time bucket
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        date  query     string  true  "Date (YYYY-MM-DD)"
// @Param        time  query     string  true  "Time (HH:MM)"
// @Success      200   {object}  api.MessageResponse
// @Failure      400   {object}  api.ErrorResponse
// @Failure      500   {object}  api.ErrorResponse
// @Router       /admin/blocked-times [delete]
func (h *Handler) UnblockTime(c *gin.Context) {
	date := c.Query("date")
	timeOfDay := c.Query("time")
	if date == "" || timeOfDay == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date and time query params are required"})
		return
	}

	if err := h.service.UnblockTime(c.Request.Context(), date, timeOfDay); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unblock time"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "time unblocked"})
}
