package booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/whalechillz/mas-win-sub012/internal/customer"
	"github.com/whalechillz/mas-win-sub012/internal/notification"
	"github.com/whalechillz/mas-win-sub012/internal/schedule"
)

type Handler struct {
	service Service
}

func NewHandler(db *sqlx.DB, loc *time.Location, notifier *notification.Service) *Handler {
	scheduleSvc := schedule.NewService(schedule.NewRepository(db), loc)
	return &Handler{
		service: NewService(NewRepository(db), scheduleSvc, customer.NewRepository(db), notifier),
	}
}

func NewHandlerWithService(service Service) *Handler {
	return &Handler{service: service}
}

// Create godoc
// @Summary      Create booking
// @Description  Books a fitting session. The server re-validates the date
// @Description  window and time availability before inserting.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        request  body      CreateBookingRequest  true  "Booking"
// @Success      201      {object}  CreateBookingResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /api/bookings [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrDateOutsideWindow), errors.Is(err, ErrDateRestricted), errors.Is(err, ErrTimeUnavailable):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrSlotTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create booking"})
		}
		return
	}

	c.JSON(http.StatusCreated, CreateBookingResponse{
		ID:   booking.PublicID,
		Date: booking.Date,
		Time: booking.Time,
	})
}

// Get godoc
// @Summary      Booking details
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  Booking
// @Failure      404  {object}  api.ErrorResponse
// @Router       /admin/bookings/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	booking, err := h.service.GetByPublicID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}

	c.JSON(http.StatusOK, booking)
}

// ListByDate godoc
// @Summary      Bookings for a date
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        date  query     string  true  "Date (YYYY-MM-DD)"
// @Success      200   {array}   Booking
// @Failure      400   {object}  api.ErrorResponse
// @Failure      500   {object}  api.ErrorResponse
// @Router       /admin/bookings [get]
func (h *Handler) ListByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query param is required"})
		return
	}

	bookings, err := h.service.ListByDate(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// Cancel godoc
// @Summary      Cancel booking
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      400  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /admin/bookings/{id}/cancel [post]
func (h *Handler) Cancel(c *gin.Context) {
	err := h.service.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		case errors.Is(err, ErrBookingNotFoundOrAlreadyCancelled):
			c.JSON(http.StatusBadRequest, gin.H{"error": "booking not found or already cancelled"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel booking"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled"})
}
