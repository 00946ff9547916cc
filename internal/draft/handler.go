package draft

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/whalechillz/mas-win-sub012/internal/booking"
	"github.com/whalechillz/mas-win-sub012/internal/schedule"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Create godoc
// @Summary      Start a booking draft
// @Tags         drafts
// @Produce      json
// @Success      201  {object}  DraftResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /api/drafts [post]
func (h *Handler) Create(c *gin.Context) {
	d, err := h.service.Create(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create draft"})
		return
	}
	c.JSON(http.StatusCreated, DraftResponse{Draft: d, Completion: Completion(d)})
}

// Get godoc
// @Summary      Draft state
// @Tags         drafts
// @Produce      json
// @Param        id   path      string  true  "Draft ID"
// @Success      200  {object}  DraftResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /api/drafts/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	d, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrDraftNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, DraftResponse{Draft: d, Completion: Completion(d)})
}

// Update godoc
// @Summary      Update draft fields
// @Description  Partial form update. The request must carry the draft version
// @Description  it was based on; a stale version is rejected with 409.
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        id       path      string              true  "Draft ID"
// @Param        request  body      UpdateDraftRequest  true  "Changes"
// @Success      200      {object}  DraftResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /api/drafts/{id} [patch]
func (h *Handler) Update(c *gin.Context) {
	var req UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrDraftNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrStaleDraft):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, ErrNamePhoneRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update draft"})
		}
		return
	}

	c.JSON(http.StatusOK, DraftResponse{Draft: d, Completion: Completion(d)})
}

// SelectSlot godoc
// @Summary      Pick a time slot
// @Description  Places a short hold on the slot so it shows as reserved to
// @Description  other customers while this draft finishes.
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        id       path      string             true  "Draft ID"
// @Param        request  body      SelectSlotRequest  true  "Slot"
// @Success      200      {object}  DraftResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /api/drafts/{id}/slot [put]
func (h *Handler) SelectSlot(c *gin.Context) {
	var req SelectSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := h.service.SelectSlot(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrDraftNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrStaleDraft):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, schedule.ErrSlotUnavailable):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to select slot"})
		}
		return
	}

	c.JSON(http.StatusOK, DraftResponse{Draft: d, Completion: Completion(d)})
}

// Submit godoc
// @Summary      Submit draft as a booking
// @Tags         drafts
// @Produce      json
// @Param        id   path      string  true  "Draft ID"
// @Success      201  {object}  booking.CreateBookingResponse
// @Failure      400  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Failure      409  {object}  api.ErrorResponse
// @Router       /api/drafts/{id}/submit [post]
func (h *Handler) Submit(c *gin.Context) {
	created, err := h.service.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrDraftNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrNamePhoneRequired), errors.Is(err, ErrNoSlotSelected):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrSlotTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrDateOutsideWindow), errors.Is(err, booking.ErrDateRestricted), errors.Is(err, booking.ErrTimeUnavailable):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit draft"})
		}
		return
	}

	c.JSON(http.StatusCreated, booking.CreateBookingResponse{
		ID:   created.PublicID,
		Date: created.Date,
		Time: created.Time,
	})
}
