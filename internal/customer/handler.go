package customer

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/whalechillz/mas-win-sub012/internal/metrics"
)

type Handler struct {
	repo Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{repo: NewRepository(db)}
}

func NewHandlerWithRepo(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// Lookup godoc
// @Summary      Customer lookup by phone
// @Description  Returns the customer profile with segment-derived messaging,
// @Description  or customer=null when the phone is unknown.
// @Tags         bookings
// @Produce      json
// @Param        phone  path      string  true  "Phone number, any formatting"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  api.ErrorResponse
// @Failure      500    {object}  api.ErrorResponse
// @Router       /api/bookings/customer/{phone} [get]
func (h *Handler) Lookup(c *gin.Context) {
	phone := NormalizePhone(c.Param("phone"))
	if len(phone) < MinLookupDigits {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone number too short"})
		return
	}

	profile, err := h.repo.FindByPhone(c.Request.Context(), phone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up customer"})
		return
	}

	metrics.RecordCustomerLookup(profile != nil)

	segment := DetectSegment(profile)
	c.JSON(http.StatusOK, gin.H{
		"customer":   profile,
		"segment":    segment,
		"content":    SegmentContent(segment),
		"ui_options": SegmentUIOptions(segment),
	})
}
