package equipment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
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

// SearchBrands godoc
// @Summary      Club brand search
// @Tags         bookings
// @Produce      json
// @Param        query  query     string  false  "Substring to match"
// @Success      200    {object}  BrandsResponse
// @Failure      500    {object}  api.ErrorResponse
// @Router       /api/bookings/club-brands [get]
func (h *Handler) SearchBrands(c *gin.Context) {
	query := c.Query("query")

	brands, err := h.repo.SearchBrands(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search brands"})
		return
	}

	if brands == nil {
		brands = []string{}
	}
	c.JSON(http.StatusOK, BrandsResponse{Brands: brands})
}

// GetOptions godoc
// @Summary      Loft and shaft options
// @Description  Choices shown once a club brand is entered.
// @Tags         bookings
// @Produce      json
// @Success      200  {object}  OptionsResponse
// @Router       /api/bookings/club-options [get]
func (h *Handler) GetOptions(c *gin.Context) {
	c.JSON(http.StatusOK, OptionsResponse{Lofts: LoftOptions, Shafts: ShaftOptions})
}
