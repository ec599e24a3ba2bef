package controllers

import (
	"net/http"
	"strconv"

	"webstar/terra-qualifier-worker/internal/dto"
	"webstar/terra-qualifier-worker/internal/handlers"

	"github.com/gin-gonic/gin"
)

// QualificationController exposes the archived qualification records
type QualificationController struct {
	supabase *handlers.SupabaseHandler // may be nil when archiving is disabled
}

// NewQualificationController creates a new QualificationController instance
func NewQualificationController(supabase *handlers.SupabaseHandler) *QualificationController {
	return &QualificationController{
		supabase: supabase,
	}
}

// GetQualifications godoc
// @Summary      List archived qualification records
// @Description  Returns qualification records archived in Supabase, optionally filtered to qualified leads only
// @Tags         qualifications
// @Produce      json
// @Param        qualified_only query bool false "Return only qualified leads"
// @Success      200 {array} map[string]interface{} "Archived qualification records"
// @Failure      503 {object} dto.ErrorResponse "Archiving is not configured"
// @Router       /qualifications [get]
func (ctrl *QualificationController) GetQualifications(c *gin.Context) {
	if ctrl.supabase == nil {
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Error: "Qualification archive is not configured",
		})
		return
	}

	qualifiedOnly, _ := strconv.ParseBool(c.Query("qualified_only"))

	records, err := ctrl.supabase.GetQualifications(qualifiedOnly)
	if err != nil {
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{
			Error: "Failed to query qualification archive",
		})
		return
	}

	c.JSON(http.StatusOK, records)
}
