package handlers

import (
	"net/http"

	"solar-saver/internal/api/models"

	"github.com/gin-gonic/gin"
)

// RegionHandler lists the Agile tariff regions
type RegionHandler struct{}

// NewRegionHandler creates a new region handler
func NewRegionHandler() *RegionHandler {
	return &RegionHandler{}
}

// ListRegions handles GET /api/v1/regions
func (h *RegionHandler) ListRegions(c *gin.Context) {
	regions := []models.RegionInfo{
		{Letter: "A", Name: "Eastern England"},
		{Letter: "B", Name: "East Midlands"},
		{Letter: "C", Name: "London"},
		{Letter: "D", Name: "Merseyside and Northern Wales"},
		{Letter: "E", Name: "West Midlands"},
		{Letter: "F", Name: "North Eastern England"},
		{Letter: "G", Name: "North Western England"},
		{Letter: "H", Name: "Southern England"},
		{Letter: "J", Name: "South Eastern England"},
		{Letter: "K", Name: "Southern Wales"},
		{Letter: "L", Name: "South Western England"},
		{Letter: "M", Name: "Yorkshire"},
		{Letter: "N", Name: "Southern Scotland"},
		{Letter: "P", Name: "Northern Scotland"},
	}
	c.JSON(http.StatusOK, gin.H{"regions": regions})
}
