package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"solar-saver/internal/api/models"
	"solar-saver/internal/config"

	"github.com/gin-gonic/gin"
)

// BatteryHandler serves battery preset files
type BatteryHandler struct {
	batteryDir string
}

// NewBatteryHandler creates a new battery handler. The preset directory
// defaults to ./examples/batteries and can be overridden with BATTERY_DIR.
func NewBatteryHandler() *BatteryHandler {
	dir := os.Getenv("BATTERY_DIR")
	if dir == "" {
		dir = "./examples/batteries"
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return &BatteryHandler{batteryDir: dir}
}

// ListBatteries handles GET /api/v1/batteries
func (h *BatteryHandler) ListBatteries(c *gin.Context) {
	batteries := []models.BatteryInfo{}

	entries, err := os.ReadDir(h.batteryDir)
	if err != nil {
		// No presets is not an error; the defaults always work.
		log.Printf("BatteryHandler: cannot read %s: %v", h.batteryDir, err)
		c.JSON(http.StatusOK, gin.H{"batteries": batteries})
		return
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
			continue
		}
		preset, err := config.LoadBatteryFile(filepath.Join(h.batteryDir, name))
		if err != nil {
			log.Printf("BatteryHandler: skipping %s: %v", name, err)
			continue
		}
		id := strings.TrimSuffix(strings.TrimSuffix(name, ".yaml"), ".yml")
		display := preset.Name
		if display == "" {
			display = id
		}
		batteries = append(batteries, models.BatteryInfo{
			ID:   id,
			Name: display,
			File: name,
			Specs: models.BatterySpecs{
				CapacityKWh:  preset.CapacityKWh,
				PowerKW:      preset.PowerKW,
				RoundTripEff: preset.RoundTripEff,
			},
		})
	}

	c.JSON(http.StatusOK, gin.H{"batteries": batteries})
}
