package handlers

import (
	"net/http"
	"time"

	"swiftmove/services/catalog"

	"github.com/gin-gonic/gin"
)

// GetServicesHandler returns the bookable service catalog: mini-move
// packages, standard delivery rates, specialty items, and BLADE airports.
func (hb *HandlerBundle) GetServicesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"mini_move_packages": catalog.MiniMovePackages(),
		"standard_delivery": gin.H{
			"per_item_rate":      catalog.StandardPerItemRate,
			"minimum":            catalog.StandardMinimum,
			"same_day_surcharge": catalog.SameDayFlatSurcharge,
		},
		"specialty_items": catalog.SpecialtyItems(),
		"airports":        catalog.Airports(),
		"coi_fee":         catalog.COIFee,
	})
}

// GetAvailabilityHandler returns per-day availability with surcharge flags.
func (hb *HandlerBundle) GetAvailabilityHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"days": catalog.AvailabilityCalendar(time.Now()),
	})
}
