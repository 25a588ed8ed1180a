package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spaceinventor/sidoc/internal/services"
)

// RunCANCheck triggers the aggregate CAN checker and returns the fresh report.
func RunCANCheck(c *gin.Context) {
	if err := (services.CANProcedure{}).Run(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, services.LatestCANReport())
}

// RunPowerCheck triggers the power supply check and returns the reading.
func RunPowerCheck(c *gin.Context) {
	if err := (services.PowerProcedure{}).Run(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, services.LatestPowerStatus())
}

// GetCANReports returns past CAN reports in a window.
// Query params: duration=5m|10m|1h|24h (default: 1h)
func GetCANReports(c *gin.Context) {
	durationStr := c.DefaultQuery("duration", "1h")

	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid duration format"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"duration": durationStr,
		"reports":  services.GetCANReports(duration),
	})
}

// GetLatestCANReport returns the most recent CAN report.
func GetLatestCANReport(c *gin.Context) {
	report := services.LatestCANReport()
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no reports yet"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetPowerReadings returns past power readings in a window.
// Query params: duration=5m|10m|1h|24h (default: 1h)
func GetPowerReadings(c *gin.Context) {
	durationStr := c.DefaultQuery("duration", "1h")

	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid duration format"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"duration": durationStr,
		"readings": services.GetPowerReadings(duration),
	})
}

// GetLatestPower returns the most recent power reading.
func GetLatestPower(c *gin.Context) {
	status := services.LatestPowerStatus()
	if status == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no readings yet"})
		return
	}
	c.JSON(http.StatusOK, status)
}
