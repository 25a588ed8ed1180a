package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/spaceinventor/sidoc/internal/controllers"
)

func RegisterCheckRoutes(r *gin.Engine) {
	checks := r.Group("/checks")
	{
		checks.POST("/can", controllers.RunCANCheck)
		checks.POST("/power", controllers.RunPowerCheck)
	}

	reports := r.Group("/reports")
	{
		reports.GET("/can", controllers.GetCANReports)
		reports.GET("/can/latest", controllers.GetLatestCANReport)
		reports.GET("/power", controllers.GetPowerReadings)
		reports.GET("/power/latest", controllers.GetLatestPower)
	}
}
