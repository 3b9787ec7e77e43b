package main

import (
	"crs/src/db"
	"crs/src/models"
	"crs/src/types"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func vehicleHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/vehicles", func(ctx *gin.Context) {
			var body types.CreateVehicleRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			rate, err := decimal.NewFromString(body.DailyRate)
			if err != nil || rate.Sign() <= 0 {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "daily_rate must be a positive decimal"})
				return
			}
			vehicle := models.Vehicle{
				Name:      body.Name,
				PlateNo:   body.PlateNo,
				DailyRate: rate,
				Currency:  body.Currency,
			}
			db := db.GetDb()
			if err := db.Create(&vehicle).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": vehicle})
		}).
		GET("/vehicles", func(ctx *gin.Context) {
			db := db.GetDb()
			var vehicles []models.Vehicle
			if err := db.Order("name ASC").Find(&vehicles).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": vehicles, "count": len(vehicles)})
		}).
		GET("/vehicles/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var vehicle models.Vehicle
			if err := db.Where(&models.Vehicle{ID: params.ID}).First(&vehicle).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": vehicle})
		})
	return g
}
