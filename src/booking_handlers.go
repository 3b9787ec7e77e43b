package main

import (
	"crs/src/config"
	"crs/src/db"
	"crs/src/models"
	"crs/src/services"
	"crs/src/types"
	"crs/src/utils"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func bookingHandlers(g *gin.RouterGroup, svc *services.PaymentService) *gin.RouterGroup {
	g.
		POST("/bookings", func(ctx *gin.Context) {
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			amountTotal, err := decimal.NewFromString(body.AmountTotal)
			if err != nil || amountTotal.Sign() <= 0 {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "amount_total must be a positive decimal"})
				return
			}
			depositAmount := decimal.Zero
			if body.SecurityDepositAmount != "" {
				depositAmount, err = decimal.NewFromString(body.SecurityDepositAmount)
				if err != nil || depositAmount.Sign() < 0 {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": "security_deposit_amount must be a non-negative decimal"})
					return
				}
			}
			pickupAt, _ := time.Parse(config.TIME_PARSE_FORMAT, body.PickupAt)
			returnAt, _ := time.Parse(config.TIME_PARSE_FORMAT, body.ReturnAt)

			var booking models.Booking
			db := db.GetDb()
			err = db.Transaction(func(tx *gorm.DB) error {
				var vehicle models.Vehicle
				if err := tx.Where(&models.Vehicle{ID: body.VehicleID}).First(&vehicle).Error; err != nil {
					return errors.New("vehicle not found")
				}
				client := models.Client{Email: body.ClientEmail}
				if err := tx.
					Where(&models.Client{Email: body.ClientEmail}).
					Attrs(&models.Client{Name: body.ClientName, Phone: body.ClientPhone}).
					FirstOrCreate(&client).
					Error; err != nil {
					return err
				}
				booking = models.Booking{
					ReferenceCode:         utils.NewReferenceCode(body.ClientName),
					ClientID:              client.ID,
					VehicleID:             vehicle.ID,
					Currency:              body.Currency,
					AmountTotal:           amountTotal,
					PaymentAmountPercent:  body.PaymentAmountPercent,
					SecurityDepositAmount: depositAmount,
					Status:                types.BOOKING_DRAFT,
					PickupAt:              pickupAt,
					ReturnAt:              returnAt,
				}
				return tx.Create(&booking).Error
			})
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": booking})
		}).
		GET("/bookings", func(ctx *gin.Context) {
			db := db.GetDb()
			var bookings []models.Booking
			q := db.
				Model(&models.Booking{}).
				Preload("Client").
				Preload("Vehicle").
				Order("created_at DESC").
				Limit(100)
			if status := ctx.Query("status"); status != "" {
				q = q.Where(&models.Booking{Status: types.BookingStatus(status)})
			}
			if err := q.Find(&bookings).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		GET("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var booking models.Booking
			ss := db.Session(&gorm.Session{PrepareStmt: true})
			if err := ss.
				Model(&models.Booking{}).
				Where(&models.Booking{ID: params.ID}).
				Preload("Client").
				Preload("Vehicle").
				Preload("Payments").
				First(&booking).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		GET("/bookings/:id/payments", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var payments []models.Payment
			if err := db.
				Model(&models.Payment{}).
				Where(&models.Payment{BookingID: params.ID}).
				Order("created_at ASC").
				Find(&payments).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			var deposits []models.SecurityDepositAuthorization
			if err := db.
				Model(&models.SecurityDepositAuthorization{}).
				Where(&models.SecurityDepositAuthorization{BookingID: params.ID}).
				Order("created_at ASC").
				Find(&deposits).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": gin.H{"payments": payments, "deposits": deposits}})
		}).
		PUT("/bookings/:id/cancel", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				result := tx.
					Model(&models.Booking{}).
					Where("id = ? AND status IN ?", params.ID, []types.BookingStatus{
						types.BOOKING_DRAFT,
						types.BOOKING_CONFIRMED,
					}).
					Update("status", types.BOOKING_CANCELLED)
				if result.Error != nil {
					return result.Error
				}
				if result.RowsAffected == 0 {
					return errors.New("booking cannot be cancelled")
				}
				// Outstanding links must not stay payable on a dead booking.
				if err := tx.
					Model(&models.Payment{}).
					Where("booking_id = ? AND payment_link_status IN ?", params.ID, []types.PaymentLinkStatus{
						types.PAYMENT_LINK_PENDING,
						types.PAYMENT_LINK_ACTIVE,
					}).
					Update("payment_link_status", types.PAYMENT_LINK_CANCELLED).
					Error; err != nil {
					return err
				}
				return nil
			})
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true})
		}).
		PUT("/bookings/:id/restore", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			result := db.
				Model(&models.Booking{}).
				Where("id = ? AND status = ?", params.ID, types.BOOKING_CANCELLED).
				Update("status", types.BOOKING_DRAFT)
			if result.Error != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": result.Error.Error()})
				return
			}
			if result.RowsAffected == 0 {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "only cancelled bookings can be restored"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true})
		}).
		DELETE("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			result := db.
				Where("id = ? AND status = ?", params.ID, types.BOOKING_CANCELLED).
				Delete(&models.Booking{})
			if result.Error != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": result.Error.Error()})
				return
			}
			if result.RowsAffected == 0 {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "only cancelled bookings can be deleted"})
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		POST("/bookings/:id/payment-link", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			payment, err := svc.CreateInitialPaymentLink(ctx.Request.Context(), params.ID)
			if err != nil {
				respondServiceError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": gin.H{
				"payment_id": payment.ID,
				"url":        payment.PaymentLinkURL,
				"expires_at": payment.PaymentLinkExpiresAt,
				"amount":     payment.Amount,
				"intent":     payment.PaymentIntent,
			}})
		}).
		POST("/bookings/:id/links", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := svc.GenerateFollowupLinks(ctx.Request.Context(), params.ID); err != nil {
				respondServiceError(ctx, err)
				return
			}
			ctx.JSON(http.StatusAccepted, gin.H{"success": true})
		}).
		POST("/bookings/:id/deposit", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.DepositRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			link, err := svc.RequestDepositAuthorization(ctx.Request.Context(), params.ID, body.PaymentMethodType)
			if err != nil {
				respondServiceError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": link})
		})
	return g
}

func respondServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBookingNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrPaymentNotFound):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAlreadyConfirmed):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrGatewayUnavailable):
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		log.Printf("Unhandled service error: %s\n", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
