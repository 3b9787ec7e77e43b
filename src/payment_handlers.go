package main

import (
	"crs/src/db"
	"crs/src/middlewares"
	"crs/src/models"
	"crs/src/services"
	"crs/src/types"
	"errors"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82/webhook"
)

// paymentWebhookRoute is mounted outside the authenticated group; the
// signature check is the authentication.
func paymentWebhookRoute(g *gin.RouterGroup, svc *services.PaymentService) {
	g.POST("/payments/webhook", func(ctx *gin.Context) {
		const MaxBodyBytes = int64(65536)
		body, err := io.ReadAll(http.MaxBytesReader(ctx.Writer, ctx.Request.Body, MaxBodyBytes))
		if err != nil {
			log.Printf("[Webhook] Error reading request body: %s\n", err.Error())
			ctx.Status(http.StatusServiceUnavailable)
			return
		}
		endpointSecret := os.Getenv("STRIPE_WEBHOOK_SECRET")
		event, err := webhook.ConstructEvent(body, ctx.GetHeader("Stripe-Signature"), endpointSecret)
		if err != nil {
			log.Printf("[Webhook] Error verifying webhook signature: %s\n", err.Error())
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
			return
		}

		ev, err := types.ParseWebhookEvent(string(event.Type), event.Data.Raw)
		if err != nil {
			log.Printf("[Webhook] Could not parse event %s: %s\n", event.ID, err.Error())
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "unresolvable event"})
			return
		}
		if ev.Kind == types.EventUnknown {
			// Unsubscribed event types are acknowledged, not retried.
			log.Printf("[Webhook] Ignoring event type %s\n", event.Type)
			ctx.JSON(http.StatusOK, gin.H{"received": true})
			return
		}

		if err := svc.HandleWebhookEvent(ctx.Request.Context(), ev); err != nil {
			if errors.Is(err, services.ErrPaymentNotFound) {
				log.Printf("[Webhook] No record for event %s (%s)\n", event.ID, event.Type)
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			log.Printf("[Webhook] Error handling event %s: %s\n", event.ID, err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "processing failed"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"received": true})
	})
}

func paymentHandlers(g *gin.RouterGroup, svc *services.PaymentService) *gin.RouterGroup {
	g.
		GET("/payments/:id", func(ctx *gin.Context) {
			id, err := uuid.Parse(ctx.Params.ByName("id"))
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment id"})
				return
			}
			db := db.GetDb()
			var payment models.Payment
			if err := db.
				Model(&models.Payment{}).
				Where(&models.Payment{ID: id}).
				First(&payment).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": payment})
		}).
		POST("/payments/:id/confirm", middlewares.RequireRole("admin", "staff"), func(ctx *gin.Context) {
			id, err := uuid.Parse(ctx.Params.ByName("id"))
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment id"})
				return
			}
			actor := ctx.GetString("email")
			receiptURL, err := svc.ConfirmBankTransfer(ctx.Request.Context(), id, actor)
			if err != nil {
				respondServiceError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "receipt_url": receiptURL})
		})
	return g
}
