package lib

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"crs/src/types"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
)

var stripeClient *stripe.Client

func GetStripeClient() *stripe.Client {
	if stripeClient != nil {
		return stripeClient
	}
	apiKey := os.Getenv("STRIPE_SECRET_KEY")
	sc := stripe.NewClient(apiKey)
	stripeClient = sc

	return sc
}

func NewStripeClient(c *stripe.Client) {
	stripeClient = c
}

const gatewayCallTimeout = 30 * time.Second

// StripeGateway creates hosted checkout sessions for card payments and
// manual-capture sessions for security-deposit holds. One external call per
// invocation, no retry: retrying a failed creation could mint a duplicate
// session on the provider side.
type StripeGateway struct{}

func (StripeGateway) CreatePaymentLink(ctx context.Context, in *types.CreatePaymentLinkInput) (*types.PaymentLinkResult, error) {
	return createCheckoutSession(ctx, in, false)
}

func (StripeGateway) CreateDepositAuthorization(ctx context.Context, in *types.CreatePaymentLinkInput) (*types.PaymentLinkResult, error) {
	return createCheckoutSession(ctx, in, true)
}

var minorUnits = decimal.NewFromInt(100)

func createCheckoutSession(ctx context.Context, in *types.CreatePaymentLinkInput, manualCapture bool) (*types.PaymentLinkResult, error) {
	sc := GetStripeClient()
	cctx, cancel := context.WithTimeout(ctx, gatewayCallTimeout)
	defer cancel()

	expiresAt := time.Now().Add(time.Duration(in.ExpiryHours) * time.Hour)
	successUrl := fmt.Sprintf("%s/payments/callback/success", os.Getenv("APP_HOST"))
	params := &stripe.CheckoutSessionCreateParams{
		SuccessURL: stripe.String(successUrl),
		UIMode:     stripe.String("hosted"),
		Mode:       stripe.String("payment"),
		ExpiresAt:  stripe.Int64(expiresAt.Unix()),
		LineItems: []*stripe.CheckoutSessionCreateLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(in.Currency)),
					UnitAmount: stripe.Int64(in.Amount.Mul(minorUnits).IntPart()),
					ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
						Name: stripe.String(in.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: map[string]string{
			"booking_id":     fmt.Sprint(in.BookingID),
			"reference_code": in.ReferenceCode,
			"intent":         string(in.Intent),
		},
	}
	if manualCapture {
		params.PaymentIntentData = &stripe.CheckoutSessionCreatePaymentIntentDataParams{
			CaptureMethod: stripe.String("manual"),
		}
	}
	if in.PaymentMethodType != "" {
		params.PaymentMethodTypes = stripe.StringSlice([]string{in.PaymentMethodType})
	}

	cs, err := sc.V1CheckoutSessions.Create(cctx, params)
	if err != nil {
		return nil, fmt.Errorf("checkout session create failed: %s", err.Error())
	}
	return &types.PaymentLinkResult{
		PaymentID:   cs.ID,
		RedirectURL: cs.URL,
		ExpiresAt:   expiresAt,
	}, nil
}
