package payment

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	dompayment "belizevibes-booking/internal/domain/payment"
	"belizevibes-booking/internal/pkg/config"
	"belizevibes-booking/internal/pkg/errs"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
)

const bookingIDPlaceholder = "{BOOKING_ID}"

// StripeProvider issues Stripe Checkout Sessions and verifies Stripe webhooks.
type StripeProvider struct {
	api           *client.API
	webhookSecret string
	successURL    string
	cancelURL     string
}

func NewStripeProvider(cfg config.PaymentConfig) (*StripeProvider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errs.Wrap(err, "invalid payment config")
	}

	backendCfg := &stripe.BackendConfig{
		MaxNetworkRetries: stripe.Int64(cfg.MaxRetries),
	}
	if cfg.APIBaseURL != "" {
		backendCfg.URL = stripe.String(cfg.APIBaseURL)
	}
	backends := &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, backendCfg),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, backendCfg),
	}

	slog.Info("Payment provider configured", "provider", "stripe", "mode", string(cfg.Mode))

	return &StripeProvider{
		api:           client.New(cfg.SecretKey, backends),
		webhookSecret: cfg.WebhookSecret,
		successURL:    cfg.SuccessURL,
		cancelURL:     cfg.CancelURL,
	}, nil
}

func (p *StripeProvider) CreateSession(ctx context.Context, req dompayment.SessionRequest) (*dompayment.Session, error) {
	bookingID := req.BookingID.String()
	currency := strings.ToLower(req.Currency)

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		ClientReferenceID: stripe.String(bookingID),
		SuccessURL:        stripe.String(strings.ReplaceAll(p.successURL, bookingIDPlaceholder, bookingID)),
		CancelURL:         stripe.String(strings.ReplaceAll(p.cancelURL, bookingIDPlaceholder, bookingID)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(currency),
					UnitAmount: stripe.Int64(req.AmountMinor),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String("BelizeVibes booking " + req.Reference),
						Description: stripe.String(req.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: map[string]string{"booking_id": bookingID, "reference": req.Reference},
		},
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	params.Context = ctx
	params.AddMetadata("booking_id", bookingID)
	params.AddMetadata("reference", req.Reference)
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	cs, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, errs.Wrapf(err, "create checkout session for booking %s", bookingID)
	}

	return toSession(cs), nil
}

func (p *StripeProvider) RetrieveSession(ctx context.Context, sessionID string) (*dompayment.Session, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	cs, err := p.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, errs.Wrapf(err, "retrieve checkout session %s", sessionID)
	}
	return toSession(cs), nil
}

func toSession(cs *stripe.CheckoutSession) *dompayment.Session {
	return &dompayment.Session{
		ID:                cs.ID,
		URL:               cs.URL,
		ClientSecret:      cs.ClientSecret,
		AmountMinor:       cs.AmountTotal,
		Currency:          strings.ToUpper(string(cs.Currency)),
		ClientReferenceID: cs.ClientReferenceID,
		PaymentStatus:     string(cs.PaymentStatus),
	}
}

func (p *StripeProvider) ParseEvent(payload []byte, signature string) (*dompayment.Event, error) {
	ev, err := webhook.ConstructEventWithOptions(payload, signature, p.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "verify webhook"), dompayment.ErrInvalidSignature)
	}

	out := &dompayment.Event{
		ID:   ev.ID,
		Type: dompayment.EventType(ev.Type),
	}
	if !strings.HasPrefix(string(ev.Type), "checkout.session.") || ev.Data == nil {
		return out, nil
	}

	var cs stripe.CheckoutSession
	if err := json.Unmarshal(ev.Data.Raw, &cs); err != nil {
		return nil, errs.Wrapf(err, "decode checkout session of event %s", ev.ID)
	}
	out.SessionID = cs.ID
	out.ClientReferenceID = cs.ClientReferenceID
	out.PaymentStatus = string(cs.PaymentStatus)
	return out, nil
}
