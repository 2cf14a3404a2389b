package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
)

// IntentParams are the inputs for creating a payment intent.
type IntentParams struct {
	AmountCents  int64
	Currency     string
	Description  string
	ReceiptEmail string
	Metadata     map[string]string
}

// PaymentIntent mirrors the remote intent state the facade cares about.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
	AmountCents  int64
	Metadata     map[string]string
}

// CheckoutParams are the inputs for a single-item checkout session.
type CheckoutParams struct {
	WorkflowID    string
	WorkflowTitle string
	PriceCents    int64
	SuccessURL    string
	CancelURL     string
}

// CheckoutSession mirrors the remote session state the facade cares about.
type CheckoutSession struct {
	ID            string
	URL           string
	PaymentStatus string
	Metadata      map[string]string
}

// WebhookEvent is a verified inbound event. Intent is set for
// payment_intent.* events.
type WebhookEvent struct {
	Type   string
	Intent *PaymentIntent
}

// PaymentGateway abstracts the remote payment service so the facade can be
// exercised against a fake in tests. stripeGateway is the real binding.
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, params IntentParams) (*PaymentIntent, error)
	RetrievePaymentIntent(ctx context.Context, id string) (*PaymentIntent, error)
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
	RetrieveCheckoutSession(ctx context.Context, id string) (*CheckoutSession, error)
	VerifyWebhook(payload []byte, signature string) (*WebhookEvent, error)
}

type stripeGateway struct {
	api           *client.API
	webhookSecret string
}

func newStripeGateway(secretKey, webhookSecret string) *stripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)

	log.Println("Stripe payment gateway initialized")
	return &stripeGateway{api: api, webhookSecret: webhookSecret}
}

func (g *stripeGateway) CreatePaymentIntent(ctx context.Context, params IntentParams) (*PaymentIntent, error) {
	p := &stripe.PaymentIntentParams{
		Amount:       stripe.Int64(params.AmountCents),
		Currency:     stripe.String(params.Currency),
		Description:  stripe.String(params.Description),
		ReceiptEmail: stripe.String(params.ReceiptEmail),
	}
	p.Context = ctx
	for k, v := range params.Metadata {
		p.AddMetadata(k, v)
	}

	intent, err := g.api.PaymentIntents.New(p)
	if err != nil {
		return nil, err
	}
	return fromStripeIntent(intent), nil
}

func (g *stripeGateway) RetrievePaymentIntent(ctx context.Context, id string) (*PaymentIntent, error) {
	p := &stripe.PaymentIntentParams{}
	p.Context = ctx

	intent, err := g.api.PaymentIntents.Get(id, p)
	if err != nil {
		return nil, err
	}
	return fromStripeIntent(intent), nil
}

func (g *stripeGateway) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error) {
	p := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String("usd"),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(params.WorkflowTitle),
					Description: stripe.String(fmt.Sprintf("Purchase of %s workflow", params.WorkflowTitle)),
				},
				UnitAmount: stripe.Int64(params.PriceCents),
			},
			Quantity: stripe.Int64(1),
		}},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(params.SuccessURL),
		CancelURL:  stripe.String(params.CancelURL),
	}
	p.Context = ctx
	p.AddMetadata("workflow_id", params.WorkflowID)
	p.AddMetadata("workflow_title", params.WorkflowTitle)

	session, err := g.api.CheckoutSessions.New(p)
	if err != nil {
		return nil, err
	}
	return fromStripeSession(session), nil
}

func (g *stripeGateway) RetrieveCheckoutSession(ctx context.Context, id string) (*CheckoutSession, error) {
	p := &stripe.CheckoutSessionParams{}
	p.Context = ctx

	session, err := g.api.CheckoutSessions.Get(id, p)
	if err != nil {
		return nil, err
	}
	return fromStripeSession(session), nil
}

func (g *stripeGateway) VerifyWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, g.webhookSecret)
	if err != nil {
		return nil, err
	}

	verified := &WebhookEvent{Type: string(event.Type)}

	if event.Type == "payment_intent.succeeded" {
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return nil, fmt.Errorf("failed to parse event payload: %w", err)
		}
		verified.Intent = fromStripeIntent(&intent)
	}

	return verified, nil
}

func fromStripeIntent(intent *stripe.PaymentIntent) *PaymentIntent {
	return &PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Status:       string(intent.Status),
		AmountCents:  intent.Amount,
		Metadata:     intent.Metadata,
	}
}

func fromStripeSession(session *stripe.CheckoutSession) *CheckoutSession {
	return &CheckoutSession{
		ID:            session.ID,
		URL:           session.URL,
		PaymentStatus: string(session.PaymentStatus),
		Metadata:      session.Metadata,
	}
}

// PaymentResult is the uniform outcome of every facade operation. Failures
// from the remote service are reported here, never raised.
type PaymentResult struct {
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
	ClientSecret string `json:"client_secret,omitempty"`
	PaymentID    string `json:"payment_id,omitempty"`
	AmountCents  int64  `json:"amount,omitempty"`
	Status       string `json:"status,omitempty"`
	SessionID    string `json:"session_id,omitempty"`
	CheckoutURL  string `json:"checkout_url,omitempty"`
	WorkflowID   string `json:"workflow_id,omitempty"`
	Message      string `json:"message,omitempty"`
}

const errNotConfigured = "stripe is not configured"

// PaymentProcessor wraps the gateway with the marketplace's payment
// operations. A nil gateway (no secret key at startup) degrades every
// operation to a structured failure instead of crashing.
type PaymentProcessor struct {
	gateway PaymentGateway
}

func NewPaymentProcessor(gateway PaymentGateway) *PaymentProcessor {
	return &PaymentProcessor{gateway: gateway}
}

func (p *PaymentProcessor) Configured() bool {
	return p.gateway != nil
}

func (p *PaymentProcessor) CreateIntent(ctx context.Context, params IntentParams) PaymentResult {
	if p.gateway == nil {
		return PaymentResult{Success: false, Error: errNotConfigured}
	}

	intent, err := p.gateway.CreatePaymentIntent(ctx, params)
	if err != nil {
		log.Printf("Error creating payment intent: %v", err)
		return PaymentResult{Success: false, Error: err.Error()}
	}

	return PaymentResult{
		Success:      true,
		ClientSecret: intent.ClientSecret,
		AmountCents:  params.AmountCents,
		PaymentID:    intent.ID,
	}
}

func (p *PaymentProcessor) CreateCheckout(ctx context.Context, params CheckoutParams) PaymentResult {
	if p.gateway == nil {
		return PaymentResult{Success: false, Error: errNotConfigured}
	}

	session, err := p.gateway.CreateCheckoutSession(ctx, params)
	if err != nil {
		log.Printf("Error creating checkout session: %v", err)
		return PaymentResult{Success: false, Error: err.Error()}
	}

	return PaymentResult{
		Success:     true,
		SessionID:   session.ID,
		CheckoutURL: session.URL,
	}
}

// Confirm reports success only when the remote intent status is exactly
// "succeeded"; any other status is echoed back as a failure.
func (p *PaymentProcessor) Confirm(ctx context.Context, intentID string) PaymentResult {
	if p.gateway == nil {
		return PaymentResult{Success: false, Error: errNotConfigured}
	}

	intent, err := p.gateway.RetrievePaymentIntent(ctx, intentID)
	if err != nil {
		log.Printf("Error confirming payment: %v", err)
		return PaymentResult{Success: false, Error: err.Error()}
	}

	if intent.Status != "succeeded" {
		return PaymentResult{
			Success: false,
			Status:  intent.Status,
			Message: fmt.Sprintf("Payment not successful. Status: %s", intent.Status),
		}
	}

	return PaymentResult{
		Success:     true,
		Status:      intent.Status,
		AmountCents: intent.AmountCents,
		PaymentID:   intent.ID,
	}
}

// VerifySession reports success only when the checkout session's payment
// status is "paid", returning the purchased workflow id from metadata.
func (p *PaymentProcessor) VerifySession(ctx context.Context, sessionID string) PaymentResult {
	if p.gateway == nil {
		return PaymentResult{Success: false, Error: errNotConfigured}
	}

	session, err := p.gateway.RetrieveCheckoutSession(ctx, sessionID)
	if err != nil {
		log.Printf("Error verifying checkout session: %v", err)
		return PaymentResult{Success: false, Error: err.Error()}
	}

	if session.PaymentStatus != "paid" {
		return PaymentResult{Success: false, Message: "Payment not completed"}
	}

	return PaymentResult{
		Success:    true,
		WorkflowID: session.Metadata["workflow_id"],
		Message:    "Payment verified, workflow access granted",
	}
}

// HandleWebhook verifies an inbound event and logs successful payments. No
// state is persisted.
func (p *PaymentProcessor) HandleWebhook(payload []byte, signature string) error {
	if p.gateway == nil {
		return errors.New(errNotConfigured)
	}

	event, err := p.gateway.VerifyWebhook(payload, signature)
	if err != nil {
		log.Printf("Error handling webhook: %v", err)
		return err
	}

	if event.Type == "payment_intent.succeeded" && event.Intent != nil {
		log.Printf("Payment succeeded for workflow: %s", event.Intent.Metadata["workflow_id"])
	}

	return nil
}
