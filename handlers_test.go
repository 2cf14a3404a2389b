package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, region *Region, gateway PaymentGateway) *Server {
	t.Helper()

	catalogs, err := NewCatalogStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(catalogs.Close)

	return NewServer(region, catalogs, NewPaymentProcessor(gateway), DefaultSuccessURL, DefaultCancelURL)
}

func postJSON(t *testing.T, handler echo.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, handler(e.NewContext(req, rec)))
	return rec
}

func TestProcessPDFEndpoint(t *testing.T) {
	server := newTestServer(t, generalRegion, &fakeGateway{})

	body := `{"pdf_path": "trench_permit.pdf", "project_description": "Need to install fiber optic cable in San Jose, 500ft trench along Main Street"}`
	rec := postJSON(t, server.handleProcessPDF, "/api/process-pdf", body)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ProcessPDFResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "utility", resp.ProjectDetails.ProjectType)
	assert.Equal(t, "San Jose", resp.ProjectDetails.Location)
	assert.Equal(t, "civil engineer", resp.ProjectDetails.ClientType)

	require.Len(t, resp.Documents, 1)
	assert.Equal(t, "trench-permit", resp.Documents[0].ID)

	require.NotEmpty(t, resp.RecommendedWorkflows)
	assert.Equal(t, "utility-trenching-sanjose", resp.RecommendedWorkflows[0].ID)
	assert.GreaterOrEqual(t, resp.RecommendedWorkflows[0].RelevanceScore, 6)

	// Suggestions were filled in
	require.NotEmpty(t, resp.Documents[0].FormFields)
	assert.NotNil(t, resp.Documents[0].FormFields[0].Suggestion)
}

func TestProcessPDFMissingPath(t *testing.T) {
	server := newTestServer(t, generalRegion, &fakeGateway{})

	rec := postJSON(t, server.handleProcessPDF, "/api/process-pdf", `{"project_description": "text"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "pdf_path is required")
}

func TestSearchWorkflowsEndpoint(t *testing.T) {
	server := newTestServer(t, generalRegion, &fakeGateway{})

	body := `{"query": "sidewalk repair in san francisco", "location": "San Francisco"}`
	rec := postJSON(t, server.handleSearchWorkflows, "/api/search-workflows", body)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp SearchWorkflowsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "sidewalk repair in san francisco", resp.Query)
	require.NotEmpty(t, resp.Results)
	assert.Equal(t, "sidewalk-sanfrancisco", resp.Results[0].ID)
}

func TestSearchWorkflowsMissingQuery(t *testing.T) {
	server := newTestServer(t, generalRegion, &fakeGateway{})

	rec := postJSON(t, server.handleSearchWorkflows, "/api/search-workflows", `{"location": "Oakland"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "query is required")
}

func TestGetWorkflow(t *testing.T) {
	server := newTestServer(t, generalRegion, &fakeGateway{})
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/workflows/utility-trenching-sanjose", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("utility-trenching-sanjose")

	require.NoError(t, server.handleGetWorkflow(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var wf WorkflowRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &wf))
	assert.Equal(t, "Utility Trenching Permits - San Jose", wf.Title)
}

func TestGetWorkflowNotFound(t *testing.T) {
	server := newTestServer(t, generalRegion, &fakeGateway{})
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/workflows/nope", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("nope")

	require.NoError(t, server.handleGetWorkflow(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPurchaseWorkflow(t *testing.T) {
	gateway := &fakeGateway{intent: &PaymentIntent{ID: "pi_123", ClientSecret: "pi_123_secret"}}
	server := newTestServer(t, generalRegion, gateway)

	body := `{"workflow_id": "utility-trenching-sanjose", "token": "tok_visa", "email": "buyer@example.com"}`
	rec := postJSON(t, server.handlePurchaseWorkflow, "/api/purchase-workflow", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, gateway.intentCalls)
	assert.Equal(t, int64(29900), gateway.lastIntentParams.AmountCents)
	assert.Equal(t, "utility-trenching-sanjose", gateway.lastIntentParams.Metadata["workflow_id"])
	assert.Equal(t, "buyer@example.com", gateway.lastIntentParams.ReceiptEmail)
}

func TestPurchaseUnknownWorkflow(t *testing.T) {
	gateway := &fakeGateway{}
	server := newTestServer(t, generalRegion, gateway)

	body := `{"workflow_id": "nope", "token": "tok_visa", "email": "buyer@example.com"}`
	rec := postJSON(t, server.handlePurchaseWorkflow, "/api/purchase-workflow", body)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 0, gateway.intentCalls, "gateway must not be contacted for unknown workflows")
}

func TestPurchaseMissingFields(t *testing.T) {
	gateway := &fakeGateway{}
	server := newTestServer(t, generalRegion, gateway)

	rec := postJSON(t, server.handlePurchaseWorkflow, "/api/purchase-workflow", `{"workflow_id": "x", "token": "t"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email is required")
	assert.Equal(t, 0, gateway.intentCalls)
}

func TestCreateIntentMissingFields(t *testing.T) {
	gateway := &fakeGateway{}
	server := newTestServer(t, generalRegion, gateway)

	rec := postJSON(t, server.handleCreateIntent, "/api/payment/create-intent",
		`{"workflow_id": "x", "workflow_title": "X", "email": "a@b.c"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "amount_in_cents is required")
	assert.Equal(t, 0, gateway.intentCalls)
}

func TestCreateCheckoutUsesDefaultURLs(t *testing.T) {
	gateway := &fakeGateway{session: &CheckoutSession{ID: "cs_123", URL: "https://stripe.test/cs_123"}}
	server := newTestServer(t, generalRegion, gateway)

	body := `{"workflow_id": "x", "workflow_title": "X", "price_in_cents": 1000}`
	rec := postJSON(t, server.handleCreateCheckout, "/api/payment/create-checkout", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, DefaultSuccessURL, gateway.lastCheckoutParams.SuccessURL)
	assert.Equal(t, DefaultCancelURL, gateway.lastCheckoutParams.CancelURL)
}

func TestConfirmPaymentEndpoint(t *testing.T) {
	gateway := &fakeGateway{intent: &PaymentIntent{ID: "pi_123", Status: "succeeded", AmountCents: 500}}
	server := newTestServer(t, generalRegion, gateway)

	rec := postJSON(t, server.handleConfirmPayment, "/api/payment/confirm", `{"payment_intent_id": "pi_123"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var result PaymentResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, "succeeded", result.Status)
}

func TestPaymentNotConfiguredEndpoint(t *testing.T) {
	server := newTestServer(t, generalRegion, nil)

	rec := postJSON(t, server.handleConfirmPayment, "/api/payment/confirm", `{"payment_intent_id": "pi_123"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), errNotConfigured)
}

func TestWebhookEndpoint(t *testing.T) {
	gateway := &fakeGateway{event: &WebhookEvent{Type: "payment_intent.created"}}
	server := newTestServer(t, generalRegion, gateway)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/payment/webhook", strings.NewReader(`{}`))
	req.Header.Set("Stripe-Signature", "t=1,v1=abc")
	rec := httptest.NewRecorder()

	require.NoError(t, server.handleWebhook(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "true")
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t, generalRegion, &fakeGateway{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, server.handleHealth(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
