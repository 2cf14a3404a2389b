package main

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Server wires the region pipeline, the catalog store and the payment facade
// behind the HTTP handlers.
type Server struct {
	region     *Region
	catalogs   *CatalogStore
	payments   *PaymentProcessor
	extractor  *ProjectExtractor
	selector   *DocumentSelector
	suggester  *SuggestionEngine
	successURL string
	cancelURL  string
}

func NewServer(region *Region, catalogs *CatalogStore, payments *PaymentProcessor, successURL, cancelURL string) *Server {
	return &Server{
		region:     region,
		catalogs:   catalogs,
		payments:   payments,
		extractor:  NewProjectExtractor(region),
		selector:   NewDocumentSelector(region),
		suggester:  NewSuggestionEngine(region),
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

func (s *Server) matcher() *WorkflowMatcher {
	return NewWorkflowMatcher(s.region, s.catalogs.Workflows(s.region))
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"region":    s.region.Name,
		"payments":  s.payments.Configured(),
		"timestamp": time.Now(),
	})
}

func (s *Server) handleProcessPDF(c echo.Context) error {
	var req ProcessPDFRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if req.PDFPath == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "pdf_path is required"})
	}

	details := s.extractor.Extract(req.ProjectDescription)

	documents := s.selector.Select(req.PDFPath)
	for i := range documents {
		s.suggester.Annotate(&documents[i], details)
	}

	workflows := s.matcher().Match(req.ProjectDescription, details.Location)

	return c.JSON(http.StatusOK, ProcessPDFResponse{
		ProjectDetails:       details,
		Documents:            documents,
		RecommendedWorkflows: workflows,
	})
}

func (s *Server) handleSearchWorkflows(c echo.Context) error {
	var req SearchWorkflowsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if req.Query == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "query is required"})
	}

	return c.JSON(http.StatusOK, SearchWorkflowsResponse{
		Query:    req.Query,
		Location: req.Location,
		Results:  s.matcher().Match(req.Query, req.Location),
	})
}

func (s *Server) handleListWorkflows(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"region":    s.region.Name,
		"workflows": s.catalogs.Workflows(s.region),
	})
}

func (s *Server) handleGetWorkflow(c echo.Context) error {
	id := c.Param("id")

	workflow, ok := s.catalogs.Find(s.region, id)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": fmt.Sprintf("Workflow not found: %s", id),
		})
	}

	return c.JSON(http.StatusOK, workflow)
}

func (s *Server) handlePurchaseWorkflow(c echo.Context) error {
	var req PurchaseWorkflowRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	switch {
	case req.WorkflowID == "":
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "workflow_id is required"})
	case req.Token == "":
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "token is required"})
	case req.Email == "":
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "email is required"})
	}

	workflow, ok := s.catalogs.Find(s.region, req.WorkflowID)
	if !ok {
		return c.JSON(http.StatusNotFound, PaymentResult{
			Success: false,
			Error:   fmt.Sprintf("Workflow not found: %s", req.WorkflowID),
		})
	}

	result := s.payments.CreateIntent(c.Request().Context(), IntentParams{
		AmountCents:  workflow.PriceCents,
		Currency:     "usd",
		Description:  fmt.Sprintf("Purchase of %s", workflow.Title),
		ReceiptEmail: req.Email,
		Metadata: map[string]string{
			"workflow_id":    workflow.ID,
			"workflow_title": workflow.Title,
		},
	})

	return s.paymentResponse(c, result)
}

func (s *Server) handleCreateIntent(c echo.Context) error {
	var req CreateIntentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	switch {
	case req.WorkflowID == "":
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "workflow_id is required"})
	case req.WorkflowTitle == "":
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "workflow_title is required"})
	case req.AmountCents <= 0:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "amount_in_cents is required"})
	case req.Email == "":
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "email is required"})
	}

	result := s.payments.CreateIntent(c.Request().Context(), IntentParams{
		AmountCents:  req.AmountCents,
		Currency:     "usd",
		Description:  fmt.Sprintf("Purchase of %s", req.WorkflowTitle),
		ReceiptEmail: req.Email,
		Metadata: map[string]string{
			"workflow_id":    req.WorkflowID,
			"workflow_title": req.WorkflowTitle,
		},
	})

	return s.paymentResponse(c, result)
}

func (s *Server) handleCreateCheckout(c echo.Context) error {
	var req CreateCheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	switch {
	case req.WorkflowID == "":
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "workflow_id is required"})
	case req.WorkflowTitle == "":
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "workflow_title is required"})
	case req.PriceCents <= 0:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "price_in_cents is required"})
	}

	if req.SuccessURL == "" {
		req.SuccessURL = s.successURL
	}
	if req.CancelURL == "" {
		req.CancelURL = s.cancelURL
	}

	result := s.payments.CreateCheckout(c.Request().Context(), CheckoutParams{
		WorkflowID:    req.WorkflowID,
		WorkflowTitle: req.WorkflowTitle,
		PriceCents:    req.PriceCents,
		SuccessURL:    req.SuccessURL,
		CancelURL:     req.CancelURL,
	})

	return s.paymentResponse(c, result)
}

func (s *Server) handleConfirmPayment(c echo.Context) error {
	var req ConfirmPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if req.PaymentIntentID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "payment_intent_id is required"})
	}

	return s.paymentResponse(c, s.payments.Confirm(c.Request().Context(), req.PaymentIntentID))
}

func (s *Server) handleVerifySession(c echo.Context) error {
	var req VerifySessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if req.SessionID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "session_id is required"})
	}

	return s.paymentResponse(c, s.payments.VerifySession(c.Request().Context(), req.SessionID))
}

func (s *Server) handleWebhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid payload"})
	}

	signature := c.Request().Header.Get("Stripe-Signature")

	if err := s.payments.HandleWebhook(payload, signature); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleReloadCatalogs(c echo.Context) error {
	count := s.catalogs.ReloadAll()

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":     fmt.Sprintf("All %d cached catalogs cleared and will reload on next request", count),
		"reloaded_at": time.Now(),
	})
}

func (s *Server) handleCatalogInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, s.catalogs.Info())
}

func (s *Server) paymentResponse(c echo.Context, result PaymentResult) error {
	if result.Success {
		return c.JSON(http.StatusOK, result)
	}
	return c.JSON(http.StatusInternalServerError, result)
}
