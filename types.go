package main

// WorkflowRecord is one purchasable permit workflow in the marketplace catalog.
// Records are loaded once per region (built-in defaults or a catalog file) and
// are read-only after load.
type WorkflowRecord struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	KeyTerms   []string `json:"key_terms"`
	FormTypes  []string `json:"form_types"`
	Agency     string   `json:"agency"`
	PriceCents int64    `json:"price_cents"`
}

// WorkflowMatch is the matcher's output for a single workflow. KeyTerms holds
// the matched terms in discovery order.
type WorkflowMatch struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	RelevanceScore int      `json:"relevance_score"`
	KeyTerms       []string `json:"key_terms"`
}

// ProjectDetails are the coarse attributes derived from free project text.
type ProjectDetails struct {
	Description       string `json:"description"`
	Location          string `json:"location"`
	ProjectType       string `json:"project_type"`
	ClientType        string `json:"client_type"`
	EstimatedDuration *int   `json:"estimated_duration,omitempty"`
}

// Position is a field's placement on the form, in percent of page size.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PDFField is a single fillable field on a permit form. Suggestion stays nil
// until the suggestion engine finds a matching rule for the label.
type PDFField struct {
	ID         string   `json:"id"`
	Label      string   `json:"label"`
	Type       string   `json:"type"`
	Position   Position `json:"position"`
	Value      string   `json:"value"`
	Suggestion *string  `json:"suggestion,omitempty"`
}

// PDFDocument is a canned permit form template. Built fresh per request since
// the suggestion engine mutates its fields.
type PDFDocument struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	FormFields []PDFField `json:"formFields"`
}

// Request/Response structures

type ProcessPDFRequest struct {
	PDFPath            string `json:"pdf_path" form:"pdf_path"`
	ProjectDescription string `json:"project_description" form:"project_description"`
}

type ProcessPDFResponse struct {
	ProjectDetails       ProjectDetails  `json:"project_details"`
	Documents            []PDFDocument   `json:"documents"`
	RecommendedWorkflows []WorkflowMatch `json:"recommended_workflows"`
}

type SearchWorkflowsRequest struct {
	Query    string `json:"query" form:"query" query:"query"`
	Location string `json:"location" form:"location" query:"location"`
}

type SearchWorkflowsResponse struct {
	Query    string          `json:"query"`
	Location string          `json:"location,omitempty"`
	Results  []WorkflowMatch `json:"results"`
}

type PurchaseWorkflowRequest struct {
	WorkflowID string `json:"workflow_id"`
	Token      string `json:"token"`
	Email      string `json:"email"`
}

type CreateIntentRequest struct {
	WorkflowID    string `json:"workflow_id"`
	WorkflowTitle string `json:"workflow_title"`
	AmountCents   int64  `json:"amount_in_cents"`
	Email         string `json:"email"`
}

type CreateCheckoutRequest struct {
	WorkflowID    string `json:"workflow_id"`
	WorkflowTitle string `json:"workflow_title"`
	PriceCents    int64  `json:"price_in_cents"`
	SuccessURL    string `json:"success_url"`
	CancelURL     string `json:"cancel_url"`
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"payment_intent_id"`
}

type VerifySessionRequest struct {
	SessionID string `json:"session_id"`
}
