// Package gateway is the HTTP client for the case-management backend. All
// remote calls in the application go through it: it owns the request
// timeout, the circuit breaker, and the translation of backend failures
// into the structured error taxonomy.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"nextchapter/internal/config"
	"nextchapter/internal/errors"
	"nextchapter/internal/types"
)

// Client talks to the remote case-management REST gateway.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	breaker    *Breaker
	logger     *errors.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client (used by tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a gateway client. The request timeout comes from the
// gateway config; when observability is enabled the transport is traced.
func NewClient(cfg *config.GatewayConfig, obs *config.ObservabilityConfig, logger *errors.Logger) *Client {
	var transport http.RoundTripper = http.DefaultTransport
	if obs != nil && obs.Enabled && obs.Tracing.Enabled {
		transport = otelhttp.NewTransport(transport)
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		breaker: NewBreaker(&cfg.CircuitBreaker, logger),
		logger:  logger,
	}
}

// httpResult is the raw outcome of one gateway request.
type httpResult struct {
	status      int
	contentType string
	body        []byte
}

// errorEnvelope is the gateway's machine-readable error shape.
type errorEnvelope struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do performs one request through the circuit breaker. Transport failures,
// timeouts and 5xx responses count as breaker failures; 4xx responses pass
// through for the caller to translate.
func (c *Client) do(ctx context.Context, method, path string, body any) (*httpResult, error) {
	return c.breaker.Execute(func() (*httpResult, error) {
		var reqBody io.Reader
		if body != nil {
			payload, err := json.Marshal(body)
			if err != nil {
				return nil, errors.NewInternalError(errors.ErrCodeGatewayFailed,
					"Failed to encode request body", err)
			}
			reqBody = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
		if err != nil {
			return nil, errors.NewInternalError(errors.ErrCodeGatewayFailed,
				"Failed to build gateway request", err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.apiKey != "" {
			req.Header.Set("X-API-Key", c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() == context.DeadlineExceeded || isTimeout(err) {
				return nil, errors.NewNetworkError(errors.ErrCodeGatewayTimeout,
					fmt.Sprintf("Gateway request timed out: %s %s", method, path), err)
			}
			return nil, errors.NewNetworkError(errors.ErrCodeGatewayFailed,
				fmt.Sprintf("Gateway request failed: %s %s", method, path), err)
		}
		defer func() {
			if cerr := resp.Body.Close(); cerr != nil && c.logger != nil {
				c.logger.Warn("Failed to close gateway response body", "error", cerr)
			}
		}()

		payload, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, errors.NewNetworkError(errors.ErrCodeGatewayFailed,
				"Failed to read gateway response", err)
		}

		result := &httpResult{
			status:      resp.StatusCode,
			contentType: resp.Header.Get("Content-Type"),
			body:        payload,
		}

		if resp.StatusCode >= 500 {
			return nil, translateFailure(result, method, path)
		}
		return result, nil
	})
}

func isTimeout(err error) bool {
	var netErr net.Error
	return stderrors.As(err, &netErr) && netErr.Timeout()
}

// translateFailure maps a non-success gateway response into an AppError
// keyed by the backend's machine-readable error code, falling back to the
// HTTP status. The response text itself is never used for matching.
func translateFailure(r *httpResult, method, path string) error {
	var envelope errorEnvelope
	_ = json.Unmarshal(r.body, &envelope)

	message := envelope.Message
	if message == "" {
		message = envelope.Error
	}
	if message == "" {
		message = fmt.Sprintf("gateway returned HTTP %d", r.status)
	}

	code := codeForResponse(envelope.Code, r.status)

	appErr := errors.NewGatewayError(code,
		fmt.Sprintf("%s %s: %s", method, path, message), nil)
	return appErr.WithContext("http_status", r.status)
}

// codeForResponse resolves the structured error code: the backend's code
// field wins, then the HTTP status decides.
func codeForResponse(backendCode string, status int) string {
	switch backendCode {
	case "RESUME_NOT_FOUND":
		return errors.ErrCodeResumeNotFound
	case "CLIENT_NOT_FOUND":
		return errors.ErrCodeClientNotFound
	case "PDF_NOT_READY":
		return errors.ErrCodePDFNotReady
	case "PDF_GENERATION_FAILED":
		return errors.ErrCodePDFGeneration
	case "INVALID_PROFILE":
		return errors.ErrCodeInvalidProfile
	}

	switch status {
	case http.StatusNotFound:
		return errors.ErrCodeResumeNotFound
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return errors.ErrCodeGatewayTimeout
	default:
		return errors.ErrCodeGatewayFailed
	}
}

// getJSON performs a GET and decodes a JSON response.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	result, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if result.status != http.StatusOK {
		return translateFailure(result, http.MethodGet, path)
	}
	if err := json.Unmarshal(result.body, out); err != nil {
		return errors.NewGatewayError(errors.ErrCodeGatewayFailed,
			fmt.Sprintf("Gateway returned malformed JSON for %s", path), err)
	}
	return nil
}

// postJSON performs a POST and decodes a JSON response.
func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	result, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	if result.status != http.StatusOK && result.status != http.StatusCreated {
		return translateFailure(result, http.MethodPost, path)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(result.body, out); err != nil {
		return errors.NewGatewayError(errors.ErrCodeGatewayFailed,
			fmt.Sprintf("Gateway returned malformed JSON for %s", path), err)
	}
	return nil
}

// ListClients returns clients, optionally filtered by module.
func (c *Client) ListClients(ctx context.Context, module string) ([]types.Client, error) {
	path := "/api/clients"
	if module != "" {
		path += "?module=" + url.QueryEscape(module)
	}
	var out struct {
		Clients []types.Client `json:"clients"`
	}
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Clients, nil
}

// ResumeClients returns the clients available to the resume builder.
func (c *Client) ResumeClients(ctx context.Context) ([]types.Client, error) {
	var out struct {
		Clients []types.Client `json:"clients"`
	}
	if err := c.getJSON(ctx, "/api/resume/clients", &out); err != nil {
		return nil, err
	}
	return out.Clients, nil
}

// GetProfile fetches the saved employment profile for a client.
func (c *Client) GetProfile(ctx context.Context, clientID string) (*types.EmploymentProfile, error) {
	var out struct {
		Success bool                    `json:"success"`
		Profile types.EmploymentProfile `json:"profile"`
	}
	if err := c.getJSON(ctx, "/api/resume/profile/"+url.PathEscape(clientID), &out); err != nil {
		return nil, err
	}
	return &out.Profile, nil
}

// SaveProfile persists the employment profile for a client.
func (c *Client) SaveProfile(ctx context.Context, clientID string, profile *types.EmploymentProfile) error {
	body := struct {
		ClientID string                   `json:"client_id"`
		Profile  *types.EmploymentProfile `json:"profile"`
	}{ClientID: clientID, Profile: profile}
	return c.postJSON(ctx, "/api/resume/profile", body, nil)
}

// ListResumes returns the resume records already created for a client.
func (c *Client) ListResumes(ctx context.Context, clientID string) ([]types.ResumeRecord, error) {
	var out struct {
		Success bool                 `json:"success"`
		Resumes []types.ResumeRecord `json:"resumes"`
	}
	if err := c.getJSON(ctx, "/api/resume/list/"+url.PathEscape(clientID), &out); err != nil {
		return nil, err
	}
	return out.Resumes, nil
}

// CreateResume creates a resume record and returns its id.
func (c *Client) CreateResume(ctx context.Context, clientID, templateType, resumeTitle string) (string, error) {
	body := struct {
		ClientID     string `json:"client_id"`
		TemplateType string `json:"template_type"`
		ResumeTitle  string `json:"resume_title"`
	}{ClientID: clientID, TemplateType: templateType, ResumeTitle: resumeTitle}

	var out struct {
		ResumeID string `json:"resume_id"`
	}
	if err := c.postJSON(ctx, "/api/resume/create", body, &out); err != nil {
		return "", err
	}
	if out.ResumeID == "" {
		return "", errors.NewGatewayError(errors.ErrCodeGatewayFailed,
			"Gateway did not return a resume id", nil)
	}
	return out.ResumeID, nil
}

// GeneratePDF asks the gateway to render the resume and returns the
// server-side path it reports.
func (c *Client) GeneratePDF(ctx context.Context, resumeID string) (string, error) {
	var out struct {
		Success bool   `json:"success"`
		PDFPath string `json:"pdf_path"`
	}
	if err := c.postJSON(ctx, "/api/resume/generate-pdf/"+url.PathEscape(resumeID), nil, &out); err != nil {
		return "", err
	}
	if !out.Success {
		return "", errors.NewGatewayError(errors.ErrCodePDFGeneration,
			"Gateway reported PDF generation failure", nil)
	}
	return out.PDFPath, nil
}

// Download fetches the rendered resume. The content type tells the caller
// whether it got a real PDF or printable HTML.
func (c *Client) Download(ctx context.Context, resumeID string) (contentType string, body []byte, err error) {
	path := "/api/resume/download/" + url.PathEscape(resumeID)
	result, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", nil, err
	}
	if result.status != http.StatusOK {
		return "", nil, translateFailure(result, http.MethodGet, path)
	}
	return result.contentType, result.body, nil
}

// ResumeView is the structured resume payload returned by the view endpoint.
type ResumeView struct {
	Record  types.ResumeRecord      `json:"record"`
	Client  types.Client            `json:"client"`
	Profile types.EmploymentProfile `json:"profile"`
}

// ViewResume fetches the structured resume data.
func (c *Client) ViewResume(ctx context.Context, resumeID string) (*ResumeView, error) {
	var out struct {
		Success bool       `json:"success"`
		Resume  ResumeView `json:"resume"`
	}
	if err := c.getJSON(ctx, "/api/resume/view/"+url.PathEscape(resumeID), &out); err != nil {
		return nil, err
	}
	return &out.Resume, nil
}

// PreviewHTML fetches the server-rendered HTML preview of a resume.
func (c *Client) PreviewHTML(ctx context.Context, resumeID string) (string, error) {
	var out struct {
		Success     bool   `json:"success"`
		HTMLContent string `json:"html_content"`
	}
	if err := c.getJSON(ctx, "/api/resume/preview-html/"+url.PathEscape(resumeID), &out); err != nil {
		return "", err
	}
	return out.HTMLContent, nil
}

// OptimizeResult reports the outcome of an ATS optimization pass.
type OptimizeResult struct {
	ATSScoreImprovement int `json:"ats_score_improvement"`
}

// Optimize runs an ATS optimization pass over a resume.
func (c *Client) Optimize(ctx context.Context, resumeID, optimizationType string) (*OptimizeResult, error) {
	body := struct {
		ResumeID         string `json:"resume_id"`
		OptimizationType string `json:"optimization_type"`
	}{ResumeID: resumeID, OptimizationType: optimizationType}

	var out OptimizeResult
	if err := c.postJSON(ctx, "/api/resume/optimize", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// HealthStatus reports the resume service's capability flags.
type HealthStatus struct {
	Status       string `json:"status"`
	PDFRendering bool   `json:"pdf_rendering"`
}

// Health checks the resume service health and capabilities.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var out HealthStatus
	if err := c.getJSON(ctx, "/api/resume/health", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BreakerStats exposes circuit breaker statistics for the stats endpoint.
func (c *Client) BreakerStats() map[string]any {
	return c.breaker.GetStats()
}
