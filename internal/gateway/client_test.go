package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nextchapter/internal/config"
	"nextchapter/internal/errors"
	"nextchapter/internal/types"
)

func testConfig(baseURL string) *config.GatewayConfig {
	return &config.GatewayConfig{
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled: false,
		},
	}
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	return NewClient(testConfig(srv.URL), nil, logger), srv
}

func TestCreateResume(t *testing.T) {
	var gotBody map[string]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/resume/create" || r.Method != http.MethodPost {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := jsonDecode(r, &gotBody); err != nil {
			t.Fatalf("Failed to decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"resume_id": "r42"}`))
	}))

	id, err := client.CreateResume(context.Background(), "c1", "classic", "Classic Resume for Maria Santos")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if id != "r42" {
		t.Errorf("Expected resume id r42, got %q", id)
	}
	if gotBody["client_id"] != "c1" || gotBody["template_type"] != "classic" {
		t.Errorf("Unexpected request body: %v", gotBody)
	}
	if gotBody["resume_title"] != "Classic Resume for Maria Santos" {
		t.Errorf("Unexpected resume title: %q", gotBody["resume_title"])
	}
}

func TestDownloadReportsContentType(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.7 fake"))
	}))

	contentType, body, err := client.Download(context.Background(), "r1")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if contentType != "application/pdf" {
		t.Errorf("Expected application/pdf, got %q", contentType)
	}
	if string(body) != "%PDF-1.7 fake" {
		t.Errorf("Unexpected body: %q", body)
	}
}

func TestErrorCodeTranslation(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		expectedCode string
	}{
		{
			name:         "backend code wins",
			status:       http.StatusNotFound,
			body:         `{"success": false, "code": "PDF_NOT_READY", "message": "PDF not generated yet"}`,
			expectedCode: errors.ErrCodePDFNotReady,
		},
		{
			name:         "plain 404 maps to resume not found",
			status:       http.StatusNotFound,
			body:         `{"error": "Resume not found"}`,
			expectedCode: errors.ErrCodeResumeNotFound,
		},
		{
			name:         "500 maps to gateway failure",
			status:       http.StatusInternalServerError,
			body:         `{"error": "boom"}`,
			expectedCode: errors.ErrCodeGatewayFailed,
		},
		{
			name:         "gateway timeout status",
			status:       http.StatusGatewayTimeout,
			body:         `{}`,
			expectedCode: errors.ErrCodeGatewayTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))

			_, err := client.ViewResume(context.Background(), "r1")
			if err == nil {
				t.Fatalf("Expected error but got none")
			}

			appErr, ok := errors.AsAppError(err)
			if !ok {
				t.Fatalf("Expected AppError, got %T: %v", err, err)
			}
			if appErr.Code != tt.expectedCode {
				t.Errorf("Expected code %s, got %s", tt.expectedCode, appErr.Code)
			}
		})
	}
}

func TestTimeoutTranslation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	logger, _ := errors.New("error")
	cfg := testConfig(srv.URL)
	cfg.Timeout = 20 * time.Millisecond
	client := NewClient(cfg, nil, logger)

	_, err := client.Health(context.Background())
	if err == nil {
		t.Fatalf("Expected timeout error but got none")
	}

	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("Expected AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeGatewayTimeout {
		t.Errorf("Expected %s, got %s", errors.ErrCodeGatewayTimeout, appErr.Code)
	}
}

func TestCircuitBreakerOpensAfterRepeatedFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	logger, _ := errors.New("error")
	cfg := testConfig(srv.URL)
	cfg.CircuitBreaker = config.CircuitBreakerConfig{
		Enabled:          true,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		MinRequests:      3,
		FailureThreshold: 0.5,
	}
	client := NewClient(cfg, nil, logger)

	for i := 0; i < 5; i++ {
		_, _ = client.Health(context.Background())
	}

	_, err := client.Health(context.Background())
	if err == nil {
		t.Fatalf("Expected circuit-open error but got none")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("Expected AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeCircuitOpen {
		t.Errorf("Expected %s, got %s", errors.ErrCodeCircuitOpen, appErr.Code)
	}
}

func TestListResumes(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/resume/list/c1" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "resumes": [
			{"resume_id": "r1", "resume_title": "Classic Resume for Maria Santos", "template_type": "classic"},
			{"resume_id": "r2", "resume_title": "Modern Resume for Maria Santos", "template_type": "modern"}
		]}`))
	}))

	resumes, err := client.ListResumes(context.Background(), "c1")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(resumes) != 2 {
		t.Fatalf("Expected 2 resumes, got %d", len(resumes))
	}
	if resumes[0].ResumeID != "r1" || resumes[1].TemplateType != "modern" {
		t.Errorf("Unexpected resumes: %+v", resumes)
	}
}

func TestSaveProfileSendsClientID(t *testing.T) {
	var got struct {
		ClientID string                   `json:"client_id"`
		Profile  *types.EmploymentProfile `json:"profile"`
	}
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := jsonDecode(r, &got); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true}`))
	}))

	profile := &types.EmploymentProfile{CareerObjective: "Ready"}
	if err := client.SaveProfile(context.Background(), "c9", profile); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got.ClientID != "c9" {
		t.Errorf("Expected client_id c9, got %q", got.ClientID)
	}
	if got.Profile == nil || got.Profile.CareerObjective != "Ready" {
		t.Errorf("Unexpected profile payload: %+v", got.Profile)
	}
}
