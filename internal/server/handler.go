package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"nextchapter/internal/observability"
	"nextchapter/internal/render"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// createPreviewHandler renders a resume preview from a posted client and
// profile, traced and counted through the observability manager.
func (s *Server) createPreviewHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("nextchapter.api")
		ctx, span := tracer.Start(ctx, "api.preview")
		defer span.End()

		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req PreviewRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Client.FirstName) == "" && strings.TrimSpace(req.Client.LastName) == "" {
			err := fmt.Errorf("missing client name")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing client name", "client.firstName or client.lastName is required", http.StatusBadRequest)
			return
		}

		templateID := req.TemplateID
		if templateID == "" {
			templateID = render.DefaultTemplateID
		}

		span.SetAttributes(
			attribute.String("template.id", templateID),
			attribute.String("operation", "preview"),
		)

		html := render.Render(&req.Client, req.Profile, templateID)

		if m := om.Metrics(); m != nil {
			m.PreviewRenders.Add(ctx, 1,
				metric.WithAttributes(attribute.String("template.id", templateID)))
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.html_length", len(html)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(PreviewResponse{HTML: html, TemplateID: templateID}); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit responses.
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			if wrapper.statusCode == http.StatusTooManyRequests {
				if m := om.Metrics(); m != nil {
					m.RateLimitHits.Add(r.Context(), 1, metric.WithAttributes(
						attribute.String("endpoint", r.URL.Path),
						attribute.String("method", r.Method)))
				}
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
