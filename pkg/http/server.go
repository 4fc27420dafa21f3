package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.temporal.io/sdk/client"

	"github.com/leowmjw/go-radial-chronology/pkg/chronology"
	"github.com/leowmjw/go-radial-chronology/pkg/hcl"
	"github.com/leowmjw/go-radial-chronology/pkg/temporal"
)

// TaskQueue is the Temporal task queue layout workflows run on.
const TaskQueue = "chronology-task-queue"

// Server represents the HTTP server for the chronology service
type Server struct {
	logger         *slog.Logger
	temporalClient client.Client
	addr           string
}

// NewServer creates a new HTTP server
func NewServer(logger *slog.Logger, temporalClient client.Client, addr string) *Server {
	return &Server{
		logger:         logger,
		temporalClient: temporalClient,
		addr:           addr,
	}
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()

	// Register routes
	mux.HandleFunc("POST /timelines/{id}/layout", s.handleLayout)
	mux.HandleFunc("POST /timelines/{id}/span", s.handleSpan)
	mux.HandleFunc("GET /health", s.handleHealth)

	// Add middleware
	handler := s.loggingMiddleware(mux)

	server := &http.Server{
		Addr:    s.addr,
		Handler: handler,
	}

	s.logger.Info("Starting HTTP server", "addr", s.addr)

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	// Wait for context cancellation or server error
	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}
}

// Layout endpoint: runs the full layout workflow for a timeline. The body
// may be a JSON LayoutRequest or an HCL timeline definition; with no scenes
// in the body the workflow loads them from the scene store.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	timelineID := r.PathValue("id")
	if timelineID == "" {
		s.respondError(w, http.StatusBadRequest, "timeline ID is required")
		return
	}

	request, err := s.decodeLayoutRequest(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Ensure timeline ID matches the path
	request.TimelineID = timelineID

	s.logger.Info("Processing layout request", "timelineID", timelineID, "scenes", len(request.Scenes))

	workflowID := temporal.GenerateLayoutWorkflowID(timelineID)

	workflowRun, err := s.temporalClient.ExecuteWorkflow(
		r.Context(),
		client.StartWorkflowOptions{
			ID:        workflowID,
			TaskQueue: TaskQueue,
		},
		temporal.LayoutWorkflow,
		*request,
	)

	if err != nil {
		s.logger.Error("Failed to start layout workflow", "error", err)
		s.respondError(w, http.StatusInternalServerError, "failed to start layout")
		return
	}

	// Wait for result
	var result *temporal.LayoutResult
	err = workflowRun.Get(r.Context(), &result)
	if err != nil {
		s.logger.Error("Layout workflow failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "layout execution failed")
		return
	}

	s.logger.Info("Layout completed", "timelineID", timelineID,
		"ticks", len(result.Ticks), "discontinuities", len(result.Discontinuities))
	s.respondJSON(w, http.StatusOK, result)
}

// decodeLayoutRequest reads the request body in whichever format it arrived.
func (s *Server) decodeLayoutRequest(r *http.Request) (*temporal.LayoutRequest, error) {
	contentType, err := hcl.DetectContentType(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body")
	}

	if contentType == hcl.ContentTypeHCL {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read request body")
		}
		request, err := hcl.ParseHCLTimeline(string(body))
		if err != nil {
			return nil, fmt.Errorf("invalid HCL body: %v", err)
		}
		return request, nil
	}

	var request temporal.LayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		return nil, fmt.Errorf("invalid JSON body")
	}
	return &request, nil
}

// SpanRequest is the body for the span endpoint.
type SpanRequest struct {
	Scenes []temporal.SceneInput `json:"scenes"`
}

// SpanResponse reports the span of the dated scenes plus what was skipped.
type SpanResponse struct {
	TimelineID       string                  `json:"timeline_id"`
	Span             chronology.TimeSpanInfo `json:"span"`
	DatedScenes      int                     `json:"dated_scenes"`
	UndatedScenes    int                     `json:"undated_scenes"`
	InvalidDurations []int                   `json:"invalid_durations,omitempty"`
}

// Span endpoint: a lightweight in-process probe that parses scenes and
// reports their overall span without starting a workflow.
func (s *Server) handleSpan(w http.ResponseWriter, r *http.Request) {
	timelineID := r.PathValue("id")
	if timelineID == "" {
		s.respondError(w, http.StatusBadRequest, "timeline ID is required")
		return
	}

	var request SpanRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if len(request.Scenes) == 0 {
		s.respondError(w, http.StatusBadRequest, "at least one scene is required")
		return
	}

	response := SpanResponse{TimelineID: timelineID}
	var instants []time.Time
	for i, scene := range request.Scenes {
		instant, err := chronology.ParseWhen(scene.When)
		if err != nil {
			response.UndatedScenes++
		} else {
			response.DatedScenes++
			instants = append(instants, instant)
		}
		if scene.Duration != "" {
			if detail := chronology.ParseDurationDetail(scene.Duration); detail == nil {
				response.InvalidDurations = append(response.InvalidDurations, i)
			}
		}
	}
	response.Span = chronology.CalculateTimeSpan(instants)

	s.logger.Info("Span computed", "timelineID", timelineID,
		"dated", response.DatedScenes, "undated", response.UndatedScenes)
	s.respondJSON(w, http.StatusOK, response)
}

// Health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// Middleware for request logging
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap ResponseWriter to capture status code
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		duration := time.Since(start)

		s.logger.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapper.statusCode,
			"duration", duration,
			"user_agent", r.UserAgent(),
		)
	})
}

// Response helpers
func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("Failed to encode JSON response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.logger.Warn("HTTP error response", "status", status, "message", message)
	s.respondJSON(w, status, map[string]string{"error": message})
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
