package handlers

import (
	"net/http"
	"time"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService *service.SystemService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status            string     `json:"status"`
	Database          string     `json:"database"`
	LastRefresh       *time.Time `json:"lastRefresh,omitempty"`
	RefreshAgeSeconds *float64   `json:"refreshAgeSeconds,omitempty"`
	Error             string     `json:"error,omitempty"`
}

// Health reports database connectivity and snapshot freshness.
//
// Endpoint: GET /api/system/health
// Response: 200 OK with status "healthy", or "stale" when the last refresh is too old
// Error: 503 Service Unavailable when the database is down or no snapshot exists yet
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	status, err := h.systemService.CheckHealth()

	resp := HealthResponse{
		Status:            "healthy",
		Database:          status.Database,
		LastRefresh:       status.LastRefresh,
		RefreshAgeSeconds: status.RefreshAgeSecs,
	}

	if err != nil {
		resp.Status = "unhealthy"
		resp.Error = err.Error()
		response.RespondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	if !status.SnapshotCurrent {
		resp.Status = "stale"
	}

	response.RespondJSON(w, http.StatusOK, resp)
}

// VersionInfoResponse represents the version check response
type VersionInfoResponse struct {
	AppVersion string `json:"app_version"`
}

// Version handles GET requests to retrieve version information.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with VersionInfoResponse
// Error: 500 Internal Server Error if version check fails
func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	version, err := h.systemService.CheckVersion()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to get version information", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, VersionInfoResponse{AppVersion: version})
}
