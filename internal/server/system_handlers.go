package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/domufi/analytics/internal/cache"
	"github.com/domufi/analytics/internal/database"
	"github.com/domufi/analytics/internal/scheduler"
)

// SystemHandlers serves health, status and job endpoints
type SystemHandlers struct {
	databases   []*database.DB
	memo        *cache.Memo
	scheduler   *scheduler.Scheduler
	dataDir     string
	startupTime time.Time
	log         zerolog.Logger
}

// DatabaseStatus reports one database's health and size
type DatabaseStatus struct {
	Name    string          `json:"name"`
	Healthy bool            `json:"healthy"`
	Error   string          `json:"error,omitempty"`
	Stats   *database.Stats `json:"stats,omitempty"`
}

// SystemStatusResponse is the body of GET /api/system/status
type SystemStatusResponse struct {
	Timestamp     time.Time        `json:"timestamp"`
	UptimeSeconds int64            `json:"uptime_seconds"`
	CPUPercent    float64          `json:"cpu_percent"`
	MemoryPercent float64          `json:"memory_percent"`
	DiskFreeGB    float64          `json:"disk_free_gb"`
	Databases     []DatabaseStatus `json:"databases"`
	Cache         *cache.Stats     `json:"cache,omitempty"`
	Jobs          []string         `json:"jobs"`
}

// NewSystemHandlers creates system handlers. memo and sched may be nil.
func NewSystemHandlers(
	databases []*database.DB,
	memo *cache.Memo,
	sched *scheduler.Scheduler,
	dataDir string,
	log zerolog.Logger,
) *SystemHandlers {
	return &SystemHandlers{
		databases:   databases,
		memo:        memo,
		scheduler:   sched,
		dataDir:     dataDir,
		startupTime: time.Now(),
		log:         log.With().Str("handler", "system").Logger(),
	}
}

// RegisterRoutes registers system routes
func (h *SystemHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/system", func(r chi.Router) {
		r.Get("/health", h.HandleHealth)
		r.Get("/status", h.HandleStatus)
		r.Get("/jobs", h.HandleListJobs)
		r.Post("/jobs/{name}", h.HandleTriggerJob)
	})
}

// HandleHealth handles GET /api/system/health. Responds 503 when any database is unreachable.
func (h *SystemHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := http.StatusOK
	statuses := make([]DatabaseStatus, 0, len(h.databases))
	for _, db := range h.databases {
		s := DatabaseStatus{Name: db.Name(), Healthy: true}
		if err := db.QuickCheck(ctx); err != nil {
			s.Healthy = false
			s.Error = err.Error()
			status = http.StatusServiceUnavailable
		}
		statuses = append(statuses, s)
	}

	h.writeJSON(w, status, map[string]interface{}{
		"healthy":   status == http.StatusOK,
		"databases": statuses,
	})
}

// HandleStatus handles GET /api/system/status
func (h *SystemHandlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	cpuPercent, memPercent := h.getSystemStats()

	response := SystemStatusResponse{
		Timestamp:     time.Now(),
		UptimeSeconds: int64(time.Since(h.startupTime).Seconds()),
		CPUPercent:    cpuPercent,
		MemoryPercent: memPercent,
		DiskFreeGB:    h.getDiskFreeGB(),
		Databases:     make([]DatabaseStatus, 0, len(h.databases)),
		Jobs:          []string{},
	}

	for _, db := range h.databases {
		s := DatabaseStatus{Name: db.Name(), Healthy: true}
		stats, err := db.GetStats(r.Context())
		if err != nil {
			s.Healthy = false
			s.Error = err.Error()
		} else {
			s.Stats = stats
		}
		response.Databases = append(response.Databases, s)
	}

	if h.memo != nil {
		stats := h.memo.Stats()
		response.Cache = &stats
	}
	if h.scheduler != nil {
		response.Jobs = h.scheduler.JobNames()
	}

	h.writeJSON(w, http.StatusOK, response)
}

// HandleListJobs handles GET /api/system/jobs
func (h *SystemHandlers) HandleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs := []string{}
	if h.scheduler != nil {
		jobs = h.scheduler.JobNames()
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"jobs": jobs})
}

// HandleTriggerJob handles POST /api/system/jobs/{name}
func (h *SystemHandlers) HandleTriggerJob(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if h.scheduler == nil {
		h.writeError(w, http.StatusServiceUnavailable, "Scheduler not available")
		return
	}

	if err := h.scheduler.Trigger(name); err != nil {
		if errors.Is(err, scheduler.ErrUnknownJob) {
			h.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		h.log.Error().Err(err).Str("job", name).Msg("Manual job run failed")
		h.writeError(w, http.StatusInternalServerError, "Job failed: "+err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"job":    name,
	})
}

// getSystemStats returns CPU and RAM usage percentages.
// CPU is sampled over 100ms to keep the call fast.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}

func (h *SystemHandlers) getDiskFreeGB() float64 {
	if h.dataDir == "" {
		return 0
	}
	usage, err := disk.Usage(h.dataDir)
	if err != nil {
		h.log.Warn().Err(err).Str("dir", h.dataDir).Msg("Failed to get disk usage")
		return 0
	}
	return float64(usage.Free) / 1e9
}

func (h *SystemHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *SystemHandlers) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
