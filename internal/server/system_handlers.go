package server

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aristath/exportadvisor/internal/database"
	"github.com/aristath/exportadvisor/internal/scheduler"
)

// BlobHealth checks the object store. *blobstore.Client satisfies it.
type BlobHealth interface {
	Health(ctx context.Context) error
	Bucket() string
}

// MarketCounter reports how many market records are stored
type MarketCounter interface {
	Counts(ctx context.Context) (insights int, countries int, err error)
}

// SystemHandlers handles system-wide monitoring and job triggers
type SystemHandlers struct {
	log         zerolog.Logger
	dataDir     string
	startupTime time.Time
	databases   map[string]*database.DB
	market      MarketCounter
	blob        BlobHealth
	scheduler   *scheduler.Scheduler
	jobs        map[string]scheduler.Job
}

// NewSystemHandlers creates a new system handlers instance.
// blob, market and sched may be nil.
func NewSystemHandlers(
	log zerolog.Logger,
	dataDir string,
	databases map[string]*database.DB,
	market MarketCounter,
	blob BlobHealth,
	sched *scheduler.Scheduler,
	jobs map[string]scheduler.Job,
) *SystemHandlers {
	if jobs == nil {
		jobs = map[string]scheduler.Job{}
	}
	return &SystemHandlers{
		log:         log.With().Str("handler", "system").Logger(),
		dataDir:     dataDir,
		startupTime: time.Now(),
		databases:   databases,
		market:      market,
		blob:        blob,
		scheduler:   sched,
		jobs:        jobs,
	}
}

// SystemStatusResponse represents system status
type SystemStatusResponse struct {
	Status        string            `json:"status"` // "healthy" or "degraded"
	UptimeSeconds int64             `json:"uptime_seconds"`
	CPUPercent    float64           `json:"cpu_percent"`
	RAMPercent    float64           `json:"ram_percent"`
	Databases     map[string]string `json:"databases"`
	ObjectStorage string            `json:"object_storage"`
	Insights      int               `json:"insights"`
	Countries     int               `json:"countries"`
}

// DBInfo represents database statistics
type DBInfo struct {
	Name  string          `json:"name"`
	Path  string          `json:"path"`
	Stats *database.Stats `json:"stats,omitempty"`
	Error string          `json:"error,omitempty"`
}

// DatabaseStatsResponse represents database statistics
type DatabaseStatsResponse struct {
	Databases   []DBInfo `json:"databases"`
	TotalSizeMB float64  `json:"total_size_mb"`
	LastChecked string   `json:"last_checked"`
}

// DiskUsageResponse represents disk usage statistics
type DiskUsageResponse struct {
	DataDirMB float64 `json:"data_dir_mb"`
}

// JobsStatusResponse lists registered jobs
type JobsStatusResponse struct {
	Jobs []scheduler.JobStatus `json:"jobs"`
}

// HandleSystemStatus returns comprehensive system status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting system status")

	ctx := r.Context()
	response := SystemStatusResponse{
		Status:        "healthy",
		UptimeSeconds: int64(time.Since(h.startupTime).Seconds()),
		Databases:     make(map[string]string, len(h.databases)),
		ObjectStorage: "disabled",
	}

	response.CPUPercent, response.RAMPercent = h.getSystemStats()

	for _, name := range h.databaseNames() {
		if err := h.databases[name].QuickCheck(ctx); err != nil {
			h.log.Warn().Err(err).Str("database", name).Msg("Database check failed")
			response.Databases[name] = err.Error()
			response.Status = "degraded"
			continue
		}
		response.Databases[name] = "ok"
	}

	if h.blob != nil {
		if err := h.blob.Health(ctx); err != nil {
			h.log.Warn().Err(err).Msg("Object storage check failed")
			response.ObjectStorage = err.Error()
			response.Status = "degraded"
		} else {
			response.ObjectStorage = "ok"
		}
	}

	if h.market != nil {
		insights, countries, err := h.market.Counts(ctx)
		if err != nil {
			h.log.Warn().Err(err).Msg("Failed to count market records")
			response.Status = "degraded"
		}
		response.Insights = insights
		response.Countries = countries
	}

	h.writeJSON(w, http.StatusOK, response)
}

// HandleDatabaseStats returns per-database statistics
func (h *SystemHandlers) HandleDatabaseStats(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting database stats")

	response := DatabaseStatsResponse{
		Databases:   []DBInfo{},
		LastChecked: time.Now().Format(time.RFC3339),
	}

	for _, name := range h.databaseNames() {
		db := h.databases[name]
		info := DBInfo{Name: name, Path: db.Path()}

		stats, err := db.GetStats()
		if err != nil {
			h.log.Warn().Err(err).Str("database", name).Msg("Failed to get database stats")
			info.Error = err.Error()
		} else {
			info.Stats = stats
			response.TotalSizeMB += float64(stats.SizeBytes+stats.WALSizeBytes) / 1024 / 1024
		}

		response.Databases = append(response.Databases, info)
	}

	h.writeJSON(w, http.StatusOK, response)
}

// HandleDiskUsage returns disk usage statistics
func (h *SystemHandlers) HandleDiskUsage(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting disk usage")

	h.writeJSON(w, http.StatusOK, DiskUsageResponse{
		DataDirMB: h.getDirSize(h.dataDir),
	})
}

// HandleJobsStatus returns the schedule and last outcome of every job
func (h *SystemHandlers) HandleJobsStatus(w http.ResponseWriter, r *http.Request) {
	response := JobsStatusResponse{Jobs: []scheduler.JobStatus{}}
	if h.scheduler != nil {
		response.Jobs = h.scheduler.Status()
	}
	h.writeJSON(w, http.StatusOK, response)
}

// HandleTriggerJob runs a registered job in the background
// POST /api/system/jobs/{name}
func (h *SystemHandlers) HandleTriggerJob(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	job, ok := h.jobs[name]
	if !ok || h.scheduler == nil {
		http.Error(w, "Unknown job: "+name, http.StatusNotFound)
		return
	}

	h.log.Info().Str("job", name).Msg("Manual job trigger")

	if err := h.scheduler.Trigger(job); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	h.writeJSON(w, http.StatusAccepted, map[string]string{
		"status":  "success",
		"message": name + " triggered successfully",
	})
}

func (h *SystemHandlers) databaseNames() []string {
	names := make([]string, 0, len(h.databases))
	for name, db := range h.databases {
		if db != nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// getDirSize calculates total size of a directory in MB
func (h *SystemHandlers) getDirSize(dirPath string) float64 {
	var totalSize int64

	err := filepath.Walk(dirPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}
		if !info.IsDir() {
			totalSize += info.Size()
		}
		return nil
	})

	if err != nil {
		h.log.Warn().Err(err).Str("dir", dirPath).Msg("Failed to calculate directory size")
		return 0
	}

	return float64(totalSize) / 1024 / 1024
}

// getSystemStats calculates CPU and RAM usage percentages
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	// 100ms sample keeps the status call fast
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

func (h *SystemHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}
