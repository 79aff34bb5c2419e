package web

import (
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// healthResponse feeds the extension's diagnostics panel.
type healthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	GoVersion     string  `json:"go_version"`
	FFmpegFound   bool    `json:"ffmpeg_found"`
	FFprobeFound  bool    `json:"ffprobe_found"`
	OpenSessions  int     `json:"open_sessions"`
	CPUCores      int     `json:"cpu_cores"`
	MemoryTotalMB uint64  `json:"memory_total_mb"`
	MemoryUsedPct float64 `json:"memory_used_pct"`
	ServerTime    string  `json:"server_time"`
}

// HandleHealthz reports service health and the resources available for
// rendering. Missing ffmpeg degrades the status without failing the check.
func (s *Webserver) HandleHealthz(c echo.Context) error {
	resp := healthResponse{
		Status:       "ok",
		Version:      Version,
		GoVersion:    runtime.Version(),
		OpenSessions: s.sessions.Len(),
		ServerTime:   time.Now().UTC().Format(time.RFC3339),
	}

	if _, err := exec.LookPath("ffmpeg"); err == nil {
		resp.FFmpegFound = true
	}
	if _, err := exec.LookPath("ffprobe"); err == nil {
		resp.FFprobeFound = true
	}
	if !resp.FFmpegFound || !resp.FFprobeFound {
		resp.Status = "degraded"
	}

	if cores, err := cpu.Counts(true); err == nil {
		resp.CPUCores = cores
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		resp.MemoryTotalMB = vm.Total / 1024 / 1024
		resp.MemoryUsedPct = vm.UsedPercent
	}

	return c.JSON(http.StatusOK, resp)
}
