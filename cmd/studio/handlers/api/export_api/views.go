package export_api

import (
	"github.com/dustin/go-humanize"

	"thirdcoast.systems/clipstudio/internal/render"
	"thirdcoast.systems/clipstudio/pkg/utils/format"
)

// jobStatusView is the job catalog row as the extension's export panel
// renders it. Size and duration are pre-formatted for display.
type jobStatusView struct {
	*render.Job
	Size        string `json:"size,omitempty"`
	Length      string `json:"length,omitempty"`
	DownloadURL string `json:"download_url,omitempty"`
	QRURL       string `json:"qr_url,omitempty"`
}

func jobView(job *render.Job) jobStatusView {
	v := jobStatusView{Job: job}
	if job.SizeBytes > 0 {
		v.Size = humanize.Bytes(uint64(job.SizeBytes))
	}
	if job.Duration > 0 {
		v.Length = format.Duration(job.Duration)
	}
	if job.Status == render.StatusReady {
		v.DownloadURL = "/api/exports/" + job.ID + "/download"
		v.QRURL = "/api/exports/" + job.ID + "/qr"
	}
	return v
}

func jobViews(jobs []*render.Job) []jobStatusView {
	out := make([]jobStatusView, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, jobView(job))
	}
	return out
}
