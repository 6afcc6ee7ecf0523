package handler

import (
	"net/http"
	"os"
	"runtime"

	"github.com/osse101/QuestForge_Go/internal/content"
)

// VersionInfo identifies the running build and the content tables it serves
type VersionInfo struct {
	Version        string `json:"version"`
	GoVersion      string `json:"go_version"`
	BuildTime      string `json:"build_time,omitempty"`
	GitCommit      string `json:"git_commit,omitempty"`
	ContentVersion string `json:"content_version,omitempty"`
}

// Build-time variables, set with -ldflags "-X ...handler.Version=..."
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unset"
)

// HandleVersion reports build metadata. A nil provider omits the content version.
// @Summary Build version
// @Tags health
// @Produce json
// @Success 200 {object} VersionInfo
// @Router /version [get]
func HandleVersion(provider content.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info := VersionInfo{
			Version:   buildVersion(),
			GoVersion: runtime.Version(),
			BuildTime: BuildTime,
			GitCommit: GitCommit,
		}
		if provider != nil {
			if t := provider.Tables(r.Context()); t != nil {
				info.ContentVersion = t.Version
			}
		}
		respondJSON(w, http.StatusOK, info)
	}
}

// buildVersion prefers the linker-injected value, then $VERSION
func buildVersion() string {
	if Version != "dev" && Version != "" {
		return Version
	}
	if v := os.Getenv("VERSION"); v != "" {
		return v
	}
	return "dev"
}
