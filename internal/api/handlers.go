package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/cases"

	"github.com/lysyi3m/mt-api/internal/catalog"
	"github.com/lysyi3m/mt-api/internal/command"
	"github.com/lysyi3m/mt-api/internal/config"
	"github.com/lysyi3m/mt-api/internal/database"
	"github.com/lysyi3m/mt-api/internal/response"
)

func NewHandler(pipeline *catalog.Pipeline, repo database.CatalogRepository,
	settings *config.Settings, debugAll bool, version string) *Handler {
	return &Handler{
		pipeline: pipeline,
		repo:     repo,
		settings: settings,
		debugAll: debugAll,
		version:  version,
	}
}

var directModes = map[string]command.Mode{
	"info":           command.ModeInfo,
	"listchannels":   command.ModeListChannels,
	"listlivestream": command.ModeListLivestreams,
}

func fold(s string) string {
	return cases.Fold().String(s)
}

// Root dispatches on the mode query parameter
func (h *Handler) Root(c *gin.Context) {
	mode := c.Query("mode")

	switch {
	case mode == "" || fold(mode) == "index":
		h.index(c)
	case fold(mode) == "api":
		h.api(c)
	case isErrorPageMode(mode):
		h.errorPage(c, command.SafeStrToInt(mode[:3]), "")
	default:
		h.errorPage(c, http.StatusNotFound, mode)
	}
}

// isErrorPageMode matches modes of the form NNNpage
func isErrorPageMode(mode string) bool {
	return len(mode) == 7 && strings.Index(mode, "page") == 3
}

func (h *Handler) api(c *gin.Context) {
	ctx := c.Request.Context()

	var result *catalog.Result
	if mode, ok := directModes[fold(c.Query("sub"))]; ok {
		result = h.pipeline.Direct(ctx, mode)
	} else {
		raw, err := readEnvelope(c)
		if err != nil {
			slog.Warn("Failed to read request body", "request_id", c.GetString(requestIDKey), "error", err)
		}
		result = h.pipeline.Envelope(ctx, raw)
	}

	if h.isDebug(c) {
		h.renderDebug(c, result)
		return
	}

	data, err := response.Marshal(result.Envelope, false)
	if err != nil {
		slog.Error("Failed to encode response", "mode", result.Mode.String(), "error", err)
		data, _ = response.Marshal(response.Error(""), false)
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// readEnvelope returns the data1 field of a form encoded POST body
func readEnvelope(c *gin.Context) ([]byte, error) {
	if c.Request.Body == nil {
		return nil, nil
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxPostSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	if len(body) == 0 {
		return nil, nil
	}

	return []byte(formValue(string(body), envelopeField)), nil
}

func (h *Handler) isDebug(c *gin.Context) bool {
	return h.debugAll || h.settings.IsDebugHost(c.Request.Host)
}

func (h *Handler) renderDebug(c *gin.Context, result *catalog.Result) {
	pretty, err := response.Marshal(result.Envelope, true)
	if err != nil {
		slog.Error("Failed to encode response", "mode", result.Mode.String(), "error", err)
	}

	request := result.Request
	if request == "" {
		request = "{}"
	}

	c.HTML(http.StatusOK, "debug.html", debugPage{
		Title:       h.settings.API.Name,
		Version:     h.version,
		RequestID:   c.GetString(requestIDKey),
		Mode:        result.Mode.String(),
		Request:     request,
		Queries:     result.Queries,
		Response:    string(pretty),
		Diagnostics: result.Diagnostics,
	})
}

func (h *Handler) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":   h.settings.API.Name,
		"Version": h.version,
	})
}

func (h *Handler) errorPage(c *gin.Context, code int, site string) {
	c.HTML(http.StatusOK, "error.html", gin.H{
		"Title": h.settings.API.Name,
		"Code":  code,
		"Site":  site,
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   h.version,
		"status":    "ok",
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.settings.GetQueryTimeout())
	defer cancel()

	if count, err := h.repo.GetVideoCount(ctx); err == nil {
		health["videos"] = count
	} else {
		slog.Error("Database error", "operation", "get_video_count", "error", err)
		health["status"] = "degraded"
	}

	c.JSON(http.StatusOK, health)
}
