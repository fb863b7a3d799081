package handlers

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"poi-distance-service/internal/api/dto"
	"poi-distance-service/internal/domain"
	"poi-distance-service/internal/ports"
	"poi-distance-service/internal/render"
	"poi-distance-service/internal/view"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// How long a position report waits for the view to settle before
	// answering with the current scene.
	settleWait = 2 * time.Second
	maxWait    = 10 * time.Second

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// reporter is implemented by locators fed from the page.
type reporter interface {
	Report(pos ports.Position) bool
	Fail(err error) bool
}

type ViewHandler struct {
	Views        *view.Manager
	NewLocator   func() ports.Locator
	DefaultStyle domain.MarkerStyle
}

func (h *ViewHandler) style(raw string) (domain.MarkerStyle, error) {
	if strings.TrimSpace(raw) == "" {
		return h.DefaultStyle, nil
	}
	return domain.ParseMarkerStyle(raw)
}

// create builds and activates a view. Acquisition outlives the request
// that started it.
func (h *ViewHandler) create(c *gin.Context, style domain.MarkerStyle) (*view.View, error) {
	ctx := context.WithoutCancel(c.Request.Context())
	return h.Views.Create(ctx, h.NewLocator(), style)
}

func (h *ViewHandler) lookup(c *gin.Context) (*view.View, bool) {
	v, ok := h.Views.Get(c.Param("id"))
	if !ok {
		writeError(c, http.StatusNotFound, "view not found")
		return nil, false
	}
	return v, true
}

func (h *ViewHandler) Create(c *gin.Context) {
	var req dto.CreateViewRequest
	if err := decodeOptionalJSON(c, &req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	style, err := h.style(req.Style)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	v, err := h.create(c, style)
	if err != nil {
		log.Printf("op=views.Create err=%v", err)
		writeError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.JSON(http.StatusCreated, v.Scene())
}

// Scene returns the current scene. With ?wait=<duration> it first waits,
// up to a bounded time, for the view to settle.
func (h *ViewHandler) Scene(c *gin.Context) {
	v, ok := h.lookup(c)
	if !ok {
		return
	}

	if raw := c.Query("wait"); raw != "" {
		wait, err := time.ParseDuration(raw)
		if err != nil || wait < 0 {
			writeError(c, http.StatusBadRequest, "wait must be a non-negative duration")
			return
		}
		settle(c.Request.Context(), v, min(wait, maxWait))
	}

	c.JSON(http.StatusOK, v.Scene())
}

// Position accepts the single location outcome reported by the page.
func (h *ViewHandler) Position(c *gin.Context) {
	v, ok := h.lookup(c)
	if !ok {
		return
	}

	rep, ok := v.Locator().(reporter)
	if !ok {
		writeError(c, http.StatusConflict, "view does not accept reported positions")
		return
	}

	var req dto.PositionRequest
	if err := decodeJSON(c, &req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	var accepted bool
	if req.Error != "" {
		reason, err := ports.ParseReason(req.Error)
		if err != nil {
			writeError(c, http.StatusBadRequest, err.Error())
			return
		}
		accepted = rep.Fail(ports.NewLocationError(reason, req.Message))
	} else {
		if req.Lat == nil || req.Lng == nil {
			writeError(c, http.StatusBadRequest, "lat and lng are required")
			return
		}
		coords := domain.Coordinates{Lat: *req.Lat, Lng: *req.Lng}
		if err := coords.Validate(); err != nil {
			writeError(c, http.StatusBadRequest, err.Error())
			return
		}
		accepted = rep.Report(ports.Position{
			Coordinates:    coords,
			AccuracyMeters: req.Accuracy,
			Timestamp:      reportedAt(req.Timestamp),
		})
	}

	if !accepted {
		writeError(c, http.StatusConflict, "position already reported")
		return
	}

	settle(c.Request.Context(), v, settleWait)
	c.JSON(http.StatusOK, v.Scene())
}

func (h *ViewHandler) Camera(c *gin.Context) {
	v, ok := h.lookup(c)
	if !ok {
		return
	}

	var req dto.CameraRequest
	if err := decodeJSON(c, &req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	v.ObserveCamera(view.CameraEvent{Center: req.Center, Zoom: req.Zoom})
	noContent(c)
}

func (h *ViewHandler) Loaded(c *gin.Context) {
	v, ok := h.lookup(c)
	if !ok {
		return
	}

	v.ObserveMapLoaded()
	noContent(c)
}

func (h *ViewHandler) GeoJSON(c *gin.Context) {
	v, ok := h.lookup(c)
	if !ok {
		return
	}

	raw, err := render.GeoJSON(v.Scene()).MarshalJSON()
	if err != nil {
		log.Printf("view_id=%s op=render.GeoJSON err=%v", v.ID(), err)
		writeError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.Data(http.StatusOK, "application/geo+json", raw)
}

func (h *ViewHandler) XLSX(c *gin.Context) {
	v, ok := h.lookup(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := render.WriteXLSX(&buf, v.Scene()); err != nil {
		log.Printf("view_id=%s op=render.WriteXLSX err=%v", v.ID(), err)
		writeError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="distances.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ViewHandler) Delete(c *gin.Context) {
	if !h.Views.Remove(c.Param("id")) {
		writeError(c, http.StatusNotFound, "view not found")
		return
	}
	noContent(c)
}

func settle(ctx context.Context, v *view.View, d time.Duration) {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	_, _ = v.Wait(ctx)
}

// reportedAt converts a browser timestamp (ms since epoch).
func reportedAt(ms float64) time.Time {
	if ms <= 0 {
		return time.Now()
	}
	return time.UnixMilli(int64(ms))
}
