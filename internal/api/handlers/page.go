package handlers

import (
	"log"
	"net/http"
	"poi-distance-service/internal/render"
	"poi-distance-service/internal/view"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	// SessionViewsKey holds the comma-separated ids of the views owned by
	// a browser session, oldest first.
	SessionViewsKey = "view_ids"

	// MaxSessionViews bounds how many open pages one session may own.
	// Creating one more tears down the oldest.
	MaxSessionViews = 8
)

// PageHandler serves the map page. Each page load mounts its own view,
// which the page deletes when it goes away. Views left behind are
// removed by the TTL sweep or by the per-session cap.
type PageHandler struct {
	ViewHandler *ViewHandler
	APIKey      string
}

func (h *PageHandler) Index(c *gin.Context) {
	style, err := h.ViewHandler.style(c.Query("style"))
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	v, err := h.ViewHandler.create(c, style)
	if err != nil {
		log.Printf("op=page.Index err=%v", err)
		writeError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	session := sessions.Default(c)
	raw, _ := session.Get(SessionViewsKey).(string)
	ids := ownViews(h.ViewHandler.Views, raw, v.ID())

	session.Set(SessionViewsKey, strings.Join(ids, ","))
	if err := session.Save(); err != nil {
		log.Printf("op=session.Save view_id=%s err=%v", v.ID(), err)
	}

	c.HTML(http.StatusOK, render.IndexTemplate, render.Page{
		APIKey: h.APIKey,
		Scene:  v.Scene(),
	})
}

// ownViews drops ids that are no longer live, appends id and evicts the
// oldest views beyond MaxSessionViews. It returns the ids to keep.
func ownViews(views *view.Manager, raw, id string) []string {
	ids := make([]string, 0, MaxSessionViews)
	for _, prev := range strings.Split(raw, ",") {
		if prev == "" || prev == id {
			continue
		}
		if _, ok := views.Get(prev); ok {
			ids = append(ids, prev)
		}
	}
	ids = append(ids, id)

	if extra := len(ids) - MaxSessionViews; extra > 0 {
		for _, old := range ids[:extra] {
			views.Remove(old)
		}
		ids = ids[extra:]
	}
	return ids
}
