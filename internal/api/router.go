package api

import (
	"fmt"
	"log"
	"net/http"
	"poi-distance-service/internal/api/handlers"
	"poi-distance-service/internal/domain"
	"poi-distance-service/internal/ports"
	"poi-distance-service/internal/render"
	"poi-distance-service/internal/view"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionName = "poi_session"

type Deps struct {
	Views         *view.Manager
	NewLocator    func() ports.Locator
	APIKey        string
	DefaultStyle  domain.MarkerStyle
	SessionSecret string
	SessionMaxAge time.Duration
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) (http.Handler, error) {
	tmpl, err := render.Templates()
	if err != nil {
		return nil, fmt.Errorf("new router: %w", err)
	}

	secret := d.SessionSecret
	if secret == "" {
		// Sessions will not survive a restart.
		log.Println("SESSION_SECRET not set, using a per-process secret")
		secret = uuid.NewString()
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(d.SessionMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog())
	r.SetHTMLTemplate(tmpl)

	reg := d.Views.Registry()
	viewHandler := &handlers.ViewHandler{
		Views:        d.Views,
		NewLocator:   d.NewLocator,
		DefaultStyle: d.DefaultStyle,
	}
	pageHandler := &handlers.PageHandler{ViewHandler: viewHandler, APIKey: d.APIKey}
	poiHandler := &handlers.POIHandler{Registry: reg}
	distanceHandler := &handlers.DistanceHandler{Registry: reg, Geometry: d.Views.Geometry()}

	r.GET("/health", handlers.Health)
	r.GET("/", sessions.Sessions(sessionName, store), pageHandler.Index)

	apiRoutes := r.Group("/api")
	{
		apiRoutes.GET("/pois", poiHandler.List)
		apiRoutes.POST("/distances", distanceHandler.Compute)

		apiRoutes.POST("/views", viewHandler.Create)
		apiRoutes.GET("/views/:id/scene", viewHandler.Scene)
		apiRoutes.POST("/views/:id/position", viewHandler.Position)
		apiRoutes.POST("/views/:id/camera", viewHandler.Camera)
		apiRoutes.POST("/views/:id/loaded", viewHandler.Loaded)
		apiRoutes.GET("/views/:id/geojson", viewHandler.GeoJSON)
		apiRoutes.GET("/views/:id/distances.xlsx", viewHandler.XLSX)
		apiRoutes.DELETE("/views/:id", viewHandler.Delete)
	}

	return r, nil
}
