package handlers

import (
	"net/http"
	"poi-distance-service/internal/api/dto"
	"poi-distance-service/internal/registry"
	"poi-distance-service/internal/render"
	"strings"

	"github.com/gin-gonic/gin"
)

type POIHandler struct {
	Registry *registry.Registry
}

// List returns the registry in order with its bounding box. An optional
// bbox=minLng,minLat,maxLng,maxLat query narrows the list.
func (h *POIHandler) List(c *gin.Context) {
	pois := h.Registry.All()

	if raw := strings.TrimSpace(c.Query("bbox")); raw != "" {
		b, err := render.ParseBBox(raw)
		if err != nil {
			writeError(c, http.StatusBadRequest, err.Error())
			return
		}
		pois = render.Within(pois, b)
	}

	res := dto.ListPOIResponse{
		POIs: make([]dto.POIResponse, 0, len(pois)),
		BBox: render.Bounds(pois),
	}
	for _, p := range pois {
		res.POIs = append(res.POIs, dto.POIResponse{
			Key:   p.Key,
			Label: p.DisplayLabel(),
			Lat:   p.Location.Lat,
			Lng:   p.Location.Lng,
		})
	}

	c.JSON(http.StatusOK, res)
}
