package handlers

import (
	"errors"
	"log"
	"net/http"
	"poi-distance-service/internal/api/dto"
	"poi-distance-service/internal/distance"
	"poi-distance-service/internal/domain"
	"poi-distance-service/internal/ports"
	"poi-distance-service/internal/registry"

	"github.com/gin-gonic/gin"
)

// DistanceHandler computes distances for an arbitrary location without
// creating a view.
type DistanceHandler struct {
	Registry *registry.Registry
	Geometry ports.SphericalGeometry
}

func (h *DistanceHandler) Compute(c *gin.Context) {
	var req dto.DistanceRequest
	if err := decodeJSON(c, &req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Lat == nil || req.Lng == nil {
		writeError(c, http.StatusBadRequest, "lat and lng are required")
		return
	}

	user := domain.Coordinates{Lat: *req.Lat, Lng: *req.Lng}
	if err := user.Validate(); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	pois := h.Registry.All()
	d, err := distance.Compute(h.Geometry, user, pois)
	if err != nil {
		if errors.Is(err, distance.ErrGeometryUnavailable) {
			writeError(c, http.StatusServiceUnavailable, "distance engine unavailable")
			return
		}
		log.Printf("op=distance.Compute err=%v", err)
		writeError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.JSON(http.StatusOK, dto.DistanceResponse{
		User:      user,
		Distances: distance.Lines(pois, d),
	})
}
