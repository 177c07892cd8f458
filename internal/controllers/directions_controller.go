package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"

	"transit_ops/internal/apperrors"
	"transit_ops/internal/models"
)

// DirectionsController fronts the two external HTTP dependencies: the
// OSRM-compatible routing provider and the Overpass stop-discovery API.
// Both calls are synchronous, single-attempt and bounded by the client
// timeout; a failure or non-200 surfaces as 502 to the caller.
type DirectionsController struct {
	DB          *gorm.DB
	Client      *http.Client
	RoutingBase string
	OverpassURL string
}

func NewDirectionsController(db *gorm.DB, routingBase, overpassURL string) *DirectionsController {
	return &DirectionsController{
		DB:          db,
		Client:      &http.Client{Timeout: 10 * time.Second},
		RoutingBase: routingBase,
		OverpassURL: overpassURL,
	}
}

type alternativesInput struct {
	StartLat *float64 `json:"start_lat" binding:"required"`
	StartLon *float64 `json:"start_lon" binding:"required"`
	EndLat   *float64 `json:"end_lat" binding:"required"`
	EndLon   *float64 `json:"end_lon" binding:"required"`
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64         `json:"distance"`
		Duration float64         `json:"duration"`
		Geometry json.RawMessage `json:"geometry"`
	} `json:"routes"`
}

type alternativeRoute struct {
	Distance  float64         `json:"distance"`
	Duration  float64         `json:"duration"`
	NumPoints int             `json:"num_points"`
	Geometry  json.RawMessage `json:"geometry"`
}

// GetAlternativeRoutes proxies to the routing provider, asking for
// alternatives with GeoJSON geometry, and decodes each geometry to report
// its point count alongside the raw line.
func (dc *DirectionsController) GetAlternativeRoutes(c *gin.Context) {
	var input alternativesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// OSRM takes lon,lat pairs.
	reqURL := fmt.Sprintf(
		"%s/route/v1/driving/%f,%f;%f,%f?alternatives=true&overview=full&geometries=geojson",
		strings.TrimRight(dc.RoutingBase, "/"),
		*input.StartLon, *input.StartLat, *input.EndLon, *input.EndLat,
	)

	body, err := dc.fetch(c, http.MethodGet, reqURL, "", nil)
	if err != nil {
		logrus.WithError(err).Warn("GetAlternativeRoutes: routing provider call failed")
		c.JSON(apperrors.Status(err), gin.H{"error": err.Error()})
		return
	}

	var osrm osrmResponse
	if err := json.Unmarshal(body, &osrm); err != nil || osrm.Code != "Ok" {
		c.JSON(http.StatusBadGateway, gin.H{"error": "routing provider returned an unusable response"})
		return
	}

	alternatives := make([]alternativeRoute, 0, len(osrm.Routes))
	for _, r := range osrm.Routes {
		var g geom.T
		numPoints := 0
		if err := gjson.Unmarshal(r.Geometry, &g); err == nil {
			if line, ok := g.(*geom.LineString); ok {
				numPoints = line.NumCoords()
			}
		}
		alternatives = append(alternatives, alternativeRoute{
			Distance:  r.Distance,
			Duration:  r.Duration,
			NumPoints: numPoints,
			Geometry:  r.Geometry,
		})
	}

	c.JSON(http.StatusOK, gin.H{"alternatives": alternatives})
}

type importStopsInput struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
	Radius    int      `json:"radius"`
}

type overpassResponse struct {
	Elements []struct {
		Lat  float64           `json:"lat"`
		Lon  float64           `json:"lon"`
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

// ImportStops queries Overpass for highway=bus_stop nodes around a point
// and inserts the ones whose names are not yet known.
func (dc *DirectionsController) ImportStops(c *gin.Context) {
	var input importStopsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	radius := input.Radius
	if radius <= 0 {
		radius = 1000
	}

	query := fmt.Sprintf(
		`[out:json];node["highway"="bus_stop"](around:%d,%f,%f);out;`,
		radius, *input.Latitude, *input.Longitude,
	)
	form := url.Values{"data": {query}}

	body, err := dc.fetch(c, http.MethodPost, dc.OverpassURL,
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		logrus.WithError(err).Warn("ImportStops: overpass call failed")
		c.JSON(apperrors.Status(err), gin.H{"error": err.Error()})
		return
	}

	var overpass overpassResponse
	if err := json.Unmarshal(body, &overpass); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "stop discovery returned an unusable response"})
		return
	}

	imported := 0
	for _, el := range overpass.Elements {
		name := el.Tags["name"]
		if name == "" {
			continue
		}
		var count int64
		dc.DB.Model(&models.BusStop{}).Where("name = ?", name).Count(&count)
		if count > 0 {
			continue
		}
		stop := models.BusStop{
			Name:      name,
			Latitude:  fmt.Sprintf("%f", el.Lat),
			Longitude: fmt.Sprintf("%f", el.Lon),
		}
		if err := dc.DB.Create(&stop).Error; err != nil {
			logrus.WithError(err).WithField("stop", name).Warn("ImportStops: insert failed")
			continue
		}
		imported++
	}

	c.JSON(http.StatusOK, gin.H{"found": len(overpass.Elements), "imported": imported})
}

// fetch performs a single bounded HTTP call, mapping any transport failure
// or non-200 status to the upstream error class.
func (dc *DirectionsController) fetch(c *gin.Context, method, rawURL, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(c.Request.Context(), method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstream, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := dc.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", apperrors.ErrUpstream, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstream, err)
	}
	return data, nil
}
