package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"transit_ops/internal/models"
)

// CrowdController handles bus stops, crowd reports and the heatmap.
type CrowdController struct {
	DB *gorm.DB
}

func NewCrowdController(db *gorm.DB) *CrowdController {
	return &CrowdController{DB: db}
}

// ListBusStops returns every known stop.
func (cc *CrowdController) ListBusStops(c *gin.Context) {
	var stops []models.BusStop
	if err := cc.DB.Order("id").Find(&stops).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch bus stops"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stops})
}

type crowdReportInput struct {
	StopName        string   `json:"stop_name" binding:"required"`
	CrowdLevel      string   `json:"crowd_level" binding:"required"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	ReportedByVoice bool     `json:"reported_by_voice"`
}

// SubmitCrowdReport appends a crowd report, creating the stop first when it
// is unknown and coordinates were supplied. Reports are immutable once
// written.
func (cc *CrowdController) SubmitCrowdReport(c *gin.Context) {
	cc.submitReport(c, false)
}

// SubmitVoiceStop is the voice-assistant entry point: same contract as
// SubmitCrowdReport with the voice flag forced on.
func (cc *CrowdController) SubmitVoiceStop(c *gin.Context) {
	cc.submitReport(c, true)
}

func (cc *CrowdController) submitReport(c *gin.Context, forceVoice bool) {
	var input crowdReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if forceVoice {
		input.ReportedByVoice = true
	}

	tx := cc.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start transaction"})
		return
	}

	var stop models.BusStop
	err := tx.Where("name = ?", input.StopName).First(&stop).Error
	if err != nil {
		if input.Latitude == nil || input.Longitude == nil {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"error": "stop not found and no coordinates provided"})
			return
		}
		stop = models.BusStop{
			Name:      input.StopName,
			Latitude:  strconv.FormatFloat(*input.Latitude, 'f', -1, 64),
			Longitude: strconv.FormatFloat(*input.Longitude, 'f', -1, 64),
		}
		if err := tx.Create(&stop).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create bus stop: " + err.Error()})
			return
		}
	}

	report := models.CrowdReport{
		StopID:          stop.ID,
		CrowdLevel:      input.CrowdLevel,
		ReportedByVoice: input.ReportedByVoice,
		Timestamp:       time.Now().UTC(),
	}
	if err := tx.Create(&report).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record crowd report: " + err.Error()})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "transaction commit failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"report": report, "stop": stop})
}

type heatmapRow struct {
	StopID     uint      `json:"stop_id"`
	StopName   string    `json:"stop_name"`
	Latitude   string    `json:"-"`
	Longitude  string    `json:"-"`
	CrowdLevel string    `json:"crowd_level"`
	Timestamp  time.Time `json:"timestamp"`
	ReportID   uint      `json:"-"`
}

type heatmapEntry struct {
	StopID     uint    `json:"stop_id"`
	StopName   string  `json:"stop_name"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	CrowdLevel string  `json:"crowd_level"`
	Timestamp  string  `json:"timestamp"`
}

// CrowdHeatmap returns one entry per stop that has at least one report,
// carrying the crowd level of the report with the latest timestamp. A
// grouped-max subquery is joined back to the detail row; timestamp ties are
// broken by the greater report id (last write wins).
func (cc *CrowdController) CrowdHeatmap(c *gin.Context) {
	sub := cc.DB.Model(&models.CrowdReport{}).
		Select("stop_id, MAX(timestamp) AS max_ts").
		Group("stop_id")

	var rows []heatmapRow
	err := cc.DB.Model(&models.CrowdReport{}).
		Select("crowd_reports.stop_id AS stop_id, bus_stops.name AS stop_name, bus_stops.latitude AS latitude, bus_stops.longitude AS longitude, crowd_reports.crowd_level AS crowd_level, crowd_reports.timestamp AS timestamp, crowd_reports.id AS report_id").
		Joins("JOIN (?) latest ON latest.stop_id = crowd_reports.stop_id AND latest.max_ts = crowd_reports.timestamp", sub).
		Joins("JOIN bus_stops ON bus_stops.id = crowd_reports.stop_id AND bus_stops.deleted_at IS NULL").
		Order("crowd_reports.stop_id, crowd_reports.id").
		Scan(&rows).Error
	if err != nil {
		logrus.WithError(err).Error("CrowdHeatmap: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute heatmap"})
		return
	}

	// The join yields multiple rows per stop when timestamps tie; keep the
	// one with the greatest report id.
	winners := make(map[uint]heatmapRow, len(rows))
	order := make([]uint, 0, len(rows))
	for _, row := range rows {
		prev, seen := winners[row.StopID]
		if !seen {
			order = append(order, row.StopID)
			winners[row.StopID] = row
			continue
		}
		if row.ReportID > prev.ReportID {
			winners[row.StopID] = row
		}
	}

	out := make([]heatmapEntry, 0, len(order))
	for _, stopID := range order {
		row := winners[stopID]
		lat, latErr := strconv.ParseFloat(row.Latitude, 64)
		lon, lonErr := strconv.ParseFloat(row.Longitude, 64)
		if latErr != nil || lonErr != nil {
			logrus.WithField("stop_id", row.StopID).Warn("CrowdHeatmap: unparseable stop coordinates")
		}
		out = append(out, heatmapEntry{
			StopID:     row.StopID,
			StopName:   row.StopName,
			Latitude:   lat,
			Longitude:  lon,
			CrowdLevel: row.CrowdLevel,
			Timestamp:  row.Timestamp.In(istZone).Format(requestedTimeLayout),
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": out})
}
