package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"transit_ops/internal/middleware"
	"transit_ops/internal/models"
)

// istZone renders stored UTC instants in Indian Standard Time. The offset is
// fixed explicitly rather than read from the host so the conversion is
// auditable and independent of the ambient timezone.
var istZone = time.FixedZone("IST", 5*60*60+30*60)

const requestedTimeLayout = "2006-01-02 15:04:05"

// StopRequestController handles rider-submitted dynamic stop requests.
type StopRequestController struct {
	DB *gorm.DB
}

func NewStopRequestController(db *gorm.DB) *StopRequestController {
	return &StopRequestController{DB: db}
}

type stopRequestResponse struct {
	ID            uint    `json:"id"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	RequestedTime string  `json:"requested_time"`
	Status        string  `json:"status"`
	UserID        uint    `json:"user_id"`
	Username      string  `json:"username"`
}

func toStopRequestResponse(req models.DynamicStopRequest, username string) stopRequestResponse {
	return stopRequestResponse{
		ID:            req.ID,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		RequestedTime: req.RequestedTime.In(istZone).Format(requestedTimeLayout),
		Status:        req.Status,
		UserID:        req.UserID,
		Username:      username,
	}
}

// CreateRequest records a stop request for the authenticated user. The
// request time is set server-side in UTC and the status is forced to
// Pending regardless of what the caller sent.
func (sc *StopRequestController) CreateRequest(c *gin.Context) {
	var input struct {
		Latitude  *float64 `json:"latitude" binding:"required"`
		Longitude *float64 `json:"longitude" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.AuthUserID(c)
	var user models.User
	if err := sc.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	req := models.DynamicStopRequest{
		Latitude:      *input.Latitude,
		Longitude:     *input.Longitude,
		RequestedTime: time.Now().UTC(),
		Status:        models.StatusPending,
		UserID:        user.ID,
	}
	if err := sc.DB.Create(&req).Error; err != nil {
		logrus.WithError(err).Error("CreateRequest: insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create stop request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"request": toStopRequestResponse(req, user.Username)})
}

// ListRequests returns all stop requests with their owning username. A
// request whose owner was deleted is still listed, with the username
// rendered as "Unknown".
func (sc *StopRequestController) ListRequests(c *gin.Context) {
	var requests []models.DynamicStopRequest
	if err := sc.DB.Order("id").Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch stop requests"})
		return
	}

	userIDs := make([]uint, 0, len(requests))
	for _, r := range requests {
		userIDs = append(userIDs, r.UserID)
	}
	var users []models.User
	if len(userIDs) > 0 {
		sc.DB.Where("id IN ?", userIDs).Find(&users)
	}
	names := make(map[uint]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Username
	}

	out := make([]stopRequestResponse, 0, len(requests))
	for _, r := range requests {
		username, ok := names[r.UserID]
		if !ok {
			username = "Unknown"
		}
		out = append(out, toStopRequestResponse(r, username))
	}

	c.JSON(http.StatusOK, gin.H{"data": out})
}

// UpdateRequest applies a partial update. requested_time is immutable:
// any attempt to supply it is rejected outright. A supplied user_id must
// reference an existing user; status may move freely among the three
// enumerated values.
func (sc *StopRequestController) UpdateRequest(c *gin.Context) {
	var req models.DynamicStopRequest
	if err := sc.DB.First(&req, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Stop request not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	var input struct {
		Latitude      *float64 `json:"latitude"`
		Longitude     *float64 `json:"longitude"`
		Status        *string  `json:"status"`
		UserID        *uint    `json:"user_id"`
		RequestedTime *string  `json:"requested_time"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.RequestedTime != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "requested_time is immutable"})
		return
	}
	if input.Status != nil && !models.ValidStopRequestStatus(*input.Status) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "status must be one of Pending, Approved, Rejected"})
		return
	}
	if input.UserID != nil {
		var count int64
		sc.DB.Model(&models.User{}).Where("id = ?", *input.UserID).Count(&count)
		if count == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
	}

	if input.Latitude != nil {
		req.Latitude = *input.Latitude
	}
	if input.Longitude != nil {
		req.Longitude = *input.Longitude
	}
	if input.Status != nil {
		req.Status = *input.Status
	}
	if input.UserID != nil {
		req.UserID = *input.UserID
	}

	if err := sc.DB.Save(&req).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}

	var owner models.User
	username := "Unknown"
	if err := sc.DB.First(&owner, req.UserID).Error; err == nil {
		username = owner.Username
	}
	c.JSON(http.StatusOK, gin.H{"request": toStopRequestResponse(req, username)})
}

// DeleteRequest removes a stop request by id.
func (sc *StopRequestController) DeleteRequest(c *gin.Context) {
	var req models.DynamicStopRequest
	if err := sc.DB.First(&req, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Stop request not found"})
		return
	}

	if err := sc.DB.Delete(&req).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Stop request deleted successfully!"})
}
