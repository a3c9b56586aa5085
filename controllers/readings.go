// Package controllers holds the gin handlers. Each controller gets its
// stores and logger injected so tests can run against the in-memory store.
package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/TTPzZ/hermit-home/model"
	"github.com/TTPzZ/hermit-home/store"
	"github.com/TTPzZ/hermit-home/ws"
)

const (
	storeTimeout = 5 * time.Second

	defaultListLimit = 10
	maxListLimit     = 100
)

// ReadingController serves sensor ingest and the read endpoints.
type ReadingController struct {
	readings store.ReadingStore
	hub      *ws.Hub
	logger   zerolog.Logger
}

// NewReadingController creates the controller. hub may be nil when no
// live feed is mounted.
func NewReadingController(readings store.ReadingStore, hub *ws.Hub, logger zerolog.Logger) *ReadingController {
	return &ReadingController{readings: readings, hub: hub, logger: logger}
}

type ingestBody struct {
	UserID      string   `json:"userId"`
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
	Light       *float64 `json:"light"`
}

// Ingest appends a reading to history and, when the device supplied a
// userId, upserts that user's current-stats document. Values are stored
// as received; fields the device omitted stay absent.
func (rc *ReadingController) Ingest(c *gin.Context) {
	var body ingestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var userID *bson.ObjectID
	if body.UserID != "" {
		id, err := bson.ObjectIDFromHex(body.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid userId"})
			return
		}
		userID = &id
	}

	reading := &model.Reading{
		UserID:      userID,
		Temperature: body.Temperature,
		Humidity:    body.Humidity,
		Light:       body.Light,
		CreatedAt:   time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	if err := rc.readings.InsertReading(ctx, reading); err != nil {
		rc.logger.Error().Err(err).Msg("failed to save reading")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save reading"})
		return
	}

	if userID != nil {
		stats := &model.CurrentStats{
			UserID:      *userID,
			Temperature: body.Temperature,
			Humidity:    body.Humidity,
			Light:       body.Light,
			Timestamp:   reading.CreatedAt,
		}
		if err := rc.readings.UpsertCurrentStats(ctx, stats); err != nil {
			rc.logger.Error().Err(err).Str("userId", userID.Hex()).Msg("failed to update current stats")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update current stats"})
			return
		}
	}

	if rc.hub != nil {
		rc.hub.Broadcast(reading)
	}

	c.JSON(http.StatusCreated, gin.H{"message": "reading saved"})
}

// List returns the most recent readings, newest first. Default 10,
// capped at 100.
func (rc *ReadingController) List(c *gin.Context) {
	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	readings, err := rc.readings.LatestReadings(ctx, int64(limit))
	if err != nil {
		rc.logger.Error().Err(err).Msg("failed to fetch readings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch readings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": readings})
}

// Latest returns the single most recent reading across all users.
func (rc *ReadingController) Latest(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	reading, err := rc.readings.LatestReading(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no readings yet"})
			return
		}
		rc.logger.Error().Err(err).Msg("failed to fetch latest reading")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch latest reading"})
		return
	}

	c.JSON(http.StatusOK, reading)
}

// CurrentStats returns the upserted current-stats document for one user.
func (rc *ReadingController) CurrentStats(c *gin.Context) {
	userID, err := bson.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid userId"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	stats, err := rc.readings.CurrentStats(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no current stats for user " + userID.Hex()})
			return
		}
		rc.logger.Error().Err(err).Str("userId", userID.Hex()).Msg("failed to fetch current stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch current stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
