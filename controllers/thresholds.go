package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/TTPzZ/hermit-home/model"
	"github.com/TTPzZ/hermit-home/store"
)

// ThresholdController serves per-user alert bounds.
type ThresholdController struct {
	thresholds store.ThresholdStore
	logger     zerolog.Logger
}

func NewThresholdController(thresholds store.ThresholdStore, logger zerolog.Logger) *ThresholdController {
	return &ThresholdController{thresholds: thresholds, logger: logger}
}

// Get returns the threshold record for a user.
func (tc *ThresholdController) Get(c *gin.Context) {
	userID, err := bson.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid userId"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	threshold, err := tc.thresholds.Threshold(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no thresholds for user " + userID.Hex()})
			return
		}
		tc.logger.Error().Err(err).Str("userId", userID.Hex()).Msg("failed to fetch thresholds")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch thresholds"})
		return
	}

	c.JSON(http.StatusOK, threshold)
}

type thresholdBody struct {
	MinTemperature float64 `json:"minTemperature"`
	MaxTemperature float64 `json:"maxTemperature"`
	MinHumidity    float64 `json:"minHumidity"`
	MaxHumidity    float64 `json:"maxHumidity"`
	MinLight       float64 `json:"minLight"`
	MaxLight       float64 `json:"maxLight"`
}

// Put upserts the threshold record for a user.
func (tc *ThresholdController) Put(c *gin.Context) {
	userID, err := bson.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid userId"})
		return
	}

	var body thresholdBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	threshold := &model.Threshold{
		UserID:         userID,
		MinTemperature: body.MinTemperature,
		MaxTemperature: body.MaxTemperature,
		MinHumidity:    body.MinHumidity,
		MaxHumidity:    body.MaxHumidity,
		MinLight:       body.MinLight,
		MaxLight:       body.MaxLight,
		UpdatedAt:      time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	if err := tc.thresholds.UpsertThreshold(ctx, threshold); err != nil {
		tc.logger.Error().Err(err).Str("userId", userID.Hex()).Msg("failed to save thresholds")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save thresholds"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "thresholds saved"})
}
