package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/TTPzZ/hermit-home/model"
	"github.com/TTPzZ/hermit-home/store"
)

// ControlController appends actuator commands from the front-end.
type ControlController struct {
	control store.ControlStore
	logger  zerolog.Logger
}

func NewControlController(control store.ControlStore, logger zerolog.Logger) *ControlController {
	return &ControlController{control: control, logger: logger}
}

type controlBody struct {
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
	Light       *float64 `json:"light"`
}

// Create appends a control command. The payload is stored as received.
func (cc *ControlController) Create(c *gin.Context) {
	var body controlBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cmd := &model.ControlCommand{
		Temperature: body.Temperature,
		Humidity:    body.Humidity,
		Light:       body.Light,
		CreatedAt:   time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	if err := cc.control.InsertCommand(ctx, cmd); err != nil {
		cc.logger.Error().Err(err).Msg("failed to save control command")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save control command"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "control command saved"})
}
