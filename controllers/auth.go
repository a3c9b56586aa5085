package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/TTPzZ/hermit-home/auth"
	"github.com/TTPzZ/hermit-home/model"
	"github.com/TTPzZ/hermit-home/store"
)

const tokenTTL = 24 * time.Hour

// AuthController handles registration, login and profile lookup.
// Passwords are stored as bcrypt hashes and never returned to the client.
type AuthController struct {
	users     store.UserStore
	jwtSecret []byte
	logger    zerolog.Logger
}

func NewAuthController(users store.UserStore, jwtSecret []byte, logger zerolog.Logger) *AuthController {
	return &AuthController{users: users, jwtSecret: jwtSecret, logger: logger}
}

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a credential record with a hashed password.
func (ac *AuthController) Register(c *gin.Context) {
	var body credentialsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.Email == "" || body.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	exists, err := ac.users.EmailExists(ctx, body.Email)
	if err != nil {
		ac.logger.Error().Err(err).Str("email", body.Email).Msg("failed to check email existence")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{"error": "this email address is already registered"})
		return
	}

	hashedPassword, err := auth.HashPassword(body.Password)
	if err != nil {
		ac.logger.Error().Err(err).Msg("failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	user := &model.User{
		Email:     body.Email,
		Password:  hashedPassword,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	id, err := ac.users.CreateUser(ctx, user)
	if err != nil {
		ac.logger.Error().Err(err).Str("email", body.Email).Msg("failed to create user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	ac.logger.Info().Str("userId", id.Hex()).Msg("user registered")
	c.JSON(http.StatusCreated, gin.H{"message": "user created successfully"})
}

// Login verifies a credential against its bcrypt hash and returns a
// signed token. Unknown email and wrong password produce the same 401.
func (ac *AuthController) Login(c *gin.Context) {
	var body credentialsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	user, err := ac.users.UserByEmail(ctx, body.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		ac.logger.Error().Err(err).Str("email", body.Email).Msg("failed to look up user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if !auth.CheckPasswordHash(body.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	token, err := auth.GenerateToken(ac.jwtSecret, user.ID.Hex(), tokenTTL)
	if err != nil {
		ac.logger.Error().Err(err).Msg("failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID.Hex(),
			"email": user.Email,
		},
	})
}

// Me returns the authenticated user's profile. Requires the auth
// middleware to have put the user id on the context.
func (ac *AuthController) Me(c *gin.Context) {
	userID, err := bson.ObjectIDFromHex(c.GetString(auth.ContextUserKey))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	user, err := ac.users.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		ac.logger.Error().Err(err).Str("userId", userID.Hex()).Msg("failed to look up user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    user.ID.Hex(),
		"email": user.Email,
	})
}
