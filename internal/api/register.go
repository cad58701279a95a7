package api

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"membership_system/internal/domain"
	"membership_system/internal/sheets"
	"membership_system/internal/utils"
)

// timestampLayout is the Timestamp column format, set once at append time.
const timestampLayout = "2006-01-02 15:04:05"

// RegisterRequest carries the six membership form fields. All are required
// non-empty; no format checks beyond that.
type RegisterRequest struct {
	Nama     string `json:"nama" binding:"required"`
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	NoWA     string `json:"no_wa" binding:"required"`
	Link     string `json:"link" binding:"required"`
}

// RegisterHandler appends a new member row: six inputs plus the submission
// timestamp. Usernames key every admin operation, so duplicates are rejected
// here rather than resolved ambiguously later.
func RegisterHandler(store MemberStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Member store is not available"})
			return
		}

		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
			return
		}

		ctx := c.Request.Context()
		if _, err := store.FindRowByUsername(ctx, req.Username); err == nil || errors.Is(err, sheets.ErrAmbiguousUsername) {
			c.JSON(http.StatusConflict, gin.H{"error": "Username already registered"})
			return
		} else if !errors.Is(err, sheets.ErrNotFound) {
			logrus.Errorf("username lookup failed: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to check username"})
			return
		}

		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		member := domain.Member{
			Nama:      req.Nama,
			Username:  req.Username,
			Email:     req.Email,
			Password:  hash,
			NoWA:      req.NoWA,
			Link:      req.Link,
			Timestamp: time.Now().Format(timestampLayout),
		}

		if err := store.AppendRow(ctx, member.ToRow()); err != nil {
			logrus.Errorf("append member row failed: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to save registration"})
			return
		}

		// The roster snapshot is stale now.
		if err := utils.DeleteCache(ctx, rdb, utils.MembersCacheKey); err != nil {
			logrus.Warnf("invalidate roster cache: %v", err)
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Registration saved"})
	}
}

// AdminLoginHandler verifies an access code against the configured digest.
// It grants nothing persistent; admin requests carry the code on every call.
func AdminLoginHandler(digest string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			AccessCode string `json:"access_code" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Access denied"})
			return
		}
		sum := utils.SHA256Hex(req.AccessCode)
		if subtle.ConstantTimeCompare([]byte(sum), []byte(digest)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Access denied"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"granted": true})
	}
}
