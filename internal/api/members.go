package api

import (
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

const rosterCacheTTL = 60 * time.Second

// MemberResponse is a roster entry as shown to the admin. The password
// column is projected out of the displayed table only; the stored record
// keeps it for downstream use (card generation).
type MemberResponse struct {
	Index     int    `json:"index"`
	Nama      string `json:"nama"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	NoWA      string `json:"no_wa"`
	Link      string `json:"link"`
	Timestamp string `json:"timestamp"`
}

// EditMemberRequest carries the edit form. Password is the only optional
// field: empty means keep the stored digest.
type EditMemberRequest struct {
	Nama     string `json:"nama" binding:"required"`
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password"`
	NoWA     string `json:"no_wa" binding:"required"`
	Link     string `json:"link" binding:"required"`
}

// ListMembersHandler returns the full roster with a 1-based display index.
// The snapshot is cached briefly and invalidated by every mutation.
func ListMembersHandler(store MemberStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Member store is not available"})
			return
		}

		ctx := c.Request.Context()
		var cached struct {
			Members []MemberResponse `json:"members"`
			Total   int              `json:"total"`
		}
		found, err := utils.GetCache(ctx, rdb, utils.MembersCacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"members": cached.Members,
				"total":   cached.Total,
				"cached":  true,
			})
			return
		}

		members, err := store.ReadAll(ctx)
		if err != nil {
			logrus.Errorf("read member table failed: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load member table"})
			return
		}

		resp := make([]MemberResponse, len(members))
		for i, m := range members {
			resp[i] = MemberResponse{
				Index:     i + 1,
				Nama:      m.Nama,
				Username:  m.Username,
				Email:     m.Email,
				NoWA:      m.NoWA,
				Link:      m.Link,
				Timestamp: m.Timestamp,
			}
		}

		respData := gin.H{
			"members": resp,
			"total":   len(resp),
			"cached":  false,
		}
		_ = utils.SetCache(ctx, rdb, utils.MembersCacheKey, respData, rosterCacheTTL)
		c.JSON(http.StatusOK, respData)
	}
}

// EditMemberHandler overwrites a member row in place. The row is re-resolved
// by username immediately before writing; a vanished row is reported, never
// papered over. The Timestamp column is immutable and never touched.
func EditMemberHandler(store MemberStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Member store is not available"})
			return
		}

		username := c.Param("username")
		var req EditMemberRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "All fields except password are required"})
			return
		}

		ctx := c.Request.Context()
		row, err := store.FindRowByUsername(ctx, username)
		if err != nil {
			respondLookupError(c, err)
			return
		}

		// A rename must not collide with another member's username.
		if req.Username != username {
			if _, err := store.FindRowByUsername(ctx, req.Username); err == nil || errors.Is(err, sheets.ErrAmbiguousUsername) {
				c.JSON(http.StatusConflict, gin.H{"error": "Username already registered"})
				return
			} else if !errors.Is(err, sheets.ErrNotFound) {
				logrus.Errorf("username lookup failed: %v", err)
				c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to check username"})
				return
			}
		}

		updates := []struct {
			col   int
			value string
		}{
			{domain.ColNama, req.Nama},
			{domain.ColUsername, req.Username},
			{domain.ColEmail, req.Email},
			{domain.ColNoWA, req.NoWA},
			{domain.ColLink, req.Link},
		}
		if req.Password != "" {
			hash, err := utils.HashPassword(req.Password)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
				return
			}
			updates = append(updates, struct {
				col   int
				value string
			}{domain.ColPassword, hash})
		}

		for _, u := range updates {
			if err := store.UpdateCell(ctx, row, u.col, u.value); err != nil {
				logrus.Errorf("update member %s failed: %v", username, err)
				c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to update member"})
				return
			}
		}

		if err := utils.DeleteCache(ctx, rdb, utils.MembersCacheKey); err != nil {
			logrus.Warnf("invalidate roster cache: %v", err)
		}
		c.JSON(http.StatusOK, gin.H{"message": "Member updated"})
	}
}

// DeleteMemberHandler removes a member row. Deleting an already-deleted
// username reports not found rather than silently succeeding.
func DeleteMemberHandler(store MemberStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Member store is not available"})
			return
		}

		username := c.Param("username")
		ctx := c.Request.Context()

		row, err := store.FindRowByUsername(ctx, username)
		if err != nil {
			respondLookupError(c, err)
			return
		}

		if err := store.DeleteRow(ctx, row); err != nil {
			logrus.Errorf("delete member %s failed: %v", username, err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to delete member"})
			return
		}

		if err := utils.DeleteCache(ctx, rdb, utils.MembersCacheKey); err != nil {
			logrus.Warnf("invalidate roster cache: %v", err)
		}
		c.JSON(http.StatusOK, gin.H{"message": "Member deleted"})
	}
}

func respondLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, sheets.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
	case errors.Is(err, sheets.ErrAmbiguousUsername):
		c.JSON(http.StatusConflict, gin.H{"error": "Username matches multiple rows"})
	default:
		logrus.Errorf("username lookup failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to look up member"})
	}
}
