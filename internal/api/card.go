package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"membership_system/internal/card"
)

// CardHandler renders a member's card and offers it as a PNG download named
// after the username.
func CardHandler(store MemberStore, gen *card.Generator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Member store is not available"})
			return
		}

		username := c.Param("username")
		members, err := store.ReadAll(c.Request.Context())
		if err != nil {
			logrus.Errorf("read member table failed: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load member table"})
			return
		}

		for _, m := range members {
			if m.Username != username {
				continue
			}

			png, err := gen.Generate(m)
			if err != nil {
				if errors.Is(err, card.ErrTemplateMissing) {
					c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Card template is not available"})
					return
				}
				logrus.Errorf("generate card for %s failed: %v", username, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate card"})
				return
			}

			c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", card.Filename(username)))
			c.Data(http.StatusOK, "image/png", png)
			return
		}

		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
	}
}
