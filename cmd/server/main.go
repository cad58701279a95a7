package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"membership_system/internal/api"
	"membership_system/internal/card"
	"membership_system/internal/config"
	"membership_system/internal/middleware"
	"membership_system/internal/sheets"
)

func main() {
	cfg := config.LoadConfig()

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the member sheet. A missing credential source or an
	// unreachable spreadsheet is not fatal: the server comes up without a
	// store and the affected endpoints answer 503.
	ctx := context.Background()
	var store api.MemberStore
	if gateway := openGateway(ctx, cfg); gateway != nil {
		store = gateway
	}

	// Optional Redis roster cache
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if _, err := redisClient.Ping(ctx).Result(); err != nil {
			logrus.Errorf("redis unavailable, caching disabled: %v", err)
			redisClient = nil
		}
	}

	generator := card.NewGenerator(cfg.CardTemplate, cfg.CardFont)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Public routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "store": store != nil})
	})
	r.POST("/register", api.RegisterHandler(store, redisClient))
	r.POST("/admin/login", api.AdminLoginHandler(cfg.AdminDigest))

	// Admin routes: every request re-checks the access code header
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.AdminGate(cfg.AdminDigest))
	adminGroup.GET("/members", api.ListMembersHandler(store, redisClient))
	adminGroup.PUT("/members/:username", api.EditMemberHandler(store, redisClient))
	adminGroup.DELETE("/members/:username", api.DeleteMemberHandler(store, redisClient))
	adminGroup.GET("/members/:username/card", api.CardHandler(store, generator))

	log.Println("Server running on " + cfg.AppPort)
	r.Run(":" + cfg.AppPort)
}

// openGateway resolves credentials and opens the spreadsheet, validating the
// live header row against the declared schema. Any failure returns nil.
func openGateway(ctx context.Context, cfg *config.Config) *sheets.Gateway {
	credentials, err := sheets.ResolveCredentials(cfg.CredentialsFile)
	if err != nil {
		logrus.Errorf("member store unavailable: %v", err)
		return nil
	}

	client, err := sheets.NewClient(ctx, credentials)
	if err != nil {
		logrus.Errorf("member store unavailable: %v", err)
		return nil
	}

	gateway, err := sheets.Open(ctx, client, cfg.SpreadsheetID)
	if err != nil {
		logrus.Errorf("member store unavailable: %v", err)
		return nil
	}

	if err := gateway.ValidateHeader(ctx); err != nil {
		logrus.Errorf("member store rejected: %v", err)
		return nil
	}

	logrus.Infof("connected to spreadsheet %s", cfg.SpreadsheetID)
	return gateway
}
