package main

import (
	"context"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/sirupsen/logrus"

	"github.com/drexwrld/synapes-backend/config"
	"github.com/drexwrld/synapes-backend/middlewares"
	"github.com/drexwrld/synapes-backend/routes"
	"github.com/drexwrld/synapes-backend/services"
	"github.com/drexwrld/synapes-backend/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("configuration error")
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("database error")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		logrus.WithError(err).Fatal("AWS config load failed")
	}

	tokens := utils.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	mailer := utils.NewMailer(awsCfg, cfg.SESSender)
	uploader := utils.NewUploader(awsCfg, cfg.S3Bucket, cfg.S3PublicURL)
	hub := services.NewRealtimeHub()
	push := services.NewPushService(db, awsCfg, cfg.SNSPlatformARN)

	deps := routes.Deps{
		Config:        cfg,
		DB:            db,
		Tokens:        tokens,
		Auth:          services.NewAuthService(db, tokens, mailer, cfg.BcryptCost),
		Users:         services.NewUserService(db),
		Classes:       services.NewClassService(db),
		Notifications: services.NewNotificationService(db, hub, push),
		Push:          push,
		Hub:           hub,
		Uploader:      uploader,
		Limiter:       middlewares.NewRateLimiter(cfg.AuthRatePerMin, time.Minute, cfg.AuthBurst, nil),
	}

	r := routes.SetupRouter(deps)
	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
