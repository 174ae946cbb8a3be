package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/drexwrld/synapes-backend/models"
)

// SNSAPI is the slice of the SNS client the push path uses; tests
// substitute a fake.
type SNSAPI interface {
	CreatePlatformEndpoint(ctx context.Context, params *awssns.CreatePlatformEndpointInput, optFns ...func(*awssns.Options)) (*awssns.CreatePlatformEndpointOutput, error)
	Publish(ctx context.Context, params *awssns.PublishInput, optFns ...func(*awssns.Options)) (*awssns.PublishOutput, error)
	DeleteEndpoint(ctx context.Context, params *awssns.DeleteEndpointInput, optFns ...func(*awssns.Options)) (*awssns.DeleteEndpointOutput, error)
}

// PushService relays notifications to devices through SNS platform
// endpoints. Delivery is best effort: publish failures are logged, and
// a dead endpoint drops the stored token so we stop addressing it.
type PushService struct {
	db          *gorm.DB
	sns         SNSAPI
	platformARN string
}

func NewPushService(db *gorm.DB, cfg aws.Config, platformARN string) *PushService {
	return &PushService{db: db, sns: awssns.NewFromConfig(cfg), platformARN: platformARN}
}

// NewPushServiceWithClient exists for tests.
func NewPushServiceWithClient(db *gorm.DB, client SNSAPI, platformARN string) *PushService {
	return &PushService{db: db, sns: client, platformARN: platformARN}
}

type RegisterTokenInput struct {
	Platform string `json:"platform" binding:"required"`
	Token    string `json:"token" binding:"required"`
}

// RegisterToken keeps at most one push token per user: registering from
// a new device replaces the previous endpoint.
func (p *PushService) RegisterToken(ctx context.Context, userID uint, input RegisterTokenInput) (*models.PushToken, error) {
	platform := strings.ToLower(input.Platform)
	if platform != "android" && platform != "ios" {
		return nil, errors.New("unknown platform")
	}
	if p.platformARN == "" {
		return nil, errors.New("push platform not configured")
	}

	out, err := p.sns.CreatePlatformEndpoint(ctx, &awssns.CreatePlatformEndpointInput{
		PlatformApplicationArn: aws.String(p.platformARN),
		Token:                  aws.String(input.Token),
	})
	if err != nil {
		return nil, err
	}

	var existing models.PushToken
	if err := p.db.Where("user_id = ?", userID).First(&existing).Error; err == nil {
		existing.Token = input.Token
		existing.Platform = platform
		existing.EndpointARN = aws.ToString(out.EndpointArn)
		if err := p.db.Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}

	tok := models.PushToken{
		UserID:      userID,
		Token:       input.Token,
		Platform:    platform,
		EndpointARN: aws.ToString(out.EndpointArn),
	}
	if err := p.db.Create(&tok).Error; err != nil {
		return nil, err
	}
	return &tok, nil
}

func (p *PushService) RemoveToken(ctx context.Context, userID uint) error {
	var tok models.PushToken
	if err := p.db.Where("user_id = ?", userID).First(&tok).Error; err != nil {
		return ErrNotFound
	}
	if tok.EndpointARN != "" {
		if _, err := p.sns.DeleteEndpoint(ctx, &awssns.DeleteEndpointInput{EndpointArn: aws.String(tok.EndpointARN)}); err != nil {
			logrus.WithError(err).Warn("push endpoint delete failed")
		}
	}
	return p.db.Delete(&tok).Error
}

// PushToUser is fire and forget. Nothing is sent when the user turned
// notifications off or never registered a device.
func (p *PushService) PushToUser(ctx context.Context, userID uint, title, body string, data map[string]string) {
	var user models.User
	if err := p.db.First(&user, userID).Error; err != nil || !user.NotificationsEnabled {
		return
	}

	var tok models.PushToken
	if err := p.db.Where("user_id = ?", userID).First(&tok).Error; err != nil {
		return
	}

	msg := map[string]any{
		"default": body,
		"GCM": map[string]any{
			"notification": map[string]string{
				"title": title,
				"body":  body,
			},
			"data": data,
		},
	}
	raw, _ := json.Marshal(msg)

	_, err := p.sns.Publish(ctx, &awssns.PublishInput{
		MessageStructure: aws.String("json"),
		Message:          aws.String(string(raw)),
		TargetArn:        aws.String(tok.EndpointARN),
	})
	if err != nil {
		var disabled *snstypes.EndpointDisabledException
		var notFound *snstypes.NotFoundException
		if errors.As(err, &disabled) || errors.As(err, &notFound) {
			// Provider no longer knows this token; stop addressing it.
			if delErr := p.db.Delete(&tok).Error; delErr != nil {
				logrus.WithError(delErr).Error("stale push token cleanup failed")
			}
			return
		}
		logrus.WithError(err).WithField("user_id", userID).Warn("push publish failed")
	}
}
