package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/drexwrld/synapes-backend/config"
	"github.com/drexwrld/synapes-backend/models"
	"github.com/drexwrld/synapes-backend/services"
	"github.com/drexwrld/synapes-backend/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeSNS struct{}

func (fakeSNS) CreatePlatformEndpoint(_ context.Context, params *awssns.CreatePlatformEndpointInput, _ ...func(*awssns.Options)) (*awssns.CreatePlatformEndpointOutput, error) {
	return &awssns.CreatePlatformEndpointOutput{
		EndpointArn: aws.String("arn:aws:sns:test:endpoint/" + aws.ToString(params.Token)),
	}, nil
}

func (fakeSNS) Publish(_ context.Context, _ *awssns.PublishInput, _ ...func(*awssns.Options)) (*awssns.PublishOutput, error) {
	return &awssns.PublishOutput{}, nil
}

func (fakeSNS) DeleteEndpoint(_ context.Context, _ *awssns.DeleteEndpointInput, _ ...func(*awssns.Options)) (*awssns.DeleteEndpointOutput, error) {
	return &awssns.DeleteEndpointOutput{}, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type testApp struct {
	router *gin.Engine
	db     *gorm.DB
	tokens *utils.TokenService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.Migrate(db))

	cfg := &config.Config{TokenTTL: time.Hour, BcryptCost: 4}
	tokens := utils.NewTokenService("test-secret", cfg.TokenTTL)
	hub := services.NewRealtimeHub()
	push := services.NewPushServiceWithClient(db, fakeSNS{}, "arn:aws:sns:test:app")

	router := SetupRouter(Deps{
		Config:        cfg,
		DB:            db,
		Tokens:        tokens,
		Auth:          services.NewAuthService(db, tokens, nil, cfg.BcryptCost),
		Users:         services.NewUserService(db),
		Classes:       services.NewClassService(db),
		Notifications: services.NewNotificationService(db, hub, push),
		Push:          push,
		Hub:           hub,
	})

	return &testApp{router: router, db: db, tokens: tokens}
}

func (a *testApp) do(t *testing.T, method, path, bearer string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func (a *testApp) signup(t *testing.T, email string) string {
	t.Helper()
	w, env := a.do(t, http.MethodPost, "/auth/register", "", gin.H{
		"email":     email,
		"password":  "correct-horse",
		"full_name": "Test User",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func (a *testApp) signupHOC(t *testing.T, email string) string {
	t.Helper()
	token := a.signup(t, email)
	w, _ := a.do(t, http.MethodPost, "/user/hoc/enable", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	return token
}

func TestSignupLoginRoundTrip(t *testing.T) {
	app := newTestApp(t)
	app.signup(t, "jane@uni.edu")

	w, env := app.do(t, http.MethodPost, "/auth/login", "", gin.H{
		"email":    "JANE@UNI.EDU",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))

	w, _ = app.do(t, http.MethodGet, "/user/profile", data.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code, "login token passes the auth gate")
}

func TestSignupDuplicateEmailConflict(t *testing.T) {
	app := newTestApp(t)
	app.signup(t, "jane@uni.edu")

	w, env := app.do(t, http.MethodPost, "/auth/register", "", gin.H{
		"email":     "Jane@Uni.edu",
		"password":  "other-password",
		"full_name": "Someone Else",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, env.Success)

	var count int64
	require.NoError(t, app.db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestLoginFailureShapeIsUniform(t *testing.T) {
	app := newTestApp(t)
	app.signup(t, "jane@uni.edu")

	wWrong, _ := app.do(t, http.MethodPost, "/auth/login", "", gin.H{
		"email": "jane@uni.edu", "password": "wrong-password",
	})
	wUnknown, _ := app.do(t, http.MethodPost, "/auth/login", "", gin.H{
		"email": "nobody@uni.edu", "password": "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, wWrong.Code)
	assert.Equal(t, http.StatusUnauthorized, wUnknown.Code)
	assert.Equal(t, wWrong.Body.String(), wUnknown.Body.String())
}

func TestProtectedRoutesRejectBadTokens(t *testing.T) {
	app := newTestApp(t)

	w, _ := app.do(t, http.MethodGet, "/user/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	other := utils.NewTokenService("other-secret", time.Hour)
	forged, err := other.Issue(1)
	require.NoError(t, err)
	w, _ = app.do(t, http.MethodGet, "/user/profile", forged, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHOCGate(t *testing.T) {
	app := newTestApp(t)
	token := app.signup(t, "student@uni.edu")

	body := gin.H{
		"title": "Algebra", "location": "Room 1",
		"starts_at": "2026-09-10T10:00:00Z", "duration_min": 90,
	}

	w, _ := app.do(t, http.MethodPost, "/hoc/classes", token, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = app.do(t, http.MethodPost, "/user/hoc/enable", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = app.do(t, http.MethodPost, "/hoc/classes", token, body)
	assert.Equal(t, http.StatusCreated, w.Code, "same user passes after the role flip")
}

func TestClassCreateFetchRoundTrip(t *testing.T) {
	app := newTestApp(t)
	token := app.signupHOC(t, "hoc@uni.edu")

	w, env := app.do(t, http.MethodPost, "/hoc/classes", token, gin.H{
		"title": "Linear Algebra", "subject": "MATH201", "location": "Room 14",
		"starts_at": "2026-09-10T10:00:00Z", "duration_min": 90, "capacity": 30,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Class
	require.NoError(t, json.Unmarshal(env.Data, &created))

	w, env = app.do(t, http.MethodGet, "/hoc/classes", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list []models.Class
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Linear Algebra", list[0].Title)
	assert.Equal(t, "MATH201", list[0].Subject)
	assert.Equal(t, "Room 14", list[0].Location)
	assert.Equal(t, 90, list[0].DurationMin)
	assert.Equal(t, 30, list[0].Capacity)
	assert.Equal(t, models.ClassScheduled, list[0].Status)
	assert.True(t, list[0].StartsAt.Equal(time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)))
}

func TestCancelIsGuarded(t *testing.T) {
	app := newTestApp(t)
	hoc := app.signupHOC(t, "hoc@uni.edu")
	otherHOC := app.signupHOC(t, "rival@uni.edu")

	_, env := app.do(t, http.MethodPost, "/hoc/classes", hoc, gin.H{
		"title": "Algebra", "location": "Room 1",
		"starts_at": "2026-09-10T10:00:00Z", "duration_min": 60,
	})
	var class models.Class
	require.NoError(t, json.Unmarshal(env.Data, &class))

	// Someone else's class reads as missing.
	w, _ := app.do(t, http.MethodPost, "/hoc/classes/1/cancel", otherHOC, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = app.do(t, http.MethodPost, "/hoc/classes/1/cancel", hoc, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, envErr := app.do(t, http.MethodPost, "/hoc/classes/1/cancel", hoc, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, envErr.Success)
	assert.NotEmpty(t, envErr.Error)
}

func TestBroadcastNotifiesEnrolledStudents(t *testing.T) {
	app := newTestApp(t)
	hoc := app.signupHOC(t, "hoc@uni.edu")
	student := app.signup(t, "student@uni.edu")

	_, _ = app.do(t, http.MethodPost, "/hoc/classes", hoc, gin.H{
		"title": "Algebra", "location": "Room 1",
		"starts_at": "2026-09-10T10:00:00Z", "duration_min": 60,
	})

	w, _ := app.do(t, http.MethodPost, "/classes/1/enroll", student, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := app.do(t, http.MethodPost, "/hoc/classes/1/broadcast", hoc, gin.H{
		"title": "Bring calculators", "body": "Tomorrow's session is practical.",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"recipients":1`)

	w, env = app.do(t, http.MethodGet, "/notifications", student, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list []models.Notification
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Bring calculators", list[0].Title)
	assert.False(t, list[0].Read)

	w, _ = app.do(t, http.MethodGet, "/notifications/unread", student, nil)
	assert.Contains(t, w.Body.String(), `"unread":1`)

	w, _ = app.do(t, http.MethodPost, "/notifications/1/read", student, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = app.do(t, http.MethodGet, "/notifications/unread", student, nil)
	assert.Contains(t, w.Body.String(), `"unread":0`)
}

func TestRescheduleNotifiesEnrolledStudents(t *testing.T) {
	app := newTestApp(t)
	hoc := app.signupHOC(t, "hoc@uni.edu")
	student := app.signup(t, "student@uni.edu")

	_, _ = app.do(t, http.MethodPost, "/hoc/classes", hoc, gin.H{
		"title": "Algebra", "location": "Room 1",
		"starts_at": "2026-09-10T10:00:00Z", "duration_min": 60,
	})
	w, _ := app.do(t, http.MethodPost, "/classes/1/enroll", student, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := app.do(t, http.MethodPost, "/hoc/classes/1/reschedule", hoc, gin.H{
		"starts_at": "2026-09-11T12:00:00Z", "location": "Room 9",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var class models.Class
	require.NoError(t, json.Unmarshal(env.Data, &class))
	assert.Equal(t, models.ClassRescheduled, class.Status)
	assert.Equal(t, "Room 9", class.Location)

	w, env = app.do(t, http.MethodGet, "/notifications", student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.Notification
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Class rescheduled", list[0].Title)
}

func TestDashboard(t *testing.T) {
	app := newTestApp(t)
	hoc := app.signupHOC(t, "hoc@uni.edu")
	student := app.signup(t, "student@uni.edu")

	starts := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)
	_, _ = app.do(t, http.MethodPost, "/hoc/classes", hoc, gin.H{
		"title": "Algebra", "location": "Room 1",
		"starts_at": starts, "duration_min": 60,
	})
	w, _ := app.do(t, http.MethodPost, "/classes/1/enroll", student, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := app.do(t, http.MethodGet, "/user/dashboard", student, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		UpcomingClasses     []models.Class `json:"upcoming_classes"`
		UnreadNotifications int64          `json:"unread_notifications"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.UpcomingClasses, 1)
	assert.Equal(t, "Algebra", data.UpcomingClasses[0].Title)
}

func TestDeviceRegistration(t *testing.T) {
	app := newTestApp(t)
	token := app.signup(t, "student@uni.edu")

	w, _ := app.do(t, http.MethodPost, "/devices", token, gin.H{"platform": "android", "token": "tok-1"})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = app.do(t, http.MethodPost, "/devices", token, gin.H{"platform": "ios", "token": "tok-2"})
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, app.db.Model(&models.PushToken{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "one push token per user")

	w, _ = app.do(t, http.MethodDelete, "/devices", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	w, _ := app.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
