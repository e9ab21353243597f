package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/NdopnnoabasiJames/Backend-Template/domain"
	httpx "github.com/NdopnnoabasiJames/Backend-Template/internal/http"
	"github.com/NdopnnoabasiJames/Backend-Template/internal/http/handlers"
	"github.com/NdopnnoabasiJames/Backend-Template/internal/http/middleware"
	"github.com/NdopnnoabasiJames/Backend-Template/internal/infrastructure/auth"
	"github.com/NdopnnoabasiJames/Backend-Template/internal/infrastructure/database"
	"github.com/NdopnnoabasiJames/Backend-Template/internal/infrastructure/phone"
	"github.com/NdopnnoabasiJames/Backend-Template/internal/infrastructure/repositories"
	"github.com/NdopnnoabasiJames/Backend-Template/internal/services"
)

// testEnv runs the complete HTTP stack in-process: SQLite for the store,
// miniredis for the throttle, and recording fakes on the delivery channels
// so tests can read back the codes and tokens a real user would receive.
type testEnv struct {
	Server    *httptest.Server
	Client    *http.Client
	DB        *gorm.DB
	Redis     *miniredis.Miniredis
	SMS       *FakeSMS
	Mail      *FakeMailer
	Users     domain.UserRepository
	Passwords domain.PasswordService
}

// envSettings tunes the knobs individual tests care about. Defaults keep
// OTP friction out of multi-step flows; rate-limit tests tighten them.
type envSettings struct {
	OTP            services.OTPConfig
	SessionTTL     time.Duration
	ResetTokenTTL  time.Duration
	ThrottleLimit  int
	ThrottleWindow time.Duration
}

func defaultSettings() envSettings {
	return envSettings{
		OTP:            services.OTPConfig{TTL: 5 * time.Minute, DailyLimit: 10, MinInterval: 0},
		SessionTTL:     30 * time.Minute,
		ResetTokenTTL:  time.Hour,
		ThrottleLimit:  100,
		ThrottleWindow: time.Minute,
	}
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWith(t, defaultSettings())
}

func newTestEnvWith(t *testing.T, set envSettings) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&repositories.DBUser{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	cas, err := auth.NewCasbinService(db, "../../../casbin/model.conf")
	if err != nil {
		t.Fatalf("failed to initialize casbin: %v", err)
	}
	cas.E.AddPolicy("role_admin", "/admin/*", "(GET|POST|PUT|PATCH|DELETE)")
	cas.E.AddPolicy("role_user", "/auth/me", "GET")
	if err := cas.E.SavePolicy(); err != nil {
		t.Fatalf("failed to seed policies: %v", err)
	}

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	sms := NewFakeSMS()
	mail := NewFakeMailer()

	userRepo := repositories.NewUserRepository(db)
	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService("e2e-test-secret", "backend-template-test", set.SessionTTL)
	phoneSvc := phone.NewValidator("NG")

	otpSvc := services.NewOTPService(userRepo, sms, mail, set.OTP, logger)
	authSvc := services.NewAuthService(userRepo, passwordSvc, tokenSvc, otpSvc, phoneSvc, mail, services.AuthConfig{
		SessionTTL:    set.SessionTTL,
		ResetTokenTTL: set.ResetTokenTTL,
	}, logger)
	userSvc := services.NewUserService(userRepo, logger)
	notifSvc := services.NewNotificationService(userRepo, mail, sms, logger)
	enforcer := services.NewCasbinEnforcerWrapper(cas.E)
	policySvc := services.NewPolicyService(enforcer)

	router := httpx.BuildRouter(
		handlers.NewAuthHandlers(authSvc),
		handlers.NewUserHandlers(userSvc),
		handlers.NewNotificationHandlers(notifSvc),
		handlers.NewPolicyHandlers(policySvc),
		handlers.NewHealthHandlers(database.SQLPinger{DB: db}, &database.RedisClient{Client: rdb}),
		middleware.NewAuthMW(tokenSvc, userRepo),
		middleware.NewCasbinMW(enforcer, logger),
		middleware.NewThrottleMW(rdb, set.ThrottleLimit, set.ThrottleWindow, logger),
		logger,
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testEnv{
		Server:    server,
		Client:    server.Client(),
		DB:        db,
		Redis:     mr,
		SMS:       sms,
		Mail:      mail,
		Users:     userRepo,
		Passwords: passwordSvc,
	}
}

// do sends a request with an optional JSON body and bearer token, returning
// the status and the decoded JSON body. A 204 yields a nil map.
func (e *testEnv) do(t *testing.T, method, path string, body interface{}, token string) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, e.Server.URL+path, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.Client.Do(req)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	if len(raw) == 0 {
		return resp.StatusCode, nil
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("response %s %s is not JSON: %v\n%s", method, path, err, raw)
	}
	return resp.StatusCode, decoded
}

func (e *testEnv) postJSON(t *testing.T, path string, body interface{}, token string) (int, map[string]interface{}) {
	t.Helper()
	return e.do(t, http.MethodPost, path, body, token)
}

func (e *testEnv) get(t *testing.T, path, token string) (int, map[string]interface{}) {
	t.Helper()
	return e.do(t, http.MethodGet, path, nil, token)
}

// dataObject digs the "data" envelope out of a success response.
func dataObject(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := body["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("response carries no data object: %v", body)
	}
	return data
}

// registerAndVerify walks a fresh signup through phone verification so the
// account can log in. Returns the canonical E.164 phone.
func (e *testEnv) registerAndVerify(t *testing.T, email, phoneNumber, password string) string {
	t.Helper()

	status, body := e.postJSON(t, "/auth/register", map[string]string{
		"first_name": "Test",
		"last_name":  "User",
		"email":      email,
		"phone":      phoneNumber,
		"password":   password,
	}, "")
	if status != http.StatusCreated {
		t.Fatalf("registration of %s returned %d: %v", email, status, body)
	}

	user := dataObject(t, body)["user"].(map[string]interface{})
	canonical := user["phone"].(string)

	code := e.SMS.VerificationCode(canonical)
	if code == "" {
		t.Fatalf("no verification code delivered to %s", canonical)
	}

	status, body = e.postJSON(t, "/auth/phone/verify", map[string]string{
		"phone": canonical,
		"code":  code,
	}, "")
	if status != http.StatusOK {
		t.Fatalf("phone verification of %s returned %d: %v", canonical, status, body)
	}
	return canonical
}

// login authenticates and returns the bearer token.
func (e *testEnv) login(t *testing.T, phoneNumber, password string) string {
	t.Helper()

	status, body := e.postJSON(t, "/auth/login", map[string]string{
		"login":    phoneNumber,
		"password": password,
	}, "")
	if status != http.StatusOK {
		t.Fatalf("login as %s returned %d: %v", phoneNumber, status, body)
	}
	token, _ := dataObject(t, body)["access_token"].(string)
	if token == "" {
		t.Fatalf("login as %s returned no access token", phoneNumber)
	}
	return token
}

// createAdmin provisions an active, verified admin straight through the
// repository, the way the bootstrap seeder does.
func (e *testEnv) createAdmin(t *testing.T, email, phoneNumber, password string) *domain.User {
	t.Helper()

	hash, err := e.Passwords.Hash(password)
	if err != nil {
		t.Fatalf("failed to hash admin password: %v", err)
	}
	admin := &domain.User{
		FirstName:       "Root",
		LastName:        "Admin",
		Email:           email,
		Phone:           phoneNumber,
		PasswordHash:    hash,
		Role:            domain.RoleAdmin,
		IsActive:        true,
		IsPhoneVerified: true,
		IsEmailVerified: true,
	}
	if err := e.Users.Create(context.Background(), admin); err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}
	return admin
}

// FakeSMS records outbound SMS traffic keyed by recipient.
type FakeSMS struct {
	mu                sync.Mutex
	verificationCodes map[string]string
	resetCodes        map[string]string
	marketing         []string
	Fail              bool
}

func NewFakeSMS() *FakeSMS {
	return &FakeSMS{
		verificationCodes: make(map[string]string),
		resetCodes:        make(map[string]string),
	}
}

func (f *FakeSMS) SendPhoneVerificationOTP(phoneNumber, code, firstName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail {
		return fmt.Errorf("sms gateway unavailable")
	}
	f.verificationCodes[phoneNumber] = code
	return nil
}

func (f *FakeSMS) SendPasswordResetOTP(phoneNumber, code, firstName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail {
		return fmt.Errorf("sms gateway unavailable")
	}
	f.resetCodes[phoneNumber] = code
	return nil
}

func (f *FakeSMS) SendMarketingSMS(phoneNumber, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail {
		return fmt.Errorf("sms gateway unavailable")
	}
	f.marketing = append(f.marketing, phoneNumber)
	return nil
}

// VerificationCode returns the last phone-verification code sent to the
// number, or "" when none went out.
func (f *FakeSMS) VerificationCode(phoneNumber string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.verificationCodes[phoneNumber]
}

func (f *FakeSMS) ResetCode(phoneNumber string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resetCodes[phoneNumber]
}

func (f *FakeSMS) MarketingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.marketing)
}

// FakeMailer records outbound email keyed by recipient.
type FakeMailer struct {
	mu          sync.Mutex
	resetTokens map[string]string
	emailCodes  map[string]string
	marketing   []string
	Fail        bool
}

func NewFakeMailer() *FakeMailer {
	return &FakeMailer{
		resetTokens: make(map[string]string),
		emailCodes:  make(map[string]string),
	}
}

func (f *FakeMailer) SendPasswordResetToken(email, token, firstName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail {
		return fmt.Errorf("smtp unavailable")
	}
	f.resetTokens[email] = token
	return nil
}

func (f *FakeMailer) SendVerificationOTP(email, code, firstName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail {
		return fmt.Errorf("smtp unavailable")
	}
	f.emailCodes[email] = code
	return nil
}

func (f *FakeMailer) SendMarketingEmail(email, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail {
		return fmt.Errorf("smtp unavailable")
	}
	f.marketing = append(f.marketing, email)
	return nil
}

func (f *FakeMailer) ResetToken(email string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resetTokens[email]
}

func (f *FakeMailer) EmailCode(email string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.emailCodes[email]
}

func (f *FakeMailer) MarketingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.marketing)
}

var _ domain.SMSSender = (*FakeSMS)(nil)
var _ domain.MailSender = (*FakeMailer)(nil)
