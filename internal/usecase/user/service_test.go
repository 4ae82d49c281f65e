package user

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"dailypay-backend/internal/auth"
	"dailypay-backend/internal/config"
	"dailypay-backend/internal/infrastructure/database/memory"
	"dailypay-backend/internal/mailer"
	"dailypay-backend/internal/mailer/mocks"
	appErrors "dailypay-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	svc    *Service
	store  *memory.Store
	mail   *mocks.MockMailer
	tokens *auth.TokenIssuer
	clock  *time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &now
	nowFn := func() time.Time { return *clock }

	cfg := &config.Config{
		JWT:   config.JWTConfig{Secret: "test-secret", ExpiryHours: 720},
		App:   config.AppConfig{FrontendURL: "https://shop.example"},
		SMTP:  config.SMTPConfig{From: "noreply@shop.example"},
		Admin: config.AdminConfig{BootstrapEmail: "boss@shop.example"},
	}

	store := memory.NewStore()
	mail := mocks.NewMockMailer(gomock.NewController(t))
	tokens := auth.NewTokenIssuer(cfg.JWT.Secret, auth.WithClock(nowFn))

	svc := NewService(
		store.Users(),
		auth.NewHasher(bcrypt.MinCost),
		tokens,
		auth.NewResetTokens(time.Hour, nowFn),
		mail,
		cfg,
	)
	return &fixture{svc: svc, store: store, mail: mail, tokens: tokens, clock: clock}
}

// captureReset expects one reset email and returns the plaintext token from its link.
func (f *fixture) captureReset(t *testing.T) *string {
	t.Helper()
	token := new(string)
	f.mail.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg mailer.Message) error {
		link := strings.TrimPrefix(msg.Text, "Reset your password: ")
		u, err := url.Parse(link)
		require.NoError(t, err)
		assert.Equal(t, "/reset-password", u.Path)
		assert.Equal(t, "noreply@shop.example", msg.From)
		*token = u.Query().Get("token")
		return nil
	})
	return token
}

func TestRegisterThenLoginIsCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	reg, err := f.svc.Register(ctx, &RegisterRequest{Name: "A", Email: "A@X.com", Password: "pw12345"})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", reg.User.Email)
	assert.Equal(t, "user", reg.User.Role)

	login, err := f.svc.Login(ctx, &LoginRequest{Email: "a@x.com", Password: "pw12345"})
	require.NoError(t, err)

	identity, err := f.tokens.Verify(login.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, identity.AccountID)
	assert.Equal(t, auth.RoleUser, identity.Role)

	stored, err := f.store.Users().GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "pw12345", stored.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, &RegisterRequest{Email: "a@x.com"})
	assert.ErrorIs(t, err, appErrors.ErrMissingFields)
	_, msg := appErrors.HTTPStatus(err)
	assert.Equal(t, "Missing fields", msg)

	_, err = f.svc.Register(ctx, &RegisterRequest{Email: "a@x.com", Password: "pw12345"})
	require.NoError(t, err)

	_, err = f.svc.Register(ctx, &RegisterRequest{Email: " A@x.COM ", Password: "other12"})
	assert.ErrorIs(t, err, appErrors.NewAppError(appErrors.CodeDuplicateEmail, "", nil))
	_, msg = appErrors.HTTPStatus(err)
	assert.Equal(t, "User exists", msg)
}

func TestLoginFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	reg, err := f.svc.Register(ctx, &RegisterRequest{Email: "a@x.com", Password: "pw12345"})
	require.NoError(t, err)

	_, unknownErr := f.svc.Login(ctx, &LoginRequest{Email: "nobody@x.com", Password: "pw12345"})
	_, wrongErr := f.svc.Login(ctx, &LoginRequest{Email: "a@x.com", Password: "wrong!!"})
	assert.ErrorIs(t, unknownErr, appErrors.ErrInvalidCredentials)
	assert.Equal(t, unknownErr, wrongErr)

	_, err = f.svc.Login(ctx, &LoginRequest{Email: "a@x.com"})
	_, msg := appErrors.HTTPStatus(err)
	assert.Equal(t, "Missing credentials", msg)

	require.NoError(t, f.store.Users().SetSuspended(ctx, reg.User.ID, true))
	_, err = f.svc.Login(ctx, &LoginRequest{Email: "a@x.com", Password: "wrong!!"})
	assert.ErrorIs(t, err, appErrors.ErrAccountSuspended)

	require.NoError(t, f.store.Users().SetBanned(ctx, reg.User.ID, true))
	_, err = f.svc.Login(ctx, &LoginRequest{Email: "a@x.com", Password: "pw12345"})
	assert.ErrorIs(t, err, appErrors.ErrAccountBanned)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	f := newFixture(t)

	err := f.svc.ForgotPassword(context.Background(), &ForgotPasswordRequest{Email: "ghost@x.com"})
	assert.NoError(t, err)

	err = f.svc.ForgotPassword(context.Background(), &ForgotPasswordRequest{Email: "  "})
	_, msg := appErrors.HTTPStatus(err)
	assert.Equal(t, "Email required", msg)
}

func TestResetPasswordIsSingleUse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, &RegisterRequest{Email: "a@x.com", Password: "pw12345"})
	require.NoError(t, err)

	token := f.captureReset(t)
	require.NoError(t, f.svc.ForgotPassword(ctx, &ForgotPasswordRequest{Email: "A@x.com"}))
	require.Len(t, *token, 64)

	stored, err := f.store.Users().GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, stored.ResetPasswordToken)
	assert.Equal(t, auth.HashResetToken(*token), *stored.ResetPasswordToken)

	req := &ResetPasswordRequest{Token: *token, Email: "a@x.com", Password: "newpass1"}
	require.NoError(t, f.svc.ResetPassword(ctx, req))

	again := &ResetPasswordRequest{Token: *token, Email: "a@x.com", Password: "another1"}
	assert.ErrorIs(t, f.svc.ResetPassword(ctx, again), appErrors.ErrInvalidOrExpiredToken)

	_, err = f.svc.Login(ctx, &LoginRequest{Email: "a@x.com", Password: "newpass1"})
	assert.NoError(t, err)

	stored, err = f.store.Users().GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Nil(t, stored.ResetPasswordToken)
	assert.Nil(t, stored.ResetPasswordExpires)
	assert.NotNil(t, stored.LastActive)
}

func TestResetPasswordExpired(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, &RegisterRequest{Email: "a@x.com", Password: "pw12345"})
	require.NoError(t, err)

	token := f.captureReset(t)
	require.NoError(t, f.svc.ForgotPassword(ctx, &ForgotPasswordRequest{Email: "a@x.com"}))

	*f.clock = f.clock.Add(time.Hour)

	err = f.svc.ResetPassword(ctx, &ResetPasswordRequest{Token: *token, Email: "a@x.com", Password: "newpass1"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidOrExpiredToken)
}

func TestResetPasswordWrongEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, email := range []string{"a@x.com", "b@x.com"} {
		_, err := f.svc.Register(ctx, &RegisterRequest{Email: email, Password: "pw12345"})
		require.NoError(t, err)
	}

	token := f.captureReset(t)
	require.NoError(t, f.svc.ForgotPassword(ctx, &ForgotPasswordRequest{Email: "a@x.com"}))

	err := f.svc.ResetPassword(ctx, &ResetPasswordRequest{Token: *token, Email: "b@x.com", Password: "newpass1"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidOrExpiredToken)
}

func TestForgotPasswordMailFailureClearsToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, &RegisterRequest{Email: "a@x.com", Password: "pw12345"})
	require.NoError(t, err)

	f.mail.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))

	err = f.svc.ForgotPassword(ctx, &ForgotPasswordRequest{Email: "a@x.com"})
	assert.ErrorIs(t, err, appErrors.ErrMailDelivery)

	stored, err := f.store.Users().GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Nil(t, stored.ResetPasswordToken)
	assert.Nil(t, stored.ResetPasswordExpires)
}

func TestPromoteBootstrapAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.PromoteBootstrapAdmin(ctx)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	_, err = f.svc.Register(ctx, &RegisterRequest{Email: "Boss@Shop.example", Password: "pw12345"})
	require.NoError(t, err)

	resp, err := f.svc.PromoteBootstrapAdmin(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Role)

	users, err := f.svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "admin", users[0].Role)
}

type fakeClearer struct {
	n   int64
	err error
}

func (f fakeClearer) ClearExpiredResetTokens(context.Context, time.Time) (int64, error) {
	return f.n, f.err
}

func TestCleanupExpiredResetTokens(t *testing.T) {
	total := CleanupExpiredResetTokens(context.Background(), time.Now(),
		fakeClearer{n: 2}, fakeClearer{err: errors.New("db down")}, fakeClearer{n: 1})
	assert.EqualValues(t, 3, total)

	_, err := NewTokenCleanupJob(context.Background(), "not a schedule", time.Now)
	assert.Error(t, err)

	c, err := NewTokenCleanupJob(context.Background(), "@every 1h", time.Now, fakeClearer{})
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)
}
