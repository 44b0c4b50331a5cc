package console

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/nyaruka/phonenumbers"
)

// AuthResult is the token + profile pair every credential exchange
// returns.
type AuthResult struct {
	Token string   `json:"token"`
	User  *Profile `json:"user"`
}

// AuthAPI wraps the backend's credential exchange endpoints. All calls
// run with local error handling: a wrong password is the caller's inline
// message, never a global redirect.
type AuthAPI struct {
	client *Client
	region string
	logger Logger
}

func NewAuthAPI(client *Client, cfg Config) *AuthAPI {
	region := cfg.GetPhoneRegion()
	if region == "" {
		region = "IN"
	}

	return &AuthAPI{
		client: client,
		region: region,
		logger: defLogger{},
	}
}

func (a *AuthAPI) WithLogger(logger Logger) *AuthAPI {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// PasswordLoginRequest is the email + password exchange payload.
type PasswordLoginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r PasswordLoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

func (a *AuthAPI) LoginWithPassword(ctx context.Context, payload PasswordLoginRequest) (*AuthResult, error) {
	if err := payload.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid login payload")
	}

	result := &AuthResult{}
	if err := a.client.Post(ctx, "/auth/login/password", payload, result, WithLocalErrorHandling()); err != nil {
		a.logger.Info("password login rejected", "error", err)
		return nil, err
	}

	return result, nil
}

// OTPSendRequest asks the backend to text a one-time code.
type OTPSendRequest struct {
	Phone string `form:"phone" json:"phone"`
}

func (r OTPSendRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Phone, validation.Required),
	)
}

func (a *AuthAPI) SendLoginOTP(ctx context.Context, phone string) error {
	normalized, err := a.normalizePhone(phone)
	if err != nil {
		return err
	}

	payload := OTPSendRequest{Phone: normalized}
	if err := payload.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid phone payload")
	}

	return a.client.Post(ctx, "/auth/login/otp/send", payload, nil, WithLocalErrorHandling())
}

// OTPVerifyRequest exchanges phone + code for a session.
type OTPVerifyRequest struct {
	Phone string `form:"phone" json:"phone"`
	OTP   string `form:"otp" json:"otp"`
}

func (r OTPVerifyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Phone, validation.Required),
		validation.Field(&r.OTP, validation.Required, validation.Length(4, 8), is.Digit),
	)
}

func (a *AuthAPI) VerifyLoginOTP(ctx context.Context, phone, otp string) (*AuthResult, error) {
	normalized, err := a.normalizePhone(phone)
	if err != nil {
		return nil, err
	}

	payload := OTPVerifyRequest{Phone: normalized, OTP: otp}
	if err := payload.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid otp payload")
	}

	result := &AuthResult{}
	if err := a.client.Post(ctx, "/auth/login/otp/verify", payload, result, WithLocalErrorHandling()); err != nil {
		return nil, err
	}

	return result, nil
}

// SignupRequest creates a pending account; the phone is verified by a
// follow-up OTP exchange.
type SignupRequest struct {
	Name     string `form:"name" json:"name"`
	Email    string `form:"email" json:"email"`
	Phone    string `form:"phone" json:"phone"`
	Password string `form:"password" json:"password"`
}

// Validate will validate the payload
func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Phone, validation.Required),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
	)
}

func (a *AuthAPI) Signup(ctx context.Context, payload SignupRequest) error {
	normalized, err := a.normalizePhone(payload.Phone)
	if err != nil {
		return err
	}
	payload.Phone = normalized

	if err := payload.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid signup payload")
	}

	return a.client.Post(ctx, "/auth/signup", payload, nil, WithLocalErrorHandling())
}

func (a *AuthAPI) VerifySignupOTP(ctx context.Context, phone, otp string) (*AuthResult, error) {
	normalized, err := a.normalizePhone(phone)
	if err != nil {
		return nil, err
	}

	payload := OTPVerifyRequest{Phone: normalized, OTP: otp}
	if err := payload.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid otp payload")
	}

	result := &AuthResult{}
	if err := a.client.Post(ctx, "/auth/signup/verify-otp", payload, result, WithLocalErrorHandling()); err != nil {
		return nil, err
	}

	return result, nil
}

// normalizePhone parses and formats the number as E.164 so the backend
// sees one canonical shape regardless of how the seller typed it.
func (a *AuthAPI) normalizePhone(raw string) (string, error) {
	parsed, err := phonenumbers.Parse(raw, a.region)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryValidation, "unparseable phone number")
	}

	if !phonenumbers.IsValidNumber(parsed) {
		return "", goerrors.New(
			fmt.Sprintf("invalid phone number for region %s", a.region),
			goerrors.CategoryValidation,
		).WithCode(goerrors.CodeBadRequest)
	}

	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}
