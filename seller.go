package console

import (
	"context"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
)

var (
	panPattern = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	gstPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][0-9A-Z]Z[0-9A-Z]$`)
)

// BusinessType enumerates the onboarding form's legal entity options.
type BusinessType = string

const (
	BusinessTypeIndividual  BusinessType = "individual"
	BusinessTypeProprietor  BusinessType = "proprietorship"
	BusinessTypePartnership BusinessType = "partnership"
	BusinessTypeCompany     BusinessType = "private_limited"
)

// SellerAPI wraps the profile and onboarding endpoints. It implements
// ProfileFetcher for the session manager and StatusSource for the
// page-level status gates.
type SellerAPI struct {
	client *Client
	logger Logger
}

var _ ProfileFetcher = (*SellerAPI)(nil)
var _ StatusSource = (*SellerAPI)(nil)

func NewSellerAPI(client *Client) *SellerAPI {
	return &SellerAPI{
		client: client,
		logger: defLogger{},
	}
}

func (s *SellerAPI) WithLogger(logger Logger) *SellerAPI {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Me fetches the caller's profile with the store-held credential.
func (s *SellerAPI) Me(ctx context.Context, opts ...RequestOption) (*Profile, error) {
	profile := &Profile{}
	if err := s.client.Get(ctx, "/seller/me", profile, opts...); err != nil {
		return nil, err
	}

	if normalized, ok := ParseSellerStatus(profile.SellerStatus); ok {
		profile.SellerStatus = normalized
	}

	return profile, nil
}

// FetchProfile resolves the profile for an explicit token. Used during
// session restore, where the credential is pinned to the request rather
// than read from the store.
func (s *SellerAPI) FetchProfile(ctx context.Context, token string) (*Profile, error) {
	profile := &Profile{}
	err := s.client.Get(ctx, "/seller/me", profile,
		WithLocalErrorHandling(),
		WithRequestHeader("Authorization", "Bearer "+token),
	)
	if err != nil {
		return nil, err
	}

	if normalized, ok := ParseSellerStatus(profile.SellerStatus); ok {
		profile.SellerStatus = normalized
	}

	return profile, nil
}

// RequestStatus is the fresh status read page gates rely on.
func (s *SellerAPI) RequestStatus(ctx context.Context) (*SellerRequest, error) {
	request := &SellerRequest{}
	if err := s.client.Get(ctx, "/seller/request/me", request, WithLocalErrorHandling()); err != nil {
		return nil, err
	}
	return request, nil
}

// OnboardingRequest is the KYC submission payload.
type OnboardingRequest struct {
	BusinessName string       `form:"business_name" json:"businessName"`
	BusinessType BusinessType `form:"business_type" json:"businessType"`
	PANNumber    string       `form:"pan_number" json:"panNumber"`
	GSTNumber    string       `form:"gst_number" json:"gstNumber,omitempty"`
	AadhaarLast4 string       `form:"aadhaar_last4" json:"aadhaarLast4"`
}

// Validate will validate the payload
func (r OnboardingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BusinessName, validation.Required, validation.Length(2, 200)),
		validation.Field(
			&r.BusinessType,
			validation.Required,
			validation.In(
				BusinessTypeIndividual,
				BusinessTypeProprietor,
				BusinessTypePartnership,
				BusinessTypeCompany,
			),
		),
		validation.Field(&r.PANNumber, validation.Required, validation.Match(panPattern)),
		validation.Field(&r.GSTNumber, validation.Match(gstPattern)),
		validation.Field(&r.AadhaarLast4, validation.Required, validation.Length(4, 4), is.Digit),
	)
}

// SubmitRequest files the KYC onboarding request. Validation failures
// stay local; transport failures follow the caller's options.
func (s *SellerAPI) SubmitRequest(ctx context.Context, payload OnboardingRequest, opts ...RequestOption) error {
	if err := payload.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid onboarding payload")
	}

	return s.client.Post(ctx, "/seller/request", payload, nil, opts...)
}
