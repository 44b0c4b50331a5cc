package console

import (
	"context"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
)

var ifscPattern = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)

// WalletSummary is the payouts page header: settled vs pending money.
type WalletSummary struct {
	Balance        float64 `json:"balance"`
	PendingAmount  float64 `json:"pendingAmount"`
	LastPayoutAt   *string `json:"lastPayoutAt,omitempty"`
	NextSettlement *string `json:"nextSettlement,omitempty"`
}

// Payout is a single settlement row.
type Payout struct {
	ID        string     `json:"id"`
	Amount    float64    `json:"amount"`
	Status    string     `json:"status"`
	UTR       string     `json:"utr,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// BankDetails is the seller's settlement account.
type BankDetails struct {
	AccountHolder string `form:"account_holder" json:"accountHolder"`
	AccountNumber string `form:"account_number" json:"accountNumber"`
	IFSC          string `form:"ifsc" json:"ifsc"`
	BankName      string `form:"bank_name" json:"bankName,omitempty"`
}

// Validate will validate the payload
func (b BankDetails) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.AccountHolder, validation.Required, validation.Length(2, 200)),
		validation.Field(&b.AccountNumber, validation.Required, validation.Length(9, 18), is.Digit),
		validation.Field(&b.IFSC, validation.Required, validation.Match(ifscPattern)),
	)
}

// PayoutsAPI wraps the wallet and settlement endpoints.
type PayoutsAPI struct {
	client *Client
	logger Logger
}

func NewPayoutsAPI(client *Client) *PayoutsAPI {
	return &PayoutsAPI{
		client: client,
		logger: defLogger{},
	}
}

func (p *PayoutsAPI) WithLogger(logger Logger) *PayoutsAPI {
	if logger != nil {
		p.logger = logger
	}
	return p
}

func (p *PayoutsAPI) Wallet(ctx context.Context, opts ...RequestOption) (*WalletSummary, error) {
	summary := &WalletSummary{}
	if err := p.client.Get(ctx, "/payouts/wallet", summary, opts...); err != nil {
		return nil, err
	}
	return summary, nil
}

func (p *PayoutsAPI) List(ctx context.Context, opts ...RequestOption) ([]Payout, error) {
	var payouts []Payout
	if err := p.client.Get(ctx, "/payouts", &payouts, opts...); err != nil {
		return nil, err
	}
	return payouts, nil
}

func (p *PayoutsAPI) GetBankDetails(ctx context.Context, opts ...RequestOption) (*BankDetails, error) {
	details := &BankDetails{}
	if err := p.client.Get(ctx, "/payouts/bank-details", details, opts...); err != nil {
		return nil, err
	}
	return details, nil
}

func (p *PayoutsAPI) SubmitBankDetails(ctx context.Context, payload BankDetails, opts ...RequestOption) error {
	if err := payload.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid bank details")
	}
	return p.client.Post(ctx, "/payouts/bank-details", payload, nil, opts...)
}
