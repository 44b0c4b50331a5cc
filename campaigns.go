package console

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
)

// CampaignForm accumulates across the wizard steps; each step fills its
// own slice of fields and validates only what it owns.
type CampaignForm struct {
	Name        string   `form:"name" json:"name"`
	Objective   string   `form:"objective" json:"objective"`
	Categories  []string `json:"categories,omitempty"`
	Regions     []string `json:"regions,omitempty"`
	DailyBudget float64  `form:"daily_budget" json:"dailyBudget"`
	TotalBudget float64  `form:"total_budget" json:"totalBudget"`
	CreativeURL string   `form:"creative_url" json:"creativeUrl"`
	Headline    string   `form:"headline" json:"headline"`
	StartDate   string   `form:"start_date" json:"startDate"`
	EndDate     string   `form:"end_date" json:"endDate"`
}

// ValidateStep checks only the fields the given wizard step collects.
func (f CampaignForm) ValidateStep(step WizardStep) error {
	switch step {
	case StepDetails:
		return validation.ValidateStruct(&f,
			validation.Field(&f.Name, validation.Required, validation.Length(3, 120)),
			validation.Field(&f.Objective, validation.Required,
				validation.In("visibility", "conversions", "clearance")),
		)
	case StepAudience:
		return validation.ValidateStruct(&f,
			validation.Field(&f.Categories, validation.Required),
		)
	case StepBudget:
		return validation.ValidateStruct(&f,
			validation.Field(&f.DailyBudget, validation.Required, validation.Min(100.0)),
			validation.Field(&f.TotalBudget, validation.Required, validation.Min(f.DailyBudget)),
		)
	case StepCreative:
		return validation.ValidateStruct(&f,
			validation.Field(&f.CreativeURL, validation.Required),
			validation.Field(&f.Headline, validation.Required, validation.Length(3, 90)),
		)
	default:
		return nil
	}
}

// CampaignDraft is the wizard's working copy, persisted locally via the
// drafts repository so a wizard abandoned mid-flow can resume.
type CampaignDraft struct {
	ID        string       `json:"id,omitempty"`
	OwnerID   string       `json:"ownerId,omitempty"`
	Step      WizardStep   `json:"step"`
	Form      CampaignForm `json:"form"`
	UpdatedAt *time.Time   `json:"updatedAt,omitempty"`
}

// Campaign is the backend's record of a submitted campaign.
type Campaign struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Objective    string     `json:"objective"`
	Status       string     `json:"status"`
	DailyBudget  float64    `json:"dailyBudget"`
	TotalBudget  float64    `json:"totalBudget"`
	SpentBudget  float64    `json:"spentBudget"`
	CreditBurned float64    `json:"creditBurned,omitempty"`
	StartDate    string     `json:"startDate,omitempty"`
	EndDate      string     `json:"endDate,omitempty"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
}

// CampaignsAPI wraps the marketing campaign endpoints.
type CampaignsAPI struct {
	client *Client
	wizard *CampaignWizard
	logger Logger
}

func NewCampaignsAPI(client *Client, wizard *CampaignWizard) *CampaignsAPI {
	if wizard == nil {
		wizard = NewCampaignWizard()
	}

	return &CampaignsAPI{
		client: client,
		wizard: wizard,
		logger: defLogger{},
	}
}

func (c *CampaignsAPI) WithLogger(logger Logger) *CampaignsAPI {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// Wizard exposes the shared step machine for controllers.
func (c *CampaignsAPI) Wizard() *CampaignWizard {
	return c.wizard
}

func (c *CampaignsAPI) List(ctx context.Context, opts ...RequestOption) ([]Campaign, error) {
	var campaigns []Campaign
	if err := c.client.Get(ctx, "/campaigns", &campaigns, opts...); err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (c *CampaignsAPI) Get(ctx context.Context, id string, opts ...RequestOption) (*Campaign, error) {
	campaign := &Campaign{}
	if err := c.client.Get(ctx, "/campaigns/"+id, campaign, opts...); err != nil {
		return nil, err
	}
	return campaign, nil
}

func (c *CampaignsAPI) Pause(ctx context.Context, id string, opts ...RequestOption) error {
	return c.client.Post(ctx, "/campaigns/"+id+"/pause", nil, nil, opts...)
}

func (c *CampaignsAPI) Resume(ctx context.Context, id string, opts ...RequestOption) error {
	return c.client.Post(ctx, "/campaigns/"+id+"/resume", nil, nil, opts...)
}

// Submit files a draft that has reached the review step. On success the
// wizard moves the draft to submitted; the returned campaign is the
// backend's accepted record.
func (c *CampaignsAPI) Submit(ctx context.Context, actor WizardActor, draft *CampaignDraft, opts ...RequestOption) (*Campaign, error) {
	if draft == nil {
		return nil, invalidStepTransition(map[string]any{
			"reason": "draft is nil",
		})
	}

	if step := c.wizard.CurrentStep(draft); step != StepReview {
		return nil, goerrors.New("campaign draft is not ready for submission", goerrors.CategoryValidation).
			WithCode(goerrors.CodeBadRequest).
			WithMetadata(map[string]any{"step": step})
	}

	for _, step := range []WizardStep{StepDetails, StepAudience, StepBudget, StepCreative} {
		if err := draft.Form.ValidateStep(step); err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "incomplete campaign draft").
				WithTextCode(textCodeStepNotBuilt).
				WithMetadata(map[string]any{"step": step})
		}
	}

	campaign := &Campaign{}
	if err := c.client.Post(ctx, "/campaigns", draft.Form, campaign, opts...); err != nil {
		return nil, err
	}

	if err := c.wizard.Advance(ctx, actor, draft, StepSubmitted,
		WithStepReason("campaign accepted by backend"),
	); err != nil {
		// The backend accepted the campaign; a step bookkeeping failure
		// is not worth surfacing to the seller.
		c.logger.Warn("wizard submit bookkeeping failed", "error", err)
	}

	return campaign, nil
}
