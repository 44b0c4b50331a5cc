package console

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeInvalidStep   = "INVALID_WIZARD_STEP_TRANSITION"
	textCodeWizardClosed  = "WIZARD_SUBMITTED"
	textCodeStepUnknown   = "UNKNOWN_WIZARD_STEP"
	textCodeStepNotBuilt  = "WIZARD_STEP_INCOMPLETE"
	wizardActorTypeSeller = "seller"
)

// ErrInvalidStepTransition is returned when a requested wizard move is
// not allowed.
var ErrInvalidStepTransition = goerrors.New("invalid wizard step transition", goerrors.CategoryValidation).
	WithTextCode(textCodeInvalidStep).
	WithCode(goerrors.CodeBadRequest)

// ErrWizardSubmitted is returned when attempting to move away from the
// terminal submitted step.
var ErrWizardSubmitted = goerrors.New("campaign wizard already submitted", goerrors.CategoryConflict).
	WithTextCode(textCodeWizardClosed).
	WithCode(goerrors.CodeConflict)

// invalidStepTransition wraps the sentinel so callers can errors.Is it
// while the annotation stays on the wrapper. WithMetadata mutates its
// receiver, so annotating the sentinel itself would accumulate state.
func invalidStepTransition(meta map[string]any) error {
	return goerrors.Wrap(ErrInvalidStepTransition, goerrors.CategoryValidation, "invalid wizard step transition").
		WithTextCode(textCodeInvalidStep).
		WithCode(goerrors.CodeBadRequest).
		WithMetadata(meta)
}

func wizardSubmitted(meta map[string]any) error {
	return goerrors.Wrap(ErrWizardSubmitted, goerrors.CategoryConflict, "campaign wizard already submitted").
		WithTextCode(textCodeWizardClosed).
		WithCode(goerrors.CodeConflict).
		WithMetadata(meta)
}

// WizardStep is a step of the campaign creation flow.
type WizardStep = string

const (
	StepDetails   WizardStep = "details"
	StepAudience  WizardStep = "audience"
	StepBudget    WizardStep = "budget"
	StepCreative  WizardStep = "creative"
	StepReview    WizardStep = "review"
	StepSubmitted WizardStep = "submitted"
)

// WizardActor identifies who drove a step change.
type WizardActor struct {
	ID   string
	Type string
}

// StepMetadata captures extra context for a step change.
type StepMetadata struct {
	Reason   string
	Metadata map[string]any
}

// StepContext is passed into hooks for additional processing.
type StepContext struct {
	Actor WizardActor
	Draft *CampaignDraft
	From  WizardStep
	To    WizardStep
	Meta  StepMetadata
}

// StepHook is executed before or after a step change.
type StepHook func(ctx context.Context, sc StepContext) error

// StepOption customizes a single step change.
type StepOption func(*stepOptions)

// WizardOption customizes wizard construction.
type WizardOption func(*CampaignWizard)

// WithWizardClock injects a custom clock (useful for tests).
func WithWizardClock(clock func() time.Time) WizardOption {
	return func(w *CampaignWizard) {
		if clock != nil {
			w.now = clock
		}
	}
}

// WithWizardLogger overrides the wizard logger.
func WithWizardLogger(logger Logger) WizardOption {
	return func(w *CampaignWizard) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithStepReason sets the human-readable reason for the step change.
func WithStepReason(reason string) StepOption {
	return func(opts *stepOptions) {
		opts.metadata.Reason = reason
	}
}

// WithStepMetadata merges metadata into the step context.
func WithStepMetadata(metadata map[string]any) StepOption {
	return func(opts *stepOptions) {
		if len(metadata) == 0 {
			return
		}
		if opts.metadata.Metadata == nil {
			opts.metadata.Metadata = make(map[string]any, len(metadata))
		}
		for k, v := range metadata {
			opts.metadata.Metadata[k] = v
		}
	}
}

// WithForceStep bypasses transition validation (use sparingly).
func WithForceStep() StepOption {
	return func(opts *stepOptions) {
		opts.force = true
	}
}

// WithBeforeStepHook adds a hook executed before the step updates.
func WithBeforeStepHook(h StepHook) StepOption {
	return func(opts *stepOptions) {
		if h != nil {
			opts.beforeHooks = append(opts.beforeHooks, h)
		}
	}
}

// WithAfterStepHook adds a hook executed after the step updates.
func WithAfterStepHook(h StepHook) StepOption {
	return func(opts *stepOptions) {
		if h != nil {
			opts.afterHooks = append(opts.afterHooks, h)
		}
	}
}

type stepOptions struct {
	metadata    StepMetadata
	force       bool
	beforeHooks []StepHook
	afterHooks  []StepHook
}

// CampaignWizard drives a draft through the multi-step campaign
// creation flow. Forward moves go one step at a time; backward moves
// are allowed anywhere before submission. Submitted is terminal.
type CampaignWizard struct {
	transitions map[WizardStep]map[WizardStep]struct{}
	now         func() time.Time
	logger      Logger
}

func NewCampaignWizard(opts ...WizardOption) *CampaignWizard {
	w := &CampaignWizard{
		transitions: map[WizardStep]map[WizardStep]struct{}{
			StepDetails: {
				StepAudience: {},
			},
			StepAudience: {
				StepBudget:  {},
				StepDetails: {},
			},
			StepBudget: {
				StepCreative: {},
				StepAudience: {},
			},
			StepCreative: {
				StepReview: {},
				StepBudget: {},
			},
			StepReview: {
				StepSubmitted: {},
				StepCreative:  {},
			},
		},
		now:    time.Now,
		logger: defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}

	return w
}

// CurrentStep normalizes a draft's step, defaulting empty to details.
func (w *CampaignWizard) CurrentStep(draft *CampaignDraft) WizardStep {
	if draft == nil {
		return ""
	}
	if draft.Step == "" {
		draft.Step = StepDetails
	}
	return draft.Step
}

// Advance moves a draft to the target step, running hooks around the
// update. The draft is mutated in place on success.
func (w *CampaignWizard) Advance(ctx context.Context, actor WizardActor, draft *CampaignDraft, target WizardStep, opts ...StepOption) error {
	if draft == nil {
		return invalidStepTransition(map[string]any{
			"target": target,
			"reason": "draft is nil",
		})
	}

	from := w.CurrentStep(draft)
	if target == "" {
		return invalidStepTransition(map[string]any{
			"reason": "target step is empty",
		})
	}

	if from == target {
		return nil
	}

	options := &stepOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	if from == StepSubmitted && !options.force {
		return wizardSubmitted(map[string]any{
			"from": from,
			"to":   target,
		})
	}

	if !options.force && !w.canAdvance(from, target) {
		return invalidStepTransition(map[string]any{
			"from": from,
			"to":   target,
		})
	}

	stepCtx := StepContext{
		Actor: actor,
		Draft: draft,
		From:  from,
		To:    target,
		Meta:  options.metadata,
	}

	for _, hook := range options.beforeHooks {
		if hook == nil {
			continue
		}
		if err := hook(ctx, stepCtx); err != nil {
			return err
		}
	}

	draft.Step = target
	now := w.now()
	draft.UpdatedAt = &now

	for _, hook := range options.afterHooks {
		if hook == nil {
			continue
		}
		if err := hook(ctx, stepCtx); err != nil {
			return err
		}
	}

	w.logger.Debug("wizard step",
		"from", from,
		"to", target,
		"actor", actor.ID,
		"reason", options.metadata.Reason,
	)

	return nil
}

func (w *CampaignWizard) canAdvance(from, to WizardStep) bool {
	if allowed, ok := w.transitions[from]; ok {
		_, exists := allowed[to]
		return exists
	}
	return false
}
