package console_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	console "github.com/goliatone/go-console"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCampaignsAPI(t *testing.T, handler http.Handler) *console.CampaignsAPI {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := console.NewClient(console.NewMemoryTokenStore(), gatewayConfig(srv.URL))
	return console.NewCampaignsAPI(client, nil)
}

func completeDraft() *console.CampaignDraft {
	return &console.CampaignDraft{
		ID:      "d-1",
		OwnerID: "usr-1",
		Step:    console.StepReview,
		Form: console.CampaignForm{
			Name:        "Diwali Clearance",
			Objective:   "clearance",
			Categories:  []string{"Kurtas"},
			DailyBudget: 500,
			TotalBudget: 5000,
			CreativeURL: "https://cdn.example.com/banner.png",
			Headline:    "Up to 60% off",
		},
	}
}

func TestCampaignFormValidateStep(t *testing.T) {
	form := completeDraft().Form

	for _, step := range []console.WizardStep{
		console.StepDetails,
		console.StepAudience,
		console.StepBudget,
		console.StepCreative,
	} {
		assert.NoError(t, form.ValidateStep(step), step)
	}

	t.Run("details rejects unknown objective", func(t *testing.T) {
		bad := form
		bad.Objective = "world domination"
		assert.Error(t, bad.ValidateStep(console.StepDetails))
		// other steps unaffected
		assert.NoError(t, bad.ValidateStep(console.StepBudget))
	})

	t.Run("budget rejects total below daily", func(t *testing.T) {
		bad := form
		bad.TotalBudget = 300
		assert.Error(t, bad.ValidateStep(console.StepBudget))
	})

	t.Run("budget rejects daily below floor", func(t *testing.T) {
		bad := form
		bad.DailyBudget = 50
		assert.Error(t, bad.ValidateStep(console.StepBudget))
	})

	t.Run("review and submitted validate nothing", func(t *testing.T) {
		empty := console.CampaignForm{}
		assert.NoError(t, empty.ValidateStep(console.StepReview))
		assert.NoError(t, empty.ValidateStep(console.StepSubmitted))
	})
}

func TestCampaignsAPI_Submit(t *testing.T) {
	var received console.CampaignForm
	campaigns := newCampaignsAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/campaigns", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "c-1", "name": "Diwali Clearance", "status": "under_review"}`))
	}))

	draft := completeDraft()
	actor := console.WizardActor{ID: "usr-1", Type: "seller"}

	campaign, err := campaigns.Submit(context.Background(), actor, draft)
	require.NoError(t, err)

	assert.Equal(t, "c-1", campaign.ID)
	assert.Equal(t, "Diwali Clearance", received.Name)
	assert.Equal(t, console.StepSubmitted, draft.Step)
}

func TestCampaignsAPI_SubmitRequiresReviewStep(t *testing.T) {
	called := false
	campaigns := newCampaignsAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	draft := completeDraft()
	draft.Step = console.StepBudget

	_, err := campaigns.Submit(context.Background(), console.WizardActor{}, draft)
	require.Error(t, err)
	assert.False(t, called)
	assert.Equal(t, console.StepBudget, draft.Step)
}

func TestCampaignsAPI_SubmitRejectsIncompleteDraft(t *testing.T) {
	called := false
	campaigns := newCampaignsAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	draft := completeDraft()
	draft.Form.CreativeURL = ""

	_, err := campaigns.Submit(context.Background(), console.WizardActor{}, draft)
	require.Error(t, err)
	assert.False(t, called)
}

func TestCampaignsAPI_SubmitBackendRejection(t *testing.T) {
	campaigns := newCampaignsAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message": "insufficient ad credits"}`))
	}))

	draft := completeDraft()

	_, err := campaigns.Submit(context.Background(), console.WizardActor{}, draft)
	require.Error(t, err)
	assert.True(t, console.IsValidationRejected(err))
	// the draft stays at review for a retry
	assert.Equal(t, console.StepReview, draft.Step)
}

func TestCampaignsAPI_PauseResume(t *testing.T) {
	var paths []string
	campaigns := newCampaignsAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
	}))

	require.NoError(t, campaigns.Pause(context.Background(), "c-1"))
	require.NoError(t, campaigns.Resume(context.Background(), "c-1"))

	assert.Equal(t, []string{"/campaigns/c-1/pause", "/campaigns/c-1/resume"}, paths)
}

func TestCampaignsAPI_List(t *testing.T) {
	campaigns := newCampaignsAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": "c-1"}, {"id": "c-2"}]`))
	}))

	list, err := campaigns.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
