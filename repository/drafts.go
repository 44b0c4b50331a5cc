package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	repobun "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ErrDraftNotFound is returned when no draft exists for an owner/kind pair.
var ErrDraftNotFound = errors.New("draft not found")

// FormDraftModel is the Bun model for locally persisted form drafts.
// A draft keeps half-finished onboarding or campaign input across page
// reloads; one row per owner and form kind.
type FormDraftModel struct {
	bun.BaseModel `bun:"table:form_drafts"`

	ID        uuid.UUID      `bun:"id,pk,nullzero,type:uuid"`
	OwnerID   string         `bun:"owner_id,notnull"`
	Kind      string         `bun:"kind,notnull"`
	Step      string         `bun:"step"`
	Payload   map[string]any `bun:"payload,type:jsonb"`
	CreatedAt time.Time      `bun:"created_at,default:current_timestamp"`
	UpdatedAt time.Time      `bun:"updated_at,default:current_timestamp"`
}

// DraftRepository stores form drafts. Generic CRUD comes from the
// embedded repository; owner/kind lookups go straight through Bun.
type DraftRepository struct {
	repobun.Repository[*FormDraftModel]
	db *bun.DB
}

// NewDraftRepository creates a new repository.
func NewDraftRepository(db *bun.DB) *DraftRepository {
	repo := repobun.NewRepository[*FormDraftModel](db, repobun.ModelHandlers[*FormDraftModel]{
		NewRecord: func() *FormDraftModel { return &FormDraftModel{} },
		GetID: func(d *FormDraftModel) uuid.UUID {
			if d == nil {
				return uuid.Nil
			}
			return d.ID
		},
		SetID: func(d *FormDraftModel, id uuid.UUID) {
			if d != nil {
				d.ID = id
			}
		},
	})

	return &DraftRepository{
		Repository: repo,
		db:         db,
	}
}

// Save upserts a draft for the owner/kind pair. The ID is derived from
// the pair, so repeated saves overwrite the same row.
func (r *DraftRepository) Save(ctx context.Context, draft *FormDraftModel) error {
	if draft.ID == uuid.Nil {
		id, err := DraftID(draft.OwnerID, draft.Kind)
		if err != nil {
			return err
		}
		draft.ID = id
	}
	draft.UpdatedAt = time.Now()

	existing, err := r.GetByID(ctx, draft.ID.String())
	if err != nil {
		if repobun.IsRecordNotFound(err) {
			if draft.CreatedAt.IsZero() {
				draft.CreatedAt = draft.UpdatedAt
			}
			_, err = r.CreateTx(ctx, r.db, draft)
			return err
		}
		return err
	}

	draft.CreatedAt = existing.CreatedAt
	_, err = r.UpdateTx(ctx, r.db, draft, repobun.UpdateByID(draft.ID.String()))
	return err
}

// FindByOwnerAndKind returns the draft for the owner/kind pair.
func (r *DraftRepository) FindByOwnerAndKind(ctx context.Context, ownerID, kind string) (*FormDraftModel, error) {
	var model FormDraftModel
	err := r.db.NewSelect().
		Model(&model).
		Where("owner_id = ? AND kind = ?", ownerID, kind).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDraftNotFound
		}
		return nil, err
	}
	return &model, nil
}

// Delete removes the draft for the owner/kind pair. Deleting a missing
// draft is not an error.
func (r *DraftRepository) Delete(ctx context.Context, ownerID, kind string) error {
	_, err := r.db.NewDelete().
		Model((*FormDraftModel)(nil)).
		Where("owner_id = ? AND kind = ?", ownerID, kind).
		Exec(ctx)
	return err
}

// DraftID derives a stable draft ID from the owner/kind pair.
func DraftID(ownerID, kind string) (uuid.UUID, error) {
	return hashid.NewUUID(ownerID + ":" + kind)
}
