package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/malithjkd/ai-project-manager/internal/entity"
)

// IdeationFormRepository defines the interface for ideation form persistence.
// The store is append-only: records are written once and never updated.
type IdeationFormRepository interface {
	Save(ctx context.Context, form entity.IdeationForm) (*entity.StoredIdeationForm, error)
	Get(ctx context.Context, id string) (*entity.StoredIdeationForm, error)
}

var _ IdeationFormRepository = &IdeationFormPostgres{}

// IdeationFormPostgres implements IdeationFormRepository using PostgreSQL
type IdeationFormPostgres struct {
	db *pgxpool.Pool
}

func NewIdeationFormPostgres(db *pgxpool.Pool) *IdeationFormPostgres {
	return &IdeationFormPostgres{
		db: db,
	}
}

func (r *IdeationFormPostgres) Save(ctx context.Context, form entity.IdeationForm) (*entity.StoredIdeationForm, error) {
	stored := entity.StoredIdeationForm{Form: form}

	err := r.db.QueryRow(ctx, `
		INSERT INTO ideation_forms (
			form_number, form_date, target_persona, business_sponsor,
			originator, dasc_approval, problem_statement, solution_statement
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		form.FormNumber,
		form.Date,
		form.TargetPersona,
		form.BusinessSponsor,
		form.Originator,
		form.DascApproval,
		form.ProblemStatement,
		form.SolutionStatement,
	).Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: save ideation form: %v", entity.ErrPersistenceWrite, err)
	}

	return &stored, nil
}

func (r *IdeationFormPostgres) Get(ctx context.Context, id string) (*entity.StoredIdeationForm, error) {
	formID, err := uuid.Parse(id)
	if err != nil {
		return nil, entity.ErrFormNotFound
	}

	var stored entity.StoredIdeationForm
	err = r.db.QueryRow(ctx, `
		SELECT id, form_number, form_date, target_persona, business_sponsor,
		       originator, dasc_approval, problem_statement, solution_statement,
		       created_at
		FROM ideation_forms
		WHERE id = $1`,
		formID,
	).Scan(
		&stored.ID,
		&stored.Form.FormNumber,
		&stored.Form.Date,
		&stored.Form.TargetPersona,
		&stored.Form.BusinessSponsor,
		&stored.Form.Originator,
		&stored.Form.DascApproval,
		&stored.Form.ProblemStatement,
		&stored.Form.SolutionStatement,
		&stored.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrFormNotFound
		}
		return nil, fmt.Errorf("get ideation form: %w", err)
	}

	return &stored, nil
}
