package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"fundledger/internal/domain"
	"fundledger/internal/infra"
	"fundledger/internal/sqlinline"
)

// ProjectRepositoryPG implements ProjectRepository using PostgreSQL.
type ProjectRepositoryPG struct {
	db infra.SQLExecutor
}

func NewProjectRepository(db infra.SQLExecutor) *ProjectRepositoryPG {
	return &ProjectRepositoryPG{db: db}
}

// Create inserts project and assigns its id. A duplicate name surfaces as
// domain.ErrConflict.
func (r *ProjectRepositoryPG) Create(ctx context.Context, project *domain.CharityProject) error {
	row := r.db.QueryRow(ctx, sqlinline.QInsertProject, project.Name, project.Description, project.FullAmount, project.CreateDate)
	if err := row.Scan(&project.ID); err != nil {
		return fmt.Errorf("insert project: %w", mapError(err))
	}
	return nil
}

// GetByID loads a project and locks its row for the rest of the transaction.
func (r *ProjectRepositoryPG) GetByID(ctx context.Context, id int64) (*domain.CharityProject, error) {
	project, err := scanProject(r.db.QueryRow(ctx, sqlinline.QGetProject, id))
	if err != nil {
		return nil, fmt.Errorf("get project %d: %w", id, err)
	}
	return project, nil
}

func (r *ProjectRepositoryPG) FindIDByName(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, sqlinline.QFindProjectIDByName, name).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("find project by name: %w", mapError(err))
	}
	return id, nil
}

func (r *ProjectRepositoryPG) List(ctx context.Context) ([]*domain.CharityProject, error) {
	return r.list(ctx, sqlinline.QListProjects)
}

// ListOpen returns projects still collecting funds in creation order, locking
// them for the rest of the transaction.
func (r *ProjectRepositoryPG) ListOpen(ctx context.Context) ([]*domain.CharityProject, error) {
	return r.list(ctx, sqlinline.QListOpenProjects)
}

func (r *ProjectRepositoryPG) Update(ctx context.Context, project *domain.CharityProject) error {
	tag, err := r.db.Exec(ctx, sqlinline.QUpdateProject,
		project.ID, project.Name, project.Description, project.FullAmount,
		project.InvestedAmount, project.FullyInvested, project.CloseDate)
	if err != nil {
		return fmt.Errorf("update project %d: %w", project.ID, mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update project %d: %w", project.ID, domain.ErrNotFound)
	}
	return nil
}

// SaveFunding persists the allocation columns of project.
func (r *ProjectRepositoryPG) SaveFunding(ctx context.Context, project *domain.CharityProject) error {
	tag, err := r.db.Exec(ctx, sqlinline.QUpdateProjectFunding,
		project.ID, project.InvestedAmount, project.FullyInvested, project.CloseDate)
	if err != nil {
		return fmt.Errorf("update project %d funding: %w", project.ID, mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update project %d funding: %w", project.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a project that has not received any funds.
func (r *ProjectRepositoryPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, sqlinline.QDeleteProject, id)
	if err != nil {
		return fmt.Errorf("delete project %d: %w", id, mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete project %d: %w", id, domain.Fail(domain.ErrPrecondition, domain.MsgProjectHasFunds))
	}
	return nil
}

func (r *ProjectRepositoryPG) list(ctx context.Context, query string) ([]*domain.CharityProject, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", mapError(err))
	}
	defer rows.Close()

	items := make([]*domain.CharityProject, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", mapError(err))
	}
	return items, nil
}

func scanProject(row pgx.Row) (*domain.CharityProject, error) {
	var p domain.CharityProject
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.FullAmount, &p.InvestedAmount, &p.FullyInvested, &p.CreateDate, &p.CloseDate); err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

var _ domain.ProjectRepository = (*ProjectRepositoryPG)(nil)
