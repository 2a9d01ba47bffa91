package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/farm_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ProjectReader defines read operations for project data
type ProjectReader interface {
	// FindProjectByID retrieves a project by ID without locking it.
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)
}

// ProjectWriter defines write operations for project data
type ProjectWriter interface {
	// SaveProject persists a new project.
	SaveProject(ctx context.Context, project domain.Project) error

	// DeactivateProject marks a project as inactive.
	DeactivateProject(ctx context.Context, projectID string, userID string, now time.Time) error
}

// ProjectTransactionSupport defines operations used inside a budget transaction
type ProjectTransactionSupport interface {
	// FindProjectByIDForUpdate selects a project and locks its row until the transaction ends.
	// The lock serializes every budget mutation of the project.
	FindProjectByIDForUpdate(ctx context.Context, tx pgx.Tx, projectID string) (*domain.Project, error)
}

// ProjectRepositoryFacade combines all project-related repository interfaces
type ProjectRepositoryFacade interface {
	ProjectReader
	ProjectWriter
	ProjectTransactionSupport
}
