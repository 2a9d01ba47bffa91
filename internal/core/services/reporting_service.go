package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/farm_ledger/internal/apperrors"
	"github.com/SscSPs/farm_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/farm_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/farm_ledger/internal/core/ports/services"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	projectRepo   portsrepo.ProjectReader
	materialRepo  portsrepo.MaterialReader
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingProjectReader lets the service reject reports for unknown projects.
func WithReportingProjectReader(repo portsrepo.ProjectReader) ReportingServiceOption {
	return func(s *reportingService) {
		s.projectRepo = repo
	}
}

// WithReportingMaterialReader lets the service reject reports for unknown materials.
func WithReportingMaterialReader(repo portsrepo.MaterialReader) ReportingServiceOption {
	return func(s *reportingService) {
		s.materialRepo = repo
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		reportingRepo: repo,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// MonthlyExpenseSummary totals a project's active expenses per month
func (s *reportingService) MonthlyExpenseSummary(ctx context.Context, projectID string) ([]domain.MonthlyExpenseTotal, error) {
	if projectID == "" {
		return nil, fmt.Errorf("%w: project is required", apperrors.ErrValidation)
	}
	if s.projectRepo != nil {
		if _, err := s.projectRepo.FindProjectByID(ctx, projectID); err != nil {
			return nil, err
		}
	}

	rows, err := s.reportingRepo.GetMonthlyExpenseTotals(ctx, projectID)
	if err != nil {
		s.LogError(ctx, err, "Failed to get monthly expense totals", slog.String("project_id", projectID))
		return nil, fmt.Errorf("failed to get monthly expense totals: %w", err)
	}

	s.LogDebug(ctx, "Monthly expense summary generated",
		slog.String("project_id", projectID),
		slog.Int("months", len(rows)))
	return rows, nil
}

// MonthlyMovementSummary totals stock increases and decreases per month
func (s *reportingService) MonthlyMovementSummary(ctx context.Context, filter domain.MovementReportFilter) ([]domain.MonthlyMovementTotal, error) {
	if filter.Category != "" && !filter.Category.IsValid() {
		return nil, fmt.Errorf("%w: unknown material category %q", apperrors.ErrValidation, filter.Category)
	}
	if filter.MaterialID != "" && s.materialRepo != nil {
		if _, err := s.materialRepo.FindMaterialByID(ctx, filter.MaterialID); err != nil {
			return nil, err
		}
	}

	rows, err := s.reportingRepo.GetMonthlyMovementTotals(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to get monthly movement totals",
			slog.String("material_id", filter.MaterialID),
			slog.String("category", string(filter.Category)))
		return nil, fmt.Errorf("failed to get monthly movement totals: %w", err)
	}

	s.LogDebug(ctx, "Monthly movement summary generated", slog.Int("months", len(rows)))
	return rows, nil
}
