package dto

import (
	"time"

	"github.com/SscSPs/farm_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProjectRequest defines the data needed to open a project budget.
type CreateProjectRequest struct {
	Name             string          `json:"name" binding:"required,max=150"`
	BudgetAllocation decimal.Decimal `json:"budgetAllocation" binding:"dpos"`
	StartDate        time.Time       `json:"startDate" binding:"required"`
	Description      string          `json:"description"`
}

// ProjectResponse defines the data returned for a project.
type ProjectResponse struct {
	ProjectID        string          `json:"projectID"`
	Name             string          `json:"name"`
	BudgetAllocation decimal.Decimal `json:"budgetAllocation"`
	StartDate        time.Time       `json:"startDate"`
	Description      string          `json:"description,omitempty"`
	IsActive         bool            `json:"isActive"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy,omitempty"`
	LastUpdatedAt    time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy    string          `json:"lastUpdatedBy,omitempty"`
}

// BudgetSummaryResponse reports how much of a project's budget is consumed.
type BudgetSummaryResponse struct {
	ProjectID       string          `json:"projectID"`
	ProjectName     string          `json:"projectName"`
	Allocation      decimal.Decimal `json:"allocation"`
	Spent           decimal.Decimal `json:"spent"`
	Remaining       decimal.Decimal `json:"remaining"`
	PercentConsumed decimal.Decimal `json:"percentConsumed"`
	ExpenseCount    int             `json:"expenseCount"`
	NearLimit       bool            `json:"nearLimit"`
}

// ToProjectResponse converts a domain.Project to ProjectResponse DTO
func ToProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ProjectID:        p.ProjectID,
		Name:             p.Name,
		BudgetAllocation: p.BudgetAllocation,
		StartDate:        p.StartDate,
		Description:      p.Description,
		IsActive:         p.IsActive,
		CreatedAt:        p.CreatedAt,
		CreatedBy:        p.CreatedBy,
		LastUpdatedAt:    p.LastUpdatedAt,
		LastUpdatedBy:    p.LastUpdatedBy,
	}
}

// ToBudgetSummaryResponse converts a domain.BudgetSummary.
func ToBudgetSummaryResponse(s *domain.BudgetSummary) BudgetSummaryResponse {
	return BudgetSummaryResponse{
		ProjectID:       s.ProjectID,
		ProjectName:     s.ProjectName,
		Allocation:      s.Allocation,
		Spent:           s.Spent,
		Remaining:       s.Remaining,
		PercentConsumed: s.PercentConsumed,
		ExpenseCount:    s.ExpenseCount,
		NearLimit:       s.NearLimit,
	}
}
