package services_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/farm_ledger/internal/apperrors"
	"github.com/SscSPs/farm_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/farm_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// fakeTx is a transaction of fakeStore. Writes are staged until Commit and the
// row locks it took are held until Commit or Rollback, like SELECT ... FOR UPDATE.
type fakeTx struct {
	pgx.Tx
	held      map[string]*sync.Mutex
	done      bool
	materials map[string]domain.Material
	movements []domain.MovementRecord
	expenses  []domain.Expense
	disabled  map[string]bool

	// snapshot is set for BeginSnapshot transactions; their reads ignore later commits.
	snapshot *fakeSnapshot
}

type fakeSnapshot struct {
	materials map[string]domain.Material
	movements map[string][]domain.MovementRecord
}

// fakeStore is an in-memory implementation of every repository port.
type fakeStore struct {
	mu        sync.Mutex
	rowLocks  map[string]*sync.Mutex
	materials map[string]domain.Material
	movements map[string][]domain.MovementRecord
	projects  map[string]domain.Project
	expenses  map[string]domain.Expense
	users     map[string]domain.User

	// failMovementSave makes the next SaveMovementInTx fail with this error.
	failMovementSave error

	// beforeReplayRead runs at the start of ListReplayMovementsInTx.
	beforeReplayRead func()
}

var (
	_ portsrepo.TransactionManager       = (*fakeStore)(nil)
	_ portsrepo.MaterialRepositoryFacade = (*fakeStore)(nil)
	_ portsrepo.MovementRepositoryFacade = (*fakeStore)(nil)
	_ portsrepo.ProjectRepositoryFacade  = (*fakeStore)(nil)
	_ portsrepo.ExpenseRepositoryFacade  = (*fakeStore)(nil)
	_ portsrepo.UserReader               = (*fakeStore)(nil)
)

func newFakeStore() *fakeStore {
	return &fakeStore{
		rowLocks:  make(map[string]*sync.Mutex),
		materials: make(map[string]domain.Material),
		movements: make(map[string][]domain.MovementRecord),
		projects:  make(map[string]domain.Project),
		expenses:  make(map[string]domain.Expense),
		users:     make(map[string]domain.User),
	}
}

func (f *fakeStore) provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:    f,
		MaterialRepo: f,
		MovementRepo: f,
		ProjectRepo:  f,
		ExpenseRepo:  f,
		UserRepo:     f,
	}
}

func asFakeTx(tx pgx.Tx) *fakeTx {
	return tx.(*fakeTx)
}

func (f *fakeStore) lockRow(tx *fakeTx, key string) {
	if _, ok := tx.held[key]; ok {
		return
	}
	f.mu.Lock()
	m, ok := f.rowLocks[key]
	if !ok {
		m = &sync.Mutex{}
		f.rowLocks[key] = m
	}
	f.mu.Unlock()

	m.Lock()
	tx.held[key] = m
}

func (f *fakeStore) release(tx *fakeTx) {
	for key, m := range tx.held {
		m.Unlock()
		delete(tx.held, key)
	}
}

// --- TransactionManager ---

func (f *fakeStore) Begin(ctx context.Context) (pgx.Tx, error) {
	return &fakeTx{
		held:      make(map[string]*sync.Mutex),
		materials: make(map[string]domain.Material),
		disabled:  make(map[string]bool),
	}, nil
}

func (f *fakeStore) BeginSnapshot(ctx context.Context) (pgx.Tx, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := &fakeSnapshot{
		materials: make(map[string]domain.Material, len(f.materials)),
		movements: make(map[string][]domain.MovementRecord, len(f.movements)),
	}
	for id, m := range f.materials {
		snap.materials[id] = m
	}
	for id, mvs := range f.movements {
		snap.movements[id] = append([]domain.MovementRecord(nil), mvs...)
	}
	return &fakeTx{
		held:      make(map[string]*sync.Mutex),
		materials: make(map[string]domain.Material),
		disabled:  make(map[string]bool),
		snapshot:  snap,
	}, nil
}

func (f *fakeStore) Commit(ctx context.Context, tx pgx.Tx) error {
	t := asFakeTx(tx)
	if t.done {
		return errors.New("transaction already closed")
	}
	f.mu.Lock()
	for id, m := range t.materials {
		f.materials[id] = m
	}
	for _, mv := range t.movements {
		f.movements[mv.MaterialID] = append(f.movements[mv.MaterialID], mv)
	}
	for _, e := range t.expenses {
		f.expenses[e.ExpenseID] = e
	}
	for id := range t.disabled {
		e := f.expenses[id]
		e.IsActive = false
		f.expenses[id] = e
	}
	f.mu.Unlock()

	t.done = true
	f.release(t)
	return nil
}

func (f *fakeStore) Rollback(ctx context.Context, tx pgx.Tx) error {
	t := asFakeTx(tx)
	if t.done {
		return nil
	}
	t.done = true
	f.release(t)
	return nil
}

// --- Materials ---

func (f *fakeStore) FindMaterialByID(ctx context.Context, materialID string) (*domain.Material, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.materials[materialID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &m, nil
}

func (f *fakeStore) ListLowStock(ctx context.Context, category domain.MaterialCategory) ([]domain.Material, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Material
	for _, m := range f.materials {
		if m.IsActive && m.IsLowStock() && (category == "" || m.Category == category) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeStore) SaveMaterial(ctx context.Context, material domain.Material) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.materials {
		if m.Name == material.Name {
			return fmt.Errorf("%w: material name %s", apperrors.ErrDuplicate, material.Name)
		}
	}
	f.materials[material.MaterialID] = material
	return nil
}

func (f *fakeStore) DeactivateMaterial(ctx context.Context, materialID string, userID string, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.materials[materialID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if !m.IsActive {
		return fmt.Errorf("%w: material %s is already inactive", apperrors.ErrValidation, materialID)
	}
	m.IsActive = false
	m.LastUpdatedAt = now
	m.LastUpdatedBy = userID
	f.materials[materialID] = m
	return nil
}

func (f *fakeStore) FindMaterialByIDForUpdate(ctx context.Context, tx pgx.Tx, materialID string) (*domain.Material, error) {
	t := asFakeTx(tx)
	if staged, ok := t.materials[materialID]; ok {
		return &staged, nil
	}
	if _, err := f.FindMaterialByID(ctx, materialID); err != nil {
		return nil, err
	}
	f.lockRow(t, "material:"+materialID)
	return f.FindMaterialByID(ctx, materialID)
}

func (f *fakeStore) FindMaterialByIDInTx(ctx context.Context, tx pgx.Tx, materialID string) (*domain.Material, error) {
	t := asFakeTx(tx)
	if t.snapshot != nil {
		m, ok := t.snapshot.materials[materialID]
		if !ok {
			return nil, apperrors.ErrNotFound
		}
		return &m, nil
	}
	if staged, ok := t.materials[materialID]; ok {
		return &staged, nil
	}
	return f.FindMaterialByID(ctx, materialID)
}

func (f *fakeStore) UpdateMaterialStockInTx(ctx context.Context, tx pgx.Tx, materialID string, stock decimal.Decimal, userID string, now time.Time) error {
	t := asFakeTx(tx)
	if _, ok := t.held["material:"+materialID]; !ok {
		return errors.New("material row is not locked by this transaction")
	}
	m, ok := t.materials[materialID]
	if !ok {
		committed, err := f.FindMaterialByID(ctx, materialID)
		if err != nil {
			return err
		}
		m = *committed
	}
	m.CurrentStock = stock
	m.LastUpdatedAt = now
	m.LastUpdatedBy = userID
	t.materials[materialID] = m
	return nil
}

// --- Movements ---

func (f *fakeStore) SaveMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.MovementRecord) error {
	f.mu.Lock()
	injected := f.failMovementSave
	f.failMovementSave = nil
	f.mu.Unlock()
	if injected != nil {
		return injected
	}
	t := asFakeTx(tx)
	t.movements = append(t.movements, movement)
	return nil
}

func (f *fakeStore) ListMovementsByMaterial(ctx context.Context, materialID string, limit int, nextToken *string) ([]domain.MovementRecord, *string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := f.movements[materialID]
	out := make([]domain.MovementRecord, 0, len(all))
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil, nil
}

func (f *fakeStore) ListReplayMovementsInTx(ctx context.Context, tx pgx.Tx, materialID string) ([]domain.MovementRecord, error) {
	f.mu.Lock()
	hook := f.beforeReplayRead
	f.mu.Unlock()
	if hook != nil {
		hook()
	}

	t := asFakeTx(tx)
	var all []domain.MovementRecord
	if t.snapshot != nil {
		all = t.snapshot.movements[materialID]
	} else {
		all = f.committedMovements(materialID)
		for _, mv := range t.movements {
			if mv.MaterialID == materialID {
				all = append(all, mv)
			}
		}
	}
	start := 0
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].Type == domain.MovementReset {
			start = i
			break
		}
	}
	return append([]domain.MovementRecord(nil), all[start:]...), nil
}

func (f *fakeStore) committedMovements(materialID string) []domain.MovementRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.MovementRecord(nil), f.movements[materialID]...)
}

// --- Projects ---

func (f *fakeStore) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[projectID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

func (f *fakeStore) SaveProject(ctx context.Context, project domain.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.projects[project.ProjectID] = project
	return nil
}

func (f *fakeStore) DeactivateProject(ctx context.Context, projectID string, userID string, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[projectID]
	if !ok {
		return apperrors.ErrNotFound
	}
	p.IsActive = false
	f.projects[projectID] = p
	return nil
}

func (f *fakeStore) FindProjectByIDForUpdate(ctx context.Context, tx pgx.Tx, projectID string) (*domain.Project, error) {
	if _, err := f.FindProjectByID(ctx, projectID); err != nil {
		return nil, err
	}
	f.lockRow(asFakeTx(tx), "project:"+projectID)
	return f.FindProjectByID(ctx, projectID)
}

// --- Expenses ---

func (f *fakeStore) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.expenses[expenseID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (f *fakeStore) ListExpensesByProject(ctx context.Context, projectID string, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Expense
	for _, e := range f.expenses {
		if e.ProjectID == projectID && e.IsActive {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil, nil
}

func (f *fakeStore) SumActiveExpenses(ctx context.Context, projectID string) (decimal.Decimal, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := decimal.Zero
	count := 0
	for _, e := range f.expenses {
		if e.ProjectID == projectID && e.IsActive {
			total = total.Add(e.Amount)
			count++
		}
	}
	return total, count, nil
}

func (f *fakeStore) SumActiveExpensesInTx(ctx context.Context, tx pgx.Tx, projectID string) (decimal.Decimal, int, error) {
	t := asFakeTx(tx)
	total, count, err := f.SumActiveExpenses(ctx, projectID)
	if err != nil {
		return decimal.Zero, 0, err
	}
	for _, e := range t.expenses {
		if e.ProjectID == projectID {
			total = total.Add(e.Amount)
			count++
		}
	}
	return total, count, nil
}

func (f *fakeStore) SaveExpenseInTx(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	t := asFakeTx(tx)
	if _, ok := t.held["project:"+expense.ProjectID]; !ok {
		return errors.New("project row is not locked by this transaction")
	}
	t.expenses = append(t.expenses, expense)
	return nil
}

func (f *fakeStore) DeactivateExpenseInTx(ctx context.Context, tx pgx.Tx, expenseID string, userID string, now time.Time) error {
	e, err := f.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return err
	}
	if !e.IsActive {
		return fmt.Errorf("%w: expense %s is not active", apperrors.ErrValidation, expenseID)
	}
	asFakeTx(tx).disabled[expenseID] = true
	return nil
}

// --- Users ---

func (f *fakeStore) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

// --- Seeding helpers ---

func (f *fakeStore) seedMaterial(id string, category domain.MaterialCategory, stock, minimum int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.materials[id] = domain.Material{
		MaterialID:   id,
		Name:         "material-" + id,
		Unit:         domain.UnitBag,
		Category:     category,
		InitialStock: decimal.NewFromInt(stock),
		CurrentStock: decimal.NewFromInt(stock),
		MinimumAlert: decimal.NewFromInt(minimum),
		IsActive:     true,
	}
}

func (f *fakeStore) seedProject(id string, allocation int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.projects[id] = domain.Project{
		ProjectID:        id,
		Name:             "project-" + id,
		BudgetAllocation: decimal.NewFromInt(allocation),
		IsActive:         true,
	}
}

func (f *fakeStore) seedExpense(id, projectID string, amount int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.expenses[id] = domain.Expense{
		ExpenseID: id,
		ProjectID: projectID,
		Category:  "cement",
		Amount:    decimal.NewFromInt(amount),
		IsActive:  true,
	}
}

func (f *fakeStore) stockOf(materialID string) decimal.Decimal {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.materials[materialID].CurrentStock
}

func (f *fakeStore) activeExpenseCount(projectID string) int {
	_, count, _ := f.SumActiveExpenses(context.Background(), projectID)
	return count
}
