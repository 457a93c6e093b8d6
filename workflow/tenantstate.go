package workflow

import (
	"context"
	"fmt"
	"sync"

	"goldloan/models"
)

// DirectoryAPI is the backend surface the tenant state store depends on.
// *Client satisfies it.
type DirectoryAPI interface {
	ListBanks(ctx context.Context) ([]models.Bank, error)
	ListBranches(ctx context.Context, bankID uint) ([]models.Branch, error)
	ListUsers(ctx context.Context, bankID uint, branchID *uint) ([]models.TenantUser, error)
	ResolveContext(ctx context.Context, bankID, branchID, userID uint) (*TenantContext, error)
}

// TenantState holds the client's bank → branch → user selection together
// with the directory lists backing each level. Selecting at one level clears
// every level below it, and responses from superseded loads are discarded.
type TenantState struct {
	api DirectoryAPI

	mu sync.Mutex

	banks    []models.Bank
	branches []models.Branch
	users    []models.TenantUser

	bank   *models.Bank
	branch *models.Branch
	user   *models.TenantUser

	permissions *models.Permissions
	context     *TenantContext

	// Per-resource sequence counters; a load only applies its result if its
	// sequence is still current when the response lands.
	banksSeq    uint64
	branchesSeq uint64
	usersSeq    uint64
	contextSeq  uint64
}

// NewTenantState returns an empty selection backed by api
func NewTenantState(api DirectoryAPI) *TenantState {
	return &TenantState{api: api}
}

// Banks returns the last successfully loaded bank list
func (t *TenantState) Banks() []models.Bank {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.banks
}

// Branches returns the last successfully loaded branch list
func (t *TenantState) Branches() []models.Branch {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.branches
}

// Users returns the last successfully loaded user list
func (t *TenantState) Users() []models.TenantUser {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.users
}

// SelectedBank returns the current bank selection, nil when none
func (t *TenantState) SelectedBank() *models.Bank {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bank
}

// SelectedBranch returns the current branch selection, nil when none
func (t *TenantState) SelectedBranch() *models.Branch {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.branch
}

// SelectedUser returns the current user selection, nil when none
func (t *TenantState) SelectedUser() *models.TenantUser {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.user
}

// Permissions returns the derived permission set of the selected user, nil
// when no user is selected
func (t *TenantState) Permissions() *models.Permissions {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.permissions
}

// Context returns the backend-resolved tenant context, nil until resolved
func (t *TenantState) Context() *TenantContext {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.context
}

// LoadBanks refreshes the bank list. On failure the previous list is kept
// so an already rendered picker does not go blank.
func (t *TenantState) LoadBanks(ctx context.Context) error {
	t.mu.Lock()
	t.banksSeq++
	seq := t.banksSeq
	t.mu.Unlock()

	banks, err := t.api.ListBanks(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()
	if seq != t.banksSeq {
		return nil // superseded by a newer load
	}
	if err != nil {
		return err
	}
	t.banks = banks
	return nil
}

// SelectBank sets the bank selection and clears everything below it, then
// loads the bank's branches
func (t *TenantState) SelectBank(ctx context.Context, bank models.Bank) error {
	t.mu.Lock()
	t.bank = &bank
	t.branch = nil
	t.user = nil
	t.branches = nil
	t.users = nil
	t.permissions = nil
	t.context = nil
	t.branchesSeq++
	t.usersSeq++
	t.contextSeq++
	seq := t.branchesSeq
	t.mu.Unlock()

	branches, err := t.api.ListBranches(ctx, bank.ID)

	t.mu.Lock()
	defer t.mu.Unlock()
	if seq != t.branchesSeq {
		return nil
	}
	if err != nil {
		return err
	}
	t.branches = branches
	return nil
}

// SelectBranch sets the branch selection and clears the user level, then
// loads the branch's users
func (t *TenantState) SelectBranch(ctx context.Context, branch models.Branch) error {
	t.mu.Lock()
	if t.bank == nil || branch.BankID != t.bank.ID {
		t.mu.Unlock()
		return fmt.Errorf("branch %d does not belong to the selected bank", branch.ID)
	}
	t.branch = &branch
	t.user = nil
	t.users = nil
	t.permissions = nil
	t.context = nil
	t.usersSeq++
	t.contextSeq++
	seq := t.usersSeq
	branchID := branch.ID
	bankID := t.bank.ID
	t.mu.Unlock()

	users, err := t.api.ListUsers(ctx, bankID, &branchID)

	t.mu.Lock()
	defer t.mu.Unlock()
	if seq != t.usersSeq {
		return nil
	}
	if err != nil {
		return err
	}
	t.users = users
	return nil
}

// SelectUser sets the user selection, derives their effective permissions
// locally, and resolves the full tenant context from the backend. The
// derived permissions are available immediately even if the resolve fails.
func (t *TenantState) SelectUser(ctx context.Context, user models.TenantUser) error {
	t.mu.Lock()
	if t.bank == nil || user.BankID != t.bank.ID {
		t.mu.Unlock()
		return fmt.Errorf("user %d does not belong to the selected bank", user.ID)
	}
	t.user = &user
	overrides := user.Permissions.Data()
	perms := models.DerivePermissions(user.Role, &overrides)
	t.permissions = &perms
	t.context = nil
	t.contextSeq++
	seq := t.contextSeq
	bankID := t.bank.ID
	var branchID uint
	if t.branch != nil {
		branchID = t.branch.ID
	}
	t.mu.Unlock()

	resolved, err := t.api.ResolveContext(ctx, bankID, branchID, user.ID)

	t.mu.Lock()
	defer t.mu.Unlock()
	if seq != t.contextSeq {
		return nil
	}
	if err != nil {
		return err
	}
	// A backend that resolves nothing leaves the locally derived
	// permissions in place.
	if resolved == nil {
		return nil
	}
	t.context = resolved
	if resolved.Permissions != nil {
		t.permissions = resolved.Permissions
	}
	return nil
}

// Reset clears the whole selection and all lists, and invalidates every
// in-flight load
func (t *TenantState) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bank = nil
	t.branch = nil
	t.user = nil
	t.banks = nil
	t.branches = nil
	t.users = nil
	t.permissions = nil
	t.context = nil
	t.banksSeq++
	t.branchesSeq++
	t.usersSeq++
	t.contextSeq++
}
