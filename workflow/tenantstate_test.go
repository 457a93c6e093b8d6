package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"goldloan/models"
)

type fakeDirectory struct {
	banks    []models.Bank
	branches map[uint][]models.Branch
	users    map[uint][]models.TenantUser
	context  *TenantContext

	banksErr    error
	branchesErr error
	usersErr    error
	contextErr  error

	// When set, called before ListUsers returns; lets a test interleave a
	// newer selection while this load is still "in flight".
	beforeUsersReturn func()
}

func (d *fakeDirectory) ListBanks(context.Context) ([]models.Bank, error) {
	return d.banks, d.banksErr
}

func (d *fakeDirectory) ListBranches(_ context.Context, bankID uint) ([]models.Branch, error) {
	return d.branches[bankID], d.branchesErr
}

func (d *fakeDirectory) ListUsers(_ context.Context, _ uint, branchID *uint) ([]models.TenantUser, error) {
	if d.beforeUsersReturn != nil {
		d.beforeUsersReturn()
	}
	if d.usersErr != nil {
		return nil, d.usersErr
	}
	if branchID == nil {
		return nil, nil
	}
	return d.users[*branchID], nil
}

func (d *fakeDirectory) ResolveContext(context.Context, uint, uint, uint) (*TenantContext, error) {
	return d.context, d.contextErr
}

func bank(id uint, name string) models.Bank {
	b := models.Bank{BankName: name}
	b.ID = id
	return b
}

func branch(id, bankID uint, name string) models.Branch {
	b := models.Branch{BankID: bankID, BranchName: name}
	b.ID = id
	return b
}

func user(id, bankID uint, role models.Role) models.TenantUser {
	u := models.TenantUser{BankID: bankID, Role: role, FullName: "User"}
	u.ID = id
	return u
}

func testDirectory() *fakeDirectory {
	return &fakeDirectory{
		banks: []models.Bank{bank(1, "HDFC"), bank(2, "SBI")},
		branches: map[uint][]models.Branch{
			1: {branch(10, 1, "Mumbai Central"), branch(11, 1, "Pune")},
			2: {branch(20, 2, "Delhi")},
		},
		users: map[uint][]models.TenantUser{
			10: {user(100, 1, models.RoleGoldAppraiser)},
			20: {user(200, 2, models.RoleBranchManager)},
		},
	}
}

func TestSelectBankCascadesClears(t *testing.T) {
	dir := testDirectory()
	state := NewTenantState(dir)
	ctx := context.Background()

	require.NoError(t, state.LoadBanks(ctx))
	require.NoError(t, state.SelectBank(ctx, dir.banks[0]))
	require.NoError(t, state.SelectBranch(ctx, dir.branches[1][0]))
	require.NoError(t, state.SelectUser(ctx, dir.users[10][0]))
	require.NotNil(t, state.SelectedUser())
	require.NotNil(t, state.Permissions())

	// Re-selecting at the bank level drops everything below it
	require.NoError(t, state.SelectBank(ctx, dir.banks[1]))
	assert.Equal(t, "SBI", state.SelectedBank().BankName)
	assert.Nil(t, state.SelectedBranch())
	assert.Nil(t, state.SelectedUser())
	assert.Nil(t, state.Permissions())
	assert.Nil(t, state.Users())
	assert.Len(t, state.Branches(), 1)
}

func TestSelectBranchRequiresMatchingBank(t *testing.T) {
	dir := testDirectory()
	state := NewTenantState(dir)
	ctx := context.Background()

	require.NoError(t, state.SelectBank(ctx, dir.banks[0]))
	err := state.SelectBranch(ctx, dir.branches[2][0]) // belongs to bank 2
	assert.Error(t, err)
	assert.Nil(t, state.SelectedBranch())
}

func TestLoadFailureKeepsPreviousList(t *testing.T) {
	dir := testDirectory()
	state := NewTenantState(dir)
	ctx := context.Background()

	require.NoError(t, state.LoadBanks(ctx))
	require.Len(t, state.Banks(), 2)

	dir.banksErr = errors.New("backend unreachable")
	err := state.LoadBanks(ctx)
	assert.Error(t, err)
	assert.Len(t, state.Banks(), 2, "a failed refresh must not blank the picker")
}

func TestStaleUserListDiscarded(t *testing.T) {
	dir := testDirectory()
	state := NewTenantState(dir)
	ctx := context.Background()

	require.NoError(t, state.SelectBank(ctx, dir.banks[0]))

	// While the branch-10 user load is in flight, the selection moves up to
	// the bank level; the late list must not reappear.
	first := true
	dir.beforeUsersReturn = func() {
		if first {
			first = false
			dir.beforeUsersReturn = nil
			require.NoError(t, state.SelectBank(ctx, dir.banks[1]))
		}
	}
	require.NoError(t, state.SelectBranch(ctx, dir.branches[1][0]))

	assert.Equal(t, "SBI", state.SelectedBank().BankName)
	assert.Nil(t, state.Users())
}

func TestSelectUserDerivesPermissions(t *testing.T) {
	dir := testDirectory()
	overrides := models.PermissionOverrides{CanDeleteSessions: boolPtr(true)}
	trainee := user(101, 1, models.RoleTraineeAppraiser)
	trainee.Permissions = datatypes.NewJSONType(overrides)

	state := NewTenantState(dir)
	ctx := context.Background()
	require.NoError(t, state.SelectBank(ctx, dir.banks[0]))
	require.NoError(t, state.SelectUser(ctx, trainee))

	perms := state.Permissions()
	require.NotNil(t, perms)
	assert.True(t, perms.CanCreateSessions)
	assert.False(t, perms.CanEditSessions)
	assert.True(t, perms.CanDeleteSessions, "override must win over the role default")
}

func TestSelectUserWithoutResolvedContext(t *testing.T) {
	dir := testDirectory() // resolves no context at all
	state := NewTenantState(dir)
	ctx := context.Background()
	require.NoError(t, state.SelectBank(ctx, dir.banks[0]))

	require.NoError(t, state.SelectUser(ctx, dir.users[10][0]))
	assert.Nil(t, state.Context())
	require.NotNil(t, state.Permissions())
	assert.True(t, state.Permissions().CanCreateSessions)
}

func TestSelectUserResolveFailureKeepsLocalPermissions(t *testing.T) {
	dir := testDirectory()
	dir.contextErr = errors.New("resolve failed")

	state := NewTenantState(dir)
	ctx := context.Background()
	require.NoError(t, state.SelectBank(ctx, dir.banks[0]))

	err := state.SelectUser(ctx, dir.users[10][0])
	assert.Error(t, err)
	assert.NotNil(t, state.SelectedUser())
	assert.NotNil(t, state.Permissions(), "locally derived permissions survive a failed resolve")
	assert.Nil(t, state.Context())
}

func TestSelectUserAdoptsResolvedPermissions(t *testing.T) {
	dir := testDirectory()
	resolved := models.DefaultPermissions(models.RoleAuditor)
	dir.context = &TenantContext{
		BankName:    "HDFC",
		UserRole:    models.RoleAuditor,
		Permissions: &resolved,
	}

	state := NewTenantState(dir)
	ctx := context.Background()
	require.NoError(t, state.SelectBank(ctx, dir.banks[0]))
	require.NoError(t, state.SelectUser(ctx, dir.users[10][0]))

	require.NotNil(t, state.Context())
	assert.Equal(t, "HDFC", state.Context().BankName)
	assert.Equal(t, &resolved, state.Permissions())
}

func TestResetClearsEverything(t *testing.T) {
	dir := testDirectory()
	state := NewTenantState(dir)
	ctx := context.Background()

	require.NoError(t, state.LoadBanks(ctx))
	require.NoError(t, state.SelectBank(ctx, dir.banks[0]))
	require.NoError(t, state.SelectBranch(ctx, dir.branches[1][0]))
	require.NoError(t, state.SelectUser(ctx, dir.users[10][0]))

	state.Reset()
	assert.Nil(t, state.SelectedBank())
	assert.Nil(t, state.SelectedBranch())
	assert.Nil(t, state.SelectedUser())
	assert.Nil(t, state.Banks())
	assert.Nil(t, state.Branches())
	assert.Nil(t, state.Users())
	assert.Nil(t, state.Permissions())
	assert.Nil(t, state.Context())
}

func boolPtr(b bool) *bool { return &b }
