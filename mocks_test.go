package auth_test

import (
	"context"
	"database/sql"

	"github.com/stretchr/testify/mock"
	"github.com/tasklist/go-auth"
	"github.com/uptrace/bun"
)

// mockRepoManager wires the repository mocks together and runs transaction
// bodies inline; the zero bun.Tx is never touched because the repository
// mocks ignore it.
type mockRepoManager struct {
	users       *MockUsers
	roles       *MockRoles
	activations *MockActivations
	txErr       error
}

func newMockRepoManager() *mockRepoManager {
	return &mockRepoManager{
		users:       new(MockUsers),
		roles:       new(MockRoles),
		activations: new(MockActivations),
	}
}

func (m *mockRepoManager) Validate() error { return nil }

func (m *mockRepoManager) MustValidate() {}

func (m *mockRepoManager) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	if m.txErr != nil {
		return m.txErr
	}
	return f(ctx, bun.Tx{})
}

func (m *mockRepoManager) Users() auth.Users             { return m.users }
func (m *mockRepoManager) Roles() auth.Roles             { return m.roles }
func (m *mockRepoManager) Activations() auth.Activations { return m.activations }

// MockUsers implements auth.Users
type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) GetByID(ctx context.Context, id int64) (*auth.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

func (m *MockUsers) GetByIDTx(ctx context.Context, tx bun.IDB, id int64) (*auth.User, error) {
	args := m.Called(ctx, tx, id)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

func (m *MockUsers) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

func (m *MockUsers) GetByUsernameTx(ctx context.Context, tx bun.IDB, username string) (*auth.User, error) {
	args := m.Called(ctx, tx, username)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

func (m *MockUsers) CountByUsername(ctx context.Context, username string) (int, error) {
	args := m.Called(ctx, username)
	return args.Int(0), args.Error(1)
}

func (m *MockUsers) CountByUsernameTx(ctx context.Context, tx bun.IDB, username string) (int, error) {
	args := m.Called(ctx, tx, username)
	return args.Int(0), args.Error(1)
}

func (m *MockUsers) CountByEmail(ctx context.Context, email string) (int, error) {
	args := m.Called(ctx, email)
	return args.Int(0), args.Error(1)
}

func (m *MockUsers) CountByEmailTx(ctx context.Context, tx bun.IDB, email string) (int, error) {
	args := m.Called(ctx, tx, email)
	return args.Int(0), args.Error(1)
}

func (m *MockUsers) Create(ctx context.Context, record *auth.User) (*auth.User, error) {
	args := m.Called(ctx, record)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

func (m *MockUsers) CreateTx(ctx context.Context, tx bun.IDB, record *auth.User) (*auth.User, error) {
	args := m.Called(ctx, tx, record)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

func (m *MockUsers) UpdatePasswordByUsername(ctx context.Context, passwordHash, username string) (int64, error) {
	args := m.Called(ctx, passwordHash, username)
	return int64(args.Int(0)), args.Error(1)
}

func (m *MockUsers) UpdatePasswordByUsernameTx(ctx context.Context, tx bun.IDB, passwordHash, username string) (int64, error) {
	args := m.Called(ctx, tx, passwordHash, username)
	return int64(args.Int(0)), args.Error(1)
}

// MockRoles implements auth.Roles
type MockRoles struct {
	mock.Mock
}

func (m *MockRoles) GetByName(ctx context.Context, name string) (*auth.Role, error) {
	args := m.Called(ctx, name)
	role, _ := args.Get(0).(*auth.Role)
	return role, args.Error(1)
}

func (m *MockRoles) GetByNameTx(ctx context.Context, tx bun.IDB, name string) (*auth.Role, error) {
	args := m.Called(ctx, tx, name)
	role, _ := args.Get(0).(*auth.Role)
	return role, args.Error(1)
}

func (m *MockRoles) Create(ctx context.Context, record *auth.Role) (*auth.Role, error) {
	args := m.Called(ctx, record)
	role, _ := args.Get(0).(*auth.Role)
	return role, args.Error(1)
}

func (m *MockRoles) CreateTx(ctx context.Context, tx bun.IDB, record *auth.Role) (*auth.Role, error) {
	args := m.Called(ctx, tx, record)
	role, _ := args.Get(0).(*auth.Role)
	return role, args.Error(1)
}

// MockActivations implements auth.Activations
type MockActivations struct {
	mock.Mock
}

func (m *MockActivations) GetByUserID(ctx context.Context, userID int64) (*auth.Activation, error) {
	args := m.Called(ctx, userID)
	record, _ := args.Get(0).(*auth.Activation)
	return record, args.Error(1)
}

func (m *MockActivations) GetByUserIDTx(ctx context.Context, tx bun.IDB, userID int64) (*auth.Activation, error) {
	args := m.Called(ctx, tx, userID)
	record, _ := args.Get(0).(*auth.Activation)
	return record, args.Error(1)
}

func (m *MockActivations) GetByToken(ctx context.Context, token string) (*auth.Activation, error) {
	args := m.Called(ctx, token)
	record, _ := args.Get(0).(*auth.Activation)
	return record, args.Error(1)
}

func (m *MockActivations) GetByTokenTx(ctx context.Context, tx bun.IDB, token string) (*auth.Activation, error) {
	args := m.Called(ctx, tx, token)
	record, _ := args.Get(0).(*auth.Activation)
	return record, args.Error(1)
}

func (m *MockActivations) Create(ctx context.Context, record *auth.Activation) (*auth.Activation, error) {
	args := m.Called(ctx, record)
	out, _ := args.Get(0).(*auth.Activation)
	return out, args.Error(1)
}

func (m *MockActivations) CreateTx(ctx context.Context, tx bun.IDB, record *auth.Activation) (*auth.Activation, error) {
	args := m.Called(ctx, tx, record)
	out, _ := args.Get(0).(*auth.Activation)
	return out, args.Error(1)
}

func (m *MockActivations) SetActivationState(ctx context.Context, activated bool, token string) (int64, error) {
	args := m.Called(ctx, activated, token)
	return int64(args.Int(0)), args.Error(1)
}

func (m *MockActivations) SetActivationStateTx(ctx context.Context, tx bun.IDB, activated bool, token string) (int64, error) {
	args := m.Called(ctx, tx, activated, token)
	return int64(args.Int(0)), args.Error(1)
}

// MockIdentityProvider implements auth.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) VerifyIdentity(ctx context.Context, identifier, password string) (auth.Identity, error) {
	args := m.Called(ctx, identifier, password)
	identity, _ := args.Get(0).(auth.Identity)
	return identity, args.Error(1)
}

func (m *MockIdentityProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (auth.Identity, error) {
	args := m.Called(ctx, identifier)
	identity, _ := args.Get(0).(auth.Identity)
	return identity, args.Error(1)
}

// TestIdentity is a plain auth.Identity implementation
type TestIdentity struct {
	id       string
	username string
	email    string
	roles    []string
}

func (t TestIdentity) ID() string       { return t.id }
func (t TestIdentity) Username() string { return t.username }
func (t TestIdentity) Email() string    { return t.email }
func (t TestIdentity) Roles() []string  { return t.roles }
