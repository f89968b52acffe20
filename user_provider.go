package auth

import (
	"context"
	"strconv"

	goerrors "github.com/goliatone/go-errors"
)

// UserProvider verifies credentials against the account registry. Unknown
// accounts and wrong passwords are indistinguishable to callers; both paths
// return ErrAuthenticationFailed.
type UserProvider struct {
	store  Users
	hasher PasswordAuthenticator
	logger Logger
}

// NewUserProvider will create a new UserProvider
func NewUserProvider(store Users) *UserProvider {
	return &UserProvider{
		store:  store,
		hasher: NewPasswordAuthenticator(),
		logger: defLogger{},
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	if l != nil {
		u.logger = l
	}
	return u
}

// WithPasswordAuthenticator overrides the hashing primitive.
func (u *UserProvider) WithPasswordAuthenticator(hasher PasswordAuthenticator) *UserProvider {
	if hasher != nil {
		u.hasher = hasher
	}
	return u
}

// VerifyIdentity will find the user, compare the password, and return the
// identity.
func (u *UserProvider) VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error) {
	user, err := u.lookup(ctx, identifier)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return nil, ErrAuthenticationFailed
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve user during verification")
	}

	if err := u.hasher.ComparePasswordAndHash(password, user.Password); err != nil {
		return nil, ErrAuthenticationFailed
	}

	return identityFromUser(user), nil
}

// FindIdentityByIdentifier resolves an identity without checking a
// credential. Used when the caller already holds a validated token.
func (u *UserProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error) {
	user, err := u.lookup(ctx, identifier)
	if err != nil {
		return nil, err
	}

	return identityFromUser(user), nil
}

// lookup accepts a username or a numeric account id. Usernames win: an
// account named "7" resolves by name even when another account holds id 7.
func (u *UserProvider) lookup(ctx context.Context, identifier string) (*User, error) {
	user, err := u.store.GetByUsername(ctx, identifier)
	if err == nil {
		return user, nil
	}

	if id, perr := strconv.ParseInt(identifier, 10, 64); perr == nil {
		return u.store.GetByID(ctx, id)
	}

	return nil, err
}

func identityFromUser(user *User) Identity {
	return authIdentity{
		id:       strconv.FormatInt(user.ID, 10),
		username: user.Username,
		email:    user.Email,
		roles:    user.RoleNames(),
	}
}

type authIdentity struct {
	id       string
	username string
	email    string
	roles    []string
}

func (a authIdentity) ID() string {
	return a.id
}

func (a authIdentity) Username() string {
	return a.username
}

func (a authIdentity) Email() string {
	return a.email
}

func (a authIdentity) Roles() []string {
	return a.roles
}

var _ Identity = authIdentity{}
var _ IdentityProvider = (*UserProvider)(nil)
