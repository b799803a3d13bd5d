package domain

import "errors"

// Closed set of business errors. Callers branch with errors.Is rather
// than matching message text.
var (
	// ErrNotFound covers missing and soft-deleted resources alike, and
	// invitation tokens that match nothing: callers must not be able to
	// tell which resource exists.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when an authenticated caller is not the
	// workspace owner on an owner-only operation.
	ErrForbidden = errors.New("forbidden")

	// ErrOwnerImmutable is returned on any attempt to remove the owner
	// membership, regardless of caller.
	ErrOwnerImmutable = errors.New("workspace owner cannot be removed")

	// ErrInvitationExpired is returned when a token hash-matches a
	// pending invitation whose expiry has passed. The HTTP layer maps
	// it to the same status as ErrNotFound.
	ErrInvitationExpired = errors.New("invitation expired")

	// ErrDuplicateMember is returned by MembershipStore.Create when the
	// (workspace, user) uniqueness constraint rejects an insert. The
	// membership service treats it as the idempotent already-exists
	// case, which also resolves the concurrent double-accept race.
	ErrDuplicateMember = errors.New("membership already exists")

	// ErrSlugTaken is returned when a workspace slug is already in use
	// by the same owner.
	ErrSlugTaken = errors.New("slug already in use")

	// ErrEmailTaken is returned on registration with a known email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
