package interfaces

import "time"

// Clock supplies the current instant. Conversions consult it once per run
// (export timestamps, missing channel pubDate) so tests can pin the output.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function into a Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// IdentitySource produces the auxiliary UUID attached to imported posts.
// The value is never used as a primary or join key, so implementations may
// fall back to non-cryptographic randomness.
type IdentitySource interface {
	UUID() string
}

// AuthorResolver maps a source author login onto a user ID within the
// dataset being built. The default implementation collapses every login
// onto the synthetic administrator; stricter resolvers can preserve
// distinct identities without touching the rest of the pipeline.
type AuthorResolver interface {
	// Resolve returns the user ID for login, or "" to fall back to the
	// dataset's default user.
	Resolve(login string) string
}

// AuthorResolverFunc adapts a plain function into an AuthorResolver.
type AuthorResolverFunc func(login string) string

// Resolve implements AuthorResolver.
func (f AuthorResolverFunc) Resolve(login string) string { return f(login) }
