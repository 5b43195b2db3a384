// Package identifier assigns synthetic IDs to entities that lack a natural
// key, plus best-effort auxiliary UUIDs for posts.
package identifier

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-blogconv/pkg/interfaces"
)

// Sequence hands out namespaced, monotonically increasing synthetic IDs.
// State is local to one conversion run; each run owns its own Sequence.
type Sequence struct {
	counters map[string]int
}

// NewSequence returns an empty per-run sequence.
func NewSequence() *Sequence {
	return &Sequence{counters: map[string]int{}}
}

// Next returns the next ID for kind, e.g. Next("tag") -> "ghost-tag-1".
func (s *Sequence) Next(kind string) string {
	s.counters[kind]++
	return fmt.Sprintf("ghost-%s-%d", kind, s.counters[kind])
}

// RandomSource produces random UUIDs, degrading to a pseudo-random template
// when the crypto source is unavailable. It satisfies interfaces.IdentitySource.
type RandomSource struct{}

var _ interfaces.IdentitySource = RandomSource{}

// UUID returns a version-4 UUID string.
func (RandomSource) UUID() string {
	if id, err := uuid.NewRandom(); err == nil {
		return id.String()
	}
	return fallbackUUID()
}

// fallbackUUID fills the v4 template with math/rand hex digits. The result
// is only ever an auxiliary field, never a join key.
func fallbackUUID() string {
	const template = "xxxxxxxx-xxxx-4xxx-yxxx-xxxxxxxxxxxx"
	var b strings.Builder
	b.Grow(len(template))
	for _, c := range template {
		switch c {
		case 'x':
			b.WriteString(fmt.Sprintf("%x", rand.Intn(16)))
		case 'y':
			b.WriteString(fmt.Sprintf("%x", rand.Intn(4)|8))
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// Static returns an identity source that always yields value. Tests use it
// to pin otherwise random output.
func Static(value string) interfaces.IdentitySource {
	return staticSource(value)
}

type staticSource string

func (s staticSource) UUID() string { return string(s) }
