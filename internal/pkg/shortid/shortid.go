// Package shortid issues short, human-transcribable identifiers for roster snapshots.
package shortid

import (
	"context"
	"crypto/rand"
	"strconv"
	"time"

	"github.com/dchest/uniuri"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	// Alphabet excludes the glyphs that are easily confused when read aloud or
	// copied by hand: I, O, l, 0 and 1.
	Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

	DefaultLength = 6

	// MaxAttempts is the number of random candidates tried before falling back
	// to a time derived identifier.
	MaxAttempts = 10

	base36 = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// ExistsFunc reports whether an entry is already stored under id.
type ExistsFunc func(ctx context.Context, id string) (bool, error)

type Issuer struct {
	exists ExistsFunc

	// now and read are replaceable for tests.
	now  func() time.Time
	read func([]byte) (int, error)
}

func NewIssuer(exists ExistsFunc) *Issuer {
	return &Issuer{
		exists: exists,
		now:    time.Now,
		read:   rand.Read,
	}
}

// Issue returns an identifier of the given length that did not exist at the time it was
// checked. After MaxAttempts collisions, it returns a time derived identifier whose
// uniqueness is likely but not verified.
func (i *Issuer) Issue(ctx context.Context, length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		candidate, err := i.candidate(length)
		if err != nil {
			return "", err
		}

		exists, err := i.exists(ctx, candidate)
		if err != nil {
			return "", errors.Wrap(err, "shortid: failed to check identifier existence")
		}
		if !exists {
			if attempt > 1 {
				log.Debug().
					Str("evt.name", "shortid.issue.retried").
					Int("attempts", attempt).
					Msg("issued identifier after collision")
			}
			observeAttempts(attempt)
			return candidate, nil
		}
	}

	id := i.fallback(length)
	log.Warn().
		Str("evt.name", "shortid.issue.fallback").
		Int("attempts", MaxAttempts).
		Str("id", id).
		Msg("all random candidates collided; falling back to time derived identifier")
	observeFallback()
	return id, nil
}

// candidate maps each random byte onto the alphabet by modulo. The resulting bias
// towards the first characters of the alphabet is accepted.
func (i *Issuer) candidate(length int) (string, error) {
	b := make([]byte, length)
	if _, err := i.read(b); err != nil {
		return "", errors.Wrap(err, "shortid: failed to read random bytes")
	}
	for idx := range b {
		b[idx] = Alphabet[int(b[idx])%len(Alphabet)]
	}
	return string(b), nil
}

// fallback joins the tail of the base-36 millisecond timestamp with a random base-36
// suffix. At the default length this is 3 + 3 characters.
func (i *Issuer) fallback(length int) string {
	ts := strconv.FormatInt(i.now().UnixMilli(), 36)
	tsLen := length / 2
	if tsLen > len(ts) {
		tsLen = len(ts)
	}
	return ts[len(ts)-tsLen:] + uniuri.NewLenChars(length-tsLen, []byte(base36))
}

// Random returns a random string over Alphabet without checking for uniqueness.
func Random(length int) string {
	if length <= 0 {
		length = DefaultLength
	}
	return uniuri.NewLenChars(length, []byte(Alphabet))
}
