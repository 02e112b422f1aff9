// Package identity defines the tagged competitor identity encoding used by
// the finished-games archive.
//
// A competitor identity is a string of the form "<kind>/<name>", where kind
// distinguishes registered accounts from anonymous guests:
//
//	user/alice   - alice was a registered account when the game was recorded
//	guest/alice  - an anonymous player who chose the nickname "alice"
//
// The two never conflate: "user/alice" and "guest/alice" are distinct
// competitors. The bare name never contains the separator, so the encoding
// is unambiguous and splitting at the first '/' is always safe.
package identity

import (
	"fmt"
	"strings"
)

// Separator divides the kind tag from the bare name.
const Separator = "/"

// Kind classifies a competitor identity.
type Kind string

const (
	// KindUser marks a competitor that was a registered account.
	KindUser Kind = "user"

	// KindGuest marks an anonymous competitor.
	KindGuest Kind = "guest"
)

// Prefix returns the wire prefix for the kind, e.g. "user/".
func (k Kind) Prefix() string {
	return string(k) + Separator
}

// TagError reports a bare name that cannot be tagged. Tagging errors are
// fatal to the surrounding batch: they indicate either a pre-corrupted
// record or a rated game involving an untracked competitor, and partial
// tagging must never be committed.
type TagError struct {
	Name   string
	Reason string
}

func (e *TagError) Error() string {
	return fmt.Sprintf("cannot tag competitor name %q: %s", e.Name, e.Reason)
}

// Tag converts a bare legacy name into a tagged identity.
//
// A name present in the registered set becomes "user/<name>", any other name
// becomes "guest/<name>". Two preconditions are enforced:
//
//   - The name must not already contain the separator. A separator means the
//     value is not a bare legacy name (most likely it was tagged already).
//   - A rated game cannot involve a guest, so rated requires the name to be
//     registered.
//
// Tag is pure: it reads only its arguments and has no side effects.
func Tag(name string, registered map[string]struct{}, rated bool) (string, error) {
	if strings.Contains(name, Separator) {
		return "", &TagError{Name: name, Reason: "name contains the tag separator"}
	}
	_, isRegistered := registered[name]
	if rated && !isRegistered {
		return "", &TagError{Name: name, Reason: "rated game references an unregistered competitor"}
	}
	if isRegistered {
		return KindUser.Prefix() + name, nil
	}
	return KindGuest.Prefix() + name, nil
}

// Parse splits a tagged identity into its kind and bare name.
// An unrecognized prefix or a missing separator is an error: every value in
// a migrated archive must carry exactly one of the known tags.
func Parse(tagged string) (Kind, string, error) {
	switch {
	case strings.HasPrefix(tagged, KindUser.Prefix()):
		return KindUser, strings.TrimPrefix(tagged, KindUser.Prefix()), nil
	case strings.HasPrefix(tagged, KindGuest.Prefix()):
		return KindGuest, strings.TrimPrefix(tagged, KindGuest.Prefix()), nil
	default:
		return "", "", fmt.Errorf("invalid competitor identity %q: unknown kind tag", tagged)
	}
}

// Join builds a tagged identity from a kind and a bare name.
// The name must not contain the separator.
func Join(kind Kind, name string) (string, error) {
	if strings.Contains(name, Separator) {
		return "", &TagError{Name: name, Reason: "name contains the tag separator"}
	}
	return kind.Prefix() + name, nil
}
