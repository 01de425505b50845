package index

import (
	"fmt"
	"regexp"
	"strings"
)

// Postgres identifiers are truncated at 63 bytes; names must stay under
// that so the table and its index suffix fit.
const maxCollectionLen = 55

var identPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ResolveCollection maps tenant identity to the collection holding that
// tenant's vectors. Firm scope wins when present; otherwise the user gets a
// private collection.
func ResolveCollection(firmID, userID string) (string, error) {
	switch {
	case strings.TrimSpace(firmID) != "":
		return collectionName("kb_firm_" + firmID)
	case strings.TrimSpace(userID) != "":
		return collectionName("kb_user_" + userID)
	default:
		return "", ErrNoTenant
	}
}

// collectionName lowercases the raw name and maps everything outside
// [a-z0-9_] to underscores, yielding a safe SQL identifier.
func collectionName(raw string) (string, error) {
	name := strings.ToLower(raw)
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}
		return '_'
	}, name)

	if len(name) > maxCollectionLen {
		name = name[:maxCollectionLen]
	}
	if !identPattern.MatchString(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidCollection, raw)
	}
	return name, nil
}

// validateCollection guards DDL and DML that interpolate the collection
// name, since identifiers cannot be bound as parameters.
func validateCollection(name string) error {
	if len(name) > maxCollectionLen || !identPattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidCollection, name)
	}
	return nil
}
