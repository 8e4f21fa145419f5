package nodeid

import (
	"fmt"
	"regexp"
	"strings"
)

// nameRegex matches a blueprint label: letters, digits, '_' and '-'.
var nameRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_-]*$`)

// ValidName reports whether name can be used as a blueprint label.
func ValidName(name string) bool {
	return nameRegex.MatchString(name)
}

// Parse creates an Address from its canonical string representation. A bare
// name without a kind prefix is taken to be an artifact.
func Parse(rawID string) (Address, error) {
	if rawID == "" {
		return Address{}, fmt.Errorf("identifier cannot be empty")
	}

	kind, name, found := strings.Cut(rawID, ".")
	if !found {
		kind, name = string(KindArtifact), rawID
	}

	switch Kind(kind) {
	case KindArtifact, KindFolder:
	default:
		return Address{}, fmt.Errorf("unknown identifier kind %q in %q", kind, rawID)
	}

	if !ValidName(name) {
		return Address{}, fmt.Errorf("invalid identifier name: %q", name)
	}
	return Address{Kind: Kind(kind), Name: name}, nil
}
