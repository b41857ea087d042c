package validate

import (
	"fmt"
	"strings"
)

// User validates a user identifier and returns it trimmed of surrounding
// whitespace.
//
// Validation rules:
//   - Empty identifiers rejected
//   - Null bytes rejected
//   - Max length enforced if maxLen > 0
func User(u string, maxLen int) (string, error) {
	u = strings.TrimSpace(u)
	if err := common("user", u, maxLen); err != nil {
		return "", err
	}
	return u, nil
}

// Filename validates the name a netlist is stored under.
//
// Validation rules:
//   - Empty names, "." and ".." rejected
//   - Null bytes rejected
//   - Path separators rejected (filenames are flat keys, and the HTTP delete
//     route carries them as a single path segment)
//   - Max length enforced if maxLen > 0
func Filename(name string, maxLen int) (string, error) {
	if err := common("filename", name, maxLen); err != nil {
		return "", err
	}
	if name == "." || name == ".." {
		return "", fmt.Errorf("%w: filename %q", ErrInvalidName, name)
	}
	if strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: path separator in filename %q", ErrInvalidName, name)
	}
	return name, nil
}

func common(kind, s string, maxLen int) error {
	if s == "" {
		return fmt.Errorf("%w: empty %s", ErrInvalidName, kind)
	}
	if strings.ContainsRune(s, 0) {
		return fmt.Errorf("%w: null byte in %s", ErrInvalidName, kind)
	}
	if maxLen > 0 && len(s) > maxLen {
		return fmt.Errorf("%w: %s exceeds %d bytes", ErrNameTooLong, kind, maxLen)
	}
	return nil
}
