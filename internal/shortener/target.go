package shortener

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateTarget checks that target is an absolute URL with scheme and host.
func ValidateTarget(target string) error {
	if strings.TrimSpace(target) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidTarget)
	}
	u, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTarget, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %q is not absolute", ErrInvalidTarget, target)
	}
	return nil
}
