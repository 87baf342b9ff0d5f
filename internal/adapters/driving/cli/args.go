package cli

import (
	"fmt"
	"strconv"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
)

// parseID parses a positive numeric ID argument.
func parseID(kind, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s id %q", domain.ErrInvalidInput, kind, raw)
	}
	return id, nil
}
