package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateRequestID returns a fresh request identifier of the form
// req_<unix-millis>_<random-suffix>. The millisecond timestamp keeps IDs
// roughly sortable; the UUID-derived suffix rules out collisions between
// submissions landing in the same millisecond.
func GenerateRequestID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("req_%d_%s", time.Now().UnixMilli(), suffix)
}
