package sales

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewReceiptNumber builds a human-readable receipt reference of the
// form R-YYYYMMDD-xxxxxx. The suffix is random; the sale id remains the
// canonical identifier.
func NewReceiptNumber(at time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return fmt.Sprintf("R-%s-%s", at.UTC().Format("20060102"), suffix)
}
