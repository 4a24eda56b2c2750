package gates

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// invariants reports broken internal consistency checks.
// Strict mode panics so defects surface in tests and debug runs;
// otherwise the violation is logged and the caller clamps.
type invariants struct {
	strict bool
	logger *log.Logger
}

// fail reports a violated invariant. It returns normally only in lenient mode.
func (inv *invariants) fail(msg string, keyvals ...any) {
	if inv.strict {
		panic(fmt.Sprintf("gates: invariant violated: %s %v", msg, keyvals))
	}
	inv.logger.Warn("invariant violated: "+msg, keyvals...)
}
