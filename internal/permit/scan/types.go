package scan

import (
	"github.com/pkg/errors"

	"github.com/odariane19-ui/permiscard/internal/permit/verifier"
)

// State of the scan lifecycle. StateScanning belongs to the capturing
// device; the orchestrator takes over with the decoded text and moves
// through StateDecoding and StateVerifying to StateResult.
type State string

const (
	StateIdle      State = "idle"
	StateScanning  State = "scanning"
	StateDecoding  State = "decoding"
	StateVerifying State = "verifying"
	StateResult    State = "result"
)

// ErrScanInFlight is returned when a scan arrives while a previous one is
// still being verified. Rapid double scans of the same card must not
// produce duplicate audit entries for one physical read.
var ErrScanInFlight = errors.New("a scan is already being verified")

// Result is the terminal answer for one scan, in the same shape whether
// the online or the offline path produced it.
type Result struct {
	Outcome *verifier.Outcome

	// Mode is the path that produced the outcome, not the one that was
	// attempted first.
	Mode verifier.Mode
}
