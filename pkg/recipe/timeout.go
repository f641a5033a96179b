package recipe

import (
	"fmt"
	"sync"
	"time"

	"github.com/chazu/amphora/pkg/vessel"
)

// EvalTimeout is the hard limit for a single evaluation.
const EvalTimeout = 5 * time.Second

// evalResult passes evaluation results through the timeout channel.
type evalResult struct {
	params vessel.Parameters
	errors []EvalError
	err    error
}

// waitWithTimeout waits for a result from ch, but returns a timeout error if
// the evaluation exceeds EvalTimeout. It uses a generation counter to discard
// stale results from previous evaluations.
//
// On timeout, the goroutine may still be running; the generation check
// ensures its result is discarded when it eventually completes.
func waitWithTimeout(
	ch <-chan evalResult,
	gen uint64,
	mu *sync.Mutex,
	currentGen *uint64,
) (vessel.Parameters, []EvalError, error) {
	timer := time.NewTimer(EvalTimeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		mu.Lock()
		current := *currentGen
		mu.Unlock()

		if gen != current {
			// A newer evaluation was started; discard this result.
			return vessel.Parameters{}, nil, fmt.Errorf("evaluation superseded by newer request")
		}

		return res.params, res.errors, res.err

	case <-timer.C:
		return vessel.Parameters{}, nil, fmt.Errorf("evaluation timed out after %s", EvalTimeout)
	}
}
