// Package recipe provides the Lisp scripting engine for amphora. A recipe is
// a short zygomys program that describes a vessel declaratively; evaluating
// one yields a complete parameter record ready for the studio. Recipes start
// from the studio defaults and override only what they name.
package recipe

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/amphora/pkg/vessel"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine wraps the zygomys interpreter. It is safe for concurrent use; each
// call to Evaluate creates a fresh sandboxed environment for determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64
}

// NewEngine creates a new Engine instance.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate runs recipe source and produces the parameter record it
// describes, clamped and ready to hand to the studio.
//
// Return semantics:
//   - On success: record + nil errors + nil error
//   - On parse/eval failure: zero record + eval errors + nil error
//   - On fatal failure (timeout, panic): zero record + nil + error
func (e *Engine) Evaluate(source string) (vessel.Parameters, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		p, evalErrs, err := e.eval(source)
		ch <- evalResult{params: p, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

// eval performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) eval(source string) (vessel.Parameters, []EvalError, error) {
	// An empty recipe is a valid program describing the default vessel.
	params := vessel.DefaultParameters()
	if strings.TrimSpace(source) == "" {
		params.Clamp()
		return params, nil, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem or
	// syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	registerBuiltins(env, &params)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return vessel.Parameters{}, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return vessel.Parameters{}, parseZygomysError(err), nil
	}

	params.Clamp()
	return params, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError
// values, extracting line numbers from the message where possible.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}
	if m := linePatternShort.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}

	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
