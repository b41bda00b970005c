// Package script evaluates zygomys programs that build and inspect spatialmath values.
package script

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"go.viam.com/gzmath/logging"
)

// DefaultTimeout is the limit for a single evaluation.
const DefaultTimeout = 5 * time.Second

// ErrTimeout is returned when an evaluation runs past its timeout.
var ErrTimeout = errors.New("evaluation timed out")

// Engine evaluates scripts. It is safe for concurrent use; each call to Eval runs in a
// fresh sandbox, so nothing defined by one script is seen by another.
type Engine struct {
	logger  logging.Logger
	timeout *atomic.Duration
	evals   *atomic.Uint64
}

// NewEngine returns an engine using DefaultTimeout.
func NewEngine(logger logging.Logger) *Engine {
	return &Engine{
		logger:  logger,
		timeout: atomic.NewDuration(DefaultTimeout),
		evals:   atomic.NewUint64(0),
	}
}

// SetTimeout changes the limit for evaluations started afterwards. A non-positive timeout
// restores DefaultTimeout.
func (e *Engine) SetTimeout(timeout time.Duration) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	e.timeout.Store(timeout)
}

type evalResult struct {
	val interface{}
	err error
}

// Eval runs source and returns the value of its last expression converted to Go: a float64,
// bool, string, []interface{}, nil, or one of the spatialmath and control types.
// The evaluation is abandoned when ctx is done or the timeout passes.
func (e *Engine) Eval(ctx context.Context, source string) (interface{}, error) {
	id := e.evals.Inc()
	timeout := e.timeout.Load()

	logger := e.logger.Sublogger(fmt.Sprintf("eval%d", id))
	logger.Debugw("evaluating", "bytes", len(source), "timeout", timeout)

	ch := make(chan evalResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: errors.Errorf("panic during evaluation: %v", r)}
			}
		}()
		val, err := evaluate(source)
		ch <- evalResult{val: val, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	start := time.Now()

	select {
	case res := <-ch:
		if res.err != nil {
			logger.Debugw("evaluation failed", "error", res.err, "elapsed", time.Since(start))
			return nil, res.err
		}
		logger.Debugw("evaluated", "elapsed", time.Since(start))
		return res.val, nil
	case <-timer.C:
		logger.Warnw("evaluation timed out", "timeout", timeout)
		return nil, errors.Wrapf(ErrTimeout, "after %s", timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// valueOfName is an unlisted builtin returning its argument.
const valueOfName = "gzmath_value_of"

// bareSymbol matches a script that is a single identifier.
var bareSymbol = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func evaluate(source string) (interface{}, error) {
	if strings.TrimSpace(source) == "" {
		return nil, nil
	}

	env := zygo.NewZlispSandbox()
	//nolint:errcheck
	defer env.Stop()
	registerBuiltins(env)
	env.AddFunction(valueOfName, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, errors.Errorf("expected 1 argument but got %d", len(args))
		}
		return args[0], nil
	})

	processed := strings.TrimSpace(preprocess(source))
	// zygomys evaluates an unbound symbol at the top level to nil, but fails when the symbol is
	// an argument, so a lone symbol is looked up through a call.
	if bareSymbol.MatchString(processed) {
		processed = fmt.Sprintf("(%s %s)", valueOfName, processed)
	}

	if err := env.LoadString(processed); err != nil {
		return nil, errors.Wrap(err, "cannot load script")
	}
	res, err := env.Run()
	if err != nil {
		return nil, err
	}
	return toGo(res)
}
