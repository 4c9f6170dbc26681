// Package catalog exposes the course, user and enrollment operations. Each
// call goes to the remote API first and falls back to the local store only
// when the API could not be reached at all.
package catalog

import (
	"context"
	"errors"
	"net/http"
	"time"

	"course-catalog/internal/httpx"
	"course-catalog/internal/logger"
)

// Source names the backend that served a result.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// Result is the uniform shape every operation returns, whichever backend
// served it.
type Result[T any] struct {
	Data   T      `json:"data"`
	Status int    `json:"status"`
	Source Source `json:"source"`
}

// Dispatcher decides, per call, which backend answers.
type Dispatcher struct {
	timeout time.Duration
	offline bool
	log     *logger.Logger
}

// NewDispatcher bounds each remote attempt by timeout (0 disables the
// bound). With offline set the remote is never tried.
func NewDispatcher(timeout time.Duration, offline bool, log *logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}
	return &Dispatcher{timeout: timeout, offline: offline, log: log.With("component", "dispatcher")}
}

func (d *Dispatcher) Offline() bool { return d.offline }

// RemoteContext derives the context for one remote attempt.
func (d *Dispatcher) RemoteContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d.timeout)
}

// Attempt runs remote and, if it fails with a network-class error, local.
// Application-class errors (a response was received) are returned as-is.
// A cancelled caller context is never treated as "remote unavailable".
func Attempt[T any](
	ctx context.Context,
	d *Dispatcher,
	op string,
	remote func(context.Context) (T, error),
	local func(context.Context) (T, error),
) (Result[T], error) {
	if !d.offline && remote != nil {
		rctx, cancel := d.RemoteContext(ctx)
		v, err := remote(rctx)
		cancel()

		if err == nil {
			return Result[T]{Data: v, Status: http.StatusOK, Source: SourceRemote}, nil
		}
		var ne *httpx.NetworkError
		if !errors.As(err, &ne) {
			return Result[T]{}, err
		}
		if cerr := ctx.Err(); cerr != nil {
			return Result[T]{}, cerr
		}
		d.log.Warn("remote unreachable, using local store",
			"op", op,
			"timeout", ne.Timeout(),
			"error", err,
		)
	}

	v, err := local(ctx)
	if err != nil {
		return Result[T]{}, err
	}
	return Result[T]{Data: v, Status: http.StatusOK, Source: SourceLocal}, nil
}
