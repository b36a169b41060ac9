package bitget

import (
	"context"

	"github.com/sourcegraph/conc/pool"

	"bitget/pkg/core"
)

// Call names one operation and its parameters for DoAll.
type Call struct {
	Op     core.Operation
	Params core.Params
}

// Result is the outcome of one call made through Go or DoAll.
type Result struct {
	Body []byte
	Err  error
}

// Go runs Do in its own goroutine. The returned channel yields exactly one
// Result and is then closed.
func (c *Client) Go(ctx context.Context, op core.Operation, params core.Params) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		body, err := c.Do(ctx, op, params)
		out <- Result{Body: body, Err: err}
	}()
	return out
}

// DoAll runs calls with at most Config.MaxConcurrency in flight and returns
// their results in call order. Each call is signed independently.
func (c *Client) DoAll(ctx context.Context, calls ...Call) []Result {
	results := make([]Result, len(calls))
	if len(calls) == 0 {
		return results
	}

	p := pool.New().WithMaxGoroutines(max(c.config.MaxConcurrency, 1))
	for i, call := range calls {
		p.Go(func() {
			body, err := c.Do(ctx, call.Op, call.Params)
			results[i] = Result{Body: body, Err: err}
		})
	}
	p.Wait()

	return results
}
