package observer

import (
	"github.com/0xPolygon/evm-observer/chain"
	"github.com/0xPolygon/evm-observer/runtime"
)

// ExecutionContext is the mutable execution state a handle is attached to.
// The host owns it for the lifetime of one execution; the handle derives a
// fresh ExecutionView from it on every hook call.
type ExecutionContext struct {
	Tx      *runtime.TxContext
	Forks   *chain.ForksInTime
	Journal JournalView
	State   StateReader

	// Rollup is nil on configurations without a parent chain
	Rollup *RollupInfo

	err error
}

// Err returns the fatal error an observer reported, if any. The host checks
// it after every hook invocation and treats a non-nil value as terminal for
// the current execution.
func (c *ExecutionContext) Err() error {
	return c.err
}

func (c *ExecutionContext) setError(err error) {
	if c.err == nil {
		c.err = err
	}
}

// view bundles the fields a hook may touch. The returned value is scoped to
// a single hook call.
func (c *ExecutionContext) view() ExecutionView {
	return ExecutionView{
		Tx:      c.Tx,
		Forks:   c.Forks,
		Journal: c.Journal,
		State:   c.State,
		Rollup:  c.Rollup,
		ctx:     c,
	}
}

// ExecutionView is the narrowed bundle of execution state handed to each
// hook. It is valid only for the duration of that hook call; observers must
// not retain it or anything reachable from it.
type ExecutionView struct {
	Tx      *runtime.TxContext
	Forks   *chain.ForksInTime
	Journal JournalView
	State   StateReader
	Rollup  *RollupInfo

	ctx *ExecutionContext
}

// SetError reports an unrecoverable condition to the host. The slot is
// set-once: the first reported error sticks and later writes are ignored.
func (v *ExecutionView) SetError(err error) {
	v.ctx.setError(err)
}

// Err returns the error currently held by the execution context
func (v *ExecutionView) Err() error {
	return v.ctx.Err()
}
