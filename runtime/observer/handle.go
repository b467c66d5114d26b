package observer

import (
	"fmt"
	"math/big"

	"github.com/hashicorp/go-hclog"

	"github.com/0xPolygon/evm-observer/runtime"
	"github.com/0xPolygon/evm-observer/types"
)

// Handle owns a single Observer, erasing its concrete type behind one fixed
// hook contract the host loop depends on. Each host-facing hook narrows the
// execution context into a call-scoped ExecutionView and forwards to the
// inner observer. The wrapped observer is recovered by concrete type through
// Get and Take.
//
// The zero value is a valid handle wrapping the built-in no-op observer.
type Handle struct {
	observer Observer
	logger   hclog.Logger
}

// HandleOption configures a Handle on construction
type HandleOption func(*Handle)

// WithLogger attaches a logger used for handle-level diagnostics. Hook
// forwarding itself is never logged, it sits on the per-instruction hot path.
func WithLogger(logger hclog.Logger) HandleOption {
	return func(h *Handle) {
		h.logger = logger.Named("observer")
	}
}

// NewHandle wraps the given observer. A nil observer yields a no-op handle,
// so a host can always hold a valid handle even absent a real plug-in.
func NewHandle(o Observer, opts ...HandleOption) *Handle {
	h := &Handle{
		observer: o,
		logger:   hclog.NewNullLogger(),
	}

	for _, opt := range opts {
		opt(h)
	}

	if h.observer == nil {
		h.observer = &NoopObserver{}
	}

	return h
}

func (h *Handle) inner() Observer {
	if h.observer == nil {
		h.observer = &NoopObserver{}
	}

	return h.observer
}

// Clone returns an independent handle wrapping a deep copy of the inner
// observer. It is required whenever the surrounding execution context is
// forked, so the forks evolve instrumentation state independently.
func (h *Handle) Clone() *Handle {
	return &Handle{
		observer: h.inner().Clone(),
		logger:   h.logger,
	}
}

// Get returns the inner observer as the concrete type T. It reports false,
// without panicking, when the stored observer is not a T.
func Get[T Observer](h *Handle) (T, bool) {
	o, ok := h.inner().(T)
	if !ok {
		var zero T

		h.logMismatch("get", zero)

		return zero, false
	}

	return o, true
}

// Take extracts the inner observer as the concrete type T, consuming the
// handle: whether the type matches or not, the handle degrades to a fresh
// no-op observer and further retrieval of the extracted type fails. On
// mismatch the stored observer is discarded and false is reported.
func Take[T Observer](h *Handle) (T, bool) {
	o, ok := h.inner().(T)

	h.observer = &NoopObserver{}

	if !ok {
		var zero T

		h.logMismatch("take", zero)

		return zero, false
	}

	return o, true
}

func (h *Handle) logMismatch(op string, want Observer) {
	if h.logger == nil {
		return
	}

	h.logger.Debug("typed retrieval mismatch",
		"op", op,
		"stored", fmt.Sprintf("%T", h.inner()),
		"requested", fmt.Sprintf("%T", want),
	)
}

// Init forwards the frame-initialization hook. If the observer halts or exits
// the vm state, the host must skip instruction dispatch for the frame.
func (h *Handle) Init(ctx *ExecutionContext, vm VMState) {
	view := ctx.view()
	h.inner().Init(&view, vm)
}

// CaptureState forwards the before-instruction hook
func (h *Handle) CaptureState(ctx *ExecutionContext, vm VMState) {
	view := ctx.view()
	h.inner().CaptureState(&view, vm)
}

// ExecuteState forwards the after-instruction hook
func (h *Handle) ExecuteState(ctx *ExecutionContext, vm VMState) {
	view := ctx.view()
	h.inner().ExecuteState(&view, vm)
}

// CaptureLog forwards an emitted log record
func (h *Handle) CaptureLog(
	ctx *ExecutionContext,
	addr types.Address,
	topics []types.Hash,
	data []byte,
) {
	view := ctx.view()
	h.inner().CaptureLog(&view, addr, topics, data)
}

// CaptureCall forwards the before-call hook. A non-nil result overrides the
// host's own dispatch of the call.
func (h *Handle) CaptureCall(ctx *ExecutionContext, c *runtime.Contract) *runtime.ExecutionResult {
	view := ctx.view()

	return h.inner().CaptureCall(&view, c)
}

// CaptureCallEnd forwards the after-call hook; the returned result is what
// the host must use as the final outcome of the call.
func (h *Handle) CaptureCallEnd(
	ctx *ExecutionContext,
	c *runtime.Contract,
	res *runtime.ExecutionResult,
) *runtime.ExecutionResult {
	view := ctx.view()

	return h.inner().CaptureCallEnd(&view, c, res)
}

// CaptureCreate forwards the before-create hook
func (h *Handle) CaptureCreate(ctx *ExecutionContext, c *runtime.Contract) *CreateResult {
	view := ctx.view()

	return h.inner().CaptureCreate(&view, c)
}

// CaptureCreateEnd forwards the after-create hook
func (h *Handle) CaptureCreateEnd(
	ctx *ExecutionContext,
	c *runtime.Contract,
	res *CreateResult,
) *CreateResult {
	view := ctx.view()

	return h.inner().CaptureCreateEnd(&view, c, res)
}

// CaptureSelfDestruct forwards a committed self-destruct notification
func (h *Handle) CaptureSelfDestruct(contract, beneficiary types.Address, value *big.Int) {
	h.inner().CaptureSelfDestruct(contract, beneficiary, value)
}
