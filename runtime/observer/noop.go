package observer

import (
	"math/big"

	"github.com/0xPolygon/evm-observer/runtime"
	"github.com/0xPolygon/evm-observer/types"
)

var _ Observer = (*NoopObserver)(nil)

// NoopObserver is the built-in do-nothing Observer. Every hook leaves its
// payload untouched, never halts the frame and never writes the error slot.
//
// Embed it to inherit the no-op hooks and override only the ones needed.
// Embedders that carry state must also provide their own Clone, otherwise a
// fork of the execution context drops that state.
type NoopObserver struct{}

func (*NoopObserver) Clone() Observer {
	return &NoopObserver{}
}

func (*NoopObserver) Init(*ExecutionView, VMState) {
}

func (*NoopObserver) CaptureState(*ExecutionView, VMState) {
}

func (*NoopObserver) ExecuteState(*ExecutionView, VMState) {
}

func (*NoopObserver) CaptureLog(*ExecutionView, types.Address, []types.Hash, []byte) {
}

func (*NoopObserver) CaptureCall(*ExecutionView, *runtime.Contract) *runtime.ExecutionResult {
	return nil
}

func (*NoopObserver) CaptureCallEnd(
	_ *ExecutionView,
	_ *runtime.Contract,
	res *runtime.ExecutionResult,
) *runtime.ExecutionResult {
	return res
}

func (*NoopObserver) CaptureCreate(*ExecutionView, *runtime.Contract) *CreateResult {
	return nil
}

func (*NoopObserver) CaptureCreateEnd(
	_ *ExecutionView,
	_ *runtime.Contract,
	res *CreateResult,
) *CreateResult {
	return res
}

func (*NoopObserver) CaptureSelfDestruct(types.Address, types.Address, *big.Int) {
}
