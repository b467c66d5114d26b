package observer

import (
	"math/big"

	"github.com/0xPolygon/evm-observer/runtime"
	"github.com/0xPolygon/evm-observer/types"
)

// VMState is the interface defining the methods for accessing the interpreter
// state of the frame being executed. The stack, memory and program counter are
// live references into the running frame and are only valid for the duration
// of the hook call.
type VMState interface {
	// Memory returns the memory of the frame
	Memory() []byte
	// Stack returns the operand stack, Stack()[StackPointer()-1] is the top
	Stack() []*big.Int
	// StackPointer returns the number of occupied stack slots
	StackPointer() int
	// ProgramCounter returns the offset of the instruction being executed
	ProgramCounter() uint64
	// OpCode returns the opcode of the instruction being executed
	OpCode() int
	// AvailableGas returns the gas left in the frame
	AvailableGas() uint64
	// ContractAddress returns the address of the contract being executed
	ContractAddress() types.Address
	// Err returns the pending frame error, nil while the frame is healthy
	Err() error
	// Halt tells the interpreter to terminate the frame without an error
	Halt()
	// Exit tells the interpreter to terminate the frame with the given error
	Exit(err error)
}

// JournalView gives observers access to the account and storage changes
// recorded within the current transaction
type JournalView interface {
	GetNonce(addr types.Address) uint64
	GetBalance(addr types.Address) *big.Int
	GetStorage(addr types.Address, key types.Hash) types.Hash
	SetStorage(addr types.Address, key types.Hash, value types.Hash)
	// GetRefund returns refunded value
	GetRefund() uint64
}

// StateReader accesses the backing committed state. Lookups may fail; an
// observer that cannot tolerate the failure reports it through the view's
// error slot.
type StateReader interface {
	AccountExists(addr types.Address) (bool, error)
	GetCode(addr types.Address) ([]byte, error)
	GetStorage(addr types.Address, key types.Hash) (types.Hash, error)
}

// RollupInfo carries the L1 settlement block metadata. It is only present on
// configurations that settle to a parent chain.
type RollupInfo struct {
	L1BlockNumber uint64
	L1BlockHash   types.Hash
	L1BaseFee     *big.Int
}

// CreateResult is the outcome of a create request. Address is set once the
// contract address has been assigned.
type CreateResult struct {
	runtime.ExecutionResult

	Address *types.Address
}

// Observer is the instrumentation plug-in attached to one execution context.
// Hooks run inline with instruction dispatch, on the host's goroutine, so
// implementations must be fast and must not block.
//
// Embed NoopObserver to implement only the hooks of interest. A hook that
// detects an unrecoverable condition writes it through ExecutionView.SetError;
// the host checks the slot after every hook and aborts the execution.
type Observer interface {
	// Clone returns a deep copy of the observer. It is invoked when the
	// execution context the observer is attached to is forked, so the two
	// forks track state independently.
	Clone() Observer

	// Init is called once before the first instruction of a frame executes.
	// Halting or exiting the vm state here makes the host skip instruction
	// dispatch for the whole frame.
	Init(view *ExecutionView, vm VMState)

	// CaptureState is called before each instruction executes
	CaptureState(view *ExecutionView, vm VMState)

	// ExecuteState is called after each instruction has executed. Halting or
	// exiting the vm state redirects control flow of the frame.
	ExecuteState(view *ExecutionView, vm VMState)

	// CaptureLog is called when the interpreter emits a log record.
	// The payload is read-only.
	CaptureLog(view *ExecutionView, addr types.Address, topics []types.Hash, data []byte)

	// CaptureCall is called before a call is dispatched. A non-nil result
	// short-circuits dispatch and becomes the host's outcome for the call.
	// Returning nil lets the host proceed; mutations of c are honored.
	CaptureCall(view *ExecutionView, c *runtime.Contract) *runtime.ExecutionResult

	// CaptureCallEnd is called after a call has concluded, whether it was
	// dispatched or overridden. The returned result is final.
	CaptureCallEnd(
		view *ExecutionView,
		c *runtime.Contract,
		res *runtime.ExecutionResult,
	) *runtime.ExecutionResult

	// CaptureCreate is the create counterpart of CaptureCall
	CaptureCreate(view *ExecutionView, c *runtime.Contract) *CreateResult

	// CaptureCreateEnd is the create counterpart of CaptureCallEnd
	CaptureCreateEnd(view *ExecutionView, c *runtime.Contract, res *CreateResult) *CreateResult

	// CaptureSelfDestruct is called after a self-destruct has been committed,
	// with the funds already transferred to the beneficiary
	CaptureSelfDestruct(contract, beneficiary types.Address, value *big.Int)
}
