package runtime

import (
	"errors"
	"math/big"

	"github.com/0xPolygon/evm-observer/types"
)

// TxContext is the context of the transaction
type TxContext struct {
	GasPrice   types.Hash
	Origin     types.Address
	Coinbase   types.Address
	Number     int64
	Timestamp  int64
	GasLimit   int64
	ChainID    int64
	Difficulty types.Hash
	BaseFee    *big.Int
}

var (
	ErrOutOfGas            = errors.New("out of gas")
	ErrStackOverflow       = errors.New("stack overflow")
	ErrStackUnderflow      = errors.New("stack underflow")
	ErrNotEnoughFunds      = errors.New("not enough funds")
	ErrInsufficientBalance = errors.New("insufficient balance for transfer")
	ErrMaxCodeSizeExceeded = errors.New("evm: max code size exceeded")
	ErrDepth               = errors.New("max call depth exceeded")
	ErrExecutionReverted   = errors.New("execution was reverted")

	// ErrExecutionHalted marks a frame stopped by an observer rather than by
	// the code it was running. Hosts treat it as a control signal, not a failure.
	ErrExecutionHalted = errors.New("execution halted by observer")
)

// ExecutionResult includes all output after executing given evm
// message no matter the execution itself is successful or not.
// It doubles as the call outcome value of the observer hook protocol:
// a non-nil result returned from a before-hook overrides dispatch, and
// the result returned from an after-hook is what the host finally uses.
type ExecutionResult struct {
	ReturnValue []byte // Returned data from the runtime (function result or data supplied with revert opcode)
	GasLeft     uint64 // Total gas left as result of execution
	GasUsed     uint64 // Total gas used as result of execution
	Err         error  // Any error encountered during the execution, listed below
}

func (r *ExecutionResult) Succeeded() bool { return r.Err == nil }
func (r *ExecutionResult) Failed() bool    { return r.Err != nil }
func (r *ExecutionResult) Reverted() bool  { return errors.Is(r.Err, ErrExecutionReverted) }
func (r *ExecutionResult) Halted() bool    { return errors.Is(r.Err, ErrExecutionHalted) }

func (r *ExecutionResult) UpdateGasUsed(gasLimit uint64, refund uint64) {
	r.GasUsed = gasLimit - r.GasLeft

	// Refund can go up to half the gas used
	if maxRefund := r.GasUsed / 2; refund > maxRefund {
		refund = maxRefund
	}

	r.GasLeft += refund
	r.GasUsed -= refund
}

type CallType int

const (
	Call CallType = iota
	CallCode
	DelegateCall
	StaticCall
	Create
	Create2
)

func (c CallType) String() string {
	switch c {
	case Call:
		return "CALL"
	case CallCode:
		return "CALLCODE"
	case DelegateCall:
		return "DELEGATECALL"
	case StaticCall:
		return "STATICCALL"
	case Create:
		return "CREATE"
	case Create2:
		return "CREATE2"
	default:
		return "UNKNOWN"
	}
}

// Contract is the instance being called. It is the mutable request payload of
// the observer call/create hooks: a before-hook may rewrite the target, value
// or input before the host dispatches it.
type Contract struct {
	Code        []byte
	Type        CallType
	CodeAddress types.Address
	Address     types.Address
	Origin      types.Address
	Caller      types.Address
	Depth       int
	Value       *big.Int
	Input       []byte
	Gas         uint64
	Static      bool

	// Salt is set for Create2 requests only
	Salt *types.Hash
}

func NewContract(
	depth int,
	origin types.Address,
	from types.Address,
	to types.Address,
	value *big.Int,
	gas uint64,
	code []byte,
) *Contract {
	f := &Contract{
		Caller:      from,
		Origin:      origin,
		CodeAddress: to,
		Address:     to,
		Gas:         gas,
		Value:       value,
		Code:        code,
		Depth:       depth,
	}

	return f
}

func NewContractCreation(
	depth int,
	origin types.Address,
	from types.Address,
	to types.Address,
	value *big.Int,
	gas uint64,
	code []byte,
) *Contract {
	c := NewContract(depth, origin, from, to, value, gas, code)
	c.Type = Create

	return c
}

func NewContractCall(
	depth int,
	origin types.Address,
	from types.Address,
	to types.Address,
	value *big.Int,
	gas uint64,
	code []byte,
	input []byte,
) *Contract {
	c := NewContract(depth, origin, from, to, value, gas, code)
	c.Input = input

	return c
}
