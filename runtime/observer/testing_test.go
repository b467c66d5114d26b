package observer

import (
	"math/big"

	"github.com/0xPolygon/evm-observer/chain"
	"github.com/0xPolygon/evm-observer/runtime"
	"github.com/0xPolygon/evm-observer/types"
)

// mockVM implements VMState over plain fields
type mockVM struct {
	memory  []byte
	stack   []*big.Int
	sp      int
	ip      uint64
	opCode  int
	gas     uint64
	address types.Address

	err     error
	stopped bool
}

func (m *mockVM) Memory() []byte                 { return m.memory }
func (m *mockVM) Stack() []*big.Int              { return m.stack }
func (m *mockVM) StackPointer() int              { return m.sp }
func (m *mockVM) ProgramCounter() uint64         { return m.ip }
func (m *mockVM) OpCode() int                    { return m.opCode }
func (m *mockVM) AvailableGas() uint64           { return m.gas }
func (m *mockVM) ContractAddress() types.Address { return m.address }
func (m *mockVM) Err() error                     { return m.err }

func (m *mockVM) Halt() {
	m.stopped = true
}

func (m *mockVM) Exit(err error) {
	m.stopped = true
	m.err = err
}

// mockJournal implements JournalView with in-memory maps
type mockJournal struct {
	nonces   map[types.Address]uint64
	balances map[types.Address]*big.Int
	storage  map[types.Address]map[types.Hash]types.Hash
	refund   uint64
}

func newMockJournal() *mockJournal {
	return &mockJournal{
		nonces:   map[types.Address]uint64{},
		balances: map[types.Address]*big.Int{},
		storage:  map[types.Address]map[types.Hash]types.Hash{},
	}
}

func (m *mockJournal) GetNonce(addr types.Address) uint64 {
	return m.nonces[addr]
}

func (m *mockJournal) GetBalance(addr types.Address) *big.Int {
	if b, ok := m.balances[addr]; ok {
		return b
	}

	return big.NewInt(0)
}

func (m *mockJournal) GetStorage(addr types.Address, key types.Hash) types.Hash {
	return m.storage[addr][key]
}

func (m *mockJournal) SetStorage(addr types.Address, key types.Hash, value types.Hash) {
	if _, ok := m.storage[addr]; !ok {
		m.storage[addr] = map[types.Hash]types.Hash{}
	}

	m.storage[addr][key] = value
}

func (m *mockJournal) GetRefund() uint64 {
	return m.refund
}

// mockState implements StateReader; a non-nil failErr makes every lookup fail
type mockState struct {
	code    map[types.Address][]byte
	failErr error
}

func (m *mockState) AccountExists(addr types.Address) (bool, error) {
	if m.failErr != nil {
		return false, m.failErr
	}

	_, ok := m.code[addr]

	return ok, nil
}

func (m *mockState) GetCode(addr types.Address) ([]byte, error) {
	if m.failErr != nil {
		return nil, m.failErr
	}

	return m.code[addr], nil
}

func (m *mockState) GetStorage(types.Address, types.Hash) (types.Hash, error) {
	if m.failErr != nil {
		return types.ZeroHash, m.failErr
	}

	return types.ZeroHash, nil
}

func newMockContext() *ExecutionContext {
	return &ExecutionContext{
		Tx:      &runtime.TxContext{Number: 10, ChainID: 100},
		Forks:   &chain.ForksInTime{London: true},
		Journal: newMockJournal(),
		State:   &mockState{code: map[types.Address][]byte{}},
	}
}

// testHost drives the hook lifecycle the way an interpreter loop would:
// init, then a capture/execute pair per instruction, polling the error slot
// and the frame stop flag after every hook.
type testHost struct {
	handle *Handle
	ctx    *ExecutionContext

	attempts int
}

func newTestHost(h *Handle) *testHost {
	return &testHost{
		handle: h,
		ctx:    newMockContext(),
	}
}

// runFrame executes a frame of the given number of instructions. Instruction
// semantics are stubbed out; only the hook protocol is real.
func (th *testHost) runFrame(vm *mockVM, instructions int) *runtime.ExecutionResult {
	th.handle.Init(th.ctx, vm)

	if err := th.ctx.Err(); err != nil {
		return &runtime.ExecutionResult{Err: err}
	}

	for i := 0; i < instructions && !vm.stopped; i++ {
		th.attempts++

		th.handle.CaptureState(th.ctx, vm)

		if err := th.ctx.Err(); err != nil {
			return &runtime.ExecutionResult{Err: err}
		}

		if vm.stopped {
			break
		}

		// the instruction itself would execute here
		vm.ip++

		th.handle.ExecuteState(th.ctx, vm)

		if err := th.ctx.Err(); err != nil {
			return &runtime.ExecutionResult{Err: err}
		}
	}

	if vm.err != nil {
		return &runtime.ExecutionResult{Err: vm.err, GasLeft: vm.gas}
	}

	return &runtime.ExecutionResult{GasLeft: vm.gas}
}

// applyCall runs the before/after call protocol around the given dispatch
// function, honoring an override by skipping dispatch entirely
func (th *testHost) applyCall(
	c *runtime.Contract,
	dispatch func(*runtime.Contract) *runtime.ExecutionResult,
) *runtime.ExecutionResult {
	res := th.handle.CaptureCall(th.ctx, c)
	if res == nil {
		res = dispatch(c)
	}

	return th.handle.CaptureCallEnd(th.ctx, c, res)
}

// applyCreate is the create counterpart of applyCall
func (th *testHost) applyCreate(
	c *runtime.Contract,
	dispatch func(*runtime.Contract) *CreateResult,
) *CreateResult {
	res := th.handle.CaptureCreate(th.ctx, c)
	if res == nil {
		res = dispatch(c)
	}

	return th.handle.CaptureCreateEnd(th.ctx, c, res)
}

// emitLogs notifies the handle of n emitted log records
func (th *testHost) emitLogs(addr types.Address, n int) {
	for i := 0; i < n; i++ {
		topic := types.BytesToHash([]byte{byte(i)})
		th.handle.CaptureLog(th.ctx, addr, []types.Hash{topic}, []byte{byte(i)})
	}
}

// countingObserver tallies hook invocations; used to verify forwarding and
// clone independence
type countingObserver struct {
	NoopObserver

	inits    int
	steps    int
	stepEnds int
	logs     int
	calls    int
	callEnds int
}

func (c *countingObserver) Clone() Observer {
	cc := *c

	return &cc
}

func (c *countingObserver) Init(*ExecutionView, VMState) {
	c.inits++
}

func (c *countingObserver) CaptureState(*ExecutionView, VMState) {
	c.steps++
}

func (c *countingObserver) ExecuteState(*ExecutionView, VMState) {
	c.stepEnds++
}

func (c *countingObserver) CaptureLog(*ExecutionView, types.Address, []types.Hash, []byte) {
	c.logs++
}

func (c *countingObserver) CaptureCall(*ExecutionView, *runtime.Contract) *runtime.ExecutionResult {
	c.calls++

	return nil
}

func (c *countingObserver) CaptureCallEnd(
	_ *ExecutionView,
	_ *runtime.Contract,
	res *runtime.ExecutionResult,
) *runtime.ExecutionResult {
	c.callEnds++

	return res
}
