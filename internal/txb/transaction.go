// Package txb builds Sui programmable transactions: Move calls with typed
// arguments, coin splitting and merging, and the gas data that turns them into
// signable TransactionData bytes.
package txb

import (
	"math"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"

	"github.com/OKaluzny/sui-tips/internal/bcs"
)

// Errors returned by Build.
var (
	ErrNoCommands   = errors.New("transaction has no commands")
	ErrNoGasPayment = errors.New("no gas payment")
	ErrGasInInputs  = errors.New("gas coin used as a transaction input")
)

type argKind uint32

const (
	argGasCoin argKind = iota
	argInput
	argResult
	argNestedResult
)

// Argument refers to a value inside a transaction: the gas coin, an input, or
// the result of an earlier command.
type Argument struct {
	kind   argKind
	index  uint16
	nested uint16
}

func (a Argument) MarshalBCS(e *bcs.Encoder) {
	e.Variant(uint32(a.kind))
	switch a.kind {
	case argInput, argResult:
		e.U16(a.index)
	case argNestedResult:
		e.U16(a.index)
		e.U16(a.nested)
	}
}

type callArg struct {
	pure   []byte
	object *ObjectRef
}

func (c callArg) MarshalBCS(e *bcs.Encoder) {
	if c.object == nil {
		e.Variant(0) // Pure
		e.ByteVector(c.pure)
		return
	}
	e.Variant(1) // Object
	e.Variant(0) // ImmOrOwnedObject
	c.object.MarshalBCS(e)
}

type moveCall struct {
	pkg      Address
	module   string
	function string
	typeArgs []TypeTag
	args     []Argument
}

func (c moveCall) MarshalBCS(e *bcs.Encoder) {
	e.Variant(0)
	c.pkg.MarshalBCS(e)
	e.String(c.module)
	e.String(c.function)
	e.Length(len(c.typeArgs))
	for _, t := range c.typeArgs {
		t.MarshalBCS(e)
	}
	marshalArgs(e, c.args)
}

type transferObjects struct {
	objects []Argument
	to      Argument
}

func (c transferObjects) MarshalBCS(e *bcs.Encoder) {
	e.Variant(1)
	marshalArgs(e, c.objects)
	c.to.MarshalBCS(e)
}

type splitCoins struct {
	coin    Argument
	amounts []Argument
}

func (c splitCoins) MarshalBCS(e *bcs.Encoder) {
	e.Variant(2)
	c.coin.MarshalBCS(e)
	marshalArgs(e, c.amounts)
}

type mergeCoins struct {
	dst  Argument
	srcs []Argument
}

func (c mergeCoins) MarshalBCS(e *bcs.Encoder) {
	e.Variant(3)
	c.dst.MarshalBCS(e)
	marshalArgs(e, c.srcs)
}

func marshalArgs(e *bcs.Encoder, args []Argument) {
	e.Length(len(args))
	for _, a := range args {
		a.MarshalBCS(e)
	}
}

// Transaction accumulates inputs and commands. It is the opaque payload handed
// to a wallet session, which adds the sender and gas data when it builds.
type Transaction struct {
	inputs   []callArg
	commands []bcs.Marshaler
	objects  map[Address]uint16
	u64s     map[uint16]uint64
}

// New returns an empty transaction.
func New() *Transaction {
	return &Transaction{
		objects: make(map[Address]uint16),
		u64s:    make(map[uint16]uint64),
	}
}

// Gas refers to the coin paying for gas.
func (t *Transaction) Gas() Argument {
	return Argument{kind: argGasCoin}
}

func (t *Transaction) addInput(c callArg) Argument {
	t.inputs = append(t.inputs, c)
	return Argument{kind: argInput, index: uint16(len(t.inputs) - 1)}
}

// Pure adds raw BCS bytes as a pure input.
func (t *Transaction) Pure(b []byte) Argument {
	return t.addInput(callArg{pure: b})
}

// PureU64 adds a u64 input.
func (t *Transaction) PureU64(v uint64) Argument {
	arg := t.Pure(bcs.U64Bytes(v))
	t.u64s[arg.index] = v
	return arg
}

// PureAddress adds an address input.
func (t *Transaction) PureAddress(a Address) Argument {
	return t.Pure(a[:])
}

// PureBytes adds a vector<u8> input.
func (t *Transaction) PureBytes(b []byte) Argument {
	e := bcs.NewEncoder()
	e.ByteVector(b)
	return t.Pure(e.Bytes())
}

// PureString adds a string input, encoded like vector<u8>.
func (t *Transaction) PureString(s string) Argument {
	return t.PureBytes([]byte(s))
}

// Object adds an owned object input. Adding the same object twice returns the
// same argument.
func (t *Transaction) Object(ref ObjectRef) Argument {
	if idx, ok := t.objects[ref.ID]; ok {
		return Argument{kind: argInput, index: idx}
	}
	r := ref
	arg := t.addInput(callArg{object: &r})
	t.objects[ref.ID] = arg.index
	return arg
}

func (t *Transaction) addCommand(c bcs.Marshaler) uint16 {
	t.commands = append(t.commands, c)
	return uint16(len(t.commands) - 1)
}

// MoveCall calls target ("package::module::function") with type arguments
// and arguments. It returns the call's result.
func (t *Transaction) MoveCall(target string, typeArgs []string, args ...Argument) (Argument, error) {
	parts := strings.Split(strings.TrimSpace(target), "::")
	if len(parts) != 3 {
		return Argument{}, errors.Errorf("move call target %q is not package::module::function", target)
	}
	pkg, err := ParseAddress(parts[0])
	if err != nil {
		return Argument{}, errors.Wrap(err, "move call package")
	}
	if !isIdentifier(parts[1]) || !isIdentifier(parts[2]) {
		return Argument{}, errors.Errorf("move call target %q has an invalid identifier", target)
	}
	tags := make([]TypeTag, 0, len(typeArgs))
	for _, s := range typeArgs {
		tag, err := ParseTypeTag(s)
		if err != nil {
			return Argument{}, err
		}
		tags = append(tags, tag)
	}
	idx := t.addCommand(moveCall{
		pkg:      pkg,
		module:   parts[1],
		function: parts[2],
		typeArgs: tags,
		args:     args,
	})
	return Argument{kind: argResult, index: idx}, nil
}

// SplitCoins splits one new coin per amount off coin.
func (t *Transaction) SplitCoins(coin Argument, amounts ...Argument) []Argument {
	idx := t.addCommand(splitCoins{coin: coin, amounts: amounts})
	out := make([]Argument, len(amounts))
	for i := range amounts {
		out[i] = Argument{kind: argNestedResult, index: idx, nested: uint16(i)}
	}
	return out
}

// MergeCoins merges srcs into dst.
func (t *Transaction) MergeCoins(dst Argument, srcs ...Argument) {
	t.addCommand(mergeCoins{dst: dst, srcs: srcs})
}

// TransferObjects sends objects to the address argument to.
func (t *Transaction) TransferObjects(objects []Argument, to Argument) {
	t.addCommand(transferObjects{objects: objects, to: to})
}

// GasDemand is how much of the gas coin the commands split off, as far as the
// amounts are known u64 inputs. Gas payment must cover this plus the budget.
func (t *Transaction) GasDemand() uint64 {
	var total uint64
	for _, c := range t.commands {
		sc, ok := c.(splitCoins)
		if !ok || sc.coin.kind != argGasCoin {
			continue
		}
		for _, a := range sc.amounts {
			if a.kind != argInput {
				continue
			}
			v := t.u64s[a.index]
			if total > math.MaxUint64-v {
				return math.MaxUint64
			}
			total += v
		}
	}
	return total
}

// GasData is the gas configuration added when the transaction is built.
type GasData struct {
	Payment []ObjectRef
	Owner   Address
	Price   uint64
	Budget  uint64
}

// Build serializes the transaction as BCS TransactionData (V1, no expiration).
func (t *Transaction) Build(sender Address, gas GasData) ([]byte, error) {
	if len(t.commands) == 0 {
		return nil, ErrNoCommands
	}
	if len(gas.Payment) == 0 {
		return nil, ErrNoGasPayment
	}
	if gas.Budget == 0 {
		return nil, errors.New("zero gas budget")
	}
	for _, ref := range gas.Payment {
		if _, ok := t.objects[ref.ID]; ok {
			return nil, errors.Wrapf(ErrGasInInputs, "object %s", ref.ID)
		}
	}
	owner := gas.Owner
	if owner.IsZero() {
		owner = sender
	}

	e := bcs.NewEncoder()
	e.Variant(0) // TransactionData::V1
	e.Variant(0) // TransactionKind::ProgrammableTransaction
	e.Length(len(t.inputs))
	for _, in := range t.inputs {
		in.MarshalBCS(e)
	}
	e.Length(len(t.commands))
	for _, c := range t.commands {
		c.MarshalBCS(e)
	}
	sender.MarshalBCS(e)
	e.Length(len(gas.Payment))
	for _, ref := range gas.Payment {
		ref.MarshalBCS(e)
	}
	owner.MarshalBCS(e)
	e.U64(gas.Price)
	e.U64(gas.Budget)
	e.Variant(0) // TransactionExpiration::None
	return e.Bytes(), nil
}

// Digest returns the base58 transaction digest of built TransactionData bytes.
func Digest(txBytes []byte) string {
	h := blake2b.Sum256(append([]byte("TransactionData::"), txBytes...))
	return base58.Encode(h[:])
}
