package ledger

import (
	"maps"

	"github.com/goccy/go-json"

	"github.com/dora-network/dora-safemath/validation"
)

// Entry is a single credit or debit applied by Balances.Apply.
type Entry struct {
	AssetID string `json:"asset_id"`
	Amount  uint64 `json:"amount"`
	Debit   bool   `json:"debit"`
}

// Credit returns an Entry adding amount to assetID.
func Credit(assetID string, amount uint64) Entry {
	return Entry{AssetID: assetID, Amount: amount}
}

// Debit returns an Entry removing amount from assetID.
func Debit(assetID string, amount uint64) Entry {
	return Entry{AssetID: assetID, Amount: amount, Debit: true}
}

// Balances contains zero or more (AssetID string, Amount uint64) key-value pairs.
// The zero value is ready to use; Balances is not safe for concurrent mutation.
type Balances struct {
	Bals map[string]uint64 `json:"bals"`
}

// EmptyBalances returns an empty Balances.
func EmptyBalances() *Balances {
	return &Balances{
		Bals: make(map[string]uint64),
	}
}

func (b *Balances) MarshalBinary() ([]byte, error) {
	return json.Marshal(b)
}

func (b *Balances) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, b)
}

// Get returns the balance of assetID as an Amount.
func (b *Balances) Get(assetID string) Amount {
	return NewAmount(assetID, b.Bals[assetID])
}

// Copy returns a deep copy of b.
func (b *Balances) Copy() *Balances {
	c := EmptyBalances()
	maps.Copy(c.Bals, b.Bals)
	return c
}

// Equal returns true if both Balances hold the same non-zero amounts.
func (b *Balances) Equal(x *Balances) bool {
	for id, amt := range b.Bals {
		if x.Bals[id] != amt {
			return false
		}
	}
	for id, amt := range x.Bals {
		if b.Bals[id] != amt {
			return false
		}
	}
	return true
}

// Apply applies every entry in order. Either all entries are applied or, on the
// first failure, none are and b is left unchanged. Failures carry the safemath
// kind: a debit larger than the balance is safemath.Underflow and a credit past
// the uint64 maximum is safemath.Overflow.
func (b *Balances) Apply(entries ...Entry) error {
	next := b.Copy()
	for _, e := range entries {
		if err := validation.AssetID(e.AssetID); err != nil {
			return err
		}
		current := next.Get(e.AssetID)
		var (
			updated Amount
			err     error
		)
		if e.Debit {
			updated, err = current.SubUint64(e.Amount)
		} else {
			updated, err = current.AddUint64(e.Amount)
		}
		if err != nil {
			return err
		}
		if updated.IsZero() {
			delete(next.Bals, e.AssetID)
			continue
		}
		next.Bals[e.AssetID] = updated.Amount
	}
	b.Bals = next.Bals
	return nil
}

// Transfer moves amount of assetID from b to dst. Neither side changes if either fails.
func (b *Balances) Transfer(dst *Balances, assetID string, amount uint64) error {
	if b == dst {
		return b.Apply(Debit(assetID, amount), Credit(assetID, amount))
	}
	src := b.Copy()
	if err := src.Apply(Debit(assetID, amount)); err != nil {
		return err
	}
	out := dst.Copy()
	if err := out.Apply(Credit(assetID, amount)); err != nil {
		return err
	}
	b.Bals, dst.Bals = src.Bals, out.Bals
	return nil
}
