package externalapi

// UTXOSet maps the hash of every unspent output to the output itself
type UTXOSet map[DomainHash]*DomainTransactionOutput

// Clone returns a deep clone of the UTXO set
func (set UTXOSet) Clone() UTXOSet {
	clone := make(UTXOSet, len(set))
	for hash, output := range set {
		clone[hash] = output.Clone()
	}
	return clone
}

// Get returns the output identified by hash and whether it exists in the set
func (set UTXOSet) Get(hash *DomainHash) (*DomainTransactionOutput, bool) {
	output, ok := set[*hash]
	return output, ok
}

// Contains returns whether an output identified by hash exists in the set
func (set UTXOSet) Contains(hash *DomainHash) bool {
	_, ok := set[*hash]
	return ok
}

// Equal returns whether set equals to other
func (set UTXOSet) Equal(other UTXOSet) bool {
	if len(set) != len(other) {
		return false
	}
	for hash, output := range set {
		otherOutput, ok := other[hash]
		if !ok {
			return false
		}
		if !output.Equal(otherOutput) {
			return false
		}
	}
	return true
}

// UTXODelta is the effect of a block on the UTXO set: the outputs it spends
// and the outputs it creates
type UTXODelta struct {
	Consumed UTXOSet
	Produced UTXOSet
}

// NewUTXODelta returns an empty UTXODelta
func NewUTXODelta() *UTXODelta {
	return &UTXODelta{
		Consumed: make(UTXOSet),
		Produced: make(UTXOSet),
	}
}

// Clone returns a deep clone of the delta
func (delta *UTXODelta) Clone() *UTXODelta {
	return &UTXODelta{
		Consumed: delta.Consumed.Clone(),
		Produced: delta.Produced.Clone(),
	}
}
