package consensus_test

import (
	"bytes"
	"testing"

	"github.com/kaspanet/ledgerd/domain/chainconfig"
	"github.com/kaspanet/ledgerd/domain/consensus"
	"github.com/kaspanet/ledgerd/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgerd/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/ledgerd/domain/consensus/utils/serialization"
	"github.com/kaspanet/ledgerd/domain/consensus/utils/testutils"
	"github.com/pkg/errors"
)

func buildTestChain(t *testing.T, params *chainconfig.Params) (*consensus.Blockchain, *testMiner) {
	miner := newTestMiner(t, params)
	bc := consensus.New(params)
	genesis := miner.addBlock(bc)
	second := miner.addBlock(bc, miner.spend(genesis.Transactions[0].Outputs[0], 7, 8))
	miner.addBlock(bc, miner.spend(second.Transactions[1].Outputs[1], 8))
	return bc, miner
}

func TestBlockchainSerializationRoundTrip(t *testing.T) {
	params := &chainconfig.SimnetParams
	bc, _ := buildTestChain(t, params)
	serialized := serializeChain(t, bc)

	deserialized, err := consensus.DeserializeBlockchain(bytes.NewReader(serialized), params)
	if err != nil {
		t.Fatalf("TestBlockchainSerializationRoundTrip: DeserializeBlockchain: %+v", err)
	}

	blocks, deserializedBlocks := bc.Blocks(), deserialized.Blocks()
	if len(blocks) != len(deserializedBlocks) {
		t.Fatalf("TestBlockchainSerializationRoundTrip: expected %d blocks but got %d",
			len(blocks), len(deserializedBlocks))
	}
	for i := range blocks {
		if !blocks[i].Equal(deserializedBlocks[i]) {
			t.Fatalf("TestBlockchainSerializationRoundTrip: block %d changed in the round trip", i)
		}
	}
	if !bc.UTXOSet().Equal(deserialized.UTXOSet()) {
		t.Fatalf("TestBlockchainSerializationRoundTrip: UTXO set changed in the round trip")
	}
	if !bc.View().UTXOCommitment.Equal(deserialized.View().UTXOCommitment) {
		t.Fatalf("TestBlockchainSerializationRoundTrip: UTXO commitment changed in the round trip")
	}
	if !bytes.Equal(serializeChain(t, deserialized), serialized) {
		t.Fatalf("TestBlockchainSerializationRoundTrip: serialization is not stable")
	}
}

func TestDeserializeBlockchainErrors(t *testing.T) {
	params := &chainconfig.SimnetParams
	bc, miner := buildTestChain(t, params)
	serialized := serializeChain(t, bc)

	_, err := consensus.DeserializeBlockchain(bytes.NewReader(serialized[:len(serialized)-1]), params)
	if !serialization.IsMalformedError(err) {
		t.Fatalf("TestDeserializeBlockchainErrors: expected a malformed error for truncated data but got: %+v", err)
	}

	// An extra UTXO that no block produced
	utxoSet := bc.UTXOSet()
	extra := testutils.NewOutput(1, miner.key.PublicKey)
	utxoSet[*consensushashing.OutputHash(extra)] = extra
	var buf bytes.Buffer
	err = serialization.SerializeBlockchain(&buf, bc.Blocks(), utxoSet)
	if err != nil {
		t.Fatalf("TestDeserializeBlockchainErrors: SerializeBlockchain: %+v", err)
	}
	_, err = consensus.DeserializeBlockchain(&buf, params)
	if !errors.Is(err, consensus.ErrUTXOSetMismatch) {
		t.Fatalf("TestDeserializeBlockchainErrors: expected ErrUTXOSetMismatch but got: %+v", err)
	}

	// A block that is invalid on replay
	blocks := bc.Blocks()
	blocks[1], blocks[2] = blocks[2], blocks[1]
	buf.Reset()
	err = serialization.SerializeBlockchain(&buf, blocks, bc.UTXOSet())
	if err != nil {
		t.Fatalf("TestDeserializeBlockchainErrors: SerializeBlockchain: %+v", err)
	}
	_, err = consensus.DeserializeBlockchain(&buf, params)
	if err == nil {
		t.Fatalf("TestDeserializeBlockchainErrors: reordered blocks were accepted")
	}
}

type recordedBlock struct {
	height uint64
	block  *externalapi.DomainBlock
	delta  *externalapi.UTXODelta
}

type fakeStore struct {
	stored []recordedBlock
	err    error
}

func (s *fakeStore) StoreBlock(height uint64, block *externalapi.DomainBlock, delta *externalapi.UTXODelta) error {
	if s.err != nil {
		return s.err
	}
	s.stored = append(s.stored, recordedBlock{height: height, block: block, delta: delta})
	return nil
}

func TestBlockchainStore(t *testing.T) {
	params := &chainconfig.SimnetParams
	miner := newTestMiner(t, params)
	store := &fakeStore{}
	bc := consensus.New(params, consensus.WithStore(store))

	genesis := miner.addBlock(bc)
	spend := miner.spend(genesis.Transactions[0].Outputs[0], 5)
	second := miner.addBlock(bc, spend)

	if len(store.stored) != 2 {
		t.Fatalf("TestBlockchainStore: expected 2 stored blocks but got %d", len(store.stored))
	}
	if store.stored[0].height != 0 || !store.stored[0].block.Equal(genesis) {
		t.Fatalf("TestBlockchainStore: unexpected first stored block")
	}
	if store.stored[1].height != 1 || !store.stored[1].block.Equal(second) {
		t.Fatalf("TestBlockchainStore: unexpected second stored block")
	}
	consumedHash := consensushashing.OutputHash(genesis.Transactions[0].Outputs[0])
	if len(store.stored[1].delta.Consumed) != 1 || !store.stored[1].delta.Consumed.Contains(consumedHash) {
		t.Fatalf("TestBlockchainStore: unexpected consumed outputs in the stored delta")
	}

	// Rejected blocks never reach the store
	rejected := miner.nextBlock(bc, spend)
	rejectedErr := bc.AddBlock(rejected)
	if rejectedErr == nil {
		t.Fatalf("TestBlockchainStore: a block spending a spent output was accepted")
	}
	if len(store.stored) != 2 {
		t.Fatalf("TestBlockchainStore: a rejected block was stored")
	}

	// A store failure is reported after the block was appended in memory
	storeErr := errors.New("disk full")
	store.err = storeErr
	err := bc.AddBlock(miner.nextBlock(bc))
	if !errors.Is(err, storeErr) {
		t.Fatalf("TestBlockchainStore: expected the store error but got: %+v", err)
	}
	if !errors.Is(err, consensus.ErrStoreFailed) {
		t.Fatalf("TestBlockchainStore: expected ErrStoreFailed but got: %+v", err)
	}
	if errors.Is(rejectedErr, consensus.ErrStoreFailed) {
		t.Fatalf("TestBlockchainStore: a rejection must not be reported as a store failure")
	}
	if bc.Height() != 3 {
		t.Fatalf("TestBlockchainStore: expected height 3 after a store failure but got %d", bc.Height())
	}
}
