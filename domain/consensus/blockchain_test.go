package consensus_test

import (
	"bytes"
	"math/rand"
	"sync"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/kaspanet/ledgerd/domain/chainconfig"
	"github.com/kaspanet/ledgerd/domain/consensus"
	"github.com/kaspanet/ledgerd/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgerd/domain/consensus/ruleerrors"
	"github.com/kaspanet/ledgerd/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/ledgerd/domain/consensus/utils/mining"
	"github.com/kaspanet/ledgerd/domain/consensus/utils/testutils"
	"github.com/pkg/errors"
)

type testMiner struct {
	t      *testing.T
	params *chainconfig.Params
	key    *testutils.KeyPair
}

func newTestMiner(t *testing.T, params *chainconfig.Params) *testMiner {
	key, err := testutils.NewTestKeyPair()
	if err != nil {
		t.Fatalf("NewTestKeyPair: %+v", err)
	}
	return &testMiner{t: t, params: params, key: key}
}

// nextBlock builds a valid block on top of bc that pays the full subsidy to the miner
func (m *testMiner) nextBlock(bc *consensus.Blockchain, transactions ...*externalapi.DomainTransaction) *externalapi.DomainBlock {
	height := bc.Height()
	var parent *externalapi.DomainBlockHeader
	if height > 0 {
		tip, err := bc.Block(height - 1)
		if err != nil {
			m.t.Fatalf("Block: %+v", err)
		}
		parent = tip.Header
	}
	coinbase := testutils.NewCoinbaseTransaction(m.key.PublicKey, m.params.CalcBlockSubsidy(height))
	return testutils.BuildBlock(parent, append([]*externalapi.DomainTransaction{coinbase}, transactions...)...)
}

func (m *testMiner) addBlock(bc *consensus.Blockchain, transactions ...*externalapi.DomainTransaction) *externalapi.DomainBlock {
	block := m.nextBlock(bc, transactions...)
	err := bc.AddBlock(block)
	if err != nil {
		m.t.Fatalf("AddBlock: %+v", err)
	}
	return block
}

func (m *testMiner) spend(output *externalapi.DomainTransactionOutput, values ...uint64) *externalapi.DomainTransaction {
	outputs := make([]*externalapi.DomainTransactionOutput, len(values))
	for i, value := range values {
		outputs[i] = testutils.NewOutput(value, m.key.PublicKey)
	}
	tx, err := testutils.NewSpendTransaction([]*externalapi.DomainTransactionOutput{output},
		[]*testutils.KeyPair{m.key}, outputs)
	if err != nil {
		m.t.Fatalf("NewSpendTransaction: %+v", err)
	}
	return tx
}

func serializeChain(t *testing.T, bc *consensus.Blockchain) []byte {
	var buf bytes.Buffer
	err := bc.Serialize(&buf)
	if err != nil {
		t.Fatalf("Serialize: %+v", err)
	}
	return buf.Bytes()
}

func TestBlockchainEndToEnd(t *testing.T) {
	testutils.ForAllNets(t, func(t *testing.T, params *chainconfig.Params) {
		miner := newTestMiner(t, params)
		bc := consensus.New(params)
		if bc.Height() != 0 || bc.View().TipHash != nil {
			t.Fatalf("TestBlockchainEndToEnd: new chain is not empty: %s", spew.Sdump(bc.View()))
		}

		genesisCoinbase := testutils.NewCoinbaseTransaction(miner.key.PublicKey, 1000)
		genesis := testutils.BuildBlock(nil, genesisCoinbase)
		err := bc.AddBlock(genesis)
		if err != nil {
			t.Fatalf("TestBlockchainEndToEnd: AddBlock(genesis): %+v", err)
		}
		if len(bc.Blocks()) != 1 {
			t.Fatalf("TestBlockchainEndToEnd: expected 1 block but got %d", len(bc.Blocks()))
		}
		genesisOutput := genesisCoinbase.Outputs[0]
		if _, ok := bc.UTXO(consensushashing.OutputHash(genesisOutput)); !ok {
			t.Fatalf("TestBlockchainEndToEnd: the genesis output is not in the UTXO set")
		}

		spend := miner.spend(genesisOutput, 600, 300)
		coinbase := testutils.NewCoinbaseTransaction(miner.key.PublicKey, params.CalcBlockSubsidy(1)+100)
		second := testutils.BuildBlock(genesis.Header, coinbase, spend)
		err = bc.AddBlock(second)
		if err != nil {
			t.Fatalf("TestBlockchainEndToEnd: AddBlock(second): %+v", err)
		}

		blocks := bc.Blocks()
		if len(blocks) != 2 || !blocks[0].Equal(genesis) || !blocks[1].Equal(second) {
			t.Fatalf("TestBlockchainEndToEnd: unexpected blocks: %s", spew.Sdump(blocks))
		}

		expectedUTXOSet := externalapi.UTXOSet{}
		for _, output := range append(coinbase.Outputs, spend.Outputs...) {
			expectedUTXOSet[*consensushashing.OutputHash(output)] = output
		}
		if !bc.UTXOSet().Equal(expectedUTXOSet) {
			t.Fatalf("TestBlockchainEndToEnd: unexpected UTXO set: %s", spew.Sdump(bc.UTXOSet()))
		}

		view := bc.View()
		if view.Height != 2 || !view.TipHash.Equal(consensushashing.BlockHash(second)) ||
			view.TipTimeInMilliseconds != second.Header.TimeInMilliseconds || view.UTXOCount != 3 {
			t.Fatalf("TestBlockchainEndToEnd: unexpected view: %s", spew.Sdump(view))
		}
	})
}

func TestBlockchainGenesis(t *testing.T) {
	params := &chainconfig.SimnetParams
	miner := newTestMiner(t, params)
	bc := consensus.New(params)

	genesis := testutils.BuildBlock(nil, testutils.NewCoinbaseTransaction(miner.key.PublicKey, 1))
	genesis.Header.PrevBlockHash = *consensushashing.TransactionHash(genesis.Transactions[0])
	err := bc.AddBlock(genesis)
	if !errors.Is(err, ruleerrors.ErrInvalidBlock) {
		t.Fatalf("TestBlockchainGenesis: expected ErrInvalidBlock but got: %+v", err)
	}
	if bc.Height() != 0 || len(bc.UTXOSet()) != 0 {
		t.Fatalf("TestBlockchainGenesis: rejected genesis changed the chain")
	}

	// Any proof of work, merkle root and timestamp are fine for the first block
	genesis.Header.PrevBlockHash = externalapi.ZeroHash
	genesis.Header.Target = externalapi.ZeroHash
	genesis.Header.HashMerkleRoot = externalapi.ZeroHash
	genesis.Header.TimeInMilliseconds = 0
	err = bc.AddBlock(genesis)
	if err != nil {
		t.Fatalf("TestBlockchainGenesis: AddBlock: %+v", err)
	}

	// The predefined genesis blocks are accepted by an empty chain
	testutils.ForAllNets(t, func(t *testing.T, params *chainconfig.Params) {
		err := consensus.New(params).AddBlock(params.GenesisBlock)
		if err != nil {
			t.Fatalf("TestBlockchainGenesis: AddBlock(%s genesis): %+v", params.Name, err)
		}
	})
}

func TestAddBlockAtomicity(t *testing.T) {
	params := &chainconfig.SimnetParams
	miner := newTestMiner(t, params)
	bc := consensus.New(params)
	genesis := miner.addBlock(bc)
	second := miner.addBlock(bc)
	spendable := genesis.Transactions[0].Outputs[0]
	rd := rand.New(rand.NewSource(0))

	tests := []struct {
		name          string
		block         func() *externalapi.DomainBlock
		expectedError error
	}{
		{
			name: "points to the genesis block",
			block: func() *externalapi.DomainBlock {
				block := miner.nextBlock(bc)
				block.Header.PrevBlockHash = *consensushashing.BlockHash(genesis)
				return block
			},
			expectedError: ruleerrors.ErrInvalidBlock,
		},
		{
			name: "above target",
			block: func() *externalapi.DomainBlock {
				block := miner.nextBlock(bc)
				target := block.Header.Target.ByteArray()
				target[0] = 0x0f
				block.Header.Target = *externalapi.NewDomainHashFromByteArray(target)
				err := mining.BreakProofOfWork(block, rd)
				if err != nil {
					t.Fatalf("BreakProofOfWork: %+v", err)
				}
				return block
			},
			expectedError: ruleerrors.ErrInvalidBlock,
		},
		{
			name: "stale merkle root",
			block: func() *externalapi.DomainBlock {
				block := miner.nextBlock(bc, miner.spend(spendable, 10))
				block.Transactions = block.Transactions[:1]
				return block
			},
			expectedError: ruleerrors.ErrInvalidMerkleRoot,
		},
		{
			name: "same timestamp as the tip",
			block: func() *externalapi.DomainBlock {
				block := miner.nextBlock(bc)
				block.Header.TimeInMilliseconds = second.Header.TimeInMilliseconds
				return block
			},
			expectedError: ruleerrors.ErrInvalidBlock,
		},
		{
			name: "double spend in a later transaction",
			block: func() *externalapi.DomainBlock {
				return miner.nextBlock(bc, miner.spend(spendable, 10), miner.spend(spendable, 20))
			},
			expectedError: ruleerrors.ErrDoubleSpendInSameBlock,
		},
		{
			name: "bad signature in a later transaction",
			block: func() *externalapi.DomainBlock {
				bad := miner.spend(second.Transactions[0].Outputs[0], 10)
				bad.Inputs[0].Signature = miner.spend(spendable, 10).Inputs[0].Signature
				block := miner.nextBlock(bc, miner.spend(spendable, 10), bad)
				return block
			},
			expectedError: ruleerrors.ErrInvalidSignature,
		},
		{
			name: "coinbase claims too much",
			block: func() *externalapi.DomainBlock {
				block := miner.nextBlock(bc)
				block.Transactions[0].Outputs[0].Value++
				testutils.UpdateMerkleRoot(block)
				return block
			},
			expectedError: ruleerrors.ErrBadCoinbaseValue,
		},
	}

	for _, test := range tests {
		serializedBefore := serializeChain(t, bc)
		viewBefore := bc.View()

		err := bc.AddBlock(test.block())
		if !errors.Is(err, test.expectedError) {
			t.Fatalf("TestAddBlockAtomicity: %s: expected %s but got: %+v", test.name, test.expectedError, err)
		}
		if !bytes.Equal(serializeChain(t, bc), serializedBefore) {
			t.Fatalf("TestAddBlockAtomicity: %s: the rejected block changed the chain", test.name)
		}
		viewAfter := bc.View()
		if viewAfter.Height != viewBefore.Height || !viewAfter.TipHash.Equal(viewBefore.TipHash) ||
			!viewAfter.UTXOCommitment.Equal(viewBefore.UTXOCommitment) {
			t.Fatalf("TestAddBlockAtomicity: %s: the rejected block changed the view", test.name)
		}
	}

	// The chain still accepts a valid block after all the rejections
	miner.addBlock(bc, miner.spend(spendable, 10))
}

func TestBlockchainReadsReturnClones(t *testing.T) {
	params := &chainconfig.SimnetParams
	miner := newTestMiner(t, params)
	bc := consensus.New(params)
	genesis := miner.addBlock(bc)

	// Changing the submitted block must not change the chain
	genesis.Transactions[0].Outputs[0].Value = 0
	stored, err := bc.Block(0)
	if err != nil {
		t.Fatalf("TestBlockchainReadsReturnClones: Block: %+v", err)
	}
	if stored.Transactions[0].Outputs[0].Value == 0 {
		t.Fatalf("TestBlockchainReadsReturnClones: the chain shares the submitted block")
	}

	stored.Header.Nonce++
	for hash := range bc.UTXOSet() {
		utxoSet := bc.UTXOSet()
		utxoSet[hash].Value = 0
		output, _ := bc.UTXO(&hash)
		if output.Value == 0 {
			t.Fatalf("TestBlockchainReadsReturnClones: UTXOSet shares outputs with the chain")
		}
	}
	again, err := bc.Block(0)
	if err != nil {
		t.Fatalf("TestBlockchainReadsReturnClones: Block: %+v", err)
	}
	if again.Header.Nonce == stored.Header.Nonce {
		t.Fatalf("TestBlockchainReadsReturnClones: Block shares headers with the chain")
	}

	_, err = bc.Block(1)
	if !errors.Is(err, consensus.ErrHeightOutOfRange) {
		t.Fatalf("TestBlockchainReadsReturnClones: expected ErrHeightOutOfRange but got: %+v", err)
	}
}

func TestBlockchainConcurrentReads(t *testing.T) {
	params := &chainconfig.SimnetParams
	miner := newTestMiner(t, params)
	bc := consensus.New(params)

	const blockCount = 20
	// Closed when the writer returns, including through t.Fatalf
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		lastHeight := uint64(0)
		for lastHeight < blockCount {
			select {
			case <-done:
				return
			default:
			}
			view := bc.View()
			if view.Height < lastHeight {
				t.Errorf("TestBlockchainConcurrentReads: height went back from %d to %d", lastHeight, view.Height)
				return
			}
			if uint64(len(bc.Blocks())) < view.Height {
				t.Errorf("TestBlockchainConcurrentReads: view is ahead of the blocks")
				return
			}
			lastHeight = view.Height
		}
	}()

	func() {
		defer close(done)
		for i := 0; i < blockCount; i++ {
			miner.addBlock(bc)
		}
	}()
	wg.Wait()
}
