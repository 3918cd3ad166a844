package chainstore

import (
	"bytes"
	"encoding/binary"

	"github.com/kaspanet/ledgerd/domain/consensus/model"
	"github.com/kaspanet/ledgerd/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgerd/domain/consensus/utils/serialization"
	"github.com/kaspanet/ledgerd/infrastructure/db/database"
	"github.com/pkg/errors"
)

var blocksBucket = database.MakeBucket([]byte("blocks"))
var utxosBucket = database.MakeBucket([]byte("utxos"))
var countKey = database.MakeBucket(nil).Key([]byte("blocks-count"))

// ErrUnexpectedHeight indicates a block was stored out of order
var ErrUnexpectedHeight = errors.New("unexpected block height")

// ChainStore persists a chain into a database.Database: every block by its
// height and every unspent output by its hash
type ChainStore struct {
	db database.Database
}

// Compile time check that *ChainStore implements model.BlockchainStore
var _ model.BlockchainStore = (*ChainStore)(nil)

// New instantiates a new ChainStore
func New(db database.Database) *ChainStore {
	return &ChainStore{db: db}
}

// StoreBlock writes block at height and applies delta to the stored UTXO
// set, all in a single database transaction. height must equal the number
// of blocks already stored.
func (cs *ChainStore) StoreBlock(height uint64, block *externalapi.DomainBlock, delta *externalapi.UTXODelta) error {
	dbTx, err := cs.db.Begin()
	if err != nil {
		return err
	}
	defer dbTx.RollbackUnlessClosed()

	count, err := blockCount(dbTx)
	if err != nil {
		return err
	}
	if height != count {
		return errors.Wrapf(ErrUnexpectedHeight, "cannot store a block at height %d when %d blocks are stored",
			height, count)
	}

	var blockBytes bytes.Buffer
	err = serialization.SerializeBlock(&blockBytes, block)
	if err != nil {
		return err
	}
	err = dbTx.Put(blockKey(height), blockBytes.Bytes())
	if err != nil {
		return err
	}

	for outputHash := range delta.Consumed {
		outputHash := outputHash
		err = dbTx.Delete(utxoKey(&outputHash))
		if err != nil {
			return err
		}
	}
	for outputHash, output := range delta.Produced {
		outputHash := outputHash
		var outputBytes bytes.Buffer
		err = serialization.SerializeOutput(&outputBytes, output)
		if err != nil {
			return err
		}
		err = dbTx.Put(utxoKey(&outputHash), outputBytes.Bytes())
		if err != nil {
			return err
		}
	}

	err = dbTx.Put(countKey, serializeBlockCount(count+1))
	if err != nil {
		return err
	}

	err = dbTx.Commit()
	if err != nil {
		return err
	}
	log.Debugf("Stored block at height %d (%d UTXOs removed, %d added)",
		height, len(delta.Consumed), len(delta.Produced))
	return nil
}

// BlockCount returns the number of stored blocks
func (cs *ChainStore) BlockCount() (uint64, error) {
	return blockCount(cs.db)
}

// Block returns the block stored at height. It returns
// database.ErrNotFound if there is none.
func (cs *ChainStore) Block(height uint64) (*externalapi.DomainBlock, error) {
	blockBytes, err := cs.db.Get(blockKey(height))
	if err != nil {
		return nil, err
	}
	block, err := serialization.DeserializeBlock(bytes.NewReader(blockBytes))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to deserialize the block at height %d", height)
	}
	return block, nil
}

// Blocks returns all stored blocks, ordered by height
func (cs *ChainStore) Blocks() ([]*externalapi.DomainBlock, error) {
	count, err := cs.BlockCount()
	if err != nil {
		return nil, err
	}
	blocks := make([]*externalapi.DomainBlock, count)
	for height := range blocks {
		blocks[height], err = cs.Block(uint64(height))
		if err != nil {
			return nil, err
		}
	}
	return blocks, nil
}

// UTXOSet reads the whole stored UTXO set
func (cs *ChainStore) UTXOSet() (externalapi.UTXOSet, error) {
	cursor, err := cs.db.Cursor(utxosBucket)
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	utxoSet := make(externalapi.UTXOSet)
	for cursor.Next() {
		key, err := cursor.Key()
		if err != nil {
			return nil, err
		}
		outputHash, err := externalapi.NewDomainHashFromByteSlice(key.Suffix())
		if err != nil {
			return nil, errors.Wrapf(err, "malformed UTXO key %s", key)
		}
		outputBytes, err := cursor.Value()
		if err != nil {
			return nil, err
		}
		output, err := serialization.DeserializeOutput(bytes.NewReader(outputBytes))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to deserialize UTXO %s", outputHash)
		}
		utxoSet[*outputHash] = output
	}
	return utxoSet, nil
}

func blockKey(height uint64) *database.Key {
	var heightBytes [8]byte
	binary.BigEndian.PutUint64(heightBytes[:], height)
	return blocksBucket.Key(heightBytes[:])
}

func utxoKey(outputHash *externalapi.DomainHash) *database.Key {
	return utxosBucket.Key(outputHash.ByteSlice())
}

func blockCount(dataAccessor database.DataAccessor) (uint64, error) {
	exists, err := dataAccessor.Has(countKey)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, nil
	}
	countBytes, err := dataAccessor.Get(countKey)
	if err != nil {
		return 0, err
	}
	return deserializeBlockCount(countBytes)
}

func serializeBlockCount(count uint64) []byte {
	var countBytes [8]byte
	binary.LittleEndian.PutUint64(countBytes[:], count)
	return countBytes[:]
}

func deserializeBlockCount(countBytes []byte) (uint64, error) {
	if len(countBytes) != 8 {
		return 0, errors.Errorf("block count is %d bytes long instead of 8", len(countBytes))
	}
	return binary.LittleEndian.Uint64(countBytes), nil
}
