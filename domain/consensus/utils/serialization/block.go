package serialization

import (
	"io"

	"github.com/kaspanet/ledgerd/domain/consensus/model/externalapi"
)

// SerializeHeader writes the header fields to w in their canonical order
func SerializeHeader(w io.Writer, header *externalapi.DomainBlockHeader) error {
	return WriteElements(w, header.TimeInMilliseconds, header.Nonce, &header.PrevBlockHash,
		&header.HashMerkleRoot, &header.Target)
}

// DeserializeHeader reads a header written by SerializeHeader
func DeserializeHeader(r io.Reader) (*externalapi.DomainBlockHeader, error) {
	header := &externalapi.DomainBlockHeader{}
	err := ReadElements(r, &header.TimeInMilliseconds, &header.Nonce, &header.PrevBlockHash,
		&header.HashMerkleRoot, &header.Target)
	if err != nil {
		return nil, err
	}
	return header, nil
}

// SerializeOutput writes the output fields to w in their canonical order
func SerializeOutput(w io.Writer, output *externalapi.DomainTransactionOutput) error {
	return WriteElements(w, output.Value, output.UniqueID, output.PublicKey)
}

// DeserializeOutput reads an output written by SerializeOutput
func DeserializeOutput(r io.Reader) (*externalapi.DomainTransactionOutput, error) {
	output := &externalapi.DomainTransactionOutput{}
	err := ReadElements(r, &output.Value, &output.UniqueID, &output.PublicKey)
	if err != nil {
		return nil, err
	}
	return output, nil
}

// SerializeInput writes the input fields to w in their canonical order
func SerializeInput(w io.Writer, input *externalapi.DomainTransactionInput) error {
	return WriteElements(w, &input.PreviousOutputHash, input.Signature)
}

// DeserializeInput reads an input written by SerializeInput
func DeserializeInput(r io.Reader) (*externalapi.DomainTransactionInput, error) {
	input := &externalapi.DomainTransactionInput{}
	err := ReadElements(r, &input.PreviousOutputHash, &input.Signature)
	if err != nil {
		return nil, err
	}
	return input, nil
}

// SerializeTransaction writes the transaction to w. Inputs and outputs keep their order.
func SerializeTransaction(w io.Writer, tx *externalapi.DomainTransaction) error {
	err := WriteElement(w, uint64(len(tx.Inputs)))
	if err != nil {
		return err
	}
	for _, input := range tx.Inputs {
		err = SerializeInput(w, input)
		if err != nil {
			return err
		}
	}

	return SerializeOutputs(w, tx.Outputs)
}

// SerializeOutputs writes a length-prefixed list of outputs to w
func SerializeOutputs(w io.Writer, outputs []*externalapi.DomainTransactionOutput) error {
	err := WriteElement(w, uint64(len(outputs)))
	if err != nil {
		return err
	}
	for _, output := range outputs {
		err = SerializeOutput(w, output)
		if err != nil {
			return err
		}
	}
	return nil
}

// DeserializeTransaction reads a transaction written by SerializeTransaction
func DeserializeTransaction(r io.Reader) (*externalapi.DomainTransaction, error) {
	inputCount, err := ReadCollectionLength(r)
	if err != nil {
		return nil, err
	}
	inputs := make([]*externalapi.DomainTransactionInput, 0, preallocatedCapacity(inputCount))
	for i := uint64(0); i < inputCount; i++ {
		input, err := DeserializeInput(r)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, input)
	}

	outputCount, err := ReadCollectionLength(r)
	if err != nil {
		return nil, err
	}
	outputs := make([]*externalapi.DomainTransactionOutput, 0, preallocatedCapacity(outputCount))
	for i := uint64(0); i < outputCount; i++ {
		output, err := DeserializeOutput(r)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, output)
	}

	return &externalapi.DomainTransaction{
		Inputs:  inputs,
		Outputs: outputs,
	}, nil
}

// SerializeBlock writes the block header followed by its transactions to w
func SerializeBlock(w io.Writer, block *externalapi.DomainBlock) error {
	err := SerializeHeader(w, block.Header)
	if err != nil {
		return err
	}
	err = WriteElement(w, uint64(len(block.Transactions)))
	if err != nil {
		return err
	}
	for _, tx := range block.Transactions {
		err = SerializeTransaction(w, tx)
		if err != nil {
			return err
		}
	}
	return nil
}

// DeserializeBlock reads a block written by SerializeBlock
func DeserializeBlock(r io.Reader) (*externalapi.DomainBlock, error) {
	header, err := DeserializeHeader(r)
	if err != nil {
		return nil, err
	}
	txCount, err := ReadCollectionLength(r)
	if err != nil {
		return nil, err
	}
	transactions := make([]*externalapi.DomainTransaction, 0, preallocatedCapacity(txCount))
	for i := uint64(0); i < txCount; i++ {
		tx, err := DeserializeTransaction(r)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return &externalapi.DomainBlock{
		Header:       header,
		Transactions: transactions,
	}, nil
}
