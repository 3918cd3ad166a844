package serialization

import (
	"encoding/binary"
	"io"

	"github.com/google/uuid"
	"github.com/kaspanet/ledgerd/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// MaxVarBytesLength is the maximum length of a length-prefixed byte slice
// that ReadVarBytes is willing to allocate.
const MaxVarBytesLength = 1 << 20

// MaxCollectionLength is the maximum number of elements in a serialized
// collection (transactions, inputs, outputs, blocks, UTXOs) that
// ReadCollectionLength is willing to accept.
const MaxCollectionLength = 1 << 24

// maxPreallocatedCollectionLength bounds the capacity reserved for a
// collection before its elements are read. Larger collections grow as
// their elements are decoded, so a length prefix alone can't force a
// large allocation.
const maxPreallocatedCollectionLength = 64

// errNoEncodingForType signifies that there's no encoding for the given type.
var errNoEncodingForType = errors.New("there's no encoding for this type")

var errMalformed = errors.New("errMalformed")

// WriteElement writes the little endian representation of element to w.
func WriteElement(w io.Writer, element interface{}) error {
	// Attempt to write the element based on the concrete type via fast
	// type assertions first.
	switch e := element.(type) {
	case uint8:
		_, err := w.Write([]byte{e})
		return errors.WithStack(err)

	case uint32:
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], e)
		_, err := w.Write(buf[:])
		return errors.WithStack(err)

	case int64:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], uint64(e))
		_, err := w.Write(buf[:])
		return errors.WithStack(err)

	case uint64:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], e)
		_, err := w.Write(buf[:])
		return errors.WithStack(err)

	case bool:
		if e {
			return WriteElement(w, uint8(0x01))
		}
		return WriteElement(w, uint8(0x00))

	case externalapi.DomainHash:
		_, err := w.Write(e.ByteSlice())
		return errors.WithStack(err)

	case *externalapi.DomainHash:
		_, err := w.Write(e.ByteSlice())
		return errors.WithStack(err)

	case uuid.UUID:
		_, err := w.Write(e[:])
		return errors.WithStack(err)

	case []byte:
		return WriteVarBytes(w, e)
	}

	return errors.Wrapf(errNoEncodingForType, "couldn't find a way to write type %T", element)
}

// WriteElements writes multiple items to w. It is equivalent to multiple
// calls to WriteElement.
func WriteElements(w io.Writer, elements ...interface{}) error {
	for _, element := range elements {
		err := WriteElement(w, element)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteVarBytes writes data to w prefixed with its length as a uint64
func WriteVarBytes(w io.Writer, data []byte) error {
	err := WriteElement(w, uint64(len(data)))
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return errors.WithStack(err)
}

// ReadElement reads the next sequence of bytes from r using little endian
// depending on the concrete type of element pointed to.
func ReadElement(r io.Reader, element interface{}) error {
	// Attempt to read the element based on the concrete type via fast
	// type assertions first.
	switch e := element.(type) {
	case *uint8:
		var buf [1]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return errors.WithStack(err)
		}
		*e = buf[0]
		return nil

	case *uint32:
		var buf [4]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return errors.WithStack(err)
		}
		*e = binary.LittleEndian.Uint32(buf[:])
		return nil

	case *int64:
		var buf [8]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return errors.WithStack(err)
		}
		*e = int64(binary.LittleEndian.Uint64(buf[:]))
		return nil

	case *uint64:
		var buf [8]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return errors.WithStack(err)
		}
		*e = binary.LittleEndian.Uint64(buf[:])
		return nil

	case *bool:
		var rv uint8
		err := ReadElement(r, &rv)
		if err != nil {
			return err
		}
		if rv == 0x00 {
			*e = false
		} else if rv == 0x01 {
			*e = true
		} else {
			return errors.Wrapf(errMalformed, "in order to keep serialization canonical, true has to"+
				" always be 0x01")
		}
		return nil

	case *externalapi.DomainHash:
		var buf [externalapi.DomainHashSize]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return errors.WithStack(err)
		}
		*e = *externalapi.NewDomainHashFromByteArray(&buf)
		return nil

	case *uuid.UUID:
		if _, err := io.ReadFull(r, e[:]); err != nil {
			return errors.WithStack(err)
		}
		return nil

	case *[]byte:
		data, err := ReadVarBytes(r)
		if err != nil {
			return err
		}
		*e = data
		return nil
	}

	return errors.Wrapf(errNoEncodingForType, "couldn't find a way to read type %T", element)
}

// ReadElements reads multiple items from r. It is equivalent to multiple
// calls to ReadElement.
func ReadElements(r io.Reader, elements ...interface{}) error {
	for _, element := range elements {
		err := ReadElement(r, element)
		if err != nil {
			return err
		}
	}
	return nil
}

// ReadVarBytes reads a uint64 length prefix followed by that many bytes
func ReadVarBytes(r io.Reader) ([]byte, error) {
	var length uint64
	err := ReadElement(r, &length)
	if err != nil {
		return nil, err
	}
	if length > MaxVarBytesLength {
		return nil, errors.Wrapf(errMalformed, "byte slice of length %d is longer than the maximum of %d",
			length, MaxVarBytesLength)
	}
	data := make([]byte, length)
	_, err = io.ReadFull(r, data)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return data, nil
}

// ReadCollectionLength reads the element count that prefixes a serialized collection
func ReadCollectionLength(r io.Reader) (uint64, error) {
	var length uint64
	err := ReadElement(r, &length)
	if err != nil {
		return 0, err
	}
	if length > MaxCollectionLength {
		return 0, errors.Wrapf(errMalformed, "collection of length %d is longer than the maximum of %d",
			length, MaxCollectionLength)
	}
	return length, nil
}

// preallocatedCapacity returns the capacity to reserve for a collection
// whose length prefix is length
func preallocatedCapacity(length uint64) int {
	if length > maxPreallocatedCollectionLength {
		return maxPreallocatedCollectionLength
	}
	return int(length)
}

// IsMalformedError returns whether the error indicates a malformed data source
func IsMalformedError(err error) bool {
	return errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) || errors.Is(err, errMalformed)
}
