// Package codec serializes SAFE ciphertexts and tag inputs to and from raw
// bytes, mirroring bfieldcodec's length-prefixed, element-sequence encoding
// but targeting wire transport of sponge output rather than STARK proof data.
package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/vybium/safe/pkg/safe/field"
)

// ErrorType classifies codec failures.
type ErrorType int

const (
	ErrorEmptySequence ErrorType = iota
	ErrorTruncatedSequence
	ErrorTrailingBytes
	ErrorLengthMismatch
)

func (t ErrorType) String() string {
	switch t {
	case ErrorEmptySequence:
		return "EmptySequence"
	case ErrorTruncatedSequence:
		return "TruncatedSequence"
	case ErrorTrailingBytes:
		return "TrailingBytes"
	case ErrorLengthMismatch:
		return "LengthMismatch"
	default:
		return "Unknown"
	}
}

// Error is a codec failure: a malformed or truncated byte sequence.
type Error struct {
	Type    ErrorType
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("codec error [%s]: %s", e.Type, e.Message)
}

// lengthPrefixSize is the width, in bytes, of the element-count prefix
// written before an encoded element sequence.
const lengthPrefixSize = 8

// EncodeElements serializes a sequence of field elements as an 8-byte
// big-endian length prefix (number of elements) followed by each element's
// 8-byte field.Element.ToBytes encoding (the raw Montgomery-form value,
// little-endian), matching bfieldcodec's length-prefixed slice
// convention but over raw bytes instead of further BFieldElement words.
func EncodeElements(elements []field.Element) []byte {
	out := make([]byte, lengthPrefixSize+len(elements)*8)
	binary.BigEndian.PutUint64(out[:lengthPrefixSize], uint64(len(elements)))
	for i, e := range elements {
		b := e.ToBytes()
		copy(out[lengthPrefixSize+i*8:lengthPrefixSize+(i+1)*8], b[:])
	}
	return out
}

// DecodeElements parses the format produced by EncodeElements, rejecting
// truncated sequences, length-prefix mismatches, and trailing garbage.
func DecodeElements(data []byte) ([]field.Element, error) {
	if len(data) < lengthPrefixSize {
		return nil, Error{ErrorEmptySequence, "sequence shorter than length prefix"}
	}
	count := binary.BigEndian.Uint64(data[:lengthPrefixSize])
	rest := data[lengthPrefixSize:]
	if uint64(len(rest)) < count*8 {
		return nil, Error{ErrorTruncatedSequence, "sequence shorter than declared element count"}
	}
	if uint64(len(rest)) > count*8 {
		return nil, Error{ErrorTrailingBytes, "sequence has trailing bytes past declared element count"}
	}

	elements := make([]field.Element, count)
	for i := range elements {
		var raw [8]byte
		copy(raw[:], rest[i*8:(i+1)*8])
		elements[i] = field.FromBytes(raw)
	}
	return elements, nil
}

// EncodeCiphertext serializes a SAFE ciphertext (message elements followed by
// the authentication tag) to bytes.
func EncodeCiphertext(cipher []field.Element) []byte {
	return EncodeElements(cipher)
}

// DecodeCiphertext parses bytes produced by EncodeCiphertext back into a
// ciphertext element sequence, rejecting any sequence too short to contain
// an authentication tag.
func DecodeCiphertext(data []byte) ([]field.Element, error) {
	cipher, err := DecodeElements(data)
	if err != nil {
		return nil, err
	}
	if len(cipher) == 0 {
		return nil, Error{ErrorLengthMismatch, "ciphertext must contain at least an authentication tag"}
	}
	return cipher, nil
}

// EncodeTagInput wraps a tag-input byte string with its own length prefix,
// letting it travel alongside ciphertext bytes in a single framed message.
func EncodeTagInput(tagInput []byte) []byte {
	out := make([]byte, lengthPrefixSize+len(tagInput))
	binary.BigEndian.PutUint64(out[:lengthPrefixSize], uint64(len(tagInput)))
	copy(out[lengthPrefixSize:], tagInput)
	return out
}

// DecodeTagInput parses the format produced by EncodeTagInput.
func DecodeTagInput(data []byte) ([]byte, error) {
	if len(data) < lengthPrefixSize {
		return nil, Error{ErrorEmptySequence, "sequence shorter than length prefix"}
	}
	length := binary.BigEndian.Uint64(data[:lengthPrefixSize])
	rest := data[lengthPrefixSize:]
	if uint64(len(rest)) < length {
		return nil, Error{ErrorTruncatedSequence, "sequence shorter than declared tag-input length"}
	}
	if uint64(len(rest)) > length {
		return nil, Error{ErrorTrailingBytes, "sequence has trailing bytes past declared tag-input length"}
	}
	out := make([]byte, length)
	copy(out, rest)
	return out, nil
}
