// Package encryption implements SAFE authenticated encryption and
// decryption on top of the generic sponge engine: absorb a shared secret
// and nonce, squeeze a keystream, absorb the message, and squeeze an
// authentication element.
package encryption

import (
	"github.com/vybium/safe/pkg/safe/core"
	"github.com/vybium/safe/pkg/safe/sponge"
)

// EncryptionCap extends PermutationCap with the subtraction and equality
// operations encryption needs: subtraction to recover the message during
// decryption, and equality to check the authentication element.
//
// Subtract and IsEqual live on the capability, not on T, for the same
// circuit-friendliness reason Add does: a circuit-building capability can
// append constraints during these calls instead of doing native arithmetic.
type EncryptionCap[T any] interface {
	sponge.PermutationCap[T]

	// Subtract returns minuend-subtrahend in T.
	Subtract(minuend, subtrahend T) T

	// IsEqual reports whether a and b are the same element.
	IsEqual(a, b T) bool
}

// ioPattern returns the canonical SAFE encryption IO-pattern for a message
// of the given length:
//
//	[Absorb(2), Absorb(1), Squeeze(messageLen), Absorb(messageLen), Squeeze(1)]
//
// absorbing the shared secret and nonce, squeezing a keystream the length
// of the message, absorbing the (plain or recovered) message, and squeezing
// a single authentication element.
func ioPattern(messageLen int) core.IOPattern {
	return core.IOPattern{
		core.Absorb(2),
		core.Absorb(1),
		core.Squeeze(messageLen),
		core.Absorb(messageLen),
		core.Squeeze(1),
	}
}

func prepareSponge[T any](cap EncryptionCap[T], domainSep uint64, messageLen int, sharedSecret [2]T, nonce T, opts ...sponge.Option[T]) (*sponge.Sponge[T], error) {
	sp, err := sponge.Start[T](cap, ioPattern(messageLen), domainSep, opts...)
	if err != nil {
		return nil, err
	}

	if err := sp.Absorb(2, sharedSecret[:]); err != nil {
		return nil, err
	}
	if err := sp.Absorb(1, []T{nonce}); err != nil {
		return nil, err
	}
	if err := sp.Squeeze(messageLen); err != nil {
		return nil, err
	}

	return sp, nil
}

// Encrypt encrypts message under sharedSecret and nonce, domain-separated
// by domainSep, and returns a ciphertext of len(message)+1 elements: the
// masked message followed by one authentication element.
func Encrypt[T any](cap EncryptionCap[T], domainSep uint64, message []T, sharedSecret [2]T, nonce T, opts ...sponge.Option[T]) ([]T, error) {
	messageLen := len(message)

	sp, err := prepareSponge[T](cap, domainSep, messageLen, sharedSecret, nonce, opts...)
	if err != nil {
		return nil, err
	}

	if err := sp.Absorb(messageLen, message); err != nil {
		return nil, err
	}
	if err := sp.Squeeze(1); err != nil {
		return nil, err
	}

	output := sp.Output()
	cipher := make([]T, len(output))
	copy(cipher, output)
	for i := 0; i < messageLen; i++ {
		cipher[i] = cap.Add(cipher[i], message[i])
	}

	if _, err := sp.Finish(); err != nil {
		var zero T
		for i := range cipher {
			cipher[i] = zero
		}
		return nil, err
	}

	sp.Recorder().EncryptionSucceeded(sp.Backend())
	return cipher, nil
}

// Decrypt decrypts cipher under sharedSecret and nonce, domain-separated by
// domainSep, returning the original message if the authentication element
// checks out, or DecryptionFailed otherwise.
func Decrypt[T any](cap EncryptionCap[T], domainSep uint64, cipher []T, sharedSecret [2]T, nonce T, opts ...sponge.Option[T]) ([]T, error) {
	if len(cipher) == 0 {
		return nil, core.NewError(core.ErrorTooFewInputElements, "ciphertext must carry at least the authentication element")
	}
	messageLen := len(cipher) - 1

	sp, err := prepareSponge[T](cap, domainSep, messageLen, sharedSecret, nonce, opts...)
	if err != nil {
		return nil, err
	}

	keystream := sp.Output()
	message := make([]T, messageLen)
	for i := 0; i < messageLen; i++ {
		message[i] = cap.Subtract(cipher[i], keystream[i])
	}

	if err := sp.Absorb(messageLen, message); err != nil {
		zeroSlice(message)
		return nil, err
	}
	if err := sp.Squeeze(1); err != nil {
		zeroSlice(message)
		return nil, err
	}

	out := sp.Output()
	tag := out[messageLen]
	if !cap.IsEqual(tag, cipher[messageLen]) {
		zeroSlice(message)
		_, _ = sp.Finish() // discard result; only its zeroization matters here
		sp.Recorder().DecryptionFailed(sp.Backend(), "authentication-mismatch")
		return nil, core.NewError(core.ErrorDecryptionFailed, "authentication element does not match ciphertext")
	}

	if _, err := sp.Finish(); err != nil {
		zeroSlice(message)
		return nil, err
	}

	return message, nil
}

func zeroSlice[T any](s []T) {
	var zero T
	for i := range s {
		s[i] = zero
	}
}
