/*
Package custodytest provides helpers shared by the tests of the custody
packages: address generation, stores and a ledger double.
*/
package custodytest

import (
	"crypto/rand"
	"encoding/binary"
	"testing"

	"github.com/iov-one/custody"
)

// RandomAddr returns a valid random address generated on the fly.
func RandomAddr(t testing.TB) custody.Address {
	t.Helper()
	raw := make([]byte, custody.AddressLength)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("cannot generate a random address: %s", err)
	}
	a := custody.Address(raw)
	if err := a.Validate(); err != nil {
		t.Fatalf("generated address is not a valid address: %s", err)
	}
	return a
}

// NamedAddr returns a deterministic address derived from the given label.
// Tests use it to give identities readable names.
func NamedAddr(label string) custody.Address {
	return custody.NewAddress([]byte(label))
}

// ParseAddress takes an address in a human readable format and returns its
// binary representation, failing the test if it cannot be decoded.
func ParseAddress(t testing.TB, encodedAddress string) custody.Address {
	t.Helper()
	addr, err := custody.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}

// SequenceID returns an encoded sequence value as produced by orm.Sequence.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
