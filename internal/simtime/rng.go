package simtime

import (
	"encoding/binary"

	"golang.org/x/crypto/chacha20"
)

// ChaCha8RNG adapts a golang.org/x/crypto/chacha20 keystream into the RNG
// interface. Two ChaCha8RNG built from the same seed produce byte-identical
// sequences of NextUint64, which is the property the simulator's
// reproducibility depends on.
//
// golang.org/x/crypto only exposes the 20-round ChaCha20 construction, not
// the reduced-round ChaCha8/ChaCha12 variants. We keep the 20-round cipher
// and clock it from a zero nonce; the simulator only needs a seeded,
// reproducible stream, not the specific round count.
type ChaCha8RNG struct {
	cipher *chacha20.Cipher
	buf    [8]byte
}

// NewChaCha8RNG seeds a deterministic stream from a 32-byte key. The same
// key always yields the same sequence of draws.
func NewChaCha8RNG(seed [32]byte) *ChaCha8RNG {
	c, err := chacha20.NewUnauthenticatedCipher(seed[:], make([]byte, chacha20.NonceSize))
	if err != nil {
		// chacha20.NewUnauthenticatedCipher only errors on bad key/nonce
		// lengths, both of which are fixed-size arrays here.
		panic("simtime: invalid chacha20 key/nonce size: " + err.Error())
	}
	return &ChaCha8RNG{cipher: c}
}

// NextUint64 returns the next 8 bytes of keystream as a little-endian
// uint64.
func (r *ChaCha8RNG) NextUint64() uint64 {
	for i := range r.buf {
		r.buf[i] = 0
	}
	r.cipher.XORKeyStream(r.buf[:], r.buf[:])
	return binary.LittleEndian.Uint64(r.buf[:])
}
