// Package attack implements the shared attack-state abstraction, the three
// message-mutation transforms, and the parallel brute-force and birthday
// search engines.
package attack

import "github.com/kryvavyipotii/ripemd160attack/internal/digest"

// MessageHash pairs a message with its digest. Immutable once constructed.
type MessageHash struct {
	Message string
	Hash    digest.Digest

	// Iteration is the trial number this MessageHash was produced on.
	// Carried for logging only; it plays no role in equality or collision.
	Iteration uint64
}

// NewMessageHash hashes message with h and pairs the result.
func NewMessageHash(h digest.Hasher, message string, iteration uint64) MessageHash {
	return MessageHash{
		Message:   message,
		Hash:      h.Hash([]byte(message)),
		Iteration: iteration,
	}
}

// CollidesWith reports whether mh and other collide under s: their messages
// differ and their hashes agree on the trailing s bytes.
func (mh MessageHash) CollidesWith(other MessageHash, s int) bool {
	if mh.Message == other.Message {
		return false
	}
	return mh.Hash.EqualUnder(other.Hash, s)
}
