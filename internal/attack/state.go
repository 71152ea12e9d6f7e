package attack

import "github.com/kryvavyipotii/ripemd160attack/internal/digest"

// State bundles a digest hasher, the current base message, and a transform.
// It is mutable only via SetMessage and via transform stepping. Each worker
// owns a deep clone; State is never shared across goroutines.
type State struct {
	newHasher func() digest.Hasher
	hasher    digest.Hasher

	Message   string
	Transform Transform
}

// NewState constructs a State. newHasher is called once here and again on
// every Clone so each State owns a private hasher instance.
func NewState(newHasher func() digest.Hasher, message string, tr Transform) *State {
	return &State{
		newHasher: newHasher,
		hasher:    newHasher(),
		Message:   message,
		Transform: tr,
	}
}

// Clone returns a deep, independent copy: a fresh hasher and a cloned
// transform (own PRNG or counter), sharing the current base message.
func (s *State) Clone() *State {
	return &State{
		newHasher: s.newHasher,
		hasher:    s.newHasher(),
		Message:   s.Message,
		Transform: s.Transform.Clone(),
	}
}

// SetMessage replaces the base message candidates are derived from.
func (s *State) SetMessage(message string) {
	s.Message = message
}

// Next asks the transform for the next candidate derived from the current
// base message and hashes it. iteration is carried into the result for
// logging only.
func (s *State) Next(iteration uint64) MessageHash {
	candidate := s.Transform.Next(s.Message)
	return NewMessageHash(s.hasher, candidate, iteration)
}
