package attack

// ResultKind tags the variant of an AttackResult.
type ResultKind int

const (
	PreimageSuccess ResultKind = iota
	CollisionSuccess
	PreimageFailure
	GeneralFailure
)

func (k ResultKind) String() string {
	switch k {
	case PreimageSuccess:
		return "PreimageSuccess"
	case CollisionSuccess:
		return "CollisionSuccess"
	case PreimageFailure:
		return "PreimageFailure"
	case GeneralFailure:
		return "GeneralFailure"
	default:
		return "Unknown"
	}
}

// metricLabel is the snake_case outcome label RunsTotal is keyed by.
func (k ResultKind) metricLabel() string {
	switch k {
	case PreimageSuccess:
		return "preimage_success"
	case CollisionSuccess:
		return "collision_success"
	case PreimageFailure:
		return "preimage_failure"
	case GeneralFailure:
		return "general_failure"
	default:
		return "unknown"
	}
}

// Result is the tagged-union outcome of an engine invocation. Success kinds
// are terminal. Only the fields relevant to Kind are populated.
type Result struct {
	Kind Kind

	Preimage   MessageHash
	FirstHash  MessageHash
	SecondHash MessageHash

	Reason string

	// Iterations is the number of trials performed by the invocation that
	// produced this result.
	Iterations uint64
}

// Kind is an alias retained for readability at call sites (attack.Kind).
type Kind = ResultKind

// NewPreimageSuccess builds a terminal PreimageSuccess result.
func NewPreimageSuccess(mh MessageHash, iterations uint64) Result {
	return Result{Kind: PreimageSuccess, Preimage: mh, Iterations: iterations}
}

// NewCollisionSuccess builds a terminal CollisionSuccess result.
func NewCollisionSuccess(a, b MessageHash, iterations uint64) Result {
	return Result{Kind: CollisionSuccess, FirstHash: a, SecondHash: b, Iterations: iterations}
}

// NewPreimageFailure builds a PreimageFailure result carrying the last
// attempted candidate.
func NewPreimageFailure(mh MessageHash, iterations uint64) Result {
	return Result{Kind: PreimageFailure, Preimage: mh, Iterations: iterations}
}

// NewGeneralFailure builds a GeneralFailure result with a human-readable
// reason ("Failed to find preimage", "Failed to find collision", "Attack
// terminated").
func NewGeneralFailure(reason string, iterations uint64) Result {
	return Result{Kind: GeneralFailure, Reason: reason, Iterations: iterations}
}

// Success reports whether the result is a terminal success.
func (r Result) Success() bool {
	return r.Kind == PreimageSuccess || r.Kind == CollisionSuccess
}
