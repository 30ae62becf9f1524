package domain

// IndexState is the lifecycle state of the vector index.
type IndexState int

const (
	// IndexUninitialized is the state before seeding starts.
	IndexUninitialized IndexState = iota

	// IndexSeeding means the placeholder entry is being embedded.
	IndexSeeding

	// IndexReady means the index accepts inserts and searches.
	IndexReady

	// IndexFailed means seeding failed; the index never becomes ready.
	IndexFailed
)

// String returns the string representation.
func (s IndexState) String() string {
	switch s {
	case IndexUninitialized:
		return "uninitialized"
	case IndexSeeding:
		return "seeding"
	case IndexReady:
		return "ready"
	case IndexFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// IsReady returns true if the index can serve requests.
func (s IndexState) IsReady() bool {
	return s == IndexReady
}

// IndexStatus is a snapshot of the index for status reporting.
type IndexStatus struct {
	// State is the lifecycle state.
	State IndexState

	// Entries is the number of stored entries, including the seed.
	Entries int

	// Dimensions is the fixed vector size, 0 until seeded.
	Dimensions int

	// Err is the seeding failure, set only in IndexFailed.
	Err error
}
