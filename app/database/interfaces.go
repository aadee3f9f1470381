package database

// Publications is the ledger of first sightings keyed by slug.
type Publications interface {
	// RecordPublication inserts p unless its slug is already known and
	// reports whether a row was written.
	RecordPublication(p Publication) (bool, error)
	ListPublications(limit int) ([]Publication, error)
	GetPublicationCount() (int, error)
}

// States holds small named markers that survive restarts.
type States interface {
	GetState(key string) (string, bool, error)
	SetState(key, value string) error
}

var (
	_ Publications = (*PublicationRepository)(nil)
	_ States       = (*StateStore)(nil)
)
