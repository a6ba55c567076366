package core

type FindingSet struct {
	Findings []Finding `json:"findingSet"`
}

type FindingRepository interface {
	Store(findings []Finding) error
	Clear() error
	NewIterator() FindingIterator
	Close() error
}

type FindingIterator interface {
	HasNext() bool
	Next() (FindingSet, error)
	Reset() error
}
