package utils

import (
	"fmt"

	"github.com/unicodeguard/unicodeguard/core"
)

// MockFindingRepository is an in-memory core.FindingRepository for tests.
type MockFindingRepository struct {
	Findings []core.Finding
}

func (m *MockFindingRepository) Store(findings []core.Finding) error {
	m.Findings = append(m.Findings, findings...)
	return nil
}

func (m *MockFindingRepository) Clear() error {
	m.Findings = nil
	return nil
}

func (m *MockFindingRepository) Close() error {
	return nil
}

func (m *MockFindingRepository) NewIterator() core.FindingIterator {
	copiedFindings := make([]core.Finding, len(m.Findings))
	copy(copiedFindings, m.Findings)

	return &MockFindingIterator{
		position: 0,
		sets:     []core.FindingSet{{Findings: copiedFindings}},
	}
}

// MockFindingIterator is a mock implementation of core.FindingIterator.
type MockFindingIterator struct {
	position int
	sets     []core.FindingSet
}

func (m *MockFindingIterator) Reset() error {
	m.position = 0
	return nil
}

func (m *MockFindingIterator) HasNext() bool {
	return m.position < len(m.sets)
}

func (m *MockFindingIterator) Next() (core.FindingSet, error) {
	if !m.HasNext() {
		return core.FindingSet{}, fmt.Errorf("no more findings")
	}
	findingSet := m.sets[m.position]
	m.position++
	return findingSet, nil
}
