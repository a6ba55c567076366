package scanners

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/unicodeguard/unicodeguard/core"
	"github.com/unicodeguard/unicodeguard/repositories"
)

func newTestStore(t *testing.T) *repositories.JsonWhitelistStore {
	return repositories.NewJsonWhitelistStore(filepath.Join(t.TempDir(), ".unicode_whitelist.json"))
}

func TestNewCodepointIsReportedAndPersisted(t *testing.T) {
	store := newTestStore(t)
	whitelist := core.NewWhitelist()

	findings := []core.Finding{
		{Path: "a.txt", Line: 3, Codepoint: "e9"},
	}

	newFindings, err := ApplyWhitelist(findings, whitelist, store)
	assert.Nil(t, err)
	assert.Len(t, newFindings, 1)

	reloaded, err := store.Load()
	assert.Nil(t, err)
	assert.True(t, reloaded.Contains("a.txt", "e9"))
}

func TestWhitelistedCodepointIsSuppressed(t *testing.T) {
	store := newTestStore(t)
	whitelist := core.NewWhitelist()
	whitelist.Add("a.txt", "e9")

	findings := []core.Finding{
		{Path: "a.txt", Line: 3, Codepoint: "e9"},
	}

	newFindings, err := ApplyWhitelist(findings, whitelist, store)
	assert.Nil(t, err)
	assert.Empty(t, newFindings)
}

func TestDifferentCodepointInSameFileIsStillReported(t *testing.T) {
	store := newTestStore(t)
	whitelist := core.NewWhitelist()
	whitelist.Add("a.txt", "e9")

	findings := []core.Finding{
		{Path: "a.txt", Line: 3, Codepoint: "2014"},
	}

	newFindings, err := ApplyWhitelist(findings, whitelist, store)
	assert.Nil(t, err)
	assert.Len(t, newFindings, 1)
	assert.Equal(t, "2014", newFindings[0].Codepoint)
}

func TestSecondRunIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	whitelist := core.NewWhitelist()

	findings := []core.Finding{
		{Path: "a.txt", Line: 3, Codepoint: "e9"},
		{Path: "b.txt", Line: 1, Codepoint: "2014"},
	}

	first, err := ApplyWhitelist(findings, whitelist, store)
	assert.Nil(t, err)
	assert.Len(t, first, 2)

	// Fresh scan with identical content against the persisted store.
	reloaded, err := store.Load()
	assert.Nil(t, err)
	second, err := ApplyWhitelist(findings, reloaded, store)
	assert.Nil(t, err)
	assert.Empty(t, second)
}

func TestFindingStaysVisibleWhenStoreWriteFails(t *testing.T) {
	// A store path inside a directory that does not exist makes every save fail.
	store := repositories.NewJsonWhitelistStore(
		filepath.Join(t.TempDir(), "missing", ".unicode_whitelist.json"))
	whitelist := core.NewWhitelist()

	findings := []core.Finding{
		{Path: "a.txt", Line: 3, Codepoint: "e9"},
	}

	newFindings, err := ApplyWhitelist(findings, whitelist, store)
	assert.NotNil(t, err)
	// Reported before the write attempt, so the finding is not lost.
	assert.Len(t, newFindings, 1)
	assert.Equal(t, "e9", newFindings[0].Codepoint)
}

func TestSameCodepointOnLaterLineIsReportedOnce(t *testing.T) {
	store := newTestStore(t)
	whitelist := core.NewWhitelist()

	findings := []core.Finding{
		{Path: "a.txt", Line: 3, Codepoint: "e9"},
		{Path: "a.txt", Line: 7, Codepoint: "e9"},
	}

	newFindings, err := ApplyWhitelist(findings, whitelist, store)
	assert.Nil(t, err)
	assert.Len(t, newFindings, 1)
	assert.Equal(t, 3, newFindings[0].Line)
}
