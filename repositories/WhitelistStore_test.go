package repositories

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/unicodeguard/unicodeguard/core"
)

func TestLoadMissingFileReturnsEmptyWhitelist(t *testing.T) {
	store := NewJsonWhitelistStore(filepath.Join(t.TempDir(), ".unicode_whitelist.json"))

	whitelist, err := store.Load()
	assert.Nil(t, err)
	assert.Equal(t, 0, whitelist.FileCount())
}

func TestLoadCorruptFileFailsWithoutOverwriting(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".unicode_whitelist.json")
	err := os.WriteFile(path, []byte("{not json"), 0644)
	assert.Nil(t, err)

	store := NewJsonWhitelistStore(path)
	_, err = store.Load()
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")

	// The corrupt file must still be there untouched.
	data, err := os.ReadFile(path)
	assert.Nil(t, err)
	assert.Equal(t, "{not json", string(data))
}

func TestSaveAndReloadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".unicode_whitelist.json")
	store := NewJsonWhitelistStore(path)

	whitelist := core.NewWhitelist()
	whitelist.Add("electrum/foo.py", "e9")
	whitelist.Add("electrum/foo.py", "2014")
	err := store.Save(whitelist)
	assert.Nil(t, err)

	reloaded, err := store.Load()
	assert.Nil(t, err)
	assert.True(t, reloaded.Contains("electrum/foo.py", "e9"))
	assert.True(t, reloaded.Contains("electrum/foo.py", "2014"))
	assert.False(t, reloaded.Contains("electrum/foo.py", "41"))
}

func TestLoadToleratesMalformedEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".unicode_whitelist.json")
	raw := map[string]interface{}{
		"a.txt": []string{"e9"},
		"b.txt": "not-an-array",
	}
	data, err := json.Marshal(raw)
	assert.Nil(t, err)
	assert.Nil(t, os.WriteFile(path, data, 0644))

	store := NewJsonWhitelistStore(path)
	whitelist, err := store.Load()
	assert.Nil(t, err)
	assert.True(t, whitelist.Contains("a.txt", "e9"))
	assert.False(t, whitelist.Contains("b.txt", "e9"))
}

func TestSaveNeverDropsKeysFromTheLoadedStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".unicode_whitelist.json")
	raw := `{"gone.py": [], "bad.py": "not-an-array", "kept.py": ["e9"]}`
	assert.Nil(t, os.WriteFile(path, []byte(raw), 0644))

	store := NewJsonWhitelistStore(path)
	whitelist, err := store.Load()
	assert.Nil(t, err)

	// An unrelated new finding triggers the rewrite.
	whitelist.Add("kept.py", "2014")
	assert.Nil(t, store.Save(whitelist))

	data, err := os.ReadFile(path)
	assert.Nil(t, err)
	var saved map[string]interface{}
	assert.Nil(t, json.Unmarshal(data, &saved))
	assert.Contains(t, saved, "gone.py")
	assert.Contains(t, saved, "bad.py")
	assert.Contains(t, saved, "kept.py")
}

func TestSaveLeavesNoTempFilesBehind(t *testing.T) {
	dir := t.TempDir()
	store := NewJsonWhitelistStore(filepath.Join(dir, ".unicode_whitelist.json"))

	whitelist := core.NewWhitelist()
	whitelist.Add("a.txt", "e9")
	assert.Nil(t, store.Save(whitelist))

	entries, err := os.ReadDir(dir)
	assert.Nil(t, err)
	assert.Len(t, entries, 1)
}
