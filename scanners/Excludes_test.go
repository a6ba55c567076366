package scanners

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefixExclusion(t *testing.T) {
	excludes, err := NewExcludeSet([]string{"electrum/locale/"})
	assert.Nil(t, err)

	assert.True(t, excludes.Match("electrum/locale/de.po"))
	assert.False(t, excludes.Match("electrum/wallet.py"))
}

func TestGlobExclusion(t *testing.T) {
	excludes, err := NewExcludeSet([]string{"**/*.po"})
	assert.Nil(t, err)

	assert.True(t, excludes.Match("electrum/locale/de.po"))
	assert.False(t, excludes.Match("electrum/locale/readme.txt"))
}

func TestInvalidGlobIsRejected(t *testing.T) {
	_, err := NewExcludeSet([]string{"[unclosed"})
	assert.NotNil(t, err)
}

func TestDefaultExcludesCoverKnownNoisyPaths(t *testing.T) {
	excludes, err := NewExcludeSet(DefaultExcludePrefixes)
	assert.Nil(t, err)

	assert.True(t, excludes.Match("electrum/locale/fr.po"))
	assert.True(t, excludes.Match("electrum/wordlist/english.txt"))
	assert.True(t, excludes.Match("contrib/android/fastlane/metadata/title.txt"))
	assert.False(t, excludes.Match("electrum/gui/qt/main_window.py"))
}
