package envfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var managedPairs = []Pair{
	{Key: "SSL_CERT_FILE", Value: "/tmp/bundle.pem"},
	{Key: "REQUESTS_CA_BUNDLE", Value: "/tmp/bundle.pem"},
}

func TestMergePreservesUnmanagedLines(t *testing.T) {
	lines := []string{
		"# api settings",
		"",
		"GROQ_API_KEY=secret",
		"not a key value line",
		"SSL_CERT_FILE=/old/path.pem",
		"OUTPUT_DIR=outputs",
	}

	out := Merge(lines, managedPairs)

	assert.Equal(t, []string{
		"# api settings",
		"",
		"GROQ_API_KEY=secret",
		"not a key value line",
		"SSL_CERT_FILE=/tmp/bundle.pem",
		"OUTPUT_DIR=outputs",
		"REQUESTS_CA_BUNDLE=/tmp/bundle.pem",
	}, out)
}

func TestMergeAppendsMissingKeysInOrder(t *testing.T) {
	out := Merge(nil, managedPairs)
	require.Len(t, out, 2)
	assert.Equal(t, "SSL_CERT_FILE=/tmp/bundle.pem", out[0])
	assert.Equal(t, "REQUESTS_CA_BUNDLE=/tmp/bundle.pem", out[1])
}

func TestMergeManagedKeysAppearOnce(t *testing.T) {
	lines := []string{"A=1", "SSL_CERT_FILE=old", "B=2", "REQUESTS_CA_BUNDLE=old"}
	out := Merge(lines, managedPairs)

	count := 0
	for _, l := range out {
		if strings.HasPrefix(l, "SSL_CERT_FILE=") {
			count++
			assert.Equal(t, "SSL_CERT_FILE=/tmp/bundle.pem", l)
		}
	}
	assert.Equal(t, 1, count)
}

func TestMergeLeavesLaterDuplicatesUntouched(t *testing.T) {
	// Only the first occurrence is rewritten; later duplicates go stale.
	lines := []string{"SSL_CERT_FILE=first", "SSL_CERT_FILE=second"}
	out := Merge(lines, managedPairs)

	assert.Equal(t, "SSL_CERT_FILE=/tmp/bundle.pem", out[0])
	assert.Equal(t, "SSL_CERT_FILE=second", out[1])
}

func TestMergeKeyWithSpacesAroundName(t *testing.T) {
	out := Merge([]string{" SSL_CERT_FILE =old"}, managedPairs)
	assert.Equal(t, "SSL_CERT_FILE=/tmp/bundle.pem", out[0])
}

func TestUpdateWritesMergedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("GROQ_API_KEY=secret\n"), 0o644))

	require.NoError(t, Update(path, managedPairs))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "GROQ_API_KEY=secret\nSSL_CERT_FILE=/tmp/bundle.pem\nREQUESTS_CA_BUNDLE=/tmp/bundle.pem\n", string(b))
}

func TestUpdateMissingFileCreatesIt(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")

	require.NoError(t, Update(path, managedPairs))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "SSL_CERT_FILE=/tmp/bundle.pem\nREQUESTS_CA_BUNDLE=/tmp/bundle.pem\n", string(b))
	_, err = os.Stat(path + BackupSuffix)
	assert.True(t, os.IsNotExist(err), "no backup without a pre-existing file")
}

func TestBackupOnlyOnFirstUpdate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	original := "ORIGINAL=1\n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	require.NoError(t, Update(path, managedPairs))
	require.NoError(t, Update(path, []Pair{{Key: "SSL_CERT_FILE", Value: "/other.pem"}}))

	// The backup still holds the state before the FIRST update.
	b, err := os.ReadFile(path + BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, original, string(b))
}
