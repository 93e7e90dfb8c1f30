// Package envfile merges managed keys into a line-oriented KEY=VALUE file,
// preserving comments, blank lines, malformed lines and unknown keys verbatim.
package envfile

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// BackupSuffix is appended to the env file name for the one-time backup copy.
const BackupSuffix = ".bak"

// Pair is a managed key with its new value. Order matters for appended keys.
type Pair struct {
	Key   string
	Value string
}

// Merge rewrites the first occurrence of each managed key and appends keys
// that were not present. Blank lines, comments and lines without '=' pass
// through unchanged. Later duplicates of a managed key are left untouched;
// the first occurrence wins and subsequent ones go stale.
func Merge(lines []string, pairs []Pair) []string {
	managed := make(map[string]string, len(pairs))
	for _, p := range pairs {
		managed[p.Key] = p.Value
	}

	out := make([]string, 0, len(lines)+len(pairs))
	found := make(map[string]bool, len(pairs))

	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" || strings.HasPrefix(stripped, "#") || !strings.Contains(line, "=") {
			out = append(out, line)
			continue
		}
		key := strings.TrimSpace(line[:strings.Index(line, "=")])
		if v, ok := managed[key]; ok && !found[key] {
			out = append(out, key+"="+v)
			found[key] = true
			continue
		}
		out = append(out, line)
	}

	for _, p := range pairs {
		if !found[p.Key] {
			out = append(out, p.Key+"="+p.Value)
		}
	}
	return out
}

// Update merges pairs into the file at path, backing it up first. The final
// write is a plain write; the setup step is expected to run offline, so no
// atomic rename is attempted here.
func Update(path string, pairs []Pair) error {
	if err := Backup(path); err != nil {
		return err
	}

	var lines []string
	if b, err := os.ReadFile(path); err == nil {
		lines = splitLines(string(b))
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read %s: %w", path, err)
	}

	merged := Merge(lines, pairs)
	content := strings.Join(merged, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Backup copies path to path+BackupSuffix unless the backup already exists.
// The first update therefore keeps a snapshot of the original file; later
// updates never refresh it. A missing env file is not an error.
func Backup(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	bak := path + BackupSuffix
	if _, err := os.Stat(bak); err == nil {
		return nil
	}
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer src.Close()
	dst, err := os.Create(bak)
	if err != nil {
		return fmt.Errorf("create %s: %w", bak, err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("copy to %s: %w", bak, err)
	}
	return nil
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
