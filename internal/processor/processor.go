// Package processor prints a bounded summary of a chat response document and
// persists the full document as pretty JSON.
package processor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/EphemeralEpoch/smart-book-gist/internal/chat"
)

// maxPreview bounds a choice preview in runes; longer content is cut and
// ellipsis-terminated.
const maxPreview = 400

// SummarizeChoice extracts a bounded preview from one choice entry. The
// extraction strategies run in order: a nested message's content field, a flat
// text field, then the first 400 runes of the choice's JSON rendering. The
// JSON fallback is pre-cut and therefore never picks up an ellipsis. A choice
// that is not an object goes straight to the JSON fallback.
func SummarizeChoice(choice any) string {
	obj, _ := choice.(map[string]any)

	content := ""
	if msg, ok := obj["message"].(map[string]any); ok {
		content, _ = msg["content"].(string)
	} else if _, ok := obj["text"]; ok {
		content, _ = obj["text"].(string)
	} else {
		b, _ := json.Marshal(choice)
		content = truncateRunes(string(b), maxPreview)
	}
	if runeLen(content) <= maxPreview {
		return content
	}
	return truncateRunes(content, maxPreview) + "…"
}

// Summarize writes the human-readable summary of a response document to w.
func Summarize(w io.Writer, doc chat.Document) {
	fmt.Fprintln(w, "\n=== GROQ Response Summary ===")

	obj, isMap := doc.(map[string]any)
	if !isMap {
		fmt.Fprintf(w, "Top-level response is not an object. Type: %T\n", doc)
	} else {
		fmt.Fprintln(w, "Top-level keys:", strings.Join(sortedKeys(obj), ", "))
	}
	if !isMap {
		return
	}

	if choices, ok := obj["choices"].([]any); ok {
		fmt.Fprintf(w, "Choices: %d\n", len(choices))
		for i, ch := range choices {
			if i >= 3 {
				break
			}
			fmt.Fprintf(w, "\n[Choice %d] Preview:\n%s\n", i+1, SummarizeChoice(ch))
		}
	}

	if usage, ok := obj["usage"]; ok && usage != nil {
		// An empty usage object is treated as absent.
		if m, isMap := usage.(map[string]any); !isMap || len(m) > 0 {
			pretty, _ := json.MarshalIndent(usage, "", "  ")
			fmt.Fprintln(w, "\nUsage:")
			fmt.Fprintln(w, string(pretty))
		}
	}

	if _, ok := obj["output"]; ok {
		fmt.Fprintln(w, "\nHas 'output' key")
	}
	if outputs, ok := obj["outputs"]; ok {
		if list, ok := outputs.([]any); ok {
			fmt.Fprintf(w, "\nHas 'outputs' key (len=%d)\n", len(list))
		} else {
			fmt.Fprintln(w, "\nHas 'outputs' key (len=?)")
		}
	}
}

// Save writes the full document as indented JSON, creating parent directories
// as needed and overwriting any existing file. Non-ASCII text is written
// as-is rather than escaped.
func Save(doc chat.Document, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("encode response: %w", err)
	}
	if err := os.WriteFile(abs, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write response: %w", err)
	}
	return abs, nil
}

// ProcessAndSave summarizes to stdout and persists the document to outPath.
func ProcessAndSave(doc chat.Document, outPath string) error {
	Summarize(os.Stdout, doc)
	abs, err := Save(doc, outPath)
	if err != nil {
		return err
	}
	fmt.Printf("\nFull response written to: %s\n", abs)
	fmt.Println("=== End summary ===")
	return nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func runeLen(s string) int { return len([]rune(s)) }

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
