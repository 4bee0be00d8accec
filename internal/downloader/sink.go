package downloader

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Sink receives resolved manifests. The dumper only guarantees that the
// paths it proposes have been run through SanitizeFilename component by
// component; persistence is entirely the sink's business.
type Sink interface {
	Write(path string, data []byte) error
}

// DirSink writes manifests under a root directory, creating parent
// directories as needed.
type DirSink struct {
	Root string
}

func (s DirSink) Write(path string, data []byte) error {
	full := filepath.Join(s.Root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0644)
}

var unsafeFilenameChars = regexp.MustCompile(`[\x00\\/:*?"<>|]`)

// SanitizeFilename strips characters that are unsafe in filenames and
// truncates the result to 240 characters.
func SanitizeFilename(name string) string {
	safe := unsafeFilenameChars.ReplaceAllString(name, "")
	safe = strings.TrimSpace(safe)
	for strings.HasPrefix(safe, ".") {
		safe = safe[1:]
	}
	if safe == "" {
		safe = "untitled"
	}
	if runes := []rune(safe); len(runes) > 240 {
		safe = string(runes[:240])
	}
	return safe
}
