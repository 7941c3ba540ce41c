package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gobwas/glob"
)

// FileInfo represents information about a discovered log file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides log file discovery operations
type Discovery struct {
	logger   *slog.Logger
	excluded map[string]struct{}
	include  glob.Glob
}

// NewDiscovery creates a discovery instance that skips files whose
// extension is in excludedExts. Extensions are matched case-insensitively
// and must include the leading dot.
func NewDiscovery(logger *slog.Logger, excludedExts []string) *Discovery {
	if logger == nil {
		logger = slog.Default()
	}
	excluded := make(map[string]struct{}, len(excludedExts))
	for _, ext := range excludedExts {
		excluded[strings.ToLower(ext)] = struct{}{}
	}
	return &Discovery{logger: logger, excluded: excluded}
}

// WithPattern restricts discovery to file names matching the given glob
// pattern. An empty pattern leaves discovery unrestricted.
func (d *Discovery) WithPattern(pattern string) error {
	if pattern == "" {
		d.include = nil
		return nil
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid file pattern %q: %w", pattern, err)
	}
	d.include = g
	return nil
}

// FindLogFiles lists the regular files of a single directory, without
// recursing, excluding files with an excluded extension and, when a
// pattern is set, files whose name does not match it. Results are sorted
// by name so the enumeration order is stable across runs.
func (d *Discovery) FindLogFiles(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if _, skip := d.excluded[ext]; skip {
			d.logger.Debug("excluding file by extension",
				slog.String("file", name),
				slog.String("ext", ext))
			continue
		}
		if d.include != nil && !d.include.Match(name) {
			d.logger.Debug("excluding file by pattern", slog.String("file", name))
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(dir, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	d.logger.Debug("directory scan complete",
		slog.String("dir", dir),
		slog.Int("files", len(files)))

	return files, nil
}

// ReadFileText reads a whole file as text. Byte sequences that are not
// valid UTF-8 are replaced with U+FFFD so downstream scanning never fails
// on encoding problems.
func ReadFileText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return strings.ToValidUTF8(string(data), "�"), nil
}
