package inbox

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Sushmit94/solana-project/internal/core"
	"go.uber.org/zap"
)

// DirectorySource reads .eml files from a directory. The file name without
// extension becomes the message ID.
type DirectorySource struct {
	dir    string
	logger *zap.Logger
}

// NewDirectorySource creates an inbox provider over dir
func NewDirectorySource(dir string, logger *zap.Logger) *DirectorySource {
	return &DirectorySource{dir: dir, logger: logger}
}

// FetchMessages implements core.MessageSource. Files are returned newest
// first by modification time; unparsable files are skipped.
func (d *DirectorySource) FetchMessages(ctx context.Context, limit int) ([]core.Message, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", d.dir, err)
	}

	type candidate struct {
		name    string
		modTime int64
	}
	var files []candidate
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".eml") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, candidate{e.Name(), info.ModTime().UnixNano()})
	}
	sort.SliceStable(files, func(i, j int) bool {
		if files[i].modTime == files[j].modTime {
			return files[i].name > files[j].name
		}
		return files[i].modTime > files[j].modTime
	})

	out := make([]core.Message, 0, len(files))
	for _, f := range files {
		if limit > 0 && len(out) >= limit {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw, err := os.ReadFile(filepath.Join(d.dir, f.name))
		if err != nil {
			d.logger.Warn("Failed to read message file", zap.String("file", f.name), zap.Error(err))
			continue
		}
		msg, err := ParseMessage(strings.TrimSuffix(f.name, filepath.Ext(f.name)), raw)
		if err != nil {
			d.logger.Warn("Skipping unparsable message file", zap.String("file", f.name), zap.Error(err))
			continue
		}
		out = append(out, *msg)
	}
	return out, nil
}
