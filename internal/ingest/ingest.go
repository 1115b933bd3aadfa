// Package ingest reads collaborator-produced batch files: raw posting
// dumps in NDJSON and company enrichment patches in YAML. It does no
// normalization of its own; malformed lines are logged and skipped so one
// bad record never sinks a batch.
package ingest

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/rangapin/hr-hiring-signals/internal/domain"
)

// Source delivers one batch of raw postings. File dumps are the only
// implementation today; a live collector would slot in behind the same
// interface.
type Source interface {
	Name() string
	Postings(ctx context.Context) ([]domain.RawPosting, error)
}

// FileSource reads newline-delimited JSON, one RawPosting per line.
type FileSource struct {
	path string
	log  *zap.Logger
}

func NewFileSource(path string, log *zap.Logger) *FileSource {
	return &FileSource{path: path, log: log}
}

func (s *FileSource) Name() string { return s.path }

func (s *FileSource) Postings(ctx context.Context) ([]domain.RawPosting, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open batch %s: %w", s.path, err)
	}
	defer f.Close()
	return s.decode(ctx, f)
}

func (s *FileSource) decode(ctx context.Context, r io.Reader) ([]domain.RawPosting, error) {
	var out []domain.RawPosting
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for sc.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw := sc.Bytes()
		if len(raw) == 0 {
			continue
		}
		var p domain.RawPosting
		if err := json.Unmarshal(raw, &p); err != nil {
			s.log.Warn("skipping malformed posting line",
				zap.String("file", s.path),
				zap.Int("line", line),
				zap.Error(err))
			continue
		}
		out = append(out, p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read batch %s: %w", s.path, err)
	}
	return out, nil
}
