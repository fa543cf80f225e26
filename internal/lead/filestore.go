package lead

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"github.com/jamshidbekman/rivojbot/core/logger"
	"github.com/jamshidbekman/rivojbot/internal/metrics"
)

// FileStore keeps leads in a JSON Lines file, one record per line. All
// appends go through a single mutex so ids stay gapless and lines never
// interleave.
type FileStore struct {
	path string
	now  func() time.Time

	mu     sync.Mutex
	nextID int64
}

// FileOption customizes a FileStore.
type FileOption func(*FileStore)

// WithClock overrides the capture clock.
func WithClock(now func() time.Time) FileOption {
	return func(s *FileStore) {
		if now != nil {
			s.now = now
		}
	}
}

// OpenFileStore prepares the store at path. A legacy JSON array file is
// rewritten as JSON Lines and an unterminated trailing line left by a crash
// is cut off. Malformed records are logged and skipped; they never keep the
// store from opening.
func OpenFileStore(path string, opts ...FileOption) (*FileStore, error) {
	s := &FileStore{path: path, now: time.Now, nextID: 1}
	for _, opt := range opts {
		opt(s)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStorageWrite, err)
		}
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageRead, err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		leads, err := s.migrateLegacy(trimmed)
		if errors.Is(err, ErrStorageRead) {
			if err := s.quarantine(err); err != nil {
				return nil, err
			}
			return s, nil
		}
		if err != nil {
			return nil, err
		}
		s.nextID = maxID(leads) + 1
		return s, nil
	}

	if err := s.repairTail(data); err != nil {
		return nil, err
	}
	leads, err := s.LoadAll(context.Background())
	if err != nil {
		return nil, err
	}
	s.nextID = maxID(leads) + 1
	return s, nil
}

// Path returns the backing file location.
func (s *FileStore) Path() string { return s.path }

// Append assigns the next id and the capture time, then writes and fsyncs
// one line before returning.
func (s *FileStore) Append(ctx context.Context, l Lead) (Lead, error) {
	if err := l.Validate(); err != nil {
		return Lead{}, err
	}
	if err := ctx.Err(); err != nil {
		return Lead{}, fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	l = l.normalized()
	l.ID = s.nextID
	l.CapturedAt = s.now().UTC()

	line, err := json.Marshal(l)
	if err != nil {
		return Lead{}, fmt.Errorf("%w: encode: %w", ErrStorageWrite, err)
	}
	if err := appendLine(s.path, line); err != nil {
		logger.Error(ctx, logger.CompLeads, "lead.store.fail",
			slog.String("status", "fail"),
			slog.String("driver", "file"),
			slog.String("path", s.path),
			logger.Err(err),
		)
		return Lead{}, fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	s.nextID++
	return l, nil
}

// LoadAll returns every lead in insertion order. A missing file is empty.
func (s *FileStore) LoadAll(ctx context.Context) ([]Lead, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageRead, err)
	}
	defer f.Close()

	leads, bad, err := decodeLines(f)
	if err != nil {
		return nil, err
	}
	if len(bad) > 0 {
		metrics.LeadStoreFailures.WithLabelValues("read").Inc()
		logger.Error(ctx, logger.CompLeads, "lead.store.read_fail",
			slog.String("status", "fail"),
			slog.String("driver", "file"),
			slog.String("path", s.path),
			slog.Int("skipped", len(bad)),
			slog.String("lines", fmt.Sprint(bad)),
			logger.Err(ErrStorageRead),
		)
	}
	return leads, nil
}

// decodeLines parses one lead per line. Lines that do not parse are skipped
// and their 1-based numbers returned in bad.
func decodeLines(r io.Reader) (leads []Lead, bad []int, err error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for sc.Scan() {
		n++
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}
		var l Lead
		if json.Unmarshal(raw, &l) != nil {
			bad = append(bad, n)
			continue
		}
		leads = append(leads, l)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrStorageRead, err)
	}
	return leads, bad, nil
}

// quarantine moves an unreadable file aside so the store starts empty.
func (s *FileStore) quarantine(cause error) error {
	aside := fmt.Sprintf("%s.corrupt-%d", s.path, s.now().Unix())
	if err := os.Rename(s.path, aside); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	metrics.LeadStoreFailures.WithLabelValues("read").Inc()
	logger.Error(context.Background(), logger.CompLeads, "lead.store.read_fail",
		slog.String("status", "fail"),
		slog.String("driver", "file"),
		slog.String("path", s.path),
		slog.String("moved_to", aside),
		logger.Err(cause),
	)
	return nil
}

func appendLine(path string, line []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// repairTail truncates a final line that has no newline and does not parse.
func (s *FileStore) repairTail(data []byte) error {
	if len(data) == 0 || data[len(data)-1] == '\n' {
		return nil
	}
	cut := bytes.LastIndexByte(data, '\n') + 1
	tail := bytes.TrimSpace(data[cut:])
	var probe Lead
	if len(tail) == 0 || json.Unmarshal(tail, &probe) == nil {
		// Complete record that only lacks its newline.
		f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrStorageWrite, err)
		}
		defer f.Close()
		if _, err := f.Write([]byte{'\n'}); err != nil {
			return fmt.Errorf("%w: %w", ErrStorageWrite, err)
		}
		return nil
	}
	if err := os.Truncate(s.path, int64(cut)); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	logger.Warn(context.Background(), logger.CompLeads, "lead.store.repair",
		slog.String("path", s.path),
		slog.Int("dropped_bytes", len(data)-cut),
	)
	return nil
}

// migrateLegacy converts a JSON array file into JSON Lines in place.
func (s *FileStore) migrateLegacy(data []byte) ([]Lead, error) {
	var leads []Lead
	if err := json.Unmarshal(data, &leads); err != nil {
		return nil, fmt.Errorf("%w: legacy array: %w", ErrStorageRead, err)
	}

	var buf bytes.Buffer
	for i := range leads {
		leads[i] = leads[i].normalized()
		line, err := json.Marshal(leads[i])
		if err != nil {
			return nil, fmt.Errorf("%w: encode: %w", ErrStorageWrite, err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return nil, fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	logger.Info(context.Background(), logger.CompLeads, "lead.store.migrate",
		slog.String("status", "ok"),
		slog.String("path", s.path),
		slog.Int("count", len(leads)),
	)
	return leads, nil
}

func maxID(leads []Lead) int64 {
	var m int64
	for _, l := range leads {
		if l.ID > m {
			m = l.ID
		}
	}
	return m
}
