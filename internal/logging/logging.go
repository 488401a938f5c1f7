// Package logging builds leveled loggers and manages per-run JSONL log files.
package logging

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist-go/internal/utils"
)

// Options holds configuration for a leveled logger.
type Options struct {
	Level           log.Level
	Formatter       log.Formatter
	ReportTimestamp bool
	ReportCaller    bool
	Prefix          string
}

// DefaultOptions returns text output at info level.
func DefaultOptions() Options {
	return Options{
		Level:     log.InfoLevel,
		Formatter: log.TextFormatter,
		Prefix:    "tasklist",
	}
}

// New creates a charmbracelet logger writing to w.
func New(w io.Writer, opts Options) *log.Logger {
	if w == nil {
		w = io.Discard
	}
	return log.NewWithOptions(w, log.Options{
		Level:           opts.Level,
		Formatter:       opts.Formatter,
		ReportTimestamp: opts.ReportTimestamp,
		ReportCaller:    opts.ReportCaller,
		Prefix:          opts.Prefix,
	})
}

// ParseFormat maps a config value to a formatter.
func ParseFormat(s string) (log.Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	}
	return log.TextFormatter, fmt.Errorf("unknown log format %q (want text, json or logfmt)", s)
}

// ParseOptions builds Options from config strings.
func ParseOptions(level, format string, timestamps, caller bool) (Options, error) {
	opts := DefaultOptions()
	if strings.TrimSpace(level) != "" {
		lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
		if err != nil {
			return opts, fmt.Errorf("parse log level: %w", err)
		}
		opts.Level = lvl
	}
	f, err := ParseFormat(format)
	if err != nil {
		return opts, err
	}
	opts.Formatter = f
	opts.ReportTimestamp = timestamps
	opts.ReportCaller = caller
	return opts, nil
}

// RunLogger owns the JSONL log file of one run.
type RunLogger struct {
	Dir     string
	RunID   string
	LogPath string
	file    *os.File
}

// NewRunLogger creates <baseDir>/<host-slug>-<hash>/<runid>.jsonl for the
// service at baseURL.
func NewRunLogger(baseDir, baseURL string) (*RunLogger, error) {
	logDir, err := FindLogDir(baseDir, baseURL)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	id := runID()
	logPath := filepath.Join(logDir, id+".jsonl")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	return &RunLogger{
		Dir:     logDir,
		RunID:   id,
		LogPath: logPath,
		file:    file,
	}, nil
}

// Writer returns the underlying log file.
func (r *RunLogger) Writer() io.Writer {
	if r == nil || r.file == nil {
		return io.Discard
	}
	return r.file
}

// Logger returns a JSON logger writing to the run file. Level, caller and
// prefix come from opts; timestamps are always recorded.
func (r *RunLogger) Logger(opts Options) *log.Logger {
	opts.Formatter = log.JSONFormatter
	opts.ReportTimestamp = true
	return New(r.Writer(), opts)
}

// Close closes the log file.
func (r *RunLogger) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	return r.file.Close()
}

// FindLogDir returns the run directory for baseURL without creating it.
// A relative baseDir is resolved against the working directory.
func FindLogDir(baseDir, baseURL string) (string, error) {
	if strings.TrimSpace(baseDir) == "" {
		return "", fmt.Errorf("log base dir is empty")
	}
	if !filepath.IsAbs(baseDir) {
		abs, err := filepath.Abs(baseDir)
		if err != nil {
			return "", fmt.Errorf("resolve log dir: %w", err)
		}
		baseDir = abs
	}
	return filepath.Join(filepath.Clean(baseDir), serviceSlug(baseURL)), nil
}

// serviceSlug names a log directory after the service host, with a short
// hash of the full URL so two services on one host stay apart.
func serviceSlug(baseURL string) string {
	normalized := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	host := normalized
	if u, err := url.Parse(normalized); err == nil && u.Host != "" {
		host = u.Host
	}
	return fmt.Sprintf("%s-%s", utils.Slugify(host, "service"), hashString(normalized))
}

func hashString(input string) string {
	sum := sha1.Sum([]byte(input))
	return hex.EncodeToString(sum[:])[:8]
}

func runID() string {
	return fmt.Sprintf("%s-%d", time.Now().UTC().Format("20060102-150405"), os.Getpid())
}

// FindLatestLog returns the most recently modified JSONL file in logDir, or
// "" when there is none.
func FindLatestLog(logDir string) (string, error) {
	runs, err := FindLogRuns(logDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	if len(runs) == 0 {
		return "", nil
	}
	return runs[0].Path, nil
}

// LogRun is one run's log file.
type LogRun struct {
	RunID   string
	Path    string
	Size    int64
	ModTime time.Time
}

// FindLogRuns lists the runs in logDir, newest first.
func FindLogRuns(logDir string) ([]LogRun, error) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("read log dir: %w", err)
	}

	var runs []LogRun
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		id := extractRunID(entry.Name())
		if id == "" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		runs = append(runs, LogRun{
			RunID:   id,
			Path:    filepath.Join(logDir, entry.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].ModTime.Equal(runs[j].ModTime) {
			return runs[i].RunID > runs[j].RunID
		}
		return runs[i].ModTime.After(runs[j].ModTime)
	})
	return runs, nil
}

func extractRunID(filename string) string {
	if !strings.HasSuffix(filename, ".jsonl") {
		return ""
	}
	return strings.TrimSuffix(filename, ".jsonl")
}

// TailLog copies the last n lines of path to w (all lines when n <= 0).
// With follow it keeps copying appended data until ctx is done.
func TailLog(ctx context.Context, w io.Writer, path string, n int, follow bool) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if n > 0 {
		if err := seekLastLines(file, n); err != nil {
			return fmt.Errorf("seek to tail position: %w", err)
		}
	}
	if _, err := io.Copy(w, file); err != nil {
		return err
	}
	if !follow {
		return nil
	}

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := io.Copy(w, file); err != nil {
				return err
			}
		}
	}
}

// seekLastLines positions file at the start of its last n lines.
func seekLastLines(file *os.File, n int) error {
	const chunk = 4096

	stat, err := file.Stat()
	if err != nil {
		return err
	}
	size := stat.Size()

	// A trailing newline ends the last line rather than starting a new one.
	end := size
	if end > 0 {
		var last [1]byte
		if _, err := file.ReadAt(last[:], end-1); err != nil {
			return err
		}
		if last[0] == '\n' {
			end--
		}
	}

	buf := make([]byte, chunk)
	seen := 0
	for pos := end; pos > 0; {
		start := pos - chunk
		if start < 0 {
			start = 0
		}
		part := buf[:pos-start]
		if _, err := file.ReadAt(part, start); err != nil && err != io.EOF {
			return err
		}
		for i := len(part) - 1; i >= 0; i-- {
			if part[i] != '\n' {
				continue
			}
			seen++
			if seen == n {
				_, err := file.Seek(start+int64(i)+1, io.SeekStart)
				return err
			}
		}
		pos = start
	}

	_, err = file.Seek(0, io.SeekStart)
	return err
}
