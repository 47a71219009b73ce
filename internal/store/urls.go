package store

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// LoadURLs reads the append-only log of already-processed source URLs. The
// log is a performance layer for skipping known buildings; listing_id remains
// the sole dedup authority. A missing or unreadable file yields an empty set.
func LoadURLs(path string) map[string]struct{} {
	urls := make(map[string]struct{})

	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			zap.L().Warn("store: cannot read url log", zap.String("path", path), zap.Error(err))
		}
		return urls
	}
	defer f.Close() //nolint:errcheck

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			urls[line] = struct{}{}
		}
	}
	return urls
}

// AppendNewURLs records the processed source URLs not already in the log.
// Without the membership check every re-run of the same input would grow the
// append-only file by one duplicate line per building.
func AppendNewURLs(path string, urls []string) error {
	known := LoadURLs(path)
	for _, u := range urls {
		if u == "" {
			continue
		}
		if _, ok := known[u]; ok {
			continue
		}
		if err := AppendURL(path, u); err != nil {
			return err
		}
		known[u] = struct{}{}
	}
	return nil
}

// AppendURL records one processed source URL. The log is append-only so a
// crash mid-run keeps everything recorded so far.
func AppendURL(path, url string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "store: create dir for %s", path)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return eris.Wrap(err, "store: open url log")
	}
	defer f.Close() //nolint:errcheck

	if _, err := f.WriteString(url + "\n"); err != nil {
		return eris.Wrap(err, "store: append url")
	}
	return nil
}
