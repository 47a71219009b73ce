package store

import (
	"bufio"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// LoadLocationCounts reads how many sessions each search location has been
// given, one "location:count" per line. Missing file yields an empty map.
func LoadLocationCounts(path string) map[string]int {
	counts := make(map[string]int)

	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			zap.L().Warn("store: cannot read location counts", zap.String("path", path), zap.Error(err))
		}
		return counts
	}
	defer f.Close() //nolint:errcheck

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		idx := strings.LastIndex(line, ":")
		if idx < 0 {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(line[idx+1:]))
		if err != nil {
			continue
		}
		counts[line[:idx]] = n
	}
	return counts
}

// SaveLocationCounts rewrites the location count file.
func SaveLocationCounts(path string, counts map[string]int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "store: create dir for %s", path)
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString(":")
		b.WriteString(strconv.Itoa(counts[k]))
		b.WriteString("\n")
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return eris.Wrap(err, "store: write location counts")
	}
	return nil
}

// BalancedOrder returns locations least-scraped first so coverage stays even
// across sessions, shuffling within each count tier to avoid a predictable
// crawl order.
func BalancedOrder(locations []string, counts map[string]int) []string {
	tiers := make(map[int][]string)
	for _, loc := range locations {
		c := counts[loc]
		tiers[c] = append(tiers[c], loc)
	}

	tierKeys := make([]int, 0, len(tiers))
	for c := range tiers {
		tierKeys = append(tierKeys, c)
	}
	sort.Ints(tierKeys)

	out := make([]string, 0, len(locations))
	for _, c := range tierKeys {
		tier := tiers[c]
		rand.Shuffle(len(tier), func(i, j int) { tier[i], tier[j] = tier[j], tier[i] })
		out = append(out, tier...)
	}
	return out
}
