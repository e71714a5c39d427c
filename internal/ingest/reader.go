package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"regexp"
	"strings"
)

// Regex for valid subreddit names
var subNameRegex = regexp.MustCompile(`^[A-Za-z0-9_]{3,21}$`)

// LoadCategories reads a "category,subreddit" CSV with a header row.
// Bad rows are skipped; order within a category follows the file.
func LoadCategories(path string) (map[string][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseCategories(f)
}

func ParseCategories(r io.Reader) (map[string][]string, error) {
	// Wrap in BOM stripper
	cr := csv.NewReader(stripBOM(r))
	cr.FieldsPerRecord = -1

	categories := make(map[string][]string)
	seen := make(map[string]bool)
	line := 0
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			continue
		}
		line++
		if line == 1 {
			continue // Skip header
		}
		if len(record) < 2 {
			continue
		}

		// Validation (Fail-Soft)
		category := strings.TrimSpace(record[0])
		sub := strings.TrimSpace(record[1])
		if category == "" || !subNameRegex.MatchString(sub) {
			continue
		}
		key := category + "/" + strings.ToLower(sub)
		if seen[key] {
			continue
		}
		seen[key] = true
		categories[category] = append(categories[category], sub)
	}
	return categories, nil
}

func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	rdr, _, err := br.ReadRune()
	if err != nil {
		return br
	}
	if rdr != '\uFEFF' {
		br.UnreadRune()
	}
	return br
}
