// internal/analysis/extract.go
package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"venue-intelligence/internal/models"
)

var (
	ErrNoJSON = errors.New("NO_JSON_OBJECT")
)

// maxScanWork caps the bytes inspected across all start positions.
const maxScanWork = 16 << 20

// Candidates returns every balanced {...} group in text, scanning from each
// '{' in turn. Braces inside JSON strings are ignored.
func Candidates(text string) []string {
	var out []string
	eachCandidate(text, func(c string) bool {
		out = append(out, c)
		return true
	})
	return out
}

// eachCandidate calls fn with balanced groups in order until fn returns false
// or the scan budget runs out.
func eachCandidate(text string, fn func(string) bool) {
	budget := maxScanWork
	for start := strings.IndexByte(text, '{'); start >= 0 && budget > 0; {
		end, scanned := balancedEnd(text, start, budget)
		budget -= scanned
		if end > start && !fn(text[start:end+1]) {
			return
		}
		next := strings.IndexByte(text[start+1:], '{')
		if next < 0 {
			return
		}
		start += next + 1
	}
}

// balancedEnd returns the index of the '}' closing the group opened at start,
// or -1 if the group does not close within limit bytes. It also reports how
// many bytes it inspected.
func balancedEnd(text string, start, limit int) (int, int) {
	depth := 0
	inString := false
	escaped := false

	stop := len(text)
	if start+limit < stop {
		stop = start + limit
	}
	for i := start; i < stop; i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, i - start + 1
			}
		}
	}
	return -1, stop - start
}

// ExtractJSON returns the first balanced group that is valid JSON.
func ExtractJSON(text string) ([]byte, error) {
	var found []byte
	eachCandidate(text, func(c string) bool {
		if json.Valid([]byte(c)) {
			found = []byte(c)
			return false
		}
		return true
	})
	if found == nil {
		return nil, ErrNoJSON
	}
	return found, nil
}

// ParseAnalysis pulls the first object that decodes as an analysis (it must
// carry overallScore) out of a free-text oracle reply and normalises it.
func ParseAnalysis(text string) (models.AIAnalysisResult, error) {
	var (
		result  models.AIAnalysisResult
		found   bool
		lastErr error
	)
	eachCandidate(text, func(c string) bool {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal([]byte(c), &fields); err != nil {
			lastErr = err
			return true
		}
		if _, ok := fields["overallScore"]; !ok {
			return true
		}
		if err := json.Unmarshal([]byte(c), &result); err != nil {
			lastErr = err
			result = models.AIAnalysisResult{}
			return true
		}
		found = true
		return false
	})

	if found {
		result.Normalize()
		return result, nil
	}
	if lastErr != nil {
		return models.AIAnalysisResult{}, fmt.Errorf("%w: %v", ErrNoJSON, lastErr)
	}
	return models.AIAnalysisResult{}, ErrNoJSON
}
