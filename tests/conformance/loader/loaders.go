// Package loader reads the shared JsonLogic test fixtures and compares
// evaluation results against them.
//
// The shared suite (jsonlogic.com/tests.json) is a flat JSON array mixing
// two entry shapes: a bare string opens a named section, and a
// three-element array is a [rule, data, expected] case belonging to the
// current section. The rule_like suite uses [rule, pattern, expected]
// triples in the same layout.
//
// Both suites load from committed snapshots under testdata/ so the tests
// run offline; setting JSONLOGIC_TESTS_URL or JSONLOGIC_RULE_LIKE_URL
// fetches a fresh copy over HTTP instead.
package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Environment variables that switch loading from the committed snapshot
// to a live fetch.
const (
	TestsURLEnv    = "JSONLOGIC_TESTS_URL"
	RuleLikeURLEnv = "JSONLOGIC_RULE_LIKE_URL"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

// LoadSuite reads the shared test suite from path, or from the URL in
// JSONLOGIC_TESTS_URL when set.
func LoadSuite(path string) (*Suite, error) {
	raw, err := readSource(path, os.Getenv(TestsURLEnv))
	if err != nil {
		return nil, err
	}

	var entries []any
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse suite: %w", err)
	}

	suite := &Suite{}
	section := "general"
	counter := 0
	for _, entry := range entries {
		switch e := entry.(type) {
		case string:
			section = e
			counter = 0
			suite.Sections = append(suite.Sections, e)
		case []any:
			if len(e) != 3 {
				return nil, fmt.Errorf("case %d in section %q: expected [rule, data, expected], got %d elements",
					counter, section, len(e))
			}
			counter++
			suite.Cases = append(suite.Cases, &Case{
				ID:       fmt.Sprintf("%s/%d", section, counter),
				Section:  section,
				Rule:     e[0],
				Data:     e[1],
				Expected: e[2],
			})
		default:
			return nil, fmt.Errorf("unexpected suite entry of type %T", entry)
		}
	}
	suite.Total = len(suite.Cases)
	return suite, nil
}

// LoadRuleLike reads the rule_like suite from path, or from the URL in
// JSONLOGIC_RULE_LIKE_URL when set.
func LoadRuleLike(path string) ([]*LikeCase, error) {
	raw, err := readSource(path, os.Getenv(RuleLikeURLEnv))
	if err != nil {
		return nil, err
	}

	var entries []any
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse rule_like suite: %w", err)
	}

	var cases []*LikeCase
	for i, entry := range entries {
		triple, ok := entry.([]any)
		if !ok || len(triple) != 3 {
			return nil, fmt.Errorf("entry %d: expected [rule, pattern, expected]", i)
		}
		want, ok := triple[2].(bool)
		if !ok {
			return nil, fmt.Errorf("entry %d: expected verdict must be a boolean", i)
		}
		cases = append(cases, &LikeCase{
			ID:      fmt.Sprintf("rule_like/%d", i+1),
			Rule:    triple[0],
			Pattern: triple[1],
			Want:    want,
		})
	}
	return cases, nil
}

func readSource(path, url string) ([]byte, error) {
	if url != "" {
		return fetch(url)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	return raw, nil
}

func fetch(url string) ([]byte, error) {
	resp, err := httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s fetching %s", resp.Status, url)
	}
	return io.ReadAll(resp.Body)
}
