package conformance

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sandrolain/gologic/pkg/evaluator"
	"github.com/sandrolain/gologic/tests/conformance/loader"
)

func TestSharedSuite(t *testing.T) {
	suitePath := filepath.Join("testdata", "tests.json")

	suite, err := loader.LoadSuite(suitePath)
	if err != nil {
		t.Fatalf("Failed to load suite: %v", err)
	}
	if suite.Total == 0 {
		t.Fatalf("No test cases loaded from %s", suitePath)
	}

	t.Logf("Loaded %d test cases across %d sections", suite.Total, len(suite.Sections))

	var passed, failed int
	ctx := context.Background()
	ev := evaluator.New()

	for _, testCase := range suite.Cases {
		t.Run(testCase.ID, func(t *testing.T) {
			actual, err := ev.Apply(ctx, testCase.Rule, testCase.Data)
			if err != nil {
				failed++
				t.Errorf("Evaluation error: %v", err)
				return
			}

			if ok, message := loader.CompareResults(actual, testCase.Expected); !ok {
				failed++
				t.Error(message)
				return
			}
			passed++
		})
	}

	t.Logf("Suite results: %d passed, %d failed, %d total", passed, failed, suite.Total)
}
