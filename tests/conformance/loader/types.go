package loader

// Case is a single [rule, data, expected] triple from the shared
// JsonLogic test suite.
type Case struct {
	ID       string // section comment plus position, e.g. "Arithmetic/3"
	Section  string
	Rule     any
	Data     any
	Expected any
}

// Suite is the parsed shared test suite.
type Suite struct {
	Sections []string
	Cases    []*Case
	Total    int
}

// LikeCase is a single [rule, pattern, expected] triple from the
// rule_like suite.
type LikeCase struct {
	ID      string
	Rule    any
	Pattern any
	Want    bool
}
