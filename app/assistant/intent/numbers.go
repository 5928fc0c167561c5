package intent

import (
	"regexp"
	"strconv"
)

var digitRun = regexp.MustCompile(`[0-9]+`)

// Numbers returns up to limit integers parsed from the leading digit runs of
// text, in order of appearance. Extraction stops at the first run that does
// not fit in an int64, so callers see fewer numbers rather than a wrong one.
func Numbers(text string, limit int) []int64 {
	if limit <= 0 {
		return nil
	}
	runs := digitRun.FindAllString(text, limit)
	numbers := make([]int64, 0, len(runs))
	for _, run := range runs {
		n, err := strconv.ParseInt(run, 10, 64)
		if err != nil {
			break
		}
		numbers = append(numbers, n)
	}
	return numbers
}
