package validation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

var ErrNotWholeNumber = errors.New("not a whole number")

// ParseWholeNumber reads an id or a quantity typed by the user. Strings are
// always base 10, so "010" is 10, and numbers must have no fractional part.
func ParseWholeNumber(v interface{}) (int, error) {
	switch n := v.(type) {
	case nil, bool:
		return 0, fmt.Errorf("%w: %v", ErrNotWholeNumber, v)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrNotWholeNumber, n)
		}
		return i, nil
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %v", ErrNotWholeNumber, v)
	}
	return int(f), nil
}
