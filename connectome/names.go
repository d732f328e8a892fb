// SPDX-License-Identifier: MIT

package connectome

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/neurowave/matrix"
)

// ErrBadNameLine reports a neuron-name line that is not "name;index".
var ErrBadNameLine = errors.New("connectome: malformed name line")

// parseNames reads "name;index" lines (zero-based index) into a slice of n
// names. Blank lines are skipped; unnamed neurons stay "".
func parseNames(r io.Reader, n int) ([]string, error) {
	names := make([]string, n)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		name, idxText, ok := strings.Cut(text, ";")
		if !ok {
			return nil, fmt.Errorf("line %d: %w", line, ErrBadNameLine)
		}
		idx, err := strconv.Atoi(strings.TrimSpace(idxText))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, ErrBadNameLine)
		}
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("line %d: index %d: %w", line, idx, matrix.ErrOutOfRange)
		}
		names[idx] = strings.ToUpper(strings.TrimSpace(name))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return names, nil
}
