// Package prompt asks an operator for initial centroid indices.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/banshee-data/kmeans/internal/kmeans"
)

// ErrPromptAborted is returned when input ends before all answers are given.
var ErrPromptAborted = errors.New("seed prompt aborted")

// Prompter implements kmeans.SeedProvider by asking on Out and reading In.
// Complaints about bad answers go to Err.
type Prompter struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

var _ kmeans.SeedProvider = (*Prompter)(nil)

// SeedIndices asks whether to choose centroid positions. A "n" answer returns
// nil (random seeding); "y" reads k indices, re-asking for any answer that is
// not an integer in [0, n-1]. Duplicate indices are accepted.
func (p *Prompter) SeedIndices(n, k int) ([]int, error) {
	if n <= 0 || k <= 0 {
		return nil, fmt.Errorf("%w: %d clusters for %d points", kmeans.ErrInvalidClusterCount, k, n)
	}
	r := bufio.NewReader(p.In)

	choose, err := p.askYesNo(r)
	if err != nil {
		return nil, err
	}
	if !choose {
		return nil, nil
	}

	indices := make([]int, 0, k)
	for len(indices) < k {
		fmt.Fprintf(p.Out, "Enter centroid index %d of %d (0..%d): ", len(indices)+1, k, n-1)
		line, err := readLine(r)
		if err != nil {
			return nil, err
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		idx, err := strconv.Atoi(fields[0])
		if err != nil {
			fmt.Fprintln(p.Err, "Not an integer. Try again.")
			continue
		}
		if idx < 0 || idx >= n {
			fmt.Fprintf(p.Err, "Out of range (valid 0..%d). Try again.\n", n-1)
			continue
		}
		indices = append(indices, idx)
	}
	return indices, nil
}

func (p *Prompter) askYesNo(r *bufio.Reader) (bool, error) {
	for {
		fmt.Fprint(p.Out, "Do you want to choose initial centroid positions? (y/n): ")
		line, err := readLine(r)
		if err != nil {
			return false, err
		}
		answer := strings.TrimSpace(line)
		if answer == "" {
			continue
		}
		switch answer[0] {
		case 'y', 'Y':
			return true, nil
		case 'n', 'N':
			return false, nil
		}
		fmt.Fprintln(p.Err, "Please answer 'y' or 'n'.")
	}
}

// readLine returns the next line without its terminator. A final line without
// a newline is returned as is; ErrPromptAborted is returned once input is exhausted.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return line, nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrPromptAborted
		}
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
