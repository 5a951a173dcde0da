// Package boardfile loads the textual grid format a board is constructed
// from: a header line "RxC" followed by exactly R*C whitespace-free, non-blank
// token lines, read top to bottom, left to right.
package boardfile

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"unicode"
)

// Parse reads the textual grid format from r and returns the dimensions and
// token list in row-major order, ready to pass to board.New.
func Parse(r io.Reader) (rows, cols int, tokens []string, err error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return 0, 0, nil, fmt.Errorf("boardfile: empty input, expected an RxC header line")
	}
	rows, cols, err = parseHeader(scanner.Text())
	if err != nil {
		return 0, 0, nil, err
	}

	want := rows * cols
	tokens = make([]string, 0, want)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			return 0, 0, nil, fmt.Errorf("boardfile: blank token line at row %d", len(tokens))
		}
		if strings.IndexFunc(line, unicode.IsSpace) >= 0 {
			return 0, 0, nil, fmt.Errorf("boardfile: token %q contains whitespace", line)
		}
		tokens = append(tokens, line)
	}
	if err := scanner.Err(); err != nil {
		return 0, 0, nil, fmt.Errorf("boardfile: reading tokens: %w", err)
	}
	if len(tokens) != want {
		return 0, 0, nil, fmt.Errorf("boardfile: header declares %d tokens, found %d", want, len(tokens))
	}

	return rows, cols, tokens, nil
}

// ParseFile opens path and parses it with Parse.
func ParseFile(path string) (rows, cols int, tokens []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("boardfile: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func parseHeader(line string) (rows, cols int, err error) {
	parts := strings.SplitN(strings.TrimSpace(line), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("boardfile: malformed header %q, expected RxC", line)
	}
	rows, err = strconv.Atoi(parts[0])
	if err != nil || rows <= 0 {
		return 0, 0, fmt.Errorf("boardfile: invalid row count in header %q", line)
	}
	cols, err = strconv.Atoi(parts[1])
	if err != nil || cols <= 0 {
		return 0, 0, fmt.Errorf("boardfile: invalid column count in header %q", line)
	}
	return rows, cols, nil
}

// Generate produces a random pseudo-pairs deck for a rows x cols board: each
// of the (rows*cols)/2 pair tokens appears twice, shuffled across positions.
// If rows*cols is odd, one filler token appears alone. Tokens are small
// decimal-digit strings, which always satisfy board.ValidateToken.
func Generate(rows, cols int) []string {
	total := rows * cols
	tokens := make([]string, 0, total)
	for i := 0; i < total/2; i++ {
		tok := strconv.Itoa(i)
		tokens = append(tokens, tok, tok)
	}
	if total%2 == 1 {
		tokens = append(tokens, strconv.Itoa(total/2))
	}
	rand.Shuffle(len(tokens), func(i, j int) {
		tokens[i], tokens[j] = tokens[j], tokens[i]
	})
	return tokens
}
