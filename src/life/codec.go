package life

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

/*
	Text encoding of the board state:

		B3/S23
		<width>
		<height>
		<x>;<y>
		...

	the rule line heals itself (see ParseRules), the dimensions are mandatory,
	malformed cell lines are skipped
*/

var (
	ErrTruncated    = errors.New("board data is truncated")
	ErrBadDimension = errors.New("bad board dimension")
)

//State is the complete board data as it is saved and loaded
type State struct {
	Width  int
	Height int
	Rules  RuleSet
	Cells  []Cell
}

//Encode writes the state in the line-oriented text form
func Encode(w io.Writer, s State) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, s.Rules.String())
	fmt.Fprintln(bw, s.Width)
	fmt.Fprintln(bw, s.Height)
	for _, c := range s.Cells {
		fmt.Fprintf(bw, "%d;%d\n", c.X, c.Y)
	}
	return bw.Flush()
}

//Decode reads the state written by Encode.
//Nothing is returned but an error when the header is broken
func Decode(r io.Reader) (State, error) {
	var s State
	lr := lineReader{bufio.NewReader(r)}

	header := make([]string, 0, 3)
	for len(header) < 3 {
		line, ok, err := lr.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return State{}, err
		}
		if !ok {
			//an over-long header line heals (rules) or fails (dimensions) like any malformed one
			line = ""
		}
		header = append(header, line)
	}
	if len(header) < 3 {
		return State{}, fmt.Errorf("%w: got %d header lines, want 3", ErrTruncated, len(header))
	}

	var err error
	s.Rules = ParseRules(header[0])
	if s.Width, err = parseDimension("width", header[1]); err != nil {
		return State{}, err
	}
	if s.Height, err = parseDimension("height", header[2]); err != nil {
		return State{}, err
	}

	for {
		line, ok, err := lr.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return State{}, err
		}
		if !ok {
			continue
		}
		c, ok := parseCell(line)
		if !ok {
			continue
		}
		s.Cells = append(s.Cells, c)
	}
	return s, nil
}

//MaxLineLen is the longest line Decode reads, longer lines are treated as malformed
const MaxLineLen = 4096

//lineReader reads lines of any length, keeping at most MaxLineLen bytes of each
type lineReader struct {
	r *bufio.Reader
}

//next returns the following line without the line ending.
//ok is false when the line is longer than MaxLineLen, the whole line is consumed anyway
func (lr lineReader) next() (line string, ok bool, err error) {
	var buf []byte
	ok = true
	for {
		chunk, isPrefix, err := lr.r.ReadLine()
		if err != nil {
			if err == io.EOF && (len(buf) > 0 || !ok) {
				break
			}
			return "", false, err
		}
		if ok {
			buf = append(buf, chunk...)
			if len(buf) > MaxLineLen {
				ok = false
				buf = nil
			}
		}
		if !isPrefix {
			break
		}
	}
	return string(buf), ok, nil
}

//ParseState decodes the state from a string
func ParseState(text string) (State, error) {
	return Decode(strings.NewReader(text))
}

//MarshalText encodes the board state
func (b *Board) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, b.State()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func parseDimension(name string, line string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrBadDimension, name, line)
	}
	//negative sizes leave an empty board, the same as Resize does
	return clampSize(n), nil
}

func parseCell(line string) (Cell, bool) {
	fields := strings.Split(strings.TrimSpace(line), ";")
	if len(fields) != 2 {
		return Cell{}, false
	}
	x, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return Cell{}, false
	}
	y, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return Cell{}, false
	}
	return Cell{x, y}, true
}
