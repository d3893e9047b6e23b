// Package formats provides parsers for Wavefront OBJ models and MTL material libraries.
package formats

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// textLine is one logical line of a text format, with continuation lines joined.
type textLine struct {
	num    int
	fields []string
}

// scanLines splits data into whitespace-separated fields per logical line.
// Blank lines and # comments are dropped; a trailing backslash joins the next line.
// Fields keep the raw bytes of the file.
func scanLines(data []byte) ([]textLine, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var (
		lines   []textLine
		pending strings.Builder
		start   int
		num     int
	)
	for sc.Scan() {
		num++
		text := string(sc.Bytes())
		if pending.Len() == 0 {
			start = num
		}
		if strings.HasSuffix(text, "\\") {
			pending.WriteString(strings.TrimSuffix(text, "\\"))
			pending.WriteByte(' ')
			continue
		}
		pending.WriteString(text)
		text = pending.String()
		pending.Reset()

		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		lines = append(lines, textLine{num: start, fields: fields})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// parseFloats parses exactly n leading float fields.
func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(v)
	}
	return out, nil
}
