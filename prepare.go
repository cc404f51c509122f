package texpect

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

// Prepare turns captured output into a template that matches the output
// verbatim: every tag delimiter character is doubled. Line separators of
// the input, including CRLF, are preserved.
type Prepare struct {
	Delims Delims
}

func (p Prepare) Text(ref io.Writer, subj io.Reader) (err error) {
	d := p.Delims.or()
	var sep lineSepScanner
	scn := bufio.NewScanner(subj)
	scn.Split(sep.ScanLines)
	for scn.Scan() {
		if _, err = io.WriteString(ref, escapeDelims(scn.Text(), d)); err != nil {
			return err
		}
		if _, err = ref.Write(sep); err != nil {
			return err
		}
	}
	return scn.Err()
}

func escapeDelims(s string, d Delims) string {
	var b strings.Builder
	for _, r := range s {
		if r == d.Open || r == d.Close {
			b.WriteRune(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

type lineSepScanner []byte

func (lsc *lineSepScanner) ScanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	// modificated version of bufio.Scan
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		res, cr := dropCR(data[0:i])
		*lsc = data[i-cr : i+1]
		return i + 1, res, nil
	}
	if atEOF {
		res, cr := dropCR(data)
		*lsc = data[len(data)-cr:]
		return len(data), res, nil
	}
	return 0, nil, nil
}

func dropCR(data []byte) ([]byte, int) {
	// modificated version of bufio.dropCR
	if len(data) > 0 && data[len(data)-1] == '\r' {
		return data[0 : len(data)-1], 1
	}
	return data, 0
}
