package main

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// AlignedOutput holds one row per line index and one column per file index.
// Every row has the same width; files shorter than the longest contribute "".
type AlignedOutput [][]string

// alignLines merges per-file line sequences by line index.
func alignLines(fileLines [][]string) (AlignedOutput, error) {
	if len(fileLines) == 0 {
		return nil, ErrEmptyInput
	}

	maxLength := 0
	for _, lines := range fileLines {
		maxLength = max(maxLength, len(lines))
	}

	out := make(AlignedOutput, maxLength)
	for lineNumber := range out {
		row := make([]string, len(fileLines))
		for index, lines := range fileLines {
			if lineNumber < len(lines) {
				row[index] = lines[lineNumber]
			}
		}
		out[lineNumber] = row
	}
	return out, nil
}

// MarshalJSON writes the table as {"<line>": {"<file>": "<text>"}} with keys
// in ascending numeric order.
func (a AlignedOutput) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for lineNumber, row := range a {
		if lineNumber > 0 {
			buf.WriteByte(',')
		}
		writeIndexKey(&buf, lineNumber)
		buf.WriteByte('{')
		for index, text := range row {
			if index > 0 {
				buf.WriteByte(',')
			}
			writeIndexKey(&buf, index)
			value, err := marshalString(text)
			if err != nil {
				return nil, err
			}
			buf.Write(value)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeIndexKey(buf *bytes.Buffer, i int) {
	buf.WriteByte('"')
	buf.WriteString(strconv.Itoa(i))
	buf.WriteString(`":`)
}

// marshalString encodes s as a JSON string without HTML escaping.
func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
