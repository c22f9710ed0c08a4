// Package siser frames blocks of data so that many of them can be
// appended to a single file and read back.
//
// Each block starts with a header line:
//
//	--- <length> [<unix ms>] [<name>]\n
//
// followed by <length> bytes of data. For readability a newline is
// appended after data that doesn't end with one.
package siser

import (
	"bytes"
	"fmt"
	"strconv"
	"time"
)

var hdrPrefix = []byte("--- ")

// TimeToUnixMillisecond converts t into Unix epoch time in milliseconds.
// That's because seconds is not enough precision and nanoseconds is too much.
func TimeToUnixMillisecond(t time.Time) int64 {
	return t.UnixNano() / 1e6
}

// TimeFromUnixMillisecond returns time from Unix epoch time in milliseconds.
func TimeFromUnixMillisecond(unixMs int64) time.Time {
	return time.Unix(0, unixMs*1e6)
}

// MarshalLine frames d. If t is time.Zero(), it's not marshalled.
// wb is optional, re-used to avoid allocations.
func MarshalLine(name string, t time.Time, d []byte, wb *bytes.Buffer) []byte {
	if wb == nil {
		wb = &bytes.Buffer{}
	} else {
		wb.Reset()
	}
	wb.Grow(len(hdrPrefix) + len(name) + len(d) + 32)

	wb.Write(hdrPrefix)
	dataLen := len(d)
	wb.WriteString(strconv.Itoa(dataLen))
	if !t.IsZero() {
		wb.WriteString(" ")
		wb.WriteString(strconv.FormatInt(TimeToUnixMillisecond(t), 10))
	}
	if name != "" {
		wb.WriteString(" ")
		wb.WriteString(name)
	}
	wb.WriteByte('\n')
	if dataLen > 0 {
		wb.Write(d)
		if d[dataLen-1] != '\n' {
			wb.WriteByte('\n')
		}
	}
	return wb.Bytes()
}

// Block is a single unmarshalled block
type Block struct {
	Name      string
	Timestamp time.Time
	Data      []byte
}

// UnmarshalLine decodes the first block in d and returns the remaining data.
// Timestamp is required because MarshalLine output can't otherwise tell
// a name that looks like a number from a timestamp.
func UnmarshalLine(d []byte) (*Block, []byte, error) {
	idx := bytes.IndexByte(d, '\n')
	if idx == -1 {
		return nil, nil, fmt.Errorf("missing '\\n' after header")
	}
	hdr := d[:idx]
	d = d[idx+1:]
	if !bytes.HasPrefix(hdr, hdrPrefix) {
		return nil, nil, fmt.Errorf("header '%s' doesn't start with '%s'", hdr, hdrPrefix)
	}
	parts := bytes.SplitN(bytes.TrimPrefix(hdr, hdrPrefix), []byte{' '}, 3)
	if len(parts) < 2 {
		return nil, nil, fmt.Errorf("invalid header '%s'", hdr)
	}
	n, err := strconv.Atoi(string(parts[0]))
	if err != nil || n < 0 {
		return nil, nil, fmt.Errorf("invalid length in header '%s'", hdr)
	}
	ms, err := strconv.ParseInt(string(parts[1]), 10, 64)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid timestamp in header '%s'", hdr)
	}
	if n > len(d) {
		return nil, nil, fmt.Errorf("length of data %d greater than remaining data of size %d", n, len(d))
	}
	res := &Block{
		Timestamp: TimeFromUnixMillisecond(ms),
		Data:      d[:n],
	}
	if len(parts) > 2 {
		res.Name = string(parts[2])
	}
	d = d[n:]
	// MarshalLine might have added a newline
	if n > 0 && res.Data[n-1] != '\n' && len(d) > 0 && d[0] == '\n' {
		d = d[1:]
	}
	return res, d, nil
}
