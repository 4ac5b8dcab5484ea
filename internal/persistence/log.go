// Package persistence records each public IP address change in an
// append only plain text log file, and reads back the most recent
// address recorded.
package persistence

import (
	"errors"
	"fmt"
	"io/fs"
	"net/netip"
	"os"
	"strings"
	"sync"
	"time"
)

type Log struct {
	filepath string
	mutex    sync.Mutex
}

// NewLog creates a log writing to the file at the given path.
// The file is only created on the first successful update.
func NewLog(filepath string) *Log {
	return &Log{
		filepath: filepath,
	}
}

// LastIP returns the address field of the last entry of the log file.
// It returns ok as false if the file does not exist yet, or if the
// last line does not end with a valid IP address, so that the caller
// treats the address as changed and performs an update.
func (l *Log) LastIP() (lastIP netip.Addr, ok bool, err error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	data, err := os.ReadFile(l.filepath)
	if errors.Is(err, fs.ErrNotExist) {
		return netip.Addr{}, false, nil
	} else if err != nil {
		return netip.Addr{}, false, fmt.Errorf("reading log file: %w", err)
	}

	lastLine := ""
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			lastLine = line
		}
	}

	fields := strings.Fields(lastLine)
	if len(fields) == 0 {
		return netip.Addr{}, false, nil
	}

	lastIP, err = netip.ParseAddr(fields[len(fields)-1])
	if err != nil {
		return netip.Addr{}, false, nil
	}

	return lastIP, true, nil
}

// StoreNewIP appends one "<timestamp> <address>" line to the log
// file, with the timestamp formatted as RFC 3339 with the local UTC
// offset. Existing lines are never rewritten.
func (l *Log) StoreNewIP(ip netip.Addr, t time.Time) (err error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	const openFlags = os.O_APPEND | os.O_CREATE | os.O_WRONLY
	const filePermissions = 0o600
	file, err := os.OpenFile(l.filepath, openFlags, filePermissions)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	line := t.Format(time.RFC3339) + " " + ip.String() + "\n"
	_, err = file.WriteString(line)
	if err != nil {
		_ = file.Close()
		return fmt.Errorf("writing log entry: %w", err)
	}

	err = file.Close()
	if err != nil {
		return fmt.Errorf("closing log file: %w", err)
	}
	return nil
}

// String implements fmt.Stringer for settings summaries.
func (l *Log) String() string {
	return l.filepath
}
