// Package resolvconf discovers the system's configured DNS resolver.
package resolvconf

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/lc/nslook/internal/filesys"
)

// DefaultPath is where the system resolver configuration lives.
const DefaultPath = "/etc/resolv.conf"

// ErrNoNameserver is returned when the configuration lists no nameserver.
var ErrNoNameserver = errors.New("no nameserver configured")

// Nameserver returns the address on the first "nameserver" line of the
// resolver configuration at path. Lines starting with '#' or ';' are
// comments.
func Nameserver(fs filesys.ReadFS, path string) (string, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}
		fields := strings.Fields(line)
		if fields[0] == "nameserver" && len(fields) > 1 {
			return fields[1], nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("scanning %s: %w", path, err)
	}
	return "", fmt.Errorf("%w in %s", ErrNoNameserver, path)
}
