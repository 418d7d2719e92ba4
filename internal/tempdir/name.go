package tempdir

import (
	"crypto/sha1" // #nosec G505 -- used for naming, not for security
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var subdirPattern = regexp.MustCompile(`^([A-Za-z0-9]*)-([0-9a-f]{40})-([0-9]+)(?:_([0-9]+))?$`)

// Subdir is the parsed form of a directory name produced by DeriveSubdir,
// optionally carrying the collision suffix added by the allocator.
type Subdir struct {
	Prefix    string
	Hash      string
	Timestamp time.Time
	Suffix    int
}

// DeriveSubdir builds the unique directory token "{prefix}-{sha1}-{unix}" for name.
//
// The prefix is name stripped of everything but ASCII letters and digits and
// may be empty. The result is stable within one second of wall-clock time.
func DeriveSubdir(name string, now time.Time) string {
	sum := sha1.Sum([]byte(name)) // #nosec G401
	return fmt.Sprintf("%s-%s-%d", sanitizePrefix(name), hex.EncodeToString(sum[:]), now.Unix())
}

func sanitizePrefix(name string) string {
	return strings.Map(func(r rune) rune {
		if '0' <= r && r <= '9' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' {
			return r
		}
		return -1
	}, name)
}

// ParseSubdir splits a directory basename created by this package.
// It reports false for names that were not produced by DeriveSubdir.
func ParseSubdir(base string) (Subdir, bool) {
	m := subdirPattern.FindStringSubmatch(base)
	if m == nil {
		return Subdir{}, false
	}

	unix, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return Subdir{}, false
	}

	s := Subdir{
		Prefix:    m[1],
		Hash:      m[2],
		Timestamp: time.Unix(unix, 0),
	}

	if m[4] != "" {
		suffix, err := strconv.Atoi(m[4])
		if err != nil {
			return Subdir{}, false
		}
		s.Suffix = suffix
	}

	return s, true
}
