package saver

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// unsafeChars matches every rune outside the filename allow-list
// (letters, digits, dot, underscore, hyphen).
var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// generatedTimeFormat is second-precision and zero-padded, so lexical
// order of generated names matches chronological order.
const generatedTimeFormat = "20060102_150405"

// generatedPrefix is the stem of auto-generated filenames.
const generatedPrefix = "saved_text"

// sanitizeFilename reduces a caller-supplied filename to a single safe
// path component:
//
//  1. Split on both separator styles so windows-style input is handled
//     on any host; drop empty, "." and ".." segments outright.
//  2. Join the surviving segments with "_" ("../../etc/passwd" becomes
//     "etc_passwd").
//  3. Replace every rune outside the allow-list with "_".
//  4. Trim leading and trailing dots; names may not start or end with
//     one, which also kills a bare ".." that survived as text.
//
// Returns "" when nothing safe survives; the caller falls back to a
// generated name in that case.
func sanitizeFilename(name string) string {
	segments := strings.FieldsFunc(name, func(r rune) bool {
		return r == '/' || r == '\\'
	})

	kept := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg == "." || seg == ".." {
			continue
		}
		kept = append(kept, seg)
	}

	safe := unsafeChars.ReplaceAllString(strings.Join(kept, "_"), "_")
	return strings.Trim(safe, ".")
}

// ensureExtension appends ".txt" when the name carries no extension.
// Names that already have one ("report.md", "archive.tar.gz") are kept.
func ensureExtension(name string) string {
	if ext(name) == "" {
		return name + ".txt"
	}
	return name
}

// ext returns the extension of a sanitized name. filepath.Ext is not
// used here: the name is a single component, and a trailing dot should
// not count as an extension.
func ext(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 || idx == len(name)-1 {
		return ""
	}
	return name[idx:]
}

// generatedName returns the default timestamp filename, optionally with
// a disambiguating sequence number before the extension.
func generatedName(now time.Time, seq int) string {
	stamp := now.Format(generatedTimeFormat)
	if seq > 0 {
		return fmt.Sprintf("%s_%s_%d.txt", generatedPrefix, stamp, seq)
	}
	return fmt.Sprintf("%s_%s.txt", generatedPrefix, stamp)
}
