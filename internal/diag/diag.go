// Package diag maps GPU compiler diagnostics on a composed source back to
// the effect files the source was assembled from.
//
// Compilers report positions as "<source string>:<line>" or
// "<source string>(<line>)". In a composed unit the source string number is
// the file index written by the line directives, so the index is replaced by
// the path of the matching file.
package diag

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/specialistvlad/effectc/internal/source"
)

// Message is one positioned diagnostic from a compiler info log.
type Message struct {
	FileIndex int
	Line      int
	Severity  string
	Text      string
}

var (
	// 0(12) : error C0000: ...            (NVIDIA)
	parenForm = regexp.MustCompile(`^(\s*(?:(?i:error|warning):\s*)?)(\d+)\((\d+)\)`)
	// 0:12(5): error: ...  ERROR: 0:12: ... (Mesa, glslang, ANGLE, Apple)
	colonForm = regexp.MustCompile(`^(\s*(?:(?i:error|warning):\s*)?)(\d+):(\d+)`)
	severity  = regexp.MustCompile(`(?i)\b(error|warning|note)\b`)
	// Column and separator left after the position, e.g. "(5): ".
	positionTail = regexp.MustCompile(`^(?:\(\d+\))?\s*:?\s*`)
)

// Parse extracts positioned messages from an info log. Lines without a
// recognizable position are skipped.
func Parse(log string) []Message {
	var out []Message
	for _, line := range strings.Split(log, "\n") {
		line = strings.TrimRight(line, "\r")
		m, end, ok := match(line)
		if !ok {
			continue
		}
		msg := Message{}
		msg.FileIndex, _ = strconv.Atoi(m[2])
		msg.Line, _ = strconv.Atoi(m[3])
		if s := severity.FindString(line); s != "" {
			msg.Severity = strings.ToLower(s)
		}
		rest := line[end:]
		msg.Text = strings.TrimSpace(rest[len(positionTail.FindString(rest)):])
		out = append(out, msg)
	}
	return out
}

// Rewrite replaces the file index of every positioned line in log with the
// location of the corresponding file. Indices outside files are left alone.
func Rewrite(log string, files []source.SourceFile) string {
	lines := strings.Split(log, "\n")
	for i, line := range lines {
		m, end, ok := match(line)
		if !ok {
			continue
		}
		idx, err := strconv.Atoi(m[2])
		if err != nil || idx < 0 || idx >= len(files) {
			continue
		}
		sep := line[len(m[1])+len(m[2]) : len(m[1])+len(m[2])+1]
		lines[i] = m[1] + files[idx].Location + sep + line[len(m[1])+len(m[2])+1:end] + line[end:]
	}
	return strings.Join(lines, "\n")
}

// Locate formats the position of a line in a file index as "path:line".
func Locate(files []source.SourceFile, fileIndex, line int) (string, bool) {
	if fileIndex < 0 || fileIndex >= len(files) {
		return "", false
	}
	return fmt.Sprintf("%s:%d", files[fileIndex].Location, line), true
}

func match(line string) ([]string, int, bool) {
	for _, re := range []*regexp.Regexp{parenForm, colonForm} {
		if loc := re.FindStringSubmatchIndex(line); loc != nil {
			m := make([]string, 4)
			for g := 0; g < 4; g++ {
				m[g] = line[loc[2*g]:loc[2*g+1]]
			}
			return m, loc[1], true
		}
	}
	return nil, 0, false
}
