package ingest

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"fieldassign/core/assign"
	"fieldassign/core/model"
)

// Edit script files hold one directive per line:
//
//	1 add John, 98026, OLS; Bath
//	2 remove Jane
//
// The leading number is the window ordinal the directive applies to.
// Blank lines and lines starting with # are skipped.

type editDirective struct {
	add    *model.Representative
	remove string
}

// EditScript applies scripted roster edits after each mutation-eligible
// window. It implements assign.RosterEditor.
type EditScript struct {
	directives map[int][]editDirective
}

// ReadEditScript parses an edit script file.
func ReadEditScript(path string) (*EditScript, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open edit script: %w", err)
	}
	defer f.Close()
	return ParseEditScript(f)
}

// ParseEditScript parses edit directives from a reader.
func ParseEditScript(r io.Reader) (*EditScript, error) {
	script := &EditScript{directives: make(map[int][]editDirective)}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		ordinal, dir, err := parseEditLine(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		script.directives[ordinal] = append(script.directives[ordinal], dir)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read edit script: %w", err)
	}
	return script, nil
}

func parseEditLine(text string) (int, editDirective, error) {
	fields := strings.SplitN(text, " ", 3)
	if len(fields) < 3 {
		return 0, editDirective{}, fmt.Errorf("expected %q, got %q", "<window> add|remove <rep>", text)
	}
	ordinal, err := strconv.Atoi(fields[0])
	if err != nil || ordinal < 1 {
		return 0, editDirective{}, fmt.Errorf("bad window ordinal %q", fields[0])
	}
	switch fields[1] {
	case "add":
		rep, err := parseRosterLine(fields[2])
		if err != nil {
			return 0, editDirective{}, err
		}
		return ordinal, editDirective{add: rep}, nil
	case "remove":
		name := strings.TrimSpace(fields[2])
		if name == "" {
			return 0, editDirective{}, fmt.Errorf("remove needs a representative name")
		}
		return ordinal, editDirective{remove: name}, nil
	default:
		return 0, editDirective{}, fmt.Errorf("unknown directive %q", fields[1])
	}
}

// Edit applies the directives recorded for the given window ordinal.
func (s *EditScript) Edit(_ context.Context, ordinal int, _ model.Window, roster model.Roster) (model.Roster, error) {
	dirs := s.directives[ordinal]
	if len(dirs) == 0 {
		return roster, nil
	}
	out := roster.Clone()
	for _, d := range dirs {
		switch {
		case d.add != nil:
			out = append(out, d.add)
		default:
			idx := -1
			for i, rep := range out {
				if rep.Name == d.remove {
					idx = i
					break
				}
			}
			if idx < 0 {
				return nil, fmt.Errorf("window %d: cannot remove unknown representative %q", ordinal, d.remove)
			}
			out = append(out[:idx], out[idx+1:]...)
		}
	}
	return out, nil
}

var _ assign.RosterEditor = (*EditScript)(nil)
