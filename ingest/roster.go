package ingest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"fieldassign/core/model"
)

// Roster files carry one representative per line:
//
//	Name, Zip, Scope1; Scope2; Scope3
//
// Blank lines and lines starting with # are skipped.

// ReadRoster parses a roster file.
func ReadRoster(path string) (model.Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster file: %w", err)
	}
	defer f.Close()
	return ParseRoster(f)
}

// ParseRoster parses roster lines, preserving file order.
func ParseRoster(r io.Reader) (model.Roster, error) {
	var roster model.Roster
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		rep, err := parseRosterLine(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		roster = append(roster, rep)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	if err := roster.Validate(); err != nil {
		return nil, err
	}
	return roster, nil
}

func parseRosterLine(text string) (*model.Representative, error) {
	parts := strings.SplitN(text, ",", 3)
	if len(parts) != 3 {
		return nil, fmt.Errorf("expected %q, got %q", "Name, Zip, Scope1; Scope2", text)
	}
	rep := &model.Representative{
		Name:     strings.TrimSpace(parts[0]),
		Location: strings.TrimSpace(parts[1]),
	}
	for _, s := range strings.Split(parts[2], ";") {
		if scope := strings.TrimSpace(s); scope != "" {
			rep.Capabilities = append(rep.Capabilities, scope)
		}
	}
	return rep, nil
}
