package dpkg

import (
	"bufio"
	"io"
	"strings"

	"go.trai.ch/mkroot/internal/core/domain"
)

const maxStatusLine = 1 << 20

// stanza is one paragraph of the dpkg status file.
type stanza struct {
	name         domain.PackageName
	arch         string
	installed    bool
	provides     []domain.PackageName
	dependencies []domain.OrGroup
}

// parseStatus reads every stanza of a dpkg status file.
func parseStatus(r io.Reader) ([]stanza, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxStatusLine)

	var (
		stanzas []stanza
		fields  = make(map[string]string)
		last    string
	)

	flush := func() {
		if name := fields["package"]; name != "" {
			stanzas = append(stanzas, newStanza(fields))
		}
		fields = make(map[string]string)
		last = ""
	}

	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.TrimSpace(line) == "":
			flush()
		case line[0] == ' ' || line[0] == '\t':
			// Continuation of a multi-line field.
			if last != "" {
				fields[last] += " " + strings.TrimSpace(line)
			}
		default:
			key, value, ok := strings.Cut(line, ":")
			if !ok {
				continue
			}
			last = strings.ToLower(strings.TrimSpace(key))
			fields[last] = strings.TrimSpace(value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()

	return stanzas, nil
}

func newStanza(fields map[string]string) stanza {
	deps := parseRelations(fields["pre-depends"])
	deps = append(deps, parseRelations(fields["depends"])...)

	var provides []domain.PackageName
	for _, group := range parseRelations(fields["provides"]) {
		provides = append(provides, group...)
	}

	return stanza{
		name:         domain.NewPackageName(fields["package"]),
		arch:         fields["architecture"],
		installed:    isInstalled(fields["status"]),
		provides:     provides,
		dependencies: deps,
	}
}

// isInstalled reports whether a Status field describes an unpacked and
// configured package, e.g. "install ok installed".
func isInstalled(status string) bool {
	parts := strings.Fields(status)
	if len(parts) != 3 {
		return false
	}
	switch parts[2] {
	case "installed", "half-configured", "triggers-awaited", "triggers-pending":
		return true
	default:
		return false
	}
}

// parseRelations splits a relationship field such as
// "libc6 (>= 2.34), libgcc-s1 | libgcc1" into OR-groups of bare names.
func parseRelations(value string) []domain.OrGroup {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	var groups []domain.OrGroup
	for clause := range strings.SplitSeq(value, ",") {
		var group domain.OrGroup
		for alt := range strings.SplitSeq(clause, "|") {
			if name := bareName(alt); name != "" {
				group = append(group, domain.NewPackageName(name))
			}
		}
		if len(group) > 0 {
			groups = append(groups, group)
		}
	}
	return groups
}

// bareName strips version constraints, architecture restrictions and
// architecture qualifiers from a single relation.
func bareName(relation string) string {
	name := strings.TrimSpace(relation)
	if i := strings.IndexAny(name, " ([<"); i >= 0 {
		name = name[:i]
	}
	if i := strings.IndexByte(name, ':'); i >= 0 {
		name = name[:i]
	}
	return name
}
