//nolint:testpackage // Test needs access to unexported fields
package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModel_View(t *testing.T) {
	m := NewModel(nil)
	m.width = 80
	m.height = 20

	m.vertices = []VertexState{
		{ID: "1", Name: "profile root", Status: statusRunning, LastLog: "[info] resolved 3 files"},
		{ID: "2", Name: "profile tools", Status: statusCompleted, LastLog: "hidden once done"},
		{ID: "3", Name: "manifest root", Status: statusCached},
		{ID: "4", Name: "profile app", Status: statusFailed, LastLog: "checksum mismatch"},
		{ID: "5", Name: "profile later", Status: statusPending},
	}

	output := m.View()

	for _, want := range []string{"profile root", "profile tools", "manifest root", "profile app", "profile later"} {
		assert.Contains(t, output, want)
	}
	assert.Contains(t, output, "✓")
	assert.Contains(t, output, "✗")
	assert.Contains(t, output, "resolved 3 files")
	assert.Contains(t, output, "checksum mismatch")
	assert.NotContains(t, output, "hidden once done")
	assert.Contains(t, output, "3/5 done")
}

func TestModel_View_Empty(t *testing.T) {
	m := NewModel(nil)
	assert.Empty(t, m.View())
}

func TestModel_View_Overflow(t *testing.T) {
	m := NewModel(nil)
	m.height = 3

	m.vertices = []VertexState{
		{ID: "1", Name: "first", Status: statusCompleted},
		{ID: "2", Name: "second", Status: statusCompleted},
		{ID: "3", Name: "third", Status: statusRunning},
	}

	output := m.View()
	assert.NotContains(t, output, "first")
	assert.Contains(t, output, "second")
	assert.Contains(t, output, "third")
	assert.Len(t, strings.Split(strings.TrimRight(output, "\n"), "\n"), 3)
}

func TestModel_Truncate(t *testing.T) {
	m := NewModel(nil)

	assert.Equal(t, "unbounded", m.truncate("unbounded", 5))

	m.width = 10
	assert.Equal(t, "abcd…", m.truncate("abcdefghij", 5))
	assert.Equal(t, "abc", m.truncate("abc", 5))
	assert.Empty(t, m.truncate("abc", 9))
}
