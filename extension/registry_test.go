package extension

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

// testExtension is a minimal Extension implementation for testing.
type testExtension struct {
	name string
}

func (e testExtension) Name() string               { return e.name }
func (e testExtension) Commands() []*cobra.Command { return nil }
func (e testExtension) MCPTools() []MCPTool        { return nil }

func TestRegister_PanicOnDuplicate(t *testing.T) {
	name := "test-duplicate-panic"
	Register(testExtension{name: name})

	assert.PanicsWithValue(t, "extension already registered: "+name, func() {
		Register(testExtension{name: name})
	})
}

func TestRegister_Order(t *testing.T) {
	Register(testExtension{name: "test-order-1"})
	Register(testExtension{name: "test-order-2"})

	var names []string
	for _, e := range All() {
		names = append(names, e.Name())
	}
	first := indexOf(names, "test-order-1")
	second := indexOf(names, "test-order-2")
	assert.GreaterOrEqual(t, first, 0)
	assert.Greater(t, second, first)

	assert.Equal(t, "test-order-2", Get("test-order-2").Name())
	assert.Nil(t, Get("test-missing"))
}

func TestEvents(t *testing.T) {
	var e Event = NetlistUploadEvent{User: "alice", Filename: "a.json", Valid: true}
	assert.Equal(t, EventNetlistUpload, e.EventType())
	assert.Equal(t, "alice", e.EventOwner())
	assert.Equal(t, "a.json", e.EventFilename())

	e = NetlistDeleteEvent{User: "bob", Filename: "b.json"}
	assert.Equal(t, EventNetlistDelete, e.EventType())
	assert.Equal(t, "bob", e.EventOwner())
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
