package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleObserver_FormatEvent(t *testing.T) {
	obs := NewConsoleObserver()

	line := obs.formatEvent(Event{
		Type:     EventResourceCreated,
		Resource: "cluster-abc",
		Message:  "cluster creation requested",
	})

	assert.Equal(t, "[resource.created] cluster-abc: cluster creation requested", line)
}

func TestConsoleObserver_FormatEvent_FieldsSorted(t *testing.T) {
	obs := NewConsoleObserver()

	line := obs.formatEvent(Event{
		Type:     EventResourceWaiting,
		Resource: "hsm-123",
		Fields: map[string]string{
			"cluster": "cluster-abc",
			"az":      "eu-west-1a",
		},
	})

	assert.Equal(t, "[resource.waiting] hsm-123 az=eu-west-1a cluster=cluster-abc", line)
}

func TestConsoleObserver_WithFields_Inherited(t *testing.T) {
	obs := NewConsoleObserver().WithFields(map[string]string{"cluster": "cluster-abc"})

	console, ok := obs.(*ConsoleObserver)
	assert.True(t, ok)

	line := console.formatEvent(console.mergeFields(Event{
		Type:     EventResourceReady,
		Resource: "hsm-123",
	}))
	assert.Contains(t, line, "cluster=cluster-abc")
}
