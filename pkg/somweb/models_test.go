package somweb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDoorStateString(t *testing.T) {
	assert.Equal(t, "OPEN", StateOpen.String())
	assert.Equal(t, "CLOSED", StateClosed.String())
	assert.Equal(t, "UNKNOWN", StateUnknown.String())
	assert.Equal(t, "UNKNOWN", DoorState(42).String())
}

func TestDoorActionString(t *testing.T) {
	assert.Equal(t, "OPEN", ActionOpen.String())
	assert.Equal(t, "CLOSE", ActionClose.String())
}

func TestDoorActionTargetState(t *testing.T) {
	assert.Equal(t, StateOpen, ActionOpen.TargetState())
	assert.Equal(t, StateClosed, ActionClose.TargetState())
}
