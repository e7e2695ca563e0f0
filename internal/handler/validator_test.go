package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type kindRequest struct {
	Kind string `json:"kind" validate:"required,kind"`
}

type slotRequest struct {
	Slot string `json:"slot" validate:"required,slot"`
}

func TestValidateKind(t *testing.T) {
	v := GetValidator()

	for _, kind := range []string{"rifle", "carbine", "shotgun", "handgun", "launcher", "RIFLE"} {
		assert.NoError(t, v.ValidateStruct(kindRequest{Kind: kind}), "kind %q should be valid", kind)
	}

	assert.Error(t, v.ValidateStruct(kindRequest{Kind: "crossbow"}))
	assert.Error(t, v.ValidateStruct(kindRequest{Kind: ""}), "required tag still applies")
}

func TestValidateSlot(t *testing.T) {
	v := GetValidator()

	for _, slot := range []string{"sight", "barrel", "muzzle", "underbarrel", "magazine", "accessory"} {
		assert.NoError(t, v.ValidateStruct(slotRequest{Slot: slot}), "slot %q should be valid", slot)
	}

	assert.Error(t, v.ValidateStruct(slotRequest{Slot: "bayonet"}))
}

func TestFormatValidationError(t *testing.T) {
	v := GetValidator()

	err := v.ValidateStruct(kindRequest{Kind: "crossbow"})
	require.Error(t, err)

	fields := FormatValidationError(err)
	assert.Equal(t, "Invalid weapon kind", fields["kind"])
}

func TestFormatValidationErrorNonValidatorError(t *testing.T) {
	fields := FormatValidationError(assert.AnError)
	assert.Equal(t, "Invalid request format", fields["error"])
}
