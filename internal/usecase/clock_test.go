package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinutesOfDay(t *testing.T) {
	min, err := minutesOfDay("09:15")
	require.NoError(t, err)
	assert.Equal(t, 555, min)

	// Database time values carry seconds.
	min, err = minutesOfDay("14:30:00")
	require.NoError(t, err)
	assert.Equal(t, 870, min)

	min, err = minutesOfDay("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, min)

	_, err = minutesOfDay("25:00")
	assert.Error(t, err)

	_, err = minutesOfDay("soon")
	assert.Error(t, err)
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "00:00", formatMinutes(0))
	assert.Equal(t, "09:05", formatMinutes(545))
	assert.Equal(t, "23:59", formatMinutes(1439))
}

func TestSlotLabel(t *testing.T) {
	assert.Equal(t, "09:15 AM", slotLabel(555))
	assert.Equal(t, "12:00 PM", slotLabel(720))
	assert.Equal(t, "02:30 PM", slotLabel(870))
	assert.Equal(t, "12:00 AM", slotLabel(0))
}
