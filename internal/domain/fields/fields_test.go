package fields

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovieDurationMarshalJSON(t *testing.T) {
	data, err := json.Marshal(MovieDuration(125))
	require.NoError(t, err)
	assert.Equal(t, `"125 mins"`, string(data))
}

func TestReservationStatusIsActive(t *testing.T) {
	active := []ReservationStatus{StatusPending, StatusConfirmed, StatusCheckedIn, StatusNoShow}
	for _, s := range active {
		assert.True(t, s.IsActive(), string(s))
	}
	assert.False(t, StatusCancelled.IsActive())
	assert.False(t, ReservationStatus("bogus").IsActive())
}

func TestReservationStatusIsValid(t *testing.T) {
	assert.True(t, StatusNoShow.IsValid())
	assert.False(t, ReservationStatus("").IsValid())
	assert.False(t, ReservationStatus("CONFIRMED").IsValid())
}
