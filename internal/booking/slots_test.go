package booking

import (
	"testing"

	"github.com/devanshm/turfbook/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeConversions(t *testing.T) {
	assert.Equal(t, 0, TimeToMinutes("00:00"))
	assert.Equal(t, 390, TimeToMinutes("06:30"))
	assert.Equal(t, 1425, TimeToMinutes("23:45"))

	assert.Equal(t, "00:00", MinutesToTime(0))
	assert.Equal(t, "06:30", MinutesToTime(390))
	assert.Equal(t, "23:45", MinutesToTime(1425))
}

func TestParseClock(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		m, err := ParseClock("09:15")
		require.NoError(t, err)
		assert.Equal(t, 555, m)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, s := range []string{"", "9:00", "09:0", "0900", "24:00", "12:60", "ab:cd", "09:00:00"} {
			_, err := ParseClock(s)
			assert.Error(t, err, "input %q", s)
		}
	})
}

func TestOverlaps(t *testing.T) {
	t.Run("adjacent slots do not overlap", func(t *testing.T) {
		// Half-open intervals: ending at 10:00 does not conflict with starting at 10:00.
		assert.False(t, Overlaps(
			Slot{StartTime: "09:00", EndTime: "10:00"},
			Slot{StartTime: "10:00", EndTime: "11:00"},
		))
		assert.False(t, Overlaps(
			Slot{StartTime: "10:00", EndTime: "11:00"},
			Slot{StartTime: "09:00", EndTime: "10:00"},
		))
	})

	t.Run("partial overlap", func(t *testing.T) {
		assert.True(t, Overlaps(
			Slot{StartTime: "09:00", EndTime: "10:30"},
			Slot{StartTime: "10:00", EndTime: "11:00"},
		))
	})

	t.Run("containment", func(t *testing.T) {
		assert.True(t, Overlaps(
			Slot{StartTime: "08:00", EndTime: "12:00"},
			Slot{StartTime: "09:00", EndTime: "10:00"},
		))
		assert.True(t, Overlaps(
			Slot{StartTime: "09:00", EndTime: "10:00"},
			Slot{StartTime: "08:00", EndTime: "12:00"},
		))
	})

	t.Run("identical intervals overlap", func(t *testing.T) {
		assert.True(t, Overlaps(
			Slot{StartTime: "09:00", EndTime: "10:00"},
			Slot{StartTime: "09:00", EndTime: "10:00"},
		))
	})

	t.Run("disjoint", func(t *testing.T) {
		assert.False(t, Overlaps(
			Slot{StartTime: "06:00", EndTime: "07:00"},
			Slot{StartTime: "20:00", EndTime: "21:00"},
		))
	})
}

func TestSlotAvailable(t *testing.T) {
	existing := []Window{
		{Date: "2025-07-01", StartTime: "09:00", EndTime: "10:00", Status: models.BookingStatusConfirmed},
		{Date: "2025-07-01", StartTime: "12:00", EndTime: "13:00", Status: models.BookingStatusPending},
		{Date: "2025-07-01", StartTime: "15:00", EndTime: "16:00", Status: models.BookingStatusCancelled},
		{Date: "2025-07-01", StartTime: "17:00", EndTime: "18:00", Status: models.BookingStatusRejected},
		{Date: "2025-07-02", StartTime: "09:00", EndTime: "10:00", Status: models.BookingStatusConfirmed},
	}

	t.Run("conflict with confirmed booking", func(t *testing.T) {
		assert.False(t, SlotAvailable(Slot{StartTime: "09:30", EndTime: "10:30"}, "2025-07-01", existing))
	})

	t.Run("conflict with pending booking", func(t *testing.T) {
		// Pending bookings hold their slot until an owner decides on them.
		assert.False(t, SlotAvailable(Slot{StartTime: "12:00", EndTime: "13:00"}, "2025-07-01", existing))
	})

	t.Run("cancelled and rejected bookings release their slot", func(t *testing.T) {
		assert.True(t, SlotAvailable(Slot{StartTime: "15:00", EndTime: "16:00"}, "2025-07-01", existing))
		assert.True(t, SlotAvailable(Slot{StartTime: "17:00", EndTime: "18:00"}, "2025-07-01", existing))
	})

	t.Run("other dates do not participate", func(t *testing.T) {
		assert.True(t, SlotAvailable(Slot{StartTime: "09:00", EndTime: "10:00"}, "2025-07-03", existing))
	})

	t.Run("adjacent slot is accepted", func(t *testing.T) {
		assert.True(t, SlotAvailable(Slot{StartTime: "10:00", EndTime: "11:00"}, "2025-07-01", existing))
		assert.True(t, SlotAvailable(Slot{StartTime: "08:00", EndTime: "09:00"}, "2025-07-01", existing))
	})

	t.Run("no existing bookings", func(t *testing.T) {
		assert.True(t, SlotAvailable(Slot{StartTime: "09:00", EndTime: "10:00"}, "2025-07-01", nil))
	})
}

func TestGenerateSlots(t *testing.T) {
	t.Run("6 to 8 with 60 minute slots yields exactly two", func(t *testing.T) {
		slots := GenerateSlots(6, 8, 60)
		require.Len(t, slots, 2)
		assert.Equal(t, Slot{StartTime: "06:00", EndTime: "07:00"}, slots[0])
		assert.Equal(t, Slot{StartTime: "07:00", EndTime: "08:00"}, slots[1])
	})

	t.Run("slots never extend past the close hour", func(t *testing.T) {
		// 90-minute slots between 6 and 10: 06:00-07:30, 07:30-09:00. The next
		// slot would end at 10:30, past close, so it is not emitted.
		slots := GenerateSlots(6, 10, 90)
		require.Len(t, slots, 2)
		assert.Equal(t, Slot{StartTime: "06:00", EndTime: "07:30"}, slots[0])
		assert.Equal(t, Slot{StartTime: "07:30", EndTime: "09:00"}, slots[1])
	})

	t.Run("consecutive and non-overlapping", func(t *testing.T) {
		slots := GenerateSlots(6, 23, 60)
		require.Len(t, slots, 17)
		for i := 1; i < len(slots); i++ {
			assert.Equal(t, slots[i-1].EndTime, slots[i].StartTime)
			assert.False(t, Overlaps(slots[i-1], slots[i]))
		}
	})

	t.Run("degenerate inputs yield no slots", func(t *testing.T) {
		assert.Empty(t, GenerateSlots(8, 8, 60))
		assert.Empty(t, GenerateSlots(10, 8, 60))
		assert.Empty(t, GenerateSlots(6, 8, 0))
	})
}
