package worktime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/domain"
)

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, time.March, 5, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-05", FormatDate(d))
	assert.Equal(t, "1999-12-31", FormatDate(time.Date(1999, time.December, 31, 0, 0, 0, 0, time.Local)))
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "09:05", FormatTime(9, 5))
	assert.Equal(t, "00:00", FormatTime(0, 0))
	assert.Equal(t, "23:59", FormatTime(23, 59))
}

func TestParseTimeRoundTrip(t *testing.T) {
	for h := 0; h <= 23; h++ {
		for m := 0; m <= 59; m++ {
			got, err := ParseTime(FormatTime(h, m))
			require.NoError(t, err)
			if got != (domain.ClockTime{Hours: h, Minutes: m}) {
				t.Fatalf("ParseTime(FormatTime(%d, %d)) = %+v", h, m, got)
			}
		}
	}
}

func TestParseTimeMalformed(t *testing.T) {
	cases := []string{"", "9", "09:", ":30", "ab:cd", "09:30:00", "-1:30", " 9:30"}
	for _, c := range cases {
		_, err := ParseTime(c)
		assert.ErrorIs(t, err, ErrMalformedTime, "input %q", c)
	}
}

func TestCalculateWorkHours(t *testing.T) {
	cases := []struct {
		start, end string
		want       float64
	}{
		{"09:00", "18:00", 9},
		{"22:00", "06:00", 8},
		{"09:00", "09:30", 0.5},
		{"23:45", "00:15", 0.5},
		{"12:00", "15:00", 3},
		{"00:00", "23:59", 23 + 59.0/60},
	}
	for _, c := range cases {
		got, err := CalculateWorkHours(c.start, c.end)
		require.NoError(t, err)
		assert.InDelta(t, c.want, got, 1e-9, "%s-%s", c.start, c.end)
	}
}

func TestCalculateWorkHoursSameStartEnd(t *testing.T) {
	got, err := CalculateWorkHours("10:00", "10:00")
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestCalculateWorkHoursMalformed(t *testing.T) {
	_, err := CalculateWorkHours("nine", "18:00")
	assert.ErrorIs(t, err, ErrMalformedTime)

	_, err = CalculateWorkHours("09:00", "18")
	assert.ErrorIs(t, err, ErrMalformedTime)
}

func TestMonthOf(t *testing.T) {
	ym := MonthOf(time.Date(2024, time.January, 31, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, domain.YearMonth{Year: 2024, Month: 1}, ym)

	now := time.Now()
	cur := CurrentMonth()
	assert.Equal(t, now.Year(), cur.Year)
	assert.GreaterOrEqual(t, cur.Month, 1)
	assert.LessOrEqual(t, cur.Month, 12)
}

func TestMonthPrefix(t *testing.T) {
	assert.Equal(t, "2024-03", MonthPrefix(2024, 3))
	assert.Equal(t, "2024-11", MonthPrefix(2024, 11))
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "8h", FormatHours(8))
	assert.Equal(t, "7h 30m", FormatHours(7.5))
	assert.Equal(t, "0h 15m", FormatHours(0.25))
	assert.Equal(t, "8h", FormatHours(7.999999))
}
