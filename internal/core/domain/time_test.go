package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTime_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "naive with microseconds",
			input: `"2024-03-01T10:15:30.123456"`,
			want:  time.Date(2024, 3, 1, 10, 15, 30, 123456000, time.UTC),
		},
		{
			name:  "naive seconds",
			input: `"2024-03-01T10:15:30"`,
			want:  time.Date(2024, 3, 1, 10, 15, 30, 0, time.UTC),
		},
		{
			name:  "zoned",
			input: `"2024-03-01T16:15:30+06:00"`,
			want:  time.Date(2024, 3, 1, 10, 15, 30, 0, time.UTC),
		},
		{
			name:  "utc Z",
			input: `"2024-03-01T10:15:30Z"`,
			want:  time.Date(2024, 3, 1, 10, 15, 30, 0, time.UTC),
		},
		{
			name:  "space separated",
			input: `"2024-03-01 10:15:30"`,
			want:  time.Date(2024, 3, 1, 10, 15, 30, 0, time.UTC),
		},
		{
			name:  "date only",
			input: `"2024-03-01"`,
			want:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Time
			require.NoError(t, json.Unmarshal([]byte(tt.input), &got))
			assert.True(t, tt.want.Equal(got.Time), "got %s", got.Time)
		})
	}
}

func TestTime_UnmarshalJSON_Null(t *testing.T) {
	got := NewTime(time.Now())
	require.NoError(t, json.Unmarshal([]byte(`null`), &got))
	assert.True(t, got.IsZero())
}

func TestTime_UnmarshalJSON_Invalid(t *testing.T) {
	var got Time
	err := json.Unmarshal([]byte(`"yesterday"`), &got)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPayload))

	err = json.Unmarshal([]byte(`12345`), &got)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPayload))
}

func TestTime_OptionalPointer(t *testing.T) {
	var job CrawlJob
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"source_id":2,"status":"pending","started_at":null,"created_at":"2024-01-01T00:00:00"}`), &job))
	assert.Nil(t, job.StartedAt)
	assert.Nil(t, job.FinishedAt)
	assert.False(t, job.CreatedAt.IsZero())
}

func TestTime_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(NewTime(time.Date(2024, 3, 1, 10, 15, 30, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-01T10:15:30Z"`, string(data))

	data, err = json.Marshal(Time{})
	require.NoError(t, err)
	assert.Equal(t, `null`, string(data))
}

func TestTime_String(t *testing.T) {
	assert.Equal(t, "-", Time{}.String())
	assert.Equal(t, "2024-03-01 10:15", NewTime(time.Date(2024, 3, 1, 10, 15, 30, 0, time.UTC)).String())
}
