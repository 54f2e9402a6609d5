package domain

import "testing"

func TestFormatHours(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{0, "0h 00m"},
		{0.75, "0h 45m"},
		{1, "1h 00m"},
		{2.5083, "2h 30m"},
		{-1, "0h 00m"},
	}
	for _, tt := range tests {
		if got := FormatHours(tt.hours); got != tt.want {
			t.Errorf("FormatHours(%v) = %q, want %q", tt.hours, got, tt.want)
		}
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00"},
		{59.9, "00:00:59"},
		{3661, "01:01:01"},
		{-5, "00:00:00"},
	}
	for _, tt := range tests {
		if got := FormatElapsed(tt.seconds); got != tt.want {
			t.Errorf("FormatElapsed(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestTaskLockPath(t *testing.T) {
	got := TaskLockPath("/data/tasks.json", 7)
	want := "/data/tasks.json.locks/task-7.lock"
	if got != want {
		t.Errorf("TaskLockPath() = %q, want %q", got, want)
	}
}
