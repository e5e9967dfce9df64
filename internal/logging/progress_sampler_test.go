package logging

import "testing"

func TestNewProgressSamplerDefaults(t *testing.T) {
	tests := []struct {
		name       string
		bucketSize float64
		want       float64
	}{
		{"zero", 0, 10},
		{"negative", -5, 10},
		{"custom", 25, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewProgressSampler(tt.bucketSize)
			if s.bucketSize != tt.want {
				t.Fatalf("bucketSize = %v, want %v", s.bucketSize, tt.want)
			}
		})
	}
}

func TestProgressSamplerNil(t *testing.T) {
	var s *ProgressSampler
	if !s.ShouldLog(1, 10) {
		t.Fatal("nil sampler should always log")
	}
	s.Reset()
}

func TestProgressSamplerBuckets(t *testing.T) {
	s := NewProgressSampler(25)
	steps := []struct {
		done int
		want bool
	}{
		{0, true},
		{1, false}, // 12.5%
		{2, true},  // 25%
		{3, false}, // 37.5%
		{4, true},  // 50%
		{7, true},  // 87.5% skips 75 but still a new bucket
		{8, true},  // done
		{8, false},
	}
	for _, step := range steps {
		if got := s.ShouldLog(step.done, 8); got != step.want {
			t.Fatalf("ShouldLog(%d, 8) = %v, want %v", step.done, got, step.want)
		}
	}
}

func TestProgressSamplerAlwaysLogsCompletion(t *testing.T) {
	s := NewProgressSampler(50)
	s.ShouldLog(0, 3)
	s.ShouldLog(2, 3)
	if !s.ShouldLog(3, 3) {
		t.Fatal("completion should log")
	}
}

func TestProgressSamplerReset(t *testing.T) {
	s := NewProgressSampler(10)
	s.ShouldLog(5, 5)
	s.Reset()
	if !s.ShouldLog(0, 5) {
		t.Fatal("should log after reset")
	}
}

func TestProgressSamplerUnknownTotal(t *testing.T) {
	s := NewProgressSampler(10)
	if !s.ShouldLog(3, 0) {
		t.Fatal("unknown total should log")
	}
}
