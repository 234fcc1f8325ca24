package model

import "testing"

func TestLoadState_IsActive(t *testing.T) {
	tests := []struct {
		state    LoadState
		expected bool
	}{
		{LoadStateUnstarted, false},
		{LoadStatePreloading, true},
		{LoadStateLoaded, false},
		{LoadStateErrored, false},
	}

	for _, test := range tests {
		result := test.state.IsActive()
		if result != test.expected {
			t.Errorf("LoadState(%s).IsActive() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestLoadState_IsFinished(t *testing.T) {
	tests := []struct {
		state    LoadState
		expected bool
	}{
		{LoadStateUnstarted, false},
		{LoadStatePreloading, false},
		{LoadStateLoaded, true},
		{LoadStateErrored, true},
	}

	for _, test := range tests {
		result := test.state.IsFinished()
		if result != test.expected {
			t.Errorf("LoadState(%s).IsFinished() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestLoadState_CanStart(t *testing.T) {
	tests := []struct {
		state    LoadState
		expected bool
	}{
		{LoadStateUnstarted, true},
		{LoadStatePreloading, false},
		{LoadStateLoaded, false},
		{LoadStateErrored, true},
	}

	for _, test := range tests {
		if got := test.state.CanStart(); got != test.expected {
			t.Errorf("LoadState(%s).CanStart() = %v, expected %v", test.state, got, test.expected)
		}
	}
}

func TestDirection_String(t *testing.T) {
	if DirectionRTL.String() != "rtl" {
		t.Errorf("Direction.String() = %s, expected rtl", DirectionRTL.String())
	}
}
