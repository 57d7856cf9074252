package cli

import (
	"slices"
	"testing"
)

func TestDataDirFromArgs_LongFlagEquals(t *testing.T) {
	args := []string{"talentflow", "serve", "--data=hiring"}
	if got := dataDirFromArgs(args); got != "hiring" {
		t.Errorf("Expected 'hiring', got %q", got)
	}
}

func TestDataDirFromArgs_ShortFlagSpace(t *testing.T) {
	args := []string{"talentflow", "serve", "-d", "hiring"}
	if got := dataDirFromArgs(args); got != "hiring" {
		t.Errorf("Expected 'hiring', got %q", got)
	}
}

func TestDataDirFromArgs_NoFlag(t *testing.T) {
	if got := dataDirFromArgs([]string{"talentflow", "job", "show", "job_1"}); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}
	if got := dataDirFromArgs(nil); got != "" {
		t.Errorf("Expected empty string for nil args, got %q", got)
	}
}

func TestDataDirFromArgs_EmptyEqualsValue(t *testing.T) {
	// --data= with no value should fall through to the default location
	if got := dataDirFromArgs([]string{"talentflow", "--data=", "serve"}); got != "" {
		t.Errorf("Expected empty string for --data= (no value), got %q", got)
	}
}

func TestCompleteStages(t *testing.T) {
	got, _ := completeStages("in")
	if !slices.Equal(got, []string{"interview"}) {
		t.Errorf("Expected [interview], got %v", got)
	}

	all, _ := completeStages("")
	if len(all) != 6 {
		t.Errorf("Expected all 6 stages, got %v", all)
	}
}

func TestFilterPrefix(t *testing.T) {
	got := filterPrefix([]string{"job_a1", "job_b2", "cand_1"}, "job_")
	if !slices.Equal(got, []string{"job_a1", "job_b2"}) {
		t.Errorf("Unexpected result %v", got)
	}
	if got := filterPrefix([]string{"a"}, "z"); got != nil {
		t.Errorf("Expected nil, got %v", got)
	}
}
