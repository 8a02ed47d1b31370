package nutrition

import (
	"errors"
	"testing"

	"pantry-planner/internal/apperr"
)

func TestParseValue(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    float64
		wantErr bool
	}{
		{"PlainNumber", "450", 450, false},
		{"WithUnit", "450 kcal", 450, false},
		{"GramsSuffix", "32g", 32, false},
		{"Decimal", "1.5 g", 1.5, false},
		{"LeadingText", "approx 200", 200, false},
		{"NoNumber", "unknown", 0, true},
		{"Empty", "", 0, true},
		{"OnlyDots", "...", 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseValue(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseValue(%q): expected error, got %f", tc.in, got)
				}
				if !errors.Is(err, apperr.ErrParse) {
					t.Errorf("ParseValue(%q): error is not ErrParse: %v", tc.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseValue(%q): unexpected error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("ParseValue(%q) = %f, want %f", tc.in, got, tc.want)
			}
		})
	}
}

func TestCheckTargetInclusiveBand(t *testing.T) {
	target := Profile{Calories: "500"}

	cases := []struct {
		name     string
		calories string
		want     bool
	}{
		{"LowerBound", "400", true},
		{"BelowLowerBound", "399", false},
		{"UpperBound", "600", true},
		{"AboveUpperBound", "601", false},
		{"Exact", "500", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := CheckTarget(Profile{Calories: tc.calories}, target, DefaultTolerance)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tc.want {
				t.Errorf("calories %s against target 500: got %v, want %v", tc.calories, ok, tc.want)
			}
		})
	}
}

func TestCheckTarget(t *testing.T) {
	t.Run("AllFieldsCompared", func(t *testing.T) {
		target := Profile{Calories: "500", ProteinGrams: "40g"}
		profile := Profile{Calories: "480 kcal", ProteinGrams: "50g"}
		// Protein 50 is outside [32, 48].
		ok, err := CheckTarget(profile, target, DefaultTolerance)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("expected protein to fail the band")
		}
	})

	t.Run("MissingFieldFails", func(t *testing.T) {
		target := Profile{Calories: "500", ProteinGrams: "40"}
		profile := Profile{Calories: "500"}
		ok, err := CheckTarget(profile, target, DefaultTolerance)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("a profile missing a targeted field must be excluded, not skipped")
		}
	})

	t.Run("UntargetedFieldIgnored", func(t *testing.T) {
		target := Profile{Calories: "500"}
		profile := Profile{Calories: "500", FatGrams: "unparseable"}
		ok, err := CheckTarget(profile, target, DefaultTolerance)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Error("fields absent from the target must not be compared")
		}
	})

	t.Run("ParseErrorSurfaced", func(t *testing.T) {
		target := Profile{Calories: "500"}
		profile := Profile{Calories: "lots"}
		_, err := CheckTarget(profile, target, DefaultTolerance)
		if !errors.Is(err, apperr.ErrParse) {
			t.Errorf("expected ErrParse, got %v", err)
		}
	})
}

func TestWithinTarget(t *testing.T) {
	target := Profile{Calories: "500"}
	if WithinTarget(Profile{Calories: "lots"}, target, DefaultTolerance) {
		t.Error("unparseable record must be treated as a miss in batch mode")
	}
	if !WithinTarget(Profile{Calories: "550 kcal"}, target, DefaultTolerance) {
		t.Error("550 kcal is inside the band for target 500")
	}
}
