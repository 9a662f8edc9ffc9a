package model

import (
	"errors"
	"testing"
	"time"
)

func TestParseFrequency(t *testing.T) {
	valid := []string{"daily", "weekly", "monthly", "yearly"}
	for _, s := range valid {
		f, err := ParseFrequency(s)
		if err != nil {
			t.Errorf("ParseFrequency(%q) returned error: %v", s, err)
		}
		if string(f) != s {
			t.Errorf("ParseFrequency(%q) = %q", s, f)
		}
	}

	for _, s := range []string{"", "biweekly", "Monthly", "once", "quarterly"} {
		if _, err := ParseFrequency(s); !errors.Is(err, ErrInvalidFrequency) {
			t.Errorf("ParseFrequency(%q) error = %v, want ErrInvalidFrequency", s, err)
		}
	}
}

func TestDateOnly(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	// 23:30 New York on Mar 1 is already Mar 2 in UTC; normalization follows UTC.
	in := time.Date(2025, time.March, 1, 23, 30, 45, 123, loc)
	got := DateOnly(in)
	want := time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateOnly(%v) = %v, want %v", in, got, want)
	}

	// Already-normalized dates are unchanged.
	if d := DateOnly(want); !d.Equal(want) {
		t.Errorf("DateOnly(normalized) = %v, want %v", d, want)
	}
}

func TestCents(t *testing.T) {
	cases := []struct {
		amount float64
		want   int64
	}{
		{0, 0},
		{12.34, 1234},
		{12.345, 1235},
		{0.1, 10},
		{19.99, 1999},
		{2500, 250000},
	}
	for _, tc := range cases {
		if got := Cents(tc.amount); got != tc.want {
			t.Errorf("Cents(%v) = %d, want %d", tc.amount, got, tc.want)
		}
	}
}

func TestExpenseTemplateCloneIsDeep(t *testing.T) {
	expiry := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)
	orig := &ExpenseTemplate{
		ID:         "t1",
		UserID:     "u1",
		Amount:     9.5,
		ExpiryDate: &expiry,
	}

	cp := orig.Clone()
	if cp == orig {
		t.Fatal("Clone returned the same pointer")
	}
	if cp.ExpiryDate == orig.ExpiryDate {
		t.Fatal("Clone shares the ExpiryDate pointer")
	}

	*cp.ExpiryDate = cp.ExpiryDate.AddDate(1, 0, 0)
	if !orig.ExpiryDate.Equal(expiry) {
		t.Errorf("mutating the clone changed the original expiry: %v", orig.ExpiryDate)
	}
}
