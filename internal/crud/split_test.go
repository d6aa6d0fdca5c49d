package crud

import (
	"errors"
	"testing"
)

func TestCheckSplit(t *testing.T) {
	cases := []struct {
		name   string
		total  int64
		splits []int64
		wantOK bool
	}{
		{name: "no splits", total: 100, wantOK: true},
		{name: "exact", total: 100, splits: []int64{60, 40}, wantOK: true},
		{name: "under", total: 100, splits: []int64{30}, wantOK: true},
		{name: "over", total: 100, splits: []int64{60, 50}, wantOK: false},
		{name: "zero total with splits", total: 0, splits: []int64{1}, wantOK: false},
		{name: "repeated amounts summed", total: 100, splits: []int64{50, 50, 50}, wantOK: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckSplit(tc.total, tc.splits)
			if tc.wantOK {
				if err != nil {
					t.Fatalf("expected ok, got %v", err)
				}
				return
			}
			if !errors.Is(err, ErrValidationFailed) {
				t.Fatalf("expected validation failure, got %v", err)
			}
		})
	}
}
