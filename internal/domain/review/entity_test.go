package review

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNew_Validation(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		product string
		user    string
		rating  int
		comment string
		wantErr bool
	}{
		{name: "ok", product: "p1", user: "u1", rating: 5, comment: "great"},
		{name: "min rating", product: "p1", user: "u1", rating: 1},
		{name: "rating too low", product: "p1", user: "u1", rating: 0, wantErr: true},
		{name: "rating too high", product: "p1", user: "u1", rating: 6, wantErr: true},
		{name: "missing product", user: "u1", rating: 3, wantErr: true},
		{name: "missing user", product: "p1", rating: 3, wantErr: true},
		{name: "comment too long", product: "p1", user: "u1", rating: 3, comment: strings.Repeat("é", MaxCommentLength+1), wantErr: true},
		{name: "comment at limit", product: "p1", user: "u1", rating: 3, comment: strings.Repeat("é", MaxCommentLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.product, tt.user, "", tt.rating, tt.comment, now)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalid) {
					t.Fatalf("err = %v, want ErrInvalid", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if r.ID == "" || r.UserName != "Anonymous" {
				t.Fatalf("unexpected review %+v", r)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	if got := Summarize(nil); got != (Summary{}) {
		t.Fatalf("Summarize(nil) = %+v", got)
	}

	got := Summarize([]Review{{Rating: 5}, {Rating: 4}, {Rating: 4}})
	if got.Count != 3 || got.Average != 4.3 {
		t.Fatalf("Summarize = %+v, want {3 4.3}", got)
	}
}
