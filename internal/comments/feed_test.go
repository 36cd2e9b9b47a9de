package comments

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"
)

func TestFeed_RetainsNewestFive(t *testing.T) {
	f := NewFeed()
	base := time.Now()
	rng := rand.New(rand.NewSource(3))

	var seen []time.Time
	for i := 0; i < 20; i++ {
		ts := base.Add(time.Duration(rng.Intn(10000)) * time.Millisecond)
		seen = append(seen, ts)
		f.Add(Comment{UUID: fmt.Sprint(i), Username: "u", Comment: "hi", Timestamp: ts})

		items := f.Items()
		want := len(seen)
		if want > WindowSize {
			want = WindowSize
		}
		if len(items) != want {
			t.Fatalf("after %d events len %d, want %d", i+1, len(items), want)
		}
		for j := 1; j < len(items); j++ {
			if items[j].Timestamp.After(items[j-1].Timestamp) {
				t.Fatalf("items not newest-first at %d", j)
			}
		}
		newest := seen[0]
		for _, s := range seen {
			if s.After(newest) {
				newest = s
			}
		}
		if !items[0].Timestamp.Equal(newest) {
			t.Fatalf("head %v, want newest %v", items[0].Timestamp, newest)
		}
	}
}

func TestFeed_OlderCommentDiscardedWhenFull(t *testing.T) {
	f := NewFeed()
	base := time.Now()
	for i := 0; i < WindowSize; i++ {
		f.Add(Comment{UUID: "same", Comment: fmt.Sprint(i), Timestamp: base.Add(time.Duration(i+1) * time.Second)})
	}
	f.Add(Comment{UUID: "late", Comment: "old", Timestamp: base})
	for _, c := range f.Items() {
		if c.UUID == "late" {
			t.Error("a comment older than the whole window should be dropped")
		}
	}
	if got := f.Items(); got[0].Comment != "4" || got[0].UUID != "same" {
		t.Errorf("head %+v", got[0])
	}
}

func TestFeed_ItemsIsCopy(t *testing.T) {
	f := NewFeed()
	f.Add(Comment{Comment: "a", Timestamp: time.Now()})
	items := f.Items()
	items[0].Comment = "changed"
	if f.Items()[0].Comment != "a" {
		t.Error("Items leaked internal storage")
	}
	c := f.Clone()
	c.Add(Comment{Comment: "b", Timestamp: time.Now().Add(time.Second)})
	if len(f.Items()) != 1 {
		t.Error("Clone shares storage with the original")
	}
}

func TestValidate(t *testing.T) {
	if got, err := Validate("  great game  "); err != nil || got != "great game" {
		t.Errorf("Validate = %q, %v", got, err)
	}
	if _, err := Validate("   "); !errors.Is(err, ErrEmpty) {
		t.Errorf("blank err %v, want ErrEmpty", err)
	}
	if _, err := Validate(strings.Repeat("x", MaxLength)); err != nil {
		t.Errorf("60 chars rejected: %v", err)
	}
	if _, err := Validate(strings.Repeat("é", MaxLength+1)); !errors.Is(err, ErrTooLong) {
		t.Errorf("61 chars err %v, want ErrTooLong", err)
	}
}
