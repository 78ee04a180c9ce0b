package counter

import (
	"testing"

	"github.com/inkwell-blog/inkwell/internal/models"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		value    int64
		dir      Direction
		expected int64
	}{
		{"increment from zero", 0, Increment, 1},
		{"increment from positive", 41, Increment, 42},
		{"decrement from positive", 5, Decrement, 4},
		{"decrement from one", 1, Decrement, 0},
		{"decrement clamps at zero", 0, Decrement, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Apply(tt.value, tt.dir)
			if result != tt.expected {
				t.Errorf("Apply(%d, %v) = %d, want %d", tt.value, tt.dir, result, tt.expected)
			}
		})
	}
}

func TestApplySequentialIncrements(t *testing.T) {
	var v int64
	for i := 0; i < 10; i++ {
		v = Apply(v, Increment)
	}
	if v != 10 {
		t.Errorf("10 increments from 0 = %d, want 10", v)
	}
}

func TestAdjustPostLikes(t *testing.T) {
	post := &models.Post{}

	v, err := Adjust(post, "likes", Increment)
	if err != nil {
		t.Fatalf("Adjust() error: %v", err)
	}
	if v != 1 || post.Likes != 1 {
		t.Errorf("after increment: returned %d, field %d, want 1", v, post.Likes)
	}

	v, err = Adjust(post, "likes", Decrement)
	if err != nil {
		t.Fatalf("Adjust() error: %v", err)
	}
	if v != 0 || post.Likes != 0 {
		t.Errorf("after decrement: returned %d, field %d, want 0", v, post.Likes)
	}

	// Decrementing again stays clamped
	v, err = Adjust(post, "likes", Decrement)
	if err != nil {
		t.Fatalf("Adjust() error: %v", err)
	}
	if v != 0 {
		t.Errorf("decrement below zero = %d, want 0", v)
	}
}

func TestAdjustUnknownField(t *testing.T) {
	tag := &models.Tag{}
	if _, err := Adjust(tag, "likes", Increment); err == nil {
		t.Error("expected error for unknown counter field on Tag")
	}
	if _, err := Adjust(tag, "postCount", Increment); err != nil {
		t.Errorf("postCount should be a valid Tag counter: %v", err)
	}
}

func TestAdjustTaxonomyCounters(t *testing.T) {
	mutables := []struct {
		name string
		m    Mutable
	}{
		{"tag", &models.Tag{}},
		{"category", &models.Category{}},
	}

	for _, tt := range mutables {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Adjust(tt.m, "postCount", Increment); err != nil {
				t.Fatalf("increment error: %v", err)
			}
			v, _ := tt.m.Counter("postCount")
			if v != 1 {
				t.Errorf("postCount = %d, want 1", v)
			}
		})
	}
}
