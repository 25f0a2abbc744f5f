package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookmarkSetKeepsInsertionOrder(t *testing.T) {
	s := NewBookmarkSet("c", "a", "b", "a")

	assert.Equal(t, []string{"c", "a", "b"}, s.UUIDs())
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("z"))
}

func TestBookmarkSetIsAValue(t *testing.T) {
	original := NewBookmarkSet("a")

	added := original.With("b")
	removed := added.Without("a")

	assert.Equal(t, []string{"a"}, original.UUIDs())
	assert.Equal(t, []string{"a", "b"}, added.UUIDs())
	assert.Equal(t, []string{"b"}, removed.UUIDs())
}

func TestBookmarkSetSet(t *testing.T) {
	var empty BookmarkSet

	s := empty.Set("a", true)
	assert.True(t, s.Has("a"))
	assert.False(t, empty.Has("a"))

	s = s.Set("a", false)
	assert.False(t, s.Has("a"))
	assert.Equal(t, 0, s.Len())
}

func TestBookmarkSetEqual(t *testing.T) {
	assert.True(t, NewBookmarkSet("a", "b").Equal(NewBookmarkSet("a", "b")))
	assert.False(t, NewBookmarkSet("a", "b").Equal(NewBookmarkSet("b", "a")))
	assert.True(t, BookmarkSet{}.Equal(NewBookmarkSet()))
}

func TestVideoHelpers(t *testing.T) {
	assert.Equal(t, "Untitled Video", Video{UUID: "1"}.DisplayCaption())
	assert.Equal(t, "hello", Video{UUID: "1", CustomCaption: "hello"}.DisplayCaption())

	tagged := TagCategory([]Video{{UUID: "1"}, {UUID: "2"}}, "cats")
	assert.Equal(t, "cats", tagged[0].Category)
	assert.Equal(t, "cats", tagged[1].Category)

	var nilSession *Session
	assert.Equal(t, "User", nilSession.DisplayName())
	assert.Equal(t, "Ann", (&Session{User: SessionUser{FirstName: "Ann"}}).DisplayName())
}
