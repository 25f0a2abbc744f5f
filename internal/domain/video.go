package domain

// Category is a feed label.  The order categories are returned in by the server is their display order.
type Category = string

// Video is a single short video as returned by a category feed
type Video struct {
	UUID          string `json:"uuid"`
	CustomCaption string `json:"custom_caption,omitempty"`
	// Category is attached client side, from the feed the video was requested under
	Category Category `json:"-"`
}

// DisplayCaption returns the caption to show for the video
func (v Video) DisplayCaption() string {
	if v.CustomCaption == "" {
		return "Untitled Video"
	}
	return v.CustomCaption
}

// TagCategory returns a copy of videos with the category set on every entry
func TagCategory(videos []Video, category Category) []Video {
	tagged := make([]Video, len(videos))
	for i, v := range videos {
		v.Category = category
		tagged[i] = v
	}
	return tagged
}
