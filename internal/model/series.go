package model

// Chapter is an entry of a series
type Chapter struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Href  string `json:"href,omitempty"` // manifest location, relative to the series manifest
}

// Chapter returns the chapter with the given id, or nil
func (s *Series) Chapter(id string) *Chapter {
	if s == nil {
		return nil
	}
	for _, ch := range s.Chapters {
		if ch.ID == id {
			return ch
		}
	}
	return nil
}

// Series is an ordered list of chapters the reader can advance through
type Series struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Chapters []*Chapter `json:"chapters"`
	Current  string     `json:"current"` // id of the chapter being read
}

// NewSeries creates a series positioned at the given chapter
func NewSeries(id string, current string, chapters ...*Chapter) *Series {
	return &Series{
		ID:       id,
		Chapters: chapters,
		Current:  current,
	}
}

// Next returns the chapter after the current one, or nil at the end of the series
func (s *Series) Next() *Chapter {
	if s == nil {
		return nil
	}
	for i, ch := range s.Chapters {
		if ch.ID == s.Current {
			if i+1 < len(s.Chapters) {
				return s.Chapters[i+1]
			}
			return nil
		}
	}
	return nil
}

// Advance moves the series to the given chapter if it belongs to the series
func (s *Series) Advance(chapterID string) bool {
	for _, ch := range s.Chapters {
		if ch.ID == chapterID {
			s.Current = chapterID
			return true
		}
	}
	return false
}
