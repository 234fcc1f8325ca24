package slider

// Package slider keeps the reading position of a session: the current
// logical slide, how many slides the publication spans in single or spread
// mode and where the slide strip sits in the viewport. Position changes are
// reported to the pages so they can prefetch or release their images.
