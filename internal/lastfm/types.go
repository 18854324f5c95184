package lastfm

import (
	"bytes"
	"encoding/json"
)

// list decodes a Last.fm collection. The API sends a single object instead
// of an array when there is one match, and "" when there are none.
type list[T any] []T

func (l *list[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")), bytes.Equal(data, []byte(`""`)):
		*l = nil
		return nil
	case data[0] == '[':
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}

	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return err
	}
	*l = list[T]{item}
	return nil
}

// image is a sized artwork URL. Sizes run from "small" to "extralarge".
type image struct {
	URL  string `json:"#text"`
	Size string `json:"size"`
}

// searchTrack is an entry of track.search. The artist is a plain name.
type searchTrack struct {
	Name   string  `json:"name"`
	Artist string  `json:"artist"`
	URL    string  `json:"url"`
	Image  []image `json:"image"`
}

// trackSearchResponse is the JSON response for track.search.
type trackSearchResponse struct {
	Results struct {
		TrackMatches struct {
			Track list[searchTrack] `json:"track"`
		} `json:"trackmatches"`
	} `json:"results"`
}

// tagTrack is an entry of tag.getTopTracks. The artist is an object.
type tagTrack struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Artist struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"artist"`
	Image []image `json:"image"`
}

// tagTopTracksResponse is the JSON response for tag.getTopTracks.
type tagTopTracksResponse struct {
	Tracks struct {
		Track list[tagTrack] `json:"track"`
	} `json:"tracks"`
}

// apiError represents a Last.fm API error response.
type apiError struct {
	Error   int    `json:"error"`
	Message string `json:"message"`
}
