package reddit

import "encoding/json"

// ListingResponse from GET /r/{subreddit}/{sort}.json
type ListingResponse struct {
	Kind string       `json:"kind"`
	Data *ListingData `json:"data"`
}

// ListingData is the payload of a listing. Children is a pointer so that an
// absent array can be told apart from an empty one.
type ListingData struct {
	After    string   `json:"after"`
	Before   string   `json:"before"`
	Children *[]Thing `json:"children"`
}

// Thing wraps one listing entry.
type Thing struct {
	Kind string   `json:"kind"`
	Data PostData `json:"data"`
}

// PostData holds the raw fields of a post. Fields used for display are kept
// as raw JSON tokens and decoded by ToItem.
type PostData struct {
	Name       string          `json:"name"`
	Title      json.RawMessage `json:"title"`
	Permalink  json.RawMessage `json:"permalink"`
	CreatedUTC json.RawMessage `json:"created_utc"`
}
