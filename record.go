package linktag

// Record is one processed URL. Title and body are derived from the
// fetched HTML and may be empty when the fetch or extraction failed;
// hashtags stay empty until tagging succeeds.
//
// A record with neither title nor body never carries hashtags: tagging
// is only attempted when there is content to tag.
type Record struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	Hashtags string `json:"hashtags"`
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "record URL required")
	}
	if r.Title == "" && r.Body == "" && r.Hashtags != "" {
		return Errorf(EINVALID, "record %q has hashtags but no content", r.URL)
	}
	return nil
}

// HasContent reports whether the record has anything worth tagging.
func (r *Record) HasContent() bool {
	return r.Title != "" || r.Body != ""
}
