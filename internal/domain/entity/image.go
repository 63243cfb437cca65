package entity

// UploadedImage is the object store's reference to one stored image.
type UploadedImage struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// ImageSource is one image supplied by a client: raw bytes from a multipart
// upload, or a data URI (or remote URL) from a JSON body.
type ImageSource struct {
	Data    []byte
	DataURI string
	Name    string
}

type CleanupFailure struct {
	PublicID string
	Err      error
}

// CleanupReport is the logged outcome of a best-effort image deletion batch.
// It never turns into an error for the caller.
type CleanupReport struct {
	Attempted int
	Failures  []CleanupFailure
}

func (r CleanupReport) OK() bool {
	return len(r.Failures) == 0
}

func (r CleanupReport) Succeeded() int {
	return r.Attempted - len(r.Failures)
}
