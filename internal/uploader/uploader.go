package uploader

import "context"

// Result is what the media store reports back for a stored object.
type Result struct {
	URL string
	Key string
}

// Uploader moves a locally staged file into external media storage and
// returns its stable public URL. Implementations must delete the local file
// whether or not the upload succeeds, so failed requests do not accumulate
// temp files on disk. An empty localPath yields (nil, nil) so callers can
// pass optional files through unconditionally.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (*Result, error)
}
