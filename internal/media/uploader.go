package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultEndpoint    = "https://api.cloudinary.com"
	DefaultMaxBytes    = 5 << 20
	DefaultConcurrency = 4
)

var (
	ErrTooLarge      = errors.New("file is larger than the upload limit")
	ErrNotImage      = errors.New("file is not an image")
	ErrEmptyFile     = errors.New("file is empty")
	ErrNoURL         = errors.New("upload response has no secure_url")
	ErrNotConfigured = errors.New("media uploads are not configured")
)

// File is one image to upload. Open is called once, when the upload starts.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// Result is the outcome of one file in a batch.
type Result struct {
	Name  string `json:"name"`
	URL   string `json:"url,omitempty"`
	Error string `json:"error,omitempty"`
	Err   error  `json:"-"`
}

// Options tune an Uploader. Zero values fall back to the defaults.
// Endpoint is the upload API prefix, without the version segment.
type Options struct {
	Endpoint    string
	Folder      string
	MaxBytes    int64
	Concurrency int
	HTTPClient  *http.Client
	Logger      *slog.Logger
}

// Uploader sends images to Cloudinary through the official SDK.
type Uploader struct {
	signer *Signer
	opts   Options
	cld    *cloudinary.Cloudinary
}

// NewUploader never fails; an Uploader built from incomplete credentials
// answers every upload with ErrNotConfigured.
func NewUploader(c Credentials, o Options) *Uploader {
	if o.Endpoint == "" {
		o.Endpoint = DefaultEndpoint
	}
	if o.Folder == "" {
		o.Folder = DefaultFolder
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = DefaultMaxBytes
	}
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	u := &Uploader{signer: NewSigner(c), opts: o}
	if c.CloudName != "" && c.APIKey != "" && c.APISecret != "" {
		cld, err := cloudinary.NewFromParams(c.CloudName, c.APIKey, c.APISecret)
		if err != nil {
			o.Logger.Warn("cloudinary client not created", "err", err)
			return u
		}
		cld.Upload.Config.API.UploadPrefix = strings.TrimRight(o.Endpoint, "/")
		if o.HTTPClient != nil {
			cld.Upload.Client = *o.HTTPClient
		}
		u.cld = cld
	}
	return u
}

// Signer returns the signer sharing this uploader's credentials.
func (u *Uploader) Signer() *Signer { return u.signer }

// Folder is the folder uploads are placed in.
func (u *Uploader) Folder() string { return u.opts.Folder }

// Validate checks size and content type before anything is sent.
func (u *Uploader) Validate(f File) error {
	if f.Size == 0 {
		return ErrEmptyFile
	}
	if f.Size > u.opts.MaxBytes {
		return fmt.Errorf("%w (%d MB)", ErrTooLarge, u.opts.MaxBytes>>20)
	}
	if !strings.HasPrefix(strings.ToLower(f.ContentType), "image/") {
		return ErrNotImage
	}
	return nil
}

// Upload validates and uploads one file into the configured folder,
// returning its permanent URL.
func (u *Uploader) Upload(ctx context.Context, f File) (string, error) {
	if u.cld == nil {
		return "", ErrNotConfigured
	}
	if err := u.Validate(f); err != nil {
		return "", err
	}
	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()

	resp, err := u.cld.Upload.Upload(ctx, io.LimitReader(rc, u.opts.MaxBytes+1), uploader.UploadParams{
		Folder:       u.opts.Folder,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", f.Name, err)
	}
	if resp == nil {
		return "", ErrNoURL
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("upload %s: cloudinary: %s", f.Name, resp.Error.Message)
	}
	if resp.SecureURL == "" {
		return "", ErrNoURL
	}
	return resp.SecureURL, nil
}

// UploadAll uploads every file with bounded concurrency. A file that fails
// validation or upload is reported in its Result and does not stop the
// others. Results keep the order of files.
func (u *Uploader) UploadAll(ctx context.Context, files []File) []Result {
	results := make([]Result, len(files))
	var g errgroup.Group
	g.SetLimit(u.opts.Concurrency)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			res := Result{Name: f.Name}
			url, err := u.Upload(ctx, f)
			if err != nil {
				res.Err = err
				res.Error = err.Error()
				u.opts.Logger.Warn("image upload failed", "file", f.Name, "err", err)
			} else {
				res.URL = url
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()
	return results
}
