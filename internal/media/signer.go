// Package media signs and performs image uploads to Cloudinary. Dish
// images are stored by URL; the binary never passes through the document
// store.
package media

import (
	"net/url"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2/api"
)

// DefaultFolder is where dish images are uploaded unless configured otherwise.
const DefaultFolder = "dish-assets"

// Credentials identify a Cloudinary account.
type Credentials struct {
	CloudName string
	APIKey    string
	APISecret string
}

// Signature authorizes one direct upload. The client must send the same
// folder and public_id it asked to have signed.
type Signature struct {
	Timestamp int64  `json:"timestamp"`
	Signature string `json:"signature"`
	APIKey    string `json:"apiKey"`
	CloudName string `json:"cloudName"`
	Folder    string `json:"folder,omitempty"`
	PublicID  string `json:"public_id,omitempty"`
}

// Signer issues upload signatures without exposing the API secret.
type Signer struct {
	creds Credentials
	now   func() time.Time
}

func NewSigner(c Credentials) *Signer {
	return &Signer{creds: c, now: time.Now}
}

// Sign returns a signature over the current timestamp and the optional
// folder and public id.
func (s *Signer) Sign(folder, publicID string) (Signature, error) {
	ts := s.now().Unix()
	params := map[string]string{"timestamp": strconv.FormatInt(ts, 10)}
	if folder != "" {
		params["folder"] = folder
	}
	if publicID != "" {
		params["public_id"] = publicID
	}
	sig, err := SignParams(params, s.creds.APISecret)
	if err != nil {
		return Signature{}, err
	}
	return Signature{
		Timestamp: ts,
		Signature: sig,
		APIKey:    s.creds.APIKey,
		CloudName: s.creds.CloudName,
		Folder:    folder,
		PublicID:  publicID,
	}, nil
}

// SignParams computes Cloudinary's request signature over the non-empty
// parameters.
func SignParams(params map[string]string, secret string) (string, error) {
	vals := url.Values{}
	for k, v := range params {
		if v != "" {
			vals.Set(k, v)
		}
	}
	return api.SignParameters(vals, secret)
}
