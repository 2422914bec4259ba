package config

// MediaConfig holds the Cloudinary account and upload limits. Uploads are
// disabled when any of the three credentials is empty.
type MediaConfig struct {
	CloudName   string
	APIKey      string
	APISecret   string
	Folder      string
	MaxMB       int
	Concurrency int
	Endpoint    string
}

func LoadMediaConfig() MediaConfig {
	return MediaConfig{
		CloudName:   envStr("CLOUDINARY_CLOUD_NAME", ""),
		APIKey:      envStr("CLOUDINARY_API_KEY", ""),
		APISecret:   envStr("CLOUDINARY_API_SECRET", ""),
		Folder:      envStr("UPLOAD_FOLDER", "dish-assets"),
		MaxMB:       envInt("UPLOAD_MAX_MB", 5),
		Concurrency: envInt("UPLOAD_CONCURRENCY", 4),
		Endpoint:    envStr("CLOUDINARY_ENDPOINT", "https://api.cloudinary.com"),
	}
}

// Enabled reports whether all credentials are present.
func (m MediaConfig) Enabled() bool {
	return m.CloudName != "" && m.APIKey != "" && m.APISecret != ""
}
