package domain

// TokenCredential is a single bearer/access token secret.
type TokenCredential struct {
	AccessToken string
}

// Configured reports whether the token is usable; empty means "not configured".
func (t TokenCredential) Configured() bool {
	return t.AccessToken != ""
}

// KeyCredential is a single API key secret.
type KeyCredential struct {
	APIKey string
}

// Configured reports whether the key is usable.
func (k KeyCredential) Configured() bool {
	return k.APIKey != ""
}

// TwitterCredential carries the four OAuth secrets Twitter requires.
type TwitterCredential struct {
	APIKey       string
	APISecret    string
	AccessToken  string
	AccessSecret string
}

// Configured requires all four fields to be present.
func (t TwitterCredential) Configured() bool {
	return t.APIKey != "" && t.APISecret != "" && t.AccessToken != "" && t.AccessSecret != ""
}

// Credentials bundles per-platform secrets supplied to the dispatcher.
// Absent fields are treated as "not configured", never sent as empty strings.
type Credentials struct {
	Facebook  TokenCredential
	Instagram TokenCredential
	Twitter   TwitterCredential
	Threads   TokenCredential
	YouTube   KeyCredential
	Pinterest TokenCredential
}
