package model

// Preferences are per-client UI preferences. They survive browser restarts
// but are not part of the session contract.
type Preferences struct {
	Theme         string `json:"theme"`
	CookieConsent string `json:"cookie_consent"`
}
