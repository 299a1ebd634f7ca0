package entity

// AuthAccount is the opaque account handle returned by the identity
// provider after a successful credential creation.
type AuthAccount struct {
	ID    string `json:"account_id"`
	Email string `json:"email"`
}

// AuthSession is the opaque session handle returned by a successful
// sign-in. The token material is passed through to the client untouched.
type AuthSession struct {
	AccountID    string `json:"account_id"`
	Email        string `json:"email"`
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    string `json:"expires_in,omitempty"`
}

// RegistrationStatus distinguishes a fully registered user from the known
// partial-failure state where the credential exists but the profile write
// failed.
type RegistrationStatus string

const (
	RegistrationComplete RegistrationStatus = "COMPLETE"
	RegistrationPartial  RegistrationStatus = "PARTIAL"
)
