package domain

// TokenPair is the signed cookie pair issued on login. Both tokens carry
// the same claims; they differ only in lifetime.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
