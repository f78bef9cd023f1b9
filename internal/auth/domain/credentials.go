package domain

// AuthCredentials is the signup/signin request body.
type AuthCredentials struct {
	Username string `json:"username" validate:"required,min=4,max=20"`
	Password string `json:"password" validate:"required,min=8,max=20,strongpassword"`
}

// TokenPayload holds the verified claims of an access token.
type TokenPayload struct {
	Username string
}
