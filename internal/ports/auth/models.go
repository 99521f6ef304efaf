package auth

// Claims representa la identidad extraída de un access token de GoTrue.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

// Session es el resultado de un sign-in exitoso.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
	UserID       string
	Email        string
}

// SignUpInput lleva las credenciales más el metadata de perfil que
// GoTrue guarda junto al usuario (full_name, role, phone).
type SignUpInput struct {
	Email    string
	Password string
	Metadata map[string]string
}
