package domain

const (
	ExternalRoleUser      = "user"
	ExternalProviderEmail = "email"
)

// ExternalUser is the denormalized account copy living in the external
// store's users collection.
type ExternalUser struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	AvatarURL      string    `json:"avatar_url"`
	Bio            string    `json:"bio"`
	Role           string    `json:"role"`
	Provider       string    `json:"provider"`
	EmailConfirmed bool      `json:"email_confirmed"`
	CreatedAt      Timestamp `json:"created_at"`
	UpdatedAt      Timestamp `json:"updated_at"`
	LastSignIn     Timestamp `json:"last_sign_in"`
}

// ExternalUserInput is the writable part of an external user. Nil timestamps
// are left to the store's defaults.
type ExternalUserInput struct {
	Email          string     `json:"email" bson:"email"`
	FullName       string     `json:"full_name" bson:"full_name"`
	Role           string     `json:"role" bson:"role"`
	Provider       string     `json:"provider" bson:"provider"`
	EmailConfirmed bool       `json:"email_confirmed" bson:"email_confirmed"`
	CreatedAt      *Timestamp `json:"created_at,omitempty" bson:"-"`
	UpdatedAt      *Timestamp `json:"updated_at,omitempty" bson:"-"`
}

// MirrorPayload builds the external copy of a freshly registered account.
func MirrorPayload(a *Account) ExternalUserInput {
	return ExternalUserInput{
		Email:          a.Email,
		FullName:       a.Username,
		Role:           ExternalRoleUser,
		Provider:       ExternalProviderEmail,
		EmailConfirmed: false,
	}
}
