package entity

import (
	"time"
)

// Account is the aggregate root for the account lifecycle.
// PasswordDigest holds the hashed secret and never leaves the repository
// boundary; callers outside persistence work with PublicAccount.
type Account struct {
	ID             string
	Fullname       string
	Username       string
	Email          string
	PasswordDigest string `json:"-"`
	Role           Role
	ProfilePicture string
	IsActive       bool
	ActivationCode string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PublicAccount is the external representation of an Account
type PublicAccount struct {
	ID             string    `json:"id"`
	Fullname       string    `json:"fullname"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Role           Role      `json:"role"`
	ProfilePicture string    `json:"profilePicture"`
	IsActive       bool      `json:"isActive"`
	ActivationCode string    `json:"activationCode"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Project strips the password digest from a.
func Project(a *Account) *PublicAccount {
	if a == nil {
		return nil
	}
	return &PublicAccount{
		ID:             a.ID,
		Fullname:       a.Fullname,
		Username:       a.Username,
		Email:          a.Email,
		Role:           a.Role,
		ProfilePicture: a.ProfilePicture,
		IsActive:       a.IsActive,
		ActivationCode: a.ActivationCode,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
