package services

import (
	"context"
	"net/http"

	"github.com/agroaide/agroaide-client/internal/apiclient"
	"github.com/agroaide/agroaide-client/internal/domain"
)

// AuthResponse is returned by login and registration.
type AuthResponse struct {
	Token   string               `json:"token"`
	Profile domain.FarmerProfile `json:"profile"`
}

// ProfileResponse wraps the profile returned by /auth/me.
type ProfileResponse struct {
	Profile domain.FarmerProfile `json:"profile"`
}

// ProfileUpdateResponse is returned by /auth/profile.
type ProfileUpdateResponse struct {
	Message string               `json:"message"`
	Profile domain.FarmerProfile `json:"profile"`
}

// RegisterPayload carries the sign-up form. Only the first four fields are
// required by the backend.
type RegisterPayload struct {
	FullName             string                  `json:"fullName"`
	Email                string                  `json:"email"`
	Password             string                  `json:"password"`
	PasswordConfirmation string                  `json:"password_confirmation"`
	PhoneNumber          string                  `json:"phoneNumber,omitempty"`
	FarmName             string                  `json:"farmName,omitempty"`
	FarmLocation         string                  `json:"farmLocation,omitempty"`
	FarmLatitude         *float64                `json:"farmLatitude,omitempty"`
	FarmLongitude        *float64                `json:"farmLongitude,omitempty"`
	FarmSizeHectares     *float64                `json:"farmSizeHectares,omitempty"`
	SoilType             string                  `json:"soilType,omitempty"`
	IrrigationAccess     domain.IrrigationAccess `json:"irrigationAccess,omitempty"`
	Crops                []string                `json:"crops,omitempty"`
	ExperienceLevel      domain.ExperienceLevel  `json:"experienceLevel,omitempty"`
}

// ChangePasswordPayload is the body of /auth/change-password.
type ChangePasswordPayload struct {
	CurrentPassword         string `json:"currentPassword"`
	NewPassword             string `json:"newPassword"`
	NewPasswordConfirmation string `json:"newPassword_confirmation"`
}

// AuthService covers /auth.
type AuthService struct {
	client *apiclient.Client
}

// Login exchanges credentials for a token and profile.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	return apiclient.Request[AuthResponse](ctx, s.client, "/auth/login", apiclient.RequestOptions{
		Method: http.MethodPost,
		Body:   map[string]string{"email": email, "password": password},
	})
}

// Register creates an account and signs it in.
func (s *AuthService) Register(ctx context.Context, payload RegisterPayload) (*AuthResponse, error) {
	return apiclient.Request[AuthResponse](ctx, s.client, "/auth/register", apiclient.RequestOptions{
		Method: http.MethodPost,
		Body:   payload,
	})
}

// Logout revokes token on the server.
func (s *AuthService) Logout(ctx context.Context, token string) (*MessageResponse, error) {
	return apiclient.Request[MessageResponse](ctx, s.client, "/auth/logout", apiclient.RequestOptions{
		Method: http.MethodPost,
		Token:  token,
	})
}

// Me returns the profile of the token's owner.
func (s *AuthService) Me(ctx context.Context, token string) (*ProfileResponse, error) {
	return apiclient.Request[ProfileResponse](ctx, s.client, "/auth/me", apiclient.RequestOptions{
		Token: token,
	})
}

// RequestPasswordReset asks the backend to email recovery instructions.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*MessageResponse, error) {
	return apiclient.Request[MessageResponse](ctx, s.client, "/auth/recovery", apiclient.RequestOptions{
		Method: http.MethodPost,
		Body:   map[string]string{"email": email},
	})
}

// UpdateProfile sends the set fields of update.
func (s *AuthService) UpdateProfile(ctx context.Context, token string, update domain.ProfileUpdate) (*ProfileUpdateResponse, error) {
	return apiclient.Request[ProfileUpdateResponse](ctx, s.client, "/auth/profile", apiclient.RequestOptions{
		Method: http.MethodPut,
		Token:  token,
		Body:   update,
	})
}

// ChangePassword replaces the account password.
func (s *AuthService) ChangePassword(ctx context.Context, token string, payload ChangePasswordPayload) (*MessageResponse, error) {
	return apiclient.Request[MessageResponse](ctx, s.client, "/auth/change-password", apiclient.RequestOptions{
		Method: http.MethodPost,
		Token:  token,
		Body:   payload,
	})
}
