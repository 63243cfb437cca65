package firebase

import (
	"context"
	"time"

	"firebase.google.com/go/v4/auth"

	"bookswap/internal/domain/entity"
)

// FirebaseAuthClient adapts the Firebase Admin auth client to service.IdentityProvider.
type FirebaseAuthClient struct {
	client *auth.Client
}

func NewFirebaseAuthClient(client *auth.Client) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client: client,
	}
}

func (f *FirebaseAuthClient) VerifySession(ctx context.Context, sessionCookie string) (*entity.Identity, error) {
	token, err := f.client.VerifySessionCookieAndCheckRevoked(ctx, sessionCookie)
	if err != nil {
		return nil, err
	}

	return identityFromToken(token), nil
}

func (f *FirebaseAuthClient) CreateSession(ctx context.Context, idToken string, expiresIn time.Duration) (string, error) {
	return f.client.SessionCookie(ctx, idToken, expiresIn)
}

func (f *FirebaseAuthClient) RevokeSessions(ctx context.Context, uid string) error {
	return f.client.RevokeRefreshTokens(ctx, uid)
}

func (f *FirebaseAuthClient) GetUser(ctx context.Context, uid string) (*entity.Identity, error) {
	user, err := f.client.GetUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	return identityFromRecord(user), nil
}

func (f *FirebaseAuthClient) UpdateUser(ctx context.Context, uid string, update entity.IdentityUpdate) (*entity.Identity, error) {
	params := &auth.UserToUpdate{}
	if update.Email != "" {
		params = params.Email(update.Email)
	}
	if update.DisplayName != "" {
		params = params.DisplayName(update.DisplayName)
	}
	if update.Password != "" {
		params = params.Password(update.Password)
	}

	user, err := f.client.UpdateUser(ctx, uid, params)
	if err != nil {
		return nil, err
	}

	return identityFromRecord(user), nil
}

func (f *FirebaseAuthClient) DeleteUser(ctx context.Context, uid string) error {
	return f.client.DeleteUser(ctx, uid)
}

func identityFromToken(token *auth.Token) *entity.Identity {
	identity := &entity.Identity{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		identity.DisplayName = name
	}
	return identity
}

func identityFromRecord(user *auth.UserRecord) *entity.Identity {
	if user == nil || user.UserInfo == nil {
		return &entity.Identity{}
	}
	return &entity.Identity{
		UID:         user.UID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}
}
