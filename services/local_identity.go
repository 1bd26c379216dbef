package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventnow/eventnow_backend/models"
)

// LocalIdentityService authenticates against bcrypt hashes stored in the
// admin_users collection. Used when Firebase credentials are not
// configured.
type LocalIdentityService struct {
	users *mongo.Collection
}

func NewLocalIdentityService(db *mongo.Database) *LocalIdentityService {
	return &LocalIdentityService{users: db.Collection("admin_users")}
}

func (s *LocalIdentityService) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	var user models.AdminUser
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrInvalidCredentials
		}
		if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
			return nil, models.ErrUnavailable
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	return &Session{UserID: user.ID.Hex(), Email: user.Email}, nil
}

// SignOut is a no-op for the local provider: credentials are stateless
// and session revocation happens through the token blacklist.
func (s *LocalIdentityService) SignOut(ctx context.Context, userID string) error {
	return nil
}
