package db

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"safetysight/types"
)

// userDoc is the stored shape of an account: the public identity plus the
// credential hash, which never leaves this package.
type userDoc struct {
	Name         string     `firestore:"name"`
	Email        string     `firestore:"email"`
	Role         types.Role `firestore:"role"`
	Zone         string     `firestore:"zone,omitempty"`
	PasswordHash string     `firestore:"passwordHash"`
}

// Users manages the users collection.
type Users struct {
	client *firestore.Client
}

func NewUsers(client *firestore.Client) *Users {
	return &Users{client: client}
}

// ErrUserExists reports a registration against an already-taken email.
var ErrUserExists = errors.New("user already exists")

// ErrUserNotFound reports a lookup miss.
var ErrUserNotFound = errors.New("user not found")

// CreateUser persists a new account. Fails with ErrUserExists when the
// email is already registered.
func (u *Users) CreateUser(ctx context.Context, ident *types.Identity, passwordHash string) error {
	if _, err := u.byEmail(ctx, ident.Email); err == nil {
		return ErrUserExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return err
	}

	ref := u.client.Collection(CollectionUsers).NewDoc()
	ident.ID = ref.ID
	_, err := ref.Set(ctx, userDoc{
		Name:         ident.Name,
		Email:        ident.Email,
		Role:         ident.Role,
		Zone:         ident.Zone,
		PasswordHash: passwordHash,
	})
	if err != nil {
		return fmt.Errorf("creating user %s: %w", ident.Email, err)
	}
	return nil
}

// GetByEmail returns the identity and stored credential hash for an email.
func (u *Users) GetByEmail(ctx context.Context, email string) (*types.Identity, string, error) {
	doc, err := u.byEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}

	var stored userDoc
	if err := doc.DataTo(&stored); err != nil {
		return nil, "", fmt.Errorf("decoding user %s: %w", doc.Ref.ID, err)
	}
	return &types.Identity{
		ID:    doc.Ref.ID,
		Name:  stored.Name,
		Email: stored.Email,
		Role:  stored.Role,
		Zone:  stored.Zone,
	}, stored.PasswordHash, nil
}

// Get returns the identity for a user id.
func (u *Users) Get(ctx context.Context, id string) (*types.Identity, error) {
	doc, err := u.client.Collection(CollectionUsers).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user %s: %w", id, err)
	}

	var stored userDoc
	if err := doc.DataTo(&stored); err != nil {
		return nil, fmt.Errorf("decoding user %s: %w", id, err)
	}
	return &types.Identity{
		ID:    doc.Ref.ID,
		Name:  stored.Name,
		Email: stored.Email,
		Role:  stored.Role,
		Zone:  stored.Zone,
	}, nil
}

func (u *Users) byEmail(ctx context.Context, email string) (*firestore.DocumentSnapshot, error) {
	iter := u.client.Collection(CollectionUsers).
		Where("email", "==", email).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by email: %w", err)
	}
	return doc, nil
}
