// Package db owns the Firebase clients: Firestore for entity documents and
// user accounts, the Realtime Database for anomaly/summary push data, and
// Cloud Storage for report attachments.
package db

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	firebasedb "firebase.google.com/go/db"
	"google.golang.org/api/option"

	cloudstorage "cloud.google.com/go/storage"
)

// Client bundles the hosted-backend handles the rest of the app depends on.
type Client struct {
	Firestore  *firestore.Client
	Realtime   *firebasedb.Client
	Bucket     *cloudstorage.BucketHandle
	BucketName string
}

// Config selects the Firebase project and credentials. Credentials come
// either base64-encoded in FIREBASE_CREDENTIALS or from a key file path.
type Config struct {
	CredentialsEnv  string // env var holding base64 service-account JSON
	CredentialsFile string // fallback path to a service-account key file
	DatabaseURL     string
	StorageBucket   string
}

// New initializes the Firebase app and all three service clients.
func New(ctx context.Context, cfg Config) (*Client, error) {
	opt, err := credentialOption(cfg)
	if err != nil {
		return nil, err
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		DatabaseURL:   cfg.DatabaseURL,
		StorageBucket: cfg.StorageBucket,
	}, opt)
	if err != nil {
		return nil, fmt.Errorf("initializing firebase app: %w", err)
	}

	fs, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("initializing firestore client: %w", err)
	}

	rtdb, err := app.Database(ctx)
	if err != nil {
		fs.Close()
		return nil, fmt.Errorf("initializing realtime database client: %w", err)
	}

	st, err := app.Storage(ctx)
	if err != nil {
		fs.Close()
		return nil, fmt.Errorf("initializing storage client: %w", err)
	}
	bucket, err := st.DefaultBucket()
	if err != nil {
		fs.Close()
		return nil, fmt.Errorf("opening storage bucket: %w", err)
	}

	return &Client{
		Firestore:  fs,
		Realtime:   rtdb,
		Bucket:     bucket,
		BucketName: cfg.StorageBucket,
	}, nil
}

// Close releases the Firestore connection. The other clients hold no
// long-lived resources of their own.
func (c *Client) Close() error {
	return c.Firestore.Close()
}

func credentialOption(cfg Config) (option.ClientOption, error) {
	if encoded := os.Getenv(cfg.CredentialsEnv); encoded != "" {
		creds, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", cfg.CredentialsEnv, err)
		}
		return option.WithCredentialsJSON(creds), nil
	}
	if cfg.CredentialsFile != "" {
		return option.WithCredentialsFile(cfg.CredentialsFile), nil
	}
	return nil, fmt.Errorf("no firebase credentials configured")
}
