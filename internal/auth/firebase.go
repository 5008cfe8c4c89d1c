package auth

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/weddingmoments/studio-backend/config"
)

// Clients are the Firebase Admin SDK handles shared by the server.
type Clients struct {
	Auth      *auth.Client
	Firestore *firestore.Client
}

// Close releases the Firestore connection, if one was opened.
func (c *Clients) Close() error {
	if c == nil || c.Firestore == nil {
		return nil
	}
	return c.Firestore.Close()
}

// InitializeFirebase initializes the Firebase Admin SDK. The Firestore client
// is only opened when withFirestore is set.
func InitializeFirebase(ctx context.Context, cfg *config.FirebaseConfig, withFirestore bool) (*Clients, error) {
	if cfg.CredentialsPath == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required")
	}

	var appCfg *firebase.Config
	if cfg.ProjectID != "" {
		appCfg = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	opt := option.WithCredentialsFile(cfg.CredentialsPath)
	app, err := firebase.NewApp(ctx, appCfg, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Auth client: %w", err)
	}

	clients := &Clients{Auth: authClient}
	if withFirestore {
		fs, err := app.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get Firestore client: %w", err)
		}
		clients.Firestore = fs
	}
	return clients, nil
}
