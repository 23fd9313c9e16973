// internal/platform/di/shared/infra.go
package shared

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/db"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"storefront/internal/adapters/out/localstore"
	appcfg "storefront/internal/infra/config"
	"storefront/internal/infra/secret"
)

// Infra is shared runtime infrastructure for DI.
// - owns external clients (Firebase App/Auth/RTDB, Firestore, GCS, SecretManager)
// - owns the durable local store
//
// IMPORTANT:
// Infra must NOT depend on routers, handlers or usecases.
type Infra struct {
	Config    *appcfg.Config
	ProjectID string

	// Clients (owned; Close-managed). nil when not configured.
	FirebaseApp   *firebase.App
	FirebaseAuth  *firebaseauth.Client
	RTDB          *db.Client
	Firestore     *firestore.Client
	GCS           *storage.Client
	SecretManager *secretmanager.Client

	Local *localstore.SQLiteStore

	// WebAPIKey is the Identity Toolkit key (config or Secret Manager).
	WebAPIKey string

	log *zap.Logger
}

// NewInfra initializes shared infra.
// The local store and the selected remote store are strict (return error).
// Firebase Auth, GCS and Secret Manager are best-effort (warn + continue).
func NewInfra(ctx context.Context, cfg *appcfg.Config, logger *zap.Logger) (*Infra, error) {
	if cfg == nil {
		return nil, errors.New("shared.infra: config is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.Named("shared.infra")

	inf := &Infra{
		Config:    cfg,
		ProjectID: strings.TrimSpace(cfg.FirebaseProjectID),
		WebAPIKey: strings.TrimSpace(cfg.FirebaseWebAPIKey),
		log:       log,
	}

	// Credentials file (optional; mainly for local dev)
	var clientOpts []option.ClientOption
	if credFile := strings.TrimSpace(cfg.GCPCreds); credFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(credFile))
		log.Info("using credentials file for GCP clients", zap.String("file", redactPath(credFile)))
	} else {
		log.Info("using Application Default Credentials (no credentials file configured)")
	}

	// 1) Local store (strict)
	local, err := localstore.Open(cfg.LocalStorePath)
	if err != nil {
		return nil, fmt.Errorf("shared.infra: local store: %w", err)
	}
	inf.Local = local

	// 2) Firebase App. memory モードでは projectID があるときだけ（Auth 用）
	if cfg.UsesFirebase() || inf.ProjectID != "" {
		fbCfg := &firebase.Config{ProjectID: inf.ProjectID, DatabaseURL: strings.TrimSpace(cfg.FirebaseDatabaseURL)}
		app, err := firebase.NewApp(ctx, fbCfg, clientOpts...)
		if err != nil {
			if cfg.UsesFirebase() {
				_ = inf.Close()
				return nil, fmt.Errorf("shared.infra: firebase.NewApp failed (project=%s): %w", inf.ProjectID, err)
			}
			log.Warn("firebase app init failed; identity provider disabled", zap.Error(err))
		} else {
			inf.FirebaseApp = app
		}
	}

	// 3) Remote store (strict for the selected one)
	switch cfg.RemoteStore {
	case appcfg.RemoteStoreRTDB:
		if inf.FirebaseApp == nil {
			_ = inf.Close()
			return nil, errors.New("shared.infra: firebase app is nil (rtdb)")
		}
		client, err := inf.FirebaseApp.Database(ctx)
		if err != nil {
			_ = inf.Close()
			return nil, fmt.Errorf("shared.infra: firebase database client: %w", err)
		}
		inf.RTDB = client
		log.Info("realtime database connected", zap.String("url", cfg.FirebaseDatabaseURL))

	case appcfg.RemoteStoreFirestore:
		client, err := firestore.NewClient(ctx, inf.ProjectID, clientOpts...)
		if err != nil {
			_ = inf.Close()
			return nil, fmt.Errorf("shared.infra: firestore.NewClient failed (project=%s): %w", inf.ProjectID, err)
		}
		inf.Firestore = client
		log.Info("firestore connected", zap.String("project", inf.ProjectID))

	case appcfg.RemoteStoreMemory:
		log.Warn("remote store is in-memory; data is lost on restart")
	}

	// 4) Firebase Auth (best-effort)
	if inf.FirebaseApp != nil {
		authClient, err := inf.FirebaseApp.Auth(ctx)
		if err != nil {
			log.Warn("firebase auth init failed", zap.Error(err))
		} else {
			inf.FirebaseAuth = authClient
			log.Info("firebase auth initialized")
		}
	}

	// 5) Web API key from Secret Manager (best-effort)
	if inf.WebAPIKey == "" && strings.TrimSpace(cfg.WebAPIKeySecret) != "" {
		sm, err := secretmanager.NewClient(ctx, clientOpts...)
		if err != nil {
			log.Warn("secretmanager.NewClient failed; password sign-in disabled", zap.Error(err))
		} else {
			inf.SecretManager = sm
			key, err := secret.NewProviderSM(sm, inf.ProjectID).Latest(ctx, cfg.WebAPIKeySecret)
			if err != nil {
				log.Warn("web api key secret not readable", zap.Error(err))
			} else {
				inf.WebAPIKey = key
			}
		}
	}

	// 6) GCS (best-effort, only when a bucket is configured)
	if strings.TrimSpace(cfg.ProductImageBucket) != "" {
		gcsClient, err := storage.NewClient(ctx, clientOpts...)
		if err != nil {
			log.Warn("storage.NewClient failed; image upload disabled", zap.Error(err))
		} else {
			inf.GCS = gcsClient
			log.Info("gcs storage client initialized", zap.String("bucket", cfg.ProductImageBucket))
		}
	} else {
		log.Info("PRODUCT_IMAGE_BUCKET is empty; image upload disabled")
	}

	return inf, nil
}

// Close releases every owned client. Safe on a partially built Infra.
func (i *Infra) Close() error {
	if i == nil {
		return nil
	}
	var errs []error
	if i.Firestore != nil {
		errs = append(errs, i.Firestore.Close())
	}
	if i.GCS != nil {
		errs = append(errs, i.GCS.Close())
	}
	if i.SecretManager != nil {
		errs = append(errs, i.SecretManager.Close())
	}
	if i.Local != nil {
		errs = append(errs, i.Local.Close())
	}
	return errors.Join(errs...)
}

func redactPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	p = strings.ReplaceAll(p, "\\", "/")
	parts := strings.Split(p, "/")
	last := parts[len(parts)-1]
	if last == "" {
		return "***"
	}
	return "***/" + last
}
