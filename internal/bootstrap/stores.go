package bootstrap

import (
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/redis/go-redis/v9"

	"github.com/weddingmoments/studio-backend/config"
	catalog "github.com/weddingmoments/studio-backend/internal/catalog/domain"
	"github.com/weddingmoments/studio-backend/internal/docstore"
	offers "github.com/weddingmoments/studio-backend/internal/offers/domain"
	users "github.com/weddingmoments/studio-backend/internal/users/domain"
)

const (
	collectionServices = "services"
	collectionOffers   = "offers"
	collectionUsers    = "users"

	redisNamespace = "studio"
)

// Collections are the three live document collections the service mirrors.
type Collections struct {
	Services docstore.Collection[catalog.Service]
	Offers   docstore.Collection[offers.Offer]
	Users    docstore.Collection[users.UserProfile]
}

// OpenCollections binds the collections to the configured backend. Only
// the client for that backend needs to be non-nil.
func OpenCollections(backend string, fs *firestore.Client, rdb *redis.Client) (Collections, error) {
	switch backend {
	case config.StoreBackendFirestore:
		if fs == nil {
			return Collections{}, fmt.Errorf("firestore backend selected but no firestore client")
		}
		return Collections{
			Services: docstore.NewFirestoreCollection(fs, collectionServices, catalog.CreatedBefore),
			Offers:   docstore.NewFirestoreCollection(fs, collectionOffers, offers.CreatedBefore),
			Users:    docstore.NewFirestoreCollection(fs, collectionUsers, users.JoinedBefore),
		}, nil
	case config.StoreBackendRedis:
		if rdb == nil {
			return Collections{}, fmt.Errorf("redis backend selected but no redis client")
		}
		return Collections{
			Services: docstore.NewRedisCollection[catalog.Service](rdb, redisNamespace, collectionServices),
			Offers:   docstore.NewRedisCollection[offers.Offer](rdb, redisNamespace, collectionOffers),
			Users:    docstore.NewRedisCollection[users.UserProfile](rdb, redisNamespace, collectionUsers),
		}, nil
	default:
		return Collections{}, fmt.Errorf("unknown store backend %q", backend)
	}
}
