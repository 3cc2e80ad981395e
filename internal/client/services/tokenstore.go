package services

import (
	"context"

	"github.com/dmitrijs2005/naijatax/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/naijatax/internal/common"
)

// TokenStore persists the single bearer token of this device. Every write
// is a full overwrite or a full delete.
type TokenStore interface {
	// Load returns "" when no token is stored.
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Delete(ctx context.Context) error
}

// MetadataTokenStore keeps the token under common.AccessTokenMetadataKey in
// the metadata repository.
type MetadataTokenStore struct {
	repo metadata.Repository
}

var _ TokenStore = (*MetadataTokenStore)(nil)

func NewMetadataTokenStore(repo metadata.Repository) *MetadataTokenStore {
	return &MetadataTokenStore{repo: repo}
}

func (s *MetadataTokenStore) Load(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, common.AccessTokenMetadataKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *MetadataTokenStore) Save(ctx context.Context, token string) error {
	return s.repo.Set(ctx, common.AccessTokenMetadataKey, []byte(token))
}

func (s *MetadataTokenStore) Delete(ctx context.Context) error {
	return s.repo.Delete(ctx, common.AccessTokenMetadataKey)
}
