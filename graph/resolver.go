package graph

import (
	"go.uber.org/zap"

	"github.com/VadimK2/usergraph/internal/post"
	"github.com/VadimK2/usergraph/internal/user"
)

// Resolver is the root of all Query and Mutation resolvers.
// The storage gateways are injected so tests can swap in the memory backend.
type Resolver struct {
	UserStore user.UserStorage
	PostStore post.PostStorage
	Logger    *zap.Logger
}

func NewResolver(users user.UserStorage, posts post.PostStorage, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		UserStore: users,
		PostStore: posts,
		Logger:    logger,
	}
}
