package registry

import (
	"context"

	"go.uber.org/zap"
)

// Service couples the readiness tracker with the query client. It is the
// single shared gate annotation code consults before fetching metadata.
type Service struct {
	tracker         Tracker
	client          *Client
	defaultRegistry string
	logger          *zap.Logger
}

// NewService creates a registry service in the Uninitialized state.
// defaultRegistry labels metadata whose response carries no registry name;
// it may be empty.
func NewService(client *Client, defaultRegistry string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, defaultRegistry: defaultRegistry, logger: logger}
}

// State returns the current readiness.
func (s *Service) State() Readiness {
	return s.tracker.State()
}

// EnsureReady triggers the service bootstrap if it has not happened yet.
// Exactly one caller performs the bootstrap; everyone else returns
// immediately without blocking, whatever state the machine is in. A failed
// bootstrap reverts to Uninitialized so a later trigger can retry.
func (s *Service) EnsureReady(ctx context.Context) error {
	if !s.tracker.Begin() {
		return nil
	}

	s.logger.Info("bootstrapping metadata service session")
	if err := s.client.Connect(ctx); err != nil {
		s.tracker.Fail()
		s.logger.Warn("metadata service bootstrap failed", zap.Error(err))
		return err
	}
	s.tracker.MarkReady()
	s.logger.Info("metadata service ready")
	return nil
}

// FetchMetadata issues one live query. Callers are expected to check State
// first; calling while not Ready still works and simply bootstraps the
// session lazily.
func (s *Service) FetchMetadata(ctx context.Context, name, identifier string) (*DependencyMetadata, error) {
	meta, err := s.client.FetchMetadata(ctx, name, identifier)
	if err != nil {
		return nil, err
	}
	if meta.Registry == "" {
		meta.Registry = s.defaultRegistry
	}
	return meta, nil
}
