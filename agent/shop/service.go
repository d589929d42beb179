package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"shopping-assistant/agent/catalog"
	"shopping-assistant/agent/state"
)

// Service runs each operation as one read-modify-write cycle against a
// resource's working memory. Invocations for the same resource are serialized
// through a per-resource lock so a snapshot read can never lose an update to
// a concurrent commit; different resources proceed in parallel.
type Service struct {
	catalog *catalog.Catalog
	store   state.Store
	now     func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(cat *catalog.Catalog, store state.Store) (*Service, error) {
	if cat == nil {
		return nil, errors.New("catalog is required")
	}
	if store == nil {
		return nil, errors.New("state store is required")
	}
	return &Service{
		catalog: cat,
		store:   store,
		now:     time.Now,
		locks:   make(map[string]*sync.Mutex),
	}, nil
}

// Search queries the catalog only; it touches no state.
func (s *Service) Search(f catalog.Filter) catalog.SearchResult {
	return s.catalog.Search(f)
}

func (s *Service) AddToCart(ctx context.Context, resourceID, productID string, quantity int) (Result, error) {
	return s.mutate(ctx, resourceID, func(st *state.ResourceState) (*state.ResourceState, Result) {
		return addItem(s.catalog, st, productID, quantity)
	})
}

func (s *Service) RemoveFromCart(ctx context.Context, resourceID, productID string) (Result, error) {
	return s.mutate(ctx, resourceID, func(st *state.ResourceState) (*state.ResourceState, Result) {
		return removeItem(st, productID)
	})
}

func (s *Service) UpdateCartItem(ctx context.Context, resourceID, productID string, quantity int) (Result, error) {
	return s.mutate(ctx, resourceID, func(st *state.ResourceState) (*state.ResourceState, Result) {
		return updateItem(s.catalog, st, productID, quantity)
	})
}

func (s *Service) ViewCart(ctx context.Context, resourceID string) (Result, error) {
	lock, err := s.lockFor(resourceID)
	if err != nil {
		return Result{}, err
	}
	lock.Lock()
	defer lock.Unlock()

	st, err := s.loadOrCreate(ctx, resourceID)
	if err != nil {
		return Result{}, err
	}
	return viewCart(st), nil
}

func (s *Service) ClearCart(ctx context.Context, resourceID string) (Result, error) {
	return s.mutate(ctx, resourceID, func(st *state.ResourceState) (*state.ResourceState, Result) {
		return clearCart(st)
	})
}

func (s *Service) Checkout(ctx context.Context, resourceID string, confirm bool) (Result, error) {
	return s.mutate(ctx, resourceID, func(st *state.ResourceState) (*state.ResourceState, Result) {
		return checkoutCart(st, confirm, s.now())
	})
}

// Orders returns the order history snapshot for a resource.
func (s *Service) Orders(ctx context.Context, resourceID string) ([]state.Order, error) {
	lock, err := s.lockFor(resourceID)
	if err != nil {
		return nil, err
	}
	lock.Lock()
	defer lock.Unlock()

	st, err := s.loadOrCreate(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	return st.Orders, nil
}

// mutate is the single commit path: load snapshot, run the engine, and commit
// the replacement {cart, orders} only when the operation succeeded.
func (s *Service) mutate(ctx context.Context, resourceID string, op func(*state.ResourceState) (*state.ResourceState, Result)) (Result, error) {
	lock, err := s.lockFor(resourceID)
	if err != nil {
		return Result{}, err
	}
	lock.Lock()
	defer lock.Unlock()

	st, err := s.loadOrCreate(ctx, resourceID)
	if err != nil {
		return Result{}, err
	}

	next, res := op(st)
	if !res.Success {
		return res, nil
	}

	update := state.CommitUpdate{Cart: next.Cart, Orders: next.Orders}
	if err := s.store.Commit(ctx, resourceID, update); err != nil {
		log.Error().Err(err).Str("resource_id", resourceID).Msg("commit failed")
		return Result{}, fmt.Errorf("commit resource state: %w", err)
	}
	return res, nil
}

func (s *Service) loadOrCreate(ctx context.Context, resourceID string) (*state.ResourceState, error) {
	st, err := s.store.Load(ctx, resourceID)
	if err == nil {
		return st, nil
	}
	if errors.Is(err, state.ErrStateNotFound) {
		return state.NewResourceState(), nil
	}
	return nil, fmt.Errorf("load resource state: %w", err)
}

func (s *Service) lockFor(resourceID string) (*sync.Mutex, error) {
	if strings.TrimSpace(resourceID) == "" {
		return nil, state.ErrInvalidResource
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[resourceID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[resourceID] = lock
	}
	return lock, nil
}
