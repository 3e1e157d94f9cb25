package catalog

import "context"

// Store is the persistence the catalog needs; *Repo satisfies it.
type Store interface {
	ListActive(ctx context.Context) ([]Product, error)
	ListAll(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (Product, error)
	Create(ctx context.Context, in Input) (Product, error)
	Update(ctx context.Context, id string, in Input) (Product, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	Store Store
}

// Browse fetches active products and applies the storefront query.
func (s *Service) Browse(ctx context.Context, q Query) ([]Product, error) {
	ps, err := s.Store.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return Apply(ps, q), nil
}

// Get returns an active product. Inactive products are hidden from the
// storefront and reported as not found.
func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	p, err := s.Store.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}
	if !p.Active {
		return Product{}, ErrNotFound
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, in Input) (Product, error) {
	if err := in.Normalize(); err != nil {
		return Product{}, err
	}
	return s.Store.Create(ctx, in)
}

func (s *Service) Update(ctx context.Context, id string, in Input) (Product, error) {
	if err := in.Normalize(); err != nil {
		return Product{}, err
	}
	return s.Store.Update(ctx, id, in)
}

// ListAll returns every product, inactive ones included, for the admin surface.
func (s *Service) ListAll(ctx context.Context) ([]Product, error) {
	return s.Store.ListAll(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Store.Delete(ctx, id)
}
