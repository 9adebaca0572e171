package services

import (
	"stridekart/internal/catalog"
	"stridekart/internal/currency"
	"stridekart/internal/domain"
	applog "stridekart/internal/log"
	"stridekart/internal/repos"
)

type WishlistService struct {
	Repo    *repos.WishlistRepo
	Catalog *catalog.Catalog
}

func NewWishlistService(r *repos.WishlistRepo, cat *catalog.Catalog) *WishlistService {
	return &WishlistService{Repo: r, Catalog: cat}
}

// Save adds the product to the session's wishlist. A product that is
// already saved is rejected, not merged; added reports which happened so
// the caller can show the distinct message.
func (s *WishlistService) Save(sessionID, productID string) (added bool, p domain.Product, err error) {
	p, ok := s.Catalog.Get(productID)
	if !ok {
		return false, domain.Product{}, ErrProductNotFound
	}
	id, err := s.Repo.Ensure(sessionID)
	if err != nil {
		return false, p, err
	}
	price := p.PriceRaw
	if p.PriceOK {
		price = currency.Format(p.FinalPrice())
	}
	added, err = s.Repo.Add(id, domain.WishlistItem{
		ProductID: p.ID,
		Title:     p.Title,
		PriceRaw:  price,
		Image:     p.MainImage(),
	})
	return added, p, err
}

func (s *WishlistService) Unsave(sessionID, productID string) error {
	id, err := s.Repo.Ensure(sessionID)
	if err != nil {
		return err
	}
	return s.Repo.Remove(id, productID)
}

// List degrades to an empty wishlist on storage errors, same as the cart.
func (s *WishlistService) List(sessionID string) []domain.WishlistItem {
	id, err := s.Repo.Ensure(sessionID)
	if err != nil {
		applog.Warn(nil, "wishlist.read.degraded", map[string]any{"err": err.Error()})
		return nil
	}
	items, err := s.Repo.List(id)
	if err != nil {
		applog.Warn(nil, "wishlist.read.degraded", map[string]any{"err": err.Error()})
		return nil
	}
	return items
}

func (s *WishlistService) Count(sessionID string) int {
	id, err := s.Repo.Ensure(sessionID)
	if err != nil {
		return 0
	}
	n, err := s.Repo.Count(id)
	if err != nil {
		return 0
	}
	return n
}
