package handlers

import (
	"github.com/jmoiron/sqlx"

	"stridekart/internal/catalog"
	"stridekart/internal/config"
	"stridekart/internal/repos"
	"stridekart/internal/services"
)

type Deps struct {
	HomeHandler     *HomeHandler
	ShopHandler     *ShopHandler
	ProductHandler  *ProductHandler
	SearchHandler   *SearchHandler
	CartHandler     *CartHandler
	WishlistHandler *WishlistHandler
	OrderHandler    *OrderHandler

	CartSvc *services.CartService
	WishSvc *services.WishlistService
}

func NewDeps(db *sqlx.DB, cfg config.Config, cat *catalog.Catalog) *Deps {
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	wishRepo := repos.NewWishlistRepo(db)

	cartSvc := services.NewCartService(cartRepo, cat)
	orderSvc := services.NewOrderService(cartRepo, orderRepo)
	wishSvc := services.NewWishlistService(wishRepo, cat)

	return &Deps{
		HomeHandler:     &HomeHandler{Catalog: cat},
		ShopHandler:     &ShopHandler{Catalog: cat},
		ProductHandler:  &ProductHandler{Catalog: cat},
		SearchHandler:   &SearchHandler{},
		CartHandler:     &CartHandler{Cart: cartSvc},
		WishlistHandler: &WishlistHandler{Wish: wishSvc},
		OrderHandler:    &OrderHandler{Cart: cartSvc, Order: orderSvc, Repo: orderRepo},
		CartSvc:         cartSvc,
		WishSvc:         wishSvc,
	}
}
