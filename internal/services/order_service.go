package services

import (
	"context"

	"store/internal/models"
	"store/internal/repositories"

	"github.com/rs/zerolog"
)

type (
	ShoppingCartService = CrudService[models.ShoppingCart, *models.ShoppingCart]
	ProductOrderService = CrudService[models.ProductOrder, *models.ProductOrder]
)

// NewShoppingCartService creates a new ShoppingCartService. Every cart belongs to a customer.
func NewShoppingCartService(repo repositories.Repository[models.ShoppingCart], customers ExistenceChecker, events EventPublisher, logger zerolog.Logger) *ShoppingCartService {
	return NewCrudService[models.ShoppingCart, *models.ShoppingCart](repo, "shoppingCart", []string{"CustomerDetails"}, Hooks[models.ShoppingCart]{
		Resolve: func(ctx context.Context, cart *models.ShoppingCart) error {
			refs := newRefCheck(ctx, "shoppingCart")
			customerID := checkRef(refs, "customerDetails", cart.CustomerDetails, customers, true)
			if err := refs.result(); err != nil {
				return err
			}
			cart.CustomerDetailsID = customerID
			return nil
		},
	}, events, logger)
}

// NewProductOrderService creates a new ProductOrderService. An order line needs
// both its product and its cart.
func NewProductOrderService(repo repositories.Repository[models.ProductOrder], products, carts ExistenceChecker, events EventPublisher, logger zerolog.Logger) *ProductOrderService {
	return NewCrudService[models.ProductOrder, *models.ProductOrder](repo, "productOrder", []string{"Product", "Cart"}, Hooks[models.ProductOrder]{
		Resolve: func(ctx context.Context, order *models.ProductOrder) error {
			refs := newRefCheck(ctx, "productOrder")
			productID := checkRef(refs, "product", order.Product, products, true)
			cartID := checkRef(refs, "cart", order.Cart, carts, true)
			if err := refs.result(); err != nil {
				return err
			}
			order.ProductID = productID
			order.CartID = cartID
			return nil
		},
	}, events, logger)
}
