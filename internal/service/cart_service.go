package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vikas-0-3/farmer/internal/domain/entity"
	"github.com/vikas-0-3/farmer/internal/platform/logger"
	"github.com/vikas-0-3/farmer/internal/repository"
)

// CartItemInput is one incoming line item.
type CartItemInput struct {
	ProductID primitive.ObjectID
	Quantity  int
}

// CartItemView is a line item with its product reference resolved.
// Product is nil when the referenced product no longer exists.
type CartItemView struct {
	ID       primitive.ObjectID `json:"_id"`
	Product  *entity.Product    `json:"product"`
	Quantity int                `json:"quantity"`
}

type CartView struct {
	ID          primitive.ObjectID `json:"_id"`
	UserID      primitive.ObjectID `json:"user"`
	Items       []CartItemView     `json:"products"`
	TotalAmount float64            `json:"totalAmount"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

type CartService interface {
	// AddOrMerge folds items into the user's cart, creating it on first
	// add. The returned bool is true when a new cart was created.
	AddOrMerge(ctx context.Context, userID primitive.ObjectID, items []CartItemInput) (*CartView, bool, error)
	GetForUser(ctx context.Context, userID primitive.ObjectID) ([]*CartView, error)
	Replace(ctx context.Context, cartID primitive.ObjectID, items []CartItemInput) (*CartView, error)
	UpdateItemQuantity(ctx context.Context, cartID, itemID primitive.ObjectID, quantity int) (*CartView, error)
	RemoveItem(ctx context.Context, cartID, itemID primitive.ObjectID) (*CartView, error)
	Delete(ctx context.Context, cartID primitive.ObjectID) error
}

type cartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	log      logger.Logger
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository, log logger.Logger) CartService {
	return &cartService{carts: carts, products: products, log: log.With("service", "cart")}
}

func toCartItems(inputs []CartItemInput) ([]entity.CartItem, error) {
	if len(inputs) == 0 {
		return nil, entity.ErrEmptyCartItems
	}
	items := make([]entity.CartItem, 0, len(inputs))
	for _, in := range inputs {
		item, err := entity.NewCartItem(in.ProductID, in.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// resolveProducts loads every product referenced by the cart in one
// query and returns both the product map and a price map for total
// recomputation. Dangling references resolve to a zero price.
func (s *cartService) resolveProducts(ctx context.Context, cart *entity.Cart) (map[primitive.ObjectID]*entity.Product, map[primitive.ObjectID]float64, error) {
	ids := make([]primitive.ObjectID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.products.GetManyByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	prices := make(map[primitive.ObjectID]float64, len(products))
	for id, product := range products {
		prices[id] = product.SellingPrice
	}
	return products, prices, nil
}

func (s *cartService) view(cart *entity.Cart, products map[primitive.ObjectID]*entity.Product) *CartView {
	items := make([]CartItemView, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, CartItemView{
			ID:       item.ID,
			Product:  products[item.ProductID],
			Quantity: item.Quantity,
		})
	}
	return &CartView{
		ID:          cart.ID,
		UserID:      cart.UserID,
		Items:       items,
		TotalAmount: cart.TotalAmount,
		CreatedAt:   cart.CreatedAt,
		UpdatedAt:   cart.UpdatedAt,
	}
}

// recomputeAndView is the single total-maintenance path: every cart
// mutation ends here, so TotalAmount always equals
// sum(quantity x sellingPrice) over the current line items.
func (s *cartService) recomputeAndView(ctx context.Context, cart *entity.Cart) (*CartView, error) {
	products, prices, err := s.resolveProducts(ctx, cart)
	if err != nil {
		return nil, err
	}
	cart.RecomputeTotal(prices)
	return s.view(cart, products), nil
}

func (s *cartService) AddOrMerge(ctx context.Context, userID primitive.ObjectID, items []CartItemInput) (*CartView, bool, error) {
	cartItems, err := toCartItems(items)
	if err != nil {
		return nil, false, err
	}

	cart, err := s.carts.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		return s.mergeExisting(ctx, cart, cartItems)
	case errors.Is(err, repository.ErrNotFound):
		cart = entity.NewCart(userID)
		if err := cart.Merge(cartItems); err != nil {
			return nil, false, err
		}
		view, err := s.recomputeAndView(ctx, cart)
		if err != nil {
			return nil, false, err
		}
		if _, err := s.carts.Create(ctx, cart); err != nil {
			if errors.Is(err, repository.ErrDuplicateCart) {
				// Lost the create race; fold into the winner's cart.
				existing, getErr := s.carts.GetByUserID(ctx, userID)
				if getErr != nil {
					return nil, false, getErr
				}
				return s.mergeExisting(ctx, existing, cartItems)
			}
			return nil, false, err
		}
		s.log.Infof("cart created for user %s", userID.Hex())
		view.ID = cart.ID
		return view, true, nil
	default:
		return nil, false, err
	}
}

func (s *cartService) mergeExisting(ctx context.Context, cart *entity.Cart, items []entity.CartItem) (*CartView, bool, error) {
	if err := cart.Merge(items); err != nil {
		return nil, false, err
	}
	view, err := s.recomputeAndView(ctx, cart)
	if err != nil {
		return nil, false, err
	}
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, false, err
	}
	return view, false, nil
}

func (s *cartService) GetForUser(ctx context.Context, userID primitive.ObjectID) ([]*CartView, error) {
	cart, err := s.carts.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []*CartView{}, nil
		}
		return nil, err
	}
	products, _, err := s.resolveProducts(ctx, cart)
	if err != nil {
		return nil, err
	}
	return []*CartView{s.view(cart, products)}, nil
}

func (s *cartService) Replace(ctx context.Context, cartID primitive.ObjectID, items []CartItemInput) (*CartView, error) {
	cartItems, err := toCartItems(items)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if err := cart.Replace(cartItems); err != nil {
		return nil, err
	}
	view, err := s.recomputeAndView(ctx, cart)
	if err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return view, nil
}

func (s *cartService) UpdateItemQuantity(ctx context.Context, cartID, itemID primitive.ObjectID, quantity int) (*CartView, error) {
	if quantity < 1 {
		return nil, entity.ErrInvalidQuantity
	}

	cart, err := s.carts.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if err := cart.UpdateItemQuantity(itemID, quantity); err != nil {
		return nil, err
	}
	view, err := s.recomputeAndView(ctx, cart)
	if err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return view, nil
}

func (s *cartService) RemoveItem(ctx context.Context, cartID, itemID primitive.ObjectID) (*CartView, error) {
	cart, err := s.carts.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	cart.RemoveItem(itemID)
	view, err := s.recomputeAndView(ctx, cart)
	if err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return view, nil
}

func (s *cartService) Delete(ctx context.Context, cartID primitive.ObjectID) error {
	if err := s.carts.Delete(ctx, cartID); err != nil {
		return err
	}
	s.log.Infof("cart deleted: %s", cartID.Hex())
	return nil
}
