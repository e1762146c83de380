package service

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vikas-0-3/farmer/internal/domain/entity"
	"github.com/vikas-0-3/farmer/internal/repository"
)

// In-memory repository fakes. They mirror the sentinel-error contract
// of the mongo adapters so services see the same behavior either way.

type fakeUserRepo struct {
	mu         sync.Mutex
	users      map[primitive.ObjectID]*entity.User
	setRoleErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.ErrDuplicateEmail
		}
		if u.Phone == user.Phone {
			return primitive.NilObjectID, repository.ErrDuplicatePhone
		}
	}
	stored := *user
	stored.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.users[stored.ID] = &stored
	return stored.ID, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) List(_ context.Context, role *entity.Role) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0)
	for _, u := range r.users {
		if role != nil && u.Role != *role {
			continue
		}
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, id primitive.ObjectID, upd repository.UserUpdate) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Age != nil {
		u.Age = *upd.Age
	}
	if upd.Gender != nil {
		u.Gender = *upd.Gender
	}
	if upd.Phone != nil {
		u.Phone = *upd.Phone
	}
	if upd.Address != nil {
		u.Address = *upd.Address
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	if upd.ProfilePhoto != nil {
		u.ProfilePhoto = *upd.ProfilePhoto
	}
	u.UpdatedAt = time.Now().UTC()
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) SetRole(_ context.Context, id primitive.ObjectID, role entity.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.setRoleErr != nil {
		return r.setRoleErr
	}
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Role = role
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeFarmerRepo struct {
	mu      sync.Mutex
	farmers map[primitive.ObjectID]*entity.Farmer
}

func newFakeFarmerRepo() *fakeFarmerRepo {
	return &fakeFarmerRepo{farmers: map[primitive.ObjectID]*entity.Farmer{}}
}

func (r *fakeFarmerRepo) Create(_ context.Context, farmer *entity.Farmer) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.farmers {
		if f.UserID == farmer.UserID {
			return primitive.NilObjectID, repository.ErrDuplicateFarmer
		}
	}
	stored := *farmer
	stored.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.farmers[stored.ID] = &stored
	return stored.ID, nil
}

func (r *fakeFarmerRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) (*entity.Farmer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.farmers {
		if f.UserID == userID {
			clone := *f
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeFarmerRepo) List(_ context.Context) ([]*entity.Farmer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Farmer, 0)
	for _, f := range r.farmers {
		clone := *f
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeFarmerRepo) Update(_ context.Context, id primitive.ObjectID, upd repository.FarmerUpdate) (*entity.Farmer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.farmers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if upd.FarmName != nil {
		f.FarmName = *upd.FarmName
	}
	if upd.Location != nil {
		f.Location = *upd.Location
	}
	if upd.FarmPhoto != nil {
		f.FarmPhoto = *upd.FarmPhoto
	}
	f.UpdatedAt = time.Now().UTC()
	clone := *f
	return &clone, nil
}

func (r *fakeFarmerRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.farmers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.farmers, id)
	return nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[primitive.ObjectID]*entity.Product{}}
}

func (r *fakeProductRepo) add(p entity.Product) *entity.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	r.products[p.ID] = &p
	return &p
}

func (r *fakeProductRepo) Create(_ context.Context, product *entity.Product) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *product
	stored.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.products[stored.ID] = &stored
	clone := stored
	return &clone, nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakeProductRepo) GetManyByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[primitive.ObjectID]*entity.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			clone := *p
			out[id] = &clone
		}
	}
	return out, nil
}

func (r *fakeProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Product, 0)
	for _, p := range r.products {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeProductRepo) ListByFarmer(_ context.Context, farmerID primitive.ObjectID) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Product, 0)
	for _, p := range r.products {
		if p.FarmerID == farmerID {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(_ context.Context, id primitive.ObjectID, upd repository.ProductUpdate) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if upd.ProductName != nil {
		p.ProductName = *upd.ProductName
	}
	if upd.ProductQuantity != nil {
		p.ProductQuantity = *upd.ProductQuantity
	}
	if upd.MRP != nil {
		p.MRP = *upd.MRP
	}
	if upd.SellingPrice != nil {
		p.SellingPrice = *upd.SellingPrice
	}
	if upd.Category != nil {
		p.Category = *upd.Category
	}
	if upd.Status != nil {
		p.Status = *upd.Status
	}
	if upd.FarmerID != nil {
		p.FarmerID = *upd.FarmerID
	}
	if upd.ProductImage != nil {
		p.ProductImage = *upd.ProductImage
	}
	p.UpdatedAt = time.Now().UTC()
	clone := *p
	return &clone, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

type fakeCartRepo struct {
	mu    sync.Mutex
	carts map[primitive.ObjectID]*entity.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[primitive.ObjectID]*entity.Cart{}}
}

func (r *fakeCartRepo) Create(_ context.Context, cart *entity.Cart) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.carts {
		if c.UserID == cart.UserID {
			return primitive.NilObjectID, repository.ErrDuplicateCart
		}
	}
	stored := *cart
	stored.Items = append([]entity.CartItem(nil), cart.Items...)
	stored.ID = primitive.NewObjectID()
	r.carts[stored.ID] = &stored
	cart.ID = stored.ID
	return stored.ID, nil
}

func (r *fakeCartRepo) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *c
	clone.Items = append([]entity.CartItem(nil), c.Items...)
	return &clone, nil
}

func (r *fakeCartRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) (*entity.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.carts {
		if c.UserID == userID {
			clone := *c
			clone.Items = append([]entity.CartItem(nil), c.Items...)
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeCartRepo) Save(_ context.Context, cart *entity.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carts[cart.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *cart
	stored.Items = append([]entity.CartItem(nil), cart.Items...)
	r.carts[cart.ID] = &stored
	return nil
}

func (r *fakeCartRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.carts, id)
	return nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[primitive.ObjectID]*entity.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[primitive.ObjectID]*entity.Order{}}
}

func (r *fakeOrderRepo) Create(_ context.Context, order *entity.Order) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *order
	stored.Items = append([]entity.OrderItem(nil), order.Items...)
	stored.ID = primitive.NewObjectID()
	r.orders[stored.ID] = &stored
	order.ID = stored.ID
	return stored.ID, nil
}

func (r *fakeOrderRepo) ListByUser(_ context.Context, userID primitive.ObjectID) ([]*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Order, 0)
	for _, o := range r.orders {
		if o.UserID == userID {
			clone := *o
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListAll(_ context.Context) ([]*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Order, 0)
	for _, o := range r.orders {
		clone := *o
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now().UTC()
	clone := *o
	return &clone, nil
}

type fakeProductCache struct {
	mu      sync.Mutex
	items   map[primitive.ObjectID]*entity.Product
	hits    int
	misses  int
	sets    int
	deletes int
}

func newFakeProductCache() *fakeProductCache {
	return &fakeProductCache{items: map[primitive.ObjectID]*entity.Product{}}
}

func (c *fakeProductCache) Get(_ context.Context, id primitive.ObjectID) (*entity.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.items[id]
	if !ok {
		c.misses++
		return nil, repository.ErrNotFound
	}
	c.hits++
	clone := *p
	return &clone, nil
}

func (c *fakeProductCache) Set(_ context.Context, product *entity.Product, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	clone := *product
	c.items[product.ID] = &clone
	c.sets++
	return nil
}

func (c *fakeProductCache) Delete(_ context.Context, id primitive.ObjectID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, id)
	c.deletes++
	return nil
}

// recordingPublisher captures published subjects for assertions.
type recordingPublisher struct {
	mu       sync.Mutex
	subjects []string
}

func (p *recordingPublisher) Publish(_ context.Context, subject string, _ interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subjects = append(p.subjects, subject)
	return nil
}
