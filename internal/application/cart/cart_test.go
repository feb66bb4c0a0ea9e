package cart

import (
	"context"
	"testing"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
)

// fakeCartRepo 内存购物车仓储,按(cart_id, book_id)模拟唯一索引upsert
type fakeCartRepo struct {
	carts  map[string]*cart.Cart
	nextID uint
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[string]*cart.Cart), nextID: 1}
}

func (f *fakeCartRepo) Create(ctx context.Context, c *cart.Cart) error {
	f.carts[c.ID] = c
	return nil
}

func (f *fakeCartRepo) FindByID(ctx context.Context, id string) (*cart.Cart, error) {
	c, ok := f.carts[id]
	if !ok {
		return nil, cart.ErrCartNotFound
	}
	return c, nil
}

func (f *fakeCartRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.carts[id]; !ok {
		return cart.ErrCartNotFound
	}
	delete(f.carts, id)
	return nil
}

func (f *fakeCartRepo) UpsertItem(ctx context.Context, cartID string, bookID uint, quantity int) (*cart.Item, error) {
	c, ok := f.carts[cartID]
	if !ok {
		return nil, cart.ErrCartNotFound
	}
	if existing := c.ItemByBook(bookID); existing != nil {
		existing.Quantity += quantity
		return existing, nil
	}
	item := &cart.Item{ID: f.nextID, CartID: cartID, BookID: bookID, Quantity: quantity}
	f.nextID++
	c.Items = append(c.Items, item)
	return item, nil
}

func (f *fakeCartRepo) FindItem(ctx context.Context, cartID string, itemID uint) (*cart.Item, error) {
	c, ok := f.carts[cartID]
	if !ok {
		return nil, cart.ErrItemNotFound
	}
	if item := c.ItemByID(itemID); item != nil {
		return item, nil
	}
	return nil, cart.ErrItemNotFound
}

func (f *fakeCartRepo) UpdateItemQuantity(ctx context.Context, cartID string, itemID uint, quantity int) error {
	item, err := f.FindItem(ctx, cartID, itemID)
	if err != nil {
		return err
	}
	item.Quantity = quantity
	return nil
}

func (f *fakeCartRepo) RemoveItem(ctx context.Context, cartID string, itemID uint) error {
	c, ok := f.carts[cartID]
	if !ok {
		return cart.ErrItemNotFound
	}
	for i, item := range c.Items {
		if item.ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return nil
		}
	}
	return cart.ErrItemNotFound
}

// fakeBookRepo 内存图书仓储(只实现用到的方法)
type fakeBookRepo struct {
	books map[uint]*book.Book
}

func (f *fakeBookRepo) Create(ctx context.Context, b *book.Book) error { return nil }
func (f *fakeBookRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}
func (f *fakeBookRepo) FindByIDs(ctx context.Context, ids []uint) (map[uint]*book.Book, error) {
	result := make(map[uint]*book.Book)
	for _, id := range ids {
		if b, ok := f.books[id]; ok {
			result[id] = b
		}
	}
	return result, nil
}
func (f *fakeBookRepo) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	return nil, book.ErrBookNotFound
}
func (f *fakeBookRepo) Update(ctx context.Context, b *book.Book) error { return nil }
func (f *fakeBookRepo) Delete(ctx context.Context, id uint) error      { return nil }
func (f *fakeBookRepo) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	return nil, 0, nil
}
func (f *fakeBookRepo) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	return f.FindByID(ctx, id)
}

func newFixture() (*fakeCartRepo, *fakeBookRepo, string) {
	cartRepo := newFakeCartRepo()
	bookRepo := &fakeBookRepo{books: map[uint]*book.Book{
		10: {ID: 10, Title: "Go程序设计", Price: 999, Stock: 50},
		20: {ID: 20, Title: "数据库系统概念", Price: 2500, Stock: 50},
	}}
	c := cart.NewCart()
	cartRepo.carts[c.ID] = c
	return cartRepo, bookRepo, c.ID
}

func TestAddItemMerge(t *testing.T) {
	cartRepo, bookRepo, cartID := newFixture()
	uc := NewAddItemUseCase(cartRepo, bookRepo)
	ctx := context.Background()

	first, err := uc.Execute(ctx, AddItemRequest{CartID: cartID, BookID: 10, Quantity: 2})
	if err != nil {
		t.Fatalf("首次加购失败: %v", err)
	}
	if first.Quantity != 2 {
		t.Errorf("首次加购数量应为2, 实际: %d", first.Quantity)
	}

	// 同一本书重复加购:数量合并,条目不重复
	second, err := uc.Execute(ctx, AddItemRequest{CartID: cartID, BookID: 10, Quantity: 3})
	if err != nil {
		t.Fatalf("重复加购失败: %v", err)
	}
	if second.Quantity != 5 {
		t.Errorf("合并后数量应为5(2+3), 实际: %d", second.Quantity)
	}
	if second.ID != first.ID {
		t.Error("重复加购不应产生新条目")
	}

	c, _ := cartRepo.FindByID(ctx, cartID)
	if len(c.Items) != 1 {
		t.Errorf("购物车应只有1条条目, 实际: %d", len(c.Items))
	}
}

func TestAddItemValidation(t *testing.T) {
	cartRepo, bookRepo, cartID := newFixture()
	uc := NewAddItemUseCase(cartRepo, bookRepo)
	ctx := context.Background()

	if _, err := uc.Execute(ctx, AddItemRequest{CartID: cartID, BookID: 10, Quantity: 0}); err != cart.ErrInvalidQuantity {
		t.Errorf("数量0应返回ErrInvalidQuantity, 实际: %v", err)
	}
	if _, err := uc.Execute(ctx, AddItemRequest{CartID: "no-such", BookID: 10, Quantity: 1}); err != cart.ErrCartNotFound {
		t.Errorf("购物车不存在应返回ErrCartNotFound, 实际: %v", err)
	}
	if _, err := uc.Execute(ctx, AddItemRequest{CartID: cartID, BookID: 99, Quantity: 1}); err != book.ErrBookNotFound {
		t.Errorf("图书不存在应返回ErrBookNotFound, 实际: %v", err)
	}
}

func TestGetCartLivePricing(t *testing.T) {
	cartRepo, bookRepo, cartID := newFixture()
	add := NewAddItemUseCase(cartRepo, bookRepo)
	get := NewGetCartUseCase(cartRepo, bookRepo)
	ctx := context.Background()

	_, _ = add.Execute(ctx, AddItemRequest{CartID: cartID, BookID: 10, Quantity: 2})
	_, _ = add.Execute(ctx, AddItemRequest{CartID: cartID, BookID: 20, Quantity: 1})

	view, err := get.Execute(ctx, cartID)
	if err != nil {
		t.Fatalf("查询购物车失败: %v", err)
	}
	// 999*2 + 2500*1 = 4498分
	if view.TotalAmount != 4498 {
		t.Errorf("总额应为4498分, 实际: %d", view.TotalAmount)
	}

	// 改价后购物车金额实时跟随(价格只在下单时冻结)
	bookRepo.books[10].Price = 1999
	view, err = get.Execute(ctx, cartID)
	if err != nil {
		t.Fatalf("查询购物车失败: %v", err)
	}
	if view.TotalAmount != 6498 {
		t.Errorf("改价后总额应为6498分, 实际: %d", view.TotalAmount)
	}
}

func TestUpdateAndRemoveItem(t *testing.T) {
	cartRepo, bookRepo, cartID := newFixture()
	add := NewAddItemUseCase(cartRepo, bookRepo)
	update := NewUpdateItemUseCase(cartRepo)
	remove := NewRemoveItemUseCase(cartRepo)
	ctx := context.Background()

	item, _ := add.Execute(ctx, AddItemRequest{CartID: cartID, BookID: 10, Quantity: 2})

	// 覆盖语义
	updated, err := update.Execute(ctx, UpdateItemRequest{CartID: cartID, ItemID: item.ID, Quantity: 7})
	if err != nil {
		t.Fatalf("修改数量失败: %v", err)
	}
	if updated.Quantity != 7 {
		t.Errorf("修改后数量应为7, 实际: %d", updated.Quantity)
	}

	if _, err := update.Execute(ctx, UpdateItemRequest{CartID: cartID, ItemID: item.ID, Quantity: 0}); err != cart.ErrInvalidQuantity {
		t.Errorf("数量0应返回ErrInvalidQuantity, 实际: %v", err)
	}

	if err := remove.Execute(ctx, cartID, item.ID); err != nil {
		t.Fatalf("删除条目失败: %v", err)
	}
	// 再删同一条目:NotFound,不幂等吞错
	if err := remove.Execute(ctx, cartID, item.ID); err != cart.ErrItemNotFound {
		t.Errorf("重复删除应返回ErrItemNotFound, 实际: %v", err)
	}
}

func TestDeleteCart(t *testing.T) {
	cartRepo, bookRepo, cartID := newFixture()
	add := NewAddItemUseCase(cartRepo, bookRepo)
	del := NewDeleteCartUseCase(cartRepo)
	get := NewGetCartUseCase(cartRepo, bookRepo)
	ctx := context.Background()

	_, _ = add.Execute(ctx, AddItemRequest{CartID: cartID, BookID: 10, Quantity: 1})

	if err := del.Execute(ctx, cartID); err != nil {
		t.Fatalf("删除购物车失败: %v", err)
	}
	if _, err := get.Execute(ctx, cartID); err != cart.ErrCartNotFound {
		t.Errorf("删除后查询应返回ErrCartNotFound, 实际: %v", err)
	}
	if err := del.Execute(ctx, cartID); err != cart.ErrCartNotFound {
		t.Errorf("重复删除应返回ErrCartNotFound, 实际: %v", err)
	}
}
