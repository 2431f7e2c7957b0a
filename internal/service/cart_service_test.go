package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leafy_back_end/internal/models"
)

func newTestCartService(t *testing.T) (*CartService, *memCartRepo, *memCatalog) {
	t.Helper()
	repo := newMemCartRepo()
	cat := newMemCatalog()
	return NewCartService(repo, cat), repo, cat
}

func seedProduct(cat *memCatalog, priceCents int64) string {
	p := models.Product{
		ID:         gocql.UUID(uuid.New()),
		Name:       "EcoTrek Hiking Boot",
		PriceCents: priceCents,
		Images:     []string{"https://img.example/boot.jpg"},
		Sizes:      []string{"9", "10"},
		Color:      "Brown",
	}
	cat.put(p)
	return p.ID.String()
}

func TestAddItem_MergesSameLine(t *testing.T) {
	svc, _, cat := newTestCartService(t)
	productID := seedProduct(cat, 14999)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u1", AddItemRequest{ProductID: productID, Quantity: 2, Size: "9", Color: "Brown"})
	require.NoError(t, err)

	cart, err := svc.AddItem(ctx, "u1", AddItemRequest{ProductID: productID, Quantity: 3, Size: "9", Color: "Brown"})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestAddItem_DifferentKeyCreatesNewLine(t *testing.T) {
	svc, _, cat := newTestCartService(t)
	productID := seedProduct(cat, 14999)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u1", AddItemRequest{ProductID: productID, Quantity: 1, Size: "9", Color: "Brown"})
	require.NoError(t, err)

	// Taille différente
	cart, err := svc.AddItem(ctx, "u1", AddItemRequest{ProductID: productID, Quantity: 1, Size: "10", Color: "Brown"})
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)

	// La casse compte : "brown" ≠ "Brown"
	cart, err = svc.AddItem(ctx, "u1", AddItemRequest{ProductID: productID, Quantity: 1, Size: "9", Color: "brown"})
	require.NoError(t, err)
	assert.Len(t, cart.Items, 3)
}

func TestAddItem_PriceSnapshotImmutable(t *testing.T) {
	svc, _, cat := newTestCartService(t)
	productID := seedProduct(cat, 14999)
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "u1", AddItemRequest{ProductID: productID, Quantity: 1, Size: "9", Color: "Brown"})
	require.NoError(t, err)
	assert.Equal(t, int64(14999), cart.Items[0].UnitPriceCents)

	// Le catalogue change, l'instantané du panier ne bouge pas
	cat.setPrice(productID, 19999)

	cart, err = svc.GetCart(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(14999), cart.Items[0].UnitPriceCents)

	// Même en fusionnant une nouvelle quantité
	cart, err = svc.AddItem(ctx, "u1", AddItemRequest{ProductID: productID, Quantity: 2, Size: "9", Color: "Brown"})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(14999), cart.Items[0].UnitPriceCents)
	assert.Equal(t, 3, cart.Items[0].Quantity)

	// Une nouvelle ligne, elle, prend le prix courant
	cart, err = svc.AddItem(ctx, "u1", AddItemRequest{ProductID: productID, Quantity: 1, Size: "10", Color: "Brown"})
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, int64(19999), cart.Items[1].UnitPriceCents)
}

func TestAddItem_RejectsInvalidQuantity(t *testing.T) {
	svc, repo, cat := newTestCartService(t)
	productID := seedProduct(cat, 14999)
	ctx := context.Background()

	for _, qty := range []int{0, -1, -42} {
		_, err := svc.AddItem(ctx, "u1", AddItemRequest{ProductID: productID, Quantity: qty, Size: "9", Color: "Brown"})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}

	// Rejet, pas d'écrêtage : rien n'a été écrit
	_, err := repo.GetCart(ctx, "u1")
	assert.Error(t, err)
}

func TestAddItem_UnknownProduct(t *testing.T) {
	svc, _, _ := newTestCartService(t)

	_, err := svc.AddItem(context.Background(), "u1", AddItemRequest{
		ProductID: uuid.NewString(), Quantity: 1, Size: "9", Color: "Brown",
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestGetCart_LazyCreation(t *testing.T) {
	svc, repo, _ := newTestCartService(t)
	ctx := context.Background()

	cart, err := svc.GetCart(ctx, "fresh-user")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, "fresh-user", cart.UserID)

	// Une simple lecture ne persiste rien
	_, err = repo.GetCart(ctx, "fresh-user")
	assert.Error(t, err)
}

func TestUpdateItemQuantity(t *testing.T) {
	svc, _, cat := newTestCartService(t)
	productID := seedProduct(cat, 8999)
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "u1", AddItemRequest{ProductID: productID, Quantity: 1, Size: "9", Color: "Brown"})
	require.NoError(t, err)
	itemID := cart.Items[0].ItemID

	cart, err = svc.UpdateItemQuantity(ctx, "u1", itemID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, cart.Items[0].Quantity)

	_, err = svc.UpdateItemQuantity(ctx, "u1", itemID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.UpdateItemQuantity(ctx, "u1", "absent", 2)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestRemoveItem(t *testing.T) {
	svc, _, cat := newTestCartService(t)
	productID := seedProduct(cat, 8999)
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "u1", AddItemRequest{ProductID: productID, Quantity: 1, Size: "9", Color: "Brown"})
	require.NoError(t, err)
	itemID := cart.Items[0].ItemID

	cart, err = svc.RemoveItem(ctx, "u1", itemID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = svc.RemoveItem(ctx, "u1", itemID)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestClearCart(t *testing.T) {
	svc, _, cat := newTestCartService(t)
	productID := seedProduct(cat, 8999)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u1", AddItemRequest{ProductID: productID, Quantity: 2, Size: "9", Color: "Brown"})
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(ctx, "u1"))

	cart, err := svc.GetCart(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartMutationsRefreshUpdatedAt(t *testing.T) {
	svc, _, cat := newTestCartService(t)
	productID := seedProduct(cat, 8999)
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "u1", AddItemRequest{ProductID: productID, Quantity: 1, Size: "9", Color: "Brown"})
	require.NoError(t, err)
	first := cart.UpdatedAt

	time.Sleep(5 * time.Millisecond)

	cart, err = svc.AddItem(ctx, "u1", AddItemRequest{ProductID: productID, Quantity: 1, Size: "9", Color: "Brown"})
	require.NoError(t, err)
	assert.True(t, cart.UpdatedAt.After(first))
}

func TestAddItem_ConcurrentSameLine(t *testing.T) {
	svc, _, cat := newTestCartService(t)
	productID := seedProduct(cat, 100)
	ctx := context.Background()

	const goroutines = 20
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.AddItem(ctx, "u1", AddItemRequest{ProductID: productID, Quantity: 1, Size: "9", Color: "Brown"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Jamais de doublon, jamais d'incrément perdu
	cart, err := svc.GetCart(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, goroutines, cart.Items[0].Quantity)
}
