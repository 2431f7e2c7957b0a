package main

import (
	"context"
	"errors"
	"log"
	"time"

	"leafy_back_end/internal/catalog"
	"leafy_back_end/internal/config"
	"leafy_back_end/internal/database"
	"leafy_back_end/internal/models"
	"leafy_back_end/internal/repository"
	"leafy_back_end/internal/utils"

	"github.com/google/uuid"
)

// Remplit le catalogue ScyllaDB et crée les comptes de démonstration.
// À lancer une fois les bases démarrées : go run ./cmd/seed
func main() {
	config.Load()
	database.ConnectDatabases()
	defer database.CloseScylla()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	seedProducts(ctx)
	seedUsers(ctx)

	log.Println("✅ Seed terminé")
}

func seedProducts(ctx context.Context) {
	store := catalog.NewScyllaStore(database.GetProductsSession, database.Redis)

	for _, p := range demoProducts() {
		p := p
		if err := store.CreateProduct(ctx, &p); err != nil {
			log.Fatalf("❌ Seed produit %q: %v", p.Name, err)
		}
		log.Printf("🌱 Produit créé : %s (%s)", p.Name, p.ID)
	}
}

func seedUsers(ctx context.Context) {
	users := repository.NewMongoUserRepository(database.MongoShopDB)
	if err := users.CreateIndexes(ctx); err != nil {
		log.Printf("⚠️  Index utilisateurs: %v", err)
	}

	for _, u := range demoUsers() {
		hash, err := utils.HashPassword("123456")
		if err != nil {
			log.Fatalf("❌ Hash mot de passe: %v", err)
		}
		u.Password = hash
		u.ID = uuid.NewString()
		u.CreatedAt = time.Now()

		if err := users.Create(ctx, &u); err != nil {
			if errors.Is(err, repository.ErrEmailTaken) {
				log.Printf("⚠️  Utilisateur %s déjà présent, ignoré", u.Email)
				continue
			}
			log.Fatalf("❌ Seed utilisateur %s: %v", u.Email, err)
		}
		log.Printf("🌱 Utilisateur créé : %s (%s)", u.Email, u.Role)
	}
}

func demoProducts() []models.Product {
	return []models.Product{
		{
			Name:        "EcoTrek Hiking Boot",
			Description: "Sustainable hiking boots made from recycled materials. Durable, waterproof, and designed for all-day comfort on challenging trails.",
			PriceCents:  14999,
			Images: []string{
				"https://images.unsplash.com/photo-1542291026-7eec264c27ff",
				"https://images.unsplash.com/photo-1549298916-b41d501d3772",
				"https://images.unsplash.com/photo-1525966222134-fcfa99b8ae77",
			},
			Category:   "hiking",
			Sizes:      []string{"7", "8", "9", "10", "11", "12"},
			Color:      "Brown",
			IsFeatured: true,
			IsEco:      true,
			Features: []string{
				"Made from recycled plastic bottles",
				"Natural rubber soles",
				"Water-resistant coating",
				"Breathable membrane",
				"Shock-absorbing insoles",
			},
			Stock: 45,
		},
		{
			Name:        "UrbanLeaf Slip-On",
			Description: "Casual slip-on shoes crafted from plant-based materials. Perfect for everyday wear with a minimal environmental footprint.",
			PriceCents:  8999,
			Images: []string{
				"https://images.unsplash.com/photo-1525966222134-fcfa99b8ae77",
				"https://images.unsplash.com/photo-1560769629-975ec94e6a86",
				"https://images.unsplash.com/photo-1491553895911-0055eca6402d",
			},
			Category:   "casual",
			Sizes:      []string{"6", "7", "8", "9", "10", "11", "12"},
			Color:      "Navy",
			IsFeatured: true,
			IsNew:      true,
			IsEco:      true,
			Features: []string{
				"Corn-based foam cushioning",
				"Organic cotton lining",
				"Hemp canvas upper",
				"Carbon-neutral manufacturing",
				"Biodegradable materials",
			},
			Stock: 78,
		},
		{
			Name:        "Eco Trail Runner",
			Description: "Lightweight trail runners with plant-based cushioning and a recycled mesh upper.",
			PriceCents:  12999,
			Images:      []string{"https://images.unsplash.com/photo-1606107557195-0e29a4b5b4aa"},
			Category:    "men",
			Sizes:       []string{"8", "9", "10", "11", "12"},
			Color:       "Green",
			IsFeatured:  true,
			IsNew:       true,
			IsEco:       true,
			Features:    []string{"Recycled mesh upper", "Algae-based foam midsole"},
			Stock:       60,
		},
		{
			Name:        "Bamboo Comfort Loafer",
			Description: "Breathable loafers woven from bamboo fibre, soft enough for barefoot wear.",
			PriceCents:  9999,
			Images:      []string{"https://images.unsplash.com/photo-1543163521-1bf539c55dd2"},
			Category:    "women",
			Sizes:       []string{"5", "6", "7", "8", "9"},
			Color:       "Beige",
			IsFeatured:  true,
			IsEco:       true,
			Features:    []string{"Bamboo fibre upper", "Memory foam insole"},
			Stock:       52,
		},
		{
			Name:        "Recycled Performance Runner",
			Description: "Road running shoes built from ocean-bound plastic with responsive cushioning.",
			PriceCents:  13999,
			Images:      []string{"https://images.unsplash.com/photo-1595950653106-6c9ebd614d3a"},
			Category:    "men",
			Sizes:       []string{"8", "9", "10", "11"},
			Color:       "Blue",
			IsNew:       true,
			IsEco:       true,
			Features:    []string{"Ocean-bound plastic upper", "Responsive bio-foam"},
			Stock:       34,
		},
		{
			Name:        "Organic Canvas Slip-On",
			Description: "Everyday slip-ons in undyed organic canvas with natural rubber outsoles.",
			PriceCents:  6999,
			Images:      []string{"https://images.unsplash.com/photo-1560769629-975ec94e6a86"},
			Category:    "women",
			Sizes:       []string{"5", "6", "7", "8", "9", "10"},
			Color:       "White",
			IsEco:       true,
			Features:    []string{"Organic canvas", "Natural rubber outsole"},
			Stock:       90,
		},
	}
}

func demoUsers() []models.User {
	return []models.User{
		{Name: "Admin User", Email: "admin@example.com", Role: "admin"},
		{Name: "John Doe", Email: "john@example.com", Role: "customer"},
		{Name: "Jane Smith", Email: "jane@example.com", Role: "customer"},
	}
}
