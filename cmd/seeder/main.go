package main

import (
	"log"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/tejas4149/EstateHub-backend/internal/config"
	"github.com/tejas4149/EstateHub-backend/internal/database"
	"github.com/tejas4149/EstateHub-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadConfig()
	database.Connect()

	log.Println("Running migrations (just in case)...")
	database.DB.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Message{},
	)

	log.Println("Clearing listings and messages (users are kept)...")
	if err := database.DB.Exec(`TRUNCATE TABLE messages, properties RESTART IDENTITY CASCADE`).Error; err != nil {
		log.Fatalf("Failed to truncate: %v", err)
	}

	log.Println("Fetching admin user...")
	var admin models.User
	if err := database.DB.Where("role = ?", models.RoleAdmin).First(&admin).Error; err != nil {
		log.Println("No admin found, creating a fallback admin...")
		hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		admin = models.User{
			ID:       uuid.New().String(),
			Name:     "Admin",
			Email:    "admin@estatehub.com",
			Password: string(hash),
			Role:     models.RoleAdmin,
		}
		database.DB.Create(&admin)
	}

	seller := ensureSeller()
	seedProperties(seller)

	log.Println("Database reset & seeding complete!")
}

func ensureSeller() models.User {
	var seller models.User
	if err := database.DB.Where("role = ?", models.RoleSeller).First(&seller).Error; err == nil {
		return seller
	}

	log.Println("Creating demo seller...")
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	seller = models.User{
		ID:       uuid.New().String(),
		Name:     "Demo Seller",
		Email:    "seller@estatehub.com",
		Password: string(hash),
		Phone:    "+1-555-0100",
		Role:     models.RoleSeller,
	}
	database.DB.Create(&seller)
	return seller
}

func seedProperties(seller models.User) {
	log.Println("Seeding sample listings...")

	properties := []models.Property{
		{
			ID:           uuid.New().String(),
			Title:        "Modern Downtown Apartment",
			Description:  "Beautiful 2-bedroom apartment in the heart of downtown with stunning city views.",
			Price:        250000,
			Type:         models.ListingSale,
			PropertyType: models.PropertyApartment,
			Bedrooms:     2,
			Bathrooms:    2,
			Area:         1200,
			Location: models.Location{
				City:    "New York",
				Address: "123 Main St, NYC",
			},
			Images:    pq.StringArray{"https://images.unsplash.com/photo-1545324418-cc1a3fa10c00?w=800"},
			Amenities: pq.StringArray{"Pool", "Gym", "Parking"},
			Status:    models.StatusAvailable,
			SellerID:  seller.ID,
			Featured:  true,
		},
		{
			ID:           uuid.New().String(),
			Title:        "Luxury Beach House",
			Description:  "Stunning beachfront property with private access to the beach.",
			Price:        1500,
			Type:         models.ListingRent,
			PropertyType: models.PropertyHouse,
			Bedrooms:     4,
			Bathrooms:    3,
			Area:         2800,
			Location: models.Location{
				City:    "Miami",
				Address: "456 Ocean Dr, Miami",
			},
			Images:    pq.StringArray{"https://images.unsplash.com/photo-1518780664697-55e3ad937233?w=800"},
			Amenities: pq.StringArray{"Beach Access", "Pool", "Garden"},
			Status:    models.StatusAvailable,
			SellerID:  seller.ID,
			Featured:  true,
		},
		{
			ID:           uuid.New().String(),
			Title:        "Cozy Suburban Condo",
			Description:  "Well-maintained condo close to schools and shopping.",
			Price:        180000,
			Type:         models.ListingSale,
			PropertyType: models.PropertyCondo,
			Bedrooms:     3,
			Bathrooms:    2,
			Area:         1500,
			Location: models.Location{
				City:    "Austin",
				Address: "789 Hill Rd, Austin",
			},
			Amenities: pq.StringArray{"Garage", "Backyard"},
			Status:    models.StatusAvailable,
			SellerID:  seller.ID,
		},
	}

	for _, p := range properties {
		database.DB.Create(&p)
	}
}
