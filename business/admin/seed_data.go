package admin

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"myFoodMarket/domain"
	"myFoodMarket/pkg/utils"

	"github.com/google/uuid"
)

// Fixture pools the seed helpers cycle through. Names lean Spanish to match
// the storefront content.
var (
	seedFirstNames = []string{"Sofia", "Mateo", "Valentina", "Santiago", "Camila", "Sebastian", "Isabella", "Diego", "Lucia", "Andres"}
	seedLastNames  = []string{"Garcia", "Rodriguez", "Martinez", "Lopez", "Hernandez", "Perez", "Torres", "Ramirez", "Flores", "Morales"}

	seedStoreNames = []string{
		"La Bella Napoli", "Sakura House", "Burger Barrio", "Green Bowl", "Taco Loco",
		"Dragon Wok", "Curry Palace", "Pasta Fresca", "El Asador", "Sushi Go",
		"Pizza Urbana", "Veggie Garden", "Smash Bros Burgers", "Mariscos del Puerto", "Casa Ramen",
		"Trattoria Roma", "Bombay Express", "La Taqueria", "Wok & Roll", "Napoli Secreta",
	}
	seedStoreCategories = []domain.FoodCategory{
		domain.CategoryPizza, domain.CategorySushi, domain.CategoryBurger, domain.CategoryHealthy, domain.CategorySandwich,
		domain.CategoryBebidas, domain.CategoryAlimentos, domain.CategoryCocteles, domain.CategoryGrocery, domain.CategorySushi,
	}
	seedDeliveryTimes = []string{"15-25 min", "20-30 min", "25-35 min", "30-45 min"}
	seedPriceRanges   = []domain.PriceRange{domain.PriceBudget, domain.PriceModerate, domain.PriceExpensive, domain.PriceLuxury}

	seedProductNames = []string{
		"Margherita Clasica", "Pepperoni Especial", "California Roll", "Dragon Roll", "Doble Queso Burger",
		"Bacon Smash", "Bowl Mediterraneo", "Ensalada Quinoa", "Tacos al Pastor", "Quesadilla Norteña",
		"Pollo Kung Pao", "Arroz Tres Delicias", "Butter Chicken", "Samosas", "Fettuccine Alfredo",
		"Lasagna de la Casa", "Arrachera Premium", "Costillas BBQ", "Nigiri Mixto", "Ramen Tonkotsu",
	}

	seedEventNames = []string{
		"Festival del Taco", "Cata de Vinos de Autor", "Taller de Sushi", "Noche de Mixologia", "Feria Gastronomica",
		"Brunch Dominical", "Cerveza Artesanal Fest", "Curso de Reposteria", "Mercado Nocturno", "Degustacion de Quesos",
	}
	seedEventCategories = []domain.EventCategory{
		domain.EventGastronomico, domain.EventBebidas, domain.EventEducativo,
		domain.EventBebidas, domain.EventGastronomico, domain.EventGastronomico,
		domain.EventBebidas, domain.EventEducativo, domain.EventCultural, domain.EventGastronomico,
	}
	seedLocations = []string{"Centro de Convenciones", "Parque Central", "Mercado Roma", "Terraza Reforma", "Foro Cultural"}
)

const seedPassword = "Password123!"

func (s *adminService) seedUsers(ctx context.Context, count int) (int, error) {
	// One hash shared across fixtures; hashing per user at bcrypt cost 12
	// would make a 100-user seed take minutes.
	passwordHash, err := utils.HashPassword(seedPassword)
	if err != nil {
		return 0, err
	}

	levels := []domain.MembershipLevel{domain.MembershipSilver, domain.MembershipGold, domain.MembershipPlatinum}

	created := 0
	for i := 0; i < count; i++ {
		first := seedFirstNames[i%len(seedFirstNames)]
		last := seedLastNames[(i/len(seedFirstNames)+i)%len(seedLastNames)]

		user := domain.User{
			Email:        fmt.Sprintf("%v.%v%d@example.com", strings.ToLower(first), strings.ToLower(last), i),
			PasswordHash: passwordHash,
			FirstName:    first,
			LastName:     last,
			// Roughly 60/30/10 silver/gold/platinum.
			MembershipLevel: levels[membershipBucket(i)],
			Points:          rand.Intn(5000),
			EmailVerified:   i%3 != 0,
		}

		if err := s.userRepo.Create(ctx, &user); err != nil {
			return created, err
		}
		created++
	}

	return created, nil
}

func membershipBucket(i int) int {
	switch {
	case i%10 == 0:
		return 2
	case i%10 <= 3:
		return 1
	default:
		return 0
	}
}

func (s *adminService) seedStores(ctx context.Context, count int) (int, []uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, count)

	for i := 0; i < count; i++ {
		lat := 19.30 + rand.Float64()*0.25
		lng := -99.25 + rand.Float64()*0.25

		store := domain.Store{
			Name:         seedStoreNames[i%len(seedStoreNames)],
			Description:  "Cocina de barrio con ingredientes frescos y entrega rapida.",
			Category:     seedStoreCategories[i%len(seedStoreCategories)],
			Rating:       roundRating(3.5 + rand.Float64()*1.5),
			ReviewCount:  rand.Intn(500),
			DeliveryTime: seedDeliveryTimes[i%len(seedDeliveryTimes)],
			Address:      fmt.Sprintf("Av. Insurgentes %d, Col. Condesa", 100+i*7),
			IsOpen:       i%5 != 0,
			Latitude:     &lat,
			Longitude:    &lng,
			Specialties:  []string{"especialidad de la casa", "menu del dia"},
			Features:     []string{"delivery", "pickup"},
			PriceRange:   seedPriceRanges[i%len(seedPriceRanges)],
		}

		if err := s.storeRepo.Create(ctx, &store); err != nil {
			return len(ids), nil, err
		}
		ids = append(ids, store.ID)
	}

	return len(ids), ids, nil
}

func (s *adminService) seedProducts(ctx context.Context, count int, storeIDs []uuid.UUID) (int, error) {
	if len(storeIDs) == 0 {
		return 0, nil
	}

	created := 0
	for i := 0; i < count; i++ {
		basePrice := 60 + rand.Float64()*240
		var originalPrice *float64
		if i%4 == 0 {
			discounted := basePrice * 1.25
			originalPrice = &discounted
		}
		calories := 250 + rand.Intn(900)

		product := domain.Product{
			StoreID:         storeIDs[i%len(storeIDs)],
			Name:            seedProductNames[i%len(seedProductNames)],
			Description:     "Preparado al momento con receta tradicional.",
			Category:        seedStoreCategories[i%len(seedStoreCategories)],
			BasePrice:       round2(basePrice),
			OriginalPrice:   originalPrice,
			Rating:          roundRating(3.0 + rand.Float64()*2.0),
			ReviewCount:     rand.Intn(200),
			PreparationTime: fmt.Sprintf("%d min", 10+rand.Intn(30)),
			Calories:        &calories,
			IsOrganic:       i%6 == 0,
			IsVegan:         i%7 == 0,
			IsGlutenFree:    i%8 == 0,
			IsSpicy:         i%5 == 0,
			IsSponsored:     i%9 == 0,
			IsAvailable:     true,
			Ingredients:     []string{"ingrediente base", "salsa de la casa"},
			Tags:            []string{"popular"},
		}

		if err := s.productRepo.Create(ctx, &product); err != nil {
			return created, err
		}
		created++
	}

	return created, nil
}

func (s *adminService) seedEvents(ctx context.Context, count int) (int, error) {
	created := 0
	for i := 0; i < count; i++ {
		capacity := 50 + rand.Intn(450)
		sold := rand.Intn(capacity / 2)

		event := domain.Event{
			Title:            seedEventNames[i%len(seedEventNames)],
			Description:      "Una experiencia gastronomica para toda la familia.",
			Date:             time.Now().AddDate(0, 0, 1+rand.Intn(60)),
			Time:             fmt.Sprintf("%02d:00", 12+rand.Intn(9)),
			Duration:         fmt.Sprintf("%d horas", 2+rand.Intn(4)),
			Location:         seedLocations[i%len(seedLocations)],
			Address:          fmt.Sprintf("Calle Reforma %d", 50+i*11),
			Category:         seedEventCategories[i%len(seedEventCategories)],
			Price:            round2(float64(rand.Intn(80)) * 10),
			Capacity:         capacity,
			AvailableTickets: capacity - sold,
			Organizer:        "MyFoodMarket Events",
			IsSponsored:      i%6 == 0,
			Includes:         []string{"acceso general", "degustacion"},
			Tags:             []string{"evento"},
		}

		if err := s.eventRepo.Create(ctx, &event); err != nil {
			return created, err
		}
		created++
	}

	return created, nil
}

func roundRating(v float64) float64 {
	return float64(int(v*10)) / 10
}

func round2(v float64) float64 {
	return float64(int(v*100)) / 100
}
