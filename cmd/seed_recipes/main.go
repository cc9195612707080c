package main

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/platemate-ai/backend/config"
	"github.com/platemate-ai/backend/internal/database"
	"github.com/platemate-ai/backend/internal/model"
	"github.com/platemate-ai/backend/internal/service"
)

type seedRecipe struct {
	Title           string
	Ingredients     []string
	Instructions    []string
	PrepTimeMinutes int
	Servings        int
	ImageURLs       []string
}

// Some entries intentionally carry no images so the null imageUrl path is
// visible in development.
var seedRecipes = []seedRecipe{
	{
		Title: "Creamy Vegan Pasta with Roasted Tomatoes",
		Ingredients: []string{
			"300g penne",
			"200g cherry tomatoes",
			"1 cup raw cashews",
			"2 cloves garlic",
			"2 tbsp olive oil",
			"1 tbsp nutritional yeast",
			"Fresh basil",
		},
		Instructions: []string{
			"Roast the cherry tomatoes with olive oil at 200C for 20 minutes.",
			"Soak the cashews in hot water, then blend with garlic and nutritional yeast into a cream.",
			"Cook the penne until al dente and toss with the cashew cream.",
			"Fold in the roasted tomatoes and finish with basil.",
		},
		PrepTimeMinutes: 35,
		Servings:        4,
		ImageURLs: []string{
			"https://platemate-recipe-images.s3.amazonaws.com/seed/vegan-pasta.jpg",
		},
	},
	{
		Title: "Thai Green Curry with Vegetables",
		Ingredients: []string{
			"2 tbsp green curry paste",
			"400ml coconut milk",
			"1 zucchini",
			"1 red bell pepper",
			"100g green beans",
			"1 tbsp soy sauce",
			"Thai basil",
			"Jasmine rice",
		},
		Instructions: []string{
			"Fry the curry paste until fragrant.",
			"Add the coconut milk and bring to a gentle simmer.",
			"Add the vegetables and cook until just tender.",
			"Season with soy sauce, top with Thai basil, and serve over rice.",
		},
		PrepTimeMinutes: 30,
		Servings:        4,
		ImageURLs: []string{
			"https://platemate-recipe-images.s3.amazonaws.com/seed/green-curry.jpg",
			"https://platemate-recipe-images.s3.amazonaws.com/seed/green-curry-bowl.jpg",
		},
	},
	{
		Title: "Classic Margherita Pizza",
		Ingredients: []string{
			"500g pizza dough",
			"200g canned San Marzano tomatoes",
			"250g fresh mozzarella",
			"Fresh basil leaves",
			"2 tbsp olive oil",
			"Salt",
		},
		Instructions: []string{
			"Stretch the dough into two thin rounds.",
			"Crush the tomatoes with salt and spread a thin layer on each round.",
			"Tear the mozzarella over the top and drizzle with olive oil.",
			"Bake at maximum oven heat until blistered, then finish with basil.",
		},
		PrepTimeMinutes: 90,
		Servings:        2,
		ImageURLs: []string{
			"https://platemate-recipe-images.s3.amazonaws.com/seed/margherita.jpg",
		},
	},
	{
		Title: "Hearty Lentil Soup",
		Ingredients: []string{
			"250g brown lentils",
			"1 onion",
			"2 carrots",
			"2 celery stalks",
			"1 can diced tomatoes",
			"1.5l vegetable stock",
			"1 tsp cumin",
			"2 tbsp olive oil",
		},
		Instructions: []string{
			"Sweat the onion, carrots and celery in olive oil.",
			"Add the cumin and cook for a minute.",
			"Add lentils, tomatoes and stock, then simmer for 35 minutes.",
			"Season and serve with crusty bread.",
		},
		PrepTimeMinutes: 50,
		Servings:        6,
	},
	{
		Title: "Garlic Butter Salmon with Asparagus",
		Ingredients: []string{
			"4 salmon fillets",
			"1 bunch asparagus",
			"60g butter",
			"3 cloves garlic",
			"1 lemon",
			"Salt and pepper",
		},
		Instructions: []string{
			"Season the salmon with salt and pepper.",
			"Sear the fillets skin side down, then flip.",
			"Add butter, garlic and asparagus to the pan and baste for 3 minutes.",
			"Finish with lemon juice.",
		},
		PrepTimeMinutes: 25,
		Servings:        4,
		ImageURLs: []string{
			"https://platemate-recipe-images.s3.amazonaws.com/seed/salmon.jpg",
		},
	},
	{
		Title: "Chickpea and Spinach Curry",
		Ingredients: []string{
			"2 cans chickpeas",
			"200g spinach",
			"1 onion",
			"2 tomatoes",
			"1 tbsp curry powder",
			"200ml coconut milk",
			"2 tbsp vegetable oil",
		},
		Instructions: []string{
			"Fry the onion until golden, then add the curry powder.",
			"Add chopped tomatoes and cook down into a thick base.",
			"Stir in chickpeas and coconut milk and simmer for 10 minutes.",
			"Wilt in the spinach just before serving.",
		},
		PrepTimeMinutes: 30,
		Servings:        4,
	},
	{
		Title: "Overnight Oats with Berries",
		Ingredients: []string{
			"1 cup rolled oats",
			"1 cup oat milk",
			"2 tbsp chia seeds",
			"1 tbsp maple syrup",
			"Mixed berries",
		},
		Instructions: []string{
			"Stir the oats, milk, chia and maple syrup together in a jar.",
			"Refrigerate overnight.",
			"Top with berries before eating.",
		},
		PrepTimeMinutes: 10,
		Servings:        2,
		ImageURLs: []string{
			"https://platemate-recipe-images.s3.amazonaws.com/seed/overnight-oats.jpg",
		},
	},
	{
		Title: "Beef Tacos with Pico de Gallo",
		Ingredients: []string{
			"500g ground beef",
			"8 corn tortillas",
			"1 tbsp taco seasoning",
			"2 tomatoes",
			"1 red onion",
			"1 lime",
			"Fresh cilantro",
		},
		Instructions: []string{
			"Brown the beef with the taco seasoning.",
			"Dice the tomatoes and onion, then toss with lime juice and cilantro.",
			"Warm the tortillas in a dry pan.",
			"Fill the tortillas with beef and top with pico de gallo.",
		},
		PrepTimeMinutes: 25,
		Servings:        4,
	},
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to recipe store: %v", err)
	}
	if err := database.MigrateRecipeStore(db); err != nil {
		log.Fatalf("Failed to migrate recipe store: %v", err)
	}

	imageDB, err := database.NewImageStore(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to image store: %v", err)
	}
	if err := database.MigrateImageStore(imageDB); err != nil {
		log.Fatalf("Failed to migrate image store: %v", err)
	}

	embedder, err := service.NewEmbeddingService()
	if err != nil {
		log.Fatalf("Failed to create embedding service: %v", err)
	}
	recipes := service.NewRecipeService(db)

	ctx := context.Background()
	seeded := 0
	for _, seed := range seedRecipes {
		// Same document shape the admin ingestion route embeds
		document := seed.Title + "\n" + strings.Join(seed.Ingredients, "\n")
		embedding, err := embedder.GenerateEmbedding(ctx, document)
		if err != nil {
			log.Printf("Failed to embed %q: %v", seed.Title, err)
			continue
		}

		prep := seed.PrepTimeMinutes
		servings := seed.Servings
		record := &model.Recipe{
			Title:           seed.Title,
			Ingredients:     model.JSONBStringArray(seed.Ingredients),
			Instructions:    model.JSONBStringArray(seed.Instructions),
			PrepTimeMinutes: &prep,
			Servings:        &servings,
			Embedding:       embedding,
		}
		if _, err := recipes.CreateRecipe(ctx, record); err != nil {
			log.Printf("Failed to insert %q: %v", seed.Title, err)
			continue
		}

		for position, url := range seed.ImageURLs {
			image := model.RecipeImage{
				ID:       uuid.New(),
				RecipeID: record.ID,
				URL:      url,
				Position: position,
			}
			if err := imageDB.Create(&image).Error; err != nil {
				log.Printf("Failed to record image for %q: %v", seed.Title, err)
			}
		}

		seeded++
		log.Printf("Seeded recipe: %s", seed.Title)
	}

	log.Printf("Successfully seeded %d recipes", seeded)
}
