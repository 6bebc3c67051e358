package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/anitasharma/craftsbyanita/internal/models"
	"github.com/anitasharma/craftsbyanita/internal/store"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	addShopperCmd := flag.NewFlagSet("add-shopper", flag.ExitOnError)
	email := addShopperCmd.String("email", "", "Email for the new shopper")
	password := addShopperCmd.String("password", "", "Password for the new shopper")
	firstName := addShopperCmd.String("first", "", "First name")
	lastName := addShopperCmd.String("last", "", "Last name")

	addItemCmd := flag.NewFlagSet("add-item", flag.ExitOnError)
	title := addItemCmd.String("title", "", "Item title")
	description := addItemCmd.String("description", "", "Item description")
	price := addItemCmd.Float64("price", 0, "Price in INR")
	imageURL := addItemCmd.String("image", "", "Image URL")

	if len(os.Args) < 2 {
		fmt.Println("expected 'add-shopper' or 'add-item' subcommand")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add-shopper":
		addShopperCmd.Parse(os.Args[2:])
		if *email == "" || *password == "" {
			fmt.Println("email and password are required")
			addShopperCmd.PrintDefaults()
			os.Exit(1)
		}
		createShopper(*email, *password, *firstName, *lastName)
	case "add-item":
		addItemCmd.Parse(os.Args[2:])
		if *title == "" || *price <= 0 {
			fmt.Println("title and a positive price are required")
			addItemCmd.PrintDefaults()
			os.Exit(1)
		}
		createItem(*title, *description, *price, *imageURL)
	default:
		fmt.Println("expected 'add-shopper' or 'add-item' subcommand")
		os.Exit(1)
	}
}

func openStore() *store.Store {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./craftsbyanita.db"
	}

	db, err := store.NewStore(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	// Ensure tables exist if running cli before server
	if err := db.InitSchema(); err != nil {
		log.Fatalf("Failed to init schema: %v", err)
	}
	return db
}

func createShopper(email, password, firstName, lastName string) {
	db := openStore()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	err = db.CreateShopper(&models.Shopper{
		ID:        uuid.New().String(),
		Email:     email,
		Password:  string(hashedPassword),
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		log.Fatalf("Failed to create shopper: %v", err)
	}

	fmt.Printf("Shopper '%s' created successfully.\n", email)
}

func createItem(title, description string, price float64, imageURL string) {
	db := openStore()

	err := db.CreateItem(&models.Item{
		Title:       title,
		Description: description,
		Price:       price,
		ImageURL:    imageURL,
		Status:      "available",
	})
	if err != nil {
		log.Fatalf("Failed to create item: %v", err)
	}

	fmt.Printf("Item '%s' created successfully.\n", title)
}
