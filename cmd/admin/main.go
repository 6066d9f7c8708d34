package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"complaintdesk/backend/internal/auth"
	"complaintdesk/backend/internal/models"
	"complaintdesk/backend/internal/storage"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN is not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "adduser":
		if len(os.Args) < 4 {
			fmt.Println("Usage: admin adduser <email> <password> [name]")
			os.Exit(1)
		}
		name := ""
		if len(os.Args) > 4 {
			name = os.Args[4]
		}
		if err := addUser(storageSvc, os.Args[2], os.Args[3], name); err != nil {
			log.Fatalf("Error adding user: %v", err)
		}
		fmt.Printf("User %s created.\n", os.Args[2])

	case "set-password":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin set-password <email> <password>")
			os.Exit(1)
		}
		if err := setPassword(storageSvc, os.Args[2], os.Args[3]); err != nil {
			log.Fatalf("Error setting password: %v", err)
		}
		fmt.Printf("Password updated for %s.\n", os.Args[2])

	case "assign-categories":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin assign-categories <email> <cat1,cat2,...|none>")
			os.Exit(1)
		}
		if err := assignCategories(storageSvc, os.Args[2], os.Args[3]); err != nil {
			log.Fatalf("Error assigning categories: %v", err)
		}
		fmt.Printf("Categories updated for %s.\n", os.Args[2])

	case "add-category":
		if len(os.Args) < 3 {
			fmt.Println("Usage: admin add-category <name> [position]")
			os.Exit(1)
		}
		position := 0
		if len(os.Args) > 3 {
			position, err = strconv.Atoi(os.Args[3])
			if err != nil {
				fmt.Println("Invalid position. Please provide an integer.")
				os.Exit(1)
			}
		}
		if err := storageSvc.SaveCategory(&models.Category{Name: os.Args[2], Position: position}); err != nil {
			log.Fatalf("Error adding category: %v", err)
		}
		fmt.Printf("Category %s added.\n", os.Args[2])

	case "list-categories":
		names, err := storageSvc.ListCategories()
		if err != nil {
			log.Fatalf("Error listing categories: %v", err)
		}
		for _, name := range names {
			fmt.Println(name)
		}

	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func addUser(s storage.Storage, email, password, name string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	return s.SaveUser(&models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         "staff",
	})
}

func setPassword(s storage.Storage, email, password string) error {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.SaveUser(user)
}

// assignCategories replaces the user's assignment set. "none" clears it,
// restoring unrestricted visibility.
func assignCategories(s storage.Storage, email, list string) error {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return err
	}

	var assigned []string
	if list != "none" {
		for _, name := range strings.Split(list, ",") {
			if name = strings.TrimSpace(name); name != "" {
				assigned = append(assigned, name)
			}
		}
	}
	user.AssignedCategories = pq.StringArray(assigned)
	return s.SaveUser(user)
}
