package main

import (
	"fmt"
	"os"

	"github.com/yahamanand-svg/School/app/config"
	"github.com/yahamanand-svg/School/app/routes/auth"
)

// Seeds the first admin account from ADMIN_EMAIL / ADMIN_NAME /
// ADMIN_PASSWORD. Safe to rerun: an existing email is left alone.
func main() {
	email := os.Getenv("ADMIN_EMAIL")
	name := os.Getenv("ADMIN_NAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || name == "" || password == "" {
		fmt.Println("ADMIN_EMAIL, ADMIN_NAME and ADMIN_PASSWORD must be set")
		os.Exit(1)
	}

	config.Load()
	db := config.GetDB()
	defer db.Close()

	var exists bool
	if err := db.QueryRow(`SELECT EXISTS(SELECT 1 FROM admins WHERE email = $1)`, email).Scan(&exists); err != nil {
		fmt.Printf("Error checking admin: %v\n", err)
		os.Exit(1)
	}
	if exists {
		fmt.Printf("Admin %s already exists, nothing to do\n", email)
		return
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		fmt.Printf("Error hashing password: %v\n", err)
		os.Exit(1)
	}

	if _, err := db.Exec(`INSERT INTO admins (email, name, password) VALUES ($1, $2, $3)`, email, name, hashed); err != nil {
		fmt.Printf("Error creating admin: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Admin created successfully: %s (%s)\n", name, email)
}
