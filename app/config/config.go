package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	DB   *sql.DB
	Port string
}

var AppConfig *Config

// Load reads .env if present and opens the database connection pool.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db, err := sql.Open("postgres", dsn())
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if err = db.Ping(); err != nil {
		log.Fatal("Cannot establish database connection: ", err)
	}

	AppConfig = &Config{
		DB:   db,
		Port: getenv("PORT", "8080"),
	}
	log.Println("Database connected successfully")
}

func dsn() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getenv("DB_HOST", "localhost"),
		getenv("DB_PORT", "5432"),
		getenv("DB_USER", "postgres"),
		os.Getenv("DB_PASSWORD"),
		getenv("DB_NAME", "school"),
		getenv("DB_SSLMODE", "disable"),
	)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetDB() *sql.DB {
	return AppConfig.DB
}
