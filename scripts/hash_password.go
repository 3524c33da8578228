package main

import (
	"flag"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
)

// Provisioning inserts directory users out of band; this helper produces the
// bcrypt hash that goes into the user.password column.
func main() {
	password := flag.String("password", "", "Plaintext password to hash")
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	flag.Parse()

	if *password == "" {
		log.Fatal("Password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), *cost)
	if err != nil {
		log.Fatalf("Error hashing password: %v", err)
	}

	fmt.Println(string(hash))
}
