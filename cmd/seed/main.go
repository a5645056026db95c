// Package main provides a tool to seed the database with demo users and tags.
//
// This creates one account per role plus a starter tag catalog so a fresh
// server can be exercised without going through setup by hand.
//
// Usage:
//
//	DATA_PATH=~/Distill/data go run ./cmd/seed
//	DATA_PATH=~/Distill/data go run ./cmd/seed --password "s3cret"
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/distillapp/distill-server/internal/auth"
	"github.com/distillapp/distill-server/internal/domain"
	"github.com/distillapp/distill-server/internal/id"
	"github.com/distillapp/distill-server/internal/store"
	"github.com/distillapp/distill-server/internal/store/sqlite"
	"github.com/distillapp/distill-server/internal/util"
)

var password = flag.String("password", "DemoPassword1!", "Password for the seeded demo accounts")

type seedUser struct {
	email     string
	firstName string
	lastName  string
	role      domain.Role
}

var demoUsers = []seedUser{
	{email: "admin@gmail.com", firstName: "Avery", lastName: "Admin", role: domain.RoleAdmin},
	{email: "researcher@gmail.com", firstName: "Riley", lastName: "Researcher", role: domain.RoleResearcher},
	{email: "knowledgeseeker@gmail.com", firstName: "Casey", lastName: "Curious", role: domain.RoleCustomer},
}

var starterTags = []string{
	"Neuroscience",
	"Nutrition",
	"Climate Science",
	"Machine Learning",
	"Public Health",
	"Psychology",
}

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/Distill/data")
	}
	if err := os.MkdirAll(dataPath, 0o700); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataPath, "distill.db")
	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := sqlite.Open(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	seedUsers(ctx, s)
	seedTags(ctx, s)

	fmt.Println("Done.")
}

func seedUsers(ctx context.Context, s *sqlite.Store) {
	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	for _, u := range demoUsers {
		if existing, err := s.GetUserByEmail(ctx, u.email); err == nil {
			fmt.Printf("User %s already exists (%s), skipping\n", u.email, existing.Role)
			continue
		}

		userID, err := id.Generate("user")
		if err != nil {
			log.Fatalf("Failed to generate user ID: %v", err)
		}

		now := time.Now()
		user := &domain.User{
			ID:           userID,
			Email:        u.email,
			PasswordHash: hash,
			Role:         u.role,
			FirstName:    u.firstName,
			LastName:     u.lastName,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.CreateUser(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", u.email, err)
		}
		fmt.Printf("Created %s user: %s\n", u.role, u.email)
	}
}

func seedTags(ctx context.Context, s *sqlite.Store) {
	for _, name := range starterTags {
		normalized := util.NormalizeTagName(name)

		if existing, err := s.GetTagByName(ctx, normalized); err == nil {
			fmt.Printf("Tag %q already exists (%s), skipping\n", normalized, existing.ID)
			continue
		}

		tagID, err := id.Generate("tag")
		if err != nil {
			log.Fatalf("Failed to generate tag ID: %v", err)
		}

		tag := &domain.Tag{
			ID:        tagID,
			Name:      normalized,
			CreatedAt: time.Now(),
		}
		if err := s.CreateTag(ctx, tag); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				fmt.Printf("Tag %q already exists, skipping\n", normalized)
				continue
			}
			log.Fatalf("Failed to create tag %q: %v", normalized, err)
		}
		fmt.Printf("Created tag: %s\n", normalized)
	}
}
