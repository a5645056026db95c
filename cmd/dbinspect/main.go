package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/distillapp/distill-server/internal/domain"
	"github.com/distillapp/distill-server/internal/store/sqlite"
)

func main() {
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/Distill/data")
	}
	dbPath := filepath.Join(dataPath, "distill.db")

	s, err := sqlite.Open(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	fmt.Println("=== Database Inspection ===")
	fmt.Println()

	users, err := s.ListUsers(ctx)
	if err != nil {
		log.Fatalf("Error listing users: %v", err)
	}

	roleCounts := map[domain.Role]int{}
	for _, u := range users {
		roleCounts[u.Role]++
	}

	fmt.Printf("Users: %d\n", len(users))
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleResearcher, domain.RoleCustomer} {
		if roleCounts[role] > 0 {
			fmt.Printf("  %s: %d\n", role, roleCounts[role])
		}
	}
	fmt.Println()

	tags, err := s.ListTags(ctx)
	if err != nil {
		log.Fatalf("Error listing tags: %v", err)
	}
	fmt.Printf("Tags: %d\n", len(tags))
	for _, t := range tags {
		fmt.Printf("  %s (%s)\n", t.Name, t.ID)
	}
	fmt.Println()

	pending, err := s.ListPendingInfographics(ctx)
	if err != nil {
		log.Fatalf("Error listing pending infographics: %v", err)
	}
	approved, err := s.ListApprovedInfographics(ctx)
	if err != nil {
		log.Fatalf("Error listing approved infographics: %v", err)
	}

	fmt.Println("=== Review Queue ===")
	fmt.Printf("Pending: %d\n", len(pending))
	for i, info := range pending {
		if i >= 5 {
			fmt.Printf("  ... and %d more pending\n", len(pending)-5)
			break
		}
		fmt.Printf("  %s: %q by %s (submitted %s)\n",
			info.ID, info.Content.Overview.Title, info.ResearcherID,
			info.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Println()

	fmt.Println("=== Summary ===")
	fmt.Printf("Approved infographics: %d\n", len(approved))
	fmt.Printf("Pending infographics: %d\n", len(pending))
}
