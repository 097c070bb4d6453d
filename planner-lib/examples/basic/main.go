// ABOUTME: Basic example showing the planner library against a running API
// ABOUTME: Lists items, creates one through the editor and prints the board

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"content-planner-api/core/editor"
	planner "content-planner-api/planner-lib"
)

func main() {
	client, err := planner.NewClient(
		planner.WithBaseURL("http://localhost:8000"),
		planner.WithToken(os.Getenv("PLANNER_TOKEN")),
		planner.WithTimeout(10*time.Second),
	)
	if err != nil {
		log.Fatal("Failed to create client:", err)
	}

	ctx := context.Background()
	if err := client.Refresh(ctx); err != nil {
		log.Fatalf("Failed to load items: %v", err)
	}
	fmt.Printf("Loaded %d items\n", len(client.Items()))

	ed := client.Editor()
	ed.OpenCreate()
	ed.Edit(func(f *editor.Form) {
		f.Title = "Example video"
		f.Date = client.Now().AddDate(0, 0, 7).Format("2006-01-02")
	})
	item, err := ed.Save(ctx)
	if err != nil {
		log.Fatalf("Create failed (%s): %v", planner.TypeOf(err), err)
	}
	fmt.Printf("Created %s\n", item.ID)

	for _, col := range client.Board().Columns {
		fmt.Printf("%-12s %d\n", client.Locale().Status(col.Status), len(col.Items))
	}
}
