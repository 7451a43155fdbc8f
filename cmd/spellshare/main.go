package main

import (
	"context"
	"log"

	"github.com/MrSnakeDoc/spellshare/internal/app"
)

func main() {
	ctx := context.Background()

	a, err := app.New(ctx)
	if err != nil {
		log.Fatalf("❌ spellshare failed to start: %v", err)
	}
	defer func() { _ = a.Logger().Sync() }()

	if err := a.Run(ctx); err != nil {
		_ = a.Logger().Sync()
		log.Fatalf("❌ spellshare stopped with error: %v", err)
	}
}
