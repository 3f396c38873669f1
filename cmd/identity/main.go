package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/coursekeeper/internal/identity"
	"github.com/dmitrijs2005/coursekeeper/internal/identity/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := identity.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
