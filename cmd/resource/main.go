package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/coursekeeper/internal/resource"
	"github.com/dmitrijs2005/coursekeeper/internal/resource/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := resource.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
