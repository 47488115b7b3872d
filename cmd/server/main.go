package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"linkwriter/internal/api"
	"linkwriter/internal/config"
	"linkwriter/internal/imagesearch"
	"linkwriter/internal/llm"
	"linkwriter/internal/scrape"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Printf("[Main] loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	deps := &api.Deps{
		Fetcher: scrape.NewFetcher(scrape.NewExtractor()),
		LLM:     llm.NewClient(cfg.OllamaURL),
		Images:  imagesearch.NewClient(cfg.EnableImageSearch, ""),
	}

	if cfg.EnableImageSearch {
		log.Printf("[Main] outbound image search enabled")
	} else {
		log.Printf("[Main] outbound image search disabled")
	}
	log.Printf("[Main] model backend at %s", cfg.OllamaURL)

	r := api.SetupRouter(cfg, deps)
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	fmt.Printf("Starting server on %s\n", addr)
	if err := r.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
