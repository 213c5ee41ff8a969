package main

import (
	"bufio"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"milkreg/pkg/ledger"
)

var jwtSecret []byte // loaded from env JWT_SECRET (fallback to dev default)

func main() {
	// Auto-load ./.env if present (no external dependency) before reading vars
	loadDotEnv()
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-insecure-secret-change" // development fallback
	}
	jwtSecret = []byte(secret)

	store := ledger.NewStore(ledger.DefaultVocabulary())
	if err := store.Current().Validate(); err != nil {
		// a colliding or malformed vocabulary is a configuration defect
		log.Fatalf("vocabulary self-check failed: %v", err)
	}
	if path := os.Getenv("VOCAB_PATH"); path != "" {
		if err := store.LoadFile(path); err != nil {
			log.Fatalf("vocabulary load failed: %v", err)
		}
		stop, err := store.Watch(path)
		if err != nil {
			log.Printf("vocabulary watch disabled: %v", err)
		} else {
			defer stop()
		}
	}

	r := gin.Default()
	setupRoutes(r, store)
	r.Run(":8081")
}

// loadDotEnv loads key=value pairs from a local .env file into the environment
// without overwriting variables that are already set. Lines starting with # are ignored.
func loadDotEnv() {
	path := ".env"
	if _, err := os.Stat(path); err != nil {
		return // no .env file
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// split on first '='
		if eq := strings.IndexByte(line, '='); eq > 0 {
			key := strings.TrimSpace(line[:eq])
			val := strings.TrimSpace(line[eq+1:])
			if _, exists := os.LookupEnv(key); !exists {
				_ = os.Setenv(key, val)
			}
		}
	}
}
