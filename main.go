package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"shopping-assistant/agent/assistant"
	"shopping-assistant/agent/catalog"
	"shopping-assistant/agent/shop"
	"shopping-assistant/agent/state"
	"shopping-assistant/agent/tool"
	configx "shopping-assistant/pkg/config"
	_ "shopping-assistant/pkg/logger/autoload"
)

type AppConfig struct {
	StoreBackend string `envconfig:"STORE_BACKEND" default:"memory"`
	ResourceID   string `envconfig:"RESOURCE_ID" default:"default-customer"`
	CatalogPath  string `envconfig:"CATALOG_PATH"`
}

func main() {
	appCfg := configx.MustNew[AppConfig]("SHOP")

	cat := catalog.Load(appCfg.CatalogPath)
	log.Info().Int("products", cat.Len()).Msg("catalog loaded")

	store, err := newStore(appCfg.StoreBackend)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize state store")
	}

	svc, err := shop.NewService(cat, store)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize shop service")
	}
	executor := tool.NewExecutor(svc, appCfg.ResourceID)

	assistantCfg := configx.MustNew[assistant.Config]("OPENAI")
	asst, err := assistant.New(*assistantCfg, executor)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize assistant")
	}

	runChatLoop(asst)
}

func newStore(backend string) (state.Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", "memory":
		return state.NewMemoryStore(), nil
	case "redis":
		cfg := configx.MustNew[state.UpstashRedisConfig]("UPSTASH_REDIS")
		return state.NewUpstashRedisStore(*cfg)
	case "postgres":
		cfg := configx.MustNew[state.PostgresConfig]("POSTGRES")
		store, err := state.NewPostgresStore(*cfg)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureSchema(context.Background()); err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", backend)
	}
}

func runChatLoop(asst *assistant.Assistant) {
	fmt.Println("Shopping assistant ready. Type a message, or 'exit' to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "exit" || text == "quit" {
			return
		}

		reply, err := asst.HandleMessage(context.Background(), text)
		if err != nil {
			log.Error().Err(err).Msg("turn failed")
			fmt.Println("Sorry, something went wrong. Please try again.")
			continue
		}
		fmt.Println(reply)
	}
}
