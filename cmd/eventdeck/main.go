package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/eventdeck/eventdeck-client/internal/adapters/driven/file"
	"github.com/eventdeck/eventdeck-client/internal/adapters/driven/memory"
	redisadapter "github.com/eventdeck/eventdeck-client/internal/adapters/driven/redis"
	"github.com/eventdeck/eventdeck-client/internal/adapters/driven/rest"
	"github.com/eventdeck/eventdeck-client/internal/core/domain"
	"github.com/eventdeck/eventdeck-client/internal/core/ports/driven"
	"github.com/eventdeck/eventdeck-client/internal/core/ports/driving"
	"github.com/eventdeck/eventdeck-client/internal/core/services"
)

var version = "dev"

const usage = `eventdeck - event catalog client

Usage:
  eventdeck <command> [args]

Commands:
  login <username> <password>       log in and persist the session
  logout                            log out and clear the session
  register <username> <email> <password>
  events [city] [categories] [term] list events (categories comma-separated)
  map [city] [categories] [term]    list map markers
  event <id>                        show one event
  categories                        list event categories
  cities                            list cities
  search-cities <prefix>            search cities by name prefix
  profile                           show the logged-in profile
  favourites                        list favourite events
  favourite <event-id>              toggle an event as favourite
  react <event-id> <reaction>       react to an event (LIKE/INTERESTED/DISLIKE)
  recommend [page] [size]           list recommended events
  clear-cache                       drop all cached query results
`

// stderrNotifier surfaces session-expiry notices to the terminal user.
type stderrNotifier struct{}

func (stderrNotifier) SessionExpired(reason string) {
	fmt.Fprintf(os.Stderr, "session notice: %s\n", reason)
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	command := os.Args[1]
	args := os.Args[2:]

	logLevel := slog.LevelWarn
	if getEnvBool("EVENTDECK_DEBUG", false) {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	// Configuration from environment
	baseURL := getEnv("API_BASE_URL", "http://localhost:8080/api")
	redisURL := getEnv("REDIS_URL", "")
	sessionFile := getEnv("SESSION_FILE", defaultSessionFile())
	sessionSecret := getEnv("SESSION_SECRET", "")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// ===== Storage: Redis when configured, local fallbacks otherwise =====
	var credentials driven.CredentialStore
	var cache driven.CacheStore
	if redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer client.Close()
		credentials = redisadapter.NewCredentialStore(client)
		cache = redisadapter.NewCacheStore(client)
	} else {
		if sessionSecret == "" {
			log.Fatal("SESSION_SECRET is required when REDIS_URL is not set")
		}
		store, err := file.NewCredentialStore(sessionFile, sessionSecret)
		if err != nil {
			log.Fatalf("Failed to open session file: %v", err)
		}
		credentials = store
		cache = memory.NewCacheStore()
	}

	// ===== Transport =====
	authClient, err := rest.NewAuthClient(baseURL, logger)
	if err != nil {
		log.Fatalf("Failed to create auth client: %v", err)
	}

	sessions := services.NewSessionManager(services.SessionManagerConfig{
		Store:    credentials,
		API:      authClient,
		Notifier: stderrNotifier{},
		Logger:   logger,
	})

	pipeline := rest.NewClient(baseURL, sessions, logger)
	catalogAPI := rest.NewCatalogClient(pipeline)
	userAPI := rest.NewUserClient(pipeline)

	// ===== Services =====
	catalog := services.NewCatalogService(services.CatalogServiceConfig{
		API:           catalogAPI,
		Store:         cache,
		Logger:        logger,
		EventsTTL:     envDuration("EVENTS_TTL_MIN", 0),
		CitiesTTL:     envDuration("CITIES_TTL_MIN", 0),
		CategoriesTTL: envDuration("CATEGORIES_TTL_MIN", 0),
	})
	users := services.NewUserService(userAPI, logger)

	if err := run(ctx, command, args, sessions, catalog, users); err != nil {
		log.Fatalf("eventdeck %s: %s failed: %v", version, command, err)
	}
}

func run(ctx context.Context, command string, args []string, sessions driving.SessionService, catalog driving.CatalogService, users driving.UserService) error {
	switch command {
	case "login":
		if len(args) != 2 {
			return fmt.Errorf("usage: login <username> <password>")
		}
		session, err := sessions.Login(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("logged in as %s (expires %s)\n", session.Username, session.ExpiresAt.Format(time.RFC3339))
		return nil

	case "logout":
		return sessions.Logout(ctx)

	case "register":
		if len(args) != 3 {
			return fmt.Errorf("usage: register <username> <email> <password>")
		}
		if err := sessions.Register(ctx, args[0], args[1], args[2]); err != nil {
			return err
		}
		fmt.Println("account created, log in to continue")
		return nil

	case "events":
		events, err := catalog.ListEvents(ctx, filterFromArgs(args))
		if err != nil {
			return err
		}
		return printJSON(events)

	case "map":
		events, err := catalog.MapEvents(ctx, filterFromArgs(args))
		if err != nil {
			return err
		}
		return printJSON(events)

	case "event":
		if len(args) != 1 {
			return fmt.Errorf("usage: event <id>")
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("%w: event id must be a number", domain.ErrInvalidInput)
		}
		event, err := catalog.Event(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(event)

	case "categories":
		categories, err := catalog.Categories(ctx)
		if err != nil {
			return err
		}
		return printJSON(categories)

	case "cities":
		cities, err := catalog.Cities(ctx)
		if err != nil {
			return err
		}
		return printJSON(cities)

	case "search-cities":
		if len(args) != 1 {
			return fmt.Errorf("usage: search-cities <prefix>")
		}
		cities, err := catalog.SearchCities(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(cities)

	case "profile":
		profile, err := users.Profile(ctx)
		if err != nil {
			return err
		}
		return printJSON(profile)

	case "favourites":
		events, err := users.FavouriteEvents(ctx)
		if err != nil {
			return err
		}
		return printJSON(events)

	case "favourite":
		if len(args) != 1 {
			return fmt.Errorf("usage: favourite <event-id>")
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("%w: event id must be a number", domain.ErrInvalidInput)
		}
		return users.ToggleFavourite(ctx, id)

	case "react":
		if len(args) != 2 {
			return fmt.Errorf("usage: react <event-id> <reaction>")
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("%w: event id must be a number", domain.ErrInvalidInput)
		}
		added, err := users.React(ctx, id, strings.ToUpper(args[1]))
		if err != nil {
			return err
		}
		if added {
			fmt.Println("reaction added")
		} else {
			fmt.Println("reaction replaced")
		}
		return nil

	case "recommend":
		page, size := 0, 20
		if len(args) > 0 {
			page, _ = strconv.Atoi(args[0])
		}
		if len(args) > 1 {
			size, _ = strconv.Atoi(args[1])
		}
		events, err := users.Recommendations(ctx, page, size)
		if err != nil {
			return err
		}
		return printJSON(events)

	case "clear-cache":
		return catalog.ClearCache(ctx)

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

// filterFromArgs builds a filter from positional [city] [categories] [term].
func filterFromArgs(args []string) domain.Filter {
	filter := domain.Filter{Page: 0, PageSize: 20}
	if len(args) > 0 {
		filter.CityName = args[0]
	}
	if len(args) > 1 && args[1] != "" {
		filter.Categories = strings.Split(args[1], ",")
	}
	if len(args) > 2 {
		filter.SearchTerm = args[2]
	}
	return filter
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "eventdeck-session.bin"
	}
	return filepath.Join(home, ".eventdeck", "session.bin")
}

func envDuration(key string, defaultValue time.Duration) time.Duration {
	if minutes := getEnvInt(key, 0); minutes > 0 {
		return time.Duration(minutes) * time.Minute
	}
	return defaultValue
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}
