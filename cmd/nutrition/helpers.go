package nutrition

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/captain-stacks/nutrition-gpt/internal/app"
	"github.com/captain-stacks/nutrition-gpt/internal/db"
	"github.com/captain-stacks/nutrition-gpt/internal/provider/openai"
	"github.com/captain-stacks/nutrition-gpt/internal/queue"
	"github.com/captain-stacks/nutrition-gpt/internal/service"
	"github.com/captain-stacks/nutrition-gpt/internal/store"
)

// dispatcher serializes every outbound estimator call for the process.
var dispatcher = queue.New()

func resolveDBPath() (string, error) {
	if strings.TrimSpace(dbPath) != "" {
		return strings.TrimSpace(dbPath), nil
	}
	if v := strings.TrimSpace(os.Getenv("NUTRITION_DB")); v != "" {
		return v, nil
	}
	return app.DefaultDBPath()
}

// withSession opens the database, loads the session, runs fn, and persists
// the session when fn succeeds.
func withSession(run func(*service.Session) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	session, err := service.LoadSession(store.New(sqldb))
	if err != nil {
		return err
	}
	if err := run(session); err != nil {
		return err
	}
	return session.Save()
}

func resolveOpenAIKey(flagValue string) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv("NUTRITION_OPENAI_API_KEY")); v != "" {
		return v
	}
	return strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
}

func resolveOpenAIModel(flagValue string) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v
	}
	return strings.TrimSpace(os.Getenv("NUTRITION_OPENAI_MODEL"))
}

func resolveUSDAKey(flagValue string) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v
	}
	return strings.TrimSpace(os.Getenv("NUTRITION_USDA_API_KEY"))
}

// newEstimator builds the LLM client, or nil when no key is configured.
// Callers that can work without estimation pass the nil through.
func newEstimator(apiKeyFlag, modelFlag string) (*openai.Client, error) {
	key := resolveOpenAIKey(apiKeyFlag)
	if key == "" {
		return nil, nil
	}
	return openai.NewClient(key, resolveOpenAIModel(modelFlag), dispatcher)
}

func parseQuantityArg(name, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v < 0 {
		return 0, fmt.Errorf("%s must be >= 0", name)
	}
	return v, nil
}
