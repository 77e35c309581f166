package commands

import (
	"fmt"
	"os"

	"opinionlens-backend/lib/configutil"
	"opinionlens-backend/lib/serviceutil"
	"opinionlens-backend/lib/youtube"
)

type Config struct {
	ApiKey string `json:"api_key"`
}

// resolves the API key from the environment or config.json5, failing fast
// before any work starts when neither is set.
func apiKey() string {
	if key := os.Getenv("YOUTUBE_API_KEY"); key != "" {
		return key
	}

	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to read config", err)
	}
	if cfg.ApiKey == "" {
		serviceutil.Fatal(
			"missing credential",
			fmt.Errorf("set YOUTUBE_API_KEY or put api_key in config.json5"),
		)
	}
	return cfg.ApiKey
}

func newClient() *youtube.Client {
	client, err := youtube.NewClient(youtube.ClientOptions{ApiKey: apiKey()})
	if err != nil {
		serviceutil.Fatal("failed to initialize youtube client", err)
	}
	return client
}
