package pomotrack

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabasePath string
	ListenAddr   string
	LogLevel     string
}

func LoadConfig() (Config, error) {
	isProd := flag.Bool("p", false, "is production environment")
	flag.Parse()
	if *isProd {
		_ = godotenv.Load(".env")
	} else {
		_ = godotenv.Load(".env.dev")
	}

	config := Config{
		DatabasePath: os.Getenv("POMOTRACK_DB_PATH"),
		ListenAddr:   os.Getenv("POMOTRACK_LISTEN_ADDR"),
		LogLevel:     os.Getenv("POMOTRACK_LOG_LEVEL"),
	}

	if config.DatabasePath == "" {
		config.DatabasePath = "pomotrack.db"
	}
	if config.ListenAddr == "" {
		config.ListenAddr = ":8080"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}

	return config, nil
}
