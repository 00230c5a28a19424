package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	ServerPort string

	GithubToken     string
	GithubRateLimit int
	SyncPageSize    int

	JiraBaseURL  string
	JiraEmail    string
	JiraAPIToken string
}

func LoadConfig() (Config, error) {

	err := godotenv.Load()

	return Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "gradesync"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		GithubToken:     getEnv("GITHUB_TOKEN", ""),
		GithubRateLimit: getEnvInt("GITHUB_RATE_LIMIT", 5),
		SyncPageSize:    getEnvInt("SYNC_PAGE_SIZE", 100),

		JiraBaseURL:  getEnv("JIRA_BASE_URL", ""),
		JiraEmail:    getEnv("JIRA_EMAIL", ""),
		JiraAPIToken: getEnv("JIRA_API_TOKEN", ""),
	}, err
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
