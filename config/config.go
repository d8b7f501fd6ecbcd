package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config carries every process-wide setting read from the environment.
// Components receive it (or a slice of it) explicitly instead of reading
// ambient globals, so tests can run against synthetic asset sets.
type Config struct {
	// Local asset store
	BackgroundsDir string
	ImagesDir      string
	MusicDir       string
	FontsDir       string
	FontBold       string
	FontRegular    string
	OutputDir      string
	TmpDir         string

	// Remote asset sources
	DriveBackgroundsFolderID string
	DriveMusicFolderID       string
	GoogleCredentialsFile    string
	S3Bucket                 string
	S3AssetPrefix            string
	S3Region                 string
	S3PublicBaseURL          string

	// Collaborator services
	RedisAddr    string
	CohereAPIKey string

	// Kafka intake
	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string

	// Publishing credentials
	YouTubeClientID     string
	YouTubeClientSecret string
	YouTubeRefreshToken string
	IGUserID            string
	IGAccessToken       string
	FBPageID            string
	FBAccessToken       string

	// Service settings
	Port                  string
	ScheduleIntervalHours int
	NewsFeeds             []string
}

// FromEnv builds a Config from environment variables with sane defaults.
// godotenv.Load in main is expected to have run first.
func FromEnv() Config {
	return Config{
		BackgroundsDir: getEnvOrDefault("BACKGROUNDS_DIR", filepath.Join("assets", "backgrounds")),
		ImagesDir:      getEnvOrDefault("IMAGES_DIR", filepath.Join("assets", "images")),
		MusicDir:       getEnvOrDefault("MUSIC_DIR", filepath.Join("assets", "audio")),
		FontsDir:       getEnvOrDefault("FONTS_DIR", filepath.Join("assets", "fonts")),
		FontBold:       getEnvOrDefault("FONT_BOLD", "Montserrat-Bold.ttf"),
		FontRegular:    getEnvOrDefault("FONT_REGULAR", "Montserrat-Regular.ttf"),
		OutputDir:      getEnvOrDefault("OUTPUT_DIR", "output"),
		TmpDir:         getEnvOrDefault("TMP_DIR", os.TempDir()),

		DriveBackgroundsFolderID: os.Getenv("DRIVE_BACKGROUNDS_FOLDER_ID"),
		DriveMusicFolderID:       os.Getenv("DRIVE_MUSIC_FOLDER_ID"),
		GoogleCredentialsFile:    os.Getenv("GOOGLE_CREDENTIALS_FILE"),
		S3Bucket:                 strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3AssetPrefix:            strings.TrimSpace(os.Getenv("S3_ASSET_PREFIX")),
		S3Region:                 strings.TrimSpace(os.Getenv("AWS_REGION")),
		S3PublicBaseURL:          strings.TrimRight(os.Getenv("S3_PUBLIC_BASE_URL"), "/"),

		RedisAddr:    os.Getenv("REDIS_ADDR"),
		CohereAPIKey: os.Getenv("COHERE_API_KEY"),

		KafkaBrokers: splitList(getEnvOrDefault("KAFKA_BROKERS", "localhost:9093")),
		KafkaTopic:   getEnvOrDefault("KAFKA_TOPIC", "render-requests"),
		KafkaGroupID: getEnvOrDefault("KAFKA_GROUP_ID", "newsreel-renderer"),

		YouTubeClientID:     os.Getenv("YOUTUBE_CLIENT_ID"),
		YouTubeClientSecret: os.Getenv("YOUTUBE_CLIENT_SECRET"),
		YouTubeRefreshToken: os.Getenv("YOUTUBE_REFRESH_TOKEN"),
		IGUserID:            os.Getenv("IG_USER_ID"),
		IGAccessToken:       os.Getenv("IG_ACCESS_TOKEN"),
		FBPageID:            os.Getenv("FB_PAGE_ID"),
		FBAccessToken:       os.Getenv("FB_ACCESS_TOKEN"),

		Port:                  getEnvOrDefault("PORT", "8080"),
		ScheduleIntervalHours: getEnvIntOrDefault("SCHEDULE_INTERVAL_HOURS", 6),
		NewsFeeds:             splitList(getEnvOrDefault("NEWS_FEEDS", "cna,st")),
	}
}

// FontBoldPath returns the full path of the bold display font.
func (c Config) FontBoldPath() string {
	return filepath.Join(c.FontsDir, c.FontBold)
}

// FontRegularPath returns the full path of the regular text font.
func (c Config) FontRegularPath() string {
	return filepath.Join(c.FontsDir, c.FontRegular)
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
