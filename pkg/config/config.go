package config

import (
	"log"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
		SentryUrl string `env:"SENTRY_URL"`
	}
	Source struct {
		BaseURL           string  `env:"STORY_API_BASE_URL" env-default:"https://api.shoply.social/v1"`
		TimeoutSeconds    int     `env:"STORY_API_TIMEOUT_SECONDS" env-default:"10"`
		RequestsPerSecond float64 `env:"STORY_API_RPS" env-default:"5"`
		Burst             int     `env:"STORY_API_BURST" env-default:"10"`
	}
	Playback struct {
		TickMs               int     `env:"PLAYBACK_TICK_MS" env-default:"50"`
		ImageDurationSeconds float64 `env:"PLAYBACK_IMAGE_DURATION_SECONDS" env-default:"5"`
		VideoGraceMs         float64 `env:"PLAYBACK_VIDEO_GRACE_MS" env-default:"2500"`
		LoadTimeoutMs        float64 `env:"PLAYBACK_LOAD_TIMEOUT_MS" env-default:"8000"`
	}
	Gesture struct {
		HoldThresholdMs    float64 `env:"GESTURE_HOLD_THRESHOLD_MS" env-default:"180"`
		DragCommitFraction float64 `env:"GESTURE_DRAG_COMMIT_FRACTION" env-default:"0.5"`
		DragCommitVelocity float64 `env:"GESTURE_DRAG_COMMIT_VELOCITY" env-default:"0.65"`
	}
	Assets struct {
		FallbackDir string `env:"ASSETS_FALLBACK_DIR" env-default:"/assets/fallbacks"`
	}
	Sqlite struct {
		Path string `env:"SQLITE_PATH" env-default:"./story-viewer.db"`
	}
	Refresher struct {
		Minutes int `env:"REFRESHER_MINUTES" env-default:"5"`
	}
	Prefetch struct {
		Workers int `env:"PREFETCH_WORKERS" env-default:"4"`
		Count   int `env:"PREFETCH_COUNT" env-default:"3"`
	}
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}
