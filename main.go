// Command newsreel renders short-form vertical news videos. One binary
// carries every transport: the HTTP render API (default), the Kafka
// request consumer, one-shot story/bulletin pipelines, and the
// interval scheduler.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"newsreel/api"
	"newsreel/assets"
	"newsreel/background"
	"newsreel/compose"
	"newsreel/config"
	"newsreel/content"
	"newsreel/engine"
	"newsreel/layers"
	"newsreel/ledger"
	"newsreel/music"
	"newsreel/pipeline"
	"newsreel/publish"
	"newsreel/queue"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	kafkaMode := flag.Bool("kafka", false, "consume render requests from Kafka")
	storyMode := flag.Bool("story", false, "run one story pipeline and exit")
	bulletinMode := flag.Bool("bulletin", false, "run one bulletin pipeline and exit (with -schedule: schedule bulletins)")
	scheduleMode := flag.Bool("schedule", false, "run the full pipeline on an interval")
	flag.Parse()

	cfg := config.FromEnv()
	eng, s3 := buildEngine(&cfg)

	switch {
	case *kafkaMode:
		runKafka(cfg, eng)
	case *scheduleMode:
		runSchedule(cfg, eng, s3, *bulletinMode)
	case *storyMode:
		runOnce(cfg, eng, s3, false)
	case *bulletinMode:
		runOnce(cfg, eng, s3, true)
	default:
		runAPI(cfg, eng)
	}
}

// buildEngine assembles the render engine with every configured asset
// tier. Unconfigured remote tiers are skipped with a log line;
// rendering still works from local assets and procedural fallbacks.
func buildEngine(cfg *config.Config) (*engine.Engine, *assets.S3Store) {
	ctx := context.Background()

	var bgRemotes []background.RemoteTier
	var musicRemotes []music.RemoteTier

	if cfg.GoogleCredentialsFile != "" {
		drive, err := assets.NewDrive(ctx, cfg.GoogleCredentialsFile, cfg.TmpDir)
		if err != nil {
			log.Printf("⚠️ Google Drive tier disabled: %v", err)
		} else {
			bgRemotes = append(bgRemotes, background.RemoteTier{Fetcher: drive, Folder: cfg.DriveBackgroundsFolderID})
			musicRemotes = append(musicRemotes, music.RemoteTier{Fetcher: drive, Folder: cfg.DriveMusicFolderID})
			log.Println("✅ Google Drive asset tier enabled")
		}
	} else {
		log.Println("⏭️ Google Drive not configured, skipping tier")
	}

	var s3 *assets.S3Store
	if cfg.S3Bucket != "" {
		store, err := assets.NewS3(ctx, *cfg, cfg.TmpDir)
		if err != nil {
			log.Printf("⚠️ S3 tier disabled: %v", err)
		} else {
			s3 = store
			bgRemotes = append(bgRemotes, background.RemoteTier{Fetcher: s3, Folder: path.Join(cfg.S3AssetPrefix, "backgrounds")})
			musicRemotes = append(musicRemotes, music.RemoteTier{Fetcher: s3, Folder: path.Join(cfg.S3AssetPrefix, "music")})
			log.Println("✅ S3 asset tier enabled")
		}
	} else {
		log.Println("⏭️ S3 not configured, skipping tier")
	}

	bg := background.NewNormalizer(&background.Finder{
		Remotes:        bgRemotes,
		BackgroundsDir: cfg.BackgroundsDir,
		ImagesDir:      cfg.ImagesDir,
	}, cfg.TmpDir, nil)

	mus := music.NewNormalizer(&music.Source{
		Remotes: musicRemotes,
		Dir:     cfg.MusicDir,
	}, cfg.TmpDir, nil)

	fs := assets.LoadFonts(cfg)
	fonts := engine.Fonts{
		Hook:    fs.Hook,
		Caption: fs.Caption,
		Thumb:   fs.Thumb,
		Board: layers.BoardFonts{
			Header: fs.BoardHeader,
			Title:  fs.BoardTitle,
			Number: fs.BoardNumber,
		},
	}

	return engine.New(bg, mus, compose.NewCompositor(), fonts, cfg), s3
}

// buildRunner wires the story/bulletin pipeline around the engine:
// feeds, ledger, hook rewriting, artifact upload and publishers.
func buildRunner(cfg config.Config, eng *engine.Engine, s3 *assets.S3Store) *pipeline.Runner {
	r := &pipeline.Runner{
		Render: eng,
		Ledger: ledger.Open(cfg.RedisAddr),
		Feeds:  cfg.NewsFeeds,
	}

	if cfg.CohereAPIKey != "" {
		r.Rewriter = content.NewCohereRewriter(cfg.CohereAPIKey)
	} else {
		log.Println("⏭️ COHERE_API_KEY not set, keeping original headlines")
	}

	// A typed nil *S3Store must not become a non-nil Uploader.
	if s3 != nil {
		r.Uploader = s3
	}

	r.Publishers = buildPublishers(cfg)
	return r
}

// buildPublishers connects every platform whose credentials are
// present. A missing credential skips the platform, never the process.
func buildPublishers(cfg config.Config) []publish.Publisher {
	var pubs []publish.Publisher

	if yt, err := publish.NewYouTube(context.Background(), cfg.YouTubeClientID, cfg.YouTubeClientSecret, cfg.YouTubeRefreshToken); err != nil {
		log.Printf("⏭️ YouTube publishing disabled: %v", err)
	} else {
		pubs = append(pubs, yt)
		log.Println("✅ YouTube publisher ready")
	}

	if ig, err := publish.NewInstagram(cfg.IGUserID, cfg.IGAccessToken); err != nil {
		log.Printf("⏭️ Instagram publishing disabled: %v", err)
	} else {
		pubs = append(pubs, ig)
		log.Println("✅ Instagram publisher ready")
	}

	if fb, err := publish.NewFacebook(cfg.FBPageID, cfg.FBAccessToken); err != nil {
		log.Printf("⏭️ Facebook publishing disabled: %v", err)
	} else {
		pubs = append(pubs, fb)
		log.Println("✅ Facebook publisher ready")
	}

	return pubs
}

func runAPI(cfg config.Config, eng *engine.Engine) {
	log.Println("🌐 Running in API mode")

	srv := api.NewServer(eng)
	eng.OnState = srv.JobTransition

	addr := ":" + cfg.Port
	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET  /health")
	log.Println("  POST /api/render")
	log.Println("  POST /api/render/bulletin")
	log.Println("  GET  /api/status")

	if err := http.ListenAndServe(addr, srv.Router()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runKafka(cfg config.Config, eng *engine.Engine) {
	log.Println("📨 Running in Kafka consumer mode")
	log.Printf("   Brokers: %v", cfg.KafkaBrokers)
	log.Printf("   Topic: %s", cfg.KafkaTopic)
	log.Printf("   Group: %s", cfg.KafkaGroupID)

	err := queue.StartWithGracefulShutdown(queue.ConsumerConfig{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaTopic,
		GroupID: cfg.KafkaGroupID,
		Handler: queue.RenderHandler(eng),
	})
	if err != nil {
		log.Fatalf("❌ Kafka consumer failed: %v", err)
	}
}

func runOnce(cfg config.Config, eng *engine.Engine, s3 *assets.S3Store, bulletin bool) {
	runner := buildRunner(cfg, eng, s3)
	ctx := context.Background()

	if bulletin {
		log.Println("🎬 Running one bulletin pipeline")
		res, err := runner.RunBulletin(ctx)
		if err != nil {
			log.Fatalf("❌ Bulletin pipeline failed: %v", err)
		}
		log.Printf("🎉 Bulletin done: %s", res.VideoPath)
		return
	}

	log.Println("🎬 Running one story pipeline")
	res, err := runner.RunStory(ctx)
	if err != nil {
		log.Fatalf("❌ Story pipeline failed: %v", err)
	}
	log.Printf("🎉 Story done: %s", res.VideoPath)
}

func runSchedule(cfg config.Config, eng *engine.Engine, s3 *assets.S3Store, bulletin bool) {
	runner := buildRunner(cfg, eng, s3)

	kind := "story"
	job := func(ctx context.Context) error {
		_, err := runner.RunStory(ctx)
		return err
	}
	if bulletin {
		kind = "bulletin"
		job = func(ctx context.Context) error {
			_, err := runner.RunBulletin(ctx)
			return err
		}
	}

	log.Printf("⏰ Running in schedule mode: %s every %dh", kind, cfg.ScheduleIntervalHours)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigterm := make(chan os.Signal, 1)
	signal.Notify(sigterm, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigterm
		log.Println("Received shutdown signal")
		cancel()
	}()

	sched := pipeline.Scheduler{
		Every: time.Duration(cfg.ScheduleIntervalHours) * time.Hour,
		Job:   job,
	}
	if err := sched.Run(ctx); err != nil {
		log.Fatalf("❌ Scheduler failed: %v", err)
	}
}
