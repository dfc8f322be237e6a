package di

import (
	"context"
	"log"

	"social-api/configs"
	"social-api/internal/auth"
	"social-api/internal/comment"
	"social-api/internal/like"
	"social-api/internal/media"
	"social-api/internal/post"
	"social-api/internal/ratelimit"
	"social-api/internal/user"
	"social-api/pkg/cache"
	"social-api/pkg/db"
	"social-api/pkg/kafka"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	DB    *gorm.DB
	Redis *redis.Client
	Auth  *auth.Auth

	UserService    user.Service
	PostService    post.Service
	CommentService comment.Service
	LikeService    like.Service

	UserHandler    *user.Handler
	PostHandler    *post.Handler
	CommentHandler *comment.Handler
	LikeHandler    *like.Handler

	Limiter  *ratelimit.Limiter
	Producer *kafka.Producer
}

func BuildContainer(cfg *configs.Config) *Container {
	store := db.Open(cfg)
	rdb := cache.NewRedis(cfg)
	producer := kafka.NewProducer(cfg.KafkaBrokerURL, cfg.KafkaTopic)
	a := auth.New(cfg.JWTSecret, cfg.TokenTTL, rdb)

	var mediaStore media.Store
	if cfg.S3Endpoint != "" {
		s3, err := media.NewS3Store(media.S3Config{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			UseSSL:    cfg.S3UseSSL,
			Bucket:    cfg.S3Bucket,
		})
		if err != nil {
			log.Fatalf("s3 store: %v", err)
		}
		if err := s3.EnsureBucket(context.Background()); err != nil {
			log.Fatalf("s3 bucket: %v", err)
		}
		mediaStore = s3
	} else {
		mediaStore = media.NewLocalStore(cfg.UploadDir)
	}

	userRepo := user.NewRepository(store.DB)
	userService := user.NewService(userRepo, mediaStore, cfg.DBTimeout)

	postRepo := post.NewRepository(store.DB)
	postService := post.NewService(postRepo, userRepo, mediaStore, producer, cfg.DBTimeout)

	commentRepo := comment.NewRepository(store.DB)
	commentService := comment.NewService(commentRepo, postRepo, cfg.DBTimeout)

	likeRepo := like.NewRepository(store.DB, rdb)
	likeService := like.NewService(likeRepo, postRepo, producer, cfg.DBTimeout)

	return &Container{
		DB:    store.DB,
		Redis: rdb,
		Auth:  a,

		UserService:    userService,
		PostService:    postService,
		CommentService: commentService,
		LikeService:    likeService,

		UserHandler:    user.NewHandler(userService, a),
		PostHandler:    post.NewHandler(postService),
		CommentHandler: comment.NewHandler(commentService),
		LikeHandler:    like.NewHandler(likeService),

		Limiter:  ratelimit.New(rdb),
		Producer: producer,
	}
}
