package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"social-api/configs"
	"social-api/internal/migrate"
	"social-api/internal/shared/httpx"
	"social-api/pkg/di"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

const (
	writeLimit  = 30
	writeWindow = time.Minute
)

func initOTEL(ctx context.Context, cfg *configs.Config) func(context.Context) error {
	if cfg.OTELEndpoint == "" {
		return func(context.Context) error { return nil }
	}
	exp, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.OTELEndpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		log.Fatalf("otel exporter: %v", err)
	}
	res, _ := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName("social-api"),
		attribute.String("deployment.environment", os.Getenv("DEPLOY_ENV")),
	))
	tp := trace.NewTracerProvider(trace.WithBatcher(exp), trace.WithResource(res))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))
	return tp.Shutdown
}

func App(cfg *configs.Config, c *di.Container) http.Handler {
	if err := migrate.AutoMigrateAll(c.DB); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("GET /uploads/", http.FileServer(http.Dir(cfg.UploadDir)))

	public := func(pattern, name string, fn httpx.HandlerFunc) {
		mux.Handle(pattern, httpx.Metrics(pattern, otelhttp.NewHandler(httpx.Wrap(fn), name)))
	}
	protected := func(pattern, name string, fn httpx.HandlerFunc) {
		h := httpx.AuthMiddleware(c.Auth, otelhttp.NewHandler(httpx.Wrap(fn), name))
		mux.Handle(pattern, httpx.Metrics(pattern, h))
	}
	limited := func(pattern, name string, fn httpx.HandlerFunc) {
		inner := otelhttp.NewHandler(httpx.Wrap(fn), name)
		h := c.Limiter.LimitHTTP(writeLimit, writeWindow, func(r *http.Request) string {
			if uid, err := httpx.UserFromCtx(r); err == nil {
				return name + ":" + uintString(uid)
			}
			return ""
		}, inner)
		mux.Handle(pattern, httpx.Metrics(pattern, httpx.AuthMiddleware(c.Auth, h)))
	}

	public("POST /register", "auth.register", c.UserHandler.Register)
	public("POST /login", "auth.login", c.UserHandler.Login)
	protected("GET /user", "auth.me", c.UserHandler.Me)
	protected("PUT /update", "auth.update", c.UserHandler.Update)
	protected("POST /logout", "auth.logout", c.UserHandler.Logout)
	protected("DELETE /delete", "auth.delete", c.UserHandler.Delete)

	limited("POST /post-create/{user_id}", "post.create", c.PostHandler.Create)
	public("GET /posts", "post.list", c.PostHandler.List)
	protected("POST /post-user", "post.mine", c.PostHandler.ListMine)

	public("GET /posts/{post_id}/comments", "comment.list", c.CommentHandler.List)
	limited("POST /posts/{post_id}/comments", "comment.create", c.CommentHandler.Create)
	public("GET /posts/{post_id}/comments/{comment_id}", "comment.show", c.CommentHandler.Show)
	protected("PUT /posts/{post_id}/comments/{comment_id}", "comment.update", c.CommentHandler.Update)
	protected("DELETE /posts/{post_id}/comments/{comment_id}", "comment.delete", c.CommentHandler.Delete)
	limited("POST /comments/{comment_id}/replies", "comment.reply", c.CommentHandler.CreateReply)

	limited("POST /posts/{post_id}/toggle-like", "like.toggle", c.LikeHandler.Toggle)
	public("GET /posts/{post_id}/likes-count", "like.count", c.LikeHandler.Count)
	protected("GET /posts/{post_id}/is-liked", "like.isliked", c.LikeHandler.IsLiked)

	return mux
}

func main() {
	ctx := context.Background()
	cfg := configs.LoadConfig()

	shutdown := initOTEL(ctx, cfg)
	defer func() {
		sctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		_ = shutdown(sctx)
	}()

	container := di.BuildContainer(cfg)
	defer container.Producer.Close()

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           App(cfg, container),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}
	log.Printf("social-api listening on %s", cfg.AppPort)
	log.Fatal(srv.ListenAndServe())
}

func uintString(n uint) string {
	return strconv.FormatUint(uint64(n), 10)
}
