package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/RambhuSingh1819/Al-Based-Crop-Recommendation-for-Farmers/internal/config"
	rabbitmqClient "github.com/RambhuSingh1819/Al-Based-Crop-Recommendation-for-Farmers/internal/platform/rabbitmq"
	redisClient "github.com/RambhuSingh1819/Al-Based-Crop-Recommendation-for-Farmers/internal/platform/redis"
	"github.com/RambhuSingh1819/Al-Based-Crop-Recommendation-for-Farmers/internal/vision"
)

// App holds the process-wide resources. Redis and MQConn are nil when the
// corresponding integration is disabled in config.
type App struct {
	Config     *config.Config
	Classifier *vision.LeafClassifier
	Redis      *redis.Client
	MQConn     *amqp.Connection

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	classifier := vision.NewLeafClassifier(
		cfg.Vision.ModelPath,
		cfg.Vision.LabelsPath,
		cfg.Vision.ONNXSharedLibPath,
	)

	var redisCli *redis.Client
	if cfg.Redis.Enabled {
		redisCli, err = redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
	}

	var mqConn *amqp.Connection
	if cfg.RabbitMQ.Enabled {
		mqConn, err = rabbitmqClient.New(cfg.RabbitMQ.URL)
		if err != nil {
			return nil, err
		}
	}

	return &App{
		Config:     cfg,
		Classifier: classifier,
		Redis:      redisCli,
		MQConn:     mqConn,
		StartedAt:  time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.Classifier != nil {
		a.Classifier.Close()
	}
	return closeErr
}
