package storage

import (
	"context"
	"errors"
	"os"
	"time"

	"arenasync/internal/core"
	"arenasync/internal/util"

	"github.com/redis/go-redis/v9"
)

const redisPingTimeout = 5 * time.Second

// FileStorage implements run history persistence using a JSON file
type FileStorage struct {
	filePath string
}

func NewFileStorage(filePath string) *FileStorage {
	return &FileStorage{filePath: filePath}
}

func (fs *FileStorage) SaveHistory(history *core.RunHistory) error {
	data, err := util.MarshalJSONIndent(history)
	if err != nil {
		return err
	}
	return os.WriteFile(fs.filePath, data, core.FilePermissionReadWrite)
}

func (fs *FileStorage) LoadHistory() (*core.RunHistory, error) {
	data, err := os.ReadFile(fs.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &core.RunHistory{Runs: []core.RunRecord{}}, nil
		}
		return nil, err
	}

	var history core.RunHistory
	if err := util.UnmarshalJSON(data, &history); err != nil {
		return nil, err
	}

	if history.Runs == nil {
		history.Runs = []core.RunRecord{}
	}

	return &history, nil
}

func (fs *FileStorage) Close() error {
	return nil
}

// RedisStorage implements run history persistence using Redis
type RedisStorage struct {
	client *redis.Client
	ctx    context.Context
	key    string
}

// RedisStorageConfig Redis storage config
type RedisStorageConfig struct {
	URL string
	Key string
}

func NewRedisStorage(config RedisStorageConfig) (*RedisStorage, error) {
	opts, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	ctx := context.Background()

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if _, err := client.Ping(pingCtx).Result(); err != nil {
		_ = client.Close()
		return nil, err
	}

	key := config.Key
	if key == "" {
		key = core.HistoryRedisKey
	}

	return &RedisStorage{client: client, ctx: ctx, key: key}, nil
}

func (rs *RedisStorage) SaveHistory(history *core.RunHistory) error {
	data, err := util.MarshalJSON(history)
	if err != nil {
		return err
	}
	return rs.client.Set(rs.ctx, rs.key, data, 0).Err()
}

func (rs *RedisStorage) LoadHistory() (*core.RunHistory, error) {
	val, err := rs.client.Get(rs.ctx, rs.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &core.RunHistory{Runs: []core.RunRecord{}}, nil
		}
		return nil, err
	}

	var history core.RunHistory
	if err := util.UnmarshalJSON([]byte(val), &history); err != nil {
		return nil, err
	}

	if history.Runs == nil {
		history.Runs = []core.RunRecord{}
	}

	return &history, nil
}

func (rs *RedisStorage) Close() error {
	return rs.client.Close()
}

// InitStorage picks Redis when redisURL is set and reachable, the history file otherwise.
// Returns nil when neither is configured: run history is opt-in.
func InitStorage(redisURL, historyPath string, logger core.Logger) core.StorageInterface {
	if redisURL != "" {
		redisStorage, err := NewRedisStorage(RedisStorageConfig{
			URL: redisURL,
			Key: core.HistoryRedisKey,
		})
		if err == nil {
			logger.Info("Using Redis storage for run history")
			return redisStorage
		}
		logger.Warn("Failed to initialize Redis storage: %v, falling back to file storage", err)
	}

	if historyPath == "" {
		logger.Debug("Run history disabled")
		return nil
	}
	logger.Debug("Using file storage for run history: %s", historyPath)
	return NewFileStorage(historyPath)
}
