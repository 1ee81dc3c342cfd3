// Package cache implementa el caché Redis de las ventanas de ventas del dashboard.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/orders-api/internal/application/ports"
	"github.com/jhoicas/orders-api/pkg/config"
)

const versionKey = "sales:version"

var _ ports.SalesCache = (*SalesCache)(nil)

// SalesCache caché JSON con invalidación por versión: cada llave lleva la
// versión vigente como sufijo y Bump la incrementa, dejando huérfanas las
// llaves anteriores (expiran por TTL).
type SalesCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSalesCache construye el caché. client nil = sin caché (siempre ejecuta el loader).
func NewSalesCache(client *redis.Client, ttl time.Duration) *SalesCache {
	return &SalesCache{client: client, ttl: ttl}
}

// NewClient abre el cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache.NewClient: ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// Version devuelve la versión vigente, inicializándola en 1 si no existe.
func (c *SalesCache) Version(ctx context.Context) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, versionKey).Int64()
	switch {
	case errors.Is(err, redis.Nil):
		// SetNX: si dos instancias arrancan a la vez gana la primera.
		if err := c.client.SetNX(ctx, versionKey, 1, 0).Err(); err != nil {
			return 0, fmt.Errorf("cache.Version: %w", err)
		}
		return c.client.Get(ctx, versionKey).Int64()
	case err != nil:
		return 0, fmt.Errorf("cache.Version: %w", err)
	case ver <= 0:
		if err := c.client.Set(ctx, versionKey, 1, 0).Err(); err != nil {
			return 0, fmt.Errorf("cache.Version: %w", err)
		}
		return 1, nil
	}
	return ver, nil
}

// BuildKey compone la llave con la versión vigente: sales:daily:2024-01-05:v3.
func (c *SalesCache) BuildKey(ctx context.Context, parts ...string) (string, error) {
	joined := strings.Join(parts, ":")
	if c == nil || c.client == nil {
		return joined, nil
	}
	ver, err := c.Version(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:v%d", joined, ver), nil
}

// FetchJSON carga dest desde Redis o lo completa con loader y lo guarda con TTL.
// dest siempre pasa por JSON, haya hit o no, para que ambos caminos devuelvan lo mismo.
func (c *SalesCache) FetchJSON(ctx context.Context, key string, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	if loader == nil {
		return errors.New("cache: loader requerido")
	}
	if c != nil && c.client != nil {
		payload, err := c.client.Get(ctx, key).Bytes()
		if err == nil {
			return json.Unmarshal(payload, dest)
		}
		if !errors.Is(err, redis.Nil) {
			return fmt.Errorf("cache.FetchJSON: get %s: %w", key, err)
		}
	}

	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache.FetchJSON: marshal: %w", err)
	}
	if c != nil && c.client != nil {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			return fmt.Errorf("cache.FetchJSON: set %s: %w", key, err)
		}
	}
	return json.Unmarshal(raw, dest)
}

// Bump invalida todo el caché incrementando la versión y la publica en channel
// para que las demás instancias se enteren.
func (c *SalesCache) Bump(ctx context.Context, channel string) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	ver, err := c.client.Incr(ctx, versionKey).Result()
	if err != nil {
		return 0, fmt.Errorf("cache.Bump: %w", err)
	}
	if channel != "" {
		if err := c.client.Publish(ctx, channel, strconv.FormatInt(ver, 10)).Err(); err != nil {
			return ver, fmt.Errorf("cache.Bump: publish: %w", err)
		}
	}
	return ver, nil
}

// ListenForInvalidation se suscribe a channel hasta que ctx se cancele.
// Un payload numérico fija esa versión (si es mayor a la actual); cualquier
// otro mensaje, por ejemplo el aviso de pedido modificado, incrementa la versión.
// onError recibe las fallas del listener; puede ser nil.
func (c *SalesCache) ListenForInvalidation(ctx context.Context, channel string, onError func(error)) error {
	if c == nil || c.client == nil {
		return nil
	}
	if channel == "" {
		return errors.New("cache: canal de invalidación vacío")
	}
	pubsub := c.client.Subscribe(ctx, channel)
	// Receive confirma la suscripción antes de devolver el control.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return fmt.Errorf("cache.ListenForInvalidation: %w", err)
	}
	if onError == nil {
		onError = func(error) {}
	}

	go func() {
		defer func() { _ = pubsub.Close() }()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				if err := c.applyInvalidation(ctx, msg.Payload); err != nil {
					onError(err)
				}
			}
		}
	}()
	return nil
}

func (c *SalesCache) applyInvalidation(ctx context.Context, payload string) error {
	if ver, err := strconv.ParseInt(payload, 10, 64); err == nil {
		current, err := c.Version(ctx)
		if err != nil {
			return err
		}
		if ver <= current {
			return nil
		}
		return c.client.Set(ctx, versionKey, ver, 0).Err()
	}
	return c.client.Incr(ctx, versionKey).Err()
}
