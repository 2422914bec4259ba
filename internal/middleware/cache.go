package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/flavor-house/internal/config"
)

// captureWriter forwards the response while keeping a bounded copy of it.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	limit  int
	over   bool
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if !cw.over {
		if cw.limit > 0 && cw.buf.Len()+len(b) > cw.limit {
			cw.over = true
			cw.buf.Reset()
		} else {
			cw.buf.Write(b)
		}
	}
	return cw.ResponseWriter.Write(b)
}

// MenuCache caches successful public menu responses in Redis. Every key
// embeds a generation number; Invalidate bumps it so all earlier entries
// stop matching at once and simply expire.
type MenuCache struct {
	cfg config.CacheConfig
	rdb *redis.Client
	log *slog.Logger
}

// NewMenuCache returns a cache that passes every request through when
// caching is disabled or rdb is nil.
func NewMenuCache(cfg config.CacheConfig, rdb *redis.Client, log *slog.Logger) *MenuCache {
	if log == nil {
		log = slog.Default()
	}
	return &MenuCache{cfg: cfg, rdb: rdb, log: log}
}

func (m *MenuCache) active() bool { return m.cfg.Enabled && m.rdb != nil }

func (m *MenuCache) genKey() string { return m.cfg.Prefix + ":gen" }

// Invalidate drops every cached menu response.
func (m *MenuCache) Invalidate(ctx context.Context) {
	if !m.active() {
		return
	}
	if err := m.rdb.Incr(ctx, m.genKey()).Err(); err != nil {
		m.log.Warn("menu cache invalidation failed", "err", err)
	}
}

func (m *MenuCache) key(ctx context.Context, c echo.Context) (string, error) {
	gen, err := m.rdb.Get(ctx, m.genKey()).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	sum := sha1.Sum([]byte(c.Path() + "?" + c.Request().URL.Query().Encode()))
	return fmt.Sprintf("%s:%d:%x", m.cfg.Prefix, gen, sum[:]), nil
}

// Middleware serves hits from Redis and stores 200 responses on a miss.
func (m *MenuCache) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !m.active() || !m.cfg.Methods[c.Request().Method] {
				return next(c)
			}
			ctx := c.Request().Context()
			key, err := m.key(ctx, c)
			if err != nil {
				return next(c)
			}

			if bs, err := m.rdb.Get(ctx, key).Bytes(); err == nil {
				if status, hdr, body, ok := decodePayload(bs); ok {
					for k, vals := range hdr {
						if strings.EqualFold(k, echo.HeaderContentLength) {
							continue
						}
						for _, v := range vals {
							c.Response().Header().Add(k, v)
						}
					}
					c.Response().Header().Set("X-Cache", "HIT")
					return c.Blob(status, hdr.Get(echo.HeaderContentType), body)
				}
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: m.cfg.MaxBodyBytes}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")
			if err := next(c); err != nil {
				return err
			}
			if cw.status != http.StatusOK || cw.over {
				return nil
			}
			hdr := c.Response().Header().Clone()
			hdr.Del("X-Cache")
			payload, err := encodePayload(cw.status, hdr, cw.buf.Bytes())
			if err == nil {
				err = m.rdb.Set(context.WithoutCancel(ctx), key, payload, m.cfg.TTL).Err()
			}
			if err != nil {
				m.log.Warn("menu cache store failed", "key", key, "err", err)
			}
			return nil
		}
	}
}

// encodePayload packs: [4 bytes status][4 bytes headerLen][headerJSON][body]
func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
	hdrJSON, err := json.Marshal(header)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 8, 8+len(hdrJSON)+len(body))
	binary.BigEndian.PutUint32(out[0:4], uint32(status))
	binary.BigEndian.PutUint32(out[4:8], uint32(len(hdrJSON)))
	out = append(out, hdrJSON...)
	return append(out, body...), nil
}

func decodePayload(bs []byte) (status int, header http.Header, body []byte, ok bool) {
	if len(bs) < 8 {
		return 0, nil, nil, false
	}
	status = int(binary.BigEndian.Uint32(bs[0:4]))
	hlen := int(binary.BigEndian.Uint32(bs[4:8]))
	if hlen < 0 || 8+hlen > len(bs) {
		return 0, nil, nil, false
	}
	header = http.Header{}
	if hlen > 0 {
		if err := json.Unmarshal(bs[8:8+hlen], &header); err != nil {
			return 0, nil, nil, false
		}
	}
	return status, header, bs[8+hlen:], true
}
