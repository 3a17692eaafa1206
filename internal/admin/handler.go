// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"runtime"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/labsamples/internal/core"
	"github.com/carterperez-dev/labsamples/internal/middleware"
	"github.com/carterperez-dev/labsamples/internal/sample"
	"github.com/carterperez-dev/labsamples/internal/user"
)

var (
	adminOnly = middleware.Roles(user.RoleAdmin)
	anyRole   = middleware.Roles(user.RoleAdmin, user.RoleDataEntry)
)

type Handler struct {
	service    *Service
	dbStats    func() sql.DBStats
	redisStats func() *redis.PoolStats
	redisPing  func(ctx context.Context) error
	dbPing     func(ctx context.Context) error
}

type HandlerConfig struct {
	Service    *Service
	DBStats    func() sql.DBStats
	RedisStats func() *redis.PoolStats
	RedisPing  func(ctx context.Context) error
	DBPing     func(ctx context.Context) error
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		service:    cfg.Service,
		dbStats:    cfg.DBStats,
		redisStats: cfg.RedisStats,
		redisPing:  cfg.RedisPing,
		dbPing:     cfg.DBPing,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/entries", h.ListEntries)
		r.Get("/all-entries", h.ListAllEntries)
		r.Delete("/entries/{entryID}", h.DeleteEntry)

		r.Get("/data-entry-users", h.ListDataEntryUsers)
		r.Delete("/data-entry-users/{userID}", h.DeleteDataEntryUser)

		r.Get("/stats", h.GetSystemStats)
	})
}

func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	if !middleware.Authorize(w, r, adminOnly) {
		return
	}
	h.listEntries(w, r)
}

// ListAllEntries is the listing available to data-entry operators as well.
func (h *Handler) ListAllEntries(w http.ResponseWriter, r *http.Request) {
	if !middleware.Authorize(w, r, anyRole) {
		return
	}
	h.listEntries(w, r)
}

func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request) {
	samples, err := h.service.ListSamples(r.Context())
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	core.List(w, sample.ToListedResponseList(samples))
}

func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	if !middleware.Authorize(w, r, adminOnly) {
		return
	}

	if err := h.service.DeleteSample(r.Context(), chi.URLParam(r, "entryID")); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "entry")
			return
		}
		core.InternalServerError(w, r, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) ListDataEntryUsers(w http.ResponseWriter, r *http.Request) {
	if !middleware.Authorize(w, r, adminOnly) {
		return
	}

	users, err := h.service.ListDataEntryUsers(r.Context())
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	core.List(w, user.ToUserResponseList(users))
}

func (h *Handler) DeleteDataEntryUser(w http.ResponseWriter, r *http.Request) {
	if !middleware.Authorize(w, r, adminOnly) {
		return
	}

	removed, err := h.service.DeleteDataEntryUser(
		r.Context(),
		chi.URLParam(r, "userID"),
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "data entry user")
			return
		}
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, DeleteUserResponse{SamplesDeleted: removed})
}

func (h *Handler) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	if !middleware.Authorize(w, r, adminOnly) {
		return
	}

	ctx := r.Context()

	samples, err := h.service.SampleStats(ctx)
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	dbHealthy := h.dbPing == nil || h.dbPing(ctx) == nil
	redisHealthy := h.redisPing == nil || h.redisPing(ctx) == nil

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	core.OK(w, SystemStatsResponse{
		Samples: samples,
		Database: DatabaseStatus{
			Healthy: dbHealthy,
			Stats:   h.getDBStats(),
		},
		Redis: RedisStatus{
			Healthy: redisHealthy,
			Stats:   h.getRedisStats(),
		},
		Runtime: RuntimeStats{
			GoVersion:    runtime.Version(),
			NumGoroutine: runtime.NumGoroutine(),
			MemAlloc:     memStats.Alloc,
			NumGC:        memStats.NumGC,
		},
	})
}

func (h *Handler) getDBStats() *DBPoolStats {
	if h.dbStats == nil {
		return nil
	}

	stats := h.dbStats()
	return &DBPoolStats{
		MaxOpenConnections: stats.MaxOpenConnections,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration.String(),
	}
}

func (h *Handler) getRedisStats() *RedisPoolStats {
	if h.redisStats == nil {
		return nil
	}

	stats := h.redisStats()
	return &RedisPoolStats{
		Hits:       stats.Hits,
		Misses:     stats.Misses,
		Timeouts:   stats.Timeouts,
		TotalConns: stats.TotalConns,
		IdleConns:  stats.IdleConns,
	}
}

type DeleteUserResponse struct {
	SamplesDeleted int64 `json:"samples_deleted"`
}

type SystemStatsResponse struct {
	Samples  *sample.StatsResponse `json:"samples"`
	Database DatabaseStatus        `json:"database"`
	Redis    RedisStatus           `json:"redis"`
	Runtime  RuntimeStats          `json:"runtime"`
}

type DatabaseStatus struct {
	Healthy bool         `json:"healthy"`
	Stats   *DBPoolStats `json:"stats,omitempty"`
}

type RedisStatus struct {
	Healthy bool            `json:"healthy"`
	Stats   *RedisPoolStats `json:"stats,omitempty"`
}

type DBPoolStats struct {
	MaxOpenConnections int    `json:"max_open_connections"`
	OpenConnections    int    `json:"open_connections"`
	InUse              int    `json:"in_use"`
	Idle               int    `json:"idle"`
	WaitCount          int64  `json:"wait_count"`
	WaitDuration       string `json:"wait_duration"`
}

type RedisPoolStats struct {
	Hits       uint32 `json:"hits"`
	Misses     uint32 `json:"misses"`
	Timeouts   uint32 `json:"timeouts"`
	TotalConns uint32 `json:"total_conns"`
	IdleConns  uint32 `json:"idle_conns"`
}

type RuntimeStats struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	MemAlloc     uint64 `json:"mem_alloc_bytes"`
	NumGC        uint32 `json:"num_gc"`
}
