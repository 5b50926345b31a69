package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ChartQuota reparte un presupuesto de cartas analizadas por cliente y ventana.
// Un lote de N cartas consume N unidades, igual que N llamadas a analyze.
type ChartQuota interface {
	Reserve(ctx context.Context, client string, charts int) (QuotaDecision, error)
}

// QuotaDecision es el resultado de una reserva.
type QuotaDecision struct {
	Allowed   bool
	Used      int
	Remaining int
	ResetIn   time.Duration
}

// Una reserva rechazada se devuelve completa: un lote demasiado grande no quema
// el presupuesto que aún queda para cartas sueltas.
const reserveChartsScript = `
local cost = tonumber(ARGV[2])
local used = redis.call("INCRBY", KEYS[1], cost)
if used == cost then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("TTL", KEYS[1])
if used > tonumber(ARGV[3]) then
  used = redis.call("DECRBY", KEYS[1], cost)
  return {0, used, ttl}
end
return {1, used, ttl}
`

type redisChartQuota struct {
	client redisEvaler
	window time.Duration
	max    int
	prefix string
}

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// NewRedisChartQuota devuelve nil si no hay cliente; los handlers tratan nil como
// "sin límite".
func NewRedisChartQuota(client *redis.Client, window time.Duration, maxCharts int) ChartQuota {
	if client == nil {
		return nil
	}
	if window <= 0 {
		window = time.Minute
	}
	if maxCharts <= 0 {
		maxCharts = 1
	}
	return &redisChartQuota{
		client: client,
		window: window,
		max:    maxCharts,
		prefix: "bazi:quota:",
	}
}

// Reserve descuenta charts cartas del presupuesto de client. Una reserva mayor que
// el presupuesto entero se rechaza sin tocar Redis.
func (q *redisChartQuota) Reserve(ctx context.Context, client string, charts int) (QuotaDecision, error) {
	if q == nil || q.client == nil {
		return QuotaDecision{Allowed: true}, nil
	}
	key := strings.ToLower(strings.TrimSpace(client))
	if key == "" {
		return QuotaDecision{}, fmt.Errorf("quota: empty client key")
	}
	if charts <= 0 {
		charts = 1
	}
	if charts > q.max {
		return QuotaDecision{Remaining: q.max, ResetIn: q.window}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	seconds := int(q.window.Seconds())
	if seconds <= 0 {
		seconds = 60
	}
	vals, err := q.client.Eval(ctx, reserveChartsScript, []string{q.prefix + key}, seconds, charts, q.max).Int64Slice()
	if err != nil {
		return QuotaDecision{}, fmt.Errorf("quota reserve: %w", err)
	}
	if len(vals) != 3 {
		return QuotaDecision{}, fmt.Errorf("quota reserve: unexpected reply %v", vals)
	}

	used := int(vals[1])
	d := QuotaDecision{
		Allowed:   vals[0] == 1,
		Used:      used,
		Remaining: max(q.max-used, 0),
		ResetIn:   time.Duration(vals[2]) * time.Second,
	}
	if d.ResetIn < 0 {
		d.ResetIn = q.window
	}
	return d, nil
}
