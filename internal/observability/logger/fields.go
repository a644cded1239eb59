package logger

import (
	"time"

	"go.uber.org/zap"
)

// Field es un alias de zap.Field para no importar zap en cada caller.
type Field = zap.Field

// ─── HTTP ───

func RequestID(v string) zap.Field { return zap.String("request_id", v) }
func Method(v string) zap.Field    { return zap.String("method", v) }
func Path(v string) zap.Field      { return zap.String("path", v) }
func Status(v int) zap.Field       { return zap.Int("status", v) }
func Bytes(v int) zap.Field        { return zap.Int("bytes", v) }
func ClientIP(v string) zap.Field  { return zap.String("client_ip", v) }

// DurationMs registra la duración en milisegundos.
func DurationMs(d time.Duration) zap.Field { return zap.Int64("duration_ms", d.Milliseconds()) }

// ─── Negocio ───

// Email del caller o del usuario afectado. Es la identidad del sistema.
func Email(v string) zap.Field     { return zap.String("email", v) }
func Role(v string) zap.Field      { return zap.String("role", v) }
func ProductID(v string) zap.Field { return zap.String("product_id", v) }
func OrderID(v string) zap.Field   { return zap.String("order_id", v) }
func UserID(v string) zap.Field    { return zap.String("user_id", v) }
func Gate(v string) zap.Field      { return zap.String("gate", v) }

// ─── Sistema ───

func Component(v string) zap.Field  { return zap.String("component", v) }
func Op(v string) zap.Field         { return zap.String("op", v) }
func Layer(v string) zap.Field      { return zap.String("layer", v) }
func Collection(v string) zap.Field { return zap.String("collection", v) }
func Driver(v string) zap.Field     { return zap.String("driver", v) }
func Err(err error) zap.Field       { return zap.Error(err) }

// ─── Genéricos ───

func Count(v int) zap.Field               { return zap.Int("count", v) }
func Int64(key string, v int64) zap.Field { return zap.Int64(key, v) }
func String(key, v string) zap.Field      { return zap.String(key, v) }
func Bool(key string, v bool) zap.Field   { return zap.Bool(key, v) }
func Any(key string, v any) zap.Field     { return zap.Any(key, v) }
