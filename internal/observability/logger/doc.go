// Package logger provee el logger Zap del proceso con scoping por contexto.
//
// Inicialización (una vez en main.go):
//
//	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, ServiceName: "bestseller"})
//	defer logger.Sync()
//
// En controllers/services:
//
//	log := logger.From(ctx).With(logger.Layer("service"), logger.Op("MarkSold"))
//	log.Info("product sold", logger.ProductID(id))
//
// El middleware WithLogging inyecta en cada request un logger con request_id, method y path.
package logger
