// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package observability provides structured logging and Prometheus metrics
// for ranking runs.
//
// Loggers are zerolog instances configured from types.LoggingConfig. Metrics
// register on a caller-supplied prometheus.Registerer so tests and embedded
// servers can keep separate registries. A nil *Metrics is valid and records
// nothing.
package observability
