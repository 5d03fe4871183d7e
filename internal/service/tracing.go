package service

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("quiz-generation-be/internal/service")
