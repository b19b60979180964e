// Package uploadproto описывает HTTP-протокол сервиса загрузок.
package uploadproto

// Параметры REST-протокола загрузки.
const (
	HeaderAuthorization = "Authorization"
	PathRoot            = "/"
	PathHealth          = "/health"
	PathMetrics         = "/metrics"
	NameSeparator       = "\n"
)
