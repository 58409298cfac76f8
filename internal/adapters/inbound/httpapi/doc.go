// Package httpapi is the inbound HTTP adapter: chi routing, bearer
// authentication, declarative request validation, and the uniform
// response envelope. It translates HTTP into calls on the application
// services and domain errors back into status codes; no business rules
// live here.
package httpapi
