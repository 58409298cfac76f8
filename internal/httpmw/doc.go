// Package httpmw holds transport middleware shared by any inbound HTTP
// surface: request correlation ids and structured request logging.
package httpmw
