// Package token implements the auth primitives behind the ports:
// HS256-signed JWTs as session tokens and bcrypt password hashing.
package token
