// Package common contains shared constants and sentinel errors used across
// newsdesk components.
package common

// AuthHeaderName is the HTTP header carrying the bearer token on outbound
// requests.
const AuthHeaderName = "Authorization"

// CorrelationHeaderName carries the per-operation correlation id so that
// backend logs can be matched with client attempt diagnostics.
const CorrelationHeaderName = "X-Correlation-Id"
