package common

// AccessTokenHeaderName is the gRPC metadata key carrying the access token.
const AccessTokenHeaderName = "access_token"

// RequestIDHeaderName is the gRPC metadata key carrying a caller supplied request id.
const RequestIDHeaderName = "x-request-id"

// TimeLayout is the second-resolution layout used for history timestamps.
const TimeLayout = "2006-01-02 15:04:05"
