package resputil

type ErrorCode int

const (
	OK ErrorCode = 0

	// General
	InvalidRequest ErrorCode = 40001

	// Referenced entity absent
	NotFound ErrorCode = 40401

	// Uniqueness violation (duplicate award per project, duplicate username)
	Conflict ErrorCode = 40901

	// Token
	TokenExpired ErrorCode = 40101
	TokenInvalid ErrorCode = 40102

	// Login
	InvalidCredentials ErrorCode = 40106

	// Valid credential, insufficient privilege or disabled account
	UserNotAllowed ErrorCode = 40301

	// Object storage call failed
	Upstream ErrorCode = 50201

	// Indicates laziness of the developer
	// Frontend will directly print the message without any translation
	NotSpecified ErrorCode = 99999
)
