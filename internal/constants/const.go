package constants

const (
	DefaultJWTSecret  = "supersecretkey"
	DefaultPrivateKey = "Qsd@3fd"

	TokenTTLHours = 24

	// One internal retry for transient storage conflicts before the
	// error reaches the caller.
	TxAttempts = 2
)
