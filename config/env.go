// Package config reads library configuration from the environment, loading
// a local .env file when present.
package config

import (
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Crosslane/intent-lib/common/types"
	"github.com/joho/godotenv"
)

const (
	// DefaultRelayTimeout defines the default relay wait budget in seconds.
	DefaultRelayTimeout = 600

	// DefaultRelayPollInterval defines the default relay poll interval in seconds.
	DefaultRelayPollInterval = 3
)

// Load reads a .env file from the working directory when one exists.
// Environment variables already set take precedence.
func Load() {
	_ = godotenv.Load()
}

// GetEnvRelayEndpoint returns the relay backend endpoint from environment
// variables.
func GetEnvRelayEndpoint() (string, error) {
	endpoint := os.Getenv("RELAY_ENDPOINT")
	if endpoint == "" {
		return "", fmt.Errorf("RELAY_ENDPOINT is required")
	}
	return endpoint, nil
}

// GetEnvSolverEndpoint returns the solver backend endpoint from environment
// variables; empty disables solver notifications.
func GetEnvSolverEndpoint() string {
	return os.Getenv("SOLVER_ENDPOINT")
}

// GetEnvDatabaseURL returns the Postgres connection string from environment
// variables.
func GetEnvDatabaseURL() (string, error) {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		return "", fmt.Errorf("DATABASE_URL is required")
	}
	return connStr, nil
}

// GetEnvRelayTimeout returns the relay wait budget from environment
// variables.
func GetEnvRelayTimeout() (time.Duration, error) {
	raw := os.Getenv("RELAY_TIMEOUT")
	if raw == "" {
		return time.Duration(DefaultRelayTimeout) * time.Second, nil
	}

	seconds, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid RELAY_TIMEOUT value: %s, must be an integer", raw)
	}
	if seconds <= 0 {
		return 0, fmt.Errorf("RELAY_TIMEOUT must be greater than 0")
	}
	return time.Duration(seconds) * time.Second, nil
}

// GetEnvRelayPollInterval returns the relay poll interval from environment
// variables.
func GetEnvRelayPollInterval() (time.Duration, error) {
	raw := os.Getenv("RELAY_POLL_INTERVAL")
	if raw == "" {
		return time.Duration(DefaultRelayPollInterval) * time.Second, nil
	}

	seconds, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid RELAY_POLL_INTERVAL value: %s, must be an integer", raw)
	}
	if seconds <= 0 {
		return 0, fmt.Errorf("RELAY_POLL_INTERVAL must be greater than 0")
	}
	return time.Duration(seconds) * time.Second, nil
}

// GetEnvPrivateKey returns the signing key for the named chain from
// environment variables, e.g. PRIVATE_KEY_SONIC. Empty means the provider
// runs read-only.
func GetEnvPrivateKey(chainName string) string {
	key := "PRIVATE_KEY_" + strings.ToUpper(strings.ReplaceAll(chainName, "-", "_"))
	return os.Getenv(key)
}

// GetEnvPartnerFee returns the partner fee configuration from environment
// variables. PARTNER_FEE_BPS selects a percentage fee, PARTNER_FEE_AMOUNT a
// fixed fee; setting both is an error, setting neither disables fees.
func GetEnvPartnerFee() (types.PartnerFee, error) {
	address := os.Getenv("PARTNER_FEE_ADDRESS")
	bpsRaw := os.Getenv("PARTNER_FEE_BPS")
	amountRaw := os.Getenv("PARTNER_FEE_AMOUNT")

	if bpsRaw == "" && amountRaw == "" {
		return nil, nil
	}
	if address == "" {
		return nil, fmt.Errorf("PARTNER_FEE_ADDRESS is required when a fee is configured")
	}
	if bpsRaw != "" && amountRaw != "" {
		return nil, fmt.Errorf("PARTNER_FEE_BPS and PARTNER_FEE_AMOUNT are mutually exclusive")
	}

	if bpsRaw != "" {
		bps, err := strconv.ParseUint(bpsRaw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid PARTNER_FEE_BPS value: %s, must be an integer", bpsRaw)
		}
		return types.PartnerFeePercentage{Address: address, Percentage: bps}, nil
	}

	amount, ok := new(big.Int).SetString(amountRaw, 10)
	if !ok || amount.Sign() < 0 {
		return nil, fmt.Errorf("invalid PARTNER_FEE_AMOUNT value: %s, must be a non-negative integer", amountRaw)
	}
	return types.PartnerFeeFixed{Address: address, Amount: amount}, nil
}
