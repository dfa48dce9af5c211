package main

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/iqurastudy/quizapi/internal/logger"
)

const (
	defaultListenAddr   = "localhost:8000"
	defaultLoggingLevel = logger.LevelInfo
	defaultEnvironment  = logger.EnvProduction
	defaultIssuer       = "iqura-study"
	defaultAudience     = "iqura-study"

	defaultAccessTokenMinutes = 15
	defaultRefreshTokenDays   = 7
)

type Config struct {
	// Default logging level
	LogLevel string

	// Address on which the quizapi service will be run
	ListenAddr string

	// Database to connect to
	DatabaseDSN string

	// Secret key to sign access tokens
	// Required, there is no default on purpose
	SecretKey string

	// Issuer and audience embedded into every signed token
	JWTIssuer   string
	JWTAudience string

	// Token lifetimes
	AccessTokenMinutes int
	RefreshTokenDays   int

	// Environment
	Environment string
}

func NewConfig() *Config {
	return &Config{
		LogLevel:           defaultLoggingLevel,
		ListenAddr:         defaultListenAddr,
		Environment:        defaultEnvironment,
		JWTIssuer:          defaultIssuer,
		JWTAudience:        defaultAudience,
		AccessTokenMinutes: defaultAccessTokenMinutes,
		RefreshTokenDays:   defaultRefreshTokenDays,
	}
}

// Load variables from '.env' file (should be located at working directory)
func (c *Config) LoadDotEnv(getwd func() (string, error)) error {
	wd, err := getwd()
	if err != nil {
		return err
	}

	envMap, err := godotenv.Read(filepath.Join(wd, ".env"))

	switch {
	case err == nil:
		c.LoadEnv(func(key string) string {
			return envMap[key]
		})
		return nil
	case errors.Is(err, os.ErrNotExist):
		return nil
	default:
		return err
	}
}

func (c *Config) LoadEnv(getenv func(string) string) {
	// Set option to value if it not empty
	setString := func(o *string) func(value string) {
		return func(value string) {
			if value != "" {
				*o = value
			}
		}
	}
	setInt := func(o *int) func(value string) {
		return func(value string) {
			if parsed, err := strconv.Atoi(value); err == nil {
				*o = parsed
			}
		}
	}

	envMap := map[string]func(string){
		"RUN_ADDRESS":          setString(&c.ListenAddr),
		"DATABASE_URI":         setString(&c.DatabaseDSN),
		"SECRET_KEY":           setString(&c.SecretKey),
		"LOG_LEVEL":            setString(&c.LogLevel),
		"ENVIRONMENT":          setString(&c.Environment),
		"JWT_ISSUER":           setString(&c.JWTIssuer),
		"JWT_AUDIENCE":         setString(&c.JWTAudience),
		"ACCESS_TOKEN_MINUTES": setInt(&c.AccessTokenMinutes),
		"REFRESH_TOKEN_DAYS":   setInt(&c.RefreshTokenDays),
	}

	for key, parseFn := range envMap {
		parseFn(getenv(key))
	}
}

func (c *Config) ParseFlags(args []string) error {
	fs := pflag.NewFlagSet("quizapi", pflag.ContinueOnError)

	fs.StringVarP(&c.ListenAddr, "address", "a", c.ListenAddr, "Server listen address")
	fs.StringVarP(&c.DatabaseDSN, "database", "d", c.DatabaseDSN, "Database connection string")
	fs.StringVarP(&c.SecretKey, "secret-key", "s", c.SecretKey, "Secret key")
	fs.StringVarP(&c.LogLevel, "log-level", "l", c.LogLevel, "Logging level (debug, info, warn, error)")
	fs.StringVarP(&c.Environment, "environment", "e", c.Environment, "Environment (dev, prod)")
	fs.StringVar(&c.JWTIssuer, "jwt-issuer", c.JWTIssuer, "Issuer claim for signed tokens")
	fs.StringVar(&c.JWTAudience, "jwt-audience", c.JWTAudience, "Audience claim for signed tokens")
	fs.IntVar(&c.AccessTokenMinutes, "access-minutes", c.AccessTokenMinutes, "Access token validity in minutes")
	fs.IntVar(&c.RefreshTokenDays, "refresh-days", c.RefreshTokenDays, "Refresh token validity in days")

	return fs.Parse(args)
}
