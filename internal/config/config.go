package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"landbank-backend/internal/domain/workflow"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env     string
	AppPort string

	Log LogConfig

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	DBLogLevel     string
	DBMaxOpenConns int

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	JWTSecret string

	Workflow WorkflowConfig
}

type LogConfig struct {
	Level  string
	Format string
}

// WorkflowConfig holds the policy knobs of the approval engine.
type WorkflowConfig struct {
	AllowResubmission bool
	AwardRoles        []workflow.Role
}

func (w WorkflowConfig) Policy() workflow.Policy {
	return workflow.Policy{AllowResubmission: w.AllowResubmission, AwardRoles: w.AwardRoles}
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	roles, err := parseRoles(v.GetString("WORKFLOW_AWARD_ROLES"))
	if err != nil {
		return nil, err
	}

	c := &Config{
		Env:     v.GetString("APP_ENV"),
		AppPort: v.GetString("APP_PORT"),
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		MySQLHost: v.GetString("MYSQL_HOST"),
		MySQLPort: v.GetString("MYSQL_PORT"),
		MySQLDB:   v.GetString("MYSQL_DB"),
		MySQLUser: v.GetString("MYSQL_USER"),
		MySQLPass: v.GetString("MYSQL_PASS"),

		DBLogLevel:     v.GetString("DB_LOG_LEVEL"),
		DBMaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),

		RedisAddr:    v.GetString("REDIS_ADDR"),
		RedisDB:      v.GetInt("REDIS_DB"),
		IdempTTLSecs: v.GetInt("IDEMPOTENCY_TTL_SECONDS"),
		JWTSecret:    v.GetString("JWT_SECRET"),
		Workflow: WorkflowConfig{
			AllowResubmission: v.GetBool("WORKFLOW_ALLOW_RESUBMISSION"),
			AwardRoles:        roles,
		},
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", EnvDevelopment)
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("MYSQL_HOST", "mysql")
	v.SetDefault("MYSQL_PORT", "3306")
	v.SetDefault("MYSQL_DB", "landbank")
	v.SetDefault("MYSQL_USER", "landbank")
	v.SetDefault("MYSQL_PASS", "landbank")
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("DB_MAX_OPEN_CONNS", 30)

	v.SetDefault("REDIS_ADDR", "redis:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("IDEMPOTENCY_TTL_SECONDS", 300)

	v.SetDefault("JWT_SECRET", "")

	v.SetDefault("WORKFLOW_ALLOW_RESUBMISSION", false)
	v.SetDefault("WORKFLOW_AWARD_ROLES", "manager,committee")
}

func parseRoles(raw string) ([]workflow.Role, error) {
	var out []workflow.Role
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		r, ok := workflow.ParseRole(part)
		if !ok {
			return nil, fmt.Errorf("WORKFLOW_AWARD_ROLES: unknown role %q", strings.TrimSpace(part))
		}
		out = append(out, r)
	}
	if len(out) == 0 {
		return nil, errors.New("WORKFLOW_AWARD_ROLES must name at least one role")
	}
	return out, nil
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.JWTSecret == "" {
		return errors.New("missing JWT_SECRET")
	}
	if c.IdempTTLSecs <= 0 {
		return errors.New("IDEMPOTENCY_TTL_SECONDS must be positive")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
