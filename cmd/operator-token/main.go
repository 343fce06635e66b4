package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"producer-payout.backend/internal/config"
	"producer-payout.backend/pkg/jwt"
)

type operatorTokenDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	out     io.Writer
}

func defaultOperatorTokenDeps() operatorTokenDeps {
	return operatorTokenDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		out:     os.Stdout,
	}
}

func runOperatorToken(args []string, deps operatorTokenDeps) error {
	if deps.loadEnv == nil {
		deps.loadEnv = func() error { return godotenv.Load() }
	}
	if deps.loadCfg == nil {
		deps.loadCfg = config.Load
	}
	if deps.out == nil {
		deps.out = os.Stdout
	}

	fs := flag.NewFlagSet("operator-token", flag.ContinueOnError)
	operatorFlag := fs.String("operator", "", "operator name recorded in the token (required)")
	roleFlag := fs.String("role", "operator", "operator role: operator or admin")
	expiryFlag := fs.Duration("expiry", 0, "token lifetime (defaults to JWT_EXPIRY)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *operatorFlag == "" {
		return fmt.Errorf("--operator is required")
	}
	if *roleFlag != "operator" && *roleFlag != "admin" {
		return fmt.Errorf("invalid role: %s (allowed: operator, admin)", *roleFlag)
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := deps.loadCfg()

	expiry := cfg.JWT.Expiry
	if *expiryFlag > 0 {
		expiry = *expiryFlag
	}
	token, err := jwt.NewJWTService(cfg.JWT.Secret, expiry).GenerateToken(*operatorFlag, *roleFlag)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}

	_, _ = fmt.Fprintf(deps.out, "operator=%s\n", *operatorFlag)
	_, _ = fmt.Fprintf(deps.out, "role=%s\n", *roleFlag)
	_, _ = fmt.Fprintf(deps.out, "expires_in=%s\n", expiry.Round(time.Second))
	_, _ = fmt.Fprintf(deps.out, "TOKEN=%s\n", token)
	return nil
}

func main() {
	if err := runOperatorToken(os.Args[1:], defaultOperatorTokenDeps()); err != nil {
		log.Fatal(err)
	}
}
