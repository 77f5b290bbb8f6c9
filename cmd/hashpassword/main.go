package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/angelmondragon/voltmart-backend/pkg/config"
	"github.com/angelmondragon/voltmart-backend/pkg/security"
)

// hashpassword prints an argon2id hash suitable for VOLTMART_ADMIN_PASSWORD_HASH.
// The password comes from -password or, when omitted, the first line of stdin.
func main() {
	password := flag.String("password", "", "plaintext password (read from stdin when empty)")
	flag.Parse()

	_ = godotenv.Load()

	var params config.PasswordConfig
	if err := envconfig.Process(config.EnvPrefix, &params); err != nil {
		fmt.Fprintf(os.Stderr, "parsing argon config: %v\n", err)
		os.Exit(1)
	}

	plain := *password
	if plain == "" {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(os.Stderr, "no password supplied")
			os.Exit(1)
		}
		plain = strings.TrimRight(line, "\r\n")
	}

	hash, err := security.HashPassword(plain, params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash password: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
