package config

import (
	"flag"
	"os"

	"github.com/planfold/planfold/internal/flagx"
	"github.com/planfold/planfold/internal/timex"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   data directory
//	-k string   default tag activated at startup
//	-s string   JWT HMAC secret key
//	-t string   access token validity ("60m", "2h")
//	-r string   refresh token validity ("7d", "168h")
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. Duration
// flags use the timex grammar, which accepts a "d" day suffix.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-k", "-s", "-t", "-r", "-u", "-p", "-b", "-g", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DataDir, "d", config.DataDir, "data directory")
	fs.StringVar(&config.DefaultTag, "k", config.DefaultTag, "default tag")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidity := fs.String("t", config.AccessTokenValidityDuration.String(), "access token validity duration (e.g. 60m)")
	refreshTokenValidity := fs.String("r", config.RefreshTokenValidityDuration.String(), "refresh token validity duration (e.g. 7d)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if d, err := timex.ParseDuration(*accessTokenValidity); err == nil {
		config.AccessTokenValidityDuration = d
	}
	if d, err := timex.ParseDuration(*refreshTokenValidity); err == nil {
		config.RefreshTokenValidityDuration = d
	}
}
