// Command totp prints the current TOTP code for a Base32 secret and keeps it
// up to date with a countdown until interrupted.
//
// Usage:
//
//	totp [-once] [secret]
//
// The secret may also come from TOTP_SECRET (environment or .env).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/authenticator/app/authenticator"
)

func main() {
	once := flag.Bool("once", false, "print the current code and remaining seconds, then exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-once] [base32 secret]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	var opts []authenticator.AppOption
	if flag.NArg() > 0 {
		opts = append(opts, authenticator.WithSecret(flag.Arg(0)))
	}

	app, err := authenticator.NewApp(opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *once {
		err = app.Once(ctx)
	} else {
		err = app.Run(ctx)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
