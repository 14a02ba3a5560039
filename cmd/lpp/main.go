// Command lpp sends LPP programs to a remote parse service.
//
//	lpp file --path program.lpp
//	lpp repl
//	lpp watch --path program.lpp
//
// The service address comes from --url, LPP_SERVER_URL or the default
// http://localhost:1323. A .env file in the working directory is loaded at
// startup.
package main

import (
	"errors"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		exitCode := 1
		var exitErr exitCodeError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
			if exitErr.err == nil {
				os.Exit(exitCode)
			}
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode)
	}
}
